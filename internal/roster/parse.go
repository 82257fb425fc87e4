package roster

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ironsheep/roster-ocr/internal/ocr"
)

// Rules bounds what counts as a plausible roster line.
type Rules struct {
	// MinNicknameLength is the minimum rune count of a cleaned nickname.
	MinNicknameLength int

	// MaxNicknameWords caps how many words of a cleaned nickname are
	// kept. Zero or less keeps all of them.
	MaxNicknameWords int

	// MinPoints and MaxPoints bound the accepted point value, inclusive.
	MinPoints int
	MaxPoints int
}

var (
	// strayChars matches everything a nickname may not keep. Unicode
	// letters and digits, underscore, whitespace, and the brackets clan
	// tags are written with survive; the rest becomes spaces.
	strayChars = regexp.MustCompile(`[^\p{L}\p{N}_\s\[\]{}()-]`)

	// clanTag matches tags like [K77] or [123] anywhere in the line.
	clanTag = regexp.MustCompile(`\[K?\d+\]`)

	leadingDigits  = regexp.MustCompile(`^\d+\s*`)
	trailingDigits = regexp.MustCompile(`\s*\d+$`)

	// pointsToken prefers a comma-grouped number and falls back to a
	// bare digit run.
	pointsToken = regexp.MustCompile(`\d{1,3}(?:,\d{3})+|\d+`)
)

// CleanNickname normalizes one raw name line and validates it. Stray
// punctuation becomes spaces, text before and including a clan tag is
// dropped, and otherwise digit runs at either end are stripped (rank
// numbers on the left, point values bleeding across the column split on
// the right). The result must keep at least one ASCII letter and meet
// the configured minimum length; at most MaxNicknameWords words are
// kept.
func CleanNickname(raw string, rules Rules) (string, error) {
	if utf8.RuneCountInString(strings.TrimSpace(raw)) < rules.MinNicknameLength {
		return "", fmt.Errorf("shorter than %d characters", rules.MinNicknameLength)
	}

	cleaned := strayChars.ReplaceAllString(raw, " ")
	cleaned = strings.Join(strings.Fields(cleaned), " ")

	if loc := clanTag.FindStringIndex(cleaned); loc != nil {
		cleaned = strings.TrimSpace(cleaned[loc[1]:])
	} else {
		cleaned = leadingDigits.ReplaceAllString(cleaned, "")
		cleaned = trailingDigits.ReplaceAllString(cleaned, "")
	}

	nickname := firstWords(cleaned, rules.MaxNicknameWords)
	if utf8.RuneCountInString(nickname) < rules.MinNicknameLength {
		return "", fmt.Errorf("shorter than %d characters after cleanup", rules.MinNicknameLength)
	}
	if !hasASCIILetter(nickname) {
		return "", errors.New("no letters")
	}
	return nickname, nil
}

// CleanPoints extracts the point value from one raw points line. The
// engine often pads the number with stray tokens ("215,600 pts", icon
// garbage), so only the first numeric token is taken.
func CleanPoints(raw string, rules Rules) (int, error) {
	token := pointsToken.FindString(raw)
	if token == "" {
		return 0, errors.New("no numeric token")
	}
	points, err := strconv.Atoi(strings.ReplaceAll(token, ",", ""))
	if err != nil {
		return 0, fmt.Errorf("failed to parse %q: %w", token, err)
	}
	if points < rules.MinPoints || points > rules.MaxPoints {
		return 0, fmt.Errorf("%d outside [%d, %d]", points, rules.MinPoints, rules.MaxPoints)
	}
	return points, nil
}

// Parse validates one chunk's recognized lines and pairs them into
// candidate records. Each side is filtered independently; the i-th
// valid name is then paired with the i-th valid points value. When the
// sides disagree on how many valid lines they hold, the overhang is
// reported as a PairingMismatch and the paired prefix is still kept.
//
// Line order within each region tracks vertical position even when the
// engine's pixel coordinates do not, so positional pairing is more
// robust than matching the two regions by coordinates.
func Parse(chunkIndex int, nameLines, pointsLines []ocr.Line, rules Rules) ([]CandidateRecord, []ValidationError, *PairingMismatch) {
	var verrs []ValidationError

	type validName struct {
		nickname string
		row      int
	}
	var names []validName
	for _, line := range nameLines {
		nickname, err := CleanNickname(line.Text, rules)
		if err != nil {
			verrs = append(verrs, ValidationError{
				ChunkIndex: chunkIndex,
				Side:       "name",
				Raw:        line.Text,
				Reason:     err.Error(),
			})
			continue
		}
		names = append(names, validName{nickname: nickname, row: line.Row})
	}

	type validPoints struct {
		value int
		row   int
	}
	var points []validPoints
	for _, line := range pointsLines {
		value, err := CleanPoints(line.Text, rules)
		if err != nil {
			verrs = append(verrs, ValidationError{
				ChunkIndex: chunkIndex,
				Side:       "points",
				Raw:        line.Text,
				Reason:     err.Error(),
			})
			continue
		}
		points = append(points, validPoints{value: value, row: line.Row})
	}

	n := min(len(names), len(points))
	records := make([]CandidateRecord, 0, n)
	for i := 0; i < n; i++ {
		row := names[i].row
		if row < 0 {
			row = points[i].row
		}
		records = append(records, CandidateRecord{
			ChunkIndex:  chunkIndex,
			Nickname:    names[i].nickname,
			Points:      points[i].value,
			RowEstimate: row,
		})
	}

	var mismatch *PairingMismatch
	if len(names) != len(points) {
		mismatch = &PairingMismatch{
			ChunkIndex:  chunkIndex,
			NameCount:   len(names),
			PointsCount: len(points),
			Unpaired:    max(len(names), len(points)) - n,
		}
	}
	return records, verrs, mismatch
}

func firstWords(s string, n int) string {
	words := strings.Fields(s)
	if n > 0 && len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

func hasASCIILetter(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}
