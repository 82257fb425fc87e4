package roster

import (
	"strings"
	"testing"

	"github.com/ironsheep/roster-ocr/internal/ocr"
)

func testRules() Rules {
	return Rules{
		MinNicknameLength: 3,
		MaxNicknameWords:  3,
		MinPoints:         1000,
		MaxPoints:         999999,
	}
}

// textLines builds recognized lines with synthetic row positions, 100
// pixels apart starting at 40.
func textLines(texts ...string) []ocr.Line {
	lines := make([]ocr.Line, len(texts))
	for i, text := range texts {
		lines[i] = ocr.Line{Text: text, Row: 40 + 100*i, Confidence: 0.9}
	}
	return lines
}

func TestCleanNickname(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain name", "Spider Friend", "Spider Friend"},
		{"leading rank number", "3 Violent Violet", "Violent Violet"},
		{"trailing points bleed", "Akshat 196570", "Akshat"},
		{"clan tag", "[K77] DragonSlayer", "DragonSlayer"},
		{"clan tag without K", "[123] Akshat", "Akshat"},
		{"noise before clan tag", "lv 99 [K5] Shadow", "Shadow"},
		{"stray punctuation", "Pixel*Queen!", "Pixel Queen"},
		{"collapsed whitespace", "  Night   Owl  ", "Night Owl"},
		{"word cap", "The Grand Old Duke", "The Grand Old"},
		{"underscore kept", "x_Hunter_x", "x_Hunter_x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CleanNickname(tt.raw, testRules())
			if err != nil {
				t.Fatalf("CleanNickname(%q) returned error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("CleanNickname(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCleanNickname_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		reason string
	}{
		{"empty", "", "shorter than"},
		{"too short", "ab", "shorter than"},
		{"purely numeric", "123456", "shorter than"},
		{"digits and spaces", "12 34", "shorter than"},
		{"clan tag only", "[K12]", "shorter than"},
		{"numbers after clan tag", "[K12] 456", "no letters"},
		{"no letters", "(-_-)", "no letters"},
		{"short after digit strip", "99 ab 77", "shorter than"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CleanNickname(tt.raw, testRules())
			if err == nil {
				t.Fatalf("CleanNickname(%q) = %q, want rejection", tt.raw, got)
			}
			if !strings.Contains(err.Error(), tt.reason) {
				t.Errorf("CleanNickname(%q) error = %q, want it to mention %q", tt.raw, err, tt.reason)
			}
		})
	}
}

func TestCleanPoints(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"comma grouped", "215,600", 215600},
		{"bare digits", "5000", 5000},
		{"trailing unit", "196,570 pts", 196570},
		{"leading garbage", "© 204,205", 204205},
		{"range minimum", "1,000", 1000},
		{"range maximum", "999,999", 999999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CleanPoints(tt.raw, testRules())
			if err != nil {
				t.Fatalf("CleanPoints(%q) returned error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("CleanPoints(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCleanPoints_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		reason string
	}{
		{"below range", "999", "outside"},
		{"above range", "99,999,999", "outside"},
		{"no digits", "points", "no numeric token"},
		{"empty", "", "no numeric token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CleanPoints(tt.raw, testRules())
			if err == nil {
				t.Fatalf("CleanPoints(%q) = %d, want rejection", tt.raw, got)
			}
			if !strings.Contains(err.Error(), tt.reason) {
				t.Errorf("CleanPoints(%q) error = %q, want it to mention %q", tt.raw, err, tt.reason)
			}
		})
	}
}

func TestParse_PairsInLineOrder(t *testing.T) {
	names := textLines("Spider Friend", "Violent Violet", "Akshat", "DragonSlayer", "Night Owl")
	points := textLines("215,600", "204,205", "196,570", "150,000", "121,125")

	records, verrs, mismatch := Parse(2, names, points, testRules())
	if len(verrs) != 0 {
		t.Fatalf("Parse returned %d validation errors, want 0: %v", len(verrs), verrs)
	}
	if mismatch != nil {
		t.Fatalf("Parse returned mismatch %v, want nil", mismatch)
	}

	want := []CandidateRecord{
		{ChunkIndex: 2, Nickname: "Spider Friend", Points: 215600, RowEstimate: 40},
		{ChunkIndex: 2, Nickname: "Violent Violet", Points: 204205, RowEstimate: 140},
		{ChunkIndex: 2, Nickname: "Akshat", Points: 196570, RowEstimate: 240},
		{ChunkIndex: 2, Nickname: "DragonSlayer", Points: 150000, RowEstimate: 340},
		{ChunkIndex: 2, Nickname: "Night Owl", Points: 121125, RowEstimate: 440},
	}
	if len(records) != len(want) {
		t.Fatalf("Parse returned %d records, want %d", len(records), len(want))
	}
	for i, rec := range records {
		if rec != want[i] {
			t.Errorf("record %d = %+v, want %+v", i, rec, want[i])
		}
	}
}

func TestParse_UnpairedOverhang(t *testing.T) {
	names := textLines("Spider Friend", "Violent Violet", "Akshat", "DragonSlayer", "Night Owl", "Straggler")
	points := textLines("215,600", "204,205", "196,570", "150,000", "121,125")

	records, verrs, mismatch := Parse(0, names, points, testRules())
	if len(verrs) != 0 {
		t.Fatalf("Parse returned %d validation errors, want 0: %v", len(verrs), verrs)
	}
	if len(records) != 5 {
		t.Fatalf("Parse returned %d records, want 5", len(records))
	}
	if mismatch == nil {
		t.Fatal("Parse returned nil mismatch, want a reported overhang")
	}
	if mismatch.NameCount != 6 || mismatch.PointsCount != 5 || mismatch.Unpaired != 1 {
		t.Errorf("mismatch = %+v, want counts 6/5 with 1 unpaired", mismatch)
	}
}

func TestParse_FiltersBeforePairing(t *testing.T) {
	names := textLines("Spider Friend", "12", "Violent Violet")
	points := textLines("215,600", "no score", "204,205")

	records, verrs, mismatch := Parse(1, names, points, testRules())
	if mismatch != nil {
		t.Fatalf("Parse returned mismatch %v, want nil after both sides filtered", mismatch)
	}
	if len(verrs) != 2 {
		t.Fatalf("Parse returned %d validation errors, want 2: %v", len(verrs), verrs)
	}
	if verrs[0].Side != "name" || verrs[0].Raw != "12" {
		t.Errorf("first validation error = %+v, want the rejected name line", verrs[0])
	}
	if verrs[1].Side != "points" || verrs[1].Raw != "no score" {
		t.Errorf("second validation error = %+v, want the rejected points line", verrs[1])
	}

	if len(records) != 2 {
		t.Fatalf("Parse returned %d records, want 2", len(records))
	}
	if records[0].Nickname != "Spider Friend" || records[0].Points != 215600 {
		t.Errorf("record 0 = %+v, want Spider Friend with 215600", records[0])
	}
	if records[1].Nickname != "Violent Violet" || records[1].Points != 204205 {
		t.Errorf("record 1 = %+v, want Violent Violet with 204205", records[1])
	}
}

func TestParse_RowEstimateFallback(t *testing.T) {
	names := []ocr.Line{{Text: "Spider Friend", Row: -1, Confidence: -1}}
	points := []ocr.Line{{Text: "215,600", Row: 55, Confidence: 0.9}}

	records, _, _ := Parse(0, names, points, testRules())
	if len(records) != 1 {
		t.Fatalf("Parse returned %d records, want 1", len(records))
	}
	if records[0].RowEstimate != 55 {
		t.Errorf("RowEstimate = %d, want the points row 55", records[0].RowEstimate)
	}

	points[0].Row = -1
	records, _, _ = Parse(0, names, points, testRules())
	if records[0].RowEstimate != -1 {
		t.Errorf("RowEstimate = %d, want -1 when neither side has geometry", records[0].RowEstimate)
	}
}

func TestParse_Empty(t *testing.T) {
	records, verrs, mismatch := Parse(0, nil, nil, testRules())
	if len(records) != 0 || len(verrs) != 0 || mismatch != nil {
		t.Errorf("Parse(nil, nil) = %d records, %d errors, mismatch %v; want all empty",
			len(records), len(verrs), mismatch)
	}
}

func TestParse_OneSidedChunk(t *testing.T) {
	names := textLines("Spider Friend", "Violent Violet", "Akshat")

	records, verrs, mismatch := Parse(3, names, nil, testRules())
	if len(records) != 0 {
		t.Fatalf("Parse returned %d records, want 0 without any points", len(records))
	}
	if len(verrs) != 0 {
		t.Fatalf("Parse returned %d validation errors, want 0: %v", len(verrs), verrs)
	}
	if mismatch == nil {
		t.Fatal("Parse returned nil mismatch, want 3 unpaired names reported")
	}
	if mismatch.ChunkIndex != 3 || mismatch.NameCount != 3 || mismatch.PointsCount != 0 || mismatch.Unpaired != 3 {
		t.Errorf("mismatch = %+v, want chunk 3 with 3/0 counts and 3 unpaired", mismatch)
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Spider Friend", "spider friend"},
		{"collapses whitespace", "Night \t Owl", "night owl"},
		{"trims ends", "  Akshat  ", "akshat"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeKey(tt.in); got != tt.want {
				t.Errorf("NormalizeKey(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
