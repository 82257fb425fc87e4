package ocr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Profile describes how one column of a roster region is recognized.
type Profile struct {
	// Whitelist restricts the characters Tesseract may emit. Empty means
	// no restriction.
	Whitelist string

	// PSM is the page segmentation mode used for the region.
	PSM gosseract.PageSegMode
}

// NameProfile returns the recognition profile for the nickname column.
func NameProfile(whitelist string) Profile {
	return Profile{Whitelist: whitelist, PSM: gosseract.PSM_SINGLE_BLOCK}
}

// PointsProfile returns the recognition profile for the points column.
func PointsProfile(whitelist string) Profile {
	return Profile{Whitelist: whitelist, PSM: gosseract.PSM_SINGLE_BLOCK}
}

// Line is one recognized text line within a region.
type Line struct {
	// Text is the raw recognized content, unparsed.
	Text string

	// Row is the vertical center of the line's box in preprocessed region
	// pixels, or -1 when box extraction was unavailable.
	Row int

	// Confidence is Tesseract's confidence for the line (0.0 to 1.0), or
	// -1 when unknown.
	Confidence float64
}

// Engine recognizes text in preprocessed region images.
//
// Each Recognize call creates and closes its own Tesseract client, so an
// Engine is stateless and safe for concurrent use by the chunk workers.
type Engine struct {
	language       string
	tessdataPrefix string
	logger         *slog.Logger
}

// NewEngine returns an Engine recognizing the given language. tessdataPrefix
// optionally overrides the Tesseract data directory.
func NewEngine(language, tessdataPrefix string, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		language:       language,
		tessdataPrefix: tessdataPrefix,
		logger:         logger,
	}
}

// Recognize runs Tesseract over a PNG-encoded region and returns its text
// lines ordered top to bottom.
//
// The Tesseract call itself cannot be interrupted, so Recognize runs it in a
// goroutine and abandons it when ctx expires: a deadline produces an
// EngineError with Timeout set, a plain cancellation returns the context
// error untouched.
func (e *Engine) Recognize(ctx context.Context, pngData []byte, profile Profile) ([]Line, error) {
	type outcome struct {
		lines []Line
		err   error
	}
	done := make(chan outcome, 1)

	go func() {
		lines, err := e.recognize(pngData, profile)
		done <- outcome{lines: lines, err: err}
	}()

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &EngineError{Stage: "recognize", Timeout: true, Err: ctx.Err()}
		}
		return nil, ctx.Err()
	case out := <-done:
		return out.lines, out.err
	}
}

func (e *Engine) recognize(pngData []byte, profile Profile) ([]Line, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if e.tessdataPrefix != "" {
		if err := client.SetTessdataPrefix(e.tessdataPrefix); err != nil {
			return nil, &EngineError{Stage: "configure", Err: fmt.Errorf("failed to set tessdata prefix: %w", err)}
		}
	}
	if err := client.SetLanguage(e.language); err != nil {
		return nil, &EngineError{Stage: "configure", Err: fmt.Errorf("failed to set language: %w", err)}
	}
	if err := client.SetPageSegMode(profile.PSM); err != nil {
		return nil, &EngineError{Stage: "configure", Err: fmt.Errorf("failed to set page segmentation mode: %w", err)}
	}
	if profile.Whitelist != "" {
		if err := client.SetWhitelist(profile.Whitelist); err != nil {
			return nil, &EngineError{Stage: "configure", Err: fmt.Errorf("failed to set whitelist: %w", err)}
		}
	}
	// Nicknames are not dictionary words; keep Tesseract from "correcting"
	// them toward English.
	for _, v := range []string{"load_system_dawg", "load_freq_dawg"} {
		if err := client.SetVariable(gosseract.SettableVariable(v), "F"); err != nil {
			return nil, &EngineError{Stage: "configure", Err: fmt.Errorf("failed to set %s: %w", v, err)}
		}
	}

	if err := client.SetImageFromBytes(pngData); err != nil {
		return nil, &EngineError{Stage: "set-image", Err: fmt.Errorf("failed to set image: %w", err)}
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err == nil {
		return linesFromBoxes(boxes), nil
	}
	e.logger.Debug("line boxes unavailable, falling back to plain text", "error", err)

	// Some builds cannot iterate text lines; plain text split on newlines
	// still feeds the parser, just without row positions.
	text, terr := client.Text()
	if terr != nil {
		return nil, &EngineError{Stage: "recognize", Err: fmt.Errorf("OCR failed: %w", terr)}
	}
	return linesFromText(text), nil
}

// linesFromBoxes converts Tesseract line boxes into Lines ordered top to
// bottom. Empty lines are dropped.
func linesFromBoxes(boxes []gosseract.BoundingBox) []Line {
	lines := make([]Line, 0, len(boxes))
	for _, box := range boxes {
		text := strings.TrimSpace(box.Word)
		if text == "" {
			continue
		}
		lines = append(lines, Line{
			Text:       text,
			Row:        (box.Box.Min.Y + box.Box.Max.Y) / 2,
			Confidence: float64(box.Confidence) / 100.0,
		})
	}
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].Row < lines[j].Row })
	return lines
}

// linesFromText splits plain OCR output on newlines. Row and Confidence are
// unknown and set to -1.
func linesFromText(text string) []Line {
	lines := make([]Line, 0)
	for _, raw := range strings.Split(text, "\n") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		lines = append(lines, Line{Text: raw, Row: -1, Confidence: -1})
	}
	return lines
}
