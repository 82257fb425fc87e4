package extract

import (
	"time"

	"github.com/ironsheep/roster-ocr/internal/geometry"
	"github.com/ironsheep/roster-ocr/internal/imaging"
	"github.com/ironsheep/roster-ocr/internal/roster"
)

// ChunkDiagnostics records what happened inside one chunk: the scale
// finally used, how many attempts it took, raw line counts, and every
// absorbed failure.
type ChunkDiagnostics struct {
	Index            int                      `json:"index"`
	StartRow         int                      `json:"start_row"`
	EndRow           int                      `json:"end_row"`
	Scale            float64                  `json:"scale"`
	Attempts         int                      `json:"attempts"`
	NameLines        int                      `json:"name_lines"`
	PointsLines      int                      `json:"points_lines"`
	Records          int                      `json:"records"`
	Failure          string                   `json:"failure,omitempty"`
	ValidationErrors []roster.ValidationError `json:"validation_errors,omitempty"`
	Pairing          *roster.PairingMismatch  `json:"pairing,omitempty"`
	Duration         time.Duration            `json:"duration"`
}

// Result is the complete outcome of one successful extraction run.
type Result struct {
	RunID      string             `json:"run_id"`
	Image      imaging.Descriptor `json:"image"`
	Plan       geometry.ChunkPlan `json:"plan"`
	Entries    []roster.Entry     `json:"entries"`
	Duplicates []roster.Duplicate `json:"duplicates,omitempty"`
	Chunks     []ChunkDiagnostics `json:"chunks"`
	StartedAt  time.Time          `json:"started_at"`
	FinishedAt time.Time          `json:"finished_at"`
}

// Duration is the wall-clock time the run took.
func (r *Result) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// RejectedLines counts validation failures across all chunks.
func (r *Result) RejectedLines() int {
	total := 0
	for _, c := range r.Chunks {
		total += len(c.ValidationErrors)
	}
	return total
}

// FailedChunks lists the chunks that produced no recognition at all.
func (r *Result) FailedChunks() []int {
	var failed []int
	for _, c := range r.Chunks {
		if c.Failure != "" {
			failed = append(failed, c.Index)
		}
	}
	return failed
}

// EstimateDuration gives a coarse wall-clock hint for processing an
// image of the given pixel height, printed before a run starts.
func EstimateDuration(height int) string {
	switch {
	case height > 10000:
		return "2-5 minutes"
	case height > 5000:
		return "1-2 minutes"
	default:
		return "under a minute"
	}
}
