package extract

import (
	"reflect"
	"testing"
	"time"

	"github.com/ironsheep/roster-ocr/internal/roster"
)

func TestResultHelpers(t *testing.T) {
	started := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	r := &Result{
		StartedAt:  started,
		FinishedAt: started.Add(42 * time.Second),
		Chunks: []ChunkDiagnostics{
			{Index: 0, ValidationErrors: []roster.ValidationError{
				{ChunkIndex: 0, Side: "points", Raw: "999", Reason: "outside range"},
			}},
			{Index: 1, Failure: "tesseract choked"},
			{Index: 2, ValidationErrors: []roster.ValidationError{
				{ChunkIndex: 2, Side: "name", Raw: "12", Reason: "no letters"},
				{ChunkIndex: 2, Side: "name", Raw: "ab", Reason: "too short"},
			}},
		},
	}

	if got := r.Duration(); got != 42*time.Second {
		t.Errorf("Duration = %v, want 42s", got)
	}
	if got := r.RejectedLines(); got != 3 {
		t.Errorf("RejectedLines = %d, want 3", got)
	}
	if got := r.FailedChunks(); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("FailedChunks = %v, want [1]", got)
	}
}

func TestEstimateDuration(t *testing.T) {
	tests := []struct {
		height int
		want   string
	}{
		{1000, "under a minute"},
		{5000, "under a minute"},
		{6000, "1-2 minutes"},
		{10000, "1-2 minutes"},
		{12000, "2-5 minutes"},
	}
	for _, tt := range tests {
		if got := EstimateDuration(tt.height); got != tt.want {
			t.Errorf("EstimateDuration(%d) = %q, want %q", tt.height, got, tt.want)
		}
	}
}
