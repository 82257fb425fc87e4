package geometry

import (
	"image"
	"testing"
)

func TestSplitColumn(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		ratios  Ratios
		want    int
		wantErr bool
	}{
		{"standard split", 1000, Ratios{0.7, 0.3}, 700, false},
		{"rounding", 1290, Ratios{0.7, 0.3}, 903, false},
		{"narrow image", 10, Ratios{0.7, 0.3}, 7, false},
		{"ratios exceed one", 1000, Ratios{0.7, 0.4}, 0, true},
		{"zero name ratio", 1000, Ratios{0, 1}, 0, true},
		{"split collapses to zero", 1, Ratios{0.3, 0.7}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitColumn(tt.width, tt.ratios)
			if tt.wantErr {
				if err == nil {
					t.Error("SplitColumn should have failed")
				}
				return
			}
			if err != nil {
				t.Fatalf("SplitColumn failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("split: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRegions(t *testing.T) {
	plan := ChunkPlan{
		Chunks: []ChunkSpec{
			{Index: 0, StartRow: 0, EndRow: 500, Scale: 2},
			{Index: 1, StartRow: 480, EndRow: 980, Scale: 2},
		},
		RowSpan: 500,
		Overlap: 20,
	}

	specs, err := Regions(plan, 1000, Ratios{0.7, 0.3})
	if err != nil {
		t.Fatalf("Regions failed: %v", err)
	}

	if len(specs) != 4 {
		t.Fatalf("spec count: got %d, want 4", len(specs))
	}

	for i, c := range plan.Chunks {
		name := specs[2*i]
		points := specs[2*i+1]

		if name.Side != SideName || points.Side != SidePoints {
			t.Errorf("chunk %d: sides got %s/%s, want name/points", i, name.Side, points.Side)
		}
		if name.ChunkIndex != c.Index || points.ChunkIndex != c.Index {
			t.Errorf("chunk %d: region chunk indices got %d/%d", i, name.ChunkIndex, points.ChunkIndex)
		}
		if name.X0 != 0 {
			t.Errorf("chunk %d: name region starts at %d, want 0", i, name.X0)
		}
		// No gap and no overlap at the boundary column.
		if name.X1 != points.X0 {
			t.Errorf("chunk %d: boundary mismatch, name ends %d, points starts %d", i, name.X1, points.X0)
		}
		if points.X1 != 1000 {
			t.Errorf("chunk %d: points region ends at %d, want 1000", i, points.X1)
		}
	}
}

func TestRegionSpec_Rect(t *testing.T) {
	chunk := ChunkSpec{Index: 1, StartRow: 480, EndRow: 980}
	region := RegionSpec{ChunkIndex: 1, Side: SidePoints, X0: 700, X1: 1000}

	got := region.Rect(chunk)
	want := image.Rect(700, 480, 1000, 980)
	if got != want {
		t.Errorf("Rect: got %v, want %v", got, want)
	}
}

func TestRegions_BadRatios(t *testing.T) {
	plan := ChunkPlan{Chunks: []ChunkSpec{{Index: 0, StartRow: 0, EndRow: 100, Scale: 1}}}

	if _, err := Regions(plan, 1000, Ratios{0.5, 0.6}); err == nil {
		t.Error("Regions should reject ratios that do not sum to 1")
	}
}
