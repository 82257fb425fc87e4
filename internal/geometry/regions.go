package geometry

import (
	"fmt"
	"image"
	"math"
)

// Side identifies which roster column a region covers.
type Side string

const (
	SideName   Side = "name"
	SidePoints Side = "points"
)

// Ratios is the configured column split. Name + Points must sum to 1 so
// the two regions meet at a single boundary column with no gap.
type Ratios struct {
	Name   float64
	Points float64
}

// RegionSpec is the column sub-rectangle [X0, X1) of one chunk for one
// side of the roster.
type RegionSpec struct {
	ChunkIndex int
	Side       Side
	X0, X1     int
}

// Rect returns the image rectangle covered by this region within the
// chunk's row interval.
func (r RegionSpec) Rect(c ChunkSpec) image.Rectangle {
	return image.Rect(r.X0, c.StartRow, r.X1, c.EndRow)
}

// SplitColumn computes the boundary column between the name and points
// regions for the given image width.
func SplitColumn(width int, r Ratios) (int, error) {
	if r.Name <= 0 || r.Name >= 1 || r.Points <= 0 || r.Points >= 1 {
		return 0, fmt.Errorf("column ratios must be between 0 and 1 exclusive, got %v/%v", r.Name, r.Points)
	}
	if math.Abs(r.Name+r.Points-1) > 1e-6 {
		return 0, fmt.Errorf("column ratios must sum to 1, got %v", r.Name+r.Points)
	}

	split := int(math.Round(float64(width) * r.Name))
	if split <= 0 || split >= width {
		return 0, fmt.Errorf("image width %d leaves no room for both columns at ratio %v", width, r.Name)
	}
	return split, nil
}

// Regions derives the two per-chunk region specs for every chunk in the
// plan: the name region [0, split) and the points region [split, width).
// Regions for chunk i sit at positions 2i (name) and 2i+1 (points).
func Regions(plan ChunkPlan, width int, r Ratios) ([]RegionSpec, error) {
	split, err := SplitColumn(width, r)
	if err != nil {
		return nil, err
	}

	specs := make([]RegionSpec, 0, 2*len(plan.Chunks))
	for _, c := range plan.Chunks {
		specs = append(specs,
			RegionSpec{ChunkIndex: c.Index, Side: SideName, X0: 0, X1: split},
			RegionSpec{ChunkIndex: c.Index, Side: SidePoints, X0: split, X1: width},
		)
	}
	return specs, nil
}
