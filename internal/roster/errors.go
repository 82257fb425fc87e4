package roster

import "fmt"

// ValidationError records one recognized line that failed the nickname
// or points shape rules. Validation failures are expected noise at the
// edges of a screenshot; they are collected into run diagnostics, never
// propagated as failures.
type ValidationError struct {
	ChunkIndex int    `json:"chunk_index"`
	Side       string `json:"side"` // "name" or "points"
	Raw        string `json:"raw"`
	Reason     string `json:"reason"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("chunk %d %s line %q rejected: %s", e.ChunkIndex, e.Side, e.Raw, e.Reason)
}

// PairingMismatch reports that a chunk's two regions produced unequal
// valid line counts, leaving some lines unpaired. The paired prefix is
// still used; only the remainder is lost.
type PairingMismatch struct {
	ChunkIndex  int `json:"chunk_index"`
	NameCount   int `json:"name_count"`
	PointsCount int `json:"points_count"`
	Unpaired    int `json:"unpaired"`
}

func (m PairingMismatch) Error() string {
	return fmt.Sprintf("chunk %d: %d valid names vs %d valid points, %d unpaired",
		m.ChunkIndex, m.NameCount, m.PointsCount, m.Unpaired)
}

// EmptyResultError reports a run whose reconciliation produced zero
// roster entries. Unlike a small-but-nonzero roster, an empty one
// signals a systemic problem: wrong layout ratios, an unreadable
// screenshot, or a chunk plan that missed the roster entirely.
type EmptyResultError struct {
	// Chunks is how many chunks the run processed.
	Chunks int

	// ValidationErrors is how many lines were rejected across the run.
	ValidationErrors int
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("no valid roster entries in any of %d chunks (%d lines rejected); check the layout ratios and row height against the screenshot",
		e.Chunks, e.ValidationErrors)
}
