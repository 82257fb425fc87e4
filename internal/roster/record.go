package roster

import "strings"

// CandidateRecord is one (nickname, points) pair parsed from a single
// chunk, before cross-chunk deduplication.
type CandidateRecord struct {
	// ChunkIndex identifies the chunk this record was read from.
	ChunkIndex int `json:"chunk_index"`

	// Nickname is the cleaned player name as recognized in this chunk.
	Nickname string `json:"nickname"`

	// Points is the parsed integer point value.
	Points int `json:"points"`

	// RowEstimate is the approximate vertical position of the source
	// line within the chunk, in unscaled chunk pixels, or -1 when the
	// engine reported no usable geometry.
	RowEstimate int `json:"row_estimate"`
}

// Entry is one row of the final roster.
type Entry struct {
	Nickname string `json:"nickname"`
	Points   int    `json:"points"`
}

// NormalizeKey reduces a nickname to its deduplication key: lowercased,
// with runs of whitespace collapsed to single spaces. Two chunk reads
// of the same roster row that differ only in casing or spacing collide
// on this key.
func NormalizeKey(nickname string) string {
	return strings.ToLower(strings.Join(strings.Fields(nickname), " "))
}
