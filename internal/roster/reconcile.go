package roster

import (
	"math"

	"github.com/ironsheep/roster-ocr/internal/geometry"
)

// Duplicate records one resolved nickname collision between chunk
// reads. Key is the normalized nickname both records mapped to.
type Duplicate struct {
	Key          string `json:"key"`
	KeptChunk    int    `json:"kept_chunk"`
	DroppedChunk int    `json:"dropped_chunk"`
}

// Reconcile merges per-chunk candidate records into the final ordered
// roster. Records are visited in chunk order, then row order, exactly
// as Parse produced them. The first occurrence of a normalized nickname
// fixes that player's position in the output; later occurrences only
// decide which copy supplies the spelling and points.
//
// On a key collision the copy whose row estimate lies nearer the
// vertical center of its own chunk wins: a record near a chunk edge sat
// in the overlap zone and may be a clipped fragment. When either copy
// lacks a row estimate the later chunk's copy wins instead, since the
// later chunk re-read the row with full context.
func Reconcile(perChunk [][]CandidateRecord, plan geometry.ChunkPlan) ([]Entry, []Duplicate) {
	var order []string
	kept := make(map[string]CandidateRecord)
	var dups []Duplicate

	for _, records := range perChunk {
		for _, rec := range records {
			key := NormalizeKey(rec.Nickname)
			incumbent, seen := kept[key]
			if !seen {
				kept[key] = rec
				order = append(order, key)
				continue
			}
			winner, loser := resolve(incumbent, rec, plan)
			kept[key] = winner
			dups = append(dups, Duplicate{
				Key:          key,
				KeptChunk:    winner.ChunkIndex,
				DroppedChunk: loser.ChunkIndex,
			})
		}
	}

	entries := make([]Entry, 0, len(order))
	for _, key := range order {
		rec := kept[key]
		entries = append(entries, Entry{Nickname: rec.Nickname, Points: rec.Points})
	}
	return entries, dups
}

// resolve picks which of two same-key records survives.
func resolve(a, b CandidateRecord, plan geometry.ChunkPlan) (winner, loser CandidateRecord) {
	da, aok := centerDistance(a, plan)
	db, bok := centerDistance(b, plan)
	switch {
	case aok && bok && da < db:
		return a, b
	case aok && bok && db < da:
		return b, a
	case b.ChunkIndex > a.ChunkIndex:
		return b, a
	default:
		return a, b
	}
}

// centerDistance is how far the record's row estimate sits from the
// vertical center of its chunk, in unscaled chunk pixels.
func centerDistance(rec CandidateRecord, plan geometry.ChunkPlan) (float64, bool) {
	if rec.RowEstimate < 0 {
		return 0, false
	}
	if rec.ChunkIndex < 0 || rec.ChunkIndex >= len(plan.Chunks) {
		return 0, false
	}
	half := float64(plan.Chunks[rec.ChunkIndex].Rows()) / 2
	return math.Abs(float64(rec.RowEstimate) - half), true
}
