// Package roster turns raw OCR text lines into the final deduplicated
// clan roster.
//
// The package has two stages. Parse filters one chunk's recognized
// lines down to plausible (nickname, points) pairs; Reconcile merges
// the per-chunk results from all chunks into one ordered roster.
//
// # Parsing
//
// Name lines and points lines come from two independently recognized
// regions of the same chunk, so their pixel coordinates cannot be
// trusted to line up. What does hold is order: within one region the
// engine reports lines top to bottom. Parse therefore validates each
// side on its own and then pairs by position, i-th valid name with
// i-th valid points value. A count mismatch between the sides is
// reported, never fatal; the pairs that line up still count.
//
// # Reconciliation
//
// Consecutive chunks overlap, so a roster row near a chunk boundary is
// usually read twice. Reconcile deduplicates by normalized nickname.
// When a key collides, the copy read nearer the vertical center of its
// chunk wins; a copy hugging a boundary is more likely a clipped
// fragment. First-seen order of surviving keys is the output order.
//
// # Output
//
// WriteCSV serializes the final entries with a Nickname,Points header.
// Callers are expected to write the file only after the whole run
// succeeded, so a failed run never leaves a partial roster behind.
package roster
