// Package extract orchestrates a full roster extraction run.
//
// A run moves through three phases. Planning validates the
// configuration, loads the screenshot, resolves the clan-size preset
// (probing the row pitch when no row height is configured), and
// computes the chunk plan. The chunk loop crops, preprocesses,
// recognizes, and parses every chunk, optionally across a bounded
// worker pool. Reconciliation merges the per-chunk records in chunk
// index order into the final roster.
//
// # Failure Absorption
//
// Screenshots are messy, so most failures are absorbed rather than
// propagated. A recognition failure retries once at the next-lower
// ladder scale; a chunk failing both attempts contributes zero records
// and a diagnostic. Rejected lines and pairing mismatches are counted
// per chunk. All absorbed failures stay retrievable on the Result, so
// a caller can judge whether the accuracy is acceptable. Only an
// invalid configuration, an unreadable image, or a completely empty
// reconciliation fail the run.
//
// # Ordering and Cancellation
//
// The final roster order depends only on chunk index order and
// within-chunk row order, never on which worker finished first.
// Cancelling the run context stops the pool between chunks and
// discards everything; a cancelled run never produces a partial
// roster.
package extract
