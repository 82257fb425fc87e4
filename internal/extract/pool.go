package extract

import (
	"context"
	"image"
	"sync"

	"github.com/ironsheep/roster-ocr/internal/geometry"
	"github.com/ironsheep/roster-ocr/internal/roster"
)

// chunkOutcome is what one chunk contributes to the run: its parsed
// records and its diagnostics.
type chunkOutcome struct {
	records []roster.CandidateRecord
	diag    ChunkDiagnostics
}

// runChunks processes every planned chunk and returns the outcomes
// indexed by chunk. All workers pull from one shared queue, so load
// balances naturally; each result lands in the slot matching its chunk
// index, which keeps the output independent of completion order. When
// ctx is cancelled, feeding stops and the pool drains.
func (e *Extractor) runChunks(ctx context.Context, img image.Image, plan geometry.ChunkPlan, regions []geometry.RegionSpec) []chunkOutcome {
	outcomes := make([]chunkOutcome, len(plan.Chunks))

	workers := e.cfg.Processing.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(plan.Chunks) {
		workers = len(plan.Chunks)
	}

	queue := make(chan geometry.ChunkSpec)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for spec := range queue {
				name := regions[2*spec.Index]
				points := regions[2*spec.Index+1]
				outcomes[spec.Index] = e.processChunk(ctx, img, spec, name, points)
			}
		}()
	}

feed:
	for _, spec := range plan.Chunks {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break feed
		case queue <- spec:
		}
	}
	close(queue)
	wg.Wait()

	return outcomes
}
