package comment

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DefaultWorkers bounds batch concurrency when the caller passes no
// limit.
const DefaultWorkers = 4

// Symbol pairs a symbol identifier with its documentation source for a
// batch build.
type Symbol struct {
	ID     string
	Source Source
}

// Result is the outcome of building one symbol. Doc is nil when Err is
// set.
type Result struct {
	ID  string
	Doc *Documentation
	Err error
}

// BuildAll builds many symbols with at most workers concurrent builds
// and returns one Result per symbol, in input order. A malformed
// comment fails only its own Result; the rest of the batch keeps
// going. Cancelling ctx stops unstarted builds; in-flight ones run to
// completion since they hold no external resources.
func (b *Builder) BuildAll(ctx context.Context, symbols []Symbol, workers int) []Result {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	results := make([]Result, len(symbols))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, sym := range symbols {
		i, sym := i, sym
		g.Go(func() error {
			results[i] = Result{ID: sym.ID}
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			doc, err := b.Build(sym.Source)
			if err != nil {
				b.log.Warn("skipping comment", "symbol", sym.ID, "error", err)
				results[i].Err = err
				return nil
			}
			results[i].Doc = doc
			return nil
		})
	}
	g.Wait()
	return results
}
