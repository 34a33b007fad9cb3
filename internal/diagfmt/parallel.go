package diagfmt

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"caret/internal/diag"
	"caret/internal/source"
)

// Result is the outcome of rendering one diagnostic in a batch. Exactly
// one of Lines/Err is set.
type Result struct {
	Lines []string
	Err   error
}

// RenderAll renders a batch of diagnostics with at most jobs workers
// (jobs <= 0 means GOMAXPROCS). Results come back in input order, and one
// diagnostic's failure is recorded in its own Result without affecting
// the others. Rendering is read-only over the buffer set and catalog, so
// workers need no locking.
func RenderAll(ctx context.Context, set *source.BufferSet, cat diag.Catalog, diags []diag.Diagnostic, jobs int) []Result {
	results := make([]Result, len(diags))
	if len(diags) == 0 {
		return results
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(diags)))

	for i, d := range diags {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = Result{Err: err}
				return nil
			}
			lines, err := d.Render(set, cat)
			results[i] = Result{Lines: lines, Err: err}
			return nil
		})
	}

	// Workers never return errors; Wait only joins them.
	_ = g.Wait()
	return results
}
