package main

import (
	"fmt"

	"github.com/fwojciec/carousel"
	"github.com/fwojciec/carousel/fs"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// batchOutcome is the result of extracting a single input in a batch.
type batchOutcome struct {
	output string
	items  int
	err    error
}

// Run executes the batch command. Every input gets its own browser session.
// A failed input does not stop the others; the command fails if any did.
func (c *BatchCmd) Run(deps *Dependencies) error {
	format := carousel.Format(c.Format)

	outputs, err := c.outputPaths(format)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", carousel.ErrorMessage(err))
		return err
	}

	outcomes := make([]batchOutcome, len(c.Inputs))

	limit := c.Concurrency
	if limit < 1 {
		limit = 1
	}

	// Browser launches are paced separately from concurrency; zero means
	// no pacing.
	limiter := rate.NewLimiter(rate.Inf, 1)
	if c.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(c.Rate), 1)
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i, input := range c.Inputs {
		g.Go(func() error {
			if err := limiter.Wait(deps.Ctx); err != nil {
				outcomes[i].err = err
				return nil
			}
			result, err := extractFile(deps.Ctx, deps, input)
			if err != nil {
				outcomes[i].err = err
				return nil
			}
			out := outputs[i]
			if err := fs.NewWriter(out, format).WriteResult(deps.Ctx, result); err != nil {
				outcomes[i].err = err
				return nil
			}
			outcomes[i].output = out
			outcomes[i].items = len(result.Items)
			return nil
		})
	}
	_ = g.Wait()

	var failed int
	for i, o := range outcomes {
		if o.err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", c.Inputs[i], carousel.ErrorMessage(o.err))
			continue
		}
		fmt.Fprintf(deps.Stdout, "%s -> %s (%d items)\n", c.Inputs[i], o.output, o.items)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(c.Inputs))
	}
	return nil
}

// outputPaths maps every input to its result file. Inputs sharing a base
// name would overwrite each other and are rejected before any work starts.
func (c *BatchCmd) outputPaths(format carousel.Format) ([]string, error) {
	outputs := make([]string, len(c.Inputs))
	seen := make(map[string]string, len(c.Inputs))
	for i, input := range c.Inputs {
		out := fs.OutputPath(c.OutDir, input, format)
		if prev, ok := seen[out]; ok {
			return nil, carousel.Errorf(carousel.EINVALID, "inputs %q and %q would both be written to %s", prev, input, out)
		}
		seen[out] = input
		outputs[i] = out
	}
	return outputs, nil
}
