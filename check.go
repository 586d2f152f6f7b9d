package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"famicore/emu"
	"famicore/emu/log"
)

type checkResult struct {
	name string
	res  emu.TestResult
	err  error
}

func (r checkResult) passed() bool {
	return r.err == nil && r.res.Status.Passed()
}

// checkMain runs every test image on its own machine and reports their
// status, in argument order. It returns the number of images that did not
// pass.
func checkMain(ctx context.Context, w io.Writer, args Check, cfg emu.Config) (int, error) {
	if args.MaxFrames > 0 {
		cfg.Check.MaxFrames = args.MaxFrames
	}
	jobs := args.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	// Machines run concurrently, their logs would interleave.
	log.Disable()

	results := make([]checkResult, len(args.Images))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range args.Images {
		g.Go(func() error {
			r := &results[i]
			r.name = filepath.Base(path)

			img, err := emu.OpenImage(path, cfg.Machine)
			if err != nil {
				r.err = err
				return nil
			}
			r.res, r.err = emu.RunTestImage(gctx, img, cfg)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	failed := 0
	for _, r := range results {
		if !r.passed() {
			failed++
		}
		writeResult(w, r, args.Verbose)
	}
	fmt.Fprintf(w, "%d/%d passed\n", len(results)-failed, len(results))
	return failed, nil
}

func writeResult(w io.Writer, r checkResult, verbose bool) {
	switch {
	case r.err != nil:
		fmt.Fprintf(w, "FAIL %s: %v (frames %d)\n", r.name, r.err, r.res.Frames)
	case r.res.Status.Passed():
		fmt.Fprintf(w, "PASS %s (frames %d)\n", r.name, r.res.Frames)
	default:
		fmt.Fprintf(w, "FAIL %s: %s (frames %d)\n", r.name, r.res.Status, r.res.Frames)
	}
	if r.res.Status.Text != "" && (verbose || !r.passed()) {
		fmt.Fprintf(w, "  %s\n", r.res.Status.Text)
	}
}
