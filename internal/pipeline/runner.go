package pipeline

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/backmassage/photoreducer/internal/config"
	"github.com/backmassage/photoreducer/internal/display"
	"github.com/backmassage/photoreducer/internal/logging"
	"github.com/backmassage/photoreducer/internal/reducer"
)

// reduceFile is the per-file step run by each worker. Tests swap it to
// observe scheduling without decoding real images.
var reduceFile = (*reducer.Reducer).Reduce

// Run is the Batch Dispatcher. It feeds files in order to a fixed pool of
// cfg.Workers goroutines, logs exactly one line per file as results arrive,
// and returns once every dispatched file has finished.
//
// Cancelling ctx stops the feeder. A worker that picks up a path after the
// cancel drops it unstarted; a file already being reduced runs to
// completion so no photo is left half-written.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, files []string) RunStats {
	stats := RunStats{Total: len(files)}
	if len(files) == 0 {
		log.Warn("No JPEG files to process")
		return stats
	}

	logBatchHeader(cfg, log, &stats)

	red := reducer.New(reducer.NewOptions(cfg))
	workers := min(cfg.Workers, len(files))

	jobs := make(chan string)
	results := make(chan reducer.Result)

	start := time.Now()

	// --- Feed paths in input order ---
	var feeder errgroup.Group
	feeder.Go(func() error {
		defer close(jobs)
		for _, path := range files {
			if err := ctx.Err(); err != nil {
				return err
			}
			select {
			case jobs <- path:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	// --- Fixed pool: each worker finishes one file before taking the next ---
	var pool errgroup.Group
	for i := 0; i < workers; i++ {
		pool.Go(func() error {
			for path := range jobs {
				if ctx.Err() != nil {
					continue
				}
				results <- reduceFile(red, context.WithoutCancel(ctx), path)
			}
			return nil
		})
	}
	go func() {
		_ = pool.Wait()
		close(results)
	}()

	// --- Collect: the only goroutine touching stats ---
	for res := range results {
		stats.Record(res)
		logResult(cfg, log, &stats, res)
	}
	stats.Elapsed = time.Since(start)

	if err := feeder.Wait(); err != nil || stats.Completed < stats.Total {
		stats.Interrupted = true
		log.Warn("Interrupted: %d of %d files were not started", stats.Total-stats.Completed, stats.Total)
	}

	logSummary(cfg, log, &stats)
	return stats
}

// logResult prints the one line a file gets, whatever happened to it.
func logResult(cfg *config.Config, log *logging.Logger, stats *RunStats, res reducer.Result) {
	switch res.Status {
	case reducer.StatusReduced:
		if res.DryRun {
			log.Success("*  %s:\t[DRY] would reduce %s -> %s (%d passes)",
				res.Path,
				display.FormatDims(res.Plan.SourceWidth, res.Plan.SourceHeight),
				display.FormatDims(res.Plan.TargetWidth, res.Plan.TargetHeight),
				res.Plan.Passes)
			break
		}
		log.Success("*  %s:\t%s KB ==> %s KB", res.Path, display.FormatKB(res.BeforeBytes), display.FormatKB(res.AfterBytes))
	case reducer.StatusSkipped:
		log.Warn("*  %s:\tImage dimensions too small. Skipping...", res.Path)
	case reducer.StatusFailed:
		log.Error("*  %s:\t%v", res.Path, res.Err)
	}

	if res.Plan != nil {
		log.Debug(cfg.Verbose, "   [%d/%d] %s -> %s (%s) in %s",
			stats.Completed, stats.Total,
			display.FormatDims(res.Plan.SourceWidth, res.Plan.SourceHeight),
			display.FormatDims(res.Plan.TargetWidth, res.Plan.TargetHeight),
			display.FormatBytesWithSign(-res.Saved()),
			res.Elapsed.Round(time.Millisecond))
	}
}

// --- Logging helpers ---

func logBatchHeader(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("Processing %d files with %d workers (%s discovery)", stats.Total, cfg.Workers, cfg.Discovery)
	log.Info("Quality: %d, reduction factor: %d, minimum: %dx%d",
		cfg.Quality, cfg.ReductionFactor, cfg.MinWidth, cfg.MinHeight)
	if cfg.DryRun {
		log.Warn("DRY RUN - no files will be written")
	}
	fmt.Println()
}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	fmt.Println()
	log.Info("==============================")
	log.Info("Done: %d reduced, %d skipped, %d failed", stats.Reduced, stats.Skipped, stats.Failed)
	log.Info("Summary report:")
	log.Info("  Total files processed: %d of %d", stats.Completed, stats.Total)

	if cfg.DryRun {
		log.Info("  Total space saved: n/a (dry run)")
	} else {
		saved := stats.SpaceSaved()
		if saved >= 0 {
			log.Success("  Total space saved: %s (input %s -> output %s)",
				display.FormatBytes(saved),
				display.FormatBytes(stats.TotalInputBytes),
				display.FormatBytes(stats.TotalOutputBytes))
		} else {
			log.Warn("  Total space saved: -%s (overall output is larger)",
				display.FormatBytes(-saved))
		}
	}

	if len(stats.Failures) > 0 {
		log.Error("  Failed files:")
		for _, f := range stats.Failures {
			log.Error("    %s: %v", f.Path, f.Err)
		}
	}

	log.Info("Elapsed time: %v seconds", stats.Elapsed.Seconds())
}
