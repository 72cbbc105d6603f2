// Command photoreducer is the CLI entrypoint for the PhotoReducer batch
// JPEG shrinker.
//
// It parses flags, asks for the photo folder when none was given, previews
// the files it found, and after confirmation reduces them in place with a
// fixed pool of workers. --check runs the self-test instead.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"

	"github.com/backmassage/photoreducer/internal/check"
	"github.com/backmassage/photoreducer/internal/config"
	"github.com/backmassage/photoreducer/internal/display"
	"github.com/backmassage/photoreducer/internal/logging"
	"github.com/backmassage/photoreducer/internal/pipeline"
	"github.com/backmassage/photoreducer/internal/term"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap. The logger doesn't exist yet, so errors go
	// directly to stderr via fmt.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, os.Args[1:], version); err != nil {
		fmt.Fprintf(os.Stderr, "photoreducer: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "photoreducer: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "photoreducer: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available. All output goes through log from here on,
	// except prompts and listings which are written straight to stdout.
	display.PrintBanner()

	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, log) {
			return 1
		}
		return 0
	}

	display.PrintIntro()
	prompt := term.NewPrompter(os.Stdin, os.Stdout)

	if cfg.RootDir == "" {
		answer, err := prompt.Ask("Path to folder: ")
		if err != nil {
			log.Error("No folder given: %v", err)
			return 1
		}
		cfg.RootDir = config.NormalizeDirArg(answer)
	}

	sel, err := pipeline.Select(cfg.RootDir, cfg.Discovery)
	if err != nil {
		var pnf *pipeline.PathNotFoundError
		if errors.As(err, &pnf) {
			log.Error("Folder not found: %s", pnf.Path)
		} else {
			log.Error("%v", err)
		}
		return 1
	}

	pipeline.Preview(&cfg, log, sel)

	if !cfg.AssumeYes {
		if err := prompt.WaitEnter("\nPress enter to begin..."); err != nil {
			log.Error("%v", err)
			return 1
		}
	}

	// Every rewrite lands next to its source, so a read-only folder would
	// fail file by file. Catch it once up front instead.
	if !cfg.DryRun && len(sel.Accepted) > 0 {
		if err := check.CheckWritable(cfg.RootDir); err != nil {
			log.Error("%v", err)
			return 1
		}
	}

	// Phase 3: Signal handling. Cancel the context on SIGINT/SIGTERM so the
	// dispatcher stops handing out files while in-flight ones finish.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Received interrupt, finishing files in progress…")
			cancel()
		case <-ctx.Done():
		}
	}()

	// Phase 4: Reduce.
	fmt.Println()
	display.Section("Processing files...", '=')
	log.Debug(cfg.Verbose, "PhotoReducer v%s (%s)", version, commit)
	stats := pipeline.Run(ctx, &cfg, log, sel.Accepted)

	if cfg.ReportFile != "" {
		if err := pipeline.WriteReport(cfg.ReportFile, &cfg, &stats); err != nil {
			log.Error("%v", err)
			return 1
		}
		log.Info("Report written to %s", cfg.ReportFile)
	}

	if !cfg.AssumeYes {
		_ = prompt.WaitEnter("\nPress enter to exit...")
	}

	// Per-file failures are reported above and do not change the exit code.
	return 0
}
