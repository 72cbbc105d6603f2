package pipeline

import (
	"fmt"
	"os"

	"github.com/backmassage/photoreducer/internal/config"
	"github.com/backmassage/photoreducer/internal/display"
	"github.com/backmassage/photoreducer/internal/logging"
	"github.com/backmassage/photoreducer/internal/planner"
	"github.com/backmassage/photoreducer/internal/probe"
	"github.com/backmassage/photoreducer/internal/reducer"
)

// Preview prints what the selector found before the confirmation gate:
// every listed entry with its size, then the entries that will be skipped.
// In verbose mode each candidate is probed and its planned reduction shown.
func Preview(cfg *config.Config, log *logging.Logger, sel *Selection) {
	fmt.Println()
	display.Section("Detecting files...", '=')
	for _, e := range sel.Entries {
		if e.IsDir {
			fmt.Printf("*  %s\t<dir>\n", e.Name)
			continue
		}
		fmt.Printf("*  %s\t%s KB\n", e.Name, display.FormatKB(e.Size))
	}

	fmt.Println()
	display.Section("Files that will be skipped:", '-')
	for _, e := range sel.Skipped {
		fmt.Printf("*  %s\n", e.Name)
	}
	fmt.Println(display.Rule('=', 60))

	if cfg.Verbose {
		previewPlans(cfg, log, sel.Accepted)
	}

	log.Info("Found %d JPEG files (%d other entries skipped) in %s [%s]",
		len(sel.Accepted), len(sel.Skipped), sel.Root, sel.Mode)
}

// previewPlans probes each candidate's header and logs the planned action.
// Problems found here are only warnings; the worker reports them again.
func previewPlans(cfg *config.Config, log *logging.Logger, files []string) {
	opts := reducer.NewOptions(cfg).Plan
	for _, path := range files {
		info, err := probe.Probe(path)
		if err != nil {
			log.Warn("  %s: %v", path, err)
			continue
		}
		if !info.IsJPEG() {
			log.Warn("  %s: content is %s, not JPEG", path, info.MIME)
			continue
		}
		note := ""
		if !info.HasExif {
			note = " [no EXIF: will fail]"
		}
		plan := planner.BuildPlan(opts, info.Width, info.Height)
		switch {
		case plan.Action == planner.ActionSkip:
			log.Debug(true, "  %s: %s, skip (%s)%s", path, info.Resolution(), plan.SkipReason, note)
		case plan.ReencodeOnly():
			log.Debug(true, "  %s: %s, re-encode only%s", path, info.Resolution(), note)
		default:
			log.Debug(true, "  %s: %s -> %s (%d passes)%s", path, info.Resolution(),
				display.FormatDims(plan.TargetWidth, plan.TargetHeight), plan.Passes, note)
		}
	}
	fmt.Fprintln(os.Stdout)
}
