package pipeline

import (
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/backmassage/photoreducer/internal/config"
	"github.com/backmassage/photoreducer/internal/display"
)

// Report is the YAML document written by --report.
type Report struct {
	RunID       string         `yaml:"run_id"`
	GeneratedAt time.Time      `yaml:"generated_at"`
	Root        string         `yaml:"root"`
	Discovery   string         `yaml:"discovery"`
	Settings    ReportSettings `yaml:"settings"`
	Totals      ReportTotals   `yaml:"totals"`
	Files       []ReportFile   `yaml:"files"`
}

type ReportSettings struct {
	Quality         int  `yaml:"quality"`
	ReductionFactor int  `yaml:"reduction_factor"`
	MinWidth        int  `yaml:"min_width"`
	MinHeight       int  `yaml:"min_height"`
	Workers         int  `yaml:"workers"`
	DryRun          bool `yaml:"dry_run"`
}

type ReportTotals struct {
	Files          int     `yaml:"files"`
	Completed      int     `yaml:"completed"`
	Reduced        int     `yaml:"reduced"`
	Skipped        int     `yaml:"skipped"`
	Failed         int     `yaml:"failed"`
	InputBytes     int64   `yaml:"input_bytes"`
	OutputBytes    int64   `yaml:"output_bytes"`
	SavedBytes     int64   `yaml:"saved_bytes"`
	ElapsedSeconds float64 `yaml:"elapsed_seconds"`
	Interrupted    bool    `yaml:"interrupted"`
}

type ReportFile struct {
	Path        string `yaml:"path"`
	Status      string `yaml:"status"`
	Source      string `yaml:"source,omitempty"`
	Target      string `yaml:"target,omitempty"`
	Passes      int    `yaml:"passes,omitempty"`
	BeforeBytes int64  `yaml:"before_bytes"`
	AfterBytes  int64  `yaml:"after_bytes,omitempty"`
	Error       string `yaml:"error,omitempty"`
}

// BuildReport converts a finished run into its report form. Files are
// sorted by path so two runs over the same folder diff cleanly.
func BuildReport(cfg *config.Config, stats *RunStats) Report {
	r := Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
		Root:        cfg.RootDir,
		Discovery:   string(cfg.Discovery),
		Settings: ReportSettings{
			Quality:         cfg.Quality,
			ReductionFactor: cfg.ReductionFactor,
			MinWidth:        cfg.MinWidth,
			MinHeight:       cfg.MinHeight,
			Workers:         cfg.Workers,
			DryRun:          cfg.DryRun,
		},
		Totals: ReportTotals{
			Files:          stats.Total,
			Completed:      stats.Completed,
			Reduced:        stats.Reduced,
			Skipped:        stats.Skipped,
			Failed:         stats.Failed,
			InputBytes:     stats.TotalInputBytes,
			OutputBytes:    stats.TotalOutputBytes,
			SavedBytes:     stats.SpaceSaved(),
			ElapsedSeconds: stats.Elapsed.Seconds(),
			Interrupted:    stats.Interrupted,
		},
		Files: make([]ReportFile, 0, len(stats.Results)),
	}

	for _, res := range stats.Results {
		f := ReportFile{
			Path:        res.Path,
			Status:      res.Status.String(),
			BeforeBytes: res.BeforeBytes,
			AfterBytes:  res.AfterBytes,
		}
		if res.Plan != nil {
			f.Source = display.FormatDims(res.Plan.SourceWidth, res.Plan.SourceHeight)
			f.Target = display.FormatDims(res.Plan.TargetWidth, res.Plan.TargetHeight)
			f.Passes = res.Plan.Passes
		}
		if res.Err != nil {
			f.Error = res.Err.Error()
		}
		r.Files = append(r.Files, f)
	}
	sort.Slice(r.Files, func(i, j int) bool { return r.Files[i].Path < r.Files[j].Path })
	return r
}

// WriteReport marshals the run summary to YAML at path.
func WriteReport(path string, cfg *config.Config, stats *RunStats) error {
	out, err := yaml.Marshal(BuildReport(cfg, stats))
	if err != nil {
		return errors.Wrap(err, "marshal report")
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return errors.Wrapf(err, "write report %s", path)
	}
	return nil
}
