package reducer

import (
	"github.com/backmassage/photoreducer/internal/config"
	"github.com/backmassage/photoreducer/internal/planner"
)

// Options are the immutable per-run settings handed to every worker by value.
type Options struct {
	Quality int // JPEG quality, 1-100.
	Plan    planner.Options
	DryRun  bool
}

// NewOptions copies the reduction settings out of cfg.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Quality: cfg.Quality,
		Plan: planner.Options{
			ReductionFactor: cfg.ReductionFactor,
			MinWidth:        cfg.MinWidth,
			MinHeight:       cfg.MinHeight,
		},
		DryRun: cfg.DryRun,
	}
}
