package reducer

import (
	"time"

	"github.com/backmassage/photoreducer/internal/planner"
)

// Status is the per-file outcome.
type Status int

const (
	StatusReduced Status = iota
	StatusSkipped
	StatusFailed
)

// String returns the lowercase label used in logs and reports.
func (s Status) String() string {
	switch s {
	case StatusReduced:
		return "reduced"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result describes what Reduce did to one file.
type Result struct {
	Path   string
	Status Status
	Err    error // set only when Status is StatusFailed

	// Plan is nil when the file failed before its dimensions were known.
	Plan *planner.Plan

	BeforeBytes int64
	AfterBytes  int64 // zero for skipped, failed and dry-run files
	DryRun      bool
	Elapsed     time.Duration
}

// Saved returns the bytes removed by the rewrite (negative if it grew).
// Only reduced, non-dry-run files report a non-zero value.
func (r *Result) Saved() int64 {
	if r.Status != StatusReduced || r.DryRun {
		return 0
	}
	return r.BeforeBytes - r.AfterBytes
}
