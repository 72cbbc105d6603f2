package pipeline

import (
	"time"

	"github.com/backmassage/photoreducer/internal/reducer"
)

// Failure is one failed file kept for the end-of-run summary.
type Failure struct {
	Path string
	Err  error
}

// RunStats tracks aggregate counters and byte totals across a batch run.
// It is owned by the dispatcher's collector goroutine while a batch runs.
type RunStats struct {
	Total            int
	Completed        int
	Reduced          int
	Skipped          int
	Failed           int
	TotalInputBytes  int64 // before-size of reduced files
	TotalOutputBytes int64 // after-size of reduced files
	Elapsed          time.Duration
	Interrupted      bool
	Failures         []Failure
	Results          []reducer.Result // in completion order
}

// Record folds one worker result into the totals.
func (s *RunStats) Record(res reducer.Result) {
	s.Completed++
	s.Results = append(s.Results, res)
	switch res.Status {
	case reducer.StatusReduced:
		s.Reduced++
		if !res.DryRun {
			s.TotalInputBytes += res.BeforeBytes
			s.TotalOutputBytes += res.AfterBytes
		}
	case reducer.StatusSkipped:
		s.Skipped++
	case reducer.StatusFailed:
		s.Failed++
		s.Failures = append(s.Failures, Failure{Path: res.Path, Err: res.Err})
	}
}

// SpaceSaved returns the aggregate byte difference between inputs and outputs.
// Positive means outputs are smaller; negative means they grew.
func (s *RunStats) SpaceSaved() int64 {
	return s.TotalInputBytes - s.TotalOutputBytes
}
