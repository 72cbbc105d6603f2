package planner

// Action describes the per-file processing decision.
type Action int

const (
	ActionReduce Action = iota
	ActionSkip
)

// String returns the lowercase label used in logs and reports.
func (a Action) String() string {
	switch a {
	case ActionReduce:
		return "reduce"
	case ActionSkip:
		return "skip"
	default:
		return "unknown"
	}
}

// Options are the immutable knobs of the decision. They are copied out of
// config.Config once per run.
type Options struct {
	ReductionFactor int // Integer divisor applied per pass (2 = halving).
	MinWidth        int
	MinHeight       int
}

// Plan holds the decision for one image.
type Plan struct {
	Action     Action
	SkipReason string

	SourceWidth  int
	SourceHeight int

	// Final dimensions after Passes downscale steps. Equal to the source
	// dimensions when Passes is zero.
	TargetWidth  int
	TargetHeight int
	Passes       int
	Factor       int // divisor applied on each pass
}

// ReencodeOnly reports whether the image is re-encoded without any resize,
// which happens only on the boundary described in the package doc.
func (p *Plan) ReencodeOnly() bool {
	return p.Action == ActionReduce && p.Passes == 0
}
