package planner

// SkipTooSmall is the SkipReason for images already within bounds.
const SkipTooSmall = "image dimensions too small"

// BuildPlan produces the Plan for a w×h image.
//
// Comparisons are done in integers: for whole-pixel sides, w/f < min exactly
// when w < f*min, and w/f > min exactly when w > f*min. Each pass floors,
// but never below one pixel.
func BuildPlan(opts Options, w, h int) *Plan {
	f := opts.ReductionFactor
	plan := &Plan{
		SourceWidth:  w,
		SourceHeight: h,
		TargetWidth:  w,
		TargetHeight: h,
		Factor:       f,
	}

	// --- 1. Skip test: both sides would fall below the minimum ---
	if w < f*opts.MinWidth && h < f*opts.MinHeight {
		plan.Action = ActionSkip
		plan.SkipReason = SkipTooSmall
		return plan
	}

	// --- 2. Halving loop: continue while either side still exceeds ---
	plan.Action = ActionReduce
	for plan.TargetWidth > f*opts.MinWidth || plan.TargetHeight > f*opts.MinHeight {
		plan.TargetWidth = max(1, plan.TargetWidth/f)
		plan.TargetHeight = max(1, plan.TargetHeight/f)
		plan.Passes++
	}
	return plan
}
