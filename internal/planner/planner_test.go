package planner

import (
	"testing"
)

func defaultOpts() Options {
	return Options{ReductionFactor: 2, MinWidth: 1080, MinHeight: 1080}
}

func TestBuildPlan_Scenarios(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		wantAction   Action
		wantPasses   int
		wantW, wantH int
	}{
		{"4320 square halves once", 4320, 4320, ActionReduce, 1, 2160, 2160},
		{"1000 square is skipped", 1000, 1000, ActionSkip, 0, 1000, 1000},
		{"just under boundary is skipped", 2159, 2159, ActionSkip, 0, 2159, 2159},
		{"exact boundary re-encodes without resize", 2160, 2160, ActionReduce, 0, 2160, 2160},
		{"one side on boundary", 2160, 1500, ActionReduce, 0, 2160, 1500},
		{"8640 square halves twice", 8640, 8640, ActionReduce, 2, 2160, 2160},
		{"12MP landscape", 4000, 3000, ActionReduce, 1, 2000, 1500},
		{"24MP landscape", 6000, 4000, ActionReduce, 2, 1500, 1000},
		{"odd sides floor", 4321, 4319, ActionReduce, 1, 2160, 2159},
		{"floor can leave one side over and force another pass", 4321, 4323, ActionReduce, 2, 1080, 1080},
		{"tall panorama keeps halving on height", 1000, 5000, ActionReduce, 2, 250, 1250},
		{"wide strip", 4321, 10, ActionReduce, 1, 2160, 5},
		{"one pixel high strip never reaches zero", 9000, 1, ActionReduce, 3, 1125, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := BuildPlan(defaultOpts(), tt.w, tt.h)
			if p.Action != tt.wantAction {
				t.Fatalf("Action = %v, want %v", p.Action, tt.wantAction)
			}
			if p.Passes != tt.wantPasses {
				t.Errorf("Passes = %d, want %d", p.Passes, tt.wantPasses)
			}
			if p.TargetWidth != tt.wantW || p.TargetHeight != tt.wantH {
				t.Errorf("target = %dx%d, want %dx%d", p.TargetWidth, p.TargetHeight, tt.wantW, tt.wantH)
			}
			if p.SourceWidth != tt.w || p.SourceHeight != tt.h {
				t.Errorf("source = %dx%d, want %dx%d", p.SourceWidth, p.SourceHeight, tt.w, tt.h)
			}
		})
	}
}

func TestBuildPlan_SkipReason(t *testing.T) {
	p := BuildPlan(defaultOpts(), 640, 480)
	if p.SkipReason != SkipTooSmall {
		t.Errorf("SkipReason = %q, want %q", p.SkipReason, SkipTooSmall)
	}
	p = BuildPlan(defaultOpts(), 5000, 5000)
	if p.SkipReason != "" {
		t.Errorf("reduced plan should have no SkipReason, got %q", p.SkipReason)
	}
}

func TestBuildPlan_ReencodeOnly(t *testing.T) {
	if !BuildPlan(defaultOpts(), 2160, 2160).ReencodeOnly() {
		t.Error("2160x2160 should be re-encode only")
	}
	if BuildPlan(defaultOpts(), 4320, 4320).ReencodeOnly() {
		t.Error("4320x4320 should be resized")
	}
	if BuildPlan(defaultOpts(), 100, 100).ReencodeOnly() {
		t.Error("skipped plan is not re-encode only")
	}
}

// After the loop neither side may exceed factor×minimum, and a second plan on
// the output must never resize again.
func TestBuildPlan_ExitInvariantAndIdempotence(t *testing.T) {
	opts := defaultOpts()
	for w := 500; w <= 20000; w += 397 {
		for h := 500; h <= 20000; h += 613 {
			p := BuildPlan(opts, w, h)
			if p.Action == ActionSkip {
				if w >= 2*opts.MinWidth || h >= 2*opts.MinHeight {
					t.Fatalf("%dx%d skipped but a side is not below the bound", w, h)
				}
				continue
			}
			if p.TargetWidth > 2*opts.MinWidth || p.TargetHeight > 2*opts.MinHeight {
				t.Fatalf("%dx%d -> %dx%d exceeds bound", w, h, p.TargetWidth, p.TargetHeight)
			}
			again := BuildPlan(opts, p.TargetWidth, p.TargetHeight)
			if again.Passes != 0 {
				t.Fatalf("%dx%d: second plan on %dx%d wants %d passes", w, h, p.TargetWidth, p.TargetHeight, again.Passes)
			}
		}
	}
}

func TestBuildPlan_CustomFactor(t *testing.T) {
	opts := Options{ReductionFactor: 3, MinWidth: 100, MinHeight: 100}
	p := BuildPlan(opts, 2700, 900)
	// 2700 > 300 -> 900x300 -> 900 > 300 -> 300x100 -> stop.
	if p.Passes != 2 || p.TargetWidth != 300 || p.TargetHeight != 100 {
		t.Errorf("got %d passes to %dx%d, want 2 passes to 300x100", p.Passes, p.TargetWidth, p.TargetHeight)
	}
}

func TestAction_String(t *testing.T) {
	if ActionReduce.String() != "reduce" || ActionSkip.String() != "skip" {
		t.Errorf("unexpected labels %q %q", ActionReduce, ActionSkip)
	}
}
