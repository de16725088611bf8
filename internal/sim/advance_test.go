package sim

import (
	"errors"
	"strings"
	"testing"
)

func mustResolve(t *testing.T, terminal Terminal, contact Contact, ballType BallType, bases BaseState, outs int, src Source) PlayResolution {
	t.Helper()
	res, err := ResolvePlay(terminal, contact, ballType, bases, outs, src)
	if err != nil {
		t.Fatalf("ResolvePlay: %v", err)
	}
	return res
}

func TestResolveStrikeout(t *testing.T) {
	src := &Scripted{}
	bases := BaseState{First: true, Third: true}

	res := mustResolve(t, TerminalStrikeout, 0, 0, bases, 1, src)
	if res.Outcome != OutcomeStrikeout || res.OutsAdded != 1 || res.Runs != 0 {
		t.Errorf("unexpected resolution: %+v", res)
	}
	if res.Bases != bases {
		t.Errorf("strikeout moved runners: %v", res.Bases)
	}
	if res.Tag != "K" {
		t.Errorf("tag = %q, want K", res.Tag)
	}
}

func TestResolveWalkForcesOnlyPushedRunners(t *testing.T) {
	cases := []struct {
		name     string
		bases    BaseState
		want     BaseState
		wantRuns int
	}{
		{"empty", BaseState{}, BaseState{First: true}, 0},
		{"first only", BaseState{First: true}, BaseState{First: true, Second: true}, 0},
		{"second only", BaseState{Second: true}, BaseState{First: true, Second: true}, 0},
		{"third only", BaseState{Third: true}, BaseState{First: true, Third: true}, 0},
		{"first and second", BaseState{First: true, Second: true}, BaseState{First: true, Second: true, Third: true}, 0},
		{"first and third", BaseState{First: true, Third: true}, BaseState{First: true, Second: true, Third: true}, 0},
		{"loaded", BaseState{First: true, Second: true, Third: true}, BaseState{First: true, Second: true, Third: true}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := mustResolve(t, TerminalWalk, 0, 0, tc.bases, 0, &Scripted{})
			if res.Bases != tc.want {
				t.Errorf("bases = %v, want %v", res.Bases, tc.want)
			}
			if res.Runs != tc.wantRuns {
				t.Errorf("runs = %d, want %d", res.Runs, tc.wantRuns)
			}
			if res.RBI != tc.wantRuns {
				t.Errorf("rbi = %d, want %d", res.RBI, tc.wantRuns)
			}
		})
	}
}

func TestResolveHitByPitchTag(t *testing.T) {
	res := mustResolve(t, TerminalHitByPitch, 0, 0, BaseState{}, 0, &Scripted{})
	if res.Outcome != OutcomeHitByPitch || res.Tag != "HBP" {
		t.Errorf("unexpected resolution: %+v", res)
	}
}

func TestResolveSingle(t *testing.T) {
	bases := BaseState{First: true, Second: true, Third: true}
	res := mustResolve(t, TerminalInPlay, ContactSingle, LineDrive, bases, 0, &Scripted{})

	if res.Runs != 1 {
		t.Errorf("loaded single: runs = %d, want 1", res.Runs)
	}
	want := BaseState{First: true, Second: true, Third: true}
	if res.Bases != want {
		t.Errorf("bases = %v, want %v", res.Bases, want)
	}
	if res.RBI != 1 {
		t.Errorf("rbi = %d, want 1", res.RBI)
	}
	// Runner on second holds at third on a single.
	res = mustResolve(t, TerminalInPlay, ContactSingle, LineDrive, BaseState{Second: true}, 0, &Scripted{})
	if res.Runs != 0 {
		t.Errorf("single with runner on second scored: %d", res.Runs)
	}
	if (res.Bases != BaseState{First: true, Third: true}) {
		t.Errorf("bases = %v, want first and third", res.Bases)
	}
}

func TestResolveDouble(t *testing.T) {
	bases := BaseState{First: true, Second: true, Third: true}
	res := mustResolve(t, TerminalInPlay, ContactDouble, FlyBall, bases, 0, &Scripted{})

	if res.Runs != 2 {
		t.Errorf("loaded double: runs = %d, want 2", res.Runs)
	}
	// Runner from first stops at third.
	if (res.Bases != BaseState{Second: true, Third: true}) {
		t.Errorf("bases = %v, want second and third", res.Bases)
	}
}

func TestResolveTriple(t *testing.T) {
	bases := BaseState{First: true, Second: true, Third: true}
	res := mustResolve(t, TerminalInPlay, ContactTriple, LineDrive, bases, 0, &Scripted{})

	if res.Runs != 3 {
		t.Errorf("loaded triple: runs = %d, want 3", res.Runs)
	}
	if (res.Bases != BaseState{Third: true}) {
		t.Errorf("bases = %v, want batter on third only", res.Bases)
	}
	if res.RBI != 3 {
		t.Errorf("rbi = %d, want 3", res.RBI)
	}
}

func TestResolveHomeRunClearsBases(t *testing.T) {
	bases := BaseState{First: true, Second: true, Third: true}
	res := mustResolve(t, TerminalInPlay, ContactHomeRun, FlyBall, bases, 2, &Scripted{})

	if res.Runs != 4 || res.RBI != 4 {
		t.Errorf("grand slam: runs=%d rbi=%d, want 4/4", res.Runs, res.RBI)
	}
	if (res.Bases != BaseState{}) {
		t.Errorf("bases not cleared: %v", res.Bases)
	}
	if res.BasesBefore != bases {
		t.Errorf("pre-play snapshot was rewritten: %v", res.BasesBefore)
	}
}

func TestResolveDoublePlay(t *testing.T) {
	bases := BaseState{First: true, Third: true}

	// Draw under the double-play rate: both outs recorded, force at second.
	res := mustResolve(t, TerminalInPlay, ContactOut, GroundBall, bases, 0,
		&Scripted{Floats: []float64{0.0}})
	if !res.DoublePlay || res.OutsAdded != 2 {
		t.Fatalf("expected double play, got %+v", res)
	}
	if res.Bases.First {
		t.Errorf("lead force not retired: %v", res.Bases)
	}
	if !res.Bases.Third {
		t.Errorf("trail runner should hold at third: %v", res.Bases)
	}
	if res.Tag != "GIDP" {
		t.Errorf("tag = %q, want GIDP", res.Tag)
	}

	// A failed double-play draw is a plain ground out; it must NOT fall
	// through to a reach-on-error check.
	src := &Scripted{Floats: []float64{0.99, 0.0}}
	res = mustResolve(t, TerminalInPlay, ContactOut, GroundBall, bases, 0, src)
	if res.Outcome != OutcomeOut || res.OutsAdded != 1 {
		t.Fatalf("expected plain out, got %+v", res)
	}
	if len(src.Floats) != 1 {
		t.Errorf("expected exactly one draw on a failed double-play check, %d left", len(src.Floats))
	}
}

func TestDoublePlayIneligible(t *testing.T) {
	// No runner on first: never a double play even on a ground ball.
	res := mustResolve(t, TerminalInPlay, ContactOut, GroundBall, BaseState{Second: true}, 0,
		&Scripted{Floats: []float64{0.99}})
	if res.DoublePlay {
		t.Errorf("double play with no force at second: %+v", res)
	}

	// Two outs: the double play cannot happen.
	res = mustResolve(t, TerminalInPlay, ContactOut, GroundBall, BaseState{First: true}, 2,
		&Scripted{Floats: []float64{0.0}})
	if res.DoublePlay {
		t.Errorf("double play with two outs: %+v", res)
	}
}

func TestResolveSacFly(t *testing.T) {
	bases := BaseState{First: true, Third: true}

	res := mustResolve(t, TerminalInPlay, ContactOut, FlyBall, bases, 1,
		&Scripted{Floats: []float64{0.0}})
	if !res.SacFly || res.OutsAdded != 1 {
		t.Fatalf("expected sacrifice fly, got %+v", res)
	}
	if res.Runs != 1 || res.RBI != 1 {
		t.Errorf("sac fly: runs=%d rbi=%d, want 1/1", res.Runs, res.RBI)
	}
	if res.Bases.Third || !res.Bases.First {
		t.Errorf("bases = %v, want runner on first only", res.Bases)
	}

	// With two outs the runner on third cannot tag.
	res = mustResolve(t, TerminalInPlay, ContactOut, FlyBall, bases, 2,
		&Scripted{Floats: []float64{0.0, 0.99}})
	if res.SacFly {
		t.Errorf("sac fly with two outs: %+v", res)
	}
}

func TestResolveReachOnError(t *testing.T) {
	bases := BaseState{First: true, Second: true, Third: true}

	src := &Scripted{Floats: []float64{0.01}, Ints: []int{4}}
	res := mustResolve(t, TerminalInPlay, ContactOut, LineDrive, bases, 0, src)
	if !res.Error || res.Outcome != OutcomeError {
		t.Fatalf("expected reach on error, got %+v", res)
	}
	if res.OutsAdded != 0 {
		t.Errorf("outs on an error play: %d", res.OutsAdded)
	}
	if res.Runs != 1 {
		t.Errorf("loaded error force: runs = %d, want 1", res.Runs)
	}
	if res.RBI != 0 {
		t.Errorf("rbi credited on an error: %d", res.RBI)
	}
	if !strings.HasPrefix(res.ErrorPosition, "E") {
		t.Errorf("error position = %q", res.ErrorPosition)
	}
	if res.Tag != res.ErrorPosition {
		t.Errorf("tag %q should match error position %q", res.Tag, res.ErrorPosition)
	}
}

func TestResolvePlainOuts(t *testing.T) {
	cases := []struct {
		ballType BallType
		tag      string
	}{
		{GroundBall, "GO"},
		{FlyBall, "FO"},
		{LineDrive, "LO"},
	}
	for _, tc := range cases {
		res := mustResolve(t, TerminalInPlay, ContactOut, tc.ballType, BaseState{}, 0,
			&Scripted{Floats: []float64{0.99}})
		if res.Outcome != OutcomeOut || res.OutsAdded != 1 {
			t.Errorf("%v: unexpected resolution %+v", tc.ballType, res)
		}
		if res.Tag != tc.tag {
			t.Errorf("%v: tag = %q, want %q", tc.ballType, res.Tag, tc.tag)
		}
	}
}

func TestResolveRejectsBadOuts(t *testing.T) {
	_, err := ResolvePlay(TerminalStrikeout, 0, 0, BaseState{}, 3, &Scripted{})
	if !errors.Is(err, ErrInconsistentState) {
		t.Errorf("expected ErrInconsistentState for 3 outs, got %v", err)
	}
}

// TestDoublePlayRate confirms the double-play draw only fires for eligible
// ground balls, at a rate near the configured probability.
func TestDoublePlayRate(t *testing.T) {
	src := NewStream(7)
	bases := BaseState{First: true}

	const trials = 2000
	dps := 0
	for i := 0; i < trials; i++ {
		res, err := ResolvePlay(TerminalInPlay, ContactOut, GroundBall, bases, 0, src)
		if err != nil {
			t.Fatalf("ResolvePlay: %v", err)
		}
		if res.DoublePlay {
			dps++
		}
	}
	rate := float64(dps) / trials
	if rate < 0.10 || rate > 0.20 {
		t.Errorf("double-play rate %.3f outside [0.10, 0.20]", rate)
	}

	for i := 0; i < 200; i++ {
		res, err := ResolvePlay(TerminalInPlay, ContactOut, LineDrive, bases, 0, src)
		if err != nil {
			t.Fatalf("ResolvePlay: %v", err)
		}
		if res.DoublePlay {
			t.Fatal("double play on a line drive")
		}
	}
}
