package sim

import "fmt"

// Fixed advancement probabilities. These are deliberately flat rates rather
// than model expressions: they gate discrete baserunning events, not
// rating-driven pitch physics.
const (
	doublePlayProb = 0.15 // ground-ball outs with a force at second
	sacFlyProb     = 0.30 // fly outs with a runner on third
	reachOnErrProb = 0.05 // any other in-play out
)

// ResolvePlay maps a plate-appearance terminal onto a complete
// PlayResolution. It is pure: it never touches game state, only reads the
// pre-play bases and outs and consumes draws for the probabilistic branches.
//
// The pre-play base snapshot is captured unconditionally before anything
// else, regardless of whether the play will end the half-inning. Callers
// depend on that ordering; rewriting the snapshot after the fact is exactly
// the class of silent stats corruption this function exists to prevent.
func ResolvePlay(terminal Terminal, contact Contact, ballType BallType, bases BaseState, outs int, src Source) (PlayResolution, error) {
	if outs < 0 || outs > 2 {
		return PlayResolution{}, fmt.Errorf("%w: resolving a play with %d outs", ErrInconsistentState, outs)
	}

	res := PlayResolution{
		BasesBefore: bases,
		Bases:       bases,
	}

	switch terminal {
	case TerminalStrikeout:
		res.Outcome = OutcomeStrikeout
		res.Tag = "K"
		res.OutsAdded = 1
		return finish(res)

	case TerminalWalk, TerminalHitByPitch:
		res.Outcome = OutcomeWalk
		res.Tag = "BB"
		if terminal == TerminalHitByPitch {
			res.Outcome = OutcomeHitByPitch
			res.Tag = "HBP"
		}
		res.Bases, res.Runs, res.Moves = forceAdvance(bases)
		res.RBI = res.Runs
		return finish(res)

	case TerminalInPlay:
		return resolveInPlay(contact, ballType, bases, outs, src, res)

	default:
		return PlayResolution{}, fmt.Errorf("%w: unknown terminal %d", ErrInconsistentState, int(terminal))
	}
}

func resolveInPlay(contact Contact, ballType BallType, bases BaseState, outs int, src Source, res PlayResolution) (PlayResolution, error) {
	switch contact {
	case ContactOut:
		return resolveBattedOut(ballType, bases, outs, src, res)

	case ContactSingle:
		res.Outcome = OutcomeSingle
		res.Tag = "1B"
		if bases.Third {
			res.Runs++
			res.Moves = append(res.Moves, RunnerMove{From: 3, To: 4, Scored: true})
		}
		if bases.Second {
			res.Moves = append(res.Moves, RunnerMove{From: 2, To: 3})
		}
		if bases.First {
			res.Moves = append(res.Moves, RunnerMove{From: 1, To: 2})
		}
		res.Moves = append(res.Moves, RunnerMove{From: 0, To: 1})
		res.Bases = BaseState{First: true, Second: bases.First, Third: bases.Second}
		res.RBI = res.Runs
		return finish(res)

	case ContactDouble:
		res.Outcome = OutcomeDouble
		res.Tag = "2B"
		if bases.Third {
			res.Runs++
			res.Moves = append(res.Moves, RunnerMove{From: 3, To: 4, Scored: true})
		}
		if bases.Second {
			res.Runs++
			res.Moves = append(res.Moves, RunnerMove{From: 2, To: 4, Scored: true})
		}
		if bases.First {
			res.Moves = append(res.Moves, RunnerMove{From: 1, To: 3})
		}
		res.Moves = append(res.Moves, RunnerMove{From: 0, To: 2})
		res.Bases = BaseState{Second: true, Third: bases.First}
		res.RBI = res.Runs
		return finish(res)

	case ContactTriple:
		res.Outcome = OutcomeTriple
		res.Tag = "3B"
		for _, from := range occupiedBases(bases) {
			res.Runs++
			res.Moves = append(res.Moves, RunnerMove{From: from, To: 4, Scored: true})
		}
		res.Moves = append(res.Moves, RunnerMove{From: 0, To: 3})
		res.Bases = BaseState{Third: true}
		res.RBI = res.Runs
		return finish(res)

	case ContactHomeRun:
		res.Outcome = OutcomeHomeRun
		res.Tag = "HR"
		for _, from := range occupiedBases(bases) {
			res.Runs++
			res.Moves = append(res.Moves, RunnerMove{From: from, To: 4, Scored: true})
		}
		res.Runs++
		res.Moves = append(res.Moves, RunnerMove{From: 0, To: 4, Scored: true})
		res.Bases = BaseState{}
		res.RBI = res.Runs
		return finish(res)

	default:
		return PlayResolution{}, fmt.Errorf("%w: unknown contact %d", ErrInconsistentState, int(contact))
	}
}

// resolveBattedOut handles the out branches. Exactly one draw is consumed:
// the eligible special-play check (double play, sacrifice fly, or
// reach-on-error). The branches are exclusive, so a failed double-play draw
// falls through to an ordinary out without a reach-on-error check.
func resolveBattedOut(ballType BallType, bases BaseState, outs int, src Source, res PlayResolution) (PlayResolution, error) {
	switch {
	case ballType == GroundBall && bases.First && outs < 2:
		if src.Float64() < doublePlayProb {
			res.Outcome = OutcomeDoublePlay
			res.Tag = "GIDP"
			res.OutsAdded = 2
			res.DoublePlay = true
			res.Bases.First = false // lead force retired; trail runners hold
			return finish(res)
		}

	case ballType == FlyBall && bases.Third && outs < 2:
		if src.Float64() < sacFlyProb {
			res.Outcome = OutcomeSacFly
			res.Tag = "SF"
			res.OutsAdded = 1
			res.SacFly = true
			res.Runs = 1
			res.RBI = 1
			res.Bases.Third = false
			res.Moves = append(res.Moves, RunnerMove{From: 3, To: 4, Scored: true})
			return finish(res)
		}

	default:
		if src.Float64() < reachOnErrProb {
			res.Outcome = OutcomeError
			res.Bases, res.Runs, res.Moves = forceAdvance(bases)
			res.Error = true
			res.RBI = 0 // never credited on an error, even if a run scores
			// Which fielder booted it is cosmetic. The draw happens after
			// the play is fully resolved so it cannot perturb the outcome.
			res.ErrorPosition = fmt.Sprintf("E%d", src.Intn(9)+1)
			res.Tag = res.ErrorPosition
			return finish(res)
		}
	}

	res.Outcome = OutcomeOut
	res.OutsAdded = 1
	switch ballType {
	case GroundBall:
		res.Tag = "GO"
	case FlyBall:
		res.Tag = "FO"
	default:
		res.Tag = "LO"
	}
	return finish(res)
}

// forceAdvance walks the force chain started by the batter taking first:
// a runner moves up only when pushed by the batter or a preceding forced
// runner. Returns the new occupancy, runs forced home, and the moves in
// lead-runner-first order.
func forceAdvance(b BaseState) (BaseState, int, []RunnerMove) {
	var moves []RunnerMove
	runs := 0

	if b.First && b.Second && b.Third {
		runs = 1
		moves = append(moves, RunnerMove{From: 3, To: 4, Scored: true, Forced: true})
	}
	if b.First && b.Second {
		moves = append(moves, RunnerMove{From: 2, To: 3, Forced: true})
	}
	if b.First {
		moves = append(moves, RunnerMove{From: 1, To: 2, Forced: true})
	}
	moves = append(moves, RunnerMove{From: 0, To: 1, Forced: true})

	next := BaseState{
		First:  true,
		Second: b.First || b.Second,
		Third:  b.Third || (b.First && b.Second),
	}
	return next, runs, moves
}

func occupiedBases(b BaseState) []int {
	var out []int
	if b.Third {
		out = append(out, 3)
	}
	if b.Second {
		out = append(out, 2)
	}
	if b.First {
		out = append(out, 1)
	}
	return out
}

// finish runs the resolution's invariant checks before handing it back.
func finish(res PlayResolution) (PlayResolution, error) {
	if err := res.check(); err != nil {
		return PlayResolution{}, err
	}
	return res, nil
}
