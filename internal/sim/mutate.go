package sim

import "fmt"

// finalInning is the first inning in which the game can end.
const finalInning = 9

// ApplyResolution is the only place authoritative game state changes. It
// takes the current state and a play resolution and returns the replacement
// state, whether the play was a walk-off, and the display out count at the
// moment of transition.
//
// The display outs are cumulative and clamped by the play itself, never a
// reset value: an inning-ending double play reports 3.
func ApplyResolution(s GameState, r PlayResolution) (GameState, bool, int, error) {
	if err := s.check(); err != nil {
		return GameState{}, false, 0, err
	}
	if s.Final {
		return GameState{}, false, 0, fmt.Errorf("%w: applying a play to a final game", ErrInconsistentState)
	}
	if s.Outs > 2 {
		return GameState{}, false, 0, fmt.Errorf("%w: %d outs before the play", ErrInconsistentState, s.Outs)
	}
	if err := r.check(); err != nil {
		return GameState{}, false, 0, err
	}
	if r.Runs > r.BasesBefore.Occupied()+1 {
		return GameState{}, false, 0, fmt.Errorf("%w: %d runs from %d runners plus the batter",
			ErrInconsistentState, r.Runs, r.BasesBefore.Occupied())
	}

	next := s
	next.Balls, next.Strikes = 0, 0
	next.Bases = r.Bases

	// Walk-off: bottom half, 9th or later, home batting, and the play puts
	// the home team ahead. Anything but a home run is clamped to the
	// minimum winning margin with the bases cleared; a home run counts in
	// full even as a walk-off.
	runs := r.Runs
	walkoff := s.Half == Bottom && s.Inning >= finalInning &&
		s.Offense == s.HomeTeam && s.HomeScore+runs > s.AwayScore
	if walkoff && r.Outcome != OutcomeHomeRun {
		runs = s.AwayScore - s.HomeScore + 1
		next.Bases = BaseState{}
	}

	if s.Offense == s.HomeTeam {
		next.HomeScore += runs
	} else {
		next.AwayScore += runs
	}

	// The plate appearance is complete either way; the offense's lineup
	// moves on to the next slot.
	if s.Offense == s.HomeTeam {
		next.HomeBatter = (s.HomeBatter + 1) % 9
	} else {
		next.AwayBatter = (s.AwayBatter + 1) % 9
	}

	totalOuts := s.Outs + r.OutsAdded
	if totalOuts > 3 {
		return GameState{}, false, 0, fmt.Errorf("%w: play pushes outs to %d", ErrInconsistentState, totalOuts)
	}
	next.Outs = totalOuts

	if walkoff {
		next.Final = true
		return next, true, totalOuts, nil
	}

	if totalOuts == 3 {
		switch {
		case s.Half == Top && s.Inning >= finalInning && next.HomeScore > next.AwayScore:
			// Nothing left to decide: the home team already leads, so the
			// bottom half is never played. The state freezes at the
			// completed half.
			next.Final = true
		case s.Half == Bottom && s.Inning >= finalInning && next.HomeScore != next.AwayScore:
			// A completed bottom half ends the game once the score is not
			// tied; ties always play on. No result is ever a tie.
			next.Final = true
		default:
			next.Outs = 0
			next.Bases = BaseState{}
			next.Offense, next.Defense = s.Defense, s.Offense
			if s.Half == Top {
				next.Half = Bottom
			} else {
				next.Half = Top
				next.Inning = s.Inning + 1
			}
		}
	}

	if err := next.check(); err != nil {
		return GameState{}, false, 0, err
	}
	return next, false, totalOuts, nil
}
