package sim

import (
	"fmt"

	"github.com/dugoutlab/dugout/internal/roster"
	"github.com/dugoutlab/dugout/internal/rules"
)

// maxPitches caps a single plate appearance. Reaching it means the count
// machine is broken; it is a fatal assertion, not a loop guard.
const maxPitches = 30

// AtBatResult is the pitch-level outcome of one plate appearance.
type AtBatResult struct {
	Terminal Terminal
	Balls    int
	Strikes  int
	Pitches  int
}

func modelVars(batter roster.Batter, pitcher roster.Pitcher, balls, strikes int) rules.Vars {
	return rules.Vars{
		Batter: map[string]float64{
			"contact":  batter.Contact,
			"power":    batter.Power,
			"patience": batter.Patience,
			"speed":    batter.Speed,
		},
		Pitcher: map[string]float64{
			"control": pitcher.Control,
			"stuff":   pitcher.Stuff,
		},
		Balls:    balls,
		Strikes:  strikes,
		CountAdj: countAdjust(balls, strikes),
	}
}

// countAdjust shifts contact probability with the count: harder to square
// up protecting at two strikes, easier when ahead.
func countAdjust(balls, strikes int) float64 {
	switch {
	case strikes == 2:
		return -0.07
	case balls >= 2 && balls > strikes:
		return 0.05
	default:
		return 0
	}
}

// simulateAtBat runs one plate appearance pitch by pitch until a terminal
// outcome. The draw order per pitch is fixed and load-bearing for seed
// reproducibility:
//
//	1. hit-by-pitch check
//	2. zone decision
//	3. swing decision
//	4. (swing only) contact check
//	5. (contact only) foul/in-play split
//
// Takes resolve with no further draws: in-zone is a called strike,
// out-of-zone is a ball. A foul with two strikes leaves the count unchanged.
func simulateAtBat(m *rules.Model, batter roster.Batter, pitcher roster.Pitcher, src Source) (AtBatResult, error) {
	balls, strikes := 0, 0

	for pitch := 1; ; pitch++ {
		if pitch > maxPitches {
			return AtBatResult{}, fmt.Errorf("%w: %d pitches in one plate appearance (count %d-%d)",
				ErrSafetyCap, pitch, balls, strikes)
		}
		vars := modelVars(batter, pitcher, balls, strikes)

		hbp, err := m.Eval(rules.ExprHitByPitch, vars)
		if err != nil {
			return AtBatResult{}, err
		}
		if src.Float64() < hbp {
			return AtBatResult{Terminal: TerminalHitByPitch, Balls: balls, Strikes: strikes, Pitches: pitch}, nil
		}

		zoneProb, err := m.Eval(rules.ExprZone, vars)
		if err != nil {
			return AtBatResult{}, err
		}
		inZone := src.Float64() < zoneProb

		swingExpr := rules.ExprSwingZone
		if !inZone {
			swingExpr = rules.ExprChase
		}
		swingProb, err := m.Eval(swingExpr, vars)
		if err != nil {
			return AtBatResult{}, err
		}
		swings := src.Float64() < swingProb

		if !swings {
			if inZone {
				strikes++
			} else {
				balls++
			}
		} else {
			contactProb, err := m.Eval(rules.ExprContact, vars)
			if err != nil {
				return AtBatResult{}, err
			}
			if src.Float64() >= contactProb {
				strikes++ // swinging strike
			} else {
				foulProb, err := m.Eval(rules.ExprFoul, vars)
				if err != nil {
					return AtBatResult{}, err
				}
				if src.Float64() < foulProb {
					if strikes < 2 {
						strikes++
					}
				} else {
					return AtBatResult{Terminal: TerminalInPlay, Balls: balls, Strikes: strikes, Pitches: pitch}, nil
				}
			}
		}

		if balls >= 4 {
			return AtBatResult{Terminal: TerminalWalk, Balls: balls, Strikes: strikes, Pitches: pitch}, nil
		}
		if strikes >= 3 {
			return AtBatResult{Terminal: TerminalStrikeout, Balls: balls, Strikes: strikes, Pitches: pitch}, nil
		}
	}
}
