package sim

import (
	"fmt"

	"github.com/dugoutlab/dugout/internal/roster"
	"github.com/dugoutlab/dugout/internal/rules"
)

var bipOutcomeExprs = []string{
	rules.ExprBipOut,
	rules.ExprBipSingle,
	rules.ExprBipDouble,
	rules.ExprBipTriple,
	rules.ExprBipHomer,
}

var bipTypeExprs = []string{
	rules.ExprBipGround,
	rules.ExprBipFly,
	rules.ExprBipLine,
}

// resolveContact turns a ball-in-play terminal into a batted-ball outcome
// and trajectory. It always consumes exactly two draws: one for the outcome
// table, one for the type table. Everything else is pure in the inputs.
func resolveContact(m *rules.Model, batter roster.Batter, pitcher roster.Pitcher, src Source) (Contact, BallType, error) {
	vars := modelVars(batter, pitcher, 0, 0)

	outcomeWeights, err := m.Weights(bipOutcomeExprs, vars)
	if err != nil {
		return 0, 0, err
	}
	outcome, err := weightedPick(outcomeWeights, src.Float64())
	if err != nil {
		return 0, 0, err
	}

	typeWeights, err := m.Weights(bipTypeExprs, vars)
	if err != nil {
		return 0, 0, err
	}
	ballType, err := weightedPick(typeWeights, src.Float64())
	if err != nil {
		return 0, 0, err
	}

	return Contact(outcome), BallType(ballType), nil
}

// weightedPick maps a uniform draw in [0,1) onto an index proportionally to
// the weights.
func weightedPick(weights []float64, draw float64) (int, error) {
	total := 0.0
	for _, w := range weights {
		if w < 0 {
			return 0, fmt.Errorf("%w: negative weight %v", ErrInconsistentState, w)
		}
		total += w
	}
	if total <= 0 {
		return 0, fmt.Errorf("%w: weight table sums to %v", ErrInconsistentState, total)
	}

	target := draw * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if target < acc {
			return i, nil
		}
	}
	return len(weights) - 1, nil
}
