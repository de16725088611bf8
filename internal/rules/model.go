// Package rules holds the tunable probability model behind the simulation.
//
// Every pitch-level and contact-level probability is a CEL expression
// compiled once at startup and evaluated against the current batter,
// pitcher, and count. The built-in defaults play a reasonable game; a yaml
// model file can override any expression without recompiling.
package rules

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"gopkg.in/yaml.v3"
)

// ErrBadModel indicates a model expression failed to compile or produced an
// out-of-range probability during validation.
var ErrBadModel = errors.New("invalid probability model")

// Expression names the model understands. Probabilities must evaluate into
// [0, 1]; weights must be non-negative.
const (
	// Pitch-level probabilities.
	ExprHitByPitch = "hbp"        // chance the pitch hits the batter
	ExprZone       = "zone"       // chance the pitch is in the strike zone
	ExprSwingZone  = "swing_zone" // swing rate at pitches in the zone
	ExprChase      = "chase"      // swing rate at pitches out of the zone
	ExprContact    = "contact"    // contact rate on a swing
	ExprFoul       = "foul"       // foul share of contacted balls

	// Batted-ball outcome weights.
	ExprBipOut    = "bip_out"
	ExprBipSingle = "bip_single"
	ExprBipDouble = "bip_double"
	ExprBipTriple = "bip_triple"
	ExprBipHomer  = "bip_homer"

	// Batted-ball type weights.
	ExprBipGround = "bip_ground"
	ExprBipFly    = "bip_fly"
	ExprBipLine   = "bip_line"
)

// defaults are the built-in model expressions.
var defaults = map[string]string{
	ExprHitByPitch: "0.003",
	ExprZone:       "0.435 + 0.10 * pitcher.control",
	ExprSwingZone:  "0.68",
	ExprChase:      "0.34 * (1.0 - 0.45 * batter.patience)",
	ExprContact:    "clamp(0.58 + 0.22 * batter.contact - 0.18 * pitcher.stuff + count_adj, 0.10, 0.95)",
	ExprFoul:       "strikes >= 2 ? 0.46 : 0.38",

	ExprBipOut:    "4.6 - 0.5 * batter.power",
	ExprBipSingle: "1.0",
	ExprBipDouble: "0.30 + 0.12 * batter.power",
	ExprBipTriple: "0.035",
	ExprBipHomer:  "clamp(0.10 + 0.45 * batter.power - 0.10 * pitcher.stuff, 0.02, 1.0)",

	ExprBipGround: "0.44",
	ExprBipFly:    "0.36",
	ExprBipLine:   "0.20",
}

// probabilities lists the expressions that must land in [0, 1]; every other
// expression is a weight and only needs to be non-negative.
var probabilities = map[string]bool{
	ExprHitByPitch: true,
	ExprZone:       true,
	ExprSwingZone:  true,
	ExprChase:      true,
	ExprContact:    true,
	ExprFoul:       true,
}

// Model is the compiled probability model. It is immutable after
// construction and safe to share across concurrently running games.
type Model struct {
	env   *cel.Env
	progs map[string]cel.Program
}

// Vars is the evaluation context for one decision.
type Vars struct {
	Batter  map[string]float64
	Pitcher map[string]float64
	Balls   int
	Strikes int
	// CountAdj is the count-dependent contact adjustment computed by the
	// at-bat engine (negative at two strikes, positive in hitter counts).
	CountAdj float64
}

func (v Vars) activation() map[string]any {
	batter := v.Batter
	if batter == nil {
		batter = map[string]float64{}
	}
	pitcher := v.Pitcher
	if pitcher == nil {
		pitcher = map[string]float64{}
	}
	return map[string]any{
		"batter":    batter,
		"pitcher":   pitcher,
		"balls":     v.Balls,
		"strikes":   v.Strikes,
		"count_adj": v.CountAdj,
	}
}

func newEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("batter", cel.MapType(cel.StringType, cel.DoubleType)),
		cel.Variable("pitcher", cel.MapType(cel.StringType, cel.DoubleType)),
		cel.Variable("balls", cel.IntType),
		cel.Variable("strikes", cel.IntType),
		cel.Variable("count_adj", cel.DoubleType),

		cel.Function("clamp",
			cel.Overload("clamp_double",
				[]*cel.Type{cel.DoubleType, cel.DoubleType, cel.DoubleType},
				cel.DoubleType,
				cel.FunctionBinding(func(args ...ref.Val) ref.Val {
					x := args[0].Value().(float64)
					lo := args[1].Value().(float64)
					hi := args[2].Value().(float64)
					if x < lo {
						x = lo
					}
					if x > hi {
						x = hi
					}
					return types.Double(x)
				}),
			),
		),
	)
}

// Default builds the model from the built-in expressions.
func Default() (*Model, error) {
	return compile(defaults)
}

// FromFile builds the model from a yaml file of expression overrides merged
// over the defaults. Unknown keys are rejected so typos fail loudly.
func FromFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model file %s: %w", path, err)
	}
	defer f.Close()

	var overrides map[string]string
	if err := yaml.NewDecoder(f).Decode(&overrides); err != nil {
		return nil, fmt.Errorf("failed to decode model file %s: %w", path, err)
	}

	merged := make(map[string]string, len(defaults))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range overrides {
		if _, ok := defaults[k]; !ok {
			return nil, fmt.Errorf("%w: unknown expression %q in %s", ErrBadModel, k, path)
		}
		merged[k] = v
	}
	return compile(merged)
}

func compile(exprs map[string]string) (*Model, error) {
	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to build model environment: %w", err)
	}

	m := &Model{env: env, progs: make(map[string]cel.Program, len(exprs))}
	for name, expr := range exprs {
		ast, iss := env.Compile(expr)
		if iss.Err() != nil {
			return nil, fmt.Errorf("%w: %q does not compile: %v", ErrBadModel, name, iss.Err())
		}
		prog, err := env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrBadModel, name, err)
		}
		m.progs[name] = prog
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// validate probes every expression against representative inputs so a bad
// model is rejected at load time, not mid-game.
func (m *Model) validate() error {
	samples := []Vars{
		{Batter: ratings(0, 0, 0, 0), Pitcher: ratings2(0, 0)},
		{Batter: ratings(0.5, 0.5, 0.5, 0.5), Pitcher: ratings2(0.5, 0.5), Balls: 2, Strikes: 1, CountAdj: 0.05},
		{Batter: ratings(1, 1, 1, 1), Pitcher: ratings2(1, 1), Balls: 3, Strikes: 2, CountAdj: -0.07},
	}
	for name := range m.progs {
		for _, vars := range samples {
			v, err := m.Eval(name, vars)
			if err != nil {
				return fmt.Errorf("%w: %q failed validation: %v", ErrBadModel, name, err)
			}
			if probabilities[name] && (v < 0 || v > 1) {
				return fmt.Errorf("%w: %q evaluates to %v, want a probability in [0,1]", ErrBadModel, name, v)
			}
			if v < 0 {
				return fmt.Errorf("%w: %q evaluates to negative weight %v", ErrBadModel, name, v)
			}
		}
	}
	return nil
}

// Eval evaluates one named expression. Evaluation is pure: the same vars
// always produce the same value, which is what keeps seeded games
// reproducible.
func (m *Model) Eval(name string, vars Vars) (float64, error) {
	prog, ok := m.progs[name]
	if !ok {
		return 0, fmt.Errorf("%w: unknown expression %q", ErrBadModel, name)
	}
	out, _, err := prog.Eval(vars.activation())
	if err != nil {
		return 0, fmt.Errorf("model expression %q: %w", name, err)
	}
	d, ok := out.Value().(float64)
	if !ok {
		return 0, fmt.Errorf("%w: %q evaluated to %T, want double", ErrBadModel, name, out.Value())
	}
	return d, nil
}

// Weights evaluates a group of weight expressions in the given order.
func (m *Model) Weights(names []string, vars Vars) ([]float64, error) {
	out := make([]float64, len(names))
	for i, name := range names {
		v, err := m.Eval(name, vars)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func ratings(contact, power, patience, speed float64) map[string]float64 {
	return map[string]float64{"contact": contact, "power": power, "patience": patience, "speed": speed}
}

func ratings2(control, stuff float64) map[string]float64 {
	return map[string]float64{"control": control, "stuff": stuff}
}
