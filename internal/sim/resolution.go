package sim

import "fmt"

// Terminal is how a plate appearance ended at the pitch level.
type Terminal int

const (
	TerminalStrikeout Terminal = iota
	TerminalWalk
	TerminalHitByPitch
	TerminalInPlay
)

func (t Terminal) String() string {
	switch t {
	case TerminalStrikeout:
		return "strikeout"
	case TerminalWalk:
		return "walk"
	case TerminalHitByPitch:
		return "hit by pitch"
	case TerminalInPlay:
		return "in play"
	default:
		return fmt.Sprintf("terminal(%d)", int(t))
	}
}

// Contact is the batted-ball outcome drawn for a ball put in play.
type Contact int

const (
	ContactOut Contact = iota
	ContactSingle
	ContactDouble
	ContactTriple
	ContactHomeRun
)

func (c Contact) String() string {
	switch c {
	case ContactOut:
		return "out"
	case ContactSingle:
		return "single"
	case ContactDouble:
		return "double"
	case ContactTriple:
		return "triple"
	case ContactHomeRun:
		return "home run"
	default:
		return fmt.Sprintf("contact(%d)", int(c))
	}
}

// BallType classifies the trajectory of a batted ball.
type BallType int

const (
	GroundBall BallType = iota
	FlyBall
	LineDrive
)

func (b BallType) String() string {
	switch b {
	case GroundBall:
		return "ground ball"
	case FlyBall:
		return "fly ball"
	case LineDrive:
		return "line drive"
	default:
		return fmt.Sprintf("balltype(%d)", int(b))
	}
}

// Outcome is the resolved category of a full plate appearance.
type Outcome int

const (
	OutcomeStrikeout Outcome = iota
	OutcomeWalk
	OutcomeHitByPitch
	OutcomeOut
	OutcomeDoublePlay
	OutcomeSacFly
	OutcomeError
	OutcomeSingle
	OutcomeDouble
	OutcomeTriple
	OutcomeHomeRun
)

func (o Outcome) String() string {
	switch o {
	case OutcomeStrikeout:
		return "strikeout"
	case OutcomeWalk:
		return "walk"
	case OutcomeHitByPitch:
		return "hit by pitch"
	case OutcomeOut:
		return "out"
	case OutcomeDoublePlay:
		return "double play"
	case OutcomeSacFly:
		return "sacrifice fly"
	case OutcomeError:
		return "reached on error"
	case OutcomeSingle:
		return "single"
	case OutcomeDouble:
		return "double"
	case OutcomeTriple:
		return "triple"
	case OutcomeHomeRun:
		return "home run"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// IsHit reports whether the outcome counts as a base hit.
func (o Outcome) IsHit() bool {
	switch o {
	case OutcomeSingle, OutcomeDouble, OutcomeTriple, OutcomeHomeRun:
		return true
	}
	return false
}

// RunnerMove records one runner's advancement during a play. Origin 0 is
// the batter; destination 4 is home plate.
type RunnerMove struct {
	From   int  `json:"from"`
	To     int  `json:"to"`
	Scored bool `json:"scored"`
	Forced bool `json:"forced"`
}

// PlayResolution is the complete, immutable description of what one plate
// appearance did to the game. It is produced by ResolvePlay, consumed once
// by ApplyResolution and the play log, then discarded.
type PlayResolution struct {
	Outcome Outcome `json:"outcome"`
	// Tag is the scorebook shorthand used in log lines ("K", "BB", "GIDP",
	// "E5", "HR", ...).
	Tag string `json:"tag"`

	OutsAdded int `json:"outs_added"` // 0-3
	Runs      int `json:"runs"`       // 0-4
	RBI       int `json:"rbi"`

	Bases BaseState `json:"bases"` // occupancy after the play
	// BasesBefore is the snapshot taken before the play was applied. It is
	// captured unconditionally, before any half-inning-ending consequence is
	// known, and must never be rewritten afterwards.
	BasesBefore BaseState `json:"bases_before"`

	DoublePlay bool `json:"double_play,omitempty"`
	SacFly     bool `json:"sac_fly,omitempty"`
	Error      bool `json:"error,omitempty"`

	// ErrorPosition names the fielder charged on a reach-on-error ("E5").
	// Cosmetic only; drawn after the core resolution is complete.
	ErrorPosition string `json:"error_position,omitempty"`

	Moves []RunnerMove `json:"moves,omitempty"`
}

// check validates the resolution's internal invariants.
func (r PlayResolution) check() error {
	if r.OutsAdded < 0 || r.OutsAdded > 3 {
		return fmt.Errorf("%w: outs added %d", ErrInconsistentState, r.OutsAdded)
	}
	if r.Runs < 0 || r.Runs > 4 {
		return fmt.Errorf("%w: runs scored %d", ErrInconsistentState, r.Runs)
	}
	scored := 0
	for _, m := range r.Moves {
		if m.Scored {
			scored++
		}
	}
	if scored != r.Runs {
		return fmt.Errorf("%w: %d scoring moves for %d runs", ErrInconsistentState, scored, r.Runs)
	}
	return nil
}
