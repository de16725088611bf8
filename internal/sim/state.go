package sim

import "fmt"

// Half identifies which part of the inning is being played.
type Half int

const (
	Top Half = iota
	Bottom
)

func (h Half) String() string {
	if h == Bottom {
		return "bottom"
	}
	return "top"
}

// Letter is the compact form used in play-log lines ("T" / "B").
func (h Half) Letter() string {
	if h == Bottom {
		return "B"
	}
	return "T"
}

// BaseState tracks base occupancy as three independent booleans. It carries
// no runner identity: which lineup slot stands on a base is unknown, which
// is why individual batters are never credited with runs scored as runners.
type BaseState struct {
	First  bool `json:"first"`
	Second bool `json:"second"`
	Third  bool `json:"third"`
}

// Occupied reports how many bases hold a runner.
func (b BaseState) Occupied() int {
	n := 0
	if b.First {
		n++
	}
	if b.Second {
		n++
	}
	if b.Third {
		n++
	}
	return n
}

// Loaded reports whether all three bases are occupied.
func (b BaseState) Loaded() bool { return b.First && b.Second && b.Third }

func (b BaseState) String() string {
	mark := func(occ bool, s string) string {
		if occ {
			return s
		}
		return "-"
	}
	return mark(b.First, "1") + mark(b.Second, "2") + mark(b.Third, "3")
}

// GameState is the authoritative snapshot of a game between plate
// appearances. It is a value type: ApplyResolution returns a replacement
// state and never mutates the previous one.
type GameState struct {
	Inning  int       `json:"inning"`
	Half    Half      `json:"half"`
	Outs    int       `json:"outs"`
	Balls   int       `json:"balls"`
	Strikes int       `json:"strikes"`
	Bases   BaseState `json:"bases"`

	AwayTeam string `json:"away_team"`
	HomeTeam string `json:"home_team"`
	Offense  string `json:"offense"`
	Defense  string `json:"defense"`

	AwayScore int `json:"away_score"`
	HomeScore int `json:"home_score"`

	// Next lineup slot (0-8) due up for each side.
	AwayBatter int `json:"away_batter"`
	HomeBatter int `json:"home_batter"`

	Final bool `json:"final"`
}

// NewGameState creates the pre-first-pitch state: top of the 1st, the away
// team batting.
func NewGameState(away, home string) GameState {
	return GameState{
		Inning:   1,
		Half:     Top,
		AwayTeam: away,
		HomeTeam: home,
		Offense:  away,
		Defense:  home,
	}
}

// OffenseScore returns the batting team's current run total.
func (s GameState) OffenseScore() int {
	if s.Offense == s.HomeTeam {
		return s.HomeScore
	}
	return s.AwayScore
}

// BatterIndex returns the lineup slot due up for the batting team.
func (s GameState) BatterIndex() int {
	if s.Offense == s.HomeTeam {
		return s.HomeBatter
	}
	return s.AwayBatter
}

// check verifies the structural invariants every authoritative state must
// hold. A violation here is an internal-consistency defect, never user error.
func (s GameState) check() error {
	if s.Outs < 0 || s.Outs > 3 {
		return fmt.Errorf("%w: outs=%d", ErrInconsistentState, s.Outs)
	}
	if s.Offense == s.Defense {
		return fmt.Errorf("%w: offense and defense are both %q", ErrInconsistentState, s.Offense)
	}
	offHome := s.Offense == s.HomeTeam
	offAway := s.Offense == s.AwayTeam
	if offHome == offAway {
		return fmt.Errorf("%w: offense %q is neither home nor away", ErrInconsistentState, s.Offense)
	}
	if s.AwayScore < 0 || s.HomeScore < 0 {
		return fmt.Errorf("%w: negative score %d-%d", ErrInconsistentState, s.AwayScore, s.HomeScore)
	}
	return nil
}
