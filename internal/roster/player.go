// Package roster loads team files and produces batting orders.
package roster

import (
	"errors"
	"fmt"
)

// ErrBadTeamFile indicates a team file failed validation.
var ErrBadTeamFile = errors.New("invalid team file")

// Batter holds the offensive ratings the simulation consumes. All ratings
// are normalized to [0, 1].
type Batter struct {
	Name     string  `yaml:"name" json:"name"`
	Contact  float64 `yaml:"contact" json:"contact"`
	Power    float64 `yaml:"power" json:"power"`
	Patience float64 `yaml:"patience" json:"patience"`
	Speed    float64 `yaml:"speed" json:"speed"`
}

// Pitcher holds the pitching ratings, normalized to [0, 1].
type Pitcher struct {
	Name    string  `yaml:"name" json:"name"`
	Control float64 `yaml:"control" json:"control"`
	Stuff   float64 `yaml:"stuff" json:"stuff"`
}

// Team is a loaded team file: a display name, a short code for log lines,
// and enough players to field a lineup.
type Team struct {
	Name     string    `yaml:"name"`
	Short    string    `yaml:"short"`
	Batters  []Batter  `yaml:"batters"`
	Pitchers []Pitcher `yaml:"pitchers"`
}

// Validate checks the team can actually play a game.
func (t *Team) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("%w: missing team name", ErrBadTeamFile)
	}
	if t.Short == "" {
		return fmt.Errorf("%w: team %q has no short code", ErrBadTeamFile, t.Name)
	}
	if len(t.Batters) < LineupSize {
		return fmt.Errorf("%w: team %q has %d batters, need %d", ErrBadTeamFile, t.Name, len(t.Batters), LineupSize)
	}
	if len(t.Pitchers) == 0 {
		return fmt.Errorf("%w: team %q has no pitchers", ErrBadTeamFile, t.Name)
	}
	for _, b := range t.Batters {
		if b.Name == "" {
			return fmt.Errorf("%w: team %q has an unnamed batter", ErrBadTeamFile, t.Name)
		}
		for _, r := range []float64{b.Contact, b.Power, b.Patience, b.Speed} {
			if r < 0 || r > 1 {
				return fmt.Errorf("%w: batter %q rating %v out of [0,1]", ErrBadTeamFile, b.Name, r)
			}
		}
	}
	for _, p := range t.Pitchers {
		if p.Name == "" {
			return fmt.Errorf("%w: team %q has an unnamed pitcher", ErrBadTeamFile, t.Name)
		}
		if p.Control < 0 || p.Control > 1 || p.Stuff < 0 || p.Stuff > 1 {
			return fmt.Errorf("%w: pitcher %q rating out of [0,1]", ErrBadTeamFile, p.Name)
		}
	}
	return nil
}

// Starter returns the pitcher who starts (and in this version finishes)
// the game.
func (t *Team) Starter() Pitcher {
	return t.Pitchers[0]
}
