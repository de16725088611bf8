package roster

import "fmt"

// LineupSize is the number of batting-order slots.
const LineupSize = 9

// Shuffler is the randomness a lineup generator is allowed to consume.
// The game's draw stream satisfies it.
type Shuffler interface {
	Intn(n int) int
}

// LineupFunc produces an ordered batting lineup for a team. It is an
// injectable capability so tests can supply a fixed, predictable order.
type LineupFunc func(team *Team, src Shuffler) ([]Batter, error)

// ShuffledLineup is the default generator: a Fisher-Yates shuffle of the
// roster driven by the provided stream, truncated to nine slots. The draws
// it consumes are part of the game's deterministic sequence.
func ShuffledLineup(team *Team, src Shuffler) ([]Batter, error) {
	if len(team.Batters) < LineupSize {
		return nil, fmt.Errorf("%w: team %q cannot fill a lineup", ErrBadTeamFile, team.Name)
	}
	order := make([]Batter, len(team.Batters))
	copy(order, team.Batters)
	for i := len(order) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		order[i], order[j] = order[j], order[i]
	}
	return order[:LineupSize], nil
}

// FirstNine takes the roster in file order without consuming any draws.
// Useful for reproducible fixtures and in tests.
func FirstNine(team *Team, _ Shuffler) ([]Batter, error) {
	if len(team.Batters) < LineupSize {
		return nil, fmt.Errorf("%w: team %q cannot fill a lineup", ErrBadTeamFile, team.Name)
	}
	out := make([]Batter, LineupSize)
	copy(out, team.Batters[:LineupSize])
	return out, nil
}
