package sim

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dugoutlab/dugout/internal/roster"
)

func fixtureTeam(name, short string, base float64) *roster.Team {
	t := &roster.Team{Name: name, Short: short}
	for i := 0; i < 9; i++ {
		spread := float64(i) * 0.03
		t.Batters = append(t.Batters, roster.Batter{
			Name:     fmt.Sprintf("%s Batter %d", short, i+1),
			Contact:  base + spread*0.5,
			Power:    base - spread*0.3,
			Patience: base,
			Speed:    base + spread*0.2,
		})
	}
	t.Pitchers = append(t.Pitchers, roster.Pitcher{
		Name:    short + " Starter",
		Control: base,
		Stuff:   base,
	})
	return t
}

func fixtureConfig(seed int64) Config {
	return Config{
		Seed:   seed,
		Away:   fixtureTeam("Hartford Harbormen", "HAR", 0.45),
		Home:   fixtureTeam("Providence Grays", "PVD", 0.55),
		Lineup: roster.FirstNine,
	}
}

func runGame(t *testing.T, seed int64) *GameResult {
	t.Helper()
	g, err := New(fixtureConfig(seed))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := g.Run()
	if err != nil {
		t.Fatalf("Run (seed %d): %v", seed, err)
	}
	return res
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := fixtureConfig(1)
	cfg.Seed = 0
	if _, err := New(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("zero seed: expected ErrInvalidConfig, got %v", err)
	}

	cfg = fixtureConfig(1)
	cfg.Home = nil
	if _, err := New(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("nil team: expected ErrInvalidConfig, got %v", err)
	}

	cfg = fixtureConfig(1)
	cfg.Home.Short = cfg.Away.Short
	if _, err := New(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("duplicate shorts: expected ErrInvalidConfig, got %v", err)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	first := runGame(t, 42)
	second := runGame(t, 42)

	if first.PlayLog() != second.PlayLog() {
		t.Fatal("same seed produced different play logs")
	}
	if first.Digest() != second.Digest() {
		t.Fatal("same seed produced different digests")
	}
	if len(first.Digest()) != 64 {
		t.Errorf("digest length %d, want 64 hex chars", len(first.Digest()))
	}

	other := runGame(t, 43)
	if other.Digest() == first.Digest() {
		t.Error("different seeds produced the same digest")
	}
}

func TestRunInvariants(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		res := runGame(t, seed)

		if !res.Final.Final {
			t.Fatalf("seed %d: result is not final", seed)
		}
		if res.Final.AwayScore == res.Final.HomeScore {
			t.Errorf("seed %d: game ended tied %d-%d", seed, res.Final.AwayScore, res.Final.HomeScore)
		}
		if res.Final.Inning < 9 {
			t.Errorf("seed %d: game ended in inning %d", seed, res.Final.Inning)
		}
		if len(res.Log) == 0 {
			t.Fatalf("seed %d: empty play log", seed)
		}

		for _, p := range res.Log {
			if p.OutsAfter < 0 || p.OutsAfter > 3 {
				t.Errorf("seed %d play %d: outs after = %d", seed, p.Number, p.OutsAfter)
			}
			if p.RunsCredited < 0 || p.RunsCredited > 4 {
				t.Errorf("seed %d play %d: runs credited = %d", seed, p.Number, p.RunsCredited)
			}
			scored := 0
			for _, m := range p.Resolution.Moves {
				if m.Scored {
					scored++
				}
			}
			if scored != p.Resolution.Runs {
				t.Errorf("seed %d play %d: %d scoring moves for %d runs",
					seed, p.Number, scored, p.Resolution.Runs)
			}
		}

		last := res.Log[len(res.Log)-1]
		if !last.WalkOff && last.OutsAfter != 3 {
			t.Errorf("seed %d: game ended mid-inning without a walk-off (outs=%d)",
				seed, last.OutsAfter)
		}

		// A game decided by the final out of the bottom of the 9th means
		// both pitchers recorded a full 27 outs.
		if !last.WalkOff && last.Inning == 9 && last.Half == Bottom {
			if got := res.Box.Away.Pitching.Outs; got != 27 {
				t.Errorf("seed %d: away pitcher recorded %d outs, want 27", seed, got)
			}
			if got := res.Box.Home.Pitching.Outs; got != 27 {
				t.Errorf("seed %d: home pitcher recorded %d outs, want 27", seed, got)
			}
		}
	}
}

func TestRunScoresMatchBoxScore(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		res := runGame(t, seed)

		if got := res.Box.Away.TotalRuns(); got != res.Final.AwayScore {
			t.Errorf("seed %d: away box runs %d, final %d", seed, got, res.Final.AwayScore)
		}
		if got := res.Box.Home.TotalRuns(); got != res.Final.HomeScore {
			t.Errorf("seed %d: home box runs %d, final %d", seed, got, res.Final.HomeScore)
		}
	}
}

func TestRunPlayLogShape(t *testing.T) {
	res := runGame(t, 42)

	lines := strings.Split(res.PlayLog(), "\n")
	if len(lines) != len(res.Log) {
		t.Fatalf("%d lines for %d plays", len(lines), len(res.Log))
	}
	if !strings.HasPrefix(lines[0], "T1 HAR #1 ") {
		t.Errorf("first line %q should open with the away leadoff hitter in the top of the 1st", lines[0])
	}
	for i, line := range lines {
		if strings.TrimRight(line, " \t") != line {
			t.Errorf("line %d carries trailing whitespace", i+1)
		}
	}

	last := res.Log[len(res.Log)-1]
	if last.WalkOff && !strings.HasSuffix(lines[len(lines)-1], " WALKOFF") {
		t.Error("walk-off play is missing its log marker")
	}
}

func TestRunNineInningRegulationEnd(t *testing.T) {
	// A regulation win that is not a walk-off must end on the third out of
	// a 9th-or-later half-inning.
	for seed := int64(1); seed <= 20; seed++ {
		res := runGame(t, seed)
		last := res.Log[len(res.Log)-1]
		if last.WalkOff {
			continue
		}
		if last.OutsAfter != 3 || last.Inning < 9 {
			t.Errorf("seed %d: final play %s%d with %d outs",
				seed, last.Half.Letter(), last.Inning, last.OutsAfter)
		}
	}
}
