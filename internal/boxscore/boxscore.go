// Package boxscore accumulates the statistic events emitted by the game
// loop into batting lines, pitching lines, and a line score, and renders
// them as text. It never computes game outcomes itself: every increment
// derives from fields already present on the play that produced it.
package boxscore

import (
	"fmt"
	"strings"
)

// Event is one statistic increment, derived entirely from a resolved play.
type Event struct {
	Inning     int
	BottomHalf bool

	BattingTeam  string
	PitchingTeam string
	Slot         int // lineup slot 0-8
	Batter       string
	Pitcher      string

	PlateAppearance bool
	AtBat           bool
	Hit             bool
	Double          bool
	Triple          bool
	HomeRun         bool
	Walk            bool
	Strikeout       bool
	HitByPitch      bool
	SacFly          bool
	Error           bool

	RBI  int
	Runs int
	// UnearnedRuns is the share of Runs charged as unearned (runs scoring
	// on a play with an error).
	UnearnedRuns int
	Outs         int
}

// BattingLine is one lineup slot's accumulated hitting stats.
type BattingLine struct {
	Name       string
	PA         int
	AB         int
	Hits       int
	Doubles    int
	Triples    int
	HomeRuns   int
	Walks      int
	Strikeouts int
	HitByPitch int
	RBI        int
}

// PitchingLine is one pitcher's accumulated stats.
type PitchingLine struct {
	Name            string
	BattersFaced    int
	Outs            int
	Hits            int
	Runs            int
	EarnedRuns      int
	Walks           int
	Strikeouts      int
	HomeRunsAllowed int
}

// IP renders outs recorded in thirds notation (19 outs -> "6.1").
func (p PitchingLine) IP() string {
	return fmt.Sprintf("%d.%d", p.Outs/3, p.Outs%3)
}

// TeamSheet holds one team's side of the box score.
type TeamSheet struct {
	Team     string
	Batting  [9]BattingLine
	Pitching PitchingLine
	// Runs per inning batted, 1-indexed by inning.
	Innings []int
	Errors  int
}

// Game accumulates both sides of a single game.
type Game struct {
	Away TeamSheet
	Home TeamSheet
}

// New creates an empty accumulator for the two teams.
func New(away, home string) *Game {
	return &Game{
		Away: TeamSheet{Team: away},
		Home: TeamSheet{Team: home},
	}
}

func (g *Game) sheet(team string) *TeamSheet {
	if team == g.Home.Team {
		return &g.Home
	}
	return &g.Away
}

// Record folds one statistic event into the sheets.
func (g *Game) Record(ev Event) {
	bat := g.sheet(ev.BattingTeam)
	pit := g.sheet(ev.PitchingTeam)

	if ev.Slot >= 0 && ev.Slot < len(bat.Batting) {
		line := &bat.Batting[ev.Slot]
		line.Name = ev.Batter
		if ev.PlateAppearance {
			line.PA++
		}
		if ev.AtBat {
			line.AB++
		}
		if ev.Hit {
			line.Hits++
		}
		if ev.Double {
			line.Doubles++
		}
		if ev.Triple {
			line.Triples++
		}
		if ev.HomeRun {
			line.HomeRuns++
		}
		if ev.Walk {
			line.Walks++
		}
		if ev.Strikeout {
			line.Strikeouts++
		}
		if ev.HitByPitch {
			line.HitByPitch++
		}
		line.RBI += ev.RBI
	}

	for len(bat.Innings) < ev.Inning {
		bat.Innings = append(bat.Innings, 0)
	}
	if ev.Inning >= 1 {
		bat.Innings[ev.Inning-1] += ev.Runs
	}
	if ev.Error {
		pit.Errors++
	}

	p := &pit.Pitching
	p.Name = ev.Pitcher
	if ev.PlateAppearance {
		p.BattersFaced++
	}
	p.Outs += ev.Outs
	if ev.Hit {
		p.Hits++
	}
	p.Runs += ev.Runs
	p.EarnedRuns += ev.Runs - ev.UnearnedRuns
	if ev.Walk {
		p.Walks++
	}
	if ev.Strikeout {
		p.Strikeouts++
	}
	if ev.HomeRun {
		p.HomeRunsAllowed++
	}
}

// TotalRuns sums a sheet's line score.
func (t TeamSheet) TotalRuns() int {
	total := 0
	for _, r := range t.Innings {
		total += r
	}
	return total
}

// TotalHits sums a sheet's batting hits.
func (t TeamSheet) TotalHits() int {
	total := 0
	for _, b := range t.Batting {
		total += b.Hits
	}
	return total
}

// Render produces the human-readable box score.
func (g *Game) Render() string {
	var sb strings.Builder

	g.renderLineScore(&sb)
	sb.WriteString("\n")
	g.renderBatting(&sb, g.Away)
	sb.WriteString("\n")
	g.renderBatting(&sb, g.Home)
	sb.WriteString("\n")
	g.renderPitching(&sb)

	return sb.String()
}

func (g *Game) renderLineScore(sb *strings.Builder) {
	innings := len(g.Away.Innings)
	if len(g.Home.Innings) > innings {
		innings = len(g.Home.Innings)
	}

	sb.WriteString(fmt.Sprintf("%-12s", ""))
	for i := 1; i <= innings; i++ {
		sb.WriteString(fmt.Sprintf("%3d", i))
	}
	sb.WriteString("    R  H  E\n")

	for _, t := range []TeamSheet{g.Away, g.Home} {
		sb.WriteString(fmt.Sprintf("%-12s", t.Team))
		for i := 0; i < innings; i++ {
			if i < len(t.Innings) {
				sb.WriteString(fmt.Sprintf("%3d", t.Innings[i]))
			} else {
				sb.WriteString("  x")
			}
		}
		sb.WriteString(fmt.Sprintf("  %3d%3d%3d\n", t.TotalRuns(), t.TotalHits(), t.Errors))
	}
}

func (g *Game) renderBatting(sb *strings.Builder, t TeamSheet) {
	sb.WriteString(fmt.Sprintf("%s batting\n", t.Team))
	sb.WriteString(fmt.Sprintf("  %-20s %3s %3s %3s %3s %3s %3s %4s\n", "", "PA", "AB", "H", "BB", "K", "HR", "RBI"))
	for i, b := range t.Batting {
		name := b.Name
		if name == "" {
			name = "-"
		}
		sb.WriteString(fmt.Sprintf("  %d %-18s %3d %3d %3d %3d %3d %3d %4d\n",
			i+1, name, b.PA, b.AB, b.Hits, b.Walks, b.Strikeouts, b.HomeRuns, b.RBI))
	}
}

func (g *Game) renderPitching(sb *strings.Builder) {
	sb.WriteString("Pitching\n")
	sb.WriteString(fmt.Sprintf("  %-20s %5s %3s %3s %3s %3s %3s %3s\n", "", "IP", "BF", "H", "R", "ER", "BB", "K"))
	for _, t := range []TeamSheet{g.Away, g.Home} {
		p := t.Pitching
		name := p.Name
		if name == "" {
			name = "-"
		}
		sb.WriteString(fmt.Sprintf("  %-20s %5s %3d %3d %3d %3d %3d %3d\n",
			name+" ("+t.Team+")", p.IP(), p.BattersFaced, p.Hits, p.Runs, p.EarnedRuns, p.Walks, p.Strikeouts))
	}
}
