package boxscore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleBy(team, pitchingTeam string, slot int, name string) Event {
	return Event{
		Inning:          1,
		BattingTeam:     team,
		PitchingTeam:    pitchingTeam,
		Slot:            slot,
		Batter:          name,
		Pitcher:         "Starter",
		PlateAppearance: true,
		AtBat:           true,
		Hit:             true,
	}
}

func TestRecordAccumulatesBatting(t *testing.T) {
	g := New("HAR", "PVD")

	g.Record(singleBy("HAR", "PVD", 0, "Ames"))
	g.Record(singleBy("HAR", "PVD", 0, "Ames"))
	g.Record(Event{
		Inning: 2, BattingTeam: "HAR", PitchingTeam: "PVD", Slot: 0, Batter: "Ames",
		Pitcher: "Starter", PlateAppearance: true, Walk: true,
	})

	line := g.Away.Batting[0]
	assert.Equal(t, "Ames", line.Name)
	assert.Equal(t, 3, line.PA)
	assert.Equal(t, 2, line.AB) // the walk is not an at-bat
	assert.Equal(t, 2, line.Hits)
	assert.Equal(t, 1, line.Walks)
}

func TestRecordLineScoreByInning(t *testing.T) {
	g := New("HAR", "PVD")

	hr := singleBy("HAR", "PVD", 3, "Dahlen")
	hr.Inning = 4
	hr.HomeRun = true
	hr.RBI = 2
	hr.Runs = 2
	g.Record(hr)

	require.Len(t, g.Away.Innings, 4)
	assert.Equal(t, []int{0, 0, 0, 2}, g.Away.Innings)
	assert.Equal(t, 2, g.Away.TotalRuns())
	assert.Equal(t, 1, g.Away.TotalHits())
	assert.Equal(t, 2, g.Away.Batting[3].RBI)
}

func TestRecordPitchingAndErrors(t *testing.T) {
	g := New("HAR", "PVD")

	g.Record(Event{
		Inning: 1, BattingTeam: "HAR", PitchingTeam: "PVD", Slot: 0, Batter: "Ames",
		Pitcher: "Whitney", PlateAppearance: true, AtBat: true, Strikeout: true, Outs: 1,
	})
	g.Record(Event{
		Inning: 1, BattingTeam: "HAR", PitchingTeam: "PVD", Slot: 1, Batter: "Boone",
		Pitcher: "Whitney", PlateAppearance: true, AtBat: true, Error: true,
		Runs: 1, UnearnedRuns: 1,
	})

	p := g.Home.Pitching
	assert.Equal(t, "Whitney", p.Name)
	assert.Equal(t, 2, p.BattersFaced)
	assert.Equal(t, 1, p.Strikeouts)
	assert.Equal(t, 1, p.Runs)
	assert.Equal(t, 0, p.EarnedRuns)
	// Errors are charged to the fielding side's sheet.
	assert.Equal(t, 1, g.Home.Errors)
	assert.Equal(t, 0, g.Away.Errors)
}

func TestInningsPitched(t *testing.T) {
	cases := []struct {
		outs int
		want string
	}{
		{0, "0.0"},
		{3, "1.0"},
		{19, "6.1"},
		{27, "9.0"},
	}
	for _, tc := range cases {
		p := PitchingLine{Outs: tc.outs}
		assert.Equal(t, tc.want, p.IP(), "outs=%d", tc.outs)
	}
}

func TestRender(t *testing.T) {
	g := New("HAR", "PVD")
	hit := singleBy("HAR", "PVD", 0, "Ames")
	hit.Runs = 1
	hit.RBI = 1
	g.Record(hit)
	g.Record(Event{
		Inning: 1, BattingTeam: "PVD", PitchingTeam: "HAR", BottomHalf: true, Slot: 0,
		Batter: "Boone", Pitcher: "Joss", PlateAppearance: true, AtBat: true,
		Strikeout: true, Outs: 1,
	})

	out := g.Render()
	assert.Contains(t, out, "R  H  E")
	assert.Contains(t, out, "HAR batting")
	assert.Contains(t, out, "PVD batting")
	assert.Contains(t, out, "Ames")
	assert.Contains(t, out, "Pitching")
	assert.Contains(t, out, "Joss (HAR)")

	// The away line score row shows the run.
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "HAR ") {
			assert.Contains(t, line, "1")
		}
	}
}
