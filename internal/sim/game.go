package sim

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dugoutlab/dugout/internal/boxscore"
	"github.com/dugoutlab/dugout/internal/roster"
	"github.com/dugoutlab/dugout/internal/rules"
)

// Safety caps. Hitting either one is a fatal logic defect, reported with
// enough context to replay the failure from the seed.
const (
	maxInnings = 30
	maxPlays   = 1500
)

// Config describes one game to simulate.
type Config struct {
	Seed int64
	Away *roster.Team
	Home *roster.Team
	// Model defaults to rules.Default() when nil.
	Model *rules.Model
	// Lineup defaults to roster.ShuffledLineup when nil. Tests inject
	// roster.FirstNine for predictable orders.
	Lineup roster.LineupFunc
}

// PlayRecord is one play-log entry: everything needed to narrate and audit
// a single plate appearance.
type PlayRecord struct {
	Number  int  `json:"number"`
	Inning  int  `json:"inning"`
	Half    Half `json:"half"`

	Offense string `json:"offense"`
	Defense string `json:"defense"`
	Batter  string `json:"batter"`
	Slot    int    `json:"slot"`
	Pitcher string `json:"pitcher"`

	Balls   int `json:"balls"`
	Strikes int `json:"strikes"`
	Pitches int `json:"pitches"`

	Resolution PlayResolution `json:"resolution"`
	// RunsCredited is what actually went on the scoreboard; it differs from
	// Resolution.Runs only when the walk-off clamp applied.
	RunsCredited int  `json:"runs_credited"`
	WalkOff      bool `json:"walk_off"`
	OutsAfter    int  `json:"outs_after"`

	AwayScore int `json:"away_score"`
	HomeScore int `json:"home_score"`
}

// Line renders the normalized play-log line this entry contributes to the
// content digest.
func (p PlayRecord) Line() string {
	away, home := p.Offense, p.Defense
	if p.Half == Bottom {
		away, home = p.Defense, p.Offense
	}
	line := fmt.Sprintf("%s%d %s #%d %s vs %s: %s runs=%d rbi=%d outs=%d bases=%s %s %d - %s %d",
		p.Half.Letter(), p.Inning, p.Offense, p.Slot+1, p.Batter, p.Pitcher,
		p.Resolution.Tag, p.RunsCredited, p.Resolution.RBI, p.OutsAfter,
		p.Resolution.Bases, away, p.AwayScore, home, p.HomeScore)
	if p.WalkOff {
		line += " WALKOFF"
	}
	return line
}

// GameResult is the completed game: final state, ordered play log, and the
// accumulated box score.
type GameResult struct {
	ID   string
	Seed int64
	Away string
	Home string

	Final GameState
	Log   []PlayRecord
	Box   *boxscore.Game
}

// PlayLog joins the normalized log lines.
func (r *GameResult) PlayLog() string {
	lines := make([]string, len(r.Log))
	for i, p := range r.Log {
		lines[i] = p.Line()
	}
	return strings.Join(lines, "\n")
}

// Digest is the externally checkable determinism artifact: a sha256 over
// the normalized play log (trailing whitespace trimmed per line,
// newline-joined). Equal seeds and teams produce equal digests, always.
func (r *GameResult) Digest() string {
	lines := make([]string, len(r.Log))
	for i, p := range r.Log {
		lines[i] = strings.TrimRight(p.Line(), " \t")
	}
	sum := sha256.Sum256([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(sum[:])
}

// Game drives one simulation from first pitch to final out. It is the sole
// owner of the draw stream and the current state; nothing downstream ever
// holds either.
type Game struct {
	cfg   Config
	src   Source
	model *rules.Model
	state GameState

	awayLineup []roster.Batter
	homeLineup []roster.Batter

	box *boxscore.Game
	log []PlayRecord
}

// New validates the configuration and prepares a game. Lineups are drawn
// here, before the first pitch, so their draws occupy a fixed position in
// the stream.
func New(cfg Config) (*Game, error) {
	if cfg.Seed <= 0 {
		return nil, fmt.Errorf("%w: seed must be positive, got %d", ErrInvalidConfig, cfg.Seed)
	}
	if cfg.Away == nil || cfg.Home == nil {
		return nil, fmt.Errorf("%w: both teams are required", ErrInvalidConfig)
	}
	if cfg.Away.Short == cfg.Home.Short {
		return nil, fmt.Errorf("%w: teams share the identifier %q", ErrInvalidConfig, cfg.Away.Short)
	}

	model := cfg.Model
	if model == nil {
		var err error
		model, err = rules.Default()
		if err != nil {
			return nil, err
		}
	}
	lineupFn := cfg.Lineup
	if lineupFn == nil {
		lineupFn = roster.ShuffledLineup
	}

	src := NewStream(cfg.Seed)
	awayLineup, err := lineupFn(cfg.Away, src)
	if err != nil {
		return nil, fmt.Errorf("away lineup: %w", err)
	}
	homeLineup, err := lineupFn(cfg.Home, src)
	if err != nil {
		return nil, fmt.Errorf("home lineup: %w", err)
	}

	return &Game{
		cfg:        cfg,
		src:        src,
		model:      model,
		state:      NewGameState(cfg.Away.Short, cfg.Home.Short),
		awayLineup: awayLineup,
		homeLineup: homeLineup,
		box:        boxscore.New(cfg.Away.Short, cfg.Home.Short),
	}, nil
}

// Run simulates plate appearances until the game is final. A game either
// completes fully consistent or fails with an error; there is no partial
// result.
func (g *Game) Run() (*GameResult, error) {
	for !g.state.Final {
		if g.state.Inning > maxInnings {
			return nil, fmt.Errorf("%w: inning %d (seed %d, %s at %s)",
				ErrSafetyCap, g.state.Inning, g.cfg.Seed, g.cfg.Away.Short, g.cfg.Home.Short)
		}
		if len(g.log) >= maxPlays {
			return nil, fmt.Errorf("%w: %d plate appearances (seed %d, inning %d)",
				ErrSafetyCap, len(g.log), g.cfg.Seed, g.state.Inning)
		}
		if err := g.step(); err != nil {
			return nil, err
		}
	}

	return &GameResult{
		ID:    uuid.NewString(),
		Seed:  g.cfg.Seed,
		Away:  g.cfg.Away.Short,
		Home:  g.cfg.Home.Short,
		Final: g.state,
		Log:   g.log,
		Box:   g.box,
	}, nil
}

// step resolves one plate appearance: at-bat, conditional ball-in-play,
// runner advancement, then the single state mutation.
func (g *Game) step() error {
	slot := g.state.BatterIndex()
	var batter roster.Batter
	var pitcher roster.Pitcher
	if g.state.Offense == g.cfg.Home.Short {
		batter = g.homeLineup[slot]
		pitcher = g.cfg.Away.Starter()
	} else {
		batter = g.awayLineup[slot]
		pitcher = g.cfg.Home.Starter()
	}

	ab, err := simulateAtBat(g.model, batter, pitcher, g.src)
	if err != nil {
		return fmt.Errorf("seed %d, %s of inning %d: %w", g.cfg.Seed, g.state.Half, g.state.Inning, err)
	}

	var contact Contact
	var ballType BallType
	if ab.Terminal == TerminalInPlay {
		contact, ballType, err = resolveContact(g.model, batter, pitcher, g.src)
		if err != nil {
			return err
		}
	}

	res, err := ResolvePlay(ab.Terminal, contact, ballType, g.state.Bases, g.state.Outs, g.src)
	if err != nil {
		return err
	}

	prev := g.state
	next, walkoff, outsAfter, err := ApplyResolution(prev, res)
	if err != nil {
		return fmt.Errorf("seed %d, %s of inning %d: %w", g.cfg.Seed, prev.Half, prev.Inning, err)
	}

	credited := next.HomeScore - prev.HomeScore
	if prev.Offense == prev.AwayTeam {
		credited = next.AwayScore - prev.AwayScore
	}

	rec := PlayRecord{
		Number:       len(g.log) + 1,
		Inning:       prev.Inning,
		Half:         prev.Half,
		Offense:      prev.Offense,
		Defense:      prev.Defense,
		Batter:       batter.Name,
		Slot:         slot,
		Pitcher:      pitcher.Name,
		Balls:        ab.Balls,
		Strikes:      ab.Strikes,
		Pitches:      ab.Pitches,
		Resolution:   res,
		RunsCredited: credited,
		WalkOff:      walkoff,
		OutsAfter:    outsAfter,
		AwayScore:    next.AwayScore,
		HomeScore:    next.HomeScore,
	}
	g.log = append(g.log, rec)
	g.box.Record(statEvent(rec))
	g.state = next
	return nil
}

// statEvent derives the box-score increment from a resolved play. Nothing
// else in the system increments statistics.
func statEvent(rec PlayRecord) boxscore.Event {
	res := rec.Resolution
	unearned := 0
	if res.Error {
		unearned = rec.RunsCredited
	}
	return boxscore.Event{
		Inning:     rec.Inning,
		BottomHalf: rec.Half == Bottom,

		BattingTeam:  rec.Offense,
		PitchingTeam: rec.Defense,
		Slot:         rec.Slot,
		Batter:       rec.Batter,
		Pitcher:      rec.Pitcher,

		PlateAppearance: true,
		AtBat: res.Outcome != OutcomeWalk &&
			res.Outcome != OutcomeHitByPitch &&
			res.Outcome != OutcomeSacFly,
		Hit:        res.Outcome.IsHit(),
		Double:     res.Outcome == OutcomeDouble,
		Triple:     res.Outcome == OutcomeTriple,
		HomeRun:    res.Outcome == OutcomeHomeRun,
		Walk:       res.Outcome == OutcomeWalk,
		Strikeout:  res.Outcome == OutcomeStrikeout,
		HitByPitch: res.Outcome == OutcomeHitByPitch,
		SacFly:     res.SacFly,
		Error:      res.Error,

		RBI:          res.RBI,
		Runs:         rec.RunsCredited,
		UnearnedRuns: unearned,
		Outs:         res.OutsAdded,
	}
}
