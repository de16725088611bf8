package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dugoutlab/dugout/internal/persistence"
	"github.com/dugoutlab/dugout/internal/roster"
	"github.com/dugoutlab/dugout/internal/rules"
	"github.com/dugoutlab/dugout/internal/sim"
)

var gameCmd = &cobra.Command{
	Use:   "game [away] [home]",
	Short: "Simulate a single game between two teams",
	Long: `Simulates one game from a seed and prints the play-by-play log,
the box score, and the content digest.

Teams are resolved by file stem or short code inside the teams directory:

	dugout game har pvd --seed 42`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		seed, _ := cmd.Flags().GetInt64("seed")

		cfg, err := buildConfig(cmd, args[0], args[1], seed)
		if err != nil {
			return err
		}
		game, err := sim.New(cfg)
		if err != nil {
			return err
		}
		result, err := game.Run()
		if err != nil {
			return err
		}

		fmt.Println(result.PlayLog())
		fmt.Println()
		fmt.Print(result.Box.Render())
		fmt.Printf("\nFinal: %s %d, %s %d (%d innings)\n",
			result.Away, result.Final.AwayScore, result.Home, result.Final.HomeScore, result.Final.Inning)
		fmt.Printf("Digest: %s\n", result.Digest())

		logDir, _ := cmd.Flags().GetString("log-dir")
		if logDir == "" {
			logDir = viper.GetString("log_dir")
		}
		if logDir != "" {
			if err := storeResult(logDir, result); err != nil {
				return err
			}
		}
		return nil
	},
}

// buildConfig loads teams and the model, shared by game/batch/watch.
func buildConfig(cmd *cobra.Command, awayKey, homeKey string, seed int64) (sim.Config, error) {
	teamsDir := resolveTeamsDir(cmd)

	away, err := roster.FindTeam(teamsDir, awayKey)
	if err != nil {
		return sim.Config{}, err
	}
	home, err := roster.FindTeam(teamsDir, homeKey)
	if err != nil {
		return sim.Config{}, err
	}

	var model *rules.Model
	if path := resolveModelFile(cmd); path != "" {
		model, err = rules.FromFile(path)
	} else {
		model, err = rules.Default()
	}
	if err != nil {
		return sim.Config{}, err
	}

	return sim.Config{Seed: seed, Away: away, Home: home, Model: model}, nil
}

func storeResult(dir string, result *sim.GameResult) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	path := filepath.Join(dir, result.ID+".jsonl")
	store, err := persistence.NewStore(path)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.WriteResult(result); err != nil {
		return err
	}
	slog.Info("game stored", "path", path, "seed", result.Seed, "digest", result.Digest())
	return nil
}

func init() {
	rootCmd.AddCommand(gameCmd)
	gameCmd.Flags().Int64("seed", 1, "Simulation seed (must be positive)")
	gameCmd.Flags().String("log-dir", "", "Persist the play log as JSONL into this directory")
}
