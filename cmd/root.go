package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "dugout",
	Short: "Deterministic baseball game simulator",
	Long: `dugout simulates baseball games pitch by pitch from a seed.

The same seed and teams always replay the same game, byte for byte: the
play log carries a sha256 content digest you can compare across machines.

Team files live in a teams directory (see 'dugout game --help'); the
probability model can be tuned with a yaml model file without rebuilding.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().String("teams-dir", "", "Directory containing team yaml files")
	rootCmd.PersistentFlags().String("model", "", "Probability model override file (yaml)")
}

func initConfig() {
	viper.SetConfigName("dugout")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("DUGOUT")
	viper.AutomaticEnv()

	viper.SetDefault("teams_dir", "./teams")

	// A missing config file is fine; defaults and flags cover everything.
	_ = viper.ReadInConfig()
}

// resolveTeamsDir applies the flag > config > default resolution order.
func resolveTeamsDir(cmd *cobra.Command) string {
	if dir, _ := cmd.Flags().GetString("teams-dir"); dir != "" {
		return dir
	}
	return viper.GetString("teams_dir")
}

// resolveModelFile returns the model override path, empty for defaults.
func resolveModelFile(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("model"); path != "" {
		return path
	}
	return viper.GetString("model_file")
}
