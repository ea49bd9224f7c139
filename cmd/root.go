package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/jsphweid/reprise/composition"
	"github.com/jsphweid/reprise/constants"
	"github.com/jsphweid/reprise/file"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "reprise",
	Short: "Edits and plays scores with repeats and multi-endings",
	Long: `Edits and plays scores with repeats and multi-endings.

Scores are YAML or MIDI files. Settings come from the environment or a .env
file in the working directory.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initConfig()
	},
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func initConfig() {
	envErr := godotenv.Load()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: constants.GetLogLevel(),
	})))
	if envErr != nil {
		slog.Debug("no .env file found, using environment variables")
	}
}

// loadScore reads a score, logging entries that had to be skipped.
func loadScore(path string) (*composition.Composition, error) {
	c, err := file.Load(path)
	if c == nil {
		return nil, err
	}
	if err != nil {
		slog.Warn("skipped invalid entries", "path", path, "err", err)
	}
	return c, nil
}
