package cmd

import (
	"log/slog"

	"github.com/jsphweid/reprise/file"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <score> <out>",
	Short: "Converts a score between YAML and MIDI",
	Long: `Converts a score between YAML and MIDI. The format of each file follows
its extension (.yaml, .yml, .mid, .midi).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadScore(args[0])
		if err != nil {
			return err
		}
		if err := file.Save(c, args[1]); err != nil {
			return err
		}
		slog.Info("exported", "from", args[0], "to", args[1], "notes", len(c.Notes()))
		return nil
	},
}
