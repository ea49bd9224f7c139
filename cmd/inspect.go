package cmd

import (
	"fmt"
	"io"

	"github.com/jsphweid/reprise/chord"
	"github.com/jsphweid/reprise/composition"
	"github.com/spf13/cobra"
)

var inspectChords bool

func init() {
	inspectCmd.Flags().BoolVar(&inspectChords, "chords", false, "also list the chord sounding on every beat")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <score>",
	Short: "Lists the notes, repeats and endings of a score",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadScore(args[0])
		if err != nil {
			return err
		}
		inspect(cmd.OutOrStdout(), c, inspectChords)
		return nil
	},
}

func inspect(w io.Writer, c *composition.Composition, chords bool) {
	sig := c.Signature()
	fmt.Fprintf(w, "tempo: %d (%.1f bpm)\n", c.Tempo(), c.BPM())
	fmt.Fprintf(w, "signature: %d/%d\n", sig.BeatsPerMeasure, sig.BeatUnit)
	fmt.Fprintf(w, "length: %d\n", c.Length())

	fmt.Fprintf(w, "notes: %d\n", len(c.Notes()))
	for _, n := range c.Notes() {
		fmt.Fprintf(w, "  %v instrument %d volume %d\n", n, n.Instrument(), n.Volume())
	}

	repeats := c.Repeats()
	fmt.Fprintf(w, "repeats: %d\n", len(repeats))
	for _, mark := range c.RepeatMarks() {
		fmt.Fprintf(w, "  %v\n", repeats[mark])
	}

	if m, ok := c.MultiEnding(); ok {
		buildUp, _ := m.BuildUp()
		fmt.Fprintf(w, "multi-ending: build-up %v, endings %v\n", buildUp, m.Endings())
	}

	if chords {
		for _, ch := range chord.GetChords(c) {
			marker := ""
			if ch.FormedByOnset {
				marker = " *"
			}
			fmt.Fprintf(w, "  beat %d: %s%s\n", ch.Beat, chord.CreateChordKey(ch.Notes), marker)
		}
	}
}
