package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/jsphweid/reprise/clock"
	"github.com/jsphweid/reprise/constants"
	"github.com/jsphweid/reprise/playback"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2"
)

var (
	playPort  string
	playTrace bool
	playBPM   float64
	playFrom  int
)

func init() {
	playCmd.Flags().StringVar(&playPort, "port", "", "MIDI output port (default $MIDI_OUT, then the first port)")
	playCmd.Flags().BoolVar(&playTrace, "trace", false, "print every jump made at repeats and endings")
	playCmd.Flags().Float64Var(&playBPM, "bpm", 0, "override the tempo of the score")
	playCmd.Flags().IntVar(&playFrom, "from", 0, "beat to start from")
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play <score>",
	Short: "Plays a score through a MIDI output, honouring repeats and endings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadScore(args[0])
		if err != nil {
			return err
		}

		defer midi.CloseDriver()
		name := playPort
		if name == "" {
			name = constants.GetMidiOut()
		}
		out, err := openOut(name)
		if err != nil {
			return err
		}
		send, err := midi.SendTo(out)
		if err != nil {
			return fmt.Errorf("can't open MIDI output %v: %w", out, err)
		}

		ticker := clock.NewTicker(clock.NewSchedule(c), send, slog.Default())
		engine := playback.NewEngine(c, ticker)
		if playBPM > 0 {
			if err := engine.SetTempo(playBPM); err != nil {
				return err
			}
		}
		if playFrom > 0 {
			if err := engine.SetTick(playFrom); err != nil {
				return err
			}
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		slog.Info("playing", "score", args[0], "port", out.String(), "bpm", engine.BPM(), "beats", c.Length()+1)
		if err := play(ctx, engine, ticker); err != nil {
			return err
		}
		if playTrace {
			printSeeks(cmd.OutOrStdout(), engine.Seeks())
		}
		return nil
	},
}

// play runs engine until the piece ends or ctx is cancelled.
func play(ctx context.Context, engine *playback.Engine, ticker *clock.Ticker) error {
	if err := engine.Start(); err != nil {
		return err
	}
	if err := ticker.Wait(ctx); err != nil {
		slog.Info("interrupted", "tick", engine.Tick())
		engine.Stop()
		return ticker.Wait(context.Background())
	}
	return nil
}

func printSeeks(w io.Writer, seeks []playback.Seek) {
	for _, s := range seeks {
		fmt.Fprintf(w, "%d -> %d\n", s.From, s.To)
	}
}
