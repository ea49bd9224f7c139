package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"

	"github.com/jsphweid/reprise/clock"
	"github.com/jsphweid/reprise/composition"
	"github.com/jsphweid/reprise/constants"
	"github.com/jsphweid/reprise/model"
	"github.com/jsphweid/reprise/playback"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2"
)

var practicePort string

func init() {
	practiceCmd.Flags().StringVar(&practicePort, "port", "", "MIDI input port (default $MIDI_IN, then the first port)")
	rootCmd.AddCommand(practiceCmd)
}

var practiceCmd = &cobra.Command{
	Use:   "practice <score>",
	Short: "Steps through a score as you play each beat on a MIDI keyboard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadScore(args[0])
		if err != nil {
			return err
		}

		defer midi.CloseDriver()
		name := practicePort
		if name == "" {
			name = constants.GetMidiIn()
		}
		in, err := openIn(name)
		if err != nil {
			return err
		}

		engine, err := startPractice(c)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		p := newPracticeSession(engine, c, cmd.OutOrStdout(), stop)
		p.prompt()

		stopListening, err := midi.ListenTo(in, p.handle)
		if err != nil {
			return fmt.Errorf("can't listen to %v: %w", in, err)
		}
		defer stopListening()

		<-ctx.Done()
		return nil
	},
}

// startPractice opens a paused practice session at the first beat.
func startPractice(c *composition.Composition) (*playback.Engine, error) {
	engine := playback.NewEngine(c, clock.NewManual())
	if err := engine.Start(); err != nil {
		return nil, err
	}
	if err := engine.Pause(); err != nil {
		return nil, err
	}
	if err := engine.EnterPractice(); err != nil {
		return nil, err
	}
	return engine, nil
}

type practiceSession struct {
	mu       sync.Mutex
	engine   *playback.Engine
	comp     *composition.Composition
	w        io.Writer
	finished func()
	done     bool
}

func newPracticeSession(engine *playback.Engine, c *composition.Composition, w io.Writer, finished func()) *practiceSession {
	return &practiceSession{engine: engine, comp: c, w: w, finished: finished}
}

// handle receives MIDI input. Only note starts count as played pitches.
func (p *practiceSession) handle(msg midi.Message, timestampms int32) {
	var ch, key, vel uint8
	if !msg.GetNoteStart(&ch, &key, &vel) {
		return
	}
	pitch, err := model.FromMIDI(int(key))
	if err != nil {
		slog.Warn("ignoring key", "key", key, "err", err)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done {
		return
	}
	advanced, err := p.engine.Report(pitch)
	if err != nil {
		slog.Warn("could not report pitch", "pitch", pitch, "err", err)
		return
	}
	slog.Debug("played", "pitch", pitch, "advanced", advanced)
	if !advanced {
		return
	}
	if p.engine.Tick() > p.comp.Length() {
		p.done = true
		fmt.Fprintln(p.w, "done!")
		p.finished()
		return
	}
	p.prompt()
}

func (p *practiceSession) prompt() {
	required := p.engine.Required()
	names := make([]string, 0, len(required))
	for _, r := range required {
		names = append(names, r.String())
	}
	if len(names) == 0 {
		names = append(names, "(rest, any key)")
	}
	fmt.Fprintf(p.w, "beat %d: %s\n", p.engine.Tick(), strings.Join(names, " "))
}
