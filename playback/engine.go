package playback

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jsphweid/reprise/composition"
	"github.com/jsphweid/reprise/model"
)

type State int

const (
	Stopped State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type Mode int

const (
	Normal Mode = iota
	Practice
)

var (
	ErrInvalidTransition = errors.New("invalid transport transition")
	ErrTickOutOfRange    = errors.New("tick out of range")
	ErrNotPaused         = errors.New("transport is not paused")
	ErrNotPracticing     = errors.New("not in practice mode")
	ErrEndOfPiece        = errors.New("reached the end of the piece")
)

// Engine drives a Sequencer through a composition. Only the engine mutates
// session state, under its mutex; ticks arriving while not playing are ignored.
//
// The composition must not be edited while the engine is playing.
type Engine struct {
	mu   sync.Mutex
	comp *composition.Composition
	seq  Sequencer
	log  *slog.Logger

	state    State
	mode     Mode
	sess     *session
	pausedAt int
	reported map[model.OctavePitch]bool
}

func NewEngine(c *composition.Composition, seq Sequencer) *Engine {
	e := &Engine{
		comp: c,
		seq:  seq,
		log:  slog.Default().With("component", "playback"),
		sess: newSession(c),
	}
	seq.Listen(e.OnTick)
	return e
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Engine) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

func (e *Engine) Tick() int {
	return e.seq.CurrentTick()
}

// Seeks returns the jumps made during the current session, oldest first.
func (e *Engine) Seeks() []Seek {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Seek(nil), e.sess.seeks...)
}

// Start begins a fresh session from Stopped, or resumes from Paused. A
// finished piece starts again from the top.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch e.state {
	case Paused:
		return e.resume()
	case Playing:
		return fmt.Errorf("%w: already %v", ErrInvalidTransition, e.state)
	}
	e.sess = newSession(e.comp)
	start := e.seq.CurrentTick()
	if start < 0 || start > e.comp.Length() {
		start = 0
	}
	e.seq.SetTick(start)
	e.seq.SetTempo(e.comp.BPM())
	e.seq.Start()
	e.state = Playing
	e.log.Debug("started", "tick", start, "bpm", e.comp.BPM())
	return nil
}

func (e *Engine) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != Playing {
		return fmt.Errorf("%w: cannot pause while %v", ErrInvalidTransition, e.state)
	}
	e.seq.Stop()
	e.pausedAt = e.seq.CurrentTick()
	e.state = Paused
	return nil
}

func (e *Engine) Resume() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.resume()
}

func (e *Engine) resume() error {
	if e.state != Paused {
		return fmt.Errorf("%w: cannot resume while %v", ErrInvalidTransition, e.state)
	}
	if e.seq.CurrentTick() != e.pausedAt {
		e.seq.SetTick(e.pausedAt)
	}
	e.seq.SetTempo(e.comp.BPM())
	e.seq.Start()
	e.state = Playing
	return nil
}

// Stop halts the clock wherever it is. No further jumps happen until the next
// Start, which opens a new session.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.seq.Stop()
	e.state = Stopped
	e.mode = Normal
}

// Reset stops playback, discards the session so every repeat can fire again,
// and rewinds to the first beat.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.seq.Stop()
	e.sess = newSession(e.comp)
	e.seq.SetTick(0)
	e.pausedAt = 0
	e.state = Stopped
	e.mode = Normal
	e.reported = nil
}

// SetTick seeks to tick, which must lie before the last beat.
func (e *Engine) SetTick(tick int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tick < 0 || tick >= e.comp.Length() {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrTickOutOfRange, tick, e.comp.Length())
	}
	e.seq.SetTick(tick)
	e.seq.SetTempo(e.comp.BPM())
	e.pausedAt = tick
	e.reported = nil
	return nil
}

// SetTempo changes the composition's tempo and passes it on to the clock.
func (e *Engine) SetTempo(bpm float64) error {
	if bpm <= 0 {
		return fmt.Errorf("%w: bpm %v must be positive", model.ErrValidation, bpm)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.comp.SetTempo(int(60000000 / bpm)); err != nil {
		return err
	}
	e.seq.SetTempo(bpm)
	return nil
}

func (e *Engine) BPM() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.comp.BPM()
}

// OnTick is called by the sequencer whenever it lands on a tick.
func (e *Engine) OnTick(tick int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != Playing {
		return
	}
	if e.land(tick) {
		return
	}
	if tick > e.comp.Length() && !e.sess.traversing() {
		e.seq.Stop()
		e.state = Stopped
		e.log.Debug("finished", "tick", tick)
	}
}

// land applies repeats and endings for tick and reports whether it seeked.
func (e *Engine) land(tick int) bool {
	to, ok := e.sess.next(tick)
	if !ok {
		return false
	}
	e.sess.seeks = append(e.sess.seeks, Seek{From: tick, To: to})
	e.log.Debug("seek", "from", tick, "to", to)
	e.seq.SetTick(to)
	e.seq.SetTempo(e.comp.BPM())
	return true
}
