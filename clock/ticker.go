package clock

import (
	"context"
	"log/slog"
	"time"

	"gitlab.com/gomidi/midi/v2"
)

// Sink receives the MIDI messages a Ticker plays. midi.SendTo returns one.
type Sink func(msg midi.Message) error

// Ticker is a real-time sequencer. Each tick is one beat at the current tempo.
type Ticker struct {
	transport
	schedule Schedule
	send     Sink
	log      *slog.Logger

	cancel   context.CancelFunc
	done     chan struct{}
	sounding map[[2]uint8]bool
}

func NewTicker(schedule Schedule, send Sink, logger *slog.Logger) *Ticker {
	if logger == nil {
		logger = slog.Default()
	}
	t := &Ticker{
		schedule: schedule,
		send:     send,
		log:      logger,
		sounding: make(map[[2]uint8]bool),
	}
	t.bpm = 120
	return t
}

// Start begins playing from the current tick. It returns immediately.
func (t *Ticker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return
	}
	t.running = true
	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	t.done = make(chan struct{})
	go t.run(ctx, t.done)
}

// Stop halts playback without waiting for the current beat to finish. It is
// safe to call from a tick listener.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return
	}
	t.running = false
	t.cancel()
}

// Wait blocks until the playing goroutine has exited or ctx is done.
func (t *Ticker) Wait(ctx context.Context) error {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *Ticker) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer t.silence()

	for _, msg := range t.schedule.Setup {
		t.emit(msg)
	}

	prev := -1
	for ctx.Err() == nil {
		tick, ok := t.settle()
		if !ok || ctx.Err() != nil {
			return
		}
		if prev >= 0 && tick != prev+1 {
			t.silence()
		}
		t.play(tick)
		prev = tick

		timer := time.NewTimer(beat(t.Tempo()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
		t.advance(tick)
	}
}

func (t *Ticker) play(tick int) {
	for _, msg := range t.schedule.Events[tick] {
		t.emit(msg)
	}
}

func (t *Ticker) emit(msg midi.Message) {
	var ch, key, vel uint8
	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		t.mu.Lock()
		t.sounding[[2]uint8{ch, key}] = true
		t.mu.Unlock()
	case msg.GetNoteEnd(&ch, &key):
		t.mu.Lock()
		delete(t.sounding, [2]uint8{ch, key})
		t.mu.Unlock()
	}
	if err := t.send(msg); err != nil {
		t.log.Error("could not send midi message", "msg", msg.String(), "err", err)
	}
}

// silence ends every note still sounding, after a seek or when stopping.
func (t *Ticker) silence() {
	t.mu.Lock()
	var keys [][2]uint8
	for k := range t.sounding {
		keys = append(keys, k)
	}
	t.mu.Unlock()
	for _, k := range keys {
		t.emit(midi.NoteOff(k[0], k[1]))
	}
}

func beat(bpm float64) time.Duration {
	if bpm <= 0 {
		bpm = 120
	}
	return time.Duration(float64(time.Minute) / bpm)
}
