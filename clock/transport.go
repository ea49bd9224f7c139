package clock

import "sync"

// transport is the state shared by every sequencer in this package.
type transport struct {
	mu       sync.Mutex
	tick     int
	running  bool
	bpm      float64
	landed   bool
	listener func(tick int)
}

func (t *transport) Listen(fn func(tick int)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listener = fn
}

func (t *transport) CurrentTick() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tick
}

func (t *transport) IsRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// SetTick seeks. The new tick is announced to the listener before it plays.
func (t *transport) SetTick(tick int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tick = tick
	t.landed = false
}

func (t *transport) SetTempo(bpm float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bpm = bpm
}

func (t *transport) Tempo() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.bpm
}

// settle announces the current tick to the listener until the listener stops
// seeking. It returns the tick to play, or false if the clock was stopped.
// The listener is called without holding the lock so it may steer the clock.
func (t *transport) settle() (int, bool) {
	for {
		t.mu.Lock()
		if !t.running {
			t.mu.Unlock()
			return 0, false
		}
		tick := t.tick
		if t.landed {
			t.mu.Unlock()
			return tick, true
		}
		t.landed = true
		fn := t.listener
		t.mu.Unlock()
		if fn != nil {
			fn(tick)
		}
	}
}

// advance moves past played unless a seek happened meanwhile.
func (t *transport) advance(played int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.tick == played && t.landed {
		t.tick = played + 1
		t.landed = false
	}
}
