// Package clock provides sequencers for the playback engine: a Manual clock
// stepped by the caller and a real-time Ticker that sends MIDI.
package clock

// Manual is a sequencer that only moves when Step is called. It is used by
// tests and by practice sessions driven from input events.
type Manual struct {
	transport
	played []int
}

func NewManual() *Manual {
	m := &Manual{}
	m.bpm = 120
	return m
}

func (m *Manual) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.running = true
}

func (m *Manual) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.running = false
}

// Step lands on the current tick, plays it and moves to the next one. It
// returns false, without playing anything, if the clock is stopped.
func (m *Manual) Step() bool {
	tick, ok := m.settle()
	if !ok {
		return false
	}
	m.mu.Lock()
	m.played = append(m.played, tick)
	m.mu.Unlock()
	m.advance(tick)
	return true
}

// Run steps until the clock stops or max ticks have been played, and returns
// how many were played.
func (m *Manual) Run(max int) int {
	n := 0
	for n < max && m.Step() {
		n++
	}
	return n
}

// Played returns every tick played so far, in order.
func (m *Manual) Played() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.played...)
}
