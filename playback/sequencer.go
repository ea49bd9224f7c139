// Package playback walks a composition through time on an external clock,
// jumping back at repeat marks and playing multi-ending brackets in order.
package playback

// Sequencer is the clock the engine steers. Implementations call the function
// registered with Listen every time they land on a tick, whether by advancing
// or after a seek, and before they advance again. The listener may seek; the
// sequencer then lands on the new tick and calls the listener again.
type Sequencer interface {
	CurrentTick() int
	IsRunning() bool
	SetTick(tick int)
	SetTempo(bpm float64)
	Start()
	Stop()
	Listen(fn func(tick int))
}
