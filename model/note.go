package model

import "fmt"

const (
	MaxInstrument = 108
	MaxVolume     = 127

	DefaultInstrument = 1
	DefaultVolume     = 100

	// MaxBeat is the last beat a note may sound on.
	MaxBeat = 1<<16 - 1
)

// Note is a single musical event. Only pitch, start and duration take part in
// its identity; instrument and volume do not.
type Note struct {
	pitch      OctavePitch
	start      int
	duration   int
	instrument int
	volume     int
}

// NoteKey is the identity of a Note.
type NoteKey struct {
	Pitch    OctavePitch
	Start    int
	Duration int
}

func NewNote(pitch OctavePitch, start, duration int) (Note, error) {
	n := Note{instrument: DefaultInstrument, volume: DefaultVolume}
	if err := n.SetPitch(pitch); err != nil {
		return Note{}, err
	}
	if err := n.SetStart(start); err != nil {
		return Note{}, err
	}
	if err := n.SetDuration(duration); err != nil {
		return Note{}, err
	}
	return n, nil
}

func (n Note) Pitch() OctavePitch { return n.pitch }
func (n Note) Start() int          { return n.start }
func (n Note) Duration() int       { return n.duration }
func (n Note) Instrument() int     { return n.instrument }
func (n Note) Volume() int         { return n.volume }

// End is the first beat after the note stops sounding.
func (n Note) End() int { return n.start + n.duration }

func (n Note) Key() NoteKey {
	return NoteKey{Pitch: n.pitch, Start: n.start, Duration: n.duration}
}

func (n Note) Equal(other Note) bool {
	return n.Key() == other.Key()
}

// Sounding reports whether the note is held at the given beat.
func (n Note) Sounding(beat int) bool {
	return beat >= n.start && beat < n.End()
}

func (n *Note) SetPitch(p OctavePitch) error {
	if _, err := NewOctavePitch(p.Pitch, p.Octave); err != nil {
		return err
	}
	n.pitch = p
	return nil
}

func (n *Note) SetStart(s int) error {
	if s < 0 {
		return fmt.Errorf("%w: start %d is negative", ErrValidation, s)
	}
	if s > MaxBeat-n.duration+1 {
		return fmt.Errorf("%w: note at %d would sound past beat %d", ErrValidation, s, MaxBeat)
	}
	n.start = s
	return nil
}

func (n *Note) SetDuration(d int) error {
	if d <= 0 {
		return fmt.Errorf("%w: duration %d must be positive", ErrValidation, d)
	}
	if d > MaxBeat-n.start+1 {
		return fmt.Errorf("%w: duration %d would sound past beat %d", ErrValidation, d, MaxBeat)
	}
	n.duration = d
	return nil
}

func (n *Note) SetInstrument(i int) error {
	if i < 0 || i > MaxInstrument {
		return fmt.Errorf("%w: instrument %d not in [0, %d]", ErrValidation, i, MaxInstrument)
	}
	n.instrument = i
	return nil
}

func (n *Note) SetVolume(v int) error {
	if v < 0 || v > MaxVolume {
		return fmt.Errorf("%w: volume %d not in [0, %d]", ErrValidation, v, MaxVolume)
	}
	n.volume = v
	return nil
}

func (n Note) String() string {
	return fmt.Sprintf("%v@%d+%d", n.pitch, n.start, n.duration)
}
