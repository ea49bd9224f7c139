// Package midi converts compositions to and from Standard MIDI Files.
//
// Repeats and the multi-ending travel as marker meta events on the first
// track: "repeat <goBack> <mark>" and "ending <goBack> <mark> ...".
package midi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/reprise/composition"
	"gitlab.com/gomidi/midi/v2/smf"
)

// TicksPerBeat is the resolution of exported files. One beat of a composition
// is one quarter note.
const TicksPerBeat = 960

func ReadMidiFile(filepath string) (*smf.SMF, error) {
	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("error reading midi file: %w", err)
	}
	return Read(bytes.NewReader(dat))
}

// Read parses an SMF, turning the panics the parser raises on some corrupt
// files into errors.
func Read(r io.Reader) (s *smf.SMF, e error) {
	defer func() {
		if rec := recover(); rec != nil {
			s = nil
			e = fmt.Errorf("error parsing midi file: %v", rec)
		}
	}()

	res, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("error parsing midi file: %w", err)
	}
	return res, nil
}

// ReadComposition reads a .mid file into a composition. A partially read
// composition is returned along with the error when some events were invalid.
func ReadComposition(filepath string) (*composition.Composition, error) {
	s, err := ReadMidiFile(filepath)
	if err != nil {
		return nil, err
	}
	return FromSMF(s)
}

// WriteFile exports c to filepath.
func WriteFile(c *composition.Composition, filepath string) error {
	s, err := ToSMF(c)
	if err != nil {
		return err
	}
	if err := s.WriteFile(filepath); err != nil {
		return fmt.Errorf("error writing midi file: %w", err)
	}
	return nil
}

var errNoMetricTicks = errors.New("only metric time formats are supported")
