package cmd

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

// openOut finds an output port by name, or takes the first one.
func openOut(name string) (drivers.Out, error) {
	var out drivers.Out
	var err error
	if name != "" {
		out, err = midi.FindOutPort(name)
	} else {
		out, err = midi.OutPort(0)
	}
	if err != nil {
		return nil, fmt.Errorf("can't find MIDI output %q: %w", name, err)
	}
	return out, nil
}

// openIn finds an input port by name, or takes the first one.
func openIn(name string) (drivers.In, error) {
	var in drivers.In
	var err error
	if name != "" {
		in, err = midi.FindInPort(name)
	} else {
		in, err = midi.InPort(0)
	}
	if err != nil {
		return nil, fmt.Errorf("can't find MIDI input %q: %w", name, err)
	}
	return in, nil
}
