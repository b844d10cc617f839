// Package encoderport captures raw wheel encoder readings from a serial
// device that prints one "right,left" timer-count line per timestep.
package encoderport

import (
	"io"

	"go.bug.st/serial"
)

// SerialPorter defines the minimal interface needed for a serial port.
// This abstraction enables unit testing without real serial hardware.
type SerialPorter interface {
	io.Reader
	io.Closer
}

// Opener opens the named serial device.
type Opener func(path string, opts PortOptions) (SerialPorter, error)

// Open opens a real serial port at path using opts.
func Open(path string, opts PortOptions) (SerialPorter, error) {
	mode, err := opts.SerialMode()
	if err != nil {
		return nil, err
	}

	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, err
	}
	return port, nil
}
