// Package usbserial implements the dcserial hardware driver on top of
// go.bug.st/serial, with device discovery through its USB enumerator.
package usbserial

import (
	"fmt"
	"time"

	"github.com/allbin/go-dcserial"
	"go.bug.st/serial"
)

// Driver adapts a go.bug.st/serial port to dcserial.Driver.
type Driver struct {
	port        serial.Port
	name        string
	readTimeout time.Duration
	mode        serial.Mode
}

var _ dcserial.Driver = (*Driver)(nil)

// NewDriver wraps an already opened port.
func NewDriver(port serial.Port, name string) *Driver {
	return &Driver{
		port:        port,
		name:        name,
		readTimeout: serial.NoTimeout,
	}
}

// Name returns the device path the driver was opened on.
func (d *Driver) Name() string {
	return d.name
}

// Read issues one read. A timeout of zero or less waits until at least one
// byte arrives, matching the Android driver the adapter was designed for.
func (d *Driver) Read(buf []byte, timeout time.Duration) (int, error) {
	if timeout <= 0 {
		timeout = serial.NoTimeout
	}
	if timeout != d.readTimeout {
		if err := d.port.SetReadTimeout(timeout); err != nil {
			return 0, fmt.Errorf("failed to set read timeout: %w", err)
		}
		d.readTimeout = timeout
	}
	return d.port.Read(buf)
}

// Write hands buf to the kernel. go.bug.st ports block until the write is
// accepted, so the timeout is not applied.
func (d *Driver) Write(buf []byte, _ time.Duration) (int, error) {
	return d.port.Write(buf)
}

func (d *Driver) SetDTR(value bool) error {
	return d.port.SetDTR(value)
}

func (d *Driver) SetRTS(value bool) error {
	return d.port.SetRTS(value)
}

func (d *Driver) SetParameters(baudRate, dataBits int, stopBits dcserial.NativeStopBits, parity dcserial.Parity) error {
	mode := serial.Mode{
		BaudRate: baudRate,
		DataBits: dataBits,
		Parity:   toParity(parity),
		StopBits: toStopBits(stopBits),
	}
	if err := d.port.SetMode(&mode); err != nil {
		return err
	}
	d.mode = mode
	return nil
}

// PurgeHwBuffers resets the requested kernel buffers. The result is false
// only when the port itself reports a failure.
func (d *Driver) PurgeHwBuffers(output, input bool) (bool, error) {
	if input {
		if err := d.port.ResetInputBuffer(); err != nil {
			return false, err
		}
	}
	if output {
		if err := d.port.ResetOutputBuffer(); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (d *Driver) Close() error {
	return d.port.Close()
}

// Mode returns the line parameters last applied through SetParameters.
func (d *Driver) Mode() serial.Mode {
	return d.mode
}

func toParity(p dcserial.Parity) serial.Parity {
	switch p {
	case dcserial.ParityOdd:
		return serial.OddParity
	case dcserial.ParityEven:
		return serial.EvenParity
	case dcserial.ParityMark:
		return serial.MarkParity
	case dcserial.ParitySpace:
		return serial.SpaceParity
	default:
		return serial.NoParity
	}
}

func toStopBits(s dcserial.NativeStopBits) serial.StopBits {
	switch s {
	case dcserial.NativeStopBitsOnePointFive:
		return serial.OnePointFiveStopBits
	case dcserial.NativeStopBitsTwo:
		return serial.TwoStopBits
	default:
		return serial.OneStopBit
	}
}
