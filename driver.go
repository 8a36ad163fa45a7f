package dcserial

import (
	"context"
	"time"
)

// Driver is the capability surface required from the USB serial hardware
// layer. Implementations report failures as errors; the Port maps them to
// status codes.
type Driver interface {
	// Read performs a single transfer of at most len(buf) bytes. The count
	// may be anything from zero to len(buf).
	Read(buf []byte, timeout time.Duration) (int, error)

	// Write performs a single transfer and returns how much was accepted.
	Write(buf []byte, timeout time.Duration) (int, error)

	SetDTR(value bool) error
	SetRTS(value bool) error

	// SetParameters applies all line parameters in one call.
	SetParameters(baudRate, dataBits int, stopBits NativeStopBits, parity Parity) error

	// PurgeHwBuffers asks the hardware to drop buffered data. A false
	// result means the hardware refused the request.
	PurgeHwBuffers(output, input bool) (bool, error)

	Close() error
}

// Acquirer finds a device and hands back an opened Driver. It returns
// ErrDeviceNotFound when nothing is attached and ErrPermissionPending when
// access has been requested but not granted yet.
type Acquirer interface {
	Acquire(ctx context.Context) (Driver, error)
}

// AcquirerFunc adapts a function to the Acquirer interface.
type AcquirerFunc func(ctx context.Context) (Driver, error)

func (f AcquirerFunc) Acquire(ctx context.Context) (Driver, error) {
	return f(ctx)
}
