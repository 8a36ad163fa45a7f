package dcserial

import (
	"context"
	"fmt"
	"time"
)

// Callbacks exposes a Port through the integer convention used by the dive
// computer decoder: a non-negative result is a byte count (or StatusSuccess),
// a negative result is a Status. No method lets a panic escape.
type Callbacks struct {
	port *Port
}

// NewCallbacks wraps an open port.
func NewCallbacks(port *Port) *Callbacks {
	return &Callbacks{port: port}
}

// OpenCallbacks opens a port and wraps it. The boolean is false when no port
// could be produced; the decoder should treat that as "retry later".
func OpenCallbacks(ctx context.Context, acq Acquirer, opts ...Option) (*Callbacks, bool) {
	port, err := Open(ctx, acq, opts...)
	if err != nil {
		return nil, false
	}
	return NewCallbacks(port), true
}

// Port returns the wrapped port.
func (c *Callbacks) Port() *Port {
	return c.port
}

func (c *Callbacks) Configure(baudRate, dataBits uint, parity Parity, stopBits StopBits) (code int) {
	defer c.guard("configure", &code)
	return Code(0, c.port.Configure(int(baudRate), int(dataBits), parity, stopBits))
}

func (c *Callbacks) Read(buf []byte) (code int) {
	defer c.guard("read", &code)
	return Code(c.port.Read(buf))
}

func (c *Callbacks) Write(buf []byte) (code int) {
	defer c.guard("write", &code)
	return Code(c.port.Write(buf))
}

func (c *Callbacks) Purge(direction Direction) (code int) {
	defer c.guard("purge", &code)
	return Code(0, c.port.Purge(direction))
}

func (c *Callbacks) SetDTR(value bool) (code int) {
	defer c.guard("set dtr", &code)
	return Code(0, c.port.SetDTR(value))
}

func (c *Callbacks) SetRTS(value bool) (code int) {
	defer c.guard("set rts", &code)
	return Code(0, c.port.SetRTS(value))
}

// SetTimeout takes milliseconds, as the decoder does.
func (c *Callbacks) SetTimeout(milliseconds int) (code int) {
	defer c.guard("set timeout", &code)
	return Code(0, c.port.SetTimeout(time.Duration(milliseconds)*time.Millisecond))
}

func (c *Callbacks) Close() (code int) {
	defer c.guard("close", &code)
	return Code(0, c.port.Close())
}

// guard turns a panic raised by a driver into StatusIO.
func (c *Callbacks) guard(op string, code *int) {
	if r := recover(); r != nil {
		c.port.log.Error().Str("op", op).Interface("panic", r).Msg("driver panicked")
		*code = Code(0, ioError(op, fmt.Errorf("panic: %v", r)))
	}
}
