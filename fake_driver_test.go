package dcserial

import (
	"context"
	"testing"
	"time"
)

// fakeDriver simulates the USB serial hardware. Each hardware read returns
// the next scripted chunk (truncated to the request), or nothing once the
// script is exhausted.
type fakeDriver struct {
	chunks  [][]byte
	readErr error

	readSizes    []int
	readTimeouts []time.Duration
	produced     []byte

	written      []byte
	writeLimit   int // 0 means accept everything
	writeErr     error
	writeTimeout time.Duration

	params   []fakeParams
	paramErr error

	dtr, rts bool
	lineErr  error

	purges   []fakePurge
	purgeOK  bool
	purgeErr error

	closed   int
	closeErr error

	panicOn string
}

type fakeParams struct {
	baudRate, dataBits int
	stopBits           NativeStopBits
	parity             Parity
}

type fakePurge struct {
	output, input bool
}

func newFakeDriver(chunks ...[]byte) *fakeDriver {
	return &fakeDriver{chunks: chunks, purgeOK: true}
}

func (f *fakeDriver) Read(buf []byte, timeout time.Duration) (int, error) {
	if f.panicOn == "read" {
		panic("usb transfer exploded")
	}
	f.readSizes = append(f.readSizes, len(buf))
	f.readTimeouts = append(f.readTimeouts, timeout)
	if f.readErr != nil {
		return 0, f.readErr
	}
	if len(f.chunks) == 0 {
		return 0, nil
	}
	chunk := f.chunks[0]
	f.chunks = f.chunks[1:]
	n := copy(buf, chunk)
	f.produced = append(f.produced, chunk[:n]...)
	return n, nil
}

func (f *fakeDriver) Write(buf []byte, timeout time.Duration) (int, error) {
	f.writeTimeout = timeout
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	n := len(buf)
	if f.writeLimit > 0 && n > f.writeLimit {
		n = f.writeLimit
	}
	f.written = append(f.written, buf[:n]...)
	return n, nil
}

func (f *fakeDriver) SetDTR(value bool) error {
	if f.lineErr != nil {
		return f.lineErr
	}
	f.dtr = value
	return nil
}

func (f *fakeDriver) SetRTS(value bool) error {
	if f.lineErr != nil {
		return f.lineErr
	}
	f.rts = value
	return nil
}

func (f *fakeDriver) SetParameters(baudRate, dataBits int, stopBits NativeStopBits, parity Parity) error {
	if f.paramErr != nil {
		return f.paramErr
	}
	f.params = append(f.params, fakeParams{baudRate, dataBits, stopBits, parity})
	return nil
}

func (f *fakeDriver) PurgeHwBuffers(output, input bool) (bool, error) {
	f.purges = append(f.purges, fakePurge{output, input})
	return f.purgeOK, f.purgeErr
}

func (f *fakeDriver) Close() error {
	f.closed++
	return f.closeErr
}

func (f *fakeDriver) acquirer() Acquirer {
	return AcquirerFunc(func(context.Context) (Driver, error) {
		return f, nil
	})
}

func openFake(t *testing.T, f *fakeDriver, opts ...Option) *Port {
	t.Helper()
	p, err := Open(context.Background(), f.acquirer(), opts...)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return p
}
