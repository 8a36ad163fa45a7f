package dcserial

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// readTimeout is what Read passes to the hardware. The hardware read
// primitive does not honour timeouts, so the stored write timeout is never
// used here.
const readTimeout time.Duration = 0

// Port makes a best-effort USB serial driver behave like a blocking serial
// port. A Port is owned by a single caller; it does no locking.
type Port struct {
	drv       Driver
	log       zerolog.Logger
	rx        *readBuffer
	scratch   []byte
	blockSize int
	timeout   time.Duration
	closed    bool
}

// Open acquires a hardware handle and wraps it in a Port. When no device is
// attached or permission is still pending the returned error satisfies
// IsAbsent; the caller should retry later.
func Open(ctx context.Context, acq Acquirer, opts ...Option) (*Port, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	drv, err := acq.Acquire(ctx)
	if err != nil {
		if IsAbsent(err) {
			config.Logger.Warn().Err(err).Msg("no serial port available")
			return nil, err
		}
		config.Logger.Error().Err(err).Msg("failed to acquire serial port")
		return nil, fmt.Errorf("failed to acquire serial port: %w", err)
	}
	if drv == nil {
		return nil, ErrDeviceNotFound
	}

	p := &Port{
		drv:       drv,
		log:       config.Logger,
		rx:        &readBuffer{},
		blockSize: config.BlockSize,
		timeout:   config.Timeout,
	}

	if config.Line != nil {
		l := config.Line
		if err := p.Configure(l.BaudRate, l.DataBits, l.Parity, l.StopBits); err != nil {
			drv.Close()
			return nil, err
		}
	}

	p.log.Info().Int("block_size", p.blockSize).Msg("opened serial port")
	return p, nil
}

// Configure applies the line parameters in a single hardware call. On
// failure the hardware may be left partially configured.
func (p *Port) Configure(baudRate, dataBits int, parity Parity, stopBits StopBits) error {
	native := translateStopBits(stopBits)
	p.log.Debug().
		Int("baudrate", baudRate).
		Int("databits", dataBits).
		Stringer("parity", parity).
		Stringer("stopbits", stopBits).
		Int("native_stopbits", int(native)).
		Msg("configure")

	if p.closed {
		return p.fail("configure", ErrPortClosed)
	}
	if err := p.drv.SetParameters(baudRate, dataBits, native, parity); err != nil {
		return p.fail("configure", err)
	}
	return nil
}

// Read delivers up to len(buf) bytes. Bytes already buffered are used first;
// if they do not cover the request, one hardware read sized to the shortfall
// rounded up to the block size is issued and its result appended to the
// buffer. A short count, including zero, is not an error.
func (p *Port) Read(buf []byte) (int, error) {
	p.log.Debug().Int("length", len(buf)).Int("buffered", p.Buffered()).Msg("read")

	if p.closed {
		return 0, p.fail("read", ErrPortClosed)
	}
	if len(buf) == 0 {
		return 0, nil
	}

	if shortfall := len(buf) - p.rx.Len(); shortfall > 0 {
		chunk := p.chunk(roundUp(shortfall, p.blockSize))
		n, err := p.drv.Read(chunk, readTimeout)
		if err != nil {
			return 0, p.fail("read", err)
		}
		n = max(0, min(n, len(chunk)))
		p.rx.Append(chunk[:n])
		p.log.Debug().Int("requested", len(chunk)).Int("received", n).Msg("hardware read")
	}

	n := p.rx.Drain(buf)
	p.log.Trace().Hex("data", buf[:n]).Int("remaining", p.rx.Len()).Msg("read delivered")
	return n, nil
}

// Write passes buf to the hardware once, using the stored timeout. The
// returned count may be short; writing the remainder is up to the caller.
func (p *Port) Write(buf []byte) (int, error) {
	p.log.Debug().Int("length", len(buf)).Dur("timeout", p.timeout).Msg("write")

	if p.closed {
		return 0, p.fail("write", ErrPortClosed)
	}
	n, err := p.drv.Write(buf, p.timeout)
	if err != nil {
		return 0, p.fail("write", err)
	}
	p.log.Debug().Int("written", n).Msg("hardware write")
	return n, nil
}

// Purge discards pending data in the given direction. Input also clears
// bytes buffered by Read.
func (p *Port) Purge(direction Direction) error {
	p.log.Debug().Stringer("direction", direction).Msg("purge")

	if p.closed {
		return p.fail("purge", ErrPortClosed)
	}

	input := direction&DirectionInput != 0
	output := direction&DirectionOutput != 0
	if input {
		p.rx.Reset()
	}
	if !input && !output {
		return nil
	}

	ok, err := p.drv.PurgeHwBuffers(output, input)
	if err != nil {
		return p.fail("purge", err)
	}
	if !ok {
		return p.fail("purge", ErrPurgeRejected)
	}
	return nil
}

// SetDTR drives the Data Terminal Ready line.
func (p *Port) SetDTR(value bool) error {
	p.log.Debug().Bool("value", value).Msg("set dtr")

	if p.closed {
		return p.fail("set dtr", ErrPortClosed)
	}
	if err := p.drv.SetDTR(value); err != nil {
		return p.fail("set dtr", err)
	}
	return nil
}

// SetRTS drives the Request To Send line.
func (p *Port) SetRTS(value bool) error {
	p.log.Debug().Bool("value", value).Msg("set rts")

	if p.closed {
		return p.fail("set rts", ErrPortClosed)
	}
	if err := p.drv.SetRTS(value); err != nil {
		return p.fail("set rts", err)
	}
	return nil
}

// SetTimeout stores the timeout used by subsequent writes. Reads never wait
// according to it; see ReadHonorsTimeout.
func (p *Port) SetTimeout(timeout time.Duration) error {
	p.log.Debug().Dur("timeout", timeout).Msg("set timeout")
	p.timeout = timeout
	return nil
}

// Timeout returns the stored write timeout.
func (p *Port) Timeout() time.Duration {
	return p.timeout
}

// ReadHonorsTimeout reports whether Read respects the stored timeout. It
// does not: the hardware read primitive ignores its timeout parameter.
func (p *Port) ReadHonorsTimeout() bool {
	return false
}

// Buffered returns the number of bytes held for the next Read.
func (p *Port) Buffered() int {
	if p.rx == nil {
		return 0
	}
	return p.rx.Len()
}

// Close releases the hardware handle. The port must not be used afterwards.
func (p *Port) Close() error {
	p.log.Debug().Msg("close")

	if p.closed {
		return p.fail("close", ErrPortClosed)
	}
	p.closed = true
	p.rx = nil
	p.scratch = nil

	if err := p.drv.Close(); err != nil {
		return p.fail("close", err)
	}
	p.log.Info().Msg("closed serial port")
	return nil
}

func (p *Port) fail(op string, err error) error {
	p.log.Error().Err(err).Str("op", op).Msg("serial operation failed")
	return ioError(op, err)
}

// chunk returns a scratch slice of length n for one hardware read.
func (p *Port) chunk(n int) []byte {
	if cap(p.scratch) < n {
		p.scratch = make([]byte, n)
	}
	return p.scratch[:n]
}

// roundUp rounds n up to the next multiple of block; multiples are kept.
func roundUp(n, block int) int {
	if rem := n % block; rem != 0 {
		return n + block - rem
	}
	return n
}
