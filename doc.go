// Package dcserial adapts a USB serial cable to the blocking, buffered I/O
// a dive computer decoder expects.
//
// Decoders read fixed-size packets and never think in USB transfers. The
// Port hides that: it keeps a read buffer, requests whole blocks from the
// hardware, and reports every outcome with the decoder's status codes.
//
// # Basic Usage
//
// Open the first matching device and configure the line:
//
//	acq := usbserial.NewProber("0403", "6015")
//	port, err := dcserial.Open(ctx, acq,
//	    dcserial.WithLogger(logger),
//	    dcserial.WithInitialConfig(dcserial.LineConfig{
//	        BaudRate: 9600, DataBits: 8,
//	        Parity: dcserial.ParityNone, StopBits: dcserial.StopBitsOne,
//	    }),
//	)
//	if dcserial.IsAbsent(err) {
//	    // no cable yet, or access not granted: retry later
//	}
//	defer port.Close()
//
//	buf := make([]byte, 64)
//	n, err := port.Read(buf)
//
// # Read Semantics
//
// A Read first serves buffered bytes. If more are needed it issues at most
// one hardware read, sized to the shortfall rounded up to the block size
// (64 bytes by default), keeps the excess for the next call and returns
// what it has. A short count is not an error; callers loop until they have
// a full packet. The stored timeout is not applied to reads, which
// ReadHonorsTimeout reports.
//
// # Status Codes
//
// Every failure is an *OpError carrying a Status. Hardware failures are
// always StatusIO:
//
//	if errors.Is(err, dcserial.StatusIO) {
//	    // transfer failed
//	}
//
// Callbacks exposes the same operations in the integer convention decoders
// use: a non-negative byte count or status, or a negative Status value.
//
// # Hardware
//
// The Port talks to hardware only through a Driver obtained from an
// Acquirer. Package usbserial provides both on top of go.bug.st/serial;
// package termios drives linux tty devices directly.
package dcserial
