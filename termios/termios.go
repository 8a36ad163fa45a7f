//go:build linux

// Package termios implements the dcserial hardware driver directly on Linux
// tty devices using termios ioctls.
package termios

import (
	"fmt"
	"time"

	"github.com/allbin/go-dcserial"
	"github.com/creack/goselect"
	"golang.org/x/sys/unix"
)

// readIdleTenths is VTIME for blocking reads: a read returns once data has
// arrived and the line has been idle this long, or after it elapses with
// nothing received.
const readIdleTenths = 25

// Driver is a tty opened in raw mode.
type Driver struct {
	fd   int
	name string
}

var _ dcserial.Driver = (*Driver)(nil)

// Open opens device in raw 9600 8N1 mode.
func Open(device string) (*Driver, error) {
	fd, err := unix.Open(device, unix.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		return nil, err
	}

	d := &Driver{fd: fd, name: device}
	if err := d.SetParameters(9600, 8, dcserial.NativeStopBitsOne, dcserial.ParityNone); err != nil {
		unix.Close(fd)
		return nil, err
	}
	return d, nil
}

// Name returns the device path.
func (d *Driver) Name() string {
	return d.name
}

// Read performs a single read(2). With a positive timeout it first waits
// for the descriptor to become readable and returns 0 if it does not.
func (d *Driver) Read(buf []byte, timeout time.Duration) (int, error) {
	if timeout > 0 {
		ready, err := d.waitReadable(timeout)
		if err != nil {
			return 0, err
		}
		if !ready {
			return 0, nil
		}
	}

	for {
		n, err := unix.Read(d.fd, buf)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, err
		}
		return n, nil
	}
}

func (d *Driver) waitReadable(timeout time.Duration) (bool, error) {
	fds := &goselect.FDSet{}
	fds.Set(uintptr(d.fd))
	if err := goselect.Select(d.fd+1, fds, nil, nil, timeout); err != nil {
		if err == unix.EINTR {
			return false, nil
		}
		return false, fmt.Errorf("select failed: %w", err)
	}
	return fds.IsSet(uintptr(d.fd)), nil
}

// Write performs a single write(2); the kernel decides how much it takes.
func (d *Driver) Write(buf []byte, _ time.Duration) (int, error) {
	n, err := unix.Write(d.fd, buf)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// SetDTR sets DTR signal state
func (d *Driver) SetDTR(value bool) error {
	return setModemLine(d.fd, unix.TIOCM_DTR, value)
}

// SetRTS sets RTS signal state
func (d *Driver) SetRTS(value bool) error {
	return setModemLine(d.fd, unix.TIOCM_RTS, value)
}

func setModemLine(fd, line int, value bool) error {
	if value {
		return unix.IoctlSetInt(fd, unix.TIOCMBIS, line)
	}
	return unix.IoctlSetInt(fd, unix.TIOCMBIC, line)
}

// SetParameters applies all line settings with a single TCSETS.
func (d *Driver) SetParameters(baudRate, dataBits int, stopBits dcserial.NativeStopBits, parity dcserial.Parity) error {
	termios, err := unix.IoctlGetTermios(d.fd, unix.TCGETS)
	if err != nil {
		return fmt.Errorf("failed to get termios: %w", err)
	}

	if err := applyParameters(termios, baudRate, dataBits, stopBits, parity); err != nil {
		return err
	}

	if err := unix.IoctlSetTermios(d.fd, unix.TCSETS, termios); err != nil {
		return fmt.Errorf("failed to set termios: %w", err)
	}
	return nil
}

// PurgeHwBuffers discards queued kernel data with TCFLSH.
func (d *Driver) PurgeHwBuffers(output, input bool) (bool, error) {
	var queue int
	switch {
	case input && output:
		queue = unix.TCIOFLUSH
	case input:
		queue = unix.TCIFLUSH
	case output:
		queue = unix.TCOFLUSH
	default:
		return true, nil
	}
	if err := unix.IoctlSetInt(d.fd, unix.TCFLSH, queue); err != nil {
		return false, err
	}
	return true, nil
}

func (d *Driver) Close() error {
	return unix.Close(d.fd)
}

// applyParameters builds a raw-mode termios for the given line settings.
// Flow control is always off.
func applyParameters(termios *unix.Termios, baudRate, dataBits int, stopBits dcserial.NativeStopBits, parity dcserial.Parity) error {
	speed, err := getBaudRate(baudRate)
	if err != nil {
		return err
	}

	termios.Cflag = unix.CREAD | unix.CLOCAL
	termios.Iflag = 0
	termios.Oflag = 0
	termios.Lflag = 0

	termios.Cc[unix.VMIN] = 0
	termios.Cc[unix.VTIME] = readIdleTenths

	termios.Cflag = (termios.Cflag &^ unix.CBAUD) | speed
	termios.Ispeed = speed
	termios.Ospeed = speed

	switch dataBits {
	case 5:
		termios.Cflag |= unix.CS5
	case 6:
		termios.Cflag |= unix.CS6
	case 7:
		termios.Cflag |= unix.CS7
	case 8:
		termios.Cflag |= unix.CS8
	default:
		return fmt.Errorf("%w: %d data bits", dcserial.ErrInvalidConfig, dataBits)
	}

	// termios has no 1.5 setting; CSTOPB with 5 data bits gives 1.5 on
	// UARTs, 2 otherwise.
	if stopBits == dcserial.NativeStopBitsTwo || stopBits == dcserial.NativeStopBitsOnePointFive {
		termios.Cflag |= unix.CSTOPB
	}

	switch parity {
	case dcserial.ParityOdd:
		termios.Cflag |= unix.PARENB | unix.PARODD
	case dcserial.ParityEven:
		termios.Cflag |= unix.PARENB
	case dcserial.ParityMark:
		termios.Cflag |= unix.PARENB | unix.CMSPAR | unix.PARODD
	case dcserial.ParitySpace:
		termios.Cflag |= unix.PARENB | unix.CMSPAR
	}

	return nil
}

// getBaudRate converts an integer baud rate to the unix constant
func getBaudRate(rate int) (uint32, error) {
	switch rate {
	case 50:
		return unix.B50, nil
	case 75:
		return unix.B75, nil
	case 110:
		return unix.B110, nil
	case 134:
		return unix.B134, nil
	case 150:
		return unix.B150, nil
	case 200:
		return unix.B200, nil
	case 300:
		return unix.B300, nil
	case 600:
		return unix.B600, nil
	case 1200:
		return unix.B1200, nil
	case 1800:
		return unix.B1800, nil
	case 2400:
		return unix.B2400, nil
	case 4800:
		return unix.B4800, nil
	case 9600:
		return unix.B9600, nil
	case 19200:
		return unix.B19200, nil
	case 38400:
		return unix.B38400, nil
	case 57600:
		return unix.B57600, nil
	case 115200:
		return unix.B115200, nil
	case 230400:
		return unix.B230400, nil
	case 460800:
		return unix.B460800, nil
	case 500000:
		return unix.B500000, nil
	case 576000:
		return unix.B576000, nil
	case 921600:
		return unix.B921600, nil
	case 1000000:
		return unix.B1000000, nil
	default:
		return 0, fmt.Errorf("%w: %d", dcserial.ErrInvalidBaudRate, rate)
	}
}
