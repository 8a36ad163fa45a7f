package dcserial

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBlockSize is the granularity of hardware read requests.
const DefaultBlockSize = 64

// Parity represents the parity mode. Values match the hardware driver and are
// passed through unchanged.
type Parity int

const (
	ParityNone Parity = iota
	ParityOdd
	ParityEven
	ParityMark
	ParitySpace
)

func (p Parity) String() string {
	switch p {
	case ParityNone:
		return "N"
	case ParityOdd:
		return "O"
	case ParityEven:
		return "E"
	case ParityMark:
		return "M"
	case ParitySpace:
		return "S"
	default:
		return fmt.Sprintf("parity(%d)", int(p))
	}
}

// StopBits represents the number of stop bits as the decoder sees it.
type StopBits int

const (
	StopBitsOne StopBits = iota
	StopBitsOnePointFive
	StopBitsTwo
)

func (s StopBits) String() string {
	switch s {
	case StopBitsOne:
		return "1"
	case StopBitsOnePointFive:
		return "1.5"
	case StopBitsTwo:
		return "2"
	default:
		return fmt.Sprintf("stopbits(%d)", int(s))
	}
}

// NativeStopBits is the stop bit representation used by the hardware driver.
type NativeStopBits int

const (
	NativeStopBitsOne          NativeStopBits = 1
	NativeStopBitsTwo          NativeStopBits = 2
	NativeStopBitsOnePointFive NativeStopBits = 3
)

var stopBitsTable = [...]NativeStopBits{
	StopBitsOne:          NativeStopBitsOne,
	StopBitsOnePointFive: NativeStopBitsOnePointFive,
	StopBitsTwo:          NativeStopBitsTwo,
}

// translateStopBits maps s to the driver representation. Values outside the
// enumeration get the table's first entry instead of an error.
func translateStopBits(s StopBits) NativeStopBits {
	if s < 0 || int(s) >= len(stopBitsTable) {
		return stopBitsTable[0]
	}
	return stopBitsTable[s]
}

// Direction selects the data flow affected by Purge.
type Direction int

const (
	DirectionInput  Direction = 1 << iota // device to host
	DirectionOutput                       // host to device
	DirectionAll    = DirectionInput | DirectionOutput
)

func (d Direction) String() string {
	switch d {
	case DirectionInput:
		return "input"
	case DirectionOutput:
		return "output"
	case DirectionAll:
		return "all"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// LineConfig holds the asynchronous line parameters applied by Configure.
type LineConfig struct {
	BaudRate int
	DataBits int
	Parity   Parity
	StopBits StopBits
}

func (c LineConfig) String() string {
	return fmt.Sprintf("%d/%d%s%s", c.BaudRate, c.DataBits, c.Parity, c.StopBits)
}

// ParseLineConfig parses "9600/8N1" style strings. The baud rate part is
// optional ("8E2"), in which case 9600 is used.
func ParseLineConfig(s string) (LineConfig, error) {
	cfg := LineConfig{BaudRate: 9600}

	frame := s
	if i := strings.IndexByte(s, '/'); i >= 0 {
		baud, err := strconv.Atoi(s[:i])
		if err != nil || baud <= 0 {
			return LineConfig{}, fmt.Errorf("%w: %q", ErrInvalidBaudRate, s[:i])
		}
		cfg.BaudRate = baud
		frame = s[i+1:]
	}

	if len(frame) < 3 {
		return LineConfig{}, fmt.Errorf("%w: %q", ErrInvalidConfig, s)
	}

	bits := frame[0]
	if bits < '5' || bits > '8' {
		return LineConfig{}, fmt.Errorf("%w: data bits %q", ErrInvalidConfig, bits)
	}
	cfg.DataBits = int(bits - '0')

	switch strings.ToUpper(frame[1:2]) {
	case "N":
		cfg.Parity = ParityNone
	case "O":
		cfg.Parity = ParityOdd
	case "E":
		cfg.Parity = ParityEven
	case "M":
		cfg.Parity = ParityMark
	case "S":
		cfg.Parity = ParitySpace
	default:
		return LineConfig{}, fmt.Errorf("%w: parity %q", ErrInvalidConfig, frame[1:2])
	}

	switch frame[2:] {
	case "1":
		cfg.StopBits = StopBitsOne
	case "1.5":
		cfg.StopBits = StopBitsOnePointFive
	case "2":
		cfg.StopBits = StopBitsTwo
	default:
		return LineConfig{}, fmt.Errorf("%w: stop bits %q", ErrInvalidConfig, frame[2:])
	}

	return cfg, nil
}

// Config holds the adapter settings chosen at Open time.
type Config struct {
	Logger    zerolog.Logger
	Timeout   time.Duration // write timeout, see Port.SetTimeout
	BlockSize int
	Line      *LineConfig // applied right after acquisition when set
}

// Option is a functional option for configuring a port
type Option func(*Config) error

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		Logger:    zerolog.Nop(),
		Timeout:   0,
		BlockSize: DefaultBlockSize,
	}
}

// WithLogger sets the logger used for per-operation tracing
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithTimeout sets the initial write timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) error {
		c.Timeout = timeout
		return nil
	}
}

// WithBlockSize overrides the hardware read granularity
func WithBlockSize(size int) Option {
	return func(c *Config) error {
		if size <= 0 {
			return ErrInvalidConfig
		}
		c.BlockSize = size
		return nil
	}
}

// WithInitialConfig configures the line as part of Open
func WithInitialConfig(line LineConfig) Option {
	return func(c *Config) error {
		if line.BaudRate <= 0 {
			return ErrInvalidBaudRate
		}
		if line.DataBits < 5 || line.DataBits > 8 {
			return ErrInvalidConfig
		}
		c.Line = &line
		return nil
	}
}
