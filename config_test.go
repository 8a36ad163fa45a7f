package dcserial

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.BlockSize != 64 {
		t.Errorf("Expected BlockSize 64, got %d", config.BlockSize)
	}
	if config.Timeout != 0 {
		t.Errorf("Expected Timeout 0, got %v", config.Timeout)
	}
	if config.Line != nil {
		t.Errorf("Expected no initial line config, got %v", config.Line)
	}
}

func TestFunctionalOptions(t *testing.T) {
	config := DefaultConfig()

	require.NoError(t, WithTimeout(2*time.Second)(&config))
	assert.Equal(t, 2*time.Second, config.Timeout)

	require.NoError(t, WithBlockSize(32)(&config))
	assert.Equal(t, 32, config.BlockSize)

	line := LineConfig{BaudRate: 115200, DataBits: 8, Parity: ParityNone, StopBits: StopBitsOne}
	require.NoError(t, WithInitialConfig(line)(&config))
	require.NotNil(t, config.Line)
	assert.Equal(t, line, *config.Line)
}

func TestInvalidOptions(t *testing.T) {
	config := DefaultConfig()

	assert.ErrorIs(t, WithBlockSize(0)(&config), ErrInvalidConfig)
	assert.ErrorIs(t, WithBlockSize(-64)(&config), ErrInvalidConfig)
	assert.ErrorIs(t, WithInitialConfig(LineConfig{BaudRate: 0, DataBits: 8})(&config), ErrInvalidBaudRate)
	assert.ErrorIs(t, WithInitialConfig(LineConfig{BaudRate: 9600, DataBits: 9})(&config), ErrInvalidConfig)
}

func TestTranslateStopBits(t *testing.T) {
	tests := []struct {
		in   StopBits
		want NativeStopBits
	}{
		{StopBitsOne, NativeStopBitsOne},
		{StopBitsOnePointFive, NativeStopBitsOnePointFive},
		{StopBitsTwo, NativeStopBitsTwo},
		{StopBits(3), NativeStopBitsOne},
		{StopBits(-2), NativeStopBitsOne},
	}

	for _, tt := range tests {
		if got := translateStopBits(tt.in); got != tt.want {
			t.Errorf("translateStopBits(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDirection(t *testing.T) {
	assert.Equal(t, Direction(1), DirectionInput)
	assert.Equal(t, Direction(2), DirectionOutput)
	assert.Equal(t, Direction(3), DirectionAll)
	assert.Equal(t, "all", DirectionAll.String())
}

func TestParseLineConfig(t *testing.T) {
	good := map[string]LineConfig{
		"9600/8N1":   {BaudRate: 9600, DataBits: 8, Parity: ParityNone, StopBits: StopBitsOne},
		"115200/8e2": {BaudRate: 115200, DataBits: 8, Parity: ParityEven, StopBits: StopBitsTwo},
		"7O1":        {BaudRate: 9600, DataBits: 7, Parity: ParityOdd, StopBits: StopBitsOne},
		"2400/5M1.5": {BaudRate: 2400, DataBits: 5, Parity: ParityMark, StopBits: StopBitsOnePointFive},
		"19200/6S1":  {BaudRate: 19200, DataBits: 6, Parity: ParitySpace, StopBits: StopBitsOne},
	}
	for s, want := range good {
		got, err := ParseLineConfig(s)
		if assert.NoError(t, err, s) {
			assert.Equal(t, want, got, s)
		}
	}

	bad := map[string]error{
		"abc/8N1":  ErrInvalidBaudRate,
		"-1/8N1":   ErrInvalidBaudRate,
		"9600/9N1": ErrInvalidConfig,
		"9600/8X1": ErrInvalidConfig,
		"9600/8N3": ErrInvalidConfig,
		"8N":       ErrInvalidConfig,
	}
	for s, want := range bad {
		_, err := ParseLineConfig(s)
		assert.ErrorIs(t, err, want, s)
	}
}

func TestLineConfigString(t *testing.T) {
	line := LineConfig{BaudRate: 9600, DataBits: 8, Parity: ParityNone, StopBits: StopBitsOne}
	assert.Equal(t, "9600/8N1", line.String())
}
