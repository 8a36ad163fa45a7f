package cmd

import (
	"strings"
	"testing"

	"github.com/allbin/go-dcserial"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSignalState(t *testing.T) {
	for _, s := range []string{"high", "ON", "true", "1"} {
		state, err := parseSignalState(s)
		require.NoError(t, err, s)
		assert.True(t, state, s)
	}
	for _, s := range []string{"low", "Off", "false", "0"} {
		state, err := parseSignalState(s)
		require.NoError(t, err, s)
		assert.False(t, state, s)
	}
	_, err := parseSignalState("maybe")
	assert.Error(t, err)
}

func TestParseDirection(t *testing.T) {
	tests := map[string]dcserial.Direction{
		"input":  dcserial.DirectionInput,
		"RX":     dcserial.DirectionInput,
		"output": dcserial.DirectionOutput,
		"out":    dcserial.DirectionOutput,
		"all":    dcserial.DirectionAll,
		"both":   dcserial.DirectionAll,
	}
	for in, want := range tests {
		got, err := parseDirection(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := parseDirection("sideways")
	assert.Error(t, err)
}

func TestParseHexString(t *testing.T) {
	tests := []struct {
		input   string
		want    []byte
		wantErr bool
	}{
		{"A501", []byte{0xA5, 0x01}, false},
		{"a5 01", []byte{0xA5, 0x01}, false},
		{"0xA5 0x01", []byte{0xA5, 0x01}, false},
		{"A50", nil, true},
		{"ZZ", nil, true},
	}

	for _, tt := range tests {
		got, err := parseHexString(tt.input)
		if tt.wantErr {
			assert.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func TestFormatCode(t *testing.T) {
	assert.Contains(t, formatCode(64), "64")

	out := formatCode(int(dcserial.StatusIO))
	assert.Contains(t, out, "-6")
	assert.Contains(t, out, dcserial.StatusIO.String())
}

func TestNewAcquirer(t *testing.T) {
	t.Cleanup(viper.Reset)

	viper.Set("driver", "bluetooth")
	_, err := newAcquirer()
	assert.Error(t, err)

	viper.Set("driver", "usb")
	acq, err := newAcquirer()
	require.NoError(t, err)
	assert.NotNil(t, acq)
}

func TestRenderTable(t *testing.T) {
	out := renderTable([]candidate{
		{Path: "/dev/ttyUSB0", VID: "0403", PID: "6015", Product: "FT231X"},
		{Path: "/dev/ttyACM0"},
	})

	assert.Contains(t, out, "Found 2 device(s)")
	assert.Contains(t, out, "/dev/ttyUSB0")
	assert.Contains(t, out, "0403")
	assert.True(t, strings.Contains(out, "-"), "missing fields render as a dash")
}
