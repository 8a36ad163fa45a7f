package components

import (
	"strings"
	"testing"
	"time"

	"github.com/allbin/go-dcserial"
	"github.com/stretchr/testify/assert"
)

func TestFormatMessage(t *testing.T) {
	ts := time.Date(2025, 1, 2, 13, 4, 5, 6e6, time.UTC)

	tests := []struct {
		name     string
		showHex  bool
		showASCI bool
		msg      ReadResultMsg
		contains []string
		excludes []string
	}{
		{
			name:     "hex and ascii",
			showHex:  true,
			showASCI: true,
			msg:      ReadResultMsg{Timestamp: ts, Requested: 64, Data: []byte("A\x00z"), Code: 3},
			contains: []string{"13:04:05.006", "RX 3/64", "HEX: 41 00 7A", "ASCII: A.z"},
		},
		{
			name:     "hex only",
			showHex:  true,
			msg:      ReadResultMsg{Timestamp: ts, Requested: 2, Data: []byte{0xFF}, Code: 1},
			contains: []string{"HEX: FF"},
			excludes: []string{"ASCII:"},
		},
		{
			name:     "neither",
			msg:      ReadResultMsg{Timestamp: ts, Requested: 8, Data: []byte{1, 2}, Code: 2},
			contains: []string{"BYTES: 2"},
		},
		{
			name:     "failed read",
			showHex:  true,
			showASCI: true,
			msg:      ReadResultMsg{Timestamp: ts, Requested: 8, Code: int(dcserial.StatusIO)},
			contains: []string{"-6", dcserial.StatusIO.String()},
			excludes: []string{"HEX:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := NewDataFormatter(tt.showHex, tt.showASCI).FormatMessage(tt.msg)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, out, unwanted)
			}
		})
	}
}

func TestPrintableStripsControlBytes(t *testing.T) {
	assert.Equal(t, "..[A.", printable([]byte{0x1b, 0x07, '[', 'A', 0x7f}))
}

func TestStatusBarCounters(t *testing.T) {
	sb := NewStatusBar("listen", "/dev/ttyUSB0")
	sb.Record(ReadResultMsg{Code: 64})
	sb.Record(ReadResultMsg{Code: 10})
	sb.Record(ReadResultMsg{Code: int(dcserial.StatusIO)})

	reads, bytes, lastErr := sb.Counters()
	assert.Equal(t, 3, reads)
	assert.Equal(t, 74, bytes)
	assert.Equal(t, int(dcserial.StatusIO), lastErr)

	sb.ResetCounters()
	reads, bytes, lastErr = sb.Counters()
	assert.Zero(t, reads+bytes+lastErr)
}

func TestStatusBarView(t *testing.T) {
	sb := NewStatusBar("listen", "/dev/ttyUSB0")
	sb.SetWidth(120)
	sb.SetConnectionInfo(&ConnectionInfo{
		Line: dcserial.LineConfig{BaudRate: 9600, DataBits: 8, Parity: dcserial.ParityNone, StopBits: dcserial.StopBitsOne},
		DTR:  true,
	})
	sb.SetConnected()

	view := sb.View("LISTEN", true, "12:00:00")
	for _, want := range []string{"LISTEN", "/dev/ttyUSB0", "9600/8N1", "DTR:↑", "RTS:↓", "0 reads"} {
		assert.True(t, strings.Contains(view, want), "missing %q in %q", want, view)
	}
}

func TestTerminalClearAndRefresh(t *testing.T) {
	term := NewTerminal(80, 10)
	msgs := []ReadResultMsg{
		{Timestamp: time.Now(), Requested: 4, Data: []byte("ok"), Code: 2},
	}
	term.AddMessage(msgs[0])
	assert.Contains(t, term.View(), "RX 2/4")

	term.ToggleHex()
	term.Refresh(msgs)
	assert.NotContains(t, term.View(), "HEX:")
	assert.False(t, term.GetDisplayMode().ShowHex)

	term.Clear()
	assert.NotContains(t, term.View(), "RX")
}
