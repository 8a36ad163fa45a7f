package models

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/allbin/go-dcserial"
	"github.com/allbin/go-dcserial/internal/tui/components"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedDriver hands out one chunk per read, then fails with err. Reads
// past the script return nothing.
type scriptedDriver struct {
	mu     sync.Mutex
	chunks [][]byte
	err    error
	closed bool
}

func (d *scriptedDriver) Read(buf []byte, _ time.Duration) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.chunks) == 0 {
		if d.err != nil {
			return 0, d.err
		}
		return 0, nil
	}
	n := copy(buf, d.chunks[0])
	d.chunks = d.chunks[1:]
	return n, nil
}

func (d *scriptedDriver) Write(buf []byte, _ time.Duration) (int, error) { return len(buf), nil }
func (d *scriptedDriver) SetDTR(bool) error                              { return nil }
func (d *scriptedDriver) SetRTS(bool) error                              { return nil }
func (d *scriptedDriver) SetParameters(int, int, dcserial.NativeStopBits, dcserial.Parity) error {
	return nil
}
func (d *scriptedDriver) PurgeHwBuffers(bool, bool) (bool, error) { return true, nil }

func (d *scriptedDriver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

func (d *scriptedDriver) isClosed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

func openScripted(t *testing.T, d *scriptedDriver) *dcserial.Port {
	t.Helper()
	acq := dcserial.AcquirerFunc(func(context.Context) (dcserial.Driver, error) { return d, nil })
	port, err := dcserial.Open(context.Background(), acq)
	require.NoError(t, err)
	return port
}

func collect(msgs chan tea.Msg) func(tea.Msg) {
	return func(msg tea.Msg) { msgs <- msg }
}

func TestSessionDeliversReadsUntilFailure(t *testing.T) {
	d := &scriptedDriver{
		chunks: [][]byte{{0x01, 0x02}, {0x03}},
		err:    errors.New("device unplugged"),
	}
	msgs := make(chan tea.Msg, 8)

	s := NewSession(16)
	s.Start(openScripted(t, d), collect(msgs))

	first := (<-msgs).(components.ReadResultMsg)
	assert.Equal(t, []byte{0x01, 0x02}, first.Data)
	assert.Equal(t, 2, first.Code)
	assert.Equal(t, 16, first.Requested)

	second := (<-msgs).(components.ReadResultMsg)
	assert.Equal(t, []byte{0x03}, second.Data)

	failed := (<-msgs).(components.ReadResultMsg)
	assert.Equal(t, int(dcserial.StatusIO), failed.Code)
	assert.Empty(t, failed.Data)

	status := (<-msgs).(ConnectionStatusMsg)
	assert.False(t, status.Connected)
	assert.ErrorIs(t, status.Error, dcserial.StatusIO)

	require.NoError(t, s.Stop(time.Second))
	assert.True(t, d.isClosed())
}

func TestSessionStopWhileIdle(t *testing.T) {
	d := &scriptedDriver{}
	s := NewSession(8)
	s.Start(openScripted(t, d), func(tea.Msg) { t.Error("no read should be delivered") })

	require.NoError(t, s.Stop(time.Second))
	assert.True(t, d.isClosed())
}

func TestSessionStopBeforeStart(t *testing.T) {
	s := NewSession(8)
	assert.NoError(t, s.Stop(time.Millisecond))
}

func TestSessionResults(t *testing.T) {
	s := NewSession(8)
	s.AddResult(components.ReadResultMsg{Code: 1, Data: []byte{0xAA}})
	s.AddResult(components.ReadResultMsg{Code: 2, Data: []byte{0xBB, 0xCC}})
	assert.Len(t, s.Results(), 2)

	assert.True(t, s.TogglePause())
	assert.True(t, s.IsPaused())

	s.ClearResults()
	assert.Empty(t, s.Results())
}
