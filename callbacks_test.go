package dcserial

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallbacksScenario(t *testing.T) {
	f := newFakeDriver(seq(0, 64))
	cb, ok := OpenCallbacks(context.Background(), f.acquirer())
	require.True(t, ok)

	assert.Equal(t, int(StatusSuccess), cb.Configure(9600, 8, ParityNone, StopBitsOne))

	buf := make([]byte, 64)
	assert.Equal(t, 64, cb.Read(buf))
	assert.Equal(t, 0, cb.Port().Buffered())
	assert.Equal(t, 0, cb.Read(buf), "no data is a zero count, not a status")

	assert.Equal(t, int(StatusSuccess), cb.SetTimeout(1500))
	assert.Equal(t, 1500*time.Millisecond, cb.Port().Timeout())

	assert.Equal(t, 3, cb.Write([]byte{1, 2, 3}))
	assert.Equal(t, int(StatusSuccess), cb.SetDTR(true))
	assert.Equal(t, int(StatusSuccess), cb.SetRTS(false))
	assert.Equal(t, int(StatusSuccess), cb.Purge(DirectionAll))
	assert.Equal(t, int(StatusSuccess), cb.Close())
}

func TestCallbacksAbsent(t *testing.T) {
	acq := AcquirerFunc(func(context.Context) (Driver, error) { return nil, ErrPermissionPending })
	cb, ok := OpenCallbacks(context.Background(), acq)
	assert.False(t, ok)
	assert.Nil(t, cb)
}

func TestCallbacksFailuresAreNegative(t *testing.T) {
	f := newFakeDriver()
	f.readErr = errors.New("transfer failed")
	f.writeErr = errors.New("transfer failed")
	f.paramErr = errors.New("transfer failed")
	f.lineErr = errors.New("transfer failed")
	f.purgeOK = false
	f.closeErr = errors.New("transfer failed")

	cb := NewCallbacks(openFake(t, f))
	io := int(StatusIO)

	assert.Equal(t, io, cb.Configure(9600, 8, ParityNone, StopBitsOne))
	assert.Equal(t, io, cb.Read(make([]byte, 8)))
	assert.Equal(t, io, cb.Write([]byte{1}))
	assert.Equal(t, io, cb.SetDTR(true))
	assert.Equal(t, io, cb.SetRTS(true))
	assert.Equal(t, io, cb.Purge(DirectionInput))
	assert.Equal(t, io, cb.Close())
}

func TestCallbacksRecoverDriverPanic(t *testing.T) {
	f := newFakeDriver()
	f.panicOn = "read"
	cb := NewCallbacks(openFake(t, f))

	assert.NotPanics(t, func() {
		assert.Equal(t, int(StatusIO), cb.Read(make([]byte, 4)))
	})
}
