package dcserial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadBufferFIFO(t *testing.T) {
	var b readBuffer

	b.Append([]byte{1, 2, 3})
	b.Append([]byte{4, 5})
	assert.Equal(t, 5, b.Len())

	out := make([]byte, 2)
	assert.Equal(t, 2, b.Drain(out))
	assert.Equal(t, []byte{1, 2}, out)

	b.Append([]byte{6})
	out = make([]byte, 10)
	n := b.Drain(out)
	assert.Equal(t, 4, n)
	assert.Equal(t, []byte{3, 4, 5, 6}, out[:n])
	assert.Equal(t, 0, b.Len())

	assert.Equal(t, 0, b.Drain(out), "draining an empty buffer yields nothing")
}

func TestReadBufferReset(t *testing.T) {
	var b readBuffer
	b.Append([]byte("stale"))
	b.Reset()

	assert.Equal(t, 0, b.Len())
	assert.Empty(t, b.Bytes())

	b.Append([]byte("fresh"))
	assert.Equal(t, []byte("fresh"), b.Bytes())
}
