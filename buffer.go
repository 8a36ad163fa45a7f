package dcserial

import "bytes"

// readBuffer holds bytes already pulled from hardware but not yet delivered.
// Bytes are appended at the tail and drained from the head.
type readBuffer struct {
	buf bytes.Buffer
}

func (b *readBuffer) Len() int {
	return b.buf.Len()
}

func (b *readBuffer) Append(p []byte) {
	b.buf.Write(p)
}

// Drain moves up to len(p) bytes from the head of the buffer into p.
func (b *readBuffer) Drain(p []byte) int {
	n, _ := b.buf.Read(p) // io.EOF only signals an empty buffer
	return n
}

func (b *readBuffer) Reset() {
	b.buf.Reset()
}

// Bytes returns the unread bytes without consuming them.
func (b *readBuffer) Bytes() []byte {
	return b.buf.Bytes()
}
