package bsonio

import (
	"io"
	"sync/atomic"
)

// CountingReader wraps an io.Reader and counts the bytes read through it.
// BytesRead is safe to call concurrently with Read.
type CountingReader struct {
	reader io.Reader
	nread  int64
}

func NewCountingReader(r io.Reader) *CountingReader {
	return &CountingReader{reader: r}
}

func (c *CountingReader) Read(b []byte) (int, error) {
	n, err := c.reader.Read(b)
	atomic.AddInt64(&c.nread, int64(n))
	return n, err
}

func (c *CountingReader) BytesRead() int64 {
	return atomic.LoadInt64(&c.nread)
}
