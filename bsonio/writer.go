package bsonio

import (
	"bufio"
	"io"

	"go.mongodb.org/mongo-driver/bson"
)

const DefaultBufSize = 64 * 1024

// StreamWriter re-encodes documents onto an underlying writer through an
// in-memory buffer.  Writes are not durable until Flush or Close.
type StreamWriter struct {
	closer io.Closer
	buf    *bufio.Writer
}

func NewWriter(w io.WriteCloser, bufsize int) *StreamWriter {
	if bufsize <= 0 {
		bufsize = DefaultBufSize
	}
	return &StreamWriter{
		closer: w,
		buf:    bufio.NewWriterSize(w, bufsize),
	}
}

func (w *StreamWriter) Write(doc bson.D) error {
	b, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = w.buf.Write(b)
	return err
}

func (w *StreamWriter) Flush() error {
	return w.buf.Flush()
}

// Close flushes buffered documents and then closes the underlying writer.
func (w *StreamWriter) Close() error {
	err := w.Flush()
	if closeErr := w.closer.Close(); err == nil {
		err = closeErr
	}
	return err
}
