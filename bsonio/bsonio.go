// Package bsonio provides Reader and Writer implementations for streams
// of concatenated BSON documents.
package bsonio

import (
	"context"
	"io"

	"go.mongodb.org/mongo-driver/bson"
)

// Reader wraps the Read method.
//
// Read returns the next document and a nil error, a nil document and the
// next error, or a nil document and nil error to indicate that no
// documents remain.
//
// Read never returns a non-nil document and non-nil error together, and
// it never returns io.EOF.
type Reader interface {
	Read() (*bson.D, error)
}

type Writer interface {
	Write(bson.D) error
}

type ReadCloser interface {
	Reader
	io.Closer
}

type WriteCloser interface {
	Writer
	io.Closer
}

// Copy copies src to dst a la io.Copy.
func Copy(dst Writer, src Reader) error {
	return CopyWithContext(context.Background(), dst, src)
}

func CopyWithContext(ctx context.Context, dst Writer, src Reader) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		doc, err := src.Read()
		if err != nil || doc == nil {
			return err
		}
		if err := dst.Write(*doc); err != nil {
			return err
		}
	}
}
