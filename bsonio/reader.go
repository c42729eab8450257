package bsonio

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	ReadSize = 512 * 1024
	// MaxDocSize bounds a single document's declared length.  BSON caps
	// documents at 16MiB, so a bigger length prefix means the stream is
	// corrupt.
	MaxDocSize = 16 * 1024 * 1024
	// MinDocSize is the length prefix plus the trailing terminator byte,
	// i.e., an empty document.
	MinDocSize = 5
)

// StreamReader decodes a stream of back-to-back BSON documents.  Each
// document is framed by its own 4-byte little-endian length prefix, so a
// clean end of stream can occur only at a document boundary.
type StreamReader struct {
	reader *bufio.Reader
}

func NewReader(reader io.Reader) *StreamReader {
	return &StreamReader{reader: bufio.NewReaderSize(reader, ReadSize)}
}

func (r *StreamReader) Read() (*bson.D, error) {
	raw, err := r.next()
	if raw == nil || err != nil {
		return nil, err
	}
	var doc bson.D
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, "malformed BSON document")
	}
	return &doc, nil
}

// next returns the raw frame of the next document, or nil at a clean end
// of stream.  io.EOF on the first byte of a length prefix is the normal
// termination signal; end of input anywhere else means the stream was
// truncated.
func (r *StreamReader) next() ([]byte, error) {
	var prefix [4]byte
	if _, err := io.ReadFull(r.reader, prefix[:]); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, errors.Wrap(err, "reading document length")
	}
	size := int32(binary.LittleEndian.Uint32(prefix[:]))
	if size < MinDocSize || size > MaxDocSize {
		return nil, errors.Errorf("invalid document length %d", size)
	}
	buf := make([]byte, size)
	copy(buf, prefix[:])
	if _, err := io.ReadFull(r.reader, buf[len(prefix):]); err != nil {
		return nil, errors.Wrap(err, "truncated document")
	}
	return buf, nil
}
