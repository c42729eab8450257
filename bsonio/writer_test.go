package bsonio_test

import (
	"bytes"
	"testing"

	"github.com/bsontools/bsplit/bsonio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type bufCloser struct {
	bytes.Buffer
	closed bool
}

func (b *bufCloser) Close() error {
	b.closed = true
	return nil
}

func TestWriterBuffersUntilFlush(t *testing.T) {
	var buf bufCloser
	w := bsonio.NewWriter(&buf, 1024*1024)
	require.NoError(t, w.Write(bson.D{{Key: "seq", Value: int32(1)}}))
	assert.Zero(t, buf.Len(), "document should still be buffered")
	require.NoError(t, w.Flush())
	assert.NotZero(t, buf.Len())
}

func TestWriterCloseFlushes(t *testing.T) {
	docs := []bson.D{
		{{Key: "seq", Value: int32(1)}},
		{{Key: "seq", Value: int32(2)}},
	}
	var buf bufCloser
	w := bsonio.NewWriter(&buf, 0)
	for _, doc := range docs {
		require.NoError(t, w.Write(doc))
	}
	require.NoError(t, w.Close())
	assert.True(t, buf.closed)

	r := bsonio.NewReader(bytes.NewReader(buf.Bytes()))
	for _, want := range docs {
		doc, err := r.Read()
		require.NoError(t, err)
		require.NotNil(t, doc)
		assert.Equal(t, want, *doc)
	}
	doc, err := r.Read()
	require.NoError(t, err)
	require.Nil(t, doc)
}
