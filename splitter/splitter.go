// Package splitter deals a stream of BSON documents round-robin across a
// set of output files.
package splitter

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/bsontools/bsplit/bsonio"
	"go.mongodb.org/mongo-driver/bson"
)

// DefaultFlushThresh is the number of document writes, summed across all
// sinks, between synchronous flushes of every sink.
const DefaultFlushThresh = 100000

type Options struct {
	// Dir is the directory in which output files are created.  Empty
	// means the current directory.
	Dir string
	// Prefix is the leading component of each output filename.
	Prefix string
	// FanOut is the number of output files.  Must be at least 1.
	FanOut int
	// FlushThresh overrides DefaultFlushThresh when positive.
	FlushThresh int64
	// BufSize is the write buffer size of each sink.  Zero selects
	// bsonio.DefaultBufSize.
	BufSize int
}

// Splitter is a bsonio.Writer that routes each document to the next of N
// file sinks in cyclic order: the i-th document written (1-indexed) lands
// in sink (i-1) mod N, so each sink receives an interleaved-by-N
// subsequence of the input in its original order.
type Splitter struct {
	sinks   []*bsonio.StreamWriter
	paths   []string
	cycle   int
	written int64
	thresh  int64
}

// New creates opts.FanOut output files named
// <prefix>-<epoch-millis>-<index>.bson for index 1 through FanOut, all
// sharing a single timestamp captured here.  A failed create aborts
// without cleaning up files already created.
func New(opts Options) (*Splitter, error) {
	if opts.FanOut < 1 {
		return nil, fmt.Errorf("fan-out must be at least 1: %d", opts.FanOut)
	}
	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0755); err != nil {
			return nil, err
		}
	}
	thresh := opts.FlushThresh
	if thresh <= 0 {
		thresh = DefaultFlushThresh
	}
	stamp := time.Now().UnixMilli()
	s := &Splitter{thresh: thresh}
	for i := 1; i <= opts.FanOut; i++ {
		name := fmt.Sprintf("%s-%d-%d.bson", opts.Prefix, stamp, i)
		path := filepath.Join(opts.Dir, name)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return nil, fmt.Errorf("creating output file: %w", err)
		}
		s.sinks = append(s.sinks, bsonio.NewWriter(f, opts.BufSize))
		s.paths = append(s.paths, path)
	}
	return s, nil
}

// Paths returns the output file paths in creation order.
func (s *Splitter) Paths() []string {
	return s.paths
}

// Written returns the total number of documents written across all sinks.
// It is safe to call concurrently with Write.
func (s *Splitter) Written() int64 {
	return atomic.LoadInt64(&s.written)
}

func (s *Splitter) Write(doc bson.D) error {
	if err := s.sinks[s.cycle].Write(doc); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	s.cycle = (s.cycle + 1) % len(s.sinks)
	if n := atomic.AddInt64(&s.written, 1); n%s.thresh == 0 {
		return s.Flush()
	}
	return nil
}

// Flush flushes every sink.  All sinks are attempted even if one fails;
// the first error wins.
func (s *Splitter) Flush() error {
	var err error
	for _, sink := range s.sinks {
		if flushErr := sink.Flush(); err == nil && flushErr != nil {
			err = fmt.Errorf("flushing output: %w", flushErr)
		}
	}
	return err
}

// Close flushes and closes every sink, accumulating the first error.
func (s *Splitter) Close() error {
	var err error
	for _, sink := range s.sinks {
		if closeErr := sink.Close(); err == nil {
			err = closeErr
		}
	}
	return err
}
