// Package splitflags provides the flags controlling how an input stream
// is split across output files.
package splitflags

import (
	"errors"
	"flag"
	"fmt"

	"github.com/alecthomas/units"
	"github.com/bsontools/bsplit/splitter"
)

type Flags struct {
	FanOut      int
	Dir         string
	FlushThresh int64
	BufSize     int
	bufsize     string
}

func (f *Flags) SetFlags(fs *flag.FlagSet) {
	fs.IntVar(&f.FanOut, "s", 0, "number of output files to split into (must be at least 1)")
	fs.StringVar(&f.Dir, "d", "", "directory for output files (defaults to the current directory)")
	fs.Int64Var(&f.FlushThresh, "flushevery", splitter.DefaultFlushThresh,
		"flush all output files after this many document writes")
	fs.StringVar(&f.bufsize, "bufsize", "64KiB",
		"write buffer size of each output file, as '64KiB' or '1MiB', etc.")
}

// Init validates the flags before any file is touched.
func (f *Flags) Init() error {
	if f.FanOut < 1 {
		return errors.New("split count must be at least 1")
	}
	if f.FlushThresh < 1 {
		return errors.New("flush threshold must be at least 1")
	}
	n, err := units.ParseStrictBytes(f.bufsize)
	if err != nil {
		return fmt.Errorf("invalid buffer size: %w", err)
	}
	f.BufSize = int(n)
	return nil
}

// Options builds splitter options for the given filename prefix.
func (f *Flags) Options(prefix string) splitter.Options {
	return splitter.Options{
		Dir:         f.Dir,
		Prefix:      prefix,
		FanOut:      f.FanOut,
		FlushThresh: f.FlushThresh,
		BufSize:     f.BufSize,
	}
}
