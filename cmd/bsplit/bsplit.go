package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bsontools/bsplit/bsonio"
	"github.com/bsontools/bsplit/cli"
	"github.com/bsontools/bsplit/cli/logflags"
	"github.com/bsontools/bsplit/cli/splitflags"
	"github.com/bsontools/bsplit/pkg/display"
	"github.com/bsontools/bsplit/pkg/units"
	"github.com/bsontools/bsplit/splitter"
	"github.com/mccanne/charm"
	"github.com/paulbellamy/ratecounter"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var Bsplit = &charm.Spec{
	Name:        "bsplit",
	Usage:       "bsplit -s count [ options ] file",
	Short:       "split a BSON file into pieces",
	HiddenFlags: "cpuprofile,memprofile",
	Long: `
bsplit reads a file of back-to-back BSON documents and deals them
round-robin into the requested number of output files, so a monolithic
dump can be processed downstream in parallel.  Documents are decoded and
re-encoded rather than copied byte for byte, so each output file is
itself a valid BSON stream whose documents preserve the content and
relative order of their counterparts in the input.

Output files are created in the current directory (or under -d) and
named <input-stem>-<epoch-millis>-<index>.bson, where the timestamp is
captured once per run and the index runs from 1 to the split count.  On
success the created paths are printed to standard output, one per line.

A stream that ends in the middle of a document is reported as an error;
documents written before the error remain on disk.
`,
	New: New,
}

type Command struct {
	cli.Flags
	splitFlags splitflags.Flags
	logFlags   logflags.Flags
	quiet      bool

	// progress display state
	ctx      context.Context
	reader   *bsonio.CountingReader
	split    *splitter.Splitter
	rate     *ratecounter.RateCounter
	lastRead int64
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	c := &Command{}
	c.SetFlags(f)
	c.splitFlags.SetFlags(f)
	c.logFlags.SetFlags(f)
	f.BoolVar(&c.quiet, "q", false, "don't display progress updates")
	return c, nil
}

func (c *Command) Run(args []string) error {
	if len(args) == 0 {
		// Init still runs so -version prints instead of help.
		_, cleanup, err := c.Init()
		if err != nil {
			return err
		}
		cleanup()
		return Bsplit.Exec(c, []string{"help"})
	}
	ctx, cleanup, err := c.Init(&c.splitFlags)
	if err != nil {
		return err
	}
	defer cleanup()
	if len(args) != 1 {
		return errors.New("bsplit: exactly one input file must be specified")
	}
	logger, err := c.logFlags.Open()
	if err != nil {
		return err
	}
	defer logger.Sync()
	path := args[0]
	prefix, err := stem(path)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	c.reader = bsonio.NewCountingReader(f)
	c.split, err = splitter.New(c.splitFlags.Options(prefix))
	if err != nil {
		return err
	}
	var d *display.Display
	if !c.quiet && term.IsTerminal(int(os.Stderr.Fd())) {
		c.ctx = ctx
		c.rate = ratecounter.NewRateCounter(time.Second)
		d = display.New(c, time.Second/2, os.Stderr)
		go d.Run()
	}
	start := time.Now()
	copyErr := bsonio.CopyWithContext(ctx, c.split, bsonio.NewReader(c.reader))
	if d != nil {
		d.Close()
	}
	if copyErr != nil {
		return copyErr
	}
	if err := c.split.Close(); err != nil {
		return err
	}
	for _, p := range c.split.Paths() {
		fmt.Println(p)
	}
	if !c.quiet {
		logger.Info("split complete",
			zap.String("input", path),
			zap.Int("files", len(c.split.Paths())),
			zap.Int64("documents", c.split.Written()),
			zap.Int64("bytes", c.reader.BytesRead()),
			zap.Duration("elapsed", time.Since(start)))
	}
	return nil
}

// 1234 docs 1.50MiB 100.00MiB/s
func (c *Command) Display(w io.Writer) bool {
	read := c.reader.BytesRead()
	c.rate.Incr(read - c.lastRead)
	c.lastRead = read
	fmt.Fprintf(w, "%d docs %s %s/s\n",
		c.split.Written(),
		units.Bytes(read).Abbrev(),
		units.Bytes(c.rate.Rate()).Abbrev())
	return c.ctx.Err() == nil
}

// stem derives the output filename prefix from the input path: the base
// name with its final extension removed.  Dotfiles like ".bson" have no
// extension to strip.
func stem(path string) (string, error) {
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) {
		return "", fmt.Errorf("unable to derive an output prefix from %q", path)
	}
	prefix := strings.TrimSuffix(base, filepath.Ext(base))
	if prefix == "" {
		prefix = base
	}
	return prefix, nil
}
