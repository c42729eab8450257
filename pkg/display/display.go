// Package display provides a live-updating status line for terminals.
package display

import (
	"bytes"
	"io"
	"sync"
	"time"

	"github.com/gosuri/uilive"
)

// Displayer writes one snapshot of status to w and reports whether the
// display should keep running.
type Displayer interface {
	Display(w io.Writer) bool
}

type Display struct {
	live     *uilive.Writer
	interval time.Duration
	updater  Displayer
	buffer   *bytes.Buffer
	close    chan struct{}
	once     sync.Once
	done     sync.WaitGroup
}

func New(updater Displayer, interval time.Duration, out io.Writer) *Display {
	live := uilive.New()
	live.Out = out
	d := &Display{
		live:     live,
		interval: interval,
		updater:  updater,
		buffer:   bytes.NewBuffer(nil),
		close:    make(chan struct{}),
	}
	// Registered here, not in Run, so a Close that wins the race to
	// start still waits for Run's updates to finish.
	d.done.Add(1)
	return d
}

func (d *Display) update() bool {
	d.buffer.Reset()
	cont := d.updater.Display(d.buffer)
	// Ignore any errors.
	_, _ = io.Copy(d.live, d.buffer)
	_ = d.live.Flush()
	return cont
}

// Run paints updates until Close is called or the updater reports
// completion.  It must be called exactly once per Display.
func (d *Display) Run() {
	defer d.done.Done()
	for {
		if !d.update() {
			return
		}
		select {
		case <-d.close:
			return
		case <-time.After(d.interval):
		}
	}
}

// Close stops the display and paints one final update.
func (d *Display) Close() {
	d.once.Do(func() { close(d.close) })
	d.done.Wait()
	d.update()
}
