package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

const clearLine = "\r\x1b[2K"

// Spinner animates "[step/total] <frame> <message>" on one line of w until
// stopped. A disabled spinner writes nothing.
type Spinner struct {
	w       io.Writer
	label   string
	frames  []string
	every   time.Duration
	stop    chan struct{}
	done    chan struct{}
	stopped sync.Once
}

func StartSpinner(w io.Writer, enabled bool, step, total int, message string) *Spinner {
	s := &Spinner{
		w:      w,
		label:  fmt.Sprintf("[%d/%d]", step, total),
		frames: spinner.MiniDot.Frames,
		every:  spinner.MiniDot.FPS,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	if !enabled {
		close(s.done)
		return s
	}
	go s.loop(message)
	return s
}

func (s *Spinner) loop(message string) {
	defer close(s.done)
	ticker := time.NewTicker(s.every)
	defer ticker.Stop()
	for i := 0; ; i = (i + 1) % len(s.frames) {
		fmt.Fprintf(s.w, "%s%s %s %s", clearLine, s.label, s.frames[i], message)
		select {
		case <-s.stop:
			fmt.Fprint(s.w, clearLine)
			return
		case <-ticker.C:
		}
	}
}

// Stop clears the spinner line and waits for the animation to end. It is
// safe to call more than once.
func (s *Spinner) Stop() {
	s.stopped.Do(func() { close(s.stop) })
	<-s.done
}
