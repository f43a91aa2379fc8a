package formatter

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// Spinner is the line-mode composing indicator used outside the chat TUI,
// where a bubbletea program is not running. It borrows the bubbles MiniDot
// frames so both surfaces animate alike.
type Spinner struct {
	w     io.Writer
	label string
	anim  spinner.Spinner

	once sync.Once
	quit chan struct{}
	done chan struct{}
}

func NewSpinner(w io.Writer, label string) *Spinner {
	return &Spinner{
		w:     w,
		label: label,
		anim:  spinner.MiniDot,
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}
}

// Start draws frames on w until Stop.
func (s *Spinner) Start() {
	go s.loop()
}

func (s *Spinner) loop() {
	defer close(s.done)
	tick := time.NewTicker(s.anim.FPS)
	defer tick.Stop()

	for frame := 0; ; frame++ {
		s.draw(s.anim.Frames[frame%len(s.anim.Frames)])
		select {
		case <-s.quit:
			fmt.Fprint(s.w, clearLine)
			return
		case <-tick.C:
		}
	}
}

func (s *Spinner) draw(frame string) {
	fmt.Fprintf(s.w, "%s  %s %s", clearLine, StylePurple.Render(frame), Dim(s.label))
}

// Stop clears the indicator line and waits for the draw loop to exit.
// Repeat calls are no-ops.
func (s *Spinner) Stop() {
	s.once.Do(func() { close(s.quit) })
	<-s.done
}

// StartSpinner starts a spinner on w and returns its Stop.
func StartSpinner(w io.Writer, label string) func() {
	s := NewSpinner(w, label)
	s.Start()
	return s.Stop
}

const clearLine = "\r\033[K"
