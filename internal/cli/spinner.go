package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/cryptoviz/pkg/anim"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner draws a braille spinner with an optional done/total count. An
// anim.Driver ticks the frames.
type Spinner struct {
	ctx    context.Context
	cancel context.CancelFunc
	driver *anim.Driver
	out    io.Writer

	mu      sync.Mutex
	message string
	done    int
	total   int
	width   int
}

// newSpinner creates a spinner on stderr. It stops drawing when ctx ends.
func newSpinner(ctx context.Context, message string) *Spinner {
	spinnerCtx, cancel := context.WithCancel(ctx)
	s := &Spinner{
		ctx:     spinnerCtx,
		cancel:  cancel,
		out:     os.Stderr,
		message: message,
	}
	s.driver = anim.NewDriver(anim.NewClock(0), 80*time.Millisecond, s.draw)
	return s
}

// Start begins the spinner animation.
func (s *Spinner) Start() {
	s.driver.Start(s.ctx)
}

// SetProgress shows done/total after the message.
func (s *Spinner) SetProgress(done, total int) {
	s.mu.Lock()
	s.done, s.total = done, total
	s.mu.Unlock()
}

func (s *Spinner) draw(c anim.Clock) error {
	frame := spinnerFrames[c.Ticks%uint64(len(spinnerFrames))]
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := s.message
	if s.total > 0 {
		msg = fmt.Sprintf("%s (%d/%d)", msg, s.done, s.total)
	}
	s.width = max(s.width, len(msg)+4)
	fmt.Fprintf(s.out, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(msg))
	return nil
}

// Stop stops the spinner and clears the line. It is idempotent.
func (s *Spinner) Stop() {
	s.driver.Stop()
	s.cancel()
	s.clearLine()
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width == 0 {
		return
	}
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", s.width))
	s.width = 0
}

// StopWithSuccess stops the spinner and shows a success message.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

// StopWithError stops the spinner and shows an error message.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}
