package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer guards a buffer written by the spinner's driver goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func testSpinner(ctx context.Context) (*Spinner, *syncBuffer) {
	out := &syncBuffer{}
	s := newSpinner(ctx, "Rendering charts")
	s.out = out
	return s, out
}

func TestSpinnerShowsProgress(t *testing.T) {
	s, out := testSpinner(context.Background())
	s.SetProgress(3, 7)
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	got := out.String()
	if !strings.Contains(got, "Rendering charts (3/7)") {
		t.Errorf("output %q missing progress count", got)
	}
	if !strings.HasSuffix(got, "\r") {
		t.Error("Stop did not clear the line")
	}
}

func TestSpinnerStopsDrawing(t *testing.T) {
	tests := []struct {
		name string
		stop func(s *Spinner, cancel context.CancelFunc)
	}{
		{"stop", func(s *Spinner, _ context.CancelFunc) { s.Stop() }},
		{"stop twice", func(s *Spinner, _ context.CancelFunc) { s.Stop(); s.Stop() }},
		{"context canceled", func(_ *Spinner, cancel context.CancelFunc) { cancel() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			s, out := testSpinner(ctx)
			s.Start()
			time.Sleep(100 * time.Millisecond)
			tt.stop(s, cancel)
			time.Sleep(50 * time.Millisecond)

			n := len(out.String())
			time.Sleep(200 * time.Millisecond)
			if len(out.String()) != n {
				t.Error("spinner kept drawing")
			}
		})
	}
}
