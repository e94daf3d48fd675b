package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

type frameCounter struct {
	Noop
	frames int
}

func (f *frameCounter) OnFrame(context.Context, string, int) { f.frames++ }

func TestDefaultsAreNoop(t *testing.T) {
	Reset()
	if _, ok := Render().(Noop); !ok {
		t.Errorf("Render() = %T, want Noop", Render())
	}
	if _, ok := Cache().(Noop); !ok {
		t.Errorf("Cache() = %T, want Noop", Cache())
	}
	if _, ok := Stream().(Noop); !ok {
		t.Errorf("Stream() = %T, want Noop", Stream())
	}
}

func TestRegisterMatchesInterfaces(t *testing.T) {
	t.Cleanup(Reset)

	fc := &frameCounter{}
	if !Register(fc) {
		t.Fatal("Register(frameCounter) matched nothing")
	}
	Stream().OnFrame(context.Background(), "s1", 10)
	Stream().OnFrame(context.Background(), "s1", 10)
	if fc.frames != 2 {
		t.Errorf("frames = %d, want 2", fc.frames)
	}
	if Render() != RenderHooks(fc) {
		t.Error("embedded Noop should make frameCounter a RenderHooks too")
	}

	if Register("not hooks") {
		t.Error("Register(string) reported a match")
	}
	if Stream() != StreamHooks(fc) {
		t.Error("unmatched Register replaced stream hooks")
	}

	Reset()
	Stream().OnFrame(context.Background(), "s1", 10)
	if fc.frames != 2 {
		t.Error("hooks still installed after Reset")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	l := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	h := NewLogHooks(l)
	ctx := context.Background()

	h.OnBuild(ctx, "orbit", 120, time.Millisecond)
	h.OnCacheSet(ctx, "artifact", 2048)
	h.OnClose(ctx, "s1", 42, errors.New("client gone"))

	out := buf.String()
	for _, want := range []string{"events", "scene built", "chart=orbit", "2.0 kB", "frames=42", "client gone"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLogHooksQuietAboveDebug(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel}))
	h.OnFrame(context.Background(), "s1", 100)
	if buf.Len() != 0 {
		t.Errorf("logged at info level: %q", buf.String())
	}
}
