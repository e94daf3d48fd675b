package observability

import "sync/atomic"

type slot[T any] struct{ p atomic.Pointer[T] }

func (s *slot[T]) get(fallback T) T {
	if h := s.p.Load(); h != nil {
		return *h
	}
	return fallback
}

func (s *slot[T]) set(h T) { s.p.Store(&h) }

var (
	renderSlot slot[RenderHooks]
	cacheSlot  slot[CacheHooks]
	streamSlot slot[StreamHooks]
)

// Register installs h for every hook interface it implements and reports
// whether it matched any. Later registrations replace earlier ones.
func Register(h any) bool {
	matched := false
	if r, ok := h.(RenderHooks); ok {
		renderSlot.set(r)
		matched = true
	}
	if c, ok := h.(CacheHooks); ok {
		cacheSlot.set(c)
		matched = true
	}
	if s, ok := h.(StreamHooks); ok {
		streamSlot.set(s)
		matched = true
	}
	return matched
}

// Render returns the installed render hooks.
func Render() RenderHooks { return renderSlot.get(Noop{}) }

// Cache returns the installed cache hooks.
func Cache() CacheHooks { return cacheSlot.get(Noop{}) }

// Stream returns the installed stream hooks.
func Stream() StreamHooks { return streamSlot.get(Noop{}) }

// Reset drops every installed hook.
func Reset() {
	renderSlot.p.Store(nil)
	cacheSlot.p.Store(nil)
	streamSlot.p.Store(nil)
}
