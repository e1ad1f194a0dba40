package stream

import (
	"sync"

	"github.com/kilianp07/carinfo/internal/eventbus"
)

type shared[T any] struct {
	src    Stream[T]
	bus    *eventbus.TypedBus[T]
	mu     sync.Mutex
	cancel func()
}

// Share multicasts s. The upstream is subscribed once, when the first
// consumer arrives, and released when the last one leaves. Late subscribers
// receive the latest value immediately. The replayed value is dropped on
// release so a reconnect never serves stale data.
func Share[T any](s Stream[T]) Stream[T] {
	sh := &shared[T]{src: s}
	sh.bus = eventbus.NewTyped[T](
		eventbus.WithReplay(),
		eventbus.OnActive(sh.connect),
		eventbus.OnIdle(sh.disconnect),
	)
	return sh
}

func (s *shared[T]) Subscribe(fn func(T)) func() { return s.bus.Subscribe(fn) }

func (s *shared[T]) connect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil || s.bus.Len() == 0 {
		return
	}
	s.cancel = s.src.Subscribe(s.bus.Publish)
}

func (s *shared[T]) disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel == nil || s.bus.Len() > 0 {
		return
	}
	s.cancel()
	s.cancel = nil
	s.bus.Reset()
}
