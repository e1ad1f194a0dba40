package stream

import (
	"context"
	"sync"
)

// Watch bridges s to a channel until ctx is done, then releases the
// subscription and closes the channel. The channel conflates: a slow reader
// only ever sees the most recent value.
func Watch[T any](ctx context.Context, s Stream[T]) <-chan T {
	out := make(chan T, 1)
	var (
		mu   sync.Mutex
		done bool
	)
	cancel := s.Subscribe(func(v T) {
		mu.Lock()
		defer mu.Unlock()
		if done {
			return
		}
		for {
			select {
			case out <- v:
				return
			default:
			}
			select {
			case <-out:
			default:
			}
		}
	})
	go func() {
		<-ctx.Done()
		cancel()
		mu.Lock()
		done = true
		close(out)
		mu.Unlock()
	}()
	return out
}
