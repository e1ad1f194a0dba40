package eventbus

import "sync"

// Option configures a TypedBus.
type Option func(*options)

type options struct {
	replay   bool
	onActive func()
	onIdle   func()
}

// WithReplay makes the bus remember the last published event and deliver it
// to every new subscriber.
func WithReplay() Option { return func(o *options) { o.replay = true } }

// OnActive registers a hook called when the subscriber count goes from 0 to 1.
func OnActive(fn func()) Option { return func(o *options) { o.onActive = fn } }

// OnIdle registers a hook called when the subscriber count drops back to 0.
func OnIdle(fn func()) Option { return func(o *options) { o.onIdle = fn } }

// TypedBus is a type-safe publish/subscribe bus for events of type T.
// Handlers run synchronously on the publishing goroutine. A handler never sees
// an event older than one it already received, so a replay racing a publish
// is dropped. Handlers must not publish to the bus they are subscribed to.
type TypedBus[T any] struct {
	mu      sync.RWMutex
	subs    map[uint64]*subscription[T]
	next    uint64
	seq     uint64
	last    T
	lastSeq uint64
	hasLast bool
	closed  bool
	opts    options
}

type subscription[T any] struct {
	mu   sync.Mutex
	seen uint64
	h    func(T)
}

func (s *subscription[T]) deliver(e T, seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.seen {
		return
	}
	s.seen = seq
	s.h(e)
}

// NewTyped creates a new TypedBus.
func NewTyped[T any](opts ...Option) *TypedBus[T] {
	b := &TypedBus[T]{subs: make(map[uint64]*subscription[T])}
	for _, o := range opts {
		o(&b.opts)
	}
	return b
}

// Publish delivers the event to all current subscribers.
func (b *TypedBus[T]) Publish(e T) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.seq++
	seq := b.seq
	if b.opts.replay {
		b.last, b.lastSeq, b.hasLast = e, seq, true
	}
	subs := make([]*subscription[T], 0, len(b.subs))
	for _, s := range b.subs {
		subs = append(subs, s)
	}
	b.mu.Unlock()
	for _, s := range subs {
		s.deliver(e, seq)
	}
}

// Subscribe registers a handler and returns the function removing it. The
// returned function is idempotent.
func (b *TypedBus[T]) Subscribe(h func(T)) (unsubscribe func()) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return func() {}
	}
	id := b.next
	b.next++
	sub := &subscription[T]{h: h}
	b.subs[id] = sub
	first := len(b.subs) == 1
	last, lastSeq, replay := b.last, b.lastSeq, b.hasLast
	b.mu.Unlock()

	if replay {
		sub.deliver(last, lastSeq)
	}
	if first && b.opts.onActive != nil {
		b.opts.onActive()
	}
	var once sync.Once
	return func() { once.Do(func() { b.remove(id) }) }
}

func (b *TypedBus[T]) remove(id uint64) {
	b.mu.Lock()
	if _, ok := b.subs[id]; !ok {
		b.mu.Unlock()
		return
	}
	delete(b.subs, id)
	idle := len(b.subs) == 0 && !b.closed
	b.mu.Unlock()
	if idle && b.opts.onIdle != nil {
		b.opts.onIdle()
	}
}

// Last returns the replayed event, if any.
func (b *TypedBus[T]) Last() (T, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.last, b.hasLast
}

// Reset forgets the replayed event.
func (b *TypedBus[T]) Reset() {
	b.mu.Lock()
	var zero T
	b.last, b.lastSeq, b.hasLast = zero, 0, false
	b.mu.Unlock()
}

// Len reports the number of active subscribers.
func (b *TypedBus[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close drops all subscribers. Further publishes are ignored.
func (b *TypedBus[T]) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.subs = nil
	b.mu.Unlock()
}
