package stream

// Stream is a source of values of type T.
type Stream[T any] interface {
	// Subscribe registers fn and returns the function releasing the
	// subscription. Cancel functions are safe to call more than once.
	Subscribe(fn func(T)) (cancel func())
}

// Func adapts a subscribe function to a Stream.
type Func[T any] func(fn func(T)) (cancel func())

// Subscribe implements Stream.
func (f Func[T]) Subscribe(fn func(T)) func() { return f(fn) }

// Just returns a stream emitting vs to every subscriber, synchronously, at
// subscription time.
func Just[T any](vs ...T) Stream[T] {
	return Func[T](func(fn func(T)) func() {
		for _, v := range vs {
			fn(v)
		}
		return func() {}
	})
}

// Never returns a stream that never emits.
func Never[T any]() Stream[T] {
	return Func[T](func(func(T)) func() { return func() {} })
}

// Option carries a value that may legitimately be absent.
type Option[T any] struct {
	Value T
	Valid bool
}

// Some wraps a present value.
func Some[T any](v T) Option[T] { return Option[T]{Value: v, Valid: true} }

// None returns the absent value.
func None[T any]() Option[T] { return Option[T]{} }

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) { return o.Value, o.Valid }
