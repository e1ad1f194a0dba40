package stream

import "sync"

// Map applies f to every value of s.
func Map[T, R any](s Stream[T], f func(T) R) Stream[R] {
	return Func[R](func(fn func(R)) func() {
		return s.Subscribe(func(v T) { fn(f(v)) })
	})
}

// FilterMap applies f to every value of s and emits the result only when f
// reports ok.
func FilterMap[T, R any](s Stream[T], f func(T) (R, bool)) Stream[R] {
	return Func[R](func(fn func(R)) func() {
		return s.Subscribe(func(v T) {
			if r, ok := f(v); ok {
				fn(r)
			}
		})
	})
}

// Filter emits the values of s satisfying keep.
func Filter[T any](s Stream[T], keep func(T) bool) Stream[T] {
	return FilterMap(s, func(v T) (T, bool) { return v, keep(v) })
}

// StartWith emits seed to each new subscriber before forwarding s. It is the
// "default until proven otherwise" prefix: the seed takes part in downstream
// combinations exactly like a real value, so it must be a value those
// combinations tolerate.
func StartWith[T any](seed T, s Stream[T]) Stream[T] {
	return Func[T](func(fn func(T)) func() {
		fn(seed)
		return s.Subscribe(fn)
	})
}

// CombineLatest2 emits f(a, b) whenever either input emits, once both inputs
// have emitted at least once. Emissions are serialized per subscription, so
// the output follows the interleaving of the inputs.
func CombineLatest2[A, B, R any](a Stream[A], b Stream[B], f func(A, B) R) Stream[R] {
	return Func[R](func(fn func(R)) func() {
		var (
			mu   sync.Mutex
			va   A
			vb   B
			hasA bool
			hasB bool
		)
		cancelA := a.Subscribe(func(v A) {
			mu.Lock()
			defer mu.Unlock()
			va, hasA = v, true
			if hasB {
				fn(f(va, vb))
			}
		})
		cancelB := b.Subscribe(func(v B) {
			mu.Lock()
			defer mu.Unlock()
			vb, hasB = v, true
			if hasA {
				fn(f(va, vb))
			}
		})
		return func() {
			cancelA()
			cancelB()
		}
	})
}
