package cds

import "github.com/kilianp07/carinfo/core/stream"

// Field is a typed accessor for one value inside the payload of a property.
// Path names the nested objects leading to the value; the last element is
// the value key.
type Field[T any] struct {
	Property PropertyID
	Path     []string
	get      func(Payload, string) (T, bool)
}

// Number declares a float field.
func Number(id PropertyID, path ...string) Field[float64] {
	return Field[float64]{Property: id, Path: path, get: Payload.Float}
}

// Integer declares an int field.
func Integer(id PropertyID, path ...string) Field[int] {
	return Field[int]{Property: id, Path: path, get: Payload.Int}
}

// Text declares a string field.
func Text(id PropertyID, path ...string) Field[string] {
	return Field[string]{Property: id, Path: path, get: Payload.String}
}

// Get reads the field from p. Missing objects, missing keys and values of the
// wrong type all report false.
func (f Field[T]) Get(p Payload) (T, bool) {
	var zero T
	if len(f.Path) == 0 || p == nil {
		return zero, false
	}
	obj := p
	for _, key := range f.Path[:len(f.Path)-1] {
		next, ok := obj.Object(key)
		if !ok {
			return zero, false
		}
		obj = next
	}
	return f.get(obj, f.Path[len(f.Path)-1])
}

// Lookup reads the field as an Option.
func (f Field[T]) Lookup(p Payload) stream.Option[T] {
	if v, ok := f.Get(p); ok {
		return stream.Some(v)
	}
	return stream.None[T]()
}

type number interface {
	~int | ~float64
}

// Below accepts values strictly lower than sentinel.
func Below[T number](sentinel T) func(T) bool {
	return func(v T) bool { return v < sentinel }
}

// Positive accepts values strictly greater than zero.
func Positive[T number](v T) bool { return v > 0 }

// NotEmpty accepts non-empty strings.
func NotEmpty(s string) bool { return s != "" }

// Any accepts every present value.
func Any[T any](T) bool { return true }

// Extract emits the field value of every payload for which the field is
// present, well typed and valid. Everything else is dropped silently.
func Extract[T any](payloads stream.Stream[Payload], f Field[T], valid func(T) bool) stream.Stream[T] {
	return stream.FilterMap(payloads, func(p Payload) (T, bool) {
		v, ok := f.Get(p)
		if !ok || !valid(v) {
			var zero T
			return zero, false
		}
		return v, true
	})
}

// Optional emits one Option per payload, None when the field is missing or
// malformed. It is used where absence itself carries meaning.
func Optional[T any](payloads stream.Stream[Payload], f Field[T]) stream.Stream[stream.Option[T]] {
	return stream.Map(payloads, f.Lookup)
}
