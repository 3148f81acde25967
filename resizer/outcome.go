package resizer

// Outcome is a tagged success/failure result. Exactly one variant is
// populated: a success carries a value of type T, a failure carries a
// human-readable message. Pipeline stages return Outcomes instead of
// errors so that a failure can never unwind past the caller unhandled.
type Outcome[T any] struct {
	ok    bool
	value T
	msg   string
}

// Success wraps a value in a success outcome.
func Success[T any](value T) Outcome[T] {
	return Outcome[T]{ok: true, value: value}
}

// Failure wraps a diagnostic message in a failure outcome.
func Failure[T any](msg string) Outcome[T] {
	return Outcome[T]{msg: msg}
}

// Ok reports whether the outcome is the success variant.
func (o Outcome[T]) Ok() bool {
	return o.ok
}

// Value returns the success payload. Only meaningful when Ok() is true.
func (o Outcome[T]) Value() T {
	return o.value
}

// Err returns the failure message, or the empty string on success.
func (o Outcome[T]) Err() string {
	return o.msg
}
