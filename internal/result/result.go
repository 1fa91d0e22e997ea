// Package result provides Outcome, a success/failure value returned by
// operations that report expected failures without raising them.
package result

// Outcome is either a success carrying a value or a failure carrying a
// message and an ordered list of sub-errors. The zero Outcome is a failure
// with an empty message.
type Outcome[T any] struct {
	value   T
	message string
	errors  []string
	success bool
}

// Success creates a successful outcome.
func Success[T any](value T) Outcome[T] {
	return Outcome[T]{value: value, success: true}
}

// Failure creates a failed outcome. Without sub-errors Errors reports nil.
func Failure[T any](message string, errs ...string) Outcome[T] {
	return Outcome[T]{message: message, errors: clone(errs)}
}

func (o Outcome[T]) IsSuccess() bool { return o.success }

func (o Outcome[T]) IsFailure() bool { return !o.success }

// Value returns the success value and true, or the zero value and false for
// a failure.
func (o Outcome[T]) Value() (T, bool) {
	if !o.success {
		var zero T
		return zero, false
	}
	return o.value, true
}

// Message returns the failure message; it is empty for a success.
func (o Outcome[T]) Message() string { return o.message }

// Errors returns a copy of the failure sub-errors, or nil when there are
// none.
func (o Outcome[T]) Errors() []string {
	if o.success {
		return nil
	}
	return clone(o.errors)
}

func clone(errs []string) []string {
	if len(errs) == 0 {
		return nil
	}
	cp := make([]string, len(errs))
	copy(cp, errs)
	return cp
}

// Match calls onSuccess or onFailure depending on the variant.
func Match[T, U any](o Outcome[T], onSuccess func(T) U, onFailure func(message string, errs []string) U) U {
	if o.success {
		return onSuccess(o.value)
	}
	return onFailure(o.message, o.Errors())
}

// Map transforms a success value and passes failures through unchanged.
func Map[T, U any](o Outcome[T], fn func(T) U) Outcome[U] {
	if !o.success {
		return Outcome[U]{message: o.message, errors: o.errors}
	}
	return Success(fn(o.value))
}
