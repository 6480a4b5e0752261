// Package result provides the outcome type returned by every fallible
// repository, gateway and use-case operation.
//
// A Result is either a success carrying a value or a failure carrying a
// *Failure. Expected business conditions (not found, conflict, forbidden)
// travel as failures; panics are reserved for programming errors.
//
//	res := repo.FindByID(ctx, id)
//	if res.IsFailure() {
//		return result.Forward[Other](res)
//	}
//	book := res.Value()
package result

// Result holds exactly one of a value or a failure.
type Result[T any] struct {
	value   T
	failure *Failure
	ok      bool
}

// Success wraps a value in a successful result.
func Success[T any](value T) Result[T] {
	return Result[T]{value: value, ok: true}
}

// Fail wraps a failure. A nil failure is a programming error.
func Fail[T any](failure *Failure) Result[T] {
	if failure == nil {
		panic("result: Fail called with nil failure")
	}
	return Result[T]{failure: failure}
}

// IsSuccess reports whether the result carries a value.
func (r Result[T]) IsSuccess() bool {
	return r.ok
}

// IsFailure reports whether the result carries a failure.
func (r Result[T]) IsFailure() bool {
	return !r.ok
}

// Value returns the success value. It panics when called on a failure.
func (r Result[T]) Value() T {
	if !r.ok {
		panic("result: Value called on failure " + r.failure.Code())
	}
	return r.value
}

// Failure returns the failure. It panics when called on a success.
func (r Result[T]) Failure() *Failure {
	if r.ok {
		panic("result: Failure called on success")
	}
	return r.failure
}

// Forward re-types a failed result so it can be returned from an operation
// with a different success type. The failure itself is passed through untouched.
func Forward[U, T any](r Result[T]) Result[U] {
	return Fail[U](r.Failure())
}

// Map transforms a successful value and passes failures through.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if r.IsFailure() {
		return Fail[U](r.failure)
	}
	return Success(fn(r.value))
}

// FlatMap chains a result-returning operation onto a successful result.
func FlatMap[T, U any](r Result[T], fn func(T) Result[U]) Result[U] {
	if r.IsFailure() {
		return Fail[U](r.failure)
	}
	return fn(r.value)
}
