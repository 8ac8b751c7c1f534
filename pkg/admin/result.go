package admin

import "time"

// DebugInfo captures the request/response pair of a completed round trip.
type DebugInfo struct {
	Method     string
	URL        string
	Request    string
	Response   string
	StatusCode int
}

// Empty is the payload of operations that return no data on success.
type Empty struct{}

// Result is the terminal outcome of one operation: either a Success carrying
// Data, or a Faulted result carrying one or more errors. Use the Success,
// SuccessList and Faulted constructors; they keep Data and Errors mutually
// exclusive.
type Result[T any] struct {
	Data      T
	Errors    []*Error
	DebugInfo DebugInfo
	Timestamp time.Time

	hasResult bool
}

// HasResult returns true when the result carries data. List results only
// report data when the broker returned at least one element.
func (r Result[T]) HasResult() bool {
	return r.hasResult && len(r.Errors) == 0
}

// HasFaulted returns true when the operation failed.
func (r Result[T]) HasFaulted() bool {
	return len(r.Errors) > 0
}

// Err folds the result's errors into a single error, or nil on success.
func (r Result[T]) Err() error {
	switch len(r.Errors) {
	case 0:
		return nil
	case 1:
		return r.Errors[0]
	default:
		return &AggregateError{Errors: r.Errors}
	}
}

// Success builds a successful result carrying data.
func Success[T any](data T, debug DebugInfo) Result[T] {
	return Result[T]{
		Data:      data,
		DebugInfo: debug,
		Timestamp: time.Now().UTC(),
		hasResult: true,
	}
}

// SuccessEmpty builds a successful result for operations without a payload.
func SuccessEmpty(debug DebugInfo) Result[Empty] {
	return Result[Empty]{
		DebugInfo: debug,
		Timestamp: time.Now().UTC(),
	}
}

// SuccessList builds a successful list result. An empty list is still a
// success, it just reports no result.
func SuccessList[T any](data []T, debug DebugInfo) Result[[]T] {
	return Result[[]T]{
		Data:      data,
		DebugInfo: debug,
		Timestamp: time.Now().UTC(),
		hasResult: len(data) > 0,
	}
}

// Faulted builds a failed result. Duplicate errors are dropped; a call with
// no errors still produces a faulted result so HasFaulted stays truthful.
func Faulted[T any](debug DebugInfo, errs ...*Error) Result[T] {
	errs = dedupe(errs)
	if len(errs) == 0 {
		errs = []*Error{newError(ErrCodeInternal, "operation faulted without a reported error", nil, nil)}
	}
	return Result[T]{
		Errors:    errs,
		DebugInfo: debug,
		Timestamp: time.Now().UTC(),
	}
}

// AggregateError joins several result errors.
type AggregateError struct {
	Errors []*Error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := ""
	for i, err := range e.Errors {
		if i > 0 {
			msg += "; "
		}
		msg += err.Error()
	}
	return msg
}

// Unwrap exposes every joined error to errors.Is / errors.As.
func (e *AggregateError) Unwrap() []error {
	out := make([]error, 0, len(e.Errors))
	for _, err := range e.Errors {
		out = append(out, err)
	}
	return out
}

func dedupe(errs []*Error) []*Error {
	if len(errs) == 0 {
		return nil
	}
	type key struct {
		code    ErrorCode
		message string
	}
	seen := make(map[key]struct{}, len(errs))
	out := make([]*Error, 0, len(errs))
	for _, err := range errs {
		if err == nil {
			continue
		}
		k := key{err.Code, err.Message}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, err)
	}
	return out
}
