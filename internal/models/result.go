package models

// CallStatus classifies the outcome of a single platform call
type CallStatus string

const (
	CallOK             CallStatus = "ok"
	CallEmpty          CallStatus = "empty"
	CallTransportError CallStatus = "transport_error"
)

// CallResult is the outcome of one platform call. Value is only meaningful
// when Status is CallOK; Err carries the cause for the other statuses
type CallResult[T any] struct {
	Status CallStatus
	Value  T
	Err    error
}

// OK reports whether the call produced usable items
func (r CallResult[T]) OK() bool {
	return r.Status == CallOK
}

// Found wraps a successful call
func Found[T any](v T) CallResult[T] {
	return CallResult[T]{Status: CallOK, Value: v}
}

// NoItems marks a call whose response carried no items collection
func NoItems[T any](err error) CallResult[T] {
	return CallResult[T]{Status: CallEmpty, Err: err}
}

// TransportFailed marks a call that failed on the wire or in decoding
func TransportFailed[T any](err error) CallResult[T] {
	return CallResult[T]{Status: CallTransportError, Err: err}
}

// OutcomeKind identifies the terminal state of a run
type OutcomeKind string

const (
	OutcomeSuccess OutcomeKind = "success"
	OutcomeEmpty   OutcomeKind = "empty"
	OutcomeFailure OutcomeKind = "error"
)

// RunOutcome is what a run hands to the presenter
type RunOutcome struct {
	Kind   OutcomeKind
	Report RunReport
	Reason string
	Err    error
}

// Success builds an outcome carrying a non-empty report
func Success(report RunReport) RunOutcome {
	return RunOutcome{Kind: OutcomeSuccess, Report: report}
}

// Empty builds the outcome of a run that accepted nothing
func Empty() RunOutcome {
	return RunOutcome{Kind: OutcomeEmpty}
}

// Failure builds the outcome of a run that could not complete
func Failure(reason string, err error) RunOutcome {
	return RunOutcome{Kind: OutcomeFailure, Reason: reason, Err: err}
}
