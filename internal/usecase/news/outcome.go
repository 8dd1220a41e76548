package news

import "catchup-news/internal/domain/entity"

// OutcomeKind identifies which variant an Outcome holds.
type OutcomeKind int

const (
	// OutcomeIndecisive is neither a success nor a failure. The caller is not notified.
	OutcomeIndecisive OutcomeKind = iota
	// OutcomeSuccess carries a decoded value.
	OutcomeSuccess
	// OutcomeFailure carries a transport error.
	OutcomeFailure
)

// String returns the lowercase variant name.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	default:
		return "indecisive"
	}
}

// Outcome is the result of mapping one transport callback.
// The zero value is indecisive.
type Outcome[T any] struct {
	kind   OutcomeKind
	value  T
	err    error
	reason string
}

// Result is a decisive outcome of a news search.
type Result = Outcome[entity.NewsRoot]

// Succeeded returns a success outcome holding v.
func Succeeded[T any](v T) Outcome[T] {
	return Outcome[T]{kind: OutcomeSuccess, value: v}
}

// Failed returns a failure outcome holding err.
func Failed[T any](err error) Outcome[T] {
	return Outcome[T]{kind: OutcomeFailure, err: err}
}

// Indecisive returns an indecisive outcome. reason is used for logging and metrics only.
func Indecisive[T any](reason string) Outcome[T] {
	return Outcome[T]{kind: OutcomeIndecisive, reason: reason}
}

// Kind reports the variant.
func (o Outcome[T]) Kind() OutcomeKind { return o.kind }

// IsDecisive reports whether o is a success or a failure.
func (o Outcome[T]) IsDecisive() bool { return o.kind != OutcomeIndecisive }

// Value returns the decoded value. It is the zero value unless Kind is OutcomeSuccess.
func (o Outcome[T]) Value() T { return o.value }

// Err returns the transport error. It is nil unless Kind is OutcomeFailure.
func (o Outcome[T]) Err() error { return o.err }

// Reason returns why an indecisive outcome was produced.
func (o Outcome[T]) Reason() string { return o.reason }

// Result unpacks o. Indecisive outcomes return ErrIndecisive.
func (o Outcome[T]) Result() (T, error) {
	switch o.kind {
	case OutcomeSuccess:
		return o.value, nil
	case OutcomeFailure:
		return o.value, o.err
	default:
		var zero T
		return zero, ErrIndecisive
	}
}
