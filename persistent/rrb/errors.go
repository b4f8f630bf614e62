package rrb

import (
	"errors"
	"fmt"
)

// Sentinel errors for recoverable, caller-visible failures. Wrap with
// fmt.Errorf("%w: ...") at the call site; never compare error strings.
var (
	// ErrIndexOutOfRange is returned by any index-taking operation called
	// with an index outside the valid range for that operation.
	ErrIndexOutOfRange = errors.New("rrb: index out of range")

	// ErrEmptySequence is returned by Pop/PopFirst on an empty sequence.
	ErrEmptySequence = errors.New("rrb: sequence is empty")

	// ErrInvalidBuilderCapacity is returned by NewBuilder when the
	// requested leaf capacity is not a positive multiple of B.
	ErrInvalidBuilderCapacity = errors.New("rrb: invalid builder capacity")

	// ErrIntegrityViolation is returned only by CheckIntegrity, describing
	// the first structural invariant found broken.
	ErrIntegrityViolation = errors.New("rrb: integrity violation")
)

func indexOutOfRange(i, count int) error {
	return fmt.Errorf("%w: index %d with count %d", ErrIndexOutOfRange, i, count)
}

func invalidBuilderCapacity(capacity int) error {
	return fmt.Errorf("%w: %d is not a positive multiple of %d", ErrInvalidBuilderCapacity, capacity, nodeWidth)
}

// assertThat panics with msg if that is false. Used for internal-logic
// conditions the library treats as contract violations — things that must
// never happen given a correct implementation, not recoverable user errors.
func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("rrb: "+msg, msgargs...)
		panic(msg)
	}
}
