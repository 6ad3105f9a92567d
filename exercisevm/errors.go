// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package exercisevm

import (
	"errors"
	"fmt"
)

var (
	// ErrAborted marks an invocation that trapped. Every write it made is
	// discarded.
	ErrAborted = errors.New("invocation aborted")

	ErrNotAuthorized = fmt.Errorf("%w: authorization required", ErrAborted)
	ErrArchived      = fmt.Errorf("%w: entry archived", ErrAborted)
	ErrMissingEntry  = fmt.Errorf("%w: entry does not exist", ErrAborted)
	ErrInvalidTTL    = fmt.Errorf("%w: invalid ttl extension", ErrAborted)
	ErrInvalidTopic  = fmt.Errorf("%w: invalid event topic", ErrAborted)

	ErrUnknownContract  = errors.New("unknown contract")
	ErrContractNotFound = errors.New("contract not deployed")
	ErrUnknownMethod    = errors.New("unknown method")
	ErrInvalidArgs      = errors.New("invalid arguments")
	ErrClosed           = errors.New("host closed")

	errWrongVersion = errors.New("wrong codec version")
)

// ContractError is a tagged failure a contract returns to its caller. The
// code is stable and enumerable ahead of time.
type ContractError interface {
	error
	Code() uint32
}

type abortError struct {
	msg string
}

func (e *abortError) Error() string { return ErrAborted.Error() + ": " + e.msg }

func (e *abortError) Unwrap() error { return ErrAborted }

// Abortf returns an error that traps the running invocation.
func Abortf(format string, args ...interface{}) error {
	return &abortError{msg: fmt.Sprintf(format, args...)}
}

// IsAbort reports whether [err] trapped the invocation.
func IsAbort(err error) bool {
	return errors.Is(err, ErrAborted)
}

// ErrorCode returns the tag of a contract error, if [err] carries one.
func ErrorCode(err error) (uint32, bool) {
	var ce ContractError
	if errors.As(err, &ce) {
		return ce.Code(), true
	}
	return 0, false
}
