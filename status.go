package dcserial

import (
	"errors"
	"fmt"
)

// Status is the outcome code shared with the dive computer protocol stack.
// Negative values are failures; a byte count is never negative, so the sign
// alone tells a count from a failure.
type Status int

const (
	StatusSuccess     Status = 0
	StatusDone        Status = 1
	StatusUnsupported Status = -1
	StatusInvalidArgs Status = -2
	StatusNoMemory    Status = -3
	StatusNoDevice    Status = -4
	StatusNoAccess    Status = -5
	StatusIO          Status = -6
	StatusTimeout     Status = -7
	StatusProtocol    Status = -8
	StatusDataFormat  Status = -9
	StatusCancelled   Status = -10
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusDone:
		return "done"
	case StatusUnsupported:
		return "unsupported operation"
	case StatusInvalidArgs:
		return "invalid arguments"
	case StatusNoMemory:
		return "out of memory"
	case StatusNoDevice:
		return "no device found"
	case StatusNoAccess:
		return "access denied"
	case StatusIO:
		return "input/output error"
	case StatusTimeout:
		return "timeout"
	case StatusProtocol:
		return "protocol error"
	case StatusDataFormat:
		return "data format error"
	case StatusCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Error makes a Status usable as an error value and as an errors.Is target.
func (s Status) Error() string {
	return s.String()
}

// OpError is returned by every fallible Port operation. Status is the code
// reported to the decoder, Err the underlying cause.
type OpError struct {
	Op     string
	Status Status
	Err    error
}

func (e *OpError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("dcserial: %s: %s", e.Op, e.Status)
	}
	return fmt.Sprintf("dcserial: %s: %s: %v", e.Op, e.Status, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// Is matches a bare Status target, so errors.Is(err, StatusIO) works.
func (e *OpError) Is(target error) bool {
	s, ok := target.(Status)
	return ok && s == e.Status
}

// ioError maps any hardware failure to StatusIO regardless of cause.
func ioError(op string, err error) error {
	return &OpError{Op: op, Status: StatusIO, Err: err}
}

// StatusOf returns the status code carried by err. Errors that carry no code
// are hardware failures and map to StatusIO.
func StatusOf(err error) Status {
	if err == nil {
		return StatusSuccess
	}
	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr.Status
	}
	var s Status
	if errors.As(err, &s) {
		return s
	}
	return StatusIO
}

// Code folds a Go style (count, error) result into the decoder convention:
// the count when err is nil, otherwise the negative status.
func Code(n int, err error) int {
	if err != nil {
		return int(StatusOf(err))
	}
	return n
}
