package orderedsync

import (
	"errors"
	"fmt"
)

// ErrOutOfOrder is returned by a Checked sequence whose keys decrease.
var ErrOutOfOrder = errors.New("sequence is not ordered by key")

// Side identifies which input of a reconciliation an error came from.
type Side string

const (
	SideSource Side = "source"
	SideTarget Side = "target"
)

// Op identifies the step of a reconciliation that failed.
type Op string

const (
	OpFetch  Op = "fetch"
	OpAdd    Op = "add"
	OpRemove Op = "remove"
)

// SideError wraps an error raised while fetching from a sequence or while
// applying an event to a sink.
type SideError struct {
	Side Side
	Op   Op
	Err  error
}

func (e *SideError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Side, e.Op, e.Err)
}

func (e *SideError) Unwrap() error {
	return e.Err
}
