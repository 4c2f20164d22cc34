// Package builderr classifies per-item pipeline failures.
//
// Every failure in a batch run is wrapped in an ItemError carrying the stage,
// the item it concerns and one of the sentinel kinds below, so callers can
// use errors.Is to tell a missing template from a compiler crash.
package builderr

import (
	"errors"
	"fmt"
)

var (
	ErrMissingInput      = errors.New("missing input")
	ErrParse             = errors.New("parse error")
	ErrCompile           = errors.New("compile error")
	ErrMissingDependency = errors.New("missing dependency")
)

// ItemError is a failure of a single work item.
type ItemError struct {
	Stage string
	Item  string
	Kind  error
	Cause error
}

func New(stage, item string, kind, cause error) *ItemError {
	return &ItemError{Stage: stage, Item: item, Kind: kind, Cause: cause}
}

func (e *ItemError) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Stage, e.Item, e.Kind)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ItemError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// KindOf returns the sentinel kind of err, or nil when err carries none.
func KindOf(err error) error {
	for _, kind := range []error{ErrMissingInput, ErrParse, ErrCompile, ErrMissingDependency} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
