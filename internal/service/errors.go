package service

import (
	"errors"
	"fmt"
)

// ErrLookupFailure matches every *LookupFailure with errors.Is
var ErrLookupFailure = errors.New("lookup failed")

// LookupFailure is the single error kind returned by CarService. Oracle,
// transport and validation problems all end up here; Err keeps the cause.
type LookupFailure struct {
	Kind  string // model.LookupKindSearch or model.LookupKindFeatured
	Query string
	Err   error
}

func (e *LookupFailure) Error() string {
	if e.Query != "" {
		return fmt.Sprintf("%s lookup for %q failed: %v", e.Kind, e.Query, e.Err)
	}
	return fmt.Sprintf("%s lookup failed: %v", e.Kind, e.Err)
}

func (e *LookupFailure) Unwrap() error {
	return e.Err
}

func (e *LookupFailure) Is(target error) bool {
	return target == ErrLookupFailure
}
