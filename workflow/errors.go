// workflow/errors.go
package workflow

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by stores when the requested entity does not
// exist. Stores translate their driver-specific sentinel into this one.
var ErrNotFound = errors.New("entity not found")

// ForbiddenError means a role or ownership precondition failed.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string { return e.Reason }

// ValidationError means a mandatory field is missing or malformed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// InvalidTransitionError means the requested status change is not legal
// from the entity's current state.
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: transition %s → %s is not allowed", e.Entity, e.From, e.To)
}

// InfrastructureError wraps a collaborator I/O failure. It renders
// generically; the underlying cause stays available via Unwrap for logs.
type InfrastructureError struct {
	Op  string
	Err error
}

func (e *InfrastructureError) Error() string {
	return fmt.Sprintf("%s failed", e.Op)
}

func (e *InfrastructureError) Unwrap() error { return e.Err }

// IsBusinessError reports whether err is a business outcome (permission,
// validation or transition failure) rather than an infrastructure fault.
// Only business failures are audited by the orchestrator.
func IsBusinessError(err error) bool {
	var forbidden *ForbiddenError
	var validation *ValidationError
	var transition *InvalidTransitionError
	return errors.As(err, &forbidden) || errors.As(err, &validation) || errors.As(err, &transition)
}
