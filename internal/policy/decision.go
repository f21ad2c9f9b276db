// AngelaMos | 2026
// decision.go

package policy

import (
	"fmt"

	"github.com/carterperez-dev/jobboard/internal/core"
)

// Reason is the stable code attached to a denial.
type Reason string

const (
	ReasonUnauthenticated Reason = "UNAUTHENTICATED"
	ReasonRoleNotAllowed  Reason = "ROLE_NOT_ALLOWED"
	ReasonCompanyRequired Reason = "COMPANY_REQUIRED"
	ReasonNotOwner        Reason = "NOT_OWNER"
)

type Decision struct {
	Allowed bool
	Reason  Reason
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason Reason) Decision {
	return Decision{Reason: reason}
}

// Err returns nil for an allowed decision and a *DenialError otherwise.
func (d Decision) Err(op string) error {
	if d.Allowed {
		return nil
	}
	return &DenialError{Op: op, Reason: d.Reason}
}

type DenialError struct {
	Op     string
	Reason Reason
}

func (e *DenialError) Error() string {
	return fmt.Sprintf("%s: denied: %s", e.Op, e.Reason)
}

func (e *DenialError) Unwrap() error {
	if e.Reason == ReasonUnauthenticated {
		return core.ErrUnauthorized
	}
	return core.ErrForbidden
}

func (e *DenialError) Code() string {
	return string(e.Reason)
}

// DenialRecorder counts denials. *metrics.Metrics satisfies it.
type DenialRecorder interface {
	IncrementDenial(operation, reason string)
}

// Enforce returns d.Err(op) and records the denial, if any, on rec.
func Enforce(rec DenialRecorder, op string, d Decision) error {
	err := d.Err(op)
	if err != nil && rec != nil {
		rec.IncrementDenial(op, string(d.Reason))
	}
	return err
}
