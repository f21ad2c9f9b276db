// AngelaMos | 2026
// rules.go

package lifecycle

import (
	"errors"
	"fmt"

	"github.com/carterperez-dev/jobboard/internal/core"
)

var (
	ErrCompanyExists = core.NewDomainError(
		core.ErrConflict,
		"COMPANY_EXISTS",
		"user already owns a company",
	)
	ErrAlreadyApplied = core.NewDomainError(
		core.ErrConflict,
		"ALREADY_APPLIED",
		"candidate already applied to this job",
	)
	ErrJobNotOpen = core.NewDomainError(
		core.ErrInvalidState,
		"JOB_NOT_OPEN",
		"job is not accepting applications",
	)
)

// CheckApply fails with ErrJobNotOpen unless status accepts applications.
func CheckApply(status JobStatus) error {
	if !status.AcceptsApplications() {
		return fmt.Errorf("apply to %s job: %w", status, ErrJobNotOpen)
	}
	return nil
}

// Conflict maps a store-level unique violation to the domain conflict so a
// lost race reports the same error as the in-transaction check.
func Conflict(err, conflict error) error {
	if errors.Is(err, core.ErrDuplicateKey) {
		return fmt.Errorf("%w: %w", conflict, err)
	}
	return err
}

type TransitionMode int

const (
	// Permissive allows any status to be set from any other.
	Permissive TransitionMode = iota
	// Strict forbids reopening CLOSED jobs and leaving ACCEPTED or REJECTED.
	Strict
)

func (m TransitionMode) String() string {
	if m == Strict {
		return "strict"
	}
	return "permissive"
}

type Machine struct {
	mode TransitionMode
}

func NewMachine(mode TransitionMode) Machine {
	return Machine{mode: mode}
}

func ModeFor(strict bool) TransitionMode {
	if strict {
		return Strict
	}
	return Permissive
}

func (m Machine) Mode() TransitionMode {
	return m.mode
}

func (m Machine) TransitionJob(from, to JobStatus) error {
	if !to.Valid() {
		return fmt.Errorf("job status %q: %w", to, core.ErrInvalidInput)
	}
	if m.mode == Strict && from == JobClosed && to != JobClosed {
		return invalidTransition("job", string(from), string(to))
	}
	return nil
}

func (m Machine) TransitionApplication(from, to ApplicationStatus) error {
	if !to.Valid() {
		return fmt.Errorf("application status %q: %w", to, core.ErrInvalidInput)
	}
	if m.mode == Strict && from.IsFinal() && from != to {
		return invalidTransition("application", string(from), string(to))
	}
	return nil
}

func invalidTransition(entity, from, to string) error {
	return core.NewDomainError(
		core.ErrInvalidState,
		"INVALID_TRANSITION",
		fmt.Sprintf("%s cannot move from %s to %s", entity, from, to),
	)
}
