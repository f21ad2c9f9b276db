// AngelaMos | 2026
// status.go

package lifecycle

import (
	"fmt"
	"strings"

	"github.com/carterperez-dev/jobboard/internal/core"
)

type JobStatus string

const (
	JobOpen   JobStatus = "OPEN"
	JobClosed JobStatus = "CLOSED"
	JobPaused JobStatus = "PAUSED"
)

// InitialJobStatus is assigned to every new job.
const InitialJobStatus = JobOpen

func (s JobStatus) Valid() bool {
	switch s {
	case JobOpen, JobClosed, JobPaused:
		return true
	}
	return false
}

// AcceptsApplications is true only for OPEN.
func (s JobStatus) AcceptsApplications() bool {
	return s == JobOpen
}

func ParseJobStatus(s string) (JobStatus, error) {
	st := JobStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("parse job status %q: %w", s, core.ErrInvalidInput)
	}
	return st, nil
}

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationAccepted ApplicationStatus = "ACCEPTED"
	ApplicationRejected ApplicationStatus = "REJECTED"
)

const InitialApplicationStatus = ApplicationPending

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationAccepted, ApplicationRejected:
		return true
	}
	return false
}

// IsFinal reports a decided application. Only strict mode enforces it.
func (s ApplicationStatus) IsFinal() bool {
	return s == ApplicationAccepted || s == ApplicationRejected
}

func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	st := ApplicationStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf(
			"parse application status %q: %w",
			s,
			core.ErrInvalidInput,
		)
	}
	return st, nil
}
