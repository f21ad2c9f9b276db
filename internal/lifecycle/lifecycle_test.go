// AngelaMos | 2026
// lifecycle_test.go

package lifecycle

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/jobboard/internal/core"
)

var (
	jobStatuses = []JobStatus{JobOpen, JobClosed, JobPaused}
	appStatuses = []ApplicationStatus{
		ApplicationPending,
		ApplicationAccepted,
		ApplicationRejected,
	}
)

func TestInitialStatuses(t *testing.T) {
	assert.Equal(t, JobOpen, InitialJobStatus)
	assert.Equal(t, ApplicationPending, InitialApplicationStatus)
}

func TestCheckApply(t *testing.T) {
	require.NoError(t, CheckApply(JobOpen))

	for _, st := range []JobStatus{JobClosed, JobPaused} {
		err := CheckApply(st)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrJobNotOpen)
		assert.ErrorIs(t, err, core.ErrInvalidState)
		assert.Equal(t, "JOB_NOT_OPEN", core.ToAppError(err).Code)
	}
}

func TestPermissiveAllowsEveryTransition(t *testing.T) {
	m := NewMachine(Permissive)

	for _, from := range jobStatuses {
		for _, to := range jobStatuses {
			assert.NoError(t, m.TransitionJob(from, to), "%s -> %s", from, to)
		}
	}
	for _, from := range appStatuses {
		for _, to := range appStatuses {
			assert.NoError(t, m.TransitionApplication(from, to), "%s -> %s", from, to)
		}
	}
}

func TestStrictTransitions(t *testing.T) {
	m := NewMachine(ModeFor(true))
	assert.Equal(t, Strict, m.Mode())

	assert.NoError(t, m.TransitionJob(JobOpen, JobPaused))
	assert.NoError(t, m.TransitionJob(JobPaused, JobOpen))
	assert.NoError(t, m.TransitionJob(JobOpen, JobClosed))
	assert.NoError(t, m.TransitionJob(JobClosed, JobClosed))

	err := m.TransitionJob(JobClosed, JobOpen)
	assert.ErrorIs(t, err, core.ErrInvalidState)
	assert.Equal(t, "INVALID_TRANSITION", core.ToAppError(err).Code)

	assert.NoError(t, m.TransitionApplication(ApplicationPending, ApplicationAccepted))
	assert.NoError(t, m.TransitionApplication(ApplicationRejected, ApplicationRejected))
	assert.ErrorIs(
		t,
		m.TransitionApplication(ApplicationAccepted, ApplicationRejected),
		core.ErrInvalidState,
	)
	assert.ErrorIs(
		t,
		m.TransitionApplication(ApplicationRejected, ApplicationPending),
		core.ErrInvalidState,
	)
}

func TestTransitionRejectsUnknownTarget(t *testing.T) {
	m := NewMachine(Permissive)
	assert.ErrorIs(t, m.TransitionJob(JobOpen, "ARCHIVED"), core.ErrInvalidInput)
	assert.ErrorIs(t, m.TransitionApplication(ApplicationPending, "WITHDRAWN"), core.ErrInvalidInput)
}

func TestParseStatus(t *testing.T) {
	js, err := ParseJobStatus("paused")
	require.NoError(t, err)
	assert.Equal(t, JobPaused, js)

	_, err = ParseJobStatus("draft")
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	as, err := ParseApplicationStatus("Accepted")
	require.NoError(t, err)
	assert.Equal(t, ApplicationAccepted, as)
}

func TestConflictMapsDuplicateKey(t *testing.T) {
	dup := fmt.Errorf("insert company: %w", core.ErrDuplicateKey)

	err := Conflict(dup, ErrCompanyExists)
	assert.ErrorIs(t, err, ErrCompanyExists)
	assert.ErrorIs(t, err, core.ErrConflict)
	assert.Equal(t, "COMPANY_EXISTS", core.ToAppError(err).Code)
	assert.Equal(t, 409, core.ToAppError(err).StatusCode)

	other := fmt.Errorf("boom")
	assert.Equal(t, other, Conflict(other, ErrCompanyExists))
}
