// AngelaMos | 2026
// service.go

package application

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/jobboard/internal/core"
	"github.com/carterperez-dev/jobboard/internal/identity"
	"github.com/carterperez-dev/jobboard/internal/job"
	"github.com/carterperez-dev/jobboard/internal/lifecycle"
	"github.com/carterperez-dev/jobboard/internal/metrics"
	"github.com/carterperez-dev/jobboard/internal/policy"
)

type Service struct {
	repo    Repository
	jobs    job.Repository
	tx      core.Transactor
	machine lifecycle.Machine
	metrics *metrics.Metrics
}

func NewService(
	repo Repository,
	jobs job.Repository,
	tx core.Transactor,
	machine lifecycle.Machine,
	m *metrics.Metrics,
) *Service {
	return &Service{
		repo:    repo,
		jobs:    jobs,
		tx:      tx,
		machine: machine,
		metrics: m,
	}
}

// Create submits the caller's application to an OPEN job. The duplicate check
// and the insert share one transaction; the partial unique index backs it up.
func (s *Service) Create(
	ctx context.Context,
	p identity.Principal,
	req CreateApplicationRequest,
) (_ *Application, err error) {
	ctx, span := core.StartSpan(ctx, "application.Create",
		attribute.Int64("job.id", req.JobID))
	defer func() { core.EndSpan(span, err) }()

	if err = policy.Enforce(s.metrics, "application.Create", policy.CanApplyToJob(p)); err != nil {
		return nil, err
	}

	var app *Application
	err = s.tx.InTx(ctx, func(tx core.DBTX) error {
		repo := s.repo.WithTx(tx)

		j, err := s.jobs.WithTx(tx).GetByID(ctx, req.JobID)
		if err != nil {
			return err
		}

		if err := lifecycle.CheckApply(j.Status); err != nil {
			return err
		}

		exists, err := repo.ExistsLive(ctx, p.UserID, j.ID)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("create application: %w", lifecycle.ErrAlreadyApplied)
		}

		a := &Application{
			CandidateID: p.UserID,
			JobID:       j.ID,
			CoverLetter: req.CoverLetter,
			Status:      lifecycle.InitialApplicationStatus,
		}
		if err := lifecycle.Conflict(repo.Create(ctx, a), lifecycle.ErrAlreadyApplied); err != nil {
			return err
		}

		app, err = repo.GetByID(ctx, a.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncrementCreated("application")
	return app, nil
}

func (s *Service) Get(
	ctx context.Context,
	p identity.Principal,
	id int64,
) (_ *Application, err error) {
	ctx, span := core.StartSpan(ctx, "application.Get",
		attribute.Int64("application.id", id))
	defer func() { core.EndSpan(span, err) }()

	const op = "application.Get"
	if err = policy.Enforce(s.metrics, op, policy.Authenticated(p)); err != nil {
		return nil, err
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = policy.Enforce(s.metrics, op, policy.CanViewApplication(p, a)); err != nil {
		return nil, err
	}

	return a, nil
}

// ListMine lists the caller's live applications.
func (s *Service) ListMine(
	ctx context.Context,
	p identity.Principal,
	page core.PageRequest,
) (_ core.Page[Application], err error) {
	ctx, span := core.StartSpan(ctx, "application.ListMine")
	defer func() { core.EndSpan(span, err) }()

	if err = policy.Enforce(s.metrics, "application.ListMine", policy.CanListOwnApplications(p)); err != nil {
		return core.Page[Application]{}, err
	}

	apps, total, err := s.repo.ListByCandidate(ctx, p.UserID, page)
	if err != nil {
		return core.Page[Application]{}, err
	}

	return core.NewPage(apps, total, page), nil
}

// ListByJob lists the applications to a job owned by the caller's company.
// The role is checked before the job is loaded.
func (s *Service) ListByJob(
	ctx context.Context,
	p identity.Principal,
	params ListByJobParams,
) (_ core.Page[Application], err error) {
	ctx, span := core.StartSpan(ctx, "application.ListByJob",
		attribute.Int64("job.id", params.JobID))
	defer func() { core.EndSpan(span, err) }()

	const op = "application.ListByJob"
	if err = policy.Enforce(s.metrics, op, policy.RequireRole(p, identity.RoleCompany)); err != nil {
		return core.Page[Application]{}, err
	}

	j, err := s.jobs.GetByID(ctx, params.JobID)
	if err != nil {
		return core.Page[Application]{}, err
	}

	if err = policy.Enforce(s.metrics, op, policy.CanListJobApplications(p, j)); err != nil {
		return core.Page[Application]{}, err
	}

	apps, total, err := s.repo.ListByJob(ctx, params)
	if err != nil {
		return core.Page[Application]{}, err
	}

	return core.NewPage(apps, total, params.Page), nil
}

func (s *Service) UpdateStatus(
	ctx context.Context,
	p identity.Principal,
	id int64,
	req UpdateStatusRequest,
) (_ *Application, err error) {
	ctx, span := core.StartSpan(ctx, "application.UpdateStatus",
		attribute.Int64("application.id", id),
		attribute.String("application.status", req.Status))
	defer func() { core.EndSpan(span, err) }()

	const op = "application.UpdateStatus"
	if err = policy.Enforce(s.metrics, op, policy.RequireRole(p, identity.RoleCompany)); err != nil {
		return nil, err
	}

	to, err := lifecycle.ParseApplicationStatus(req.Status)
	if err != nil {
		return nil, err
	}

	var a *Application
	err = s.tx.InTx(ctx, func(tx core.DBTX) error {
		repo := s.repo.WithTx(tx)

		var err error
		if a, err = repo.GetByID(ctx, id); err != nil {
			return err
		}

		if err := policy.Enforce(s.metrics, op, policy.CanUpdateApplicationStatus(p, a)); err != nil {
			return err
		}

		if err := s.machine.TransitionApplication(a.Status, to); err != nil {
			return err
		}

		a.Status = to
		return repo.UpdateStatus(ctx, a)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncrementStatusChange("application", string(to))
	return a, nil
}

func (s *Service) Delete(
	ctx context.Context,
	p identity.Principal,
	id int64,
) (err error) {
	ctx, span := core.StartSpan(ctx, "application.Delete",
		attribute.Int64("application.id", id))
	defer func() { core.EndSpan(span, err) }()

	const op = "application.Delete"
	if err = policy.Enforce(s.metrics, op, policy.Authenticated(p)); err != nil {
		return err
	}

	return s.tx.InTx(ctx, func(tx core.DBTX) error {
		repo := s.repo.WithTx(tx)

		a, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := policy.Enforce(s.metrics, op, policy.CanDeleteApplication(p, a)); err != nil {
			return err
		}

		return repo.SoftDelete(ctx, a.ID)
	})
}

func (s *Service) CountByStatus(
	ctx context.Context,
) (map[lifecycle.ApplicationStatus]int, error) {
	return s.repo.CountByStatus(ctx)
}
