// AngelaMos | 2026
// service.go

package job

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/jobboard/internal/company"
	"github.com/carterperez-dev/jobboard/internal/core"
	"github.com/carterperez-dev/jobboard/internal/identity"
	"github.com/carterperez-dev/jobboard/internal/lifecycle"
	"github.com/carterperez-dev/jobboard/internal/metrics"
	"github.com/carterperez-dev/jobboard/internal/policy"
)

type Service struct {
	repo      Repository
	companies company.Repository
	tx        core.Transactor
	machine   lifecycle.Machine
	metrics   *metrics.Metrics
}

func NewService(
	repo Repository,
	companies company.Repository,
	tx core.Transactor,
	machine lifecycle.Machine,
	m *metrics.Metrics,
) *Service {
	return &Service{
		repo:      repo,
		companies: companies,
		tx:        tx,
		machine:   machine,
		metrics:   m,
	}
}

// ownCompany returns the caller's live company as a policy resource, or nil
// when there is none.
func ownCompany(
	ctx context.Context,
	repo company.Repository,
	userID int64,
) (*company.Company, policy.CompanyResource, error) {
	c, err := repo.GetByOwner(ctx, userID)
	if errors.Is(err, core.ErrNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return c, c, nil
}

func (s *Service) Create(
	ctx context.Context,
	p identity.Principal,
	req CreateJobRequest,
) (_ *Job, err error) {
	ctx, span := core.StartSpan(ctx, "job.Create")
	defer func() { core.EndSpan(span, err) }()

	const op = "job.Create"
	if err = policy.Enforce(s.metrics, op, policy.RequireRole(p, identity.RoleCompany)); err != nil {
		return nil, err
	}

	j := &Job{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Status:      lifecycle.InitialJobStatus,
	}
	if req.SalaryMin != nil {
		j.SalaryMin = decimal.NewNullDecimal(*req.SalaryMin)
	}
	if req.SalaryMax != nil {
		j.SalaryMax = decimal.NewNullDecimal(*req.SalaryMax)
	}

	err = s.tx.InTx(ctx, func(tx core.DBTX) error {
		c, owner, err := ownCompany(ctx, s.companies.WithTx(tx), p.UserID)
		if err != nil {
			return err
		}

		if err := policy.Enforce(s.metrics, op, policy.CanCreateJob(p, owner)); err != nil {
			return err
		}

		j.CompanyID = c.ID
		j.CompanyName = c.Name
		j.CompanyWebsite = c.Website
		j.CompanyOwnerID = c.UserID

		return s.repo.WithTx(tx).Create(ctx, j)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncrementCreated("job")
	return j, nil
}

func (s *Service) Get(ctx context.Context, id int64) (_ *Job, err error) {
	ctx, span := core.StartSpan(ctx, "job.Get",
		attribute.Int64("job.id", id))
	defer func() { core.EndSpan(span, err) }()

	return s.repo.GetByID(ctx, id)
}

// Search lists live jobs of live companies. Filters and pagination are passed
// to the repository as given.
func (s *Service) Search(
	ctx context.Context,
	params SearchParams,
) (_ core.Page[Job], err error) {
	ctx, span := core.StartSpan(ctx, "job.Search")
	defer func() { core.EndSpan(span, err) }()

	jobs, total, err := s.repo.Search(ctx, params)
	if err != nil {
		return core.Page[Job]{}, err
	}

	return core.NewPage(jobs, total, params.Page), nil
}

// ListMine lists the jobs of the caller's company, optionally filtered by
// status.
func (s *Service) ListMine(
	ctx context.Context,
	p identity.Principal,
	status lifecycle.JobStatus,
	page core.PageRequest,
) (_ core.Page[Job], err error) {
	ctx, span := core.StartSpan(ctx, "job.ListMine")
	defer func() { core.EndSpan(span, err) }()

	const op = "job.ListMine"
	if err = policy.Enforce(s.metrics, op, policy.RequireRole(p, identity.RoleCompany)); err != nil {
		return core.Page[Job]{}, err
	}

	c, owner, err := ownCompany(ctx, s.companies, p.UserID)
	if err != nil {
		return core.Page[Job]{}, err
	}
	if err = policy.Enforce(s.metrics, op, policy.CanListOwnJobs(p, owner)); err != nil {
		return core.Page[Job]{}, err
	}

	return s.Search(ctx, SearchParams{
		Page:      page,
		CompanyID: c.ID,
		Status:    status,
	})
}

func (s *Service) Update(
	ctx context.Context,
	p identity.Principal,
	id int64,
	req UpdateJobRequest,
) (_ *Job, err error) {
	ctx, span := core.StartSpan(ctx, "job.Update",
		attribute.Int64("job.id", id))
	defer func() { core.EndSpan(span, err) }()

	const op = "job.Update"
	if err = policy.Enforce(s.metrics, op, policy.Authenticated(p)); err != nil {
		return nil, err
	}

	var (
		j       *Job
		changed bool
	)
	err = s.tx.InTx(ctx, func(tx core.DBTX) error {
		repo := s.repo.WithTx(tx)

		var err error
		if j, err = repo.GetByID(ctx, id); err != nil {
			return err
		}

		if err := policy.Enforce(s.metrics, op, policy.CanManageJob(p, j)); err != nil {
			return err
		}

		if req.Status != nil {
			to, err := lifecycle.ParseJobStatus(*req.Status)
			if err != nil {
				return err
			}
			if err := s.machine.TransitionJob(j.Status, to); err != nil {
				return err
			}
			changed = to != j.Status
			j.Status = to
		}

		req.apply(j)
		return repo.Update(ctx, j)
	})
	if err != nil {
		return nil, err
	}

	if changed {
		s.metrics.IncrementStatusChange("job", string(j.Status))
	}
	return j, nil
}

func (s *Service) Delete(
	ctx context.Context,
	p identity.Principal,
	id int64,
) (err error) {
	ctx, span := core.StartSpan(ctx, "job.Delete",
		attribute.Int64("job.id", id))
	defer func() { core.EndSpan(span, err) }()

	const op = "job.Delete"
	if err = policy.Enforce(s.metrics, op, policy.Authenticated(p)); err != nil {
		return err
	}

	return s.tx.InTx(ctx, func(tx core.DBTX) error {
		repo := s.repo.WithTx(tx)

		j, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := policy.Enforce(s.metrics, op, policy.CanManageJob(p, j)); err != nil {
			return err
		}

		return repo.SoftDelete(ctx, j.ID)
	})
}

func (s *Service) CountByStatus(ctx context.Context) (map[lifecycle.JobStatus]int, error) {
	return s.repo.CountByStatus(ctx)
}
