// AngelaMos | 2026
// service.go

package company

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/jobboard/internal/core"
	"github.com/carterperez-dev/jobboard/internal/identity"
	"github.com/carterperez-dev/jobboard/internal/lifecycle"
	"github.com/carterperez-dev/jobboard/internal/metrics"
	"github.com/carterperez-dev/jobboard/internal/policy"
)

type Service struct {
	repo    Repository
	tx      core.Transactor
	metrics *metrics.Metrics
}

func NewService(repo Repository, tx core.Transactor, m *metrics.Metrics) *Service {
	return &Service{repo: repo, tx: tx, metrics: m}
}

// Create registers the caller's company. A COMPANY user owns at most one
// live company.
func (s *Service) Create(
	ctx context.Context,
	p identity.Principal,
	req CreateCompanyRequest,
) (_ *Company, err error) {
	ctx, span := core.StartSpan(ctx, "company.Create")
	defer func() { core.EndSpan(span, err) }()

	if err = policy.Enforce(s.metrics, "company.Create", policy.CanCreateCompany(p)); err != nil {
		return nil, err
	}

	c := &Company{
		UserID:         p.UserID,
		Name:           req.Name,
		Description:    req.Description,
		RegistrationID: req.RegistrationID,
		Website:        req.Website,
	}

	err = s.tx.InTx(ctx, func(tx core.DBTX) error {
		repo := s.repo.WithTx(tx)

		exists, err := repo.ExistsByOwner(ctx, p.UserID)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("create company: %w", lifecycle.ErrCompanyExists)
		}

		return lifecycle.Conflict(repo.Create(ctx, c), lifecycle.ErrCompanyExists)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncrementCreated("company")
	return c, nil
}

func (s *Service) Get(ctx context.Context, id int64) (_ *Company, err error) {
	ctx, span := core.StartSpan(ctx, "company.Get",
		attribute.Int64("company.id", id))
	defer func() { core.EndSpan(span, err) }()

	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(
	ctx context.Context,
	params ListCompaniesParams,
) (_ core.Page[Company], err error) {
	ctx, span := core.StartSpan(ctx, "company.List")
	defer func() { core.EndSpan(span, err) }()

	companies, total, err := s.repo.List(ctx, params)
	if err != nil {
		return core.Page[Company]{}, err
	}

	return core.NewPage(companies, total, params.Page), nil
}

func (s *Service) GetMine(
	ctx context.Context,
	p identity.Principal,
) (_ *Company, err error) {
	ctx, span := core.StartSpan(ctx, "company.GetMine")
	defer func() { core.EndSpan(span, err) }()

	if err = policy.Enforce(s.metrics, "company.GetMine", policy.CanViewOwnCompany(p)); err != nil {
		return nil, err
	}

	return s.repo.GetByOwner(ctx, p.UserID)
}

func (s *Service) Update(
	ctx context.Context,
	p identity.Principal,
	id int64,
	req UpdateCompanyRequest,
) (_ *Company, err error) {
	ctx, span := core.StartSpan(ctx, "company.Update",
		attribute.Int64("company.id", id))
	defer func() { core.EndSpan(span, err) }()

	const op = "company.Update"
	if err = policy.Enforce(s.metrics, op, policy.Authenticated(p)); err != nil {
		return nil, err
	}

	var c *Company
	err = s.tx.InTx(ctx, func(tx core.DBTX) error {
		repo := s.repo.WithTx(tx)

		var err error
		if c, err = repo.GetByID(ctx, id); err != nil {
			return err
		}

		if err := policy.Enforce(s.metrics, op, policy.CanManageCompany(p, c)); err != nil {
			return err
		}

		req.Apply(c)
		return repo.Update(ctx, c)
	})
	if err != nil {
		return nil, err
	}

	return c, nil
}

// Delete soft-deletes the company together with its live jobs.
func (s *Service) Delete(
	ctx context.Context,
	p identity.Principal,
	id int64,
) (err error) {
	ctx, span := core.StartSpan(ctx, "company.Delete",
		attribute.Int64("company.id", id))
	defer func() { core.EndSpan(span, err) }()

	const op = "company.Delete"
	if err = policy.Enforce(s.metrics, op, policy.Authenticated(p)); err != nil {
		return err
	}

	var retired int64
	err = s.tx.InTx(ctx, func(tx core.DBTX) error {
		repo := s.repo.WithTx(tx)

		c, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := policy.Enforce(s.metrics, op, policy.CanManageCompany(p, c)); err != nil {
			return err
		}

		if err := repo.SoftDelete(ctx, c.ID); err != nil {
			return err
		}

		retired, err = repo.RetireJobs(ctx, c.ID)
		return err
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "company deleted",
		"company_id", id,
		"retired_jobs", retired,
	)
	return nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
