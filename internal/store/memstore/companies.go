// AngelaMos | 2026
// companies.go

package memstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/carterperez-dev/jobboard/internal/company"
	"github.com/carterperez-dev/jobboard/internal/core"
)

var companySorts = sortKeys[company.Company]{
	"name":       func(a, b *company.Company) int { return strings.Compare(a.Name, b.Name) },
	"created_at": func(a, b *company.Company) int { return byTime(a.CreatedAt, b.CreatedAt) },
}

type companyRepo struct {
	s *Store
}

func (r *companyRepo) WithTx(core.DBTX) company.Repository {
	return r
}

func (r *companyRepo) Create(_ context.Context, c *company.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.companies {
		if existing.IsLive() && existing.UserID == c.UserID {
			return fmt.Errorf("create company: %w", core.ErrDuplicateKey)
		}
	}

	now := r.s.tick()
	c.ID = r.s.nextID()
	c.CreatedAt = now
	c.UpdatedAt = now
	c.DeletedAt = nil

	r.s.companies[c.ID] = *c
	return nil
}

func (r *companyRepo) GetByID(_ context.Context, id int64) (*company.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.companies[id]
	if !ok || !c.IsLive() {
		return nil, fmt.Errorf("get company: %w", core.ErrNotFound)
	}
	return &c, nil
}

func (r *companyRepo) GetByOwner(_ context.Context, userID int64) (*company.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, c := range r.s.companies {
		if c.IsLive() && c.UserID == userID {
			return &c, nil
		}
	}
	return nil, fmt.Errorf("get company by owner: %w", core.ErrNotFound)
}

func (r *companyRepo) ExistsByOwner(ctx context.Context, userID int64) (bool, error) {
	_, err := r.GetByOwner(ctx, userID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, core.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (r *companyRepo) Update(_ context.Context, c *company.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.companies[c.ID]
	if !ok || !stored.IsLive() {
		return fmt.Errorf("update company: %w", core.ErrNotFound)
	}

	stored.Name = c.Name
	stored.Description = c.Description
	stored.RegistrationID = c.RegistrationID
	stored.Website = c.Website
	stored.UpdatedAt = r.s.tick()
	c.UpdatedAt = stored.UpdatedAt

	r.s.companies[c.ID] = stored
	return nil
}

func (r *companyRepo) SoftDelete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.companies[id]
	if !ok || !c.IsLive() {
		return fmt.Errorf("soft delete companies: %w", core.ErrNotFound)
	}

	r.s.retire(&c.Timestamps)
	r.s.companies[id] = c
	return nil
}

func (r *companyRepo) RetireJobs(_ context.Context, companyID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for id, j := range r.s.jobs {
		if j.CompanyID != companyID || !j.IsLive() {
			continue
		}
		r.s.retire(&j.Timestamps)
		r.s.jobs[id] = j
		n++
	}
	return n, nil
}

func (r *companyRepo) List(
	_ context.Context,
	params company.ListCompaniesParams,
) ([]company.Company, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []company.Company
	for _, c := range r.s.companies {
		if !c.IsLive() {
			continue
		}
		if params.Name != "" && !containsFold(c.Name, params.Name) {
			continue
		}
		out = append(out, c)
	}

	items, total := paginate(out, params.Page, companySorts, "created_at",
		func(c *company.Company) int64 { return c.ID })
	return items, total, nil
}

func (r *companyRepo) Count(context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int
	for _, c := range r.s.companies {
		if c.IsLive() {
			n++
		}
	}
	return n, nil
}
