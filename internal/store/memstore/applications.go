// AngelaMos | 2026
// applications.go

package memstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/carterperez-dev/jobboard/internal/application"
	"github.com/carterperez-dev/jobboard/internal/core"
	"github.com/carterperez-dev/jobboard/internal/lifecycle"
)

var applicationSorts = sortKeys[application.Application]{
	"status": func(a, b *application.Application) int {
		return strings.Compare(string(a.Status), string(b.Status))
	},
	"created_at": func(a, b *application.Application) int {
		return byTime(a.CreatedAt, b.CreatedAt)
	},
	"updated_at": func(a, b *application.Application) int {
		return byTime(a.UpdatedAt, b.UpdatedAt)
	},
}

type applicationRepo struct {
	s *Store
}

func (r *applicationRepo) WithTx(core.DBTX) application.Repository {
	return r
}

func (r *applicationRepo) Create(_ context.Context, a *application.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.applications {
		if existing.IsLive() &&
			existing.CandidateID == a.CandidateID &&
			existing.JobID == a.JobID {
			return fmt.Errorf("create application: %w", core.ErrDuplicateKey)
		}
	}

	now := r.s.tick()
	a.ID = r.s.nextID()
	a.CreatedAt = now
	a.UpdatedAt = now
	a.DeletedAt = nil

	r.s.applications[a.ID] = *a
	return nil
}

func (r *applicationRepo) GetByID(
	_ context.Context,
	id int64,
) (*application.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.applications[id]
	if !ok || !a.IsLive() {
		return nil, fmt.Errorf("get application: %w", core.ErrNotFound)
	}

	a = r.s.joinApplication(a)
	return &a, nil
}

func (r *applicationRepo) ExistsLive(
	_ context.Context,
	candidateID, jobID int64,
) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, a := range r.s.applications {
		if a.IsLive() && a.CandidateID == candidateID && a.JobID == jobID {
			return true, nil
		}
	}
	return false, nil
}

func (r *applicationRepo) UpdateStatus(_ context.Context, a *application.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.applications[a.ID]
	if !ok || !stored.IsLive() {
		return fmt.Errorf("update application status: %w", core.ErrNotFound)
	}

	stored.Status = a.Status
	stored.UpdatedAt = r.s.tick()
	a.UpdatedAt = stored.UpdatedAt

	r.s.applications[a.ID] = stored
	return nil
}

func (r *applicationRepo) SoftDelete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.applications[id]
	if !ok || !a.IsLive() {
		return fmt.Errorf("soft delete applications: %w", core.ErrNotFound)
	}

	r.s.retire(&a.Timestamps)
	r.s.applications[id] = a
	return nil
}

func (r *applicationRepo) ListByCandidate(
	_ context.Context,
	candidateID int64,
	page core.PageRequest,
) ([]application.Application, int, error) {
	return r.list(page, func(a *application.Application) bool {
		return a.CandidateID == candidateID
	})
}

func (r *applicationRepo) ListByJob(
	_ context.Context,
	params application.ListByJobParams,
) ([]application.Application, int, error) {
	return r.list(params.Page, func(a *application.Application) bool {
		if a.JobID != params.JobID {
			return false
		}
		return params.Status == "" || a.Status == params.Status
	})
}

func (r *applicationRepo) list(
	page core.PageRequest,
	match func(*application.Application) bool,
) ([]application.Application, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []application.Application
	for _, a := range r.s.applications {
		if a.IsLive() && match(&a) {
			out = append(out, r.s.joinApplication(a))
		}
	}

	items, total := paginate(out, page, applicationSorts, "created_at",
		func(a *application.Application) int64 { return a.ID })
	return items, total, nil
}

func (r *applicationRepo) CountByStatus(
	context.Context,
) (map[lifecycle.ApplicationStatus]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	counts := make(map[lifecycle.ApplicationStatus]int)
	for _, a := range r.s.applications {
		if a.IsLive() {
			counts[a.Status]++
		}
	}
	return counts, nil
}

// joinApplication fills the candidate, job and company fields regardless of
// whether those rows are live. Callers hold mu.
func (s *Store) joinApplication(a application.Application) application.Application {
	if u, ok := s.users[a.CandidateID]; ok {
		a.CandidateName = u.Name
		a.CandidateEmail = u.Email
	}
	if j, ok := s.jobs[a.JobID]; ok {
		a.JobTitle = j.Title
		a.CompanyID = j.CompanyID
		if c, ok := s.companies[j.CompanyID]; ok {
			a.CompanyName = c.Name
			a.CompanyWebsite = c.Website
			a.CompanyOwnerID = c.UserID
		}
	}
	return a
}
