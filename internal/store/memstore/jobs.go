// AngelaMos | 2026
// jobs.go

package memstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/jobboard/internal/core"
	"github.com/carterperez-dev/jobboard/internal/job"
	"github.com/carterperez-dev/jobboard/internal/lifecycle"
)

var jobSorts = sortKeys[job.Job]{
	"title":      func(a, b *job.Job) int { return strings.Compare(a.Title, b.Title) },
	"location":   func(a, b *job.Job) int { return strings.Compare(a.Location, b.Location) },
	"status":     func(a, b *job.Job) int { return strings.Compare(string(a.Status), string(b.Status)) },
	"salary_min": func(a, b *job.Job) int { return compareNull(a.SalaryMin, b.SalaryMin) },
	"salary_max": func(a, b *job.Job) int { return compareNull(a.SalaryMax, b.SalaryMax) },
	"created_at": func(a, b *job.Job) int { return byTime(a.CreatedAt, b.CreatedAt) },
}

// compareNull sorts NULL after every value, as Postgres does ascending.
func compareNull(a, b decimal.NullDecimal) int {
	switch {
	case !a.Valid && !b.Valid:
		return 0
	case !a.Valid:
		return 1
	case !b.Valid:
		return -1
	}
	return a.Decimal.Cmp(b.Decimal)
}

type jobRepo struct {
	s *Store
}

func (r *jobRepo) WithTx(core.DBTX) job.Repository {
	return r
}

func (r *jobRepo) Create(_ context.Context, j *job.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.tick()
	j.ID = r.s.nextID()
	j.CreatedAt = now
	j.UpdatedAt = now
	j.DeletedAt = nil

	r.s.jobs[j.ID] = *j
	return nil
}

func (r *jobRepo) GetByID(_ context.Context, id int64) (*job.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	j, ok := r.s.liveJob(id)
	if !ok {
		return nil, fmt.Errorf("get job: %w", core.ErrNotFound)
	}
	return &j, nil
}

func (r *jobRepo) Update(_ context.Context, j *job.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.jobs[j.ID]
	if !ok || !stored.IsLive() {
		return fmt.Errorf("update job: %w", core.ErrNotFound)
	}

	stored.Title = j.Title
	stored.Description = j.Description
	stored.Location = j.Location
	stored.SalaryMin = j.SalaryMin
	stored.SalaryMax = j.SalaryMax
	stored.Status = j.Status
	stored.UpdatedAt = r.s.tick()
	j.UpdatedAt = stored.UpdatedAt

	r.s.jobs[j.ID] = stored
	return nil
}

func (r *jobRepo) SoftDelete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	j, ok := r.s.jobs[id]
	if !ok || !j.IsLive() {
		return fmt.Errorf("soft delete jobs: %w", core.ErrNotFound)
	}

	r.s.retire(&j.Timestamps)
	r.s.jobs[id] = j
	return nil
}

func (r *jobRepo) Search(
	_ context.Context,
	params job.SearchParams,
) ([]job.Job, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []job.Job
	for id := range r.s.jobs {
		j, ok := r.s.liveJob(id)
		if !ok {
			continue
		}
		if params.Title != "" && !containsFold(j.Title, params.Title) {
			continue
		}
		if params.CompanyID != 0 && j.CompanyID != params.CompanyID {
			continue
		}
		if params.CompanyName != "" && !containsFold(j.CompanyName, params.CompanyName) {
			continue
		}
		if params.Status != "" && j.Status != params.Status {
			continue
		}
		out = append(out, j)
	}

	items, total := paginate(out, params.Page, jobSorts, "created_at",
		func(j *job.Job) int64 { return j.ID })
	return items, total, nil
}

func (r *jobRepo) CountByStatus(context.Context) (map[lifecycle.JobStatus]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	counts := make(map[lifecycle.JobStatus]int)
	for id := range r.s.jobs {
		if j, ok := r.s.liveJob(id); ok {
			counts[j.Status]++
		}
	}
	return counts, nil
}

// liveJob returns the job joined with its company when both rows are live.
// Callers hold mu.
func (s *Store) liveJob(id int64) (job.Job, bool) {
	j, ok := s.jobs[id]
	if !ok || !j.IsLive() {
		return job.Job{}, false
	}

	c, ok := s.companies[j.CompanyID]
	if !ok || !c.IsLive() {
		return job.Job{}, false
	}

	j.CompanyName = c.Name
	j.CompanyWebsite = c.Website
	j.CompanyOwnerID = c.UserID
	return j, true
}
