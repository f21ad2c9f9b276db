// AngelaMos | 2026
// repository.go

package job

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/jobboard/internal/core"
	"github.com/carterperez-dev/jobboard/internal/lifecycle"
)

type Repository interface {
	WithTx(db core.DBTX) Repository
	Create(ctx context.Context, j *Job) error
	GetByID(ctx context.Context, id int64) (*Job, error)
	Update(ctx context.Context, j *Job) error
	SoftDelete(ctx context.Context, id int64) error
	Search(ctx context.Context, params SearchParams) ([]Job, int, error)
	CountByStatus(ctx context.Context) (map[lifecycle.JobStatus]int, error)
}

// Every read joins the owning company and requires both rows to be live, so
// a job never outlives its company in any result.
const jobSelect = `
		SELECT j.id, j.company_id, j.title, j.description, j.location,
		       j.salary_min, j.salary_max, j.status,
		       j.created_at, j.updated_at, j.deleted_at,
		       c.name AS company_name, c.website AS company_website,
		       c.user_id AS company_owner_id
		FROM jobs j
		JOIN companies c ON c.id = j.company_id`

const jobFrom = `
		FROM jobs j
		JOIN companies c ON c.id = j.company_id`

var jobSorts = map[string]string{
	"title":      "j.title",
	"location":   "j.location",
	"status":     "j.status",
	"salary_min": "j.salary_min",
	"salary_max": "j.salary_max",
	"created_at": "j.created_at",
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, j *Job) error {
	query := `
		INSERT INTO jobs (
			company_id, title, description, location,
			salary_min, salary_max, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		j.CompanyID,
		j.Title,
		j.Description,
		j.Location,
		j.SalaryMin,
		j.SalaryMax,
		j.Status,
	).Scan(&j.ID, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create job: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Job, error) {
	query := fmt.Sprintf(`%s
		WHERE j.id = $1 AND %s AND %s`,
		jobSelect, core.Live("j"), core.Live("c"))

	var j Job
	if err := r.db.GetContext(ctx, &j, query, id); err != nil {
		return nil, core.NoRows("get job", err)
	}

	return &j, nil
}

func (r *repository) Update(ctx context.Context, j *Job) error {
	query := fmt.Sprintf(`
		UPDATE jobs
		SET title = $2, description = $3, location = $4,
		    salary_min = $5, salary_max = $6, status = $7,
		    updated_at = NOW()
		WHERE id = $1 AND %s
		RETURNING updated_at`, core.Live(""))

	err := r.db.GetContext(ctx, &j.UpdatedAt, query,
		j.ID,
		j.Title,
		j.Description,
		j.Location,
		j.SalaryMin,
		j.SalaryMax,
		j.Status,
	)
	if err != nil {
		return core.NoRows("update job", err)
	}

	return nil
}

func (r *repository) SoftDelete(ctx context.Context, id int64) error {
	return core.SoftDelete(ctx, r.db, "jobs", id)
}

func (r *repository) Search(
	ctx context.Context,
	params SearchParams,
) ([]Job, int, error) {
	f := core.NewFilter(core.Live("j"), core.Live("c"))

	if params.Title != "" {
		f.Add("j.title ILIKE $%d", core.Contains(params.Title))
	}
	if params.CompanyID != 0 {
		f.Add("j.company_id = $%d", params.CompanyID)
	}
	if params.CompanyName != "" {
		f.Add("c.name ILIKE $%d", core.Contains(params.CompanyName))
	}
	if params.Status != "" {
		f.Add("j.status = $%d", params.Status)
	}

	countQuery := "SELECT COUNT(*)" + jobFrom + " WHERE " + f.Where()
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, f.Args()...); err != nil {
		return nil, 0, fmt.Errorf("count jobs: %w", err)
	}

	limit, args := f.Paged(params.Page)
	query := fmt.Sprintf(`%s
		WHERE %s
		ORDER BY %s
		%s`,
		jobSelect,
		f.Where(),
		params.Page.OrderBy(jobSorts, "j.created_at"),
		limit,
	)

	var jobs []Job
	if err := r.db.SelectContext(ctx, &jobs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("search jobs: %w", err)
	}

	return jobs, total, nil
}

func (r *repository) CountByStatus(
	ctx context.Context,
) (map[lifecycle.JobStatus]int, error) {
	query := fmt.Sprintf(`
		SELECT j.status, COUNT(*) AS count
		%s
		WHERE %s AND %s
		GROUP BY j.status`, jobFrom, core.Live("j"), core.Live("c"))

	var rows []struct {
		Status lifecycle.JobStatus `db:"status"`
		Count  int                 `db:"count"`
	}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("count jobs by status: %w", err)
	}

	counts := make(map[lifecycle.JobStatus]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}

	return counts, nil
}
