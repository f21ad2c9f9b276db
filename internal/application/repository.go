// AngelaMos | 2026
// repository.go

package application

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/jobboard/internal/core"
	"github.com/carterperez-dev/jobboard/internal/lifecycle"
)

type Repository interface {
	WithTx(db core.DBTX) Repository
	Create(ctx context.Context, a *Application) error
	GetByID(ctx context.Context, id int64) (*Application, error)
	ExistsLive(ctx context.Context, candidateID, jobID int64) (bool, error)
	UpdateStatus(ctx context.Context, a *Application) error
	SoftDelete(ctx context.Context, id int64) error
	ListByCandidate(
		ctx context.Context,
		candidateID int64,
		page core.PageRequest,
	) ([]Application, int, error)
	ListByJob(ctx context.Context, params ListByJobParams) ([]Application, int, error)
	CountByStatus(ctx context.Context) (map[lifecycle.ApplicationStatus]int, error)
}

// Only the application row must be live. The job and company are joined
// regardless so a candidate keeps sight of applications to retired jobs.
const applicationSelect = `
		SELECT a.id, a.candidate_id, a.job_id, a.cover_letter, a.status,
		       a.created_at, a.updated_at, a.deleted_at,
		       u.name AS candidate_name, u.email AS candidate_email,
		       j.title AS job_title, j.company_id,
		       c.name AS company_name, c.website AS company_website,
		       c.user_id AS company_owner_id
		FROM applications a
		JOIN users u ON u.id = a.candidate_id
		JOIN jobs j ON j.id = a.job_id
		JOIN companies c ON c.id = j.company_id`

var applicationSorts = map[string]string{
	"status":     "a.status",
	"created_at": "a.created_at",
	"updated_at": "a.updated_at",
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

func (r *repository) Create(ctx context.Context, a *Application) error {
	query := `
		INSERT INTO applications (candidate_id, job_id, cover_letter, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		a.CandidateID,
		a.JobID,
		a.CoverLetter,
		a.Status,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("create application: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create application: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id int64,
) (*Application, error) {
	query := fmt.Sprintf(`%s
		WHERE a.id = $1 AND %s`, applicationSelect, core.Live("a"))

	var a Application
	if err := r.db.GetContext(ctx, &a, query, id); err != nil {
		return nil, core.NoRows("get application", err)
	}

	return &a, nil
}

func (r *repository) ExistsLive(
	ctx context.Context,
	candidateID, jobID int64,
) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS(
			SELECT 1 FROM applications
			WHERE candidate_id = $1 AND job_id = $2 AND %s
		)`, core.Live(""))

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, candidateID, jobID); err != nil {
		return false, fmt.Errorf("check application exists: %w", err)
	}

	return exists, nil
}

func (r *repository) UpdateStatus(ctx context.Context, a *Application) error {
	query := fmt.Sprintf(`
		UPDATE applications
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND %s
		RETURNING updated_at`, core.Live(""))

	if err := r.db.GetContext(ctx, &a.UpdatedAt, query, a.ID, a.Status); err != nil {
		return core.NoRows("update application status", err)
	}

	return nil
}

func (r *repository) SoftDelete(ctx context.Context, id int64) error {
	return core.SoftDelete(ctx, r.db, "applications", id)
}

func (r *repository) ListByCandidate(
	ctx context.Context,
	candidateID int64,
	page core.PageRequest,
) ([]Application, int, error) {
	f := core.NewFilter(core.Live("a"))
	f.Add("a.candidate_id = $%d", candidateID)

	return r.list(ctx, f, page, "list applications by candidate")
}

func (r *repository) ListByJob(
	ctx context.Context,
	params ListByJobParams,
) ([]Application, int, error) {
	f := core.NewFilter(core.Live("a"))
	f.Add("a.job_id = $%d", params.JobID)

	if params.Status != "" {
		f.Add("a.status = $%d", params.Status)
	}

	return r.list(ctx, f, params.Page, "list applications by job")
}

func (r *repository) list(
	ctx context.Context,
	f *core.Filter,
	page core.PageRequest,
	op string,
) ([]Application, int, error) {
	countQuery := "SELECT COUNT(*) FROM applications a WHERE " + f.Where()
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, f.Args()...); err != nil {
		return nil, 0, fmt.Errorf("%s: count: %w", op, err)
	}

	limit, args := f.Paged(page)
	query := fmt.Sprintf(`%s
		WHERE %s
		ORDER BY %s
		%s`,
		applicationSelect,
		f.Where(),
		page.OrderBy(applicationSorts, "a.created_at"),
		limit,
	)

	var apps []Application
	if err := r.db.SelectContext(ctx, &apps, query, args...); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return apps, total, nil
}

func (r *repository) CountByStatus(
	ctx context.Context,
) (map[lifecycle.ApplicationStatus]int, error) {
	query := fmt.Sprintf(`
		SELECT status, COUNT(*) AS count
		FROM applications
		WHERE %s
		GROUP BY status`, core.Live(""))

	var rows []struct {
		Status lifecycle.ApplicationStatus `db:"status"`
		Count  int                         `db:"count"`
	}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("count applications by status: %w", err)
	}

	counts := make(map[lifecycle.ApplicationStatus]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}

	return counts, nil
}
