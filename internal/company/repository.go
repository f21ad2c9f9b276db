// AngelaMos | 2026
// repository.go

package company

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/jobboard/internal/core"
)

type Repository interface {
	WithTx(db core.DBTX) Repository
	Create(ctx context.Context, c *Company) error
	GetByID(ctx context.Context, id int64) (*Company, error)
	GetByOwner(ctx context.Context, userID int64) (*Company, error)
	ExistsByOwner(ctx context.Context, userID int64) (bool, error)
	Update(ctx context.Context, c *Company) error
	SoftDelete(ctx context.Context, id int64) error
	RetireJobs(ctx context.Context, companyID int64) (int64, error)
	List(ctx context.Context, params ListCompaniesParams) ([]Company, int, error)
	Count(ctx context.Context) (int, error)
}

const companyColumns = `id, user_id, name, description, registration_id, website,
		       created_at, updated_at, deleted_at`

var companySorts = map[string]string{
	"name":       "name",
	"created_at": "created_at",
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

func (r *repository) Create(ctx context.Context, c *Company) error {
	query := `
		INSERT INTO companies (user_id, name, description, registration_id, website)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		c.UserID,
		c.Name,
		c.Description,
		c.RegistrationID,
		c.Website,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("create company: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create company: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Company, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM companies
		WHERE id = $1 AND %s`, companyColumns, core.Live(""))

	var c Company
	if err := r.db.GetContext(ctx, &c, query, id); err != nil {
		return nil, core.NoRows("get company", err)
	}

	return &c, nil
}

func (r *repository) GetByOwner(
	ctx context.Context,
	userID int64,
) (*Company, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM companies
		WHERE user_id = $1 AND %s`, companyColumns, core.Live(""))

	var c Company
	if err := r.db.GetContext(ctx, &c, query, userID); err != nil {
		return nil, core.NoRows("get company by owner", err)
	}

	return &c, nil
}

func (r *repository) ExistsByOwner(
	ctx context.Context,
	userID int64,
) (bool, error) {
	query := fmt.Sprintf(
		`SELECT EXISTS(SELECT 1 FROM companies WHERE user_id = $1 AND %s)`,
		core.Live(""),
	)

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID); err != nil {
		return false, fmt.Errorf("check company exists: %w", err)
	}

	return exists, nil
}

func (r *repository) Update(ctx context.Context, c *Company) error {
	query := fmt.Sprintf(`
		UPDATE companies
		SET name = $2, description = $3, registration_id = $4, website = $5,
		    updated_at = NOW()
		WHERE id = $1 AND %s
		RETURNING updated_at`, core.Live(""))

	err := r.db.GetContext(ctx, &c.UpdatedAt, query,
		c.ID,
		c.Name,
		c.Description,
		c.RegistrationID,
		c.Website,
	)
	if err != nil {
		return core.NoRows("update company", err)
	}

	return nil
}

func (r *repository) SoftDelete(ctx context.Context, id int64) error {
	return core.SoftDelete(ctx, r.db, "companies", id)
}

// RetireJobs soft-deletes every live job of the company. It runs in the same
// transaction as SoftDelete so no live job outlives its company.
func (r *repository) RetireJobs(
	ctx context.Context,
	companyID int64,
) (int64, error) {
	query := fmt.Sprintf(`
		UPDATE jobs
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE company_id = $1 AND %s`, core.Live(""))

	result, err := r.db.ExecContext(ctx, query, companyID)
	if err != nil {
		return 0, fmt.Errorf("retire company jobs: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("retire company jobs: %w", err)
	}

	return rows, nil
}

func (r *repository) List(
	ctx context.Context,
	params ListCompaniesParams,
) ([]Company, int, error) {
	f := core.NewFilter(core.Live(""))

	if params.Name != "" {
		f.Add("name ILIKE $%d", core.Contains(params.Name))
	}

	countQuery := "SELECT COUNT(*) FROM companies WHERE " + f.Where()
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, f.Args()...); err != nil {
		return nil, 0, fmt.Errorf("count companies: %w", err)
	}

	limit, args := f.Paged(params.Page)
	query := fmt.Sprintf(`
		SELECT %s
		FROM companies
		WHERE %s
		ORDER BY %s
		%s`,
		companyColumns,
		f.Where(),
		params.Page.OrderBy(companySorts, "created_at"),
		limit,
	)

	var companies []Company
	if err := r.db.SelectContext(ctx, &companies, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list companies: %w", err)
	}

	return companies, total, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	query := "SELECT COUNT(*) FROM companies WHERE " + core.Live("")

	var n int
	if err := r.db.GetContext(ctx, &n, query); err != nil {
		return 0, fmt.Errorf("count companies: %w", err)
	}

	return n, nil
}
