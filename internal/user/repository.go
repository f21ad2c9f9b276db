// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/jobboard/internal/core"
	"github.com/carterperez-dev/jobboard/internal/identity"
)

type Repository interface {
	WithTx(db core.DBTX) Repository
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	IncrementTokenVersion(ctx context.Context, id int64) error
	List(ctx context.Context, params ListUsersParams) ([]User, int, error)
	CountByRole(ctx context.Context) (map[identity.Role]int, error)
}

const userColumns = `id, email, password_hash, name, role, token_version,
		       created_at, updated_at, deleted_at`

var userSorts = map[string]string{
	"name":       "name",
	"email":      "email",
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

func (r *repository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (email, password_hash, name, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, token_version, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.Role,
	).Scan(&user.ID, &user.TokenVersion, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE id = $1 AND %s`, userColumns, core.Live(""))

	var user User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, core.NoRows("get user", err)
	}

	return &user, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE email = $1 AND %s`, userColumns, core.Live(""))

	var user User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, core.NoRows("get user by email", err)
	}

	return &user, nil
}

func (r *repository) ExistsByEmail(
	ctx context.Context,
	email string,
) (bool, error) {
	query := fmt.Sprintf(
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND %s)`,
		core.Live(""),
	)

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}

	return exists, nil
}

func (r *repository) Update(ctx context.Context, user *User) error {
	query := fmt.Sprintf(`
		UPDATE users
		SET name = $2, updated_at = NOW()
		WHERE id = $1 AND %s
		RETURNING updated_at`, core.Live(""))

	err := r.db.GetContext(ctx, &user.UpdatedAt, query, user.ID, user.Name)
	if err != nil {
		return core.NoRows("update user", err)
	}

	return nil
}

func (r *repository) UpdatePassword(
	ctx context.Context,
	id int64,
	passwordHash string,
) error {
	query := fmt.Sprintf(`
		UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1 AND %s`, core.Live(""))

	return r.execOne(ctx, "update password", query, id, passwordHash)
}

func (r *repository) IncrementTokenVersion(
	ctx context.Context,
	id int64,
) error {
	query := fmt.Sprintf(`
		UPDATE users
		SET token_version = token_version + 1, updated_at = NOW()
		WHERE id = $1 AND %s`, core.Live(""))

	return r.execOne(ctx, "increment token version", query, id)
}

func (r *repository) List(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	f := core.NewFilter(core.Live(""))

	if params.Search != "" {
		f.Add("(email ILIKE $%[1]d OR name ILIKE $%[1]d)", core.Contains(params.Search))
	}

	if params.Role != "" {
		f.Add("role = $%d", params.Role)
	}

	countQuery := "SELECT COUNT(*) FROM users WHERE " + f.Where()
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, f.Args()...); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	limit, args := f.Paged(params.Page)
	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE %s
		ORDER BY %s
		%s`,
		userColumns,
		f.Where(),
		params.Page.OrderBy(userSorts, "created_at"),
		limit,
	)

	var users []User
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	return users, total, nil
}

func (r *repository) CountByRole(
	ctx context.Context,
) (map[identity.Role]int, error) {
	query := fmt.Sprintf(`
		SELECT role, COUNT(*) AS count
		FROM users
		WHERE %s
		GROUP BY role`, core.Live(""))

	var rows []struct {
		Role  identity.Role `db:"role"`
		Count int           `db:"count"`
	}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("count users by role: %w", err)
	}

	counts := make(map[identity.Role]int, len(rows))
	for _, row := range rows {
		counts[row.Role] = row.Count
	}

	return counts, nil
}

func (r *repository) execOne(
	ctx context.Context,
	op, query string,
	args ...any,
) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if rows == 0 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}

	return nil
}
