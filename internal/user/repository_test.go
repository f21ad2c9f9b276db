// AngelaMos | 2026
// repository_test.go

package user

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/jobboard/internal/core"
	"github.com/carterperez-dev/jobboard/internal/identity"
)

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, Repository) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return mock, NewRepository(sqlx.NewDb(db, "sqlmock"))
}

func TestRepositoryCreate(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	mock, repo := setupMockDB(t)
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("ada@example.com", "hash", "Ada", identity.RoleCandidate).
		WillReturnRows(sqlmock.NewRows([]string{"id", "token_version", "created_at", "updated_at"}).
			AddRow(int64(1), 0, now, now))
	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	u := &User{Email: "ada@example.com", PasswordHash: "hash", Name: "Ada", Role: identity.RoleCandidate}
	require.NoError(t, repo.Create(ctx, u))
	assert.Equal(t, int64(1), u.ID)

	err := repo.Create(ctx, &User{Email: "ada@example.com", Role: identity.RoleCandidate})
	require.ErrorIs(t, err, core.ErrDuplicateKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryIncrementTokenVersionMissing(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectExec(`SET token_version = token_version \+ 1`).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.IncrementTokenVersion(context.Background(), 9)
	require.ErrorIs(t, err, core.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryListSearchesEmailAndName(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectQuery(`WHERE deleted_at IS NULL AND \(email ILIKE \$1 OR name ILIKE \$1\) AND role = \$2`).
		WithArgs("%ada%", identity.RoleAdmin).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`ORDER BY email ASC\s+LIMIT \$3 OFFSET \$4`).
		WithArgs("%ada%", identity.RoleAdmin, 5, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	users, total, err := repo.List(context.Background(), ListUsersParams{
		Page:   core.PageRequest{PageSize: 5, Sort: "email"},
		Search: "ada",
		Role:   identity.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, users)
	assert.NoError(t, mock.ExpectationsWereMet())
}
