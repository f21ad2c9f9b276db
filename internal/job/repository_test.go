// AngelaMos | 2026
// repository_test.go

package job

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/jobboard/internal/core"
	"github.com/carterperez-dev/jobboard/internal/lifecycle"
)

var jobRowColumns = []string{
	"id", "company_id", "title", "description", "location",
	"salary_min", "salary_max", "status",
	"created_at", "updated_at", "deleted_at",
	"company_name", "company_website", "company_owner_id",
}

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, Repository) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return mock, NewRepository(sqlx.NewDb(db, "sqlmock"))
}

func TestRepositoryGetByIDRequiresLiveCompany(t *testing.T) {
	mock, repo := setupMockDB(t)
	now := time.Now()

	mock.ExpectQuery(`JOIN companies c ON c.id = j.company_id\s+WHERE j.id = \$1 AND j.deleted_at IS NULL AND c.deleted_at IS NULL`).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(jobRowColumns).AddRow(
			int64(9), int64(2), "Engineer", "", "Remote",
			"1000.50", nil, "OPEN",
			now, now, nil,
			"Acme", "https://acme.example", int64(5),
		))

	j, err := repo.GetByID(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.JobOpen, j.Status)
	assert.Equal(t, int64(5), j.CompanyOwnerUserID())
	assert.True(t, j.SalaryMin.Valid)
	assert.Equal(t, "1000.5", j.SalaryMin.Decimal.String())
	assert.False(t, j.SalaryMax.Valid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositorySearchFilters(t *testing.T) {
	mock, repo := setupMockDB(t)

	where := `WHERE j.deleted_at IS NULL AND c.deleted_at IS NULL ` +
		`AND j.title ILIKE \$1 AND j.company_id = \$2 AND c.name ILIKE \$3 AND j.status = \$4`

	mock.ExpectQuery(`SELECT COUNT\(\*\)\s+FROM jobs j\s+JOIN companies c ON c.id = j.company_id ` + where).
		WithArgs("%go%", int64(2), "%acme%", lifecycle.JobOpen).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(where + `\s+ORDER BY j.salary_max DESC\s+LIMIT \$5 OFFSET \$6`).
		WithArgs("%go%", int64(2), "%acme%", lifecycle.JobOpen, core.DefaultPageSize, 0).
		WillReturnRows(sqlmock.NewRows(jobRowColumns))

	jobs, total, err := repo.Search(context.Background(), SearchParams{
		Page:        core.PageRequest{Sort: "salary_max", Desc: true},
		Title:       "go",
		CompanyID:   2,
		CompanyName: "acme",
		Status:      lifecycle.JobOpen,
	})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, jobs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryUpdateMissingJob(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectQuery(`UPDATE jobs`).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}))

	err := repo.Update(context.Background(), &Job{ID: 3, Status: lifecycle.JobClosed})
	require.ErrorIs(t, err, core.ErrNotFound)
}
