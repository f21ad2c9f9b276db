// AngelaMos | 2026
// service_test.go

package company_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/jobboard/internal/company"
	"github.com/carterperez-dev/jobboard/internal/core"
	"github.com/carterperez-dev/jobboard/internal/identity"
	"github.com/carterperez-dev/jobboard/internal/job"
	"github.com/carterperez-dev/jobboard/internal/lifecycle"
	"github.com/carterperez-dev/jobboard/internal/metrics"
	"github.com/carterperez-dev/jobboard/internal/store/memstore"
)

var (
	owner     = identity.New(10, identity.RoleCompany)
	rival     = identity.New(11, identity.RoleCompany)
	candidate = identity.New(20, identity.RoleCandidate)
	admin     = identity.New(1, identity.RoleAdmin)
)

func newService(t *testing.T) (*company.Service, *memstore.Store, *metrics.Metrics) {
	t.Helper()
	store := memstore.New()
	m := metrics.New()
	return company.NewService(store.Companies(), store, m), store, m
}

func createCompany(t *testing.T, svc *company.Service, p identity.Principal) *company.Company {
	t.Helper()
	c, err := svc.Create(context.Background(), p, company.CreateCompanyRequest{
		Name:    "Acme Corp",
		Website: "https://acme.example",
	})
	require.NoError(t, err)
	return c
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("company user creates one company", func(t *testing.T) {
		svc, _, m := newService(t)

		c := createCompany(t, svc, owner)
		assert.Equal(t, owner.UserID, c.UserID)
		assert.NotZero(t, c.ID)
		assert.InDelta(t, 1, testutil.ToFloat64(m.Created.WithLabelValues("company")), 0)

		_, err := svc.Create(ctx, owner, company.CreateCompanyRequest{Name: "Second"})
		require.ErrorIs(t, err, lifecycle.ErrCompanyExists)
		assert.Equal(t, core.KindConflict, core.KindOf(err))
	})

	t.Run("other roles are forbidden", func(t *testing.T) {
		svc, _, m := newService(t)

		for _, p := range []identity.Principal{candidate, admin} {
			_, err := svc.Create(ctx, p, company.CreateCompanyRequest{Name: "Nope"})
			require.ErrorIs(t, err, core.ErrForbidden)
		}
		assert.InDelta(t, 2, testutil.ToFloat64(
			m.PolicyDenials.WithLabelValues("company.Create", "ROLE_NOT_ALLOWED")), 0)
	})

	t.Run("anonymous is unauthenticated", func(t *testing.T) {
		svc, _, _ := newService(t)

		_, err := svc.Create(ctx, identity.Principal{}, company.CreateCompanyRequest{Name: "Nope"})
		require.ErrorIs(t, err, core.ErrUnauthorized)
	})

	t.Run("a deleted company frees the slot", func(t *testing.T) {
		svc, _, _ := newService(t)

		c := createCompany(t, svc, owner)
		require.NoError(t, svc.Delete(ctx, owner, c.ID))

		again := createCompany(t, svc, owner)
		assert.NotEqual(t, c.ID, again.ID)
	})
}

func TestGetMine(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	_, err := svc.GetMine(ctx, owner)
	require.ErrorIs(t, err, core.ErrNotFound)

	c := createCompany(t, svc, owner)
	got, err := svc.GetMine(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)

	_, err = svc.GetMine(ctx, candidate)
	require.ErrorIs(t, err, core.ErrForbidden)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)
	c := createCompany(t, svc, owner)

	name := "Acme Industries"
	req := company.UpdateCompanyRequest{Name: &name}

	_, err := svc.Update(ctx, rival, c.ID, req)
	require.ErrorIs(t, err, core.ErrForbidden)

	_, err = svc.Update(ctx, admin, c.ID, req)
	require.ErrorIs(t, err, core.ErrForbidden, "admin has no override")

	_, err = svc.Update(ctx, owner, 999, req)
	require.ErrorIs(t, err, core.ErrNotFound)

	updated, err := svc.Update(ctx, owner, c.ID, req)
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, "https://acme.example", updated.Website)

	got, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, name, got.Name)
}

func TestDeleteRetiresJobs(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newService(t)
	c := createCompany(t, svc, owner)

	jobs := store.Jobs()
	for _, title := range []string{"Backend Engineer", "Designer"} {
		require.NoError(t, jobs.Create(ctx, &job.Job{
			CompanyID: c.ID,
			Title:     title,
			Location:  "Remote",
			Status:    lifecycle.JobOpen,
		}))
	}

	require.ErrorIs(t, svc.Delete(ctx, rival, c.ID), core.ErrForbidden)
	require.NoError(t, svc.Delete(ctx, owner, c.ID))

	_, err := svc.Get(ctx, c.ID)
	require.ErrorIs(t, err, core.ErrNotFound)

	found, total, err := jobs.Search(ctx, job.SearchParams{CompanyID: c.ID})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, found)

	require.ErrorIs(t, svc.Delete(ctx, owner, c.ID), core.ErrNotFound)
}

func TestListIsPublic(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)
	createCompany(t, svc, owner)
	createCompany(t, svc, rival)

	page, err := svc.List(ctx, company.ListCompaniesParams{
		Page: core.PageRequest{PageSize: 1},
		Name: "acme",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.PageSize)

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
