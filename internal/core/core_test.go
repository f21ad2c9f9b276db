// AngelaMos | 2026
// core_test.go

package core

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{nil, ""},
		{fmt.Errorf("get: %w", ErrNotFound), KindNotFound},
		{fmt.Errorf("insert: %w", ErrDuplicateKey), KindConflict},
		{ErrConflict, KindConflict},
		{ErrTokenExpired, KindUnauthenticated},
		{ErrForbidden, KindForbidden},
		{ErrInvalidState, KindInvalidState},
		{ErrInvalidInput, KindValidationFailed},
		{errors.New("boom"), KindInternal},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, KindOf(tt.err), "%v", tt.err)
	}
}

func TestToAppError(t *testing.T) {
	de := NewDomainError(ErrInvalidState, "JOB_NOT_OPEN", "job is not accepting applications")
	appErr := ToAppError(fmt.Errorf("apply: %w", de))

	assert.Equal(t, http.StatusUnprocessableEntity, appErr.StatusCode)
	assert.Equal(t, "JOB_NOT_OPEN", appErr.Code)
	assert.Equal(t, "job is not accepting applications", appErr.Message)

	appErr = ToAppError(fmt.Errorf("get company: %w", ErrNotFound))
	assert.Equal(t, http.StatusNotFound, appErr.StatusCode)
	assert.Equal(t, "NOT_FOUND", appErr.Code)

	appErr = ToAppError(errors.New("connection reset"))
	assert.Equal(t, http.StatusInternalServerError, appErr.StatusCode)
	assert.Equal(t, "internal server error", appErr.Message)

	explicit := ValidationError("name is required")
	assert.Same(t, explicit, ToAppError(explicit))
}

func TestJSONErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONError(rec, fmt.Errorf("x: %w", ErrForbidden))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t,
		`{"success":false,"error":{"code":"FORBIDDEN","message":"insufficient permissions"}}`,
		rec.Body.String(),
	)
}

func TestPaginatedEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	PagedJSON(rec, NewPage([]int{1, 2}, 5, PageRequest{Page: 1, PageSize: 2}))

	assert.JSONEq(t,
		`{"success":true,"data":[1,2],"meta":{"page":1,"page_size":2,"total":5,"total_pages":3}}`,
		rec.Body.String(),
	)
}

func TestPageRequest(t *testing.T) {
	n := PageRequest{Page: 0, PageSize: 1000}.Normalize()
	assert.Equal(t, 1, n.Page)
	assert.Equal(t, MaxPageSize, n.PageSize)

	assert.Equal(t, 40, PageRequest{Page: 3, PageSize: 20}.Offset())

	huge := PageRequest{Page: math.MaxInt / 50, PageSize: 100}
	assert.Equal(t, MaxPage, huge.Normalize().Page)
	assert.Equal(t, (MaxPage-1)*MaxPageSize, huge.Offset())
	assert.Positive(t, huge.Offset())

	allowed := map[string]string{"title": "j.title"}
	assert.Equal(t, "j.title ASC", PageRequest{Sort: "Title"}.OrderBy(allowed, "j.created_at"))
	assert.Equal(t, "j.title DESC", PageRequest{Sort: "title", Desc: true}.OrderBy(allowed, "j.created_at"))
	assert.Equal(t, "j.created_at DESC", PageRequest{Sort: "id; DROP"}.OrderBy(allowed, "j.created_at"))
}

func TestMapPage(t *testing.T) {
	p := NewPage[int](nil, 0, PageRequest{})
	require.NotNil(t, p.Items)

	doubled := MapPage(NewPage([]int{1, 2}, 2, PageRequest{}), func(v *int) int { return *v * 2 })
	assert.Equal(t, []int{2, 4}, doubled.Items)
	assert.Equal(t, DefaultPageSize, doubled.PageSize)
}

func TestFilter(t *testing.T) {
	f := NewFilter(Live("u"))
	f.Add("(u.email ILIKE $%[1]d OR u.name ILIKE $%[1]d)", Contains("a_b"))
	f.Add("u.role = $%d", "ADMIN")

	assert.Equal(t,
		`u.deleted_at IS NULL AND (u.email ILIKE $1 OR u.name ILIKE $1) AND u.role = $2`,
		f.Where(),
	)
	assert.Equal(t, []any{`%a\_b%`, "ADMIN"}, f.Args())

	limit, args := f.Paged(PageRequest{Page: 2, PageSize: 10})
	assert.Equal(t, "LIMIT $3 OFFSET $4", limit)
	assert.Equal(t, []any{`%a\_b%`, "ADMIN", 10, 10}, args)
	assert.Len(t, f.Args(), 2)
}

func TestTimestampsIsLive(t *testing.T) {
	var ts Timestamps
	assert.True(t, ts.IsLive())
}
