// AngelaMos | 2026
// handler_test.go

package job_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/jobboard/internal/core"
	"github.com/carterperez-dev/jobboard/internal/identity"
	"github.com/carterperez-dev/jobboard/internal/job"
	"github.com/carterperez-dev/jobboard/internal/lifecycle"
)

// testAuth reads "<id>:<ROLE>" from X-Principal in place of a bearer token.
func testAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, role, ok := strings.Cut(r.Header.Get("X-Principal"), ":")
		if !ok {
			core.Unauthorized(w, "")
			return
		}
		uid, _ := strconv.ParseInt(id, 10, 64) //nolint:errcheck // test input
		p := identity.New(uid, identity.Role(role))
		next.ServeHTTP(w, r.WithContext(identity.WithPrincipal(r.Context(), p)))
	})
}

func newRouter(t *testing.T) (http.Handler, *fixture) {
	t.Helper()
	f := newFixture(t, lifecycle.Permissive)

	r := chi.NewRouter()
	job.NewHandler(f.svc).RegisterRoutes(r, testAuth)
	return r, f
}

func do(h http.Handler, method, target, principal, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if principal != "" {
		req.Header.Set("X-Principal", principal)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandlerCreate(t *testing.T) {
	h, f := newRouter(t)

	rec := do(h, http.MethodPost, "/jobs", "", `{"title":"Engineer","location":"Remote"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(h, http.MethodPost, "/jobs", "10:COMPANY",
		`{"title":"Engineer","location":"Remote","salary_min":"900","salary_max":100}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(h, http.MethodPost, "/jobs", "20:CANDIDATE", `{"title":"Engineer","location":"Remote"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ROLE_NOT_ALLOWED"`)

	rec = do(h, http.MethodPost, "/jobs", "10:COMPANY",
		`{"title":"Engineer","location":"Remote","salary_min":1000,"salary_max":"2500.75"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body struct {
		Data job.JobResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, lifecycle.JobOpen, body.Data.Status)
	assert.Equal(t, f.owned.ID, body.Data.Company.ID)
	assert.Equal(t, "2500.75", body.Data.SalaryMax.Decimal.String())
}

func TestHandlerSearch(t *testing.T) {
	h, f := newRouter(t)
	f.post(t, "Backend Engineer")
	f.post(t, "Designer")

	rec := do(h, http.MethodGet, "/jobs?title=engineer", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":1`)

	rec = do(h, http.MethodGet, "/jobs?status=ARCHIVED", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(h, http.MethodGet, "/jobs?company_id=abc", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(h, http.MethodGet, "/jobs?page=184467440737095516&page_size=100", "", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"data":[]`)
	assert.Contains(t, rec.Body.String(), `"total":2`)
}

func TestHandlerGetAndDelete(t *testing.T) {
	h, f := newRouter(t)
	j := f.post(t, "Backend Engineer")
	target := "/jobs/" + strconv.FormatInt(j.ID, 10)

	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, target, "", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodGet, "/jobs/0", "", "").Code)
	assert.Equal(t, http.StatusForbidden, do(h, http.MethodDelete, target, "11:COMPANY", "").Code)
	assert.Equal(t, http.StatusNoContent, do(h, http.MethodDelete, target, "10:COMPANY", "").Code)
	assert.Equal(t, http.StatusNotFound, do(h, http.MethodGet, target, "", "").Code)
}

func TestHandlerListMine(t *testing.T) {
	h, f := newRouter(t)
	f.post(t, "Backend Engineer")

	rec := do(h, http.MethodGet, "/jobs/mine?status=open", "10:COMPANY", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":1`)

	rec = do(h, http.MethodGet, "/jobs/mine", "11:COMPANY", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), `"COMPANY_REQUIRED"`)
}
