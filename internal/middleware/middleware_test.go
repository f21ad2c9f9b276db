// AngelaMos | 2026
// middleware_test.go

package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redis_rate "github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/jobboard/internal/config"
	"github.com/carterperez-dev/jobboard/internal/core"
	"github.com/carterperez-dev/jobboard/internal/identity"
)

type stubVerifier struct {
	claims *AccessTokenClaims
	err    error
}

func (s stubVerifier) VerifyAccessToken(
	_ context.Context,
	_ string,
) (*AccessTokenClaims, error) {
	return s.claims, s.err
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	p, err := identity.FromContext(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	_, _ = fmt.Fprintf(w, "%d:%s", p.UserID, p.Role)
})

func bearer(r *http.Request) *http.Request {
	r.Header.Set("Authorization", "Bearer token")
	return r
}

func TestAuthenticatorAttachesPrincipal(t *testing.T) {
	v := stubVerifier{claims: &AccessTokenClaims{UserID: 9, Role: identity.RoleCompany}}
	h := Authenticator(v)(okHandler)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, bearer(httptest.NewRequest(http.MethodGet, "/", nil)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "9:COMPANY", rec.Body.String())
}

func TestAuthenticatorRejects(t *testing.T) {
	tests := []struct {
		name string
		req  *http.Request
		err  error
		code string
	}{
		{"missing token", httptest.NewRequest(http.MethodGet, "/", nil), nil, "UNAUTHORIZED"},
		{"expired", bearer(httptest.NewRequest(http.MethodGet, "/", nil)), core.ErrTokenExpired, "TOKEN_EXPIRED"},
		{"revoked", bearer(httptest.NewRequest(http.MethodGet, "/", nil)), core.ErrTokenRevoked, "TOKEN_REVOKED"},
		{"invalid", bearer(httptest.NewRequest(http.MethodGet, "/", nil)), core.ErrTokenInvalid, "TOKEN_INVALID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Authenticator(stubVerifier{err: tt.err})(okHandler)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, tt.req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.code)
		})
	}
}

func TestOptionalAuthIgnoresBadToken(t *testing.T) {
	h := OptionalAuth(stubVerifier{err: core.ErrTokenInvalid})(okHandler)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, bearer(httptest.NewRequest(http.MethodGet, "/", nil)))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequireRole(t *testing.T) {
	v := stubVerifier{claims: &AccessTokenClaims{UserID: 1, Role: identity.RoleCandidate}}
	h := Authenticator(v)(RequireAdmin(okHandler))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, bearer(httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	RequireAdmin(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func newRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestRateLimiterBlocksAfterBurst(t *testing.T) {
	rl := NewRateLimiter(newRedis(t), RateLimitConfig{
		Limit:     redis_rate.Limit{Rate: 2, Burst: 2, Period: time.Minute},
		KeyPrefix: "test",
	})
	h := rl.Handler(okHandler)

	codes := make([]int, 0, 3)
	for range 3 {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
}

func TestRoleRateLimiterUsesRoleLimits(t *testing.T) {
	cfg := config.RateLimitConfig{
		Requests: 1,
		Burst:    1,
		Window:   time.Minute,
		Roles: map[string]config.RoleLimit{
			"ADMIN": {Requests: 5, Burst: 5},
		},
	}
	rl := RoleRateLimiter(newRedis(t), cfg, "test")

	v := stubVerifier{claims: &AccessTokenClaims{UserID: 1, Role: identity.RoleAdmin}}
	h := Authenticator(v)(rl.Handler(okHandler))

	for range 3 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, bearer(httptest.NewRequest(http.MethodGet, "/", nil)))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "admin", rec.Header().Get("X-RateLimit-Class"))
		assert.Equal(t, "5", rec.Header().Get("X-RateLimit-Limit"))
	}

	anon := rl.Handler(okHandler)
	rec := httptest.NewRecorder()
	anon.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = httptest.NewRecorder()
	anon.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestLocalLimiterFallback(t *testing.T) {
	l := &localLimiter{}
	limit := PerMinute(60, 1)

	res, err := l.allow("k", limit)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Allowed)

	res, err = l.allow("k", limit)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Allowed)
}

func TestKeyByIPAndEndpoint(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/jobs/42", nil)
	req.Header.Set("X-Forwarded-For", "1.1.1.1, 2.2.2.2")
	assert.Equal(t, "ratelimit:ip:2.2.2.2:endpoint:/v1/jobs/{id}", KeyByIPAndEndpoint(req))
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc", seen)
	assert.Equal(t, "abc", rec.Header().Get(RequestIDHeader))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, seen, 36)
}

func TestCORS(t *testing.T) {
	h := CORS(config.CORSConfig{
		AllowedOrigins:   []string{"http://app.test"},
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	})(okHandler)

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://app.test")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://app.test", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST", rec.Header().Get("Access-Control-Allow-Methods"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.test")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

type recordingObserver struct{ route, status string }

func (o *recordingObserver) ObserveHTTP(route, _, status string, _ time.Duration) {
	o.route, o.status = route, status
}

func TestSecurityHeadersAndMetrics(t *testing.T) {
	obs := &recordingObserver{}
	h := Metrics(obs)(SecurityHeaders(true)(okHandler))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))
	assert.Equal(t, "unmatched", obs.route)
	assert.Equal(t, "204", obs.status)
}
