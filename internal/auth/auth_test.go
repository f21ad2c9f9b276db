// AngelaMos | 2026
// auth_test.go

package auth

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/jobboard/internal/config"
	"github.com/carterperez-dev/jobboard/internal/core"
	"github.com/carterperez-dev/jobboard/internal/identity"
)

func newJWTManager(t *testing.T) *JWTManager {
	t.Helper()

	dir := t.TempDir()
	priv := filepath.Join(dir, "private.pem")
	pub := filepath.Join(dir, "public.pem")
	require.NoError(t, GenerateKeyPair(priv, pub))

	m, err := NewJWTManager(config.JWTConfig{
		PrivateKeyPath:     priv,
		PublicKeyPath:      pub,
		AccessTokenExpire:  15 * time.Minute,
		RefreshTokenExpire: 24 * time.Hour,
		Issuer:             "jobboard",
		Audience:           "jobboard-api",
	})
	require.NoError(t, err)
	return m
}

type fakeUsers struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*UserInfo
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[int64]*UserInfo{}}
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == strings.ToLower(email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) CreateAccount(
	_ context.Context,
	email, passwordHash, name string,
	role identity.Role,
) (*UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	u := &UserInfo{
		ID:           f.nextID,
		Email:        strings.ToLower(email),
		Name:         name,
		PasswordHash: passwordHash,
		Role:         role,
	}
	f.byID[u.ID] = u
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) IncrementTokenVersion(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[id].TokenVersion++
	return nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, id int64, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[id].PasswordHash = hash
	return nil
}

type fakeTokens struct {
	mu     sync.Mutex
	tokens map[string]*RefreshToken
}

func newFakeTokens() *fakeTokens {
	return &fakeTokens{tokens: map[string]*RefreshToken{}}
}

func (f *fakeTokens) Create(_ context.Context, t *RefreshToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t.CreatedAt = time.Now()
	cp := *t
	f.tokens[t.ID] = &cp
	return nil
}

func (f *fakeTokens) FindByHash(_ context.Context, hash string) (*RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tokens {
		if t.TokenHash == hash {
			cp := *t
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeTokens) FindByID(_ context.Context, id string) (*RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tokens[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTokens) MarkAsUsed(_ context.Context, id, replacedByID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[id].Rotate(replacedByID, time.Now())
	return nil
}

func (f *fakeTokens) RevokeByID(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tokens[id]
	if !ok || t.Revoked() {
		return core.ErrNotFound
	}
	t.Revoke(time.Now())
	return nil
}

func (f *fakeTokens) RevokeByFamilyID(_ context.Context, familyID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tokens {
		if t.FamilyID == familyID && !t.Revoked() {
			t.Revoke(time.Now())
		}
	}
	return nil
}

func (f *fakeTokens) RevokeAllForUser(_ context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tokens {
		if t.UserID == userID && !t.Revoked() {
			t.Revoke(time.Now())
		}
	}
	return nil
}

func (f *fakeTokens) GetActiveSessionsForUser(
	_ context.Context,
	userID int64,
) ([]RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []RefreshToken
	for _, t := range f.tokens {
		if t.UserID == userID && t.Active(time.Now()) {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTokens) DeleteExpired(_ context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, t := range f.tokens {
		if t.ExpiresAt.Before(cutoff) {
			delete(f.tokens, id)
			n++
		}
	}
	return n, nil
}

type fixture struct {
	svc    *Service
	users  *fakeUsers
	tokens *fakeTokens
	redis  *miniredis.Miniredis
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	hasher, err := core.NewPasswordHasher(config.PasswordConfig{
		Memory:      1024,
		Iterations:  1,
		Parallelism: 1,
		KeyLength:   32,
	})
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	f := &fixture{
		users:  newFakeUsers(),
		tokens: newFakeTokens(),
		redis:  mr,
	}
	f.svc = NewService(f.tokens, newJWTManager(t), f.users, hasher, rdb, "test")
	return f
}

func register(t *testing.T, f *fixture, email string, role identity.Role) *AuthResponse {
	t.Helper()
	resp, err := f.svc.Register(context.Background(), RegisterRequest{
		Email:    email,
		Password: "correct-horse",
		Name:     "Someone",
		Role:     string(role),
	}, "test-agent", "127.0.0.1")
	require.NoError(t, err)
	return resp
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newJWTManager(t)

	token, expiresAt, err := m.CreateAccessToken(AccessTokenClaims{
		UserID:       42,
		Role:         identity.RoleCompany,
		TokenVersion: 3,
	})
	require.NoError(t, err)

	claims, err := m.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, identity.RoleCompany, claims.Role)
	assert.Equal(t, 3, claims.TokenVersion)
	assert.NotEmpty(t, claims.JTI)
	assert.WithinDuration(t, expiresAt, claims.ExpiresAt, time.Second)
}

func TestAccessTokenRejectsForeignKey(t *testing.T) {
	token, _, err := newJWTManager(t).CreateAccessToken(AccessTokenClaims{
		UserID: 1,
		Role:   identity.RoleCandidate,
	})
	require.NoError(t, err)

	_, err = newJWTManager(t).VerifyAccessToken(token)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)

	_, err = newJWTManager(t).VerifyAccessToken("not-a-jwt")
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp := register(t, f, "Jane@Example.com", identity.RoleCompany)
	assert.Equal(t, identity.RoleCompany, resp.User.Role)
	assert.Equal(t, "Bearer", resp.Tokens.TokenType)

	claims, err := f.svc.VerifyAccessToken(ctx, resp.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)

	_, err = f.svc.Login(ctx, LoginRequest{
		Email:    "jane@example.com",
		Password: "correct-horse",
	}, "", "")
	require.NoError(t, err)

	_, err = f.svc.Login(ctx, LoginRequest{
		Email:    "jane@example.com",
		Password: "wrong-password",
	}, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.svc.Login(ctx, LoginRequest{
		Email:    "nobody@example.com",
		Password: "correct-horse",
	}, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDefaultsToCandidate(t *testing.T) {
	f := newFixture(t)
	resp := register(t, f, "cand@example.com", "")
	assert.Equal(t, identity.RoleCandidate, resp.User.Role)
}

func TestLogoutBlacklistsAccessToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	resp := register(t, f, "a@example.com", identity.RoleCandidate)

	claims, err := f.svc.VerifyAccessToken(ctx, resp.Tokens.AccessToken)
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, claims, resp.Tokens.RefreshToken))
	assert.True(t, f.redis.Exists("test:blacklist:"+claims.JTI))

	_, err = f.svc.VerifyAccessToken(ctx, resp.Tokens.AccessToken)
	assert.ErrorIs(t, err, core.ErrTokenRevoked)

	_, err = f.svc.Refresh(ctx, resp.Tokens.RefreshToken, "", "")
	assert.ErrorIs(t, err, core.ErrTokenRevoked)
}

func TestLogoutAllInvalidatesOutstandingTokens(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	resp := register(t, f, "b@example.com", identity.RoleCandidate)

	require.NoError(t, f.svc.LogoutAll(ctx, resp.User.ID))

	_, err := f.svc.VerifyAccessToken(ctx, resp.Tokens.AccessToken)
	assert.ErrorIs(t, err, core.ErrTokenRevoked)
}

func TestRefreshRotationAndReuse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := register(t, f, "c@example.com", identity.RoleCandidate)

	second, err := f.svc.Refresh(ctx, first.Tokens.RefreshToken, "", "")
	require.NoError(t, err)
	assert.NotEqual(t, first.Tokens.RefreshToken, second.Tokens.RefreshToken)

	_, err = f.svc.Refresh(ctx, first.Tokens.RefreshToken, "", "")
	assert.ErrorIs(t, err, ErrTokenReuse)

	_, err = f.svc.Refresh(ctx, second.Tokens.RefreshToken, "", "")
	assert.ErrorIs(t, err, core.ErrTokenRevoked)
}

func TestChangePasswordRevokesSessions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	resp := register(t, f, "d@example.com", identity.RoleCandidate)

	err := f.svc.ChangePassword(ctx, resp.User.ID, "wrong-password", "new-password-1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, f.svc.ChangePassword(ctx, resp.User.ID, "correct-horse", "new-password-1"))

	sessions, err := f.svc.GetActiveSessions(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.Empty(t, sessions)

	_, err = f.svc.Login(ctx, LoginRequest{Email: "d@example.com", Password: "new-password-1"}, "", "")
	assert.NoError(t, err)
}

func TestRevokeSessionOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := register(t, f, "e@example.com", identity.RoleCandidate)
	other := register(t, f, "f@example.com", identity.RoleCandidate)

	sessions, err := f.svc.GetActiveSessions(ctx, owner.User.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	err = f.svc.RevokeSession(ctx, other.User.ID, sessions[0].ID)
	assert.ErrorIs(t, err, core.ErrForbidden)

	require.NoError(t, f.svc.RevokeSession(ctx, owner.User.ID, sessions[0].ID))
}

func TestPurgeExpiredSessions(t *testing.T) {
	f := newFixture(t)
	register(t, f, "g@example.com", identity.RoleCandidate)

	n, err := f.svc.PurgeExpiredSessions(context.Background(), time.Now().Add(48*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRefreshTokenCheckExchange(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fresh := func() *RefreshToken {
		return &RefreshToken{ID: "t1", ExpiresAt: now.Add(time.Hour)}
	}

	assert.NoError(t, fresh().CheckExchange(now))

	expired := fresh()
	expired.ExpiresAt = now
	assert.ErrorIs(t, expired.CheckExchange(now), core.ErrTokenExpired)

	revoked := fresh()
	revoked.Revoke(now)
	assert.ErrorIs(t, revoked.CheckExchange(now), core.ErrTokenRevoked)

	reused := fresh()
	reused.Revoke(now)
	reused.Rotate("t2", now)
	assert.ErrorIs(t, reused.CheckExchange(now), ErrTokenReuse)
	assert.False(t, reused.Active(now))

	first := now.Add(-time.Minute)
	twice := fresh()
	twice.Revoke(first)
	twice.Revoke(now)
	assert.Equal(t, first, *twice.RevokedAt)
}
