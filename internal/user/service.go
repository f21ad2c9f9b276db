// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/jobboard/internal/auth"
	"github.com/carterperez-dev/jobboard/internal/core"
	"github.com/carterperez-dev/jobboard/internal/identity"
	"github.com/carterperez-dev/jobboard/internal/lifecycle"
	"github.com/carterperez-dev/jobboard/internal/metrics"
	"github.com/carterperez-dev/jobboard/internal/policy"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
}

type Service struct {
	repo    Repository
	tx      core.Transactor
	hasher  PasswordHasher
	metrics *metrics.Metrics
}

func NewService(
	repo Repository,
	tx core.Transactor,
	hasher PasswordHasher,
	m *metrics.Metrics,
) *Service {
	return &Service{
		repo:    repo,
		tx:      tx,
		hasher:  hasher,
		metrics: m,
	}
}

// Create registers a user on behalf of p, which may be anonymous. The role
// defaults to CANDIDATE; only an admin may create another admin.
func (s *Service) Create(
	ctx context.Context,
	p identity.Principal,
	req CreateUserRequest,
) (_ *User, err error) {
	ctx, span := core.StartSpan(ctx, "user.Create")
	defer func() { core.EndSpan(span, err) }()

	role := identity.RoleCandidate
	if req.Role != "" {
		if role, err = identity.ParseRole(req.Role); err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
	}

	decision := policy.CanCreateUserWithRole(p, role)
	if err = policy.Enforce(s.metrics, "user.Create", decision); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return s.create(ctx, req.Email, hash, req.Name, role)
}

func (s *Service) create(
	ctx context.Context,
	email, passwordHash, name string,
	role identity.Role,
) (*User, error) {
	user := &User{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
		Name:         strings.TrimSpace(name),
		Role:         role,
	}

	err := s.tx.InTx(ctx, func(tx core.DBTX) error {
		repo := s.repo.WithTx(tx)

		exists, err := repo.ExistsByEmail(ctx, user.Email)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("create user: %w", ErrEmailExists)
		}

		return lifecycle.Conflict(repo.Create(ctx, user), ErrEmailExists)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncrementCreated("user")
	return user, nil
}

func (s *Service) Get(
	ctx context.Context,
	p identity.Principal,
	id int64,
) (_ *User, err error) {
	ctx, span := core.StartSpan(ctx, "user.Get",
		attribute.Int64("user.id", id))
	defer func() { core.EndSpan(span, err) }()

	if err = policy.Enforce(s.metrics, "user.Get", policy.CanViewUser(p)); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(
	ctx context.Context,
	p identity.Principal,
	params ListUsersParams,
) (_ core.Page[User], err error) {
	ctx, span := core.StartSpan(ctx, "user.List")
	defer func() { core.EndSpan(span, err) }()

	if err = policy.Enforce(s.metrics, "user.List", policy.CanListUsers(p)); err != nil {
		return core.Page[User]{}, err
	}

	users, total, err := s.repo.List(ctx, params)
	if err != nil {
		return core.Page[User]{}, err
	}

	return core.NewPage(users, total, params.Page), nil
}

func (s *Service) GetMe(
	ctx context.Context,
	p identity.Principal,
) (_ *User, err error) {
	ctx, span := core.StartSpan(ctx, "user.GetMe")
	defer func() { core.EndSpan(span, err) }()

	if err = policy.Enforce(s.metrics, "user.GetMe", policy.CanViewUser(p)); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, p.UserID)
}

func (s *Service) UpdateMe(
	ctx context.Context,
	p identity.Principal,
	req UpdateUserRequest,
) (_ *User, err error) {
	ctx, span := core.StartSpan(ctx, "user.UpdateMe")
	defer func() { core.EndSpan(span, err) }()

	if err = policy.Enforce(s.metrics, "user.UpdateMe", policy.CanViewUser(p)); err != nil {
		return nil, err
	}

	var user *User
	err = s.tx.InTx(ctx, func(tx core.DBTX) error {
		repo := s.repo.WithTx(tx)

		var err error
		if user, err = repo.GetByID(ctx, p.UserID); err != nil {
			return err
		}

		if req.Name != nil {
			user.Name = strings.TrimSpace(*req.Name)
		}

		return repo.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// CountByRole backs the admin board statistics.
func (s *Service) CountByRole(ctx context.Context) (map[identity.Role]int, error) {
	return s.repo.CountByRole(ctx)
}

func (s *Service) GetByID(
	ctx context.Context,
	id int64,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

// CreateAccount is the self-registration path used by auth. The password is
// already hashed.
func (s *Service) CreateAccount(
	ctx context.Context,
	email, passwordHash, name string,
	role identity.Role,
) (*auth.UserInfo, error) {
	if role == identity.RoleAdmin || !role.Valid() {
		return nil, fmt.Errorf("create account: role %q: %w", role, core.ErrInvalidInput)
	}

	user, err := s.create(ctx, email, passwordHash, name, role)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) IncrementTokenVersion(ctx context.Context, id int64) error {
	return s.repo.IncrementTokenVersion(ctx, id)
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	id int64,
	passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, id, passwordHash)
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		TokenVersion: u.TokenVersion,
		CreatedAt:    u.CreatedAt,
	}
}

var _ auth.UserProvider = (*Service)(nil)
