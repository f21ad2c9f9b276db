// AngelaMos | 2026
// users.go

package memstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/carterperez-dev/jobboard/internal/core"
	"github.com/carterperez-dev/jobboard/internal/identity"
	"github.com/carterperez-dev/jobboard/internal/user"
)

var userSorts = sortKeys[user.User]{
	"name":       func(a, b *user.User) int { return strings.Compare(a.Name, b.Name) },
	"email":      func(a, b *user.User) int { return strings.Compare(a.Email, b.Email) },
	"created_at": func(a, b *user.User) int { return byTime(a.CreatedAt, b.CreatedAt) },
}

type userRepo struct {
	s *Store
}

func (r *userRepo) WithTx(core.DBTX) user.Repository {
	return r
}

func (r *userRepo) Create(_ context.Context, u *user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.IsLive() && existing.Email == u.Email {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
	}

	now := r.s.tick()
	u.ID = r.s.nextID()
	u.TokenVersion = 0
	u.CreatedAt = now
	u.UpdatedAt = now
	u.DeletedAt = nil

	r.s.users[u.ID] = *u
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id int64) (*user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok || !u.IsLive() {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	return &u, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.IsLive() && u.Email == email {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
}

func (r *userRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, core.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (r *userRepo) Update(_ context.Context, u *user.User) error {
	return r.mutate(u.ID, "update user", func(stored *user.User) {
		stored.Name = u.Name
		stored.UpdatedAt = r.s.tick()
		u.UpdatedAt = stored.UpdatedAt
	})
}

func (r *userRepo) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	return r.mutate(id, "update password", func(stored *user.User) {
		stored.PasswordHash = passwordHash
		stored.UpdatedAt = r.s.tick()
	})
}

func (r *userRepo) IncrementTokenVersion(_ context.Context, id int64) error {
	return r.mutate(id, "increment token version", func(stored *user.User) {
		stored.TokenVersion++
		stored.UpdatedAt = r.s.tick()
	})
}

func (r *userRepo) List(
	_ context.Context,
	params user.ListUsersParams,
) ([]user.User, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []user.User
	for _, u := range r.s.users {
		if !u.IsLive() {
			continue
		}
		if params.Search != "" &&
			!containsFold(u.Email, params.Search) &&
			!containsFold(u.Name, params.Search) {
			continue
		}
		if params.Role != "" && u.Role != params.Role {
			continue
		}
		out = append(out, u)
	}

	items, total := paginate(out, params.Page, userSorts, "created_at",
		func(u *user.User) int64 { return u.ID })
	return items, total, nil
}

func (r *userRepo) CountByRole(context.Context) (map[identity.Role]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	counts := make(map[identity.Role]int)
	for _, u := range r.s.users {
		if u.IsLive() {
			counts[u.Role]++
		}
	}
	return counts, nil
}

func (r *userRepo) mutate(id int64, op string, fn func(*user.User)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok || !u.IsLive() {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}

	fn(&u)
	r.s.users[id] = u
	return nil
}
