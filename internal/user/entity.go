// AngelaMos | 2026
// entity.go

package user

import (
	"github.com/carterperez-dev/jobboard/internal/core"
	"github.com/carterperez-dev/jobboard/internal/identity"
)

type User struct {
	ID           int64         `db:"id"`
	Email        string        `db:"email"`
	PasswordHash string        `db:"password_hash"`
	Name         string        `db:"name"`
	Role         identity.Role `db:"role"`
	TokenVersion int           `db:"token_version"`
	core.Timestamps
}

func (u *User) IsAdmin() bool {
	return u.Role == identity.RoleAdmin
}

func (u *User) Principal() identity.Principal {
	return identity.New(u.ID, u.Role)
}

var ErrEmailExists = core.NewDomainError(
	core.ErrConflict,
	"EMAIL_EXISTS",
	"email already registered",
)
