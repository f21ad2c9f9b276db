// AngelaMos | 2026
// principal.go

package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/carterperez-dev/jobboard/internal/core"
)

type Role string

const (
	RoleCandidate Role = "CANDIDATE"
	RoleCompany   Role = "COMPANY"
	RoleAdmin     Role = "ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCandidate, RoleCompany, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("parse role %q: %w", s, core.ErrInvalidInput)
	}
	return r, nil
}

// Principal is the verified acting user of one request. The zero value is
// the anonymous principal.
type Principal struct {
	UserID int64
	Role   Role
}

func New(userID int64, role Role) Principal {
	return Principal{UserID: userID, Role: role}
}

func (p Principal) IsAuthenticated() bool {
	return p.UserID > 0 && p.Role.Valid()
}

func (p Principal) Is(role Role) bool {
	return p.IsAuthenticated() && p.Role == role
}

func (p Principal) Owns(userID int64) bool {
	return p.IsAuthenticated() && p.UserID == userID
}

type ctxKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// FromContext returns the principal attached by the transport, or
// ErrUnauthorized when the request carries none.
func FromContext(ctx context.Context) (Principal, error) {
	p, ok := ctx.Value(ctxKey{}).(Principal)
	if !ok || !p.IsAuthenticated() {
		return Principal{}, fmt.Errorf("identity: %w", core.ErrUnauthorized)
	}
	return p, nil
}

// Optional returns the attached principal or the anonymous one.
func Optional(ctx context.Context) Principal {
	p, _ := ctx.Value(ctxKey{}).(Principal) //nolint:errcheck // zero value is anonymous
	return p
}
