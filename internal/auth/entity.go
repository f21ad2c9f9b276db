// AngelaMos | 2026
// entity.go

package auth

import (
	"fmt"
	"time"

	"github.com/carterperez-dev/jobboard/internal/core"
)

// RefreshToken is one link of a rotation family. Presenting a token that was
// already rotated revokes the whole family.
type RefreshToken struct {
	ID           string     `db:"id"`
	UserID       int64      `db:"user_id"`
	TokenHash    string     `db:"token_hash"`
	FamilyID     string     `db:"family_id"`
	ExpiresAt    time.Time  `db:"expires_at"`
	CreatedAt    time.Time  `db:"created_at"`
	IsUsed       bool       `db:"is_used"`
	UsedAt       *time.Time `db:"used_at"`
	RevokedAt    *time.Time `db:"revoked_at"`
	ReplacedByID *string    `db:"replaced_by_id"`
	UserAgent    string     `db:"user_agent"`
	IPAddress    string     `db:"ip_address"`
}

func (t *RefreshToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

func (t *RefreshToken) Revoked() bool {
	return t.RevokedAt != nil
}

// Active reports whether the token still backs a session.
func (t *RefreshToken) Active(now time.Time) bool {
	return !t.IsUsed && !t.Revoked() && !t.Expired(now)
}

// CheckExchange returns nil when the token may be exchanged at now. Reuse is
// reported before revocation and expiry.
func (t *RefreshToken) CheckExchange(now time.Time) error {
	switch {
	case t.IsUsed:
		return ErrTokenReuse
	case t.Revoked():
		return fmt.Errorf("refresh: %w", core.ErrTokenRevoked)
	case t.Expired(now):
		return fmt.Errorf("refresh: %w", core.ErrTokenExpired)
	}
	return nil
}

func (t *RefreshToken) Rotate(replacedByID string, now time.Time) {
	t.IsUsed = true
	t.UsedAt = &now
	t.ReplacedByID = &replacedByID
}

func (t *RefreshToken) Revoke(now time.Time) {
	if t.RevokedAt == nil {
		t.RevokedAt = &now
	}
}

func (t *RefreshToken) Session() SessionInfo {
	return SessionInfo{
		ID:        t.ID,
		UserAgent: t.UserAgent,
		IPAddress: t.IPAddress,
		CreatedAt: t.CreatedAt,
		ExpiresAt: t.ExpiresAt,
	}
}
