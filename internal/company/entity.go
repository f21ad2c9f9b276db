// AngelaMos | 2026
// entity.go

package company

import "github.com/carterperez-dev/jobboard/internal/core"

type Company struct {
	ID             int64  `db:"id"`
	UserID         int64  `db:"user_id"`
	Name           string `db:"name"`
	Description    string `db:"description"`
	RegistrationID string `db:"registration_id"`
	Website        string `db:"website"`
	core.Timestamps
}

func (c *Company) OwnerUserID() int64 {
	return c.UserID
}
