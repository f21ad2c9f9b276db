// AngelaMos | 2026
// entity.go

package job

import (
	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/jobboard/internal/core"
	"github.com/carterperez-dev/jobboard/internal/lifecycle"
)

// Job is a vacancy. The Company* fields are read through a join on the live
// owning company and are never written.
type Job struct {
	ID          int64               `db:"id"`
	CompanyID   int64               `db:"company_id"`
	Title       string              `db:"title"`
	Description string              `db:"description"`
	Location    string              `db:"location"`
	SalaryMin   decimal.NullDecimal `db:"salary_min"`
	SalaryMax   decimal.NullDecimal `db:"salary_max"`
	Status      lifecycle.JobStatus `db:"status"`
	core.Timestamps

	CompanyName    string `db:"company_name"`
	CompanyWebsite string `db:"company_website"`
	CompanyOwnerID int64  `db:"company_owner_id"`
}

func (j *Job) CompanyOwnerUserID() int64 {
	return j.CompanyOwnerID
}
