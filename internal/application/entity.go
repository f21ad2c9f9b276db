// AngelaMos | 2026
// entity.go

package application

import (
	"github.com/carterperez-dev/jobboard/internal/core"
	"github.com/carterperez-dev/jobboard/internal/lifecycle"
)

// Application is a candidate's submission to a job. The joined fields resolve
// the candidate and the job's owning company for responses and policy checks.
type Application struct {
	ID          int64                       `db:"id"`
	CandidateID int64                       `db:"candidate_id"`
	JobID       int64                       `db:"job_id"`
	CoverLetter string                      `db:"cover_letter"`
	Status      lifecycle.ApplicationStatus `db:"status"`
	core.Timestamps

	CandidateName  string `db:"candidate_name"`
	CandidateEmail string `db:"candidate_email"`
	JobTitle       string `db:"job_title"`
	CompanyID      int64  `db:"company_id"`
	CompanyName    string `db:"company_name"`
	CompanyWebsite string `db:"company_website"`
	CompanyOwnerID int64  `db:"company_owner_id"`
}

func (a *Application) CandidateUserID() int64 {
	return a.CandidateID
}

func (a *Application) CompanyOwnerUserID() int64 {
	return a.CompanyOwnerID
}
