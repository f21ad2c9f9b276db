// AngelaMos | 2026
// dto.go

package application

import (
	"time"

	"github.com/carterperez-dev/jobboard/internal/company"
	"github.com/carterperez-dev/jobboard/internal/core"
	"github.com/carterperez-dev/jobboard/internal/job"
	"github.com/carterperez-dev/jobboard/internal/lifecycle"
)

type CreateApplicationRequest struct {
	JobID       int64  `json:"job_id"                 validate:"required,gt=0"`
	CoverLetter string `json:"cover_letter,omitempty" validate:"max=1000"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING ACCEPTED REJECTED"`
}

type ListByJobParams struct {
	Page   core.PageRequest
	JobID  int64
	Status lifecycle.ApplicationStatus
}

type CandidateSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ApplicationResponse struct {
	ID          int64                       `json:"id"`
	Status      lifecycle.ApplicationStatus `json:"status"`
	CoverLetter string                      `json:"cover_letter,omitempty"`
	Candidate   CandidateSummary            `json:"candidate"`
	Job         job.Summary                 `json:"job"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

func ToApplicationResponse(a *Application) ApplicationResponse {
	return ApplicationResponse{
		ID:          a.ID,
		Status:      a.Status,
		CoverLetter: a.CoverLetter,
		Candidate: CandidateSummary{
			ID:    a.CandidateID,
			Name:  a.CandidateName,
			Email: a.CandidateEmail,
		},
		Job: job.Summary{
			ID:    a.JobID,
			Title: a.JobTitle,
			Company: company.Summary{
				ID:      a.CompanyID,
				Name:    a.CompanyName,
				Website: a.CompanyWebsite,
			},
		},
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
