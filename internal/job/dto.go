// AngelaMos | 2026
// dto.go

package job

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/jobboard/internal/company"
	"github.com/carterperez-dev/jobboard/internal/core"
	"github.com/carterperez-dev/jobboard/internal/lifecycle"
)

type CreateJobRequest struct {
	Title       string           `json:"title"                 validate:"required,min=3,max=200"`
	Description string           `json:"description,omitempty" validate:"max=2000"`
	Location    string           `json:"location"              validate:"required,max=200"`
	SalaryMin   *decimal.Decimal `json:"salary_min,omitempty"`
	SalaryMax   *decimal.Decimal `json:"salary_max,omitempty"`
}

func (r CreateJobRequest) CheckSalary() error {
	return checkSalaryRange(r.SalaryMin, r.SalaryMax)
}

// UpdateJobRequest is a patch: nil fields are left untouched. Status goes
// through the lifecycle machine.
type UpdateJobRequest struct {
	Title       *string          `json:"title,omitempty"       validate:"omitempty,min=3,max=200"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=2000"`
	Location    *string          `json:"location,omitempty"    validate:"omitempty,min=1,max=200"`
	SalaryMin   *decimal.Decimal `json:"salary_min,omitempty"`
	SalaryMax   *decimal.Decimal `json:"salary_max,omitempty"`
	Status      *string          `json:"status,omitempty"      validate:"omitempty,oneof=OPEN CLOSED PAUSED"`
}

func (r UpdateJobRequest) CheckSalary() error {
	return checkSalaryRange(r.SalaryMin, r.SalaryMax)
}

func (r UpdateJobRequest) apply(j *Job) {
	if r.Title != nil {
		j.Title = *r.Title
	}
	if r.Description != nil {
		j.Description = *r.Description
	}
	if r.Location != nil {
		j.Location = *r.Location
	}
	if r.SalaryMin != nil {
		j.SalaryMin = decimal.NewNullDecimal(*r.SalaryMin)
	}
	if r.SalaryMax != nil {
		j.SalaryMax = decimal.NewNullDecimal(*r.SalaryMax)
	}
}

func checkSalaryRange(lo, hi *decimal.Decimal) error {
	if lo != nil && lo.IsNegative() {
		return core.ValidationError("salary_min must not be negative")
	}
	if hi != nil && hi.IsNegative() {
		return core.ValidationError("salary_max must not be negative")
	}
	if lo != nil && hi != nil && lo.GreaterThan(*hi) {
		return core.ValidationError("salary_min must not exceed salary_max")
	}
	return nil
}

// SearchParams are AND-ed. Empty values are ignored.
type SearchParams struct {
	Page        core.PageRequest
	Title       string
	CompanyID   int64
	CompanyName string
	Status      lifecycle.JobStatus
}

type JobResponse struct {
	ID          int64               `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Location    string              `json:"location"`
	Status      lifecycle.JobStatus `json:"status"`
	SalaryMin   decimal.NullDecimal `json:"salary_min"`
	SalaryMax   decimal.NullDecimal `json:"salary_max"`
	Company     company.Summary     `json:"company"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// Summary is the job block embedded in application responses.
type Summary struct {
	ID      int64           `json:"id"`
	Title   string          `json:"title"`
	Company company.Summary `json:"company"`
}

func ToJobResponse(j *Job) JobResponse {
	return JobResponse{
		ID:          j.ID,
		Title:       j.Title,
		Description: j.Description,
		Location:    j.Location,
		Status:      j.Status,
		SalaryMin:   j.SalaryMin,
		SalaryMax:   j.SalaryMax,
		Company: company.Summary{
			ID:      j.CompanyID,
			Name:    j.CompanyName,
			Website: j.CompanyWebsite,
		},
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}
