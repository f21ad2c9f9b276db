// AngelaMos | 2026
// dto.go

package company

import (
	"time"

	"github.com/carterperez-dev/jobboard/internal/core"
)

type CreateCompanyRequest struct {
	Name           string `json:"name"                      validate:"required,min=3,max=200"`
	Description    string `json:"description,omitempty"     validate:"max=500"`
	RegistrationID string `json:"registration_id,omitempty" validate:"max=32"`
	Website        string `json:"website,omitempty"         validate:"omitempty,url,max=255"`
}

// UpdateCompanyRequest is a patch: nil fields are left untouched.
type UpdateCompanyRequest struct {
	Name           *string `json:"name,omitempty"            validate:"omitempty,min=3,max=200"`
	Description    *string `json:"description,omitempty"     validate:"omitempty,max=500"`
	RegistrationID *string `json:"registration_id,omitempty" validate:"omitempty,max=32"`
	Website        *string `json:"website,omitempty"         validate:"omitempty,url,max=255"`
}

func (r UpdateCompanyRequest) Apply(c *Company) {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Description != nil {
		c.Description = *r.Description
	}
	if r.RegistrationID != nil {
		c.RegistrationID = *r.RegistrationID
	}
	if r.Website != nil {
		c.Website = *r.Website
	}
}

type ListCompaniesParams struct {
	Page core.PageRequest
	Name string
}

type CompanyResponse struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	RegistrationID string    `json:"registration_id,omitempty"`
	Website        string    `json:"website,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Summary is the company block embedded in job and application responses.
type Summary struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Website string `json:"website,omitempty"`
}

func ToCompanyResponse(c *Company) CompanyResponse {
	return CompanyResponse{
		ID:             c.ID,
		UserID:         c.UserID,
		Name:           c.Name,
		Description:    c.Description,
		RegistrationID: c.RegistrationID,
		Website:        c.Website,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
