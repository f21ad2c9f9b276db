// AngelaMos | 2026
// dto.go

package user

import (
	"time"

	"github.com/carterperez-dev/jobboard/internal/core"
	"github.com/carterperez-dev/jobboard/internal/identity"
)

type CreateUserRequest struct {
	Email    string `json:"email"          validate:"required,email,max=255"`
	Password string `json:"password"       validate:"required,min=8,max=128"`
	Name     string `json:"name"           validate:"required,min=1,max=100"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=CANDIDATE COMPANY ADMIN"`
}

type UpdateUserRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
}

type UserResponse struct {
	ID        int64         `json:"id"`
	Email     string        `json:"email"`
	Name      string        `json:"name"`
	Role      identity.Role `json:"role"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type ListUsersParams struct {
	Page   core.PageRequest
	Search string
	Role   identity.Role
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
