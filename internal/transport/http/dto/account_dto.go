package dto

import (
	"strings"

	"github.com/jumush/backend/internal/core/ports"
	"github.com/jumush/backend/internal/domain"
)

type RegisterRequest struct {
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	RegionID    uint   `json:"region_id"`
	SubregionID *uint  `json:"subregion_id,omitempty"`
}

func (r *RegisterRequest) Validate() []string {
	var errors []string

	if strings.TrimSpace(r.Email) == "" {
		errors = append(errors, "email is required")
	} else if !strings.Contains(r.Email, "@") {
		errors = append(errors, "email is not valid")
	}

	if len(r.Password) < 8 {
		errors = append(errors, "password must be at least 8 characters")
	}

	if r.Role == "" {
		errors = append(errors, "role is required")
	} else if r.Role != string(domain.RoleCustomer) && r.Role != string(domain.RoleExecutor) {
		errors = append(errors, "role must be one of: customer, executor")
	}

	if r.RegionID == 0 {
		errors = append(errors, "region_id is required")
	}

	return errors
}

func (r *RegisterRequest) ToInput() ports.RegisterInput {
	return ports.RegisterInput{
		Email:       r.Email,
		Phone:       r.Phone,
		Password:    r.Password,
		Role:        domain.Role(r.Role),
		RegionID:    r.RegionID,
		SubregionID: r.SubregionID,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type ResetPasswordRequest struct {
	Email string `json:"email"`
}

type ConfirmResetRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

type UpdateProfileRequest struct {
	Phone       *string `json:"phone,omitempty"`
	SubregionID *uint   `json:"subregion_id,omitempty"`
}

type TopUpRequest struct {
	Amount int64 `json:"amount"`
}

func (r *TopUpRequest) Validate() []string {
	if r.Amount <= 0 {
		return []string{"amount must be a positive amount"}
	}
	return nil
}
