package dto

import (
	"github.com/spec-kit/helpdesk-sim/internal/domain"
	"github.com/spec-kit/helpdesk-sim/internal/service"
)

// UpdateUserRequest payload. Patch fields decode flat alongside the
// user id.
type UpdateUserRequest struct {
	UserID int64 `json:"user_id"`
	service.UserUpdateInput
}

// UserIDRequest addresses one user.
type UserIDRequest struct {
	UserID int64 `json:"user_id"`
}

// UserEnvelope wraps a user mutation result.
type UserEnvelope struct {
	Success bool        `json:"success"`
	User    domain.User `json:"user"`
}
