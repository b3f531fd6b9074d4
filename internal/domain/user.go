package domain

import "time"

// UserRole enumerates the simulated account roles.
type UserRole string

const (
	UserRoleEndUser UserRole = "end-user"
	UserRoleAgent   UserRole = "agent"
	UserRoleAdmin   UserRole = "admin"
)

// ValidUserRole reports whether r is one of the enumerated roles.
func ValidUserRole(r UserRole) bool {
	switch r {
	case UserRoleEndUser, UserRoleAgent, UserRoleAdmin:
		return true
	}
	return false
}

// User is the domain model for people referenced by tickets and
// comments. Ticket operations store requester/assignee ids verbatim;
// only the comment surface checks authors against this registry.
type User struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email,omitempty"`
	Role           UserRole  `json:"role"`
	Active         bool      `json:"active"`
	OrganizationID *int64    `json:"organization_id,omitempty"`
	Tags           []string  `json:"tags,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Alias          string    `json:"alias,omitempty"`
	Details        string    `json:"details,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	ExternalID     string    `json:"external_id,omitempty"`
	Locale         string    `json:"locale,omitempty"`
	TimeZone       string    `json:"time_zone,omitempty"`
	Verified       bool      `json:"verified"`
	Suspended      bool      `json:"suspended"`
	URL            string    `json:"url"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Clone returns an independent copy.
func (u User) Clone() User {
	out := u
	out.Tags = append([]string(nil), u.Tags...)
	out.OrganizationID = cloneInt64Ptr(u.OrganizationID)
	return out
}
