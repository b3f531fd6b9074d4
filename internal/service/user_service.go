package service

import (
	"context"
	"strings"
	"time"

	"github.com/spec-kit/helpdesk-sim/internal/clock"
	"github.com/spec-kit/helpdesk-sim/internal/domain"
	"github.com/spec-kit/helpdesk-sim/internal/events"
	"github.com/spec-kit/helpdesk-sim/internal/persistence"
	"github.com/spec-kit/helpdesk-sim/internal/repository"
	"github.com/spec-kit/helpdesk-sim/pkg/util"
)

// UserService manages the user registry. Emails and external ids are
// unique at creation time; updates apply partially and always bump
// updated_at.
type UserService struct {
	state      *persistence.State
	users      repository.UserRepository
	clk        clock.Clock
	dispatcher events.Dispatcher
}

// UserDependencies bundles collaborators for the user service.
type UserDependencies struct {
	State      *persistence.State
	UserRepo   repository.UserRepository
	Clock      clock.Clock
	Dispatcher events.Dispatcher
}

// NewUserService constructs the service.
func NewUserService(deps UserDependencies) *UserService {
	clk := deps.Clock
	if clk == nil {
		clk = clock.Real()
	}
	return &UserService{
		state:      deps.State,
		users:      deps.UserRepo,
		clk:        clk,
		dispatcher: deps.Dispatcher,
	}
}

// UserCreateInput describes the user creation payload.
type UserCreateInput struct {
	Name           string          `json:"name"`
	Email          string          `json:"email,omitempty"`
	Role           domain.UserRole `json:"role,omitempty"`
	OrganizationID *int64          `json:"organization_id,omitempty"`
	Tags           []string        `json:"tags,omitempty"`
	Phone          string          `json:"phone,omitempty"`
	Alias          string          `json:"alias,omitempty"`
	Details        string          `json:"details,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	ExternalID     string          `json:"external_id,omitempty"`
	Locale         string          `json:"locale,omitempty"`
	TimeZone       string          `json:"time_zone,omitempty"`
	Verified       bool            `json:"verified,omitempty"`
	Suspended      bool            `json:"suspended,omitempty"`
}

// UserUpdateInput describes a partial user patch.
type UserUpdateInput struct {
	Name           *string          `json:"name,omitempty"`
	Email          *string          `json:"email,omitempty"`
	Role           *domain.UserRole `json:"role,omitempty"`
	OrganizationID *int64           `json:"organization_id,omitempty"`
	Tags           []string         `json:"tags,omitempty"`
	Phone          *string          `json:"phone,omitempty"`
	Alias          *string          `json:"alias,omitempty"`
	Details        *string          `json:"details,omitempty"`
	Notes          *string          `json:"notes,omitempty"`
	ExternalID     *string          `json:"external_id,omitempty"`
	Locale         *string          `json:"locale,omitempty"`
	TimeZone       *string          `json:"time_zone,omitempty"`
	Verified       *bool            `json:"verified,omitempty"`
	Suspended      *bool            `json:"suspended,omitempty"`
	Active         *bool            `json:"active,omitempty"`
}

// CreateUser registers a user. Names are required, emails normalize to
// lowercase and must be unique, as must external ids.
func (s *UserService) CreateUser(ctx context.Context, input UserCreateInput) (domain.User, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return domain.User{}, util.NewValidationError("name cannot be empty or just whitespace", nil)
	}
	role := input.Role
	if role == "" {
		role = domain.UserRoleEndUser
	}
	if !domain.ValidUserRole(role) {
		return domain.User{}, invalidEnum("role", string(role))
	}

	s.state.Lock()
	defer s.state.Unlock()

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email != "" {
		if _, exists := s.users.FindByEmail(email); exists {
			return domain.User{}, util.NewUserAlreadyExists("email", email)
		}
	}
	if input.ExternalID != "" {
		if _, exists := s.users.FindByExternalID(input.ExternalID); exists {
			return domain.User{}, util.NewUserAlreadyExists("external_id", input.ExternalID)
		}
	}

	now := s.now()
	user := &domain.User{
		ID:             s.state.IDs.Allocate(persistence.NamespaceUser),
		Name:           name,
		Email:          email,
		Role:           role,
		Active:         true,
		OrganizationID: input.OrganizationID,
		Tags:           append([]string(nil), input.Tags...),
		Phone:          input.Phone,
		Alias:          input.Alias,
		Details:        input.Details,
		Notes:          input.Notes,
		ExternalID:     input.ExternalID,
		Locale:         input.Locale,
		TimeZone:       input.TimeZone,
		Verified:       input.Verified,
		Suspended:      input.Suspended,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	user.URL = persistence.UserURL(user.ID)
	s.users.Insert(user)

	publishEvent(ctx, s.dispatcher, s.clk, events.Event{
		Type:    events.EventUserCreated,
		ActorID: user.ID,
		Payload: events.UserCreatedPayload{
			UserID: user.ID,
			Role:   user.Role,
			Email:  user.Email,
		},
	})

	return user.Clone(), nil
}

// ListUsers returns snapshots of all users ordered by id.
func (s *UserService) ListUsers(ctx context.Context) []domain.User {
	s.state.Lock()
	defer s.state.Unlock()

	stored := s.users.List()
	out := make([]domain.User, 0, len(stored))
	for _, u := range stored {
		out = append(out, u.Clone())
	}
	return out
}

// ShowUser returns a snapshot of one user.
func (s *UserService) ShowUser(ctx context.Context, id int64) (domain.User, error) {
	s.state.Lock()
	defer s.state.Unlock()

	user, ok := s.users.Get(id)
	if !ok {
		return domain.User{}, util.NewUserNotFound(id)
	}
	return user.Clone(), nil
}

// UpdateUser applies a partial patch and bumps updated_at.
func (s *UserService) UpdateUser(ctx context.Context, id int64, patch UserUpdateInput) (domain.User, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return domain.User{}, util.NewValidationError("name cannot be empty or just whitespace", nil)
	}
	if patch.Role != nil && !domain.ValidUserRole(*patch.Role) {
		return domain.User{}, invalidEnum("role", string(*patch.Role))
	}

	s.state.Lock()
	defer s.state.Unlock()

	user, ok := s.users.Get(id)
	if !ok {
		return domain.User{}, util.NewUserNotFound(id)
	}

	if patch.Name != nil {
		user.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*patch.Email))
	}
	if patch.Role != nil {
		user.Role = *patch.Role
	}
	if patch.OrganizationID != nil {
		user.OrganizationID = patch.OrganizationID
	}
	if patch.Tags != nil {
		user.Tags = append([]string(nil), patch.Tags...)
	}
	if patch.Phone != nil {
		user.Phone = *patch.Phone
	}
	if patch.Alias != nil {
		user.Alias = *patch.Alias
	}
	if patch.Details != nil {
		user.Details = *patch.Details
	}
	if patch.Notes != nil {
		user.Notes = *patch.Notes
	}
	if patch.ExternalID != nil {
		user.ExternalID = *patch.ExternalID
	}
	if patch.Locale != nil {
		user.Locale = *patch.Locale
	}
	if patch.TimeZone != nil {
		user.TimeZone = *patch.TimeZone
	}
	if patch.Verified != nil {
		user.Verified = *patch.Verified
	}
	if patch.Suspended != nil {
		user.Suspended = *patch.Suspended
	}
	if patch.Active != nil {
		user.Active = *patch.Active
	}
	user.UpdatedAt = s.now()

	return user.Clone(), nil
}

// DeleteUser removes a user and returns the final record.
func (s *UserService) DeleteUser(ctx context.Context, id int64) (domain.User, error) {
	s.state.Lock()
	defer s.state.Unlock()

	user, ok := s.users.Delete(id)
	if !ok {
		return domain.User{}, util.NewUserNotFound(id)
	}

	publishEvent(ctx, s.dispatcher, s.clk, events.Event{
		Type:    events.EventUserDeleted,
		ActorID: user.ID,
		Payload: events.UserDeletedPayload{
			UserID: user.ID,
			Role:   user.Role,
		},
	})

	return user.Clone(), nil
}

func (s *UserService) now() time.Time {
	return s.clk.Now().UTC().Truncate(time.Second)
}
