package service

import (
	"context"
	"testing"
	"time"

	"github.com/spec-kit/helpdesk-sim/internal/domain"
	"github.com/spec-kit/helpdesk-sim/internal/events"
	"github.com/spec-kit/helpdesk-sim/pkg/util"
)

func TestCreateUserDefaults(t *testing.T) {
	f := newFixture()

	user, err := f.users.CreateUser(context.Background(), UserCreateInput{
		Name:  "  Morgan Hale  ",
		Email: "Morgan.Hale@Example.COM",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if user.ID != 1 {
		t.Errorf("id = %d, want 1", user.ID)
	}
	if user.Name != "Morgan Hale" {
		t.Errorf("name = %q, want trimmed", user.Name)
	}
	if user.Email != "morgan.hale@example.com" {
		t.Errorf("email = %q, want lowercased", user.Email)
	}
	if user.Role != domain.UserRoleEndUser {
		t.Errorf("role = %q, want default end-user", user.Role)
	}
	if !user.Active {
		t.Error("active = false, want true")
	}
	if user.URL != "/api/v2/users/1.json" {
		t.Errorf("url = %q", user.URL)
	}
	if !user.CreatedAt.Equal(fixtureStart) || !user.UpdatedAt.Equal(fixtureStart) {
		t.Errorf("timestamps = %v/%v", user.CreatedAt, user.UpdatedAt)
	}

	published := f.dispatcher.byType(events.EventUserCreated)
	if len(published) != 1 {
		t.Fatalf("user_created events = %d, want 1", len(published))
	}
	payload := published[0].Payload.(events.UserCreatedPayload)
	if payload.UserID != 1 || payload.Role != domain.UserRoleEndUser {
		t.Errorf("payload = %+v", payload)
	}
}

func TestCreateUserValidation(t *testing.T) {
	tests := []struct {
		name     string
		input    UserCreateInput
		wantCode string
	}{
		{"blank name", UserCreateInput{Name: "   "}, util.CodeValidation},
		{"bad role", UserCreateInput{Name: "x", Role: "superuser"}, util.CodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.users.CreateUser(context.Background(), tt.input)
			if util.CodeOf(err) != tt.wantCode {
				t.Fatalf("error = %v, want %s", err, tt.wantCode)
			}
		})
	}
}

func TestCreateUserUniqueEmail(t *testing.T) {
	f := newFixture()
	f.seedUser(t, "Riley Chen", "riley@example.com")

	_, err := f.users.CreateUser(context.Background(), UserCreateInput{
		Name:  "Riley Again",
		Email: "RILEY@example.com",
	})
	if util.CodeOf(err) != util.CodeUserAlreadyExists {
		t.Fatalf("error = %v, want %s", err, util.CodeUserAlreadyExists)
	}
	if got := len(f.users.ListUsers(context.Background())); got != 1 {
		t.Fatalf("users after rejected create = %d, want 1", got)
	}
}

func TestCreateUserUniqueExternalID(t *testing.T) {
	f := newFixture()
	if _, err := f.users.CreateUser(context.Background(), UserCreateInput{
		Name: "First", ExternalID: "crm-77",
	}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	_, err := f.users.CreateUser(context.Background(), UserCreateInput{
		Name: "Second", ExternalID: "crm-77",
	})
	if util.CodeOf(err) != util.CodeUserAlreadyExists {
		t.Fatalf("error = %v, want %s", err, util.CodeUserAlreadyExists)
	}
}

func TestUpdateUserPartial(t *testing.T) {
	f := newFixture()
	user := f.seedUser(t, "Riley Chen", "riley@example.com")
	f.clk.Advance(time.Minute)

	updated, err := f.users.UpdateUser(context.Background(), user.ID, UserUpdateInput{
		Phone: ptr("+1-555-0100"),
		Email: ptr("Riley.Chen@Example.com"),
		Role:  ptr(domain.UserRoleAgent),
	})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}

	if updated.Name != "Riley Chen" {
		t.Errorf("name = %q, untouched field changed", updated.Name)
	}
	if updated.Phone != "+1-555-0100" || updated.Email != "riley.chen@example.com" {
		t.Errorf("user = phone %q email %q", updated.Phone, updated.Email)
	}
	if updated.Role != domain.UserRoleAgent {
		t.Errorf("role = %q, want agent", updated.Role)
	}
	if !updated.UpdatedAt.Equal(fixtureStart.Add(time.Minute)) {
		t.Errorf("updated_at = %v, want bumped", updated.UpdatedAt)
	}
	if !updated.CreatedAt.Equal(fixtureStart) {
		t.Errorf("created_at = %v, want unchanged", updated.CreatedAt)
	}
}

func TestUpdateUserActiveFlag(t *testing.T) {
	f := newFixture()
	user := f.seedUser(t, "Riley Chen", "riley@example.com")

	updated, err := f.users.UpdateUser(context.Background(), user.ID, UserUpdateInput{Active: ptr(false)})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if updated.Active {
		t.Fatal("active = true, want deactivated")
	}
}

func TestUpdateUserValidation(t *testing.T) {
	f := newFixture()
	user := f.seedUser(t, "Riley Chen", "riley@example.com")

	if _, err := f.users.UpdateUser(context.Background(), user.ID, UserUpdateInput{Name: ptr(" ")}); util.CodeOf(err) != util.CodeValidation {
		t.Errorf("blank name error = %v, want %s", err, util.CodeValidation)
	}
	if _, err := f.users.UpdateUser(context.Background(), user.ID, UserUpdateInput{Role: ptr(domain.UserRole("root"))}); util.CodeOf(err) != util.CodeValidation {
		t.Errorf("bad role error = %v, want %s", err, util.CodeValidation)
	}
	if _, err := f.users.UpdateUser(context.Background(), 404, UserUpdateInput{}); util.CodeOf(err) != util.CodeUserNotFound {
		t.Errorf("unknown user error = %v, want %s", err, util.CodeUserNotFound)
	}
}

func TestDeleteUser(t *testing.T) {
	f := newFixture()
	user := f.seedUser(t, "Riley Chen", "riley@example.com")

	removed, err := f.users.DeleteUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if removed.Name != "Riley Chen" {
		t.Errorf("removed = %+v", removed)
	}

	if _, err := f.users.ShowUser(context.Background(), user.ID); util.CodeOf(err) != util.CodeUserNotFound {
		t.Fatalf("show after delete = %v, want %s", err, util.CodeUserNotFound)
	}
	if len(f.dispatcher.byType(events.EventUserDeleted)) != 1 {
		t.Error("user_deleted event not published")
	}

	if _, err := f.users.DeleteUser(context.Background(), user.ID); util.CodeOf(err) != util.CodeUserNotFound {
		t.Fatalf("second delete = %v, want %s", err, util.CodeUserNotFound)
	}
}

func TestListUsersOrdered(t *testing.T) {
	f := newFixture()
	f.seedUser(t, "B", "b@example.com")
	f.seedUser(t, "A", "a@example.com")

	users := f.users.ListUsers(context.Background())
	if len(users) != 2 || users[0].ID != 1 || users[1].ID != 2 {
		t.Fatalf("users = %+v, want id order", users)
	}
}
