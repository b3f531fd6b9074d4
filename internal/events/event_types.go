package events

import (
	"time"

	"github.com/spec-kit/helpdesk-sim/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated EventType = "ticket_created"
	EventTicketUpdated EventType = "ticket_updated"
	EventTicketDeleted EventType = "ticket_deleted"
	EventCommentAdded  EventType = "comment_added"
	EventUserCreated   EventType = "user_created"
	EventUserDeleted   EventType = "user_deleted"
)

// Event represents a lifecycle event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	TicketID  int64     `json:"ticket_id,omitempty"`
	ActorID   int64     `json:"actor_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Status   domain.TicketStatus   `json:"status"`
	Priority domain.TicketPriority `json:"priority"`
	Type     domain.TicketType     `json:"type"`
	Subject  string                `json:"subject,omitempty"`
	AuditID  int64                 `json:"audit_id"`
	Assigned bool                  `json:"assigned"`
}

// TicketUpdatedPayload payload.
type TicketUpdatedPayload struct {
	ChangedFields []string `json:"changed_fields"`
	AuditID       *int64   `json:"audit_id,omitempty"`
	CommentID     *int64   `json:"comment_id,omitempty"`
}

// TicketDeletedPayload payload.
type TicketDeletedPayload struct {
	Status domain.TicketStatus `json:"status"`
	Audits int                 `json:"audits"`
}

// CommentAddedPayload payload.
type CommentAddedPayload struct {
	CommentID   int64  `json:"comment_id"`
	AuditID     int64  `json:"audit_id,omitempty"`
	Public      bool   `json:"public"`
	BodyPreview string `json:"body_preview"`
}

// UserCreatedPayload payload.
type UserCreatedPayload struct {
	UserID int64           `json:"user_id"`
	Role   domain.UserRole `json:"role"`
	Email  string          `json:"email,omitempty"`
}

// UserDeletedPayload payload.
type UserDeletedPayload struct {
	UserID int64           `json:"user_id"`
	Role   domain.UserRole `json:"role"`
}
