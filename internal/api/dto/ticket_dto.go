package dto

import (
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/spec-kit/helpdesk-sim/internal/domain"
	"github.com/spec-kit/helpdesk-sim/internal/service"
)

// CreateTicketRequest payload. The ticket object carries the draft.
type CreateTicketRequest struct {
	Ticket service.TicketCreateInput `json:"ticket"`
}

// UpdateTicketRequest payload.
type UpdateTicketRequest struct {
	TicketID      int64                     `json:"ticket_id"`
	TicketUpdates service.TicketUpdateInput `json:"ticket_updates"`
}

// TicketIDRequest addresses one ticket.
type TicketIDRequest struct {
	TicketID int64 `json:"ticket_id"`
}

// TicketResponse is the externally visible ticket representation:
// stored fields merged with derived, presentation-only ones. The two
// shadowed fields render as explicit nulls, matching the simulated
// wire format.
type TicketResponse struct {
	domain.Ticket
	ForumTopicID       *int64 `json:"forum_topic_id"`
	SatisfactionRating any    `json:"satisfaction_rating"`
	EncodedID          string `json:"encoded_id"`
	GeneratedTimestamp int64  `json:"generated_timestamp"`
	URL                string `json:"url"`
}

// NewTicketResponse derives presentation fields for one ticket
// snapshot. Snapshots are already independent copies, so nothing here
// can touch stored state.
func NewTicketResponse(ticket domain.Ticket) TicketResponse {
	return TicketResponse{
		Ticket:             ticket,
		ForumTopicID:       ticket.ForumTopicID,
		SatisfactionRating: ticket.SatisfactionRating,
		EncodedID:          EncodeID(ticket.ID),
		GeneratedTimestamp: ticket.CreatedAt.UnixMilli(),
		URL:                TicketURL(ticket.ID),
	}
}

// NewTicketListResponse assembles the full ticket listing.
func NewTicketListResponse(tickets []domain.Ticket) []TicketResponse {
	out := make([]TicketResponse, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, NewTicketResponse(t))
	}
	return out
}

// CreateTicketResponse bundles the created ticket, its audit and the
// confirmation message.
type CreateTicketResponse struct {
	Ticket  TicketResponse `json:"ticket"`
	Audit   domain.Audit   `json:"audit"`
	Message string         `json:"message"`
}

// UpdateTicketResponse reports a successful patch.
type UpdateTicketResponse struct {
	Success bool           `json:"success"`
	Ticket  TicketResponse `json:"ticket"`
}

// EncodeID is the stable encoding of an integer id: base64 over its
// decimal form.
func EncodeID(id int64) string {
	return base64.StdEncoding.EncodeToString([]byte(strconv.FormatInt(id, 10)))
}

// TicketURL builds the deterministic agent-facing ticket path.
func TicketURL(id int64) string {
	return fmt.Sprintf("https://zendesk.com/agent/tickets/%d", id)
}
