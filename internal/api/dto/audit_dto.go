package dto

import (
	"github.com/spec-kit/helpdesk-sim/internal/domain"
	"github.com/spec-kit/helpdesk-sim/internal/service"
)

// ListTicketAuditsRequest payload.
type ListTicketAuditsRequest struct {
	TicketID int64 `json:"ticket_id"`
	service.AuditListParams
}

// ShowTicketAuditRequest addresses one audit of one ticket.
type ShowTicketAuditRequest struct {
	TicketID int64 `json:"ticket_id"`
	AuditID  int64 `json:"audit_id"`
}

// AuditListResponse is one page of a ticket's audit trail.
type AuditListResponse struct {
	Audits     []domain.Audit   `json:"audits"`
	Pagination service.PageMeta `json:"pagination"`
}

// NewAuditListResponse assembles a page of audits. Audits carry their
// wire form directly; only listings add pagination metadata.
func NewAuditListResponse(page *service.AuditPage) AuditListResponse {
	return AuditListResponse{Audits: page.Audits, Pagination: page.Meta}
}
