package service

import (
	"context"

	"github.com/spec-kit/helpdesk-sim/internal/domain"
	"github.com/spec-kit/helpdesk-sim/internal/persistence"
	"github.com/spec-kit/helpdesk-sim/internal/repository"
	"github.com/spec-kit/helpdesk-sim/pkg/util"
)

// AuditService answers audit-trail queries. Audits are immutable, so
// the service is read-only; writes go through the composer inside the
// ticket and comment services.
type AuditService struct {
	state      *persistence.State
	tickets    repository.TicketRepository
	audits     repository.AuditRepository
	perPageCap int
}

// AuditDependencies bundles collaborators for the audit service.
type AuditDependencies struct {
	State      *persistence.State
	TicketRepo repository.TicketRepository
	AuditRepo  repository.AuditRepository
	PerPageCap int
}

// NewAuditService constructs the service.
func NewAuditService(deps AuditDependencies) *AuditService {
	perPageCap := deps.PerPageCap
	if perPageCap <= 0 {
		perPageCap = defaultPerPageCap
	}
	return &AuditService{
		state:      deps.State,
		tickets:    deps.TicketRepo,
		audits:     deps.AuditRepo,
		perPageCap: perPageCap,
	}
}

// AuditListParams selects and orders one page of a ticket's audits.
type AuditListParams struct {
	Page      int    `json:"page,omitempty"`
	PerPage   int    `json:"per_page,omitempty"`
	SortOrder string `json:"sort_order,omitempty"`
}

// AuditPage is one page of audits plus its pagination metadata.
type AuditPage struct {
	Audits []domain.Audit
	Meta   PageMeta
}

// ListTicketAudits returns the ticket's audits ordered by id,
// ascending unless sort_order is "desc", paginated.
func (s *AuditService) ListTicketAudits(ctx context.Context, ticketID int64, params AuditListParams) (*AuditPage, error) {
	s.state.Lock()
	defer s.state.Unlock()

	if _, ok := s.tickets.Get(ticketID); !ok {
		return nil, util.NewTicketNotFound(ticketID)
	}

	stored := s.audits.ListByTicket(ticketID)
	if descending(params.SortOrder) {
		reverseSlice(stored)
	}

	page, meta := paginate(stored, params.Page, params.PerPage, s.perPageCap)
	audits := make([]domain.Audit, 0, len(page))
	for _, a := range page {
		audits = append(audits, a.Clone())
	}
	return &AuditPage{Audits: audits, Meta: meta}, nil
}

// ShowTicketAudit returns one audit of one ticket. Unknown tickets and
// unknown audits fail distinctly; an audit id that exists but belongs
// to a different ticket counts as an unknown audit.
func (s *AuditService) ShowTicketAudit(ctx context.Context, ticketID, auditID int64) (domain.Audit, error) {
	s.state.Lock()
	defer s.state.Unlock()

	if _, ok := s.tickets.Get(ticketID); !ok {
		return domain.Audit{}, util.NewTicketNotFound(ticketID)
	}
	audit, ok := s.audits.Get(auditID)
	if !ok || audit.TicketID != ticketID {
		return domain.Audit{}, util.NewAuditNotFound(auditID, ticketID)
	}
	return audit.Clone(), nil
}
