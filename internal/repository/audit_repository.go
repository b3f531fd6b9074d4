package repository

import (
	"github.com/spec-kit/helpdesk-sim/internal/domain"
	"github.com/spec-kit/helpdesk-sim/internal/persistence"
)

// AuditRepository stores the append-only audit trail. Audits are never
// updated or deleted; ticket deletion leaves its trail behind.
// Implementations assume the caller holds the state lock.
type AuditRepository interface {
	Insert(audit *domain.Audit)
	Get(id int64) (*domain.Audit, bool)
	ListByTicket(ticketID int64) []*domain.Audit
	CountByTicket(ticketID int64) int
}

type auditRepository struct {
	state *persistence.State
}

// NewAuditRepository instantiates the in-memory repository.
func NewAuditRepository(state *persistence.State) AuditRepository {
	return &auditRepository{state: state}
}

func (r *auditRepository) Insert(audit *domain.Audit) {
	r.state.Audits[audit.ID] = audit
}

func (r *auditRepository) Get(id int64) (*domain.Audit, bool) {
	a, ok := r.state.Audits[id]
	return a, ok
}

func (r *auditRepository) ListByTicket(ticketID int64) []*domain.Audit {
	return r.state.AuditsForTicket(ticketID)
}

func (r *auditRepository) CountByTicket(ticketID int64) int {
	count := 0
	for _, a := range r.state.Audits {
		if a.TicketID == ticketID {
			count++
		}
	}
	return count
}
