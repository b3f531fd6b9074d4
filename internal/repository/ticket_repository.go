package repository

import (
	"sort"

	"github.com/spec-kit/helpdesk-sim/internal/domain"
	"github.com/spec-kit/helpdesk-sim/internal/persistence"
)

// TicketRepository encapsulates ticket record access. Implementations
// assume the caller holds the state lock for the whole operation; the
// service layer holds it across its read-diff-write sequence.
type TicketRepository interface {
	Insert(ticket *domain.Ticket)
	Replace(ticket *domain.Ticket)
	Get(id int64) (*domain.Ticket, bool)
	Delete(id int64) (*domain.Ticket, bool)
	List() []*domain.Ticket
}

type ticketRepository struct {
	state *persistence.State
}

// NewTicketRepository instantiates the in-memory repository.
func NewTicketRepository(state *persistence.State) TicketRepository {
	return &ticketRepository{state: state}
}

func (r *ticketRepository) Insert(ticket *domain.Ticket) {
	r.state.Tickets[ticket.ID] = ticket
}

func (r *ticketRepository) Replace(ticket *domain.Ticket) {
	r.state.Tickets[ticket.ID] = ticket
}

func (r *ticketRepository) Get(id int64) (*domain.Ticket, bool) {
	t, ok := r.state.Tickets[id]
	return t, ok
}

func (r *ticketRepository) Delete(id int64) (*domain.Ticket, bool) {
	t, ok := r.state.Tickets[id]
	if !ok {
		return nil, false
	}
	delete(r.state.Tickets, id)
	return t, true
}

func (r *ticketRepository) List() []*domain.Ticket {
	out := make([]*domain.Ticket, 0, len(r.state.Tickets))
	for _, t := range r.state.Tickets {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
