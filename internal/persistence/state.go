package persistence

import (
	"sort"
	"sync"

	"github.com/spec-kit/helpdesk-sim/internal/domain"
)

// State is the simulated database: every collection the helpdesk
// surface reads or writes, plus the id counters. One mutex guards all
// of it; services hold the lock across their full read-diff-write
// sequence so two concurrent mutations cannot interleave a lost update
// or a duplicated audit trail.
type State struct {
	sync.Mutex

	Tickets     map[int64]*domain.Ticket
	Audits      map[int64]*domain.Audit
	Comments    map[int64]*domain.Comment
	Users       map[int64]*domain.User
	Attachments map[int64]*domain.Attachment
	Uploads     map[string]*domain.Upload

	IDs *IDAllocator
}

// NewState returns an empty state with fresh counters.
func NewState() *State {
	s := &State{}
	s.reset()
	return s
}

func (s *State) reset() {
	s.Tickets = make(map[int64]*domain.Ticket)
	s.Audits = make(map[int64]*domain.Audit)
	s.Comments = make(map[int64]*domain.Comment)
	s.Users = make(map[int64]*domain.User)
	s.Attachments = make(map[int64]*domain.Attachment)
	s.Uploads = make(map[string]*domain.Upload)
	s.IDs = NewIDAllocator()
}

// Reset drops all collections and counters. Callers must not hold the
// lock.
func (s *State) Reset() {
	s.Lock()
	defer s.Unlock()
	s.reset()
}

// AuditsForTicket returns the audits referencing ticketID ordered by
// id. Callers must hold the lock.
func (s *State) AuditsForTicket(ticketID int64) []*domain.Audit {
	out := make([]*domain.Audit, 0, 4)
	for _, a := range s.Audits {
		if a.TicketID == ticketID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CommentsForTicket returns the comments referencing ticketID ordered
// by id. Callers must hold the lock.
func (s *State) CommentsForTicket(ticketID int64) []*domain.Comment {
	out := make([]*domain.Comment, 0, 4)
	for _, c := range s.Comments {
		if c.TicketID == ticketID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
