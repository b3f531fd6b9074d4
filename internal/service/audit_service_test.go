package service

import (
	"context"
	"reflect"
	"testing"

	"github.com/spec-kit/helpdesk-sim/internal/domain"
	"github.com/spec-kit/helpdesk-sim/pkg/util"
)

// seedAuditTrail creates a ticket and walks it through enough status
// changes to leave total audits behind.
func seedAuditTrail(t *testing.T, f *fixture, total int) int64 {
	t.Helper()
	created := f.createTicket(t, basicCreateInput())
	statuses := []domain.TicketStatus{
		domain.TicketStatusOpen,
		domain.TicketStatusPending,
		domain.TicketStatusHold,
		domain.TicketStatusSolved,
		domain.TicketStatusClosed,
	}
	for i := 0; i < total-1; i++ {
		f.updateTicket(t, created.Ticket.ID, TicketUpdateInput{Status: ptr(statuses[i])})
	}
	return created.Ticket.ID
}

func TestListTicketAuditsOrder(t *testing.T) {
	f := newFixture()
	ticketID := seedAuditTrail(t, f, 3)

	page, err := f.audits.ListTicketAudits(context.Background(), ticketID, AuditListParams{})
	if err != nil {
		t.Fatalf("ListTicketAudits: %v", err)
	}
	if got := auditIDs(page.Audits); !reflect.DeepEqual(got, []int64{1, 2, 3}) {
		t.Fatalf("ascending ids = %v, want [1 2 3]", got)
	}

	page, err = f.audits.ListTicketAudits(context.Background(), ticketID, AuditListParams{SortOrder: "desc"})
	if err != nil {
		t.Fatalf("ListTicketAudits desc: %v", err)
	}
	if got := auditIDs(page.Audits); !reflect.DeepEqual(got, []int64{3, 2, 1}) {
		t.Fatalf("descending ids = %v, want [3 2 1]", got)
	}
}

func TestListTicketAuditsPagination(t *testing.T) {
	f := newFixture()
	ticketID := seedAuditTrail(t, f, 5)

	page, err := f.audits.ListTicketAudits(context.Background(), ticketID, AuditListParams{Page: 2, PerPage: 2})
	if err != nil {
		t.Fatalf("ListTicketAudits: %v", err)
	}
	if got := auditIDs(page.Audits); !reflect.DeepEqual(got, []int64{3, 4}) {
		t.Fatalf("page 2 ids = %v, want [3 4]", got)
	}
	want := PageMeta{Page: 2, PerPage: 2, Total: 5, Pages: 3}
	if page.Meta != want {
		t.Fatalf("meta = %+v, want %+v", page.Meta, want)
	}

	// Beyond the last page: empty slice, same totals.
	page, err = f.audits.ListTicketAudits(context.Background(), ticketID, AuditListParams{Page: 9, PerPage: 2})
	if err != nil {
		t.Fatalf("ListTicketAudits page 9: %v", err)
	}
	if len(page.Audits) != 0 || page.Meta.Total != 5 {
		t.Fatalf("beyond-range page = %d audits, meta %+v", len(page.Audits), page.Meta)
	}

	// per_page is clamped to the cap.
	page, err = f.audits.ListTicketAudits(context.Background(), ticketID, AuditListParams{PerPage: 500})
	if err != nil {
		t.Fatalf("ListTicketAudits clamped: %v", err)
	}
	if page.Meta.PerPage != defaultPerPageCap {
		t.Fatalf("per_page = %d, want clamp to %d", page.Meta.PerPage, defaultPerPageCap)
	}
}

func TestListTicketAuditsUnknownTicket(t *testing.T) {
	f := newFixture()
	_, err := f.audits.ListTicketAudits(context.Background(), 404, AuditListParams{})
	if util.CodeOf(err) != util.CodeTicketNotFound {
		t.Fatalf("error = %v, want %s", err, util.CodeTicketNotFound)
	}
}

func TestShowTicketAudit(t *testing.T) {
	f := newFixture()
	first := f.createTicket(t, basicCreateInput())
	second := f.createTicket(t, basicCreateInput())

	audit, err := f.audits.ShowTicketAudit(context.Background(), first.Ticket.ID, first.Audit.ID)
	if err != nil {
		t.Fatalf("ShowTicketAudit: %v", err)
	}
	if audit.ID != first.Audit.ID || audit.TicketID != first.Ticket.ID {
		t.Fatalf("audit = %+v", audit)
	}

	if _, err := f.audits.ShowTicketAudit(context.Background(), 404, first.Audit.ID); util.CodeOf(err) != util.CodeTicketNotFound {
		t.Errorf("unknown ticket error = %v, want %s", err, util.CodeTicketNotFound)
	}
	if _, err := f.audits.ShowTicketAudit(context.Background(), first.Ticket.ID, 404); util.CodeOf(err) != util.CodeAuditNotFound {
		t.Errorf("unknown audit error = %v, want %s", err, util.CodeAuditNotFound)
	}
	// An audit that belongs to another ticket is not reachable through
	// this one.
	if _, err := f.audits.ShowTicketAudit(context.Background(), first.Ticket.ID, second.Audit.ID); util.CodeOf(err) != util.CodeAuditNotFound {
		t.Errorf("cross-ticket audit error = %v, want %s", err, util.CodeAuditNotFound)
	}
}

func auditIDs(audits []domain.Audit) []int64 {
	out := make([]int64, 0, len(audits))
	for _, a := range audits {
		out = append(out, a.ID)
	}
	return out
}
