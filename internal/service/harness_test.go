package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/spec-kit/helpdesk-sim/internal/clock"
	"github.com/spec-kit/helpdesk-sim/internal/domain"
	"github.com/spec-kit/helpdesk-sim/internal/events"
	"github.com/spec-kit/helpdesk-sim/internal/persistence"
	"github.com/spec-kit/helpdesk-sim/internal/repository"
)

var fixtureStart = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// captureDispatcher records published events for assertions.
type captureDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *captureDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *captureDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *captureDispatcher) byType(eventType events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []events.Event
	for _, e := range d.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

// fixture wires every service over one fresh in-memory state.
type fixture struct {
	state      *persistence.State
	clk        *clock.FakeClock
	dispatcher *captureDispatcher
	tickets    *TicketService
	audits     *AuditService
	comments   *CommentService
	uploads    *UploadService
	users      *UserService
}

func newFixture() *fixture {
	state := persistence.NewState()
	clk := clock.Fake(fixtureStart)
	dispatcher := &captureDispatcher{}

	ticketRepo := repository.NewTicketRepository(state)
	auditRepo := repository.NewAuditRepository(state)
	commentRepo := repository.NewCommentRepository(state)
	userRepo := repository.NewUserRepository(state)
	attachmentRepo := repository.NewAttachmentRepository(state)
	uploadRepo := repository.NewUploadRepository(state)
	composer := NewAuditComposer(state.IDs)

	return &fixture{
		state:      state,
		clk:        clk,
		dispatcher: dispatcher,
		tickets: NewTicketService(TicketDependencies{
			State:       state,
			TicketRepo:  ticketRepo,
			AuditRepo:   auditRepo,
			CommentRepo: commentRepo,
			UploadRepo:  uploadRepo,
			Composer:    composer,
			Clock:       clk,
			Dispatcher:  dispatcher,
		}),
		audits: NewAuditService(AuditDependencies{
			State:      state,
			TicketRepo: ticketRepo,
			AuditRepo:  auditRepo,
		}),
		comments: NewCommentService(CommentDependencies{
			State:          state,
			TicketRepo:     ticketRepo,
			CommentRepo:    commentRepo,
			UserRepo:       userRepo,
			AttachmentRepo: attachmentRepo,
			Clock:          clk,
			Dispatcher:     dispatcher,
		}),
		uploads: NewUploadService(UploadDependencies{
			State:          state,
			AttachmentRepo: attachmentRepo,
			UploadRepo:     uploadRepo,
			Clock:          clk,
		}),
		users: NewUserService(UserDependencies{
			State:      state,
			UserRepo:   userRepo,
			Clock:      clk,
			Dispatcher: dispatcher,
		}),
	}
}

func basicCreateInput() TicketCreateInput {
	return TicketCreateInput{
		Subject:     "Printer on fire",
		RequesterID: 7,
		Comment:     &TicketCommentInput{Body: "It is smoking."},
	}
}

func (f *fixture) createTicket(t *testing.T, input TicketCreateInput) *TicketCreateResult {
	t.Helper()
	result, err := f.tickets.CreateTicket(context.Background(), input)
	if err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}
	return result
}

func (f *fixture) updateTicket(t *testing.T, id int64, patch TicketUpdateInput) domain.Ticket {
	t.Helper()
	ticket, err := f.tickets.UpdateTicket(context.Background(), id, patch)
	if err != nil {
		t.Fatalf("UpdateTicket: %v", err)
	}
	return ticket
}

func (f *fixture) seedUser(t *testing.T, name, email string) domain.User {
	t.Helper()
	user, err := f.users.CreateUser(context.Background(), UserCreateInput{Name: name, Email: email})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return user
}

func (f *fixture) seedUpload(t *testing.T, filename, token string) *UploadResult {
	t.Helper()
	result, err := f.uploads.UploadFile(context.Background(), UploadInput{Filename: filename, Token: token})
	if err != nil {
		t.Fatalf("UploadFile: %v", err)
	}
	return result
}

// auditCountFor reads the stored audit count for a ticket directly.
func (f *fixture) auditCountFor(ticketID int64) int {
	f.state.Lock()
	defer f.state.Unlock()
	return len(f.state.AuditsForTicket(ticketID))
}

func ptr[T any](v T) *T { return &v }
