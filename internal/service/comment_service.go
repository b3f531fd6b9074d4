package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/spec-kit/helpdesk-sim/internal/clock"
	"github.com/spec-kit/helpdesk-sim/internal/domain"
	"github.com/spec-kit/helpdesk-sim/internal/events"
	"github.com/spec-kit/helpdesk-sim/internal/persistence"
	"github.com/spec-kit/helpdesk-sim/internal/repository"
	"github.com/spec-kit/helpdesk-sim/pkg/util"
)

// CommentService manages standalone comment records. Unlike the
// in-ticket comment path, this one validates authors against the user
// store and attachment ids against the attachment store.
type CommentService struct {
	state       *persistence.State
	tickets     repository.TicketRepository
	comments    repository.CommentRepository
	users       repository.UserRepository
	attachments repository.AttachmentRepository
	clk         clock.Clock
	dispatcher  events.Dispatcher
	perPageCap  int
}

// CommentDependencies bundles collaborators for the comment service.
type CommentDependencies struct {
	State          *persistence.State
	TicketRepo     repository.TicketRepository
	CommentRepo    repository.CommentRepository
	UserRepo       repository.UserRepository
	AttachmentRepo repository.AttachmentRepository
	Clock          clock.Clock
	Dispatcher     events.Dispatcher
	PerPageCap     int
}

// NewCommentService constructs the service.
func NewCommentService(deps CommentDependencies) *CommentService {
	clk := deps.Clock
	if clk == nil {
		clk = clock.Real()
	}
	perPageCap := deps.PerPageCap
	if perPageCap <= 0 {
		perPageCap = defaultPerPageCap
	}
	return &CommentService{
		state:       deps.State,
		tickets:     deps.TicketRepo,
		comments:    deps.CommentRepo,
		users:       deps.UserRepo,
		attachments: deps.AttachmentRepo,
		clk:         clk,
		dispatcher:  deps.Dispatcher,
		perPageCap:  perPageCap,
	}
}

// CommentCreateInput describes a standalone comment creation.
type CommentCreateInput struct {
	TicketID    int64   `json:"ticket_id"`
	AuthorID    int64   `json:"author_id"`
	Body        string  `json:"body"`
	Public      *bool   `json:"public,omitempty"`
	Type        string  `json:"type,omitempty"`
	AuditID     *int64  `json:"audit_id,omitempty"`
	Attachments []int64 `json:"attachments,omitempty"`
}

// CommentUpdateInput describes a partial comment patch.
type CommentUpdateInput struct {
	Body        *string `json:"body,omitempty"`
	Public      *bool   `json:"public,omitempty"`
	Type        *string `json:"type,omitempty"`
	AuditID     *int64  `json:"audit_id,omitempty"`
	Attachments []int64 `json:"attachments,omitempty"`
}

// CommentListParams selects and orders one page of ticket comments.
type CommentListParams struct {
	Page               int    `json:"page,omitempty"`
	PerPage            int    `json:"per_page,omitempty"`
	SortBy             string `json:"sort_by,omitempty"`
	SortOrder          string `json:"sort_order,omitempty"`
	IncludeAttachments bool   `json:"include_attachments,omitempty"`
}

// CommentView pairs a comment snapshot with its resolved attachment
// records. Attachments stays nil unless inline resolution was asked
// for.
type CommentView struct {
	Comment     domain.Comment
	Attachments []domain.Attachment
}

// CommentPage is one page of comments plus pagination metadata.
type CommentPage struct {
	Comments []CommentView
	Meta     PageMeta
}

// CreateComment validates the ticket, the author and every attachment
// id before writing, then stores the comment and bumps the parent
// ticket's updated_at.
func (s *CommentService) CreateComment(ctx context.Context, input CommentCreateInput) (domain.Comment, error) {
	body := strings.TrimSpace(input.Body)
	if body == "" {
		return domain.Comment{}, util.NewValidationError("body is empty or whitespace-only", nil)
	}

	s.state.Lock()
	defer s.state.Unlock()

	ticket, ok := s.tickets.Get(input.TicketID)
	if !ok {
		return domain.Comment{}, util.NewTicketNotFound(input.TicketID)
	}
	if _, ok := s.users.Get(input.AuthorID); !ok {
		return domain.Comment{}, util.NewUserNotFound(input.AuthorID)
	}
	for _, attachmentID := range input.Attachments {
		if !s.attachments.Exists(attachmentID) {
			return domain.Comment{}, util.NewAttachmentNotFound(attachmentID)
		}
	}

	now := s.now()
	public := true
	if input.Public != nil {
		public = *input.Public
	}
	commentType := input.Type
	if commentType == "" {
		commentType = domain.CommentTypeDefault
	}

	comment := &domain.Comment{
		ID:          s.state.IDs.Allocate(persistence.NamespaceComment),
		TicketID:    input.TicketID,
		AuthorID:    input.AuthorID,
		Body:        body,
		Public:      public,
		Type:        commentType,
		Attachments: append([]int64{}, input.Attachments...),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.AuditID != nil {
		comment.AuditID = *input.AuditID
	}

	s.comments.Insert(comment)
	ticket.UpdatedAt = now

	publishEvent(ctx, s.dispatcher, s.clk, events.Event{
		Type:     events.EventCommentAdded,
		TicketID: input.TicketID,
		ActorID:  input.AuthorID,
		Payload: events.CommentAddedPayload{
			CommentID:   comment.ID,
			AuditID:     comment.AuditID,
			Public:      comment.Public,
			BodyPreview: stringPreview(comment.Body, 120),
		},
	})

	return comment.Clone(), nil
}

// UpdateComment patches body, visibility, type, audit link or the
// attachment list. Everything is validated before anything applies.
func (s *CommentService) UpdateComment(ctx context.Context, id int64, patch CommentUpdateInput) (domain.Comment, error) {
	s.state.Lock()
	defer s.state.Unlock()

	comment, ok := s.comments.Get(id)
	if !ok {
		return domain.Comment{}, util.NewCommentNotFound(id)
	}

	var body string
	if patch.Body != nil {
		body = strings.TrimSpace(*patch.Body)
		if body == "" {
			return domain.Comment{}, util.NewValidationError("body is empty or whitespace-only", nil)
		}
	}
	for _, attachmentID := range patch.Attachments {
		if !s.attachments.Exists(attachmentID) {
			return domain.Comment{}, util.NewAttachmentNotFound(attachmentID)
		}
	}

	if patch.Body != nil {
		comment.Body = body
	}
	if patch.Attachments != nil {
		comment.Attachments = append([]int64{}, patch.Attachments...)
	}
	if patch.Public != nil {
		comment.Public = *patch.Public
	}
	if patch.Type != nil {
		comment.Type = *patch.Type
	}
	if patch.AuditID != nil {
		comment.AuditID = *patch.AuditID
	}

	now := s.now()
	comment.UpdatedAt = now
	if ticket, ok := s.tickets.Get(comment.TicketID); ok {
		ticket.UpdatedAt = now
	}

	return comment.Clone(), nil
}

// DeleteComment removes a comment, returns the removed record and
// bumps the parent ticket's updated_at when the ticket still exists.
func (s *CommentService) DeleteComment(ctx context.Context, id int64) (domain.Comment, error) {
	s.state.Lock()
	defer s.state.Unlock()

	comment, ok := s.comments.Delete(id)
	if !ok {
		return domain.Comment{}, util.NewCommentNotFound(id)
	}
	if ticket, ok := s.tickets.Get(comment.TicketID); ok {
		ticket.UpdatedAt = s.now()
	}
	return comment.Clone(), nil
}

// ShowComment returns a snapshot of one comment.
func (s *CommentService) ShowComment(ctx context.Context, id int64) (domain.Comment, error) {
	s.state.Lock()
	defer s.state.Unlock()

	comment, ok := s.comments.Get(id)
	if !ok {
		return domain.Comment{}, util.NewCommentNotFound(id)
	}
	return comment.Clone(), nil
}

// ListTicketComments returns one page of a ticket's comments, sorted
// by created_at or updated_at. Unknown sort fields fall back to
// created_at. With IncludeAttachments set, attachment ids resolve to
// their full records.
func (s *CommentService) ListTicketComments(ctx context.Context, ticketID int64, params CommentListParams) (*CommentPage, error) {
	s.state.Lock()
	defer s.state.Unlock()

	if _, ok := s.tickets.Get(ticketID); !ok {
		return nil, util.NewTicketNotFound(ticketID)
	}

	stored := s.comments.ListByTicket(ticketID)
	sortComments(stored, params.SortBy, descending(params.SortOrder))

	page, meta := paginate(stored, params.Page, params.PerPage, s.perPageCap)
	views := make([]CommentView, 0, len(page))
	for _, c := range page {
		view := CommentView{Comment: c.Clone()}
		if params.IncludeAttachments {
			view.Attachments = s.resolveAttachments(c.Attachments)
		}
		views = append(views, view)
	}
	return &CommentPage{Comments: views, Meta: meta}, nil
}

func (s *CommentService) resolveAttachments(ids []int64) []domain.Attachment {
	out := make([]domain.Attachment, 0, len(ids))
	for _, id := range ids {
		if attachment, ok := s.attachments.Get(id); ok {
			out = append(out, attachment.Clone())
		}
	}
	return out
}

func (s *CommentService) now() time.Time {
	return s.clk.Now().UTC().Truncate(time.Second)
}

// sortComments orders comments by the requested timestamp field.
// Stable, so comments sharing a timestamp keep id order.
func sortComments(comments []*domain.Comment, sortBy string, desc bool) {
	key := func(c *domain.Comment) time.Time {
		if sortBy == "updated_at" {
			return c.UpdatedAt
		}
		return c.CreatedAt
	}
	sort.SliceStable(comments, func(i, j int) bool {
		if desc {
			return key(comments[i]).After(key(comments[j]))
		}
		return key(comments[i]).Before(key(comments[j]))
	})
}
