package service

import (
	"context"
	"fmt"
	"maps"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/helpdesk-sim/internal/clock"
	"github.com/spec-kit/helpdesk-sim/internal/domain"
	"github.com/spec-kit/helpdesk-sim/internal/events"
	"github.com/spec-kit/helpdesk-sim/internal/persistence"
	"github.com/spec-kit/helpdesk-sim/internal/repository"
	"github.com/spec-kit/helpdesk-sim/pkg/util"
)

// TicketService coordinates the ticket lifecycle: create, patch,
// delete and the read paths. Every mutation is recorded through the
// AuditComposer; the state lock is held for the whole read-diff-write
// sequence so concurrent callers cannot interleave a lost update or a
// duplicated audit trail.
type TicketService struct {
	state      *persistence.State
	tickets    repository.TicketRepository
	audits     repository.AuditRepository
	comments   repository.CommentRepository
	uploads    repository.UploadRepository
	composer   *AuditComposer
	clk        clock.Clock
	dispatcher events.Dispatcher
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	State       *persistence.State
	TicketRepo  repository.TicketRepository
	AuditRepo   repository.AuditRepository
	CommentRepo repository.CommentRepository
	UploadRepo  repository.UploadRepository
	Composer    *AuditComposer
	Clock       clock.Clock
	Dispatcher  events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	clk := deps.Clock
	if clk == nil {
		clk = clock.Real()
	}
	return &TicketService{
		state:      deps.State,
		tickets:    deps.TicketRepo,
		audits:     deps.AuditRepo,
		comments:   deps.CommentRepo,
		uploads:    deps.UploadRepo,
		composer:   deps.Composer,
		clk:        clk,
		dispatcher: deps.Dispatcher,
	}
}

// TicketCommentInput is the first-comment payload on ticket creation.
type TicketCommentInput struct {
	Body     string   `json:"body"`
	HTMLBody string   `json:"html_body,omitempty"`
	Public   *bool    `json:"public,omitempty"`
	AuthorID *int64   `json:"author_id,omitempty"`
	Uploads  []string `json:"uploads,omitempty"`
}

// CollaboratorInput is one object entry in a collaborator-style list.
// Action "delete" means "do not add"; "put" and unset both add.
type CollaboratorInput struct {
	UserID *int64 `json:"user_id,omitempty"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Action string `json:"action,omitempty"`
}

// TicketCreateInput describes the ticket creation payload.
type TicketCreateInput struct {
	Subject             string                `json:"subject,omitempty"`
	RawSubject          string                `json:"raw_subject,omitempty"`
	Comment             *TicketCommentInput   `json:"comment"`
	RequesterID         int64                 `json:"requester_id"`
	SubmitterID         *int64                `json:"submitter_id,omitempty"`
	AssigneeID          *int64                `json:"assignee_id,omitempty"`
	AssigneeEmail       string                `json:"assignee_email,omitempty"`
	OrganizationID      *int64                `json:"organization_id,omitempty"`
	GroupID             *int64                `json:"group_id,omitempty"`
	ExternalID          string                `json:"external_id,omitempty"`
	Type                domain.TicketType     `json:"type,omitempty"`
	Priority            domain.TicketPriority `json:"priority,omitempty"`
	Status              domain.TicketStatus   `json:"status,omitempty"`
	Recipient           string                `json:"recipient,omitempty"`
	CollaboratorIDs     []int64               `json:"collaborator_ids,omitempty"`
	Collaborators       []CollaboratorInput   `json:"collaborators,omitempty"`
	FollowerIDs         []int64               `json:"follower_ids,omitempty"`
	Followers           []CollaboratorInput   `json:"followers,omitempty"`
	EmailCCIDs          []int64               `json:"email_cc_ids,omitempty"`
	EmailCCs            []CollaboratorInput   `json:"email_ccs,omitempty"`
	ProblemID           *int64                `json:"problem_id,omitempty"`
	DueAt               string                `json:"due_at,omitempty"`
	Tags                []string              `json:"tags,omitempty"`
	CustomFields        []domain.TicketField  `json:"custom_fields,omitempty"`
	SharingAgreementIDs []int64               `json:"sharing_agreement_ids,omitempty"`
	BrandID             *int64                `json:"brand_id,omitempty"`
	AttributeValueIDs   []int64               `json:"attribute_value_ids,omitempty"`
	CustomStatusID      *int64                `json:"custom_status_id,omitempty"`
	Requester           string                `json:"requester,omitempty"`
	SafeUpdate          *bool                 `json:"safe_update,omitempty"`
	TicketFormID        *int64                `json:"ticket_form_id,omitempty"`
	UpdatedStamp        string                `json:"updated_stamp,omitempty"`
	ViaFollowupSourceID *int64                `json:"via_followup_source_id,omitempty"`
	ViaID               *int64                `json:"via_id,omitempty"`
	VoiceComment        map[string]any        `json:"voice_comment,omitempty"`
	Via                 *domain.Via           `json:"via,omitempty"`
	Metadata            *domain.AuditMetadata `json:"metadata,omitempty"`
	MacroID             *int64                `json:"macro_id,omitempty"`
	MacroIDs            []int64               `json:"macro_ids,omitempty"`
}

// TicketUpdateInput describes a ticket patch. Field presence is
// meaningful: nil leaves the attribute untouched, a set pointer is
// applied even when it equals the current value.
type TicketUpdateInput struct {
	Subject             *string                `json:"subject,omitempty"`
	CommentBody         *string                `json:"comment_body,omitempty"`
	Priority            *domain.TicketPriority `json:"priority,omitempty"`
	TicketType          *domain.TicketType     `json:"ticket_type,omitempty"`
	Status              *domain.TicketStatus   `json:"status,omitempty"`
	AttributeValueIDs   []int64                `json:"attribute_value_ids,omitempty"`
	CustomStatusID      *int64                 `json:"custom_status_id,omitempty"`
	Requester           *string                `json:"requester,omitempty"`
	SafeUpdate          *bool                  `json:"safe_update,omitempty"`
	TicketFormID        *int64                 `json:"ticket_form_id,omitempty"`
	UpdatedStamp        *string                `json:"updated_stamp,omitempty"`
	ViaFollowupSourceID *int64                 `json:"via_followup_source_id,omitempty"`
	ViaID               *int64                 `json:"via_id,omitempty"`
	VoiceComment        map[string]any         `json:"voice_comment,omitempty"`
	AssigneeID          *int64                 `json:"assignee_id,omitempty"`
	AssigneeEmail       *string                `json:"assignee_email,omitempty"`
}

// TicketCreateResult bundles everything a creation returns.
type TicketCreateResult struct {
	Ticket  domain.Ticket
	Audit   domain.Audit
	Comment domain.Comment
	Message string
}

// CreateTicket creates a ticket with its creation audit and first
// comment. Upload tokens are resolved before anything persists, so an
// unknown token leaves the store untouched.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (*TicketCreateResult, error) {
	if err := validateTicketCreate(&input); err != nil {
		return nil, err
	}

	s.state.Lock()
	defer s.state.Unlock()

	attachmentIDs, err := s.resolveUploads(input.Comment.Uploads)
	if err != nil {
		return nil, err
	}

	now := s.now()
	requesterID := input.RequesterID
	submitterID := requesterID
	if input.SubmitterID != nil {
		submitterID = *input.SubmitterID
	}

	via := domain.DefaultVia()
	if input.Via != nil {
		via = *input.Via
	}

	isPublic := true
	if input.Comment.Public != nil {
		isPublic = *input.Comment.Public
	}

	ticket := &domain.Ticket{
		ID:                  s.state.IDs.Allocate(persistence.NamespaceTicket),
		ExternalID:          input.ExternalID,
		Type:                input.Type,
		Subject:             input.Subject,
		RawSubject:          input.RawSubject,
		Description:         input.Comment.Body,
		Priority:            input.Priority,
		Status:              input.Status,
		Recipient:           input.Recipient,
		RequesterID:         requesterID,
		SubmitterID:         submitterID,
		AssigneeID:          input.AssigneeID,
		AssigneeEmail:       input.AssigneeEmail,
		OrganizationID:      input.OrganizationID,
		GroupID:             input.GroupID,
		CollaboratorIDs:     mergeUserList(input.CollaboratorIDs, input.Collaborators),
		FollowerIDs:         mergeUserList(input.FollowerIDs, input.Followers),
		EmailCCIDs:          mergeUserList(input.EmailCCIDs, input.EmailCCs),
		ProblemID:           input.ProblemID,
		HasIncidents:        false,
		IsPublic:            isPublic,
		DueAt:               input.DueAt,
		Tags:                append([]string{}, input.Tags...),
		CustomFields:        append([]domain.TicketField{}, input.CustomFields...),
		SharingAgreementIDs: append([]int64{}, input.SharingAgreementIDs...),
		Fields:              append([]domain.TicketField{}, input.CustomFields...),
		FollowupIDs:         []int64{},
		Via:                 via,
		BrandID:             input.BrandID,
		AllowChannelback:    false,
		AllowAttachments:    true,
		AttributeValueIDs:   append([]int64{}, input.AttributeValueIDs...),
		CustomStatusID:      input.CustomStatusID,
		Requester:           input.Requester,
		SafeUpdate:          input.SafeUpdate,
		TicketFormID:        input.TicketFormID,
		UpdatedStamp:        input.UpdatedStamp,
		ViaFollowupSourceID: input.ViaFollowupSourceID,
		ViaID:               input.ViaID,
		VoiceComment:        maps.Clone(input.VoiceComment),
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if ticket.Type == "" {
		ticket.Type = domain.TicketTypeQuestion
	}
	if ticket.Priority == "" {
		ticket.Priority = domain.TicketPriorityNormal
	}
	if ticket.Status == "" {
		ticket.Status = domain.TicketStatusNew
	}
	if ticket.RawSubject == "" {
		ticket.RawSubject = ticket.Subject
	}

	note := &CommentNote{
		AuthorID: submitterID,
		Body:     input.Comment.Body,
		HTMLBody: input.Comment.HTMLBody,
		Uploads:  input.Comment.Uploads,
	}
	if input.Comment.AuthorID != nil {
		note.AuthorID = *input.Comment.AuthorID
	}

	// Creation always records a Create event plus the Comment event, so
	// the composer never returns nil here.
	audit := s.composer.Compose(ComposeInput{
		TicketID:   ticket.ID,
		AuthorID:   submitterID,
		Via:        via,
		Public:     isPublic,
		CreateNote: fmt.Sprintf("Ticket created with status %s and priority %s.", ticket.Status, ticket.Priority),
		Comment:    note,
		Metadata:   input.Metadata,
		MacroID:    input.MacroID,
		MacroIDs:   input.MacroIDs,
		Now:        now,
	})

	comment := &domain.Comment{
		ID:          s.state.IDs.Allocate(persistence.NamespaceComment),
		TicketID:    ticket.ID,
		AuthorID:    submitterID,
		Body:        input.Comment.Body,
		HTMLBody:    input.Comment.HTMLBody,
		Public:      isPublic,
		Type:        domain.CommentTypeDefault,
		AuditID:     audit.ID,
		Attachments: append([]int64{}, attachmentIDs...),
		Metadata:    map[string]any{},
		Via:         &via,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if len(input.Comment.Uploads) > 0 {
		comment.Metadata["uploads"] = append([]string{}, input.Comment.Uploads...)
	}

	s.tickets.Insert(ticket)
	s.audits.Insert(audit)
	s.comments.Insert(comment)

	message := "Ticket created successfully. Someone will shortly assist you."
	if ticket.AssigneeID != nil && *ticket.AssigneeID != 0 {
		message = fmt.Sprintf("Ticket created successfully and transferred to human with agent ID %d.", *ticket.AssigneeID)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		ActorID:  submitterID,
		Payload: events.TicketCreatedPayload{
			Status:   ticket.Status,
			Priority: ticket.Priority,
			Type:     ticket.Type,
			Subject:  ticket.Subject,
			AuditID:  audit.ID,
			Assigned: ticket.AssigneeID != nil,
		},
	})

	return &TicketCreateResult{
		Ticket:  ticket.Clone(),
		Audit:   audit.Clone(),
		Comment: comment.Clone(),
		Message: message,
	}, nil
}

// UpdateTicket applies a patch to an existing ticket. A Change event
// is recorded per supplied field whose value actually changed; the
// value is applied regardless, and updated_at always advances. A
// supplied comment body yields a trailing Comment event and a comment
// record linked to the new audit.
func (s *TicketService) UpdateTicket(ctx context.Context, id int64, patch TicketUpdateInput) (domain.Ticket, error) {
	s.state.Lock()
	defer s.state.Unlock()

	ticket, ok := s.tickets.Get(id)
	if !ok {
		return domain.Ticket{}, util.NewTicketNotFound(id)
	}
	if err := validateTicketPatch(&patch); err != nil {
		return domain.Ticket{}, err
	}

	now := s.now()
	changes := applyTicketPatch(ticket, patch)
	ticket.UpdatedAt = now

	var note *CommentNote
	if patch.CommentBody != nil {
		note = &CommentNote{
			AuthorID: ticket.SubmitterID,
			Body:     *patch.CommentBody,
			HTMLBody: *patch.CommentBody,
		}
	}

	audit := s.composer.Compose(ComposeInput{
		TicketID: ticket.ID,
		AuthorID: ticket.SubmitterID,
		Via:      ticket.Via,
		Public:   ticket.IsPublic,
		Changes:  changes,
		Comment:  note,
		Now:      now,
	})
	if audit != nil {
		s.audits.Insert(audit)
	}

	var comment *domain.Comment
	if note != nil {
		via := ticket.Via
		comment = &domain.Comment{
			ID:          s.state.IDs.Allocate(persistence.NamespaceComment),
			TicketID:    ticket.ID,
			AuthorID:    ticket.SubmitterID,
			Body:        note.Body,
			HTMLBody:    note.HTMLBody,
			Public:      true,
			Type:        domain.CommentTypeDefault,
			AuditID:     audit.ID,
			Attachments: []int64{},
			Metadata:    map[string]any{},
			Via:         &via,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		s.comments.Insert(comment)
	}

	payload := events.TicketUpdatedPayload{ChangedFields: changedFieldNames(changes)}
	if audit != nil {
		auditID := audit.ID
		payload.AuditID = &auditID
	}
	if comment != nil {
		commentID := comment.ID
		payload.CommentID = &commentID
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketUpdated,
		TicketID: ticket.ID,
		ActorID:  ticket.SubmitterID,
		Payload:  payload,
	})

	return ticket.Clone(), nil
}

// DeleteTicket removes a ticket and returns its final snapshot. The
// audit trail and comments stay behind; ids are never reused.
func (s *TicketService) DeleteTicket(ctx context.Context, id int64) (domain.Ticket, error) {
	s.state.Lock()
	defer s.state.Unlock()

	ticket, ok := s.tickets.Delete(id)
	if !ok {
		return domain.Ticket{}, util.NewTicketNotFound(id)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketDeleted,
		TicketID: ticket.ID,
		ActorID:  ticket.SubmitterID,
		Payload: events.TicketDeletedPayload{
			Status: ticket.Status,
			Audits: s.audits.CountByTicket(id),
		},
	})

	return ticket.Clone(), nil
}

// ShowTicket returns a snapshot of one ticket.
func (s *TicketService) ShowTicket(ctx context.Context, id int64) (domain.Ticket, error) {
	s.state.Lock()
	defer s.state.Unlock()

	ticket, ok := s.tickets.Get(id)
	if !ok {
		return domain.Ticket{}, util.NewTicketNotFound(id)
	}
	return ticket.Clone(), nil
}

// ListTickets returns snapshots of all tickets ordered by id.
func (s *TicketService) ListTickets(ctx context.Context) []domain.Ticket {
	s.state.Lock()
	defer s.state.Unlock()

	stored := s.tickets.List()
	out := make([]domain.Ticket, 0, len(stored))
	for _, t := range stored {
		out = append(out, t.Clone())
	}
	return out
}

// resolveUploads maps upload tokens to the union of their attachment
// ids, preserving first-seen order. Unknown tokens abort before any
// write happens.
func (s *TicketService) resolveUploads(tokens []string) ([]int64, error) {
	if len(tokens) == 0 {
		return nil, nil
	}
	seen := make(map[int64]struct{})
	out := make([]int64, 0)
	for _, token := range tokens {
		upload, ok := s.uploads.Get(token)
		if !ok {
			return nil, util.NewUploadTokenNotFound(token)
		}
		for _, attachmentID := range upload.Attachments {
			if _, dup := seen[attachmentID]; dup {
				continue
			}
			seen[attachmentID] = struct{}{}
			out = append(out, attachmentID)
		}
	}
	return out, nil
}

func (s *TicketService) now() time.Time {
	return s.clk.Now().UTC().Truncate(time.Second)
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	publishEvent(ctx, s.dispatcher, s.clk, event)
}

// applyTicketPatch mutates the ticket in place and returns the changes
// in the fixed field order used by audit trails. A change is recorded
// only when the supplied value differs from the stored one; the value
// is applied either way.
func applyTicketPatch(t *domain.Ticket, patch TicketUpdateInput) []domain.FieldChange {
	changes := make([]domain.FieldChange, 0, 8)
	record := func(field string, previous, next any) {
		changes = append(changes, domain.FieldChange{Field: field, Previous: previous, New: next})
	}

	if patch.Subject != nil {
		if t.Subject != *patch.Subject {
			record("subject", nullableString(t.Subject), *patch.Subject)
		}
		t.Subject = *patch.Subject
	}
	if patch.Priority != nil {
		if t.Priority != *patch.Priority {
			record("priority", t.Priority, *patch.Priority)
		}
		t.Priority = *patch.Priority
	}
	if patch.TicketType != nil {
		if t.Type != *patch.TicketType {
			record("type", t.Type, *patch.TicketType)
		}
		t.Type = *patch.TicketType
	}
	if patch.Status != nil {
		if t.Status != *patch.Status {
			record("status", t.Status, *patch.Status)
		}
		t.Status = *patch.Status
	}
	if patch.AttributeValueIDs != nil {
		if !reflect.DeepEqual(t.AttributeValueIDs, patch.AttributeValueIDs) {
			record("attribute_value_ids", t.AttributeValueIDs, patch.AttributeValueIDs)
		}
		t.AttributeValueIDs = append([]int64{}, patch.AttributeValueIDs...)
	}
	if patch.CustomStatusID != nil {
		if t.CustomStatusID == nil || *t.CustomStatusID != *patch.CustomStatusID {
			record("custom_status_id", nullableInt64(t.CustomStatusID), *patch.CustomStatusID)
		}
		t.CustomStatusID = patch.CustomStatusID
	}
	if patch.Requester != nil {
		if t.Requester != *patch.Requester {
			record("requester", nullableString(t.Requester), *patch.Requester)
		}
		t.Requester = *patch.Requester
	}
	if patch.SafeUpdate != nil {
		if t.SafeUpdate == nil || *t.SafeUpdate != *patch.SafeUpdate {
			record("safe_update", nullableBool(t.SafeUpdate), *patch.SafeUpdate)
		}
		t.SafeUpdate = patch.SafeUpdate
	}
	if patch.TicketFormID != nil {
		if t.TicketFormID == nil || *t.TicketFormID != *patch.TicketFormID {
			record("ticket_form_id", nullableInt64(t.TicketFormID), *patch.TicketFormID)
		}
		t.TicketFormID = patch.TicketFormID
	}
	if patch.UpdatedStamp != nil {
		if t.UpdatedStamp != *patch.UpdatedStamp {
			record("updated_stamp", nullableString(t.UpdatedStamp), *patch.UpdatedStamp)
		}
		t.UpdatedStamp = *patch.UpdatedStamp
	}
	if patch.ViaFollowupSourceID != nil {
		if t.ViaFollowupSourceID == nil || *t.ViaFollowupSourceID != *patch.ViaFollowupSourceID {
			record("via_followup_source_id", nullableInt64(t.ViaFollowupSourceID), *patch.ViaFollowupSourceID)
		}
		t.ViaFollowupSourceID = patch.ViaFollowupSourceID
	}
	if patch.ViaID != nil {
		if t.ViaID == nil || *t.ViaID != *patch.ViaID {
			record("via_id", nullableInt64(t.ViaID), *patch.ViaID)
		}
		t.ViaID = patch.ViaID
	}
	if patch.VoiceComment != nil {
		if !reflect.DeepEqual(t.VoiceComment, patch.VoiceComment) {
			record("voice_comment", t.VoiceComment, patch.VoiceComment)
		}
		t.VoiceComment = maps.Clone(patch.VoiceComment)
	}
	if patch.AssigneeID != nil {
		if t.AssigneeID == nil || *t.AssigneeID != *patch.AssigneeID {
			record("assignee_id", nullableInt64(t.AssigneeID), *patch.AssigneeID)
		}
		t.AssigneeID = patch.AssigneeID
	}
	if patch.AssigneeEmail != nil {
		if t.AssigneeEmail != *patch.AssigneeEmail {
			record("assignee_email", nullableString(t.AssigneeEmail), *patch.AssigneeEmail)
		}
		t.AssigneeEmail = *patch.AssigneeEmail
	}

	return changes
}

func validateTicketCreate(input *TicketCreateInput) error {
	if input.RequesterID == 0 {
		return util.NewValidationError("requester_id is required", nil)
	}
	if input.Comment == nil || strings.TrimSpace(input.Comment.Body) == "" {
		return util.NewValidationError("comment with a non-empty body is required", nil)
	}
	if input.Status != "" && !domain.ValidTicketStatus(input.Status) {
		return invalidEnum("status", string(input.Status))
	}
	if input.Priority != "" && !domain.ValidTicketPriority(input.Priority) {
		return invalidEnum("priority", string(input.Priority))
	}
	if input.Type != "" && !domain.ValidTicketType(input.Type) {
		return invalidEnum("type", string(input.Type))
	}
	if input.TicketFormID != nil && *input.TicketFormID < 0 {
		return util.NewValidationError("ticket_form_id must be greater than or equal to 0", nil)
	}
	if input.ViaFollowupSourceID != nil && *input.ViaFollowupSourceID < 0 {
		return util.NewValidationError("via_followup_source_id must be greater than or equal to 0", nil)
	}
	return nil
}

func validateTicketPatch(patch *TicketUpdateInput) error {
	if patch.Subject != nil && strings.TrimSpace(*patch.Subject) == "" {
		return util.NewValidationError("subject must be a non-empty string", nil)
	}
	if patch.CommentBody != nil && strings.TrimSpace(*patch.CommentBody) == "" {
		return util.NewValidationError("comment_body must be a non-empty string", nil)
	}
	if patch.Status != nil && !domain.ValidTicketStatus(*patch.Status) {
		return invalidEnum("status", string(*patch.Status))
	}
	if patch.Priority != nil && !domain.ValidTicketPriority(*patch.Priority) {
		return invalidEnum("priority", string(*patch.Priority))
	}
	if patch.TicketType != nil && !domain.ValidTicketType(*patch.TicketType) {
		return invalidEnum("ticket_type", string(*patch.TicketType))
	}
	if patch.TicketFormID != nil && *patch.TicketFormID < 0 {
		return util.NewValidationError("ticket_form_id must be greater than or equal to 0", nil)
	}
	if patch.ViaFollowupSourceID != nil && *patch.ViaFollowupSourceID < 0 {
		return util.NewValidationError("via_followup_source_id must be greater than or equal to 0", nil)
	}
	return nil
}

func invalidEnum(field, value string) error {
	return util.NewValidationError(
		fmt.Sprintf("%s has unsupported value %q", field, value),
		map[string]any{"field": field, "value": value},
	)
}

// mergeUserList merges the id-list and object-list spellings of a
// collaborator set into one deduplicated, sorted id slice.
func mergeUserList(ids []int64, objects []CollaboratorInput) []int64 {
	seen := make(map[int64]struct{}, len(ids)+len(objects))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	for _, obj := range objects {
		if obj.UserID == nil || obj.Action == "delete" {
			continue
		}
		seen[*obj.UserID] = struct{}{}
	}
	out := make([]int64, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func changedFieldNames(changes []domain.FieldChange) []string {
	names := make([]string, 0, len(changes))
	for _, change := range changes {
		names = append(names, change.Field)
	}
	return names
}

// nullableString maps the empty string to a JSON null, matching how
// absent optional strings appear in audit trails.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableInt64(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullableBool(p *bool) any {
	if p == nil {
		return nil
	}
	return *p
}

func publishEvent(ctx context.Context, dispatcher events.Dispatcher, clk clock.Clock, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = clk.Now().UTC()
	}
	_ = dispatcher.Publish(ctx, event)
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
