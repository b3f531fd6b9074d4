package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spec-kit/helpdesk-sim/internal/domain"
	"github.com/spec-kit/helpdesk-sim/internal/events"
	"github.com/spec-kit/helpdesk-sim/pkg/util"
)

func TestCreateCommentDefaults(t *testing.T) {
	f := newFixture()
	author := f.seedUser(t, "Riley Chen", "riley@example.com")
	ticket := f.createTicket(t, basicCreateInput()).Ticket
	f.clk.Advance(5 * time.Minute)

	comment, err := f.comments.CreateComment(context.Background(), CommentCreateInput{
		TicketID: ticket.ID,
		AuthorID: author.ID,
		Body:     "  Looked into it.  ",
	})
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	if comment.Body != "Looked into it." {
		t.Errorf("body = %q, want trimmed", comment.Body)
	}
	if !comment.Public || comment.Type != domain.CommentTypeDefault {
		t.Errorf("comment = public %v type %q", comment.Public, comment.Type)
	}
	if comment.AuditID != 0 {
		t.Errorf("audit_id = %d, want 0 for standalone comment", comment.AuditID)
	}
	// The in-ticket creation comment took id 1.
	if comment.ID != 2 {
		t.Errorf("id = %d, want 2", comment.ID)
	}

	parent, err := f.tickets.ShowTicket(context.Background(), ticket.ID)
	if err != nil {
		t.Fatalf("ShowTicket: %v", err)
	}
	if !parent.UpdatedAt.Equal(fixtureStart.Add(5 * time.Minute)) {
		t.Errorf("parent updated_at = %v, want bumped", parent.UpdatedAt)
	}

	published := f.dispatcher.byType(events.EventCommentAdded)
	if len(published) != 1 {
		t.Fatalf("comment_added events = %d, want 1", len(published))
	}
	payload := published[0].Payload.(events.CommentAddedPayload)
	if payload.CommentID != comment.ID || payload.BodyPreview != "Looked into it." {
		t.Errorf("payload = %+v", payload)
	}
}

func TestCreateCommentValidation(t *testing.T) {
	f := newFixture()
	author := f.seedUser(t, "Riley Chen", "riley@example.com")
	ticket := f.createTicket(t, basicCreateInput()).Ticket

	tests := []struct {
		name     string
		input    CommentCreateInput
		wantCode string
	}{
		{"blank body", CommentCreateInput{TicketID: ticket.ID, AuthorID: author.ID, Body: " \n "}, util.CodeValidation},
		{"unknown ticket", CommentCreateInput{TicketID: 404, AuthorID: author.ID, Body: "x"}, util.CodeTicketNotFound},
		{"unknown author", CommentCreateInput{TicketID: ticket.ID, AuthorID: 404, Body: "x"}, util.CodeUserNotFound},
		{"unknown attachment", CommentCreateInput{TicketID: ticket.ID, AuthorID: author.ID, Body: "x", Attachments: []int64{99}}, util.CodeAttachmentMissing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.comments.CreateComment(context.Background(), tt.input)
			if util.CodeOf(err) != tt.wantCode {
				t.Fatalf("error = %v, want %s", err, tt.wantCode)
			}
		})
	}

	f.state.Lock()
	stored := len(f.state.CommentsForTicket(ticket.ID))
	f.state.Unlock()
	if stored != 1 {
		t.Fatalf("comments after rejected creates = %d, want only the creation comment", stored)
	}
}

func TestCreateCommentBodyPreviewTruncation(t *testing.T) {
	f := newFixture()
	author := f.seedUser(t, "Riley Chen", "riley@example.com")
	ticket := f.createTicket(t, basicCreateInput()).Ticket

	long := strings.Repeat("a", 150)
	if _, err := f.comments.CreateComment(context.Background(), CommentCreateInput{
		TicketID: ticket.ID,
		AuthorID: author.ID,
		Body:     long,
	}); err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	payload := f.dispatcher.byType(events.EventCommentAdded)[0].Payload.(events.CommentAddedPayload)
	want := strings.Repeat("a", 117) + "..."
	if payload.BodyPreview != want {
		t.Fatalf("preview = %q (len %d), want 117 chars + ellipsis", payload.BodyPreview, len(payload.BodyPreview))
	}
}

func TestUpdateCommentValidatesBeforeApplying(t *testing.T) {
	f := newFixture()
	author := f.seedUser(t, "Riley Chen", "riley@example.com")
	ticket := f.createTicket(t, basicCreateInput()).Ticket
	comment, err := f.comments.CreateComment(context.Background(), CommentCreateInput{
		TicketID: ticket.ID, AuthorID: author.ID, Body: "original",
	})
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	_, err = f.comments.UpdateComment(context.Background(), comment.ID, CommentUpdateInput{
		Body:        ptr("replacement"),
		Attachments: []int64{99},
	})
	if util.CodeOf(err) != util.CodeAttachmentMissing {
		t.Fatalf("error = %v, want %s", err, util.CodeAttachmentMissing)
	}

	stored, err := f.comments.ShowComment(context.Background(), comment.ID)
	if err != nil {
		t.Fatalf("ShowComment: %v", err)
	}
	if stored.Body != "original" {
		t.Fatalf("body = %q, failed patch partially applied", stored.Body)
	}
}

func TestUpdateCommentPatches(t *testing.T) {
	f := newFixture()
	author := f.seedUser(t, "Riley Chen", "riley@example.com")
	ticket := f.createTicket(t, basicCreateInput()).Ticket
	upload := f.seedUpload(t, "log.txt", "")
	comment, err := f.comments.CreateComment(context.Background(), CommentCreateInput{
		TicketID: ticket.ID, AuthorID: author.ID, Body: "original",
	})
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	f.clk.Advance(time.Minute)

	updated, err := f.comments.UpdateComment(context.Background(), comment.ID, CommentUpdateInput{
		Body:        ptr("  revised  "),
		Public:      ptr(false),
		Attachments: []int64{upload.Attachments[0].ID},
	})
	if err != nil {
		t.Fatalf("UpdateComment: %v", err)
	}

	if updated.Body != "revised" || updated.Public {
		t.Errorf("comment = body %q public %v", updated.Body, updated.Public)
	}
	if len(updated.Attachments) != 1 || updated.Attachments[0] != upload.Attachments[0].ID {
		t.Errorf("attachments = %v", updated.Attachments)
	}
	if !updated.UpdatedAt.Equal(fixtureStart.Add(time.Minute)) {
		t.Errorf("updated_at = %v, want bumped", updated.UpdatedAt)
	}
	if updated.CreatedAt.Equal(updated.UpdatedAt) {
		t.Error("created_at moved with the patch")
	}

	parent, err := f.tickets.ShowTicket(context.Background(), ticket.ID)
	if err != nil {
		t.Fatalf("ShowTicket: %v", err)
	}
	if !parent.UpdatedAt.Equal(fixtureStart.Add(time.Minute)) {
		t.Errorf("parent updated_at = %v, want bumped by comment patch", parent.UpdatedAt)
	}
}

func TestDeleteCommentBumpsTicket(t *testing.T) {
	f := newFixture()
	author := f.seedUser(t, "Riley Chen", "riley@example.com")
	ticket := f.createTicket(t, basicCreateInput()).Ticket
	comment, err := f.comments.CreateComment(context.Background(), CommentCreateInput{
		TicketID: ticket.ID, AuthorID: author.ID, Body: "ephemeral",
	})
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	f.clk.Advance(time.Hour)

	removed, err := f.comments.DeleteComment(context.Background(), comment.ID)
	if err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}
	if removed.Body != "ephemeral" {
		t.Errorf("removed body = %q", removed.Body)
	}

	if _, err := f.comments.ShowComment(context.Background(), comment.ID); util.CodeOf(err) != util.CodeCommentNotFound {
		t.Fatalf("show after delete = %v, want %s", err, util.CodeCommentNotFound)
	}
	parent, err := f.tickets.ShowTicket(context.Background(), ticket.ID)
	if err != nil {
		t.Fatalf("ShowTicket: %v", err)
	}
	if !parent.UpdatedAt.Equal(fixtureStart.Add(time.Hour)) {
		t.Errorf("parent updated_at = %v, want bumped by delete", parent.UpdatedAt)
	}
}

func TestDeleteCommentNotFound(t *testing.T) {
	f := newFixture()
	if _, err := f.comments.DeleteComment(context.Background(), 12); util.CodeOf(err) != util.CodeCommentNotFound {
		t.Fatalf("error = %v, want %s", err, util.CodeCommentNotFound)
	}
}

// seedCommentThread builds a ticket with three comments at staggered
// timestamps: the creation comment at start, two standalone ones 10 and
// 20 seconds later, with the second standalone comment patched last.
func seedCommentThread(t *testing.T, f *fixture) int64 {
	t.Helper()
	author := f.seedUser(t, "Riley Chen", "riley@example.com")
	ticket := f.createTicket(t, basicCreateInput()).Ticket

	f.clk.Advance(10 * time.Second)
	second, err := f.comments.CreateComment(context.Background(), CommentCreateInput{
		TicketID: ticket.ID, AuthorID: author.ID, Body: "second",
	})
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	f.clk.Advance(10 * time.Second)
	if _, err := f.comments.CreateComment(context.Background(), CommentCreateInput{
		TicketID: ticket.ID, AuthorID: author.ID, Body: "third",
	}); err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	f.clk.Advance(10 * time.Second)
	if _, err := f.comments.UpdateComment(context.Background(), second.ID, CommentUpdateInput{
		Body: ptr("second, revised"),
	}); err != nil {
		t.Fatalf("UpdateComment: %v", err)
	}
	return ticket.ID
}

func TestListTicketCommentsSorting(t *testing.T) {
	f := newFixture()
	ticketID := seedCommentThread(t, f)

	tests := []struct {
		name    string
		params  CommentListParams
		wantIDs []int64
	}{
		{"created asc default", CommentListParams{}, []int64{1, 2, 3}},
		{"created desc", CommentListParams{SortOrder: "DESC"}, []int64{3, 2, 1}},
		{"updated asc", CommentListParams{SortBy: "updated_at"}, []int64{1, 3, 2}},
		{"updated desc", CommentListParams{SortBy: "updated_at", SortOrder: "desc"}, []int64{2, 3, 1}},
		{"unknown sort field falls back", CommentListParams{SortBy: "karma"}, []int64{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := f.comments.ListTicketComments(context.Background(), ticketID, tt.params)
			if err != nil {
				t.Fatalf("ListTicketComments: %v", err)
			}
			got := make([]int64, 0, len(page.Comments))
			for _, view := range page.Comments {
				got = append(got, view.Comment.ID)
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("ids = %v, want %v", got, tt.wantIDs)
			}
			for i := range got {
				if got[i] != tt.wantIDs[i] {
					t.Fatalf("ids = %v, want %v", got, tt.wantIDs)
				}
			}
		})
	}
}

func TestListTicketCommentsPagination(t *testing.T) {
	f := newFixture()
	ticketID := seedCommentThread(t, f)

	page, err := f.comments.ListTicketComments(context.Background(), ticketID, CommentListParams{Page: 2, PerPage: 2})
	if err != nil {
		t.Fatalf("ListTicketComments: %v", err)
	}
	if len(page.Comments) != 1 || page.Comments[0].Comment.ID != 3 {
		t.Fatalf("page 2 = %d comments", len(page.Comments))
	}
	want := PageMeta{Page: 2, PerPage: 2, Total: 3, Pages: 2}
	if page.Meta != want {
		t.Fatalf("meta = %+v, want %+v", page.Meta, want)
	}
}

func TestListTicketCommentsIncludeAttachments(t *testing.T) {
	f := newFixture()
	author := f.seedUser(t, "Riley Chen", "riley@example.com")
	ticket := f.createTicket(t, basicCreateInput()).Ticket
	upload := f.seedUpload(t, "trace.txt", "")

	if _, err := f.comments.CreateComment(context.Background(), CommentCreateInput{
		TicketID:    ticket.ID,
		AuthorID:    author.ID,
		Body:        "see attached",
		Attachments: []int64{upload.Attachments[0].ID},
	}); err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	page, err := f.comments.ListTicketComments(context.Background(), ticket.ID, CommentListParams{})
	if err != nil {
		t.Fatalf("ListTicketComments: %v", err)
	}
	for _, view := range page.Comments {
		if view.Attachments != nil {
			t.Fatalf("attachments resolved without include_attachments: %v", view.Attachments)
		}
	}

	page, err = f.comments.ListTicketComments(context.Background(), ticket.ID, CommentListParams{IncludeAttachments: true})
	if err != nil {
		t.Fatalf("ListTicketComments include: %v", err)
	}
	last := page.Comments[len(page.Comments)-1]
	if len(last.Attachments) != 1 || last.Attachments[0].FileName != "trace.txt" {
		t.Fatalf("resolved attachments = %+v", last.Attachments)
	}
}

func TestListTicketCommentsUnknownTicket(t *testing.T) {
	f := newFixture()
	if _, err := f.comments.ListTicketComments(context.Background(), 404, CommentListParams{}); util.CodeOf(err) != util.CodeTicketNotFound {
		t.Fatalf("error = %v, want %s", err, util.CodeTicketNotFound)
	}
}
