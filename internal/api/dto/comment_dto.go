package dto

import (
	"github.com/spec-kit/helpdesk-sim/internal/domain"
	"github.com/spec-kit/helpdesk-sim/internal/service"
)

// ListTicketCommentsRequest payload.
type ListTicketCommentsRequest struct {
	TicketID int64 `json:"ticket_id"`
	service.CommentListParams
}

// CreateCommentRequest payload for the standalone comment surface.
type CreateCommentRequest struct {
	TicketID    int64   `json:"ticket_id"`
	AuthorID    int64   `json:"author_id"`
	Body        string  `json:"body"`
	Public      *bool   `json:"public,omitempty"`
	CommentType string  `json:"comment_type,omitempty"`
	AuditID     *int64  `json:"audit_id,omitempty"`
	Attachments []int64 `json:"attachments,omitempty"`
}

// ToInput converts the request into the service input shape.
func (r CreateCommentRequest) ToInput() service.CommentCreateInput {
	return service.CommentCreateInput{
		TicketID:    r.TicketID,
		AuthorID:    r.AuthorID,
		Body:        r.Body,
		Public:      r.Public,
		Type:        r.CommentType,
		AuditID:     r.AuditID,
		Attachments: r.Attachments,
	}
}

// UpdateCommentRequest payload.
type UpdateCommentRequest struct {
	CommentID   int64   `json:"comment_id"`
	Body        *string `json:"body,omitempty"`
	Public      *bool   `json:"public,omitempty"`
	CommentType *string `json:"comment_type,omitempty"`
	AuditID     *int64  `json:"audit_id,omitempty"`
	Attachments []int64 `json:"attachments,omitempty"`
}

// ToInput converts the request into the service patch shape.
func (r UpdateCommentRequest) ToInput() service.CommentUpdateInput {
	return service.CommentUpdateInput{
		Body:        r.Body,
		Public:      r.Public,
		Type:        r.CommentType,
		AuditID:     r.AuditID,
		Attachments: r.Attachments,
	}
}

// CommentIDRequest addresses one comment.
type CommentIDRequest struct {
	CommentID int64 `json:"comment_id"`
}

// CommentResponse is one comment on the wire. Attachments holds bare
// ids, or the full records when inline resolution was requested.
type CommentResponse struct {
	domain.Comment
	Attachments any `json:"attachments"`
}

// NewCommentResponse assembles one comment view.
func NewCommentResponse(view service.CommentView) CommentResponse {
	resp := CommentResponse{Comment: view.Comment, Attachments: view.Comment.Attachments}
	if view.Attachments != nil {
		resp.Attachments = view.Attachments
	}
	return resp
}

// CommentListResponse is one page of a ticket's comments.
type CommentListResponse struct {
	Comments   []CommentResponse `json:"comments"`
	Pagination service.PageMeta  `json:"pagination"`
}

// NewCommentListResponse assembles a page of comment views.
func NewCommentListResponse(page *service.CommentPage) CommentListResponse {
	comments := make([]CommentResponse, 0, len(page.Comments))
	for _, view := range page.Comments {
		comments = append(comments, NewCommentResponse(view))
	}
	return CommentListResponse{Comments: comments, Pagination: page.Meta}
}
