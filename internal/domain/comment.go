package domain

import "time"

// CommentTypeDefault is the type tag comments carry on the wire.
const CommentTypeDefault = "Comment"

// Comment is a body of text attached to a ticket. AuditID links back to
// the audit produced by the mutation that recorded the comment; it is
// zero only for comments created outside a ticket mutation.
type Comment struct {
	ID          int64          `json:"id"`
	TicketID    int64          `json:"ticket_id"`
	AuthorID    int64          `json:"author_id"`
	Body        string         `json:"body"`
	HTMLBody    string         `json:"html_body,omitempty"`
	Public      bool           `json:"public"`
	Type        string         `json:"type"`
	AuditID     int64          `json:"audit_id,omitempty"`
	Attachments []int64        `json:"attachments"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	Via         *Via           `json:"via,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Clone returns an independent copy.
func (c Comment) Clone() Comment {
	out := c
	out.Attachments = append([]int64(nil), c.Attachments...)
	if c.Metadata != nil {
		out.Metadata = make(map[string]any, len(c.Metadata))
		for k, v := range c.Metadata {
			out.Metadata[k] = v
		}
	}
	if c.Via != nil {
		via := *c.Via
		out.Via = &via
	}
	return out
}
