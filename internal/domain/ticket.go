package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusNew     TicketStatus = "new"
	TicketStatusOpen    TicketStatus = "open"
	TicketStatusPending TicketStatus = "pending"
	TicketStatusHold    TicketStatus = "hold"
	TicketStatusSolved  TicketStatus = "solved"
	TicketStatusClosed  TicketStatus = "closed"
)

// ValidTicketStatus reports whether s is one of the enumerated statuses.
// Any enumerated value is accepted from any prior state; there is no
// transition legality check.
func ValidTicketStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusNew, TicketStatusOpen, TicketStatusPending,
		TicketStatusHold, TicketStatusSolved, TicketStatusClosed:
		return true
	}
	return false
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityUrgent TicketPriority = "urgent"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityNormal TicketPriority = "normal"
	TicketPriorityLow    TicketPriority = "low"
)

// ValidTicketPriority reports whether p is one of the enumerated priorities.
func ValidTicketPriority(p TicketPriority) bool {
	switch p {
	case TicketPriorityUrgent, TicketPriorityHigh, TicketPriorityNormal, TicketPriorityLow:
		return true
	}
	return false
}

// TicketType enumerates ticket categories.
type TicketType string

const (
	TicketTypeProblem  TicketType = "problem"
	TicketTypeIncident TicketType = "incident"
	TicketTypeQuestion TicketType = "question"
	TicketTypeTask     TicketType = "task"
)

// ValidTicketType reports whether t is one of the enumerated types.
func ValidTicketType(t TicketType) bool {
	switch t {
	case TicketTypeProblem, TicketTypeIncident, TicketTypeQuestion, TicketTypeTask:
		return true
	}
	return false
}

// ViaSource describes where a channel interaction originated.
type ViaSource struct {
	Rel string `json:"rel"`
}

// Via records the channel a ticket or event came in through.
type Via struct {
	Channel string    `json:"channel"`
	Source  ViaSource `json:"source"`
}

// DefaultVia is used when a draft does not carry a via descriptor.
func DefaultVia() Via {
	return Via{Channel: "api", Source: ViaSource{Rel: "api_client"}}
}

// TicketField is one custom field entry, ordered as supplied.
type TicketField struct {
	ID    int64 `json:"id"`
	Value any   `json:"value"`
}

// FieldChange records one attribute mutation for the audit trail.
// Previous is the value immediately before the mutation was applied.
type FieldChange struct {
	Field    string
	Previous any
	New      any
}

// Ticket is the aggregate for simulated support requests. Presentation
// fields (encoded id, generated timestamp, url) are derived on output
// and never stored.
type Ticket struct {
	ID                   int64          `json:"id"`
	ExternalID           string         `json:"external_id,omitempty"`
	Type                 TicketType     `json:"type"`
	Subject              string         `json:"subject,omitempty"`
	RawSubject           string         `json:"raw_subject,omitempty"`
	Description          string         `json:"description"`
	Priority             TicketPriority `json:"priority"`
	Status               TicketStatus   `json:"status"`
	Recipient            string         `json:"recipient,omitempty"`
	RequesterID          int64          `json:"requester_id"`
	SubmitterID          int64          `json:"submitter_id"`
	AssigneeID           *int64         `json:"assignee_id,omitempty"`
	AssigneeEmail        string         `json:"assignee_email,omitempty"`
	OrganizationID       *int64         `json:"organization_id,omitempty"`
	GroupID              *int64         `json:"group_id,omitempty"`
	CollaboratorIDs      []int64        `json:"collaborator_ids"`
	FollowerIDs          []int64        `json:"follower_ids"`
	EmailCCIDs           []int64        `json:"email_cc_ids"`
	ForumTopicID         *int64         `json:"forum_topic_id,omitempty"`
	ProblemID            *int64         `json:"problem_id,omitempty"`
	HasIncidents         bool           `json:"has_incidents"`
	IsPublic             bool           `json:"is_public"`
	DueAt                string         `json:"due_at,omitempty"`
	Tags                 []string       `json:"tags"`
	CustomFields         []TicketField  `json:"custom_fields"`
	SatisfactionRating   any            `json:"satisfaction_rating,omitempty"`
	SharingAgreementIDs  []int64        `json:"sharing_agreement_ids"`
	Fields               []TicketField  `json:"fields"`
	FollowupIDs          []int64        `json:"followup_ids"`
	Via                  Via            `json:"via"`
	BrandID              *int64         `json:"brand_id,omitempty"`
	AllowChannelback     bool           `json:"allow_channelback"`
	AllowAttachments     bool           `json:"allow_attachments"`
	FromMessagingChannel bool           `json:"from_messaging_channel"`
	AttributeValueIDs    []int64        `json:"attribute_value_ids"`
	CustomStatusID       *int64         `json:"custom_status_id,omitempty"`
	Requester            string         `json:"requester,omitempty"`
	SafeUpdate           *bool          `json:"safe_update,omitempty"`
	TicketFormID         *int64         `json:"ticket_form_id,omitempty"`
	UpdatedStamp         string         `json:"updated_stamp,omitempty"`
	ViaFollowupSourceID  *int64         `json:"via_followup_source_id,omitempty"`
	ViaID                *int64         `json:"via_id,omitempty"`
	VoiceComment         map[string]any `json:"voice_comment,omitempty"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

// Clone returns an independent copy; callers never alias stored slices
// or maps.
func (t Ticket) Clone() Ticket {
	out := t
	out.CollaboratorIDs = append([]int64(nil), t.CollaboratorIDs...)
	out.FollowerIDs = append([]int64(nil), t.FollowerIDs...)
	out.EmailCCIDs = append([]int64(nil), t.EmailCCIDs...)
	out.Tags = append([]string(nil), t.Tags...)
	out.CustomFields = append([]TicketField(nil), t.CustomFields...)
	out.Fields = append([]TicketField(nil), t.Fields...)
	out.SharingAgreementIDs = append([]int64(nil), t.SharingAgreementIDs...)
	out.FollowupIDs = append([]int64(nil), t.FollowupIDs...)
	out.AttributeValueIDs = append([]int64(nil), t.AttributeValueIDs...)
	out.AssigneeID = cloneInt64Ptr(t.AssigneeID)
	out.OrganizationID = cloneInt64Ptr(t.OrganizationID)
	out.GroupID = cloneInt64Ptr(t.GroupID)
	out.ForumTopicID = cloneInt64Ptr(t.ForumTopicID)
	out.ProblemID = cloneInt64Ptr(t.ProblemID)
	out.BrandID = cloneInt64Ptr(t.BrandID)
	out.CustomStatusID = cloneInt64Ptr(t.CustomStatusID)
	out.TicketFormID = cloneInt64Ptr(t.TicketFormID)
	out.ViaFollowupSourceID = cloneInt64Ptr(t.ViaFollowupSourceID)
	out.ViaID = cloneInt64Ptr(t.ViaID)
	if t.SafeUpdate != nil {
		v := *t.SafeUpdate
		out.SafeUpdate = &v
	}
	if t.VoiceComment != nil {
		out.VoiceComment = make(map[string]any, len(t.VoiceComment))
		for k, v := range t.VoiceComment {
			out.VoiceComment[k] = v
		}
	}
	return out
}

func cloneInt64Ptr(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
