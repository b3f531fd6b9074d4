package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType tags the audit event variants.
type EventType string

const (
	EventTypeCreate  EventType = "Create"
	EventTypeChange  EventType = "Change"
	EventTypeComment EventType = "Comment"
)

// Event is one typed entry in an audit trail. Exactly three variants
// exist: CreateEvent, ChangeEvent and CommentEvent. Events are
// append-only and never mutated after composition.
type Event interface {
	EventType() EventType
	EventID() int64
	EventAuthor() int64
}

// CreateEvent records ticket creation with a human-readable summary.
type CreateEvent struct {
	ID       int64
	AuthorID int64
	Value    string
	Via      Via
}

func (CreateEvent) EventType() EventType { return EventTypeCreate }
func (e CreateEvent) EventID() int64     { return e.ID }
func (e CreateEvent) EventAuthor() int64 { return e.AuthorID }

// ChangeEvent records one attribute change. PreviousValue equals the
// ticket's value immediately before the mutation that produced it.
type ChangeEvent struct {
	ID            int64
	AuthorID      int64
	FieldName     string
	PreviousValue any
	Value         any
	Public        bool
	Via           Via
}

func (ChangeEvent) EventType() EventType { return EventTypeChange }
func (e ChangeEvent) EventID() int64     { return e.ID }
func (e ChangeEvent) EventAuthor() int64 { return e.AuthorID }

// CommentEvent records a comment added in the same mutation.
type CommentEvent struct {
	ID       int64
	AuthorID int64
	Body     string
	HTMLBody string
	Public   bool
	Uploads  []string
	Via      Via
}

func (CommentEvent) EventType() EventType { return EventTypeComment }
func (e CommentEvent) EventID() int64     { return e.ID }
func (e CommentEvent) EventAuthor() int64 { return e.AuthorID }

// EventList is an ordered event sequence that round-trips the tagged
// union through the flat JSON record form.
type EventList []Event

// eventRecord is the flat tagged shape events take in JSON. Fields that
// do not apply to a variant are explicit nulls, matching the simulated
// wire format.
type eventRecord struct {
	ID            int64     `json:"id"`
	Type          EventType `json:"type"`
	AuthorID      int64     `json:"author_id"`
	Value         any       `json:"value"`
	FieldName     *string   `json:"field_name"`
	PreviousValue any       `json:"previous_value"`
	Body          *string   `json:"body"`
	HTMLBody      string    `json:"html_body,omitempty"`
	Public        *bool     `json:"public"`
	Uploads       []string  `json:"uploads,omitempty"`
	Via           Via       `json:"via"`
}

func recordFromEvent(ev Event) (eventRecord, error) {
	switch e := ev.(type) {
	case CreateEvent:
		return eventRecord{
			ID:       e.ID,
			Type:     EventTypeCreate,
			AuthorID: e.AuthorID,
			Value:    e.Value,
			Via:      e.Via,
		}, nil
	case ChangeEvent:
		public := e.Public
		field := e.FieldName
		return eventRecord{
			ID:            e.ID,
			Type:          EventTypeChange,
			AuthorID:      e.AuthorID,
			FieldName:     &field,
			PreviousValue: e.PreviousValue,
			Value:         e.Value,
			Public:        &public,
			Via:           e.Via,
		}, nil
	case CommentEvent:
		public := e.Public
		body := e.Body
		return eventRecord{
			ID:       e.ID,
			Type:     EventTypeComment,
			AuthorID: e.AuthorID,
			Body:     &body,
			HTMLBody: e.HTMLBody,
			Public:   &public,
			Value:    e.Body,
			Uploads:  append([]string(nil), e.Uploads...),
			Via:      e.Via,
		}, nil
	default:
		return eventRecord{}, fmt.Errorf("unknown audit event type %T", ev)
	}
}

func eventFromRecord(r eventRecord) (Event, error) {
	switch r.Type {
	case EventTypeCreate:
		value, _ := r.Value.(string)
		return CreateEvent{ID: r.ID, AuthorID: r.AuthorID, Value: value, Via: r.Via}, nil
	case EventTypeChange:
		ev := ChangeEvent{
			ID:            r.ID,
			AuthorID:      r.AuthorID,
			PreviousValue: r.PreviousValue,
			Value:         r.Value,
			Via:           r.Via,
		}
		if r.FieldName != nil {
			ev.FieldName = *r.FieldName
		}
		if r.Public != nil {
			ev.Public = *r.Public
		}
		return ev, nil
	case EventTypeComment:
		ev := CommentEvent{
			ID:       r.ID,
			AuthorID: r.AuthorID,
			HTMLBody: r.HTMLBody,
			Uploads:  r.Uploads,
			Public:   true,
			Via:      r.Via,
		}
		if r.Body != nil {
			ev.Body = *r.Body
		}
		if r.Public != nil {
			ev.Public = *r.Public
		}
		return ev, nil
	default:
		return nil, fmt.Errorf("unknown audit event type %q", r.Type)
	}
}

// MarshalJSON emits the flat tagged record form.
func (l EventList) MarshalJSON() ([]byte, error) {
	records := make([]eventRecord, 0, len(l))
	for _, ev := range l {
		r, err := recordFromEvent(ev)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return json.Marshal(records)
}

// UnmarshalJSON rebuilds the typed events from the record form.
func (l *EventList) UnmarshalJSON(data []byte) error {
	var records []eventRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return err
	}
	events := make(EventList, 0, len(records))
	for _, r := range records {
		ev, err := eventFromRecord(r)
		if err != nil {
			return err
		}
		events = append(events, ev)
	}
	*l = events
	return nil
}

// AuditMetadata carries optional system/custom annotation maps. The
// system map may hold applied_macro_ids, a deduplicated sorted slice.
type AuditMetadata struct {
	System map[string]any `json:"system,omitempty"`
	Custom map[string]any `json:"custom,omitempty"`
}

// Audit is an immutable record of one ticket mutation. Its event
// sequence is never empty: mutations that change nothing and carry no
// comment do not produce an audit at all.
type Audit struct {
	ID        int64         `json:"id"`
	TicketID  int64         `json:"ticket_id"`
	AuthorID  int64         `json:"author_id"`
	Metadata  AuditMetadata `json:"metadata"`
	Events    EventList     `json:"events"`
	CreatedAt time.Time     `json:"created_at"`
}

// Clone returns an independent copy. Event values are shared because
// events are immutable once composed.
func (a Audit) Clone() Audit {
	out := a
	out.Events = append(EventList(nil), a.Events...)
	if a.Metadata.System != nil {
		out.Metadata.System = make(map[string]any, len(a.Metadata.System))
		for k, v := range a.Metadata.System {
			out.Metadata.System[k] = v
		}
	}
	if a.Metadata.Custom != nil {
		out.Metadata.Custom = make(map[string]any, len(a.Metadata.Custom))
		for k, v := range a.Metadata.Custom {
			out.Metadata.Custom[k] = v
		}
	}
	return out
}
