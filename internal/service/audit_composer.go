package service

import (
	"maps"
	"sort"
	"time"

	"github.com/spec-kit/helpdesk-sim/internal/domain"
	"github.com/spec-kit/helpdesk-sim/internal/persistence"
)

// CommentNote carries the comment portion of a mutation into the
// composer. The author may differ from the audit author when the
// creation payload names its own comment author.
type CommentNote struct {
	AuthorID int64
	Body     string
	HTMLBody string
	Uploads  []string
}

// ComposeInput describes one ticket mutation to record.
type ComposeInput struct {
	TicketID   int64
	AuthorID   int64
	Via        domain.Via
	Public     bool
	CreateNote string // summary value, non-empty only on creation
	Changes    []domain.FieldChange
	Comment    *CommentNote
	Metadata   *domain.AuditMetadata
	MacroID    *int64
	MacroIDs   []int64
	Now        time.Time
}

// AuditComposer turns ticket mutations into ordered event lists.
// Event ids are drawn as events are appended and the audit id only
// once at least one event exists, so a mutation that records nothing
// consumes no ids at all.
type AuditComposer struct {
	ids *persistence.IDAllocator
}

// NewAuditComposer constructs the composer over the shared allocator.
func NewAuditComposer(ids *persistence.IDAllocator) *AuditComposer {
	return &AuditComposer{ids: ids}
}

// Compose builds the audit for one mutation, or nil when there is
// nothing to record. Event order is fixed: the Create event first,
// one Change per entry in Changes, and the Comment event last.
func (c *AuditComposer) Compose(in ComposeInput) *domain.Audit {
	events := make(domain.EventList, 0, len(in.Changes)+2)

	if in.CreateNote != "" {
		events = append(events, domain.CreateEvent{
			ID:       c.ids.Allocate(persistence.NamespaceEvent),
			AuthorID: in.AuthorID,
			Value:    in.CreateNote,
			Via:      in.Via,
		})
	}
	for _, change := range in.Changes {
		events = append(events, domain.ChangeEvent{
			ID:            c.ids.Allocate(persistence.NamespaceEvent),
			AuthorID:      in.AuthorID,
			FieldName:     change.Field,
			PreviousValue: change.Previous,
			Value:         change.New,
			Public:        in.Public,
			Via:           in.Via,
		})
	}
	if in.Comment != nil {
		events = append(events, domain.CommentEvent{
			ID:       c.ids.Allocate(persistence.NamespaceEvent),
			AuthorID: in.Comment.AuthorID,
			Body:     in.Comment.Body,
			HTMLBody: in.Comment.HTMLBody,
			Public:   in.Public,
			Uploads:  append([]string(nil), in.Comment.Uploads...),
			Via:      in.Via,
		})
	}

	if len(events) == 0 {
		return nil
	}

	metadata := domain.AuditMetadata{}
	if in.Metadata != nil {
		metadata.System = maps.Clone(in.Metadata.System)
		metadata.Custom = maps.Clone(in.Metadata.Custom)
	}
	if macroIDs := mergeMacroIDs(in.MacroID, in.MacroIDs); len(macroIDs) > 0 {
		if metadata.System == nil {
			metadata.System = make(map[string]any, 1)
		}
		metadata.System["applied_macro_ids"] = macroIDs
	}

	return &domain.Audit{
		ID:        c.ids.Allocate(persistence.NamespaceAudit),
		TicketID:  in.TicketID,
		AuthorID:  in.AuthorID,
		Metadata:  metadata,
		Events:    events,
		CreatedAt: in.Now,
	}
}

// mergeMacroIDs unions the singular macro id with the macro id list,
// deduplicated and sorted. Nil when both are absent, so the metadata
// key is omitted entirely.
func mergeMacroIDs(single *int64, list []int64) []int64 {
	seen := make(map[int64]struct{}, len(list)+1)
	if single != nil {
		seen[*single] = struct{}{}
	}
	for _, id := range list {
		seen[id] = struct{}{}
	}
	if len(seen) == 0 {
		return nil
	}
	out := make([]int64, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
