package service

import (
	"reflect"
	"testing"
	"time"

	"github.com/spec-kit/helpdesk-sim/internal/domain"
	"github.com/spec-kit/helpdesk-sim/internal/persistence"
)

func TestComposeEventOrder(t *testing.T) {
	ids := persistence.NewIDAllocator()
	composer := NewAuditComposer(ids)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	audit := composer.Compose(ComposeInput{
		TicketID:   10,
		AuthorID:   7,
		Via:        domain.DefaultVia(),
		Public:     true,
		CreateNote: "Ticket created with status new and priority normal.",
		Changes: []domain.FieldChange{
			{Field: "status", Previous: domain.TicketStatusNew, New: domain.TicketStatusOpen},
			{Field: "priority", Previous: domain.TicketPriorityNormal, New: domain.TicketPriorityHigh},
		},
		Comment: &CommentNote{AuthorID: 9, Body: "hello", HTMLBody: "<p>hello</p>"},
		Now:     now,
	})

	if audit == nil {
		t.Fatal("Compose returned nil")
	}
	if audit.ID != 1 || audit.TicketID != 10 || audit.AuthorID != 7 {
		t.Fatalf("audit = id %d ticket %d author %d", audit.ID, audit.TicketID, audit.AuthorID)
	}
	if !audit.CreatedAt.Equal(now) {
		t.Errorf("created_at = %v, want %v", audit.CreatedAt, now)
	}

	wantTypes := []domain.EventType{
		domain.EventTypeCreate,
		domain.EventTypeChange,
		domain.EventTypeChange,
		domain.EventTypeComment,
	}
	if len(audit.Events) != len(wantTypes) {
		t.Fatalf("events = %d, want %d", len(audit.Events), len(wantTypes))
	}
	for i, want := range wantTypes {
		if got := audit.Events[i].EventType(); got != want {
			t.Errorf("event[%d] type = %q, want %q", i, got, want)
		}
		// Event ids are drawn in append order.
		if got := audit.Events[i].EventID(); got != int64(i+1) {
			t.Errorf("event[%d] id = %d, want %d", i, got, i+1)
		}
	}

	comment := audit.Events[3].(domain.CommentEvent)
	if comment.AuthorID != 9 {
		t.Errorf("comment author = %d, want note author 9", comment.AuthorID)
	}
}

func TestComposeNothingToRecord(t *testing.T) {
	ids := persistence.NewIDAllocator()
	composer := NewAuditComposer(ids)

	audit := composer.Compose(ComposeInput{TicketID: 1, AuthorID: 1, Now: time.Now()})
	if audit != nil {
		t.Fatalf("Compose = %+v, want nil", audit)
	}
	if next := ids.Peek(persistence.NamespaceEvent); next != 1 {
		t.Errorf("event counter = %d, want untouched", next)
	}
	if next := ids.Peek(persistence.NamespaceAudit); next != 1 {
		t.Errorf("audit counter = %d, want untouched", next)
	}
}

func TestComposeClonesMetadata(t *testing.T) {
	composer := NewAuditComposer(persistence.NewIDAllocator())
	system := map[string]any{"client": "tests"}

	audit := composer.Compose(ComposeInput{
		TicketID:   1,
		AuthorID:   1,
		CreateNote: "Ticket created with status new and priority normal.",
		Metadata:   &domain.AuditMetadata{System: system},
		Now:        time.Now(),
	})

	system["client"] = "mutated"
	if audit.Metadata.System["client"] != "tests" {
		t.Fatalf("metadata system = %v, caller mutation leaked", audit.Metadata.System)
	}
}

func TestMergeMacroIDs(t *testing.T) {
	tests := []struct {
		name   string
		single *int64
		list   []int64
		want   []int64
	}{
		{"both absent", nil, nil, nil},
		{"single only", ptr(int64(7)), nil, []int64{7}},
		{"list only", nil, []int64{9, 2, 9}, []int64{2, 9}},
		{"overlap", ptr(int64(5)), []int64{5, 1}, []int64{1, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mergeMacroIDs(tt.single, tt.list)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("mergeMacroIDs = %v, want %v", got, tt.want)
			}
		})
	}
}
