package events

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/multierr"
)

func TestPublishRunsEveryHandler(t *testing.T) {
	d := NewInMemoryDispatcher()

	var calls []string
	failure := errors.New("handler boom")
	d.Subscribe(EventTicketCreated, func(context.Context, Event) error {
		calls = append(calls, "first")
		return failure
	})
	d.Subscribe(EventTicketCreated, func(context.Context, Event) error {
		calls = append(calls, "second")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventTicketCreated})
	// A failing handler must not stop later ones.
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Fatalf("calls = %v, want both handlers in order", calls)
	}
	if !errors.Is(err, failure) {
		t.Fatalf("err = %v, want wrapped handler failure", err)
	}
}

func TestPublishCombinesErrors(t *testing.T) {
	d := NewInMemoryDispatcher()

	first := errors.New("first failure")
	second := errors.New("second failure")
	d.Subscribe(EventUserCreated, func(context.Context, Event) error { return first })
	d.Subscribe(EventUserCreated, func(context.Context, Event) error { return second })

	err := d.Publish(context.Background(), Event{Type: EventUserCreated})
	combined := multierr.Errors(err)
	if len(combined) != 2 {
		t.Fatalf("combined errors = %d (%v), want 2", len(combined), err)
	}
	if !errors.Is(err, first) || !errors.Is(err, second) {
		t.Fatalf("err = %v, want both failures reachable", err)
	}
}

func TestPublishIsolatesEventTypes(t *testing.T) {
	d := NewInMemoryDispatcher()

	created := 0
	d.Subscribe(EventTicketCreated, func(context.Context, Event) error {
		created++
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventTicketDeleted}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if created != 0 {
		t.Fatalf("created handler ran for a deleted event")
	}
}

func TestPublishWithoutSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	if err := d.Publish(context.Background(), Event{Type: EventCommentAdded}); err != nil {
		t.Fatalf("Publish = %v, want nil with no subscribers", err)
	}
}
