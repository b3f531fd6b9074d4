package persistence

// Allocation namespaces. Each keeps its own counter.
const (
	NamespaceTicket     = "ticket"
	NamespaceAudit      = "audit"
	NamespaceComment    = "comment"
	NamespaceEvent      = "event"
	NamespaceUser       = "user"
	NamespaceAttachment = "attachment"
)

// IDAllocator hands out strictly increasing ids per namespace, seeded
// at 1. Counters only ever advance, so an id freed by a delete is never
// reused. Callers must hold the state lock.
type IDAllocator struct {
	next map[string]int64
}

// NewIDAllocator returns an allocator with all counters at their seed.
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{next: make(map[string]int64)}
}

// Allocate returns the next id for the namespace.
func (a *IDAllocator) Allocate(namespace string) int64 {
	if a.next[namespace] == 0 {
		a.next[namespace] = 1
	}
	id := a.next[namespace]
	a.next[namespace]++
	return id
}

// Peek reports the id the next Allocate call would return without
// consuming it.
func (a *IDAllocator) Peek(namespace string) int64 {
	if a.next[namespace] == 0 {
		return 1
	}
	return a.next[namespace]
}

func (a *IDAllocator) snapshot() map[string]int64 {
	out := make(map[string]int64, len(a.next))
	for k, v := range a.next {
		out[k] = v
	}
	return out
}

func (a *IDAllocator) restore(counters map[string]int64) {
	a.next = make(map[string]int64, len(counters))
	for k, v := range counters {
		a.next[k] = v
	}
}
