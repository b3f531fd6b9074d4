package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spec-kit/helpdesk-sim/internal/domain"
)

// snapshot is the on-disk form of the whole state. Collection keys
// match the simulated database layout.
type snapshot struct {
	Tickets     map[int64]*domain.Ticket     `json:"tickets"`
	Audits      map[int64]*domain.Audit      `json:"ticket_audits"`
	Comments    map[int64]*domain.Comment    `json:"comments"`
	Users       map[int64]*domain.User       `json:"users"`
	Attachments map[int64]*domain.Attachment `json:"attachments"`
	Uploads     map[string]*domain.Upload    `json:"upload_tokens"`
	Counters    map[string]int64             `json:"counters"`
}

// Export serializes the full state as indented JSON. Callers must not
// hold the lock.
func (s *State) Export() ([]byte, error) {
	s.Lock()
	defer s.Unlock()
	snap := snapshot{
		Tickets:     s.Tickets,
		Audits:      s.Audits,
		Comments:    s.Comments,
		Users:       s.Users,
		Attachments: s.Attachments,
		Uploads:     s.Uploads,
		Counters:    s.IDs.snapshot(),
	}
	return json.MarshalIndent(snap, "", "  ")
}

// Import replaces the whole state with the snapshot contents. Callers
// must not hold the lock.
func (s *State) Import(data []byte) error {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}

	s.Lock()
	defer s.Unlock()
	s.reset()
	for id, t := range snap.Tickets {
		s.Tickets[id] = t
	}
	for id, a := range snap.Audits {
		s.Audits[id] = a
	}
	for id, c := range snap.Comments {
		s.Comments[id] = c
	}
	for id, u := range snap.Users {
		s.Users[id] = u
	}
	for id, a := range snap.Attachments {
		s.Attachments[id] = a
	}
	for token, u := range snap.Uploads {
		s.Uploads[token] = u
	}
	if snap.Counters != nil {
		s.IDs.restore(snap.Counters)
	}
	return nil
}

// Save writes the state snapshot to path atomically.
func (s *State) Save(path string) error {
	data, err := s.Export()
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// Load replaces the state with the snapshot at path.
func (s *State) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	return s.Import(data)
}
