package repository

import (
	"github.com/spec-kit/helpdesk-sim/internal/domain"
	"github.com/spec-kit/helpdesk-sim/internal/persistence"
)

// AttachmentRepository persists mock attachment metadata.
// Implementations assume the caller holds the state lock.
type AttachmentRepository interface {
	Insert(attachment *domain.Attachment)
	Get(id int64) (*domain.Attachment, bool)
	Exists(id int64) bool
}

type attachmentRepository struct {
	state *persistence.State
}

// NewAttachmentRepository instantiates the in-memory repository.
func NewAttachmentRepository(state *persistence.State) AttachmentRepository {
	return &attachmentRepository{state: state}
}

func (r *attachmentRepository) Insert(attachment *domain.Attachment) {
	r.state.Attachments[attachment.ID] = attachment
}

func (r *attachmentRepository) Get(id int64) (*domain.Attachment, bool) {
	a, ok := r.state.Attachments[id]
	return a, ok
}

func (r *attachmentRepository) Exists(id int64) bool {
	_, ok := r.state.Attachments[id]
	return ok
}
