package repository

import (
	"github.com/spec-kit/helpdesk-sim/internal/domain"
	"github.com/spec-kit/helpdesk-sim/internal/persistence"
)

// UploadRepository maps opaque upload tokens to attachment id lists.
// Implementations assume the caller holds the state lock.
type UploadRepository interface {
	Put(upload *domain.Upload)
	Get(token string) (*domain.Upload, bool)
}

type uploadRepository struct {
	state *persistence.State
}

// NewUploadRepository instantiates the in-memory repository.
func NewUploadRepository(state *persistence.State) UploadRepository {
	return &uploadRepository{state: state}
}

func (r *uploadRepository) Put(upload *domain.Upload) {
	r.state.Uploads[upload.Token] = upload
}

func (r *uploadRepository) Get(token string) (*domain.Upload, bool) {
	u, ok := r.state.Uploads[token]
	return u, ok
}
