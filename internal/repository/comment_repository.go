package repository

import (
	"github.com/spec-kit/helpdesk-sim/internal/domain"
	"github.com/spec-kit/helpdesk-sim/internal/persistence"
)

// CommentRepository manages ticket comment records. Implementations
// assume the caller holds the state lock.
type CommentRepository interface {
	Insert(comment *domain.Comment)
	Replace(comment *domain.Comment)
	Get(id int64) (*domain.Comment, bool)
	Delete(id int64) (*domain.Comment, bool)
	ListByTicket(ticketID int64) []*domain.Comment
}

type commentRepository struct {
	state *persistence.State
}

// NewCommentRepository instantiates the in-memory repository.
func NewCommentRepository(state *persistence.State) CommentRepository {
	return &commentRepository{state: state}
}

func (r *commentRepository) Insert(comment *domain.Comment) {
	r.state.Comments[comment.ID] = comment
}

func (r *commentRepository) Replace(comment *domain.Comment) {
	r.state.Comments[comment.ID] = comment
}

func (r *commentRepository) Get(id int64) (*domain.Comment, bool) {
	c, ok := r.state.Comments[id]
	return c, ok
}

func (r *commentRepository) Delete(id int64) (*domain.Comment, bool) {
	c, ok := r.state.Comments[id]
	if !ok {
		return nil, false
	}
	delete(r.state.Comments, id)
	return c, true
}

func (r *commentRepository) ListByTicket(ticketID int64) []*domain.Comment {
	return r.state.CommentsForTicket(ticketID)
}
