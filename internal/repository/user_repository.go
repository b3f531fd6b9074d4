package repository

import (
	"sort"

	"github.com/spec-kit/helpdesk-sim/internal/domain"
	"github.com/spec-kit/helpdesk-sim/internal/persistence"
)

// UserRepository defines access to the simulated user registry.
// Implementations assume the caller holds the state lock.
type UserRepository interface {
	Insert(user *domain.User)
	Replace(user *domain.User)
	Get(id int64) (*domain.User, bool)
	Delete(id int64) (*domain.User, bool)
	List() []*domain.User
	FindByEmail(email string) (*domain.User, bool)
	FindByExternalID(externalID string) (*domain.User, bool)
}

type userRepository struct {
	state *persistence.State
}

// NewUserRepository instantiates the in-memory repository.
func NewUserRepository(state *persistence.State) UserRepository {
	return &userRepository{state: state}
}

func (r *userRepository) Insert(user *domain.User) {
	r.state.Users[user.ID] = user
}

func (r *userRepository) Replace(user *domain.User) {
	r.state.Users[user.ID] = user
}

func (r *userRepository) Get(id int64) (*domain.User, bool) {
	u, ok := r.state.Users[id]
	return u, ok
}

func (r *userRepository) Delete(id int64) (*domain.User, bool) {
	u, ok := r.state.Users[id]
	if !ok {
		return nil, false
	}
	delete(r.state.Users, id)
	return u, true
}

func (r *userRepository) List() []*domain.User {
	out := make([]*domain.User, 0, len(r.state.Users))
	for _, u := range r.state.Users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *userRepository) FindByEmail(email string) (*domain.User, bool) {
	if email == "" {
		return nil, false
	}
	for _, u := range r.state.Users {
		if u.Email == email {
			return u, true
		}
	}
	return nil, false
}

func (r *userRepository) FindByExternalID(externalID string) (*domain.User, bool) {
	if externalID == "" {
		return nil, false
	}
	for _, u := range r.state.Users {
		if u.ExternalID == externalID {
			return u, true
		}
	}
	return nil, false
}
