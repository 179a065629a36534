package users

import (
	"context"
	"sync"

	"github.com/feas-project/feas-server/internal/common"
)

// InMemoryRepository is a mutex-guarded map keyed by email. It backs the
// server when no database DSN is configured and doubles as the test
// store. The single lock makes the duplicate check and the insert one
// atomic step, mirroring the unique index of the Postgres schema.
type InMemoryRepository struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]*User
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		nextID: 1,
		users:  make(map[string]*User),
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Email]; ok {
		return nil, common.ErrEmailAlreadyExists
	}

	stored := *user
	stored.ID = r.nextID
	r.nextID++
	r.users[stored.Email] = &stored

	out := stored
	return &out, nil
}

func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[email]
	if !ok {
		return nil, common.ErrNotFound
	}

	out := *user
	return &out, nil
}
