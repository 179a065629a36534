package db

import (
	"context"
	"database/sql"

	"github.com/feas-project/feas-server/internal/server/users"
)

// InMemoryRepositoryManager backs the server when no database DSN is
// configured. Data lives for the lifetime of the process.
type InMemoryRepositoryManager struct {
	users users.Repository
}

func (m *InMemoryRepositoryManager) Conn() *sql.DB {
	return nil
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m *InMemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return &InMemoryRepositoryManager{users: users.NewInMemoryRepository()}
}
