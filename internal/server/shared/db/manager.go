// Package db wires concrete credential stores behind a small manager
// interface, so the app can swap Postgres for the in-memory store
// without touching the services above it.
package db

import (
	"context"
	"database/sql"

	"github.com/feas-project/feas-server/internal/server/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
}
