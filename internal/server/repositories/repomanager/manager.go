// Package repomanager bundles repository construction and schema migrations
// behind one interface so the app wires storage in a single place.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/apetrovs/walletgate/internal/server/repositories/users"
	"github.com/apetrovs/walletgate/internal/server/repositories/wallets"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	Wallets() wallets.Repository
}
