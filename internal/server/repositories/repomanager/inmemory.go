package repomanager

import (
	"context"
	"database/sql"

	"github.com/apetrovs/walletgate/internal/server/repositories/users"
	"github.com/apetrovs/walletgate/internal/server/repositories/wallets"
)

// InMemoryRepositoryManager backs the repositories with in-memory state.
// Used by tests and local runs without Postgres.
type InMemoryRepositoryManager struct {
	users   users.Repository
	wallets wallets.Repository
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

func (m *InMemoryRepositoryManager) Wallets() wallets.Repository {
	return m.wallets
}

func NewInMemoryRepositoryManager() RepositoryManager {
	u := users.NewInMemoryRepository()
	return &InMemoryRepositoryManager{
		users:   u,
		wallets: wallets.NewInMemoryRepository(u),
	}
}
