package wallets

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/apetrovs/walletgate/internal/common"
	"github.com/apetrovs/walletgate/internal/server/models"
)

// OwnerLookup answers whether a prospective wallet owner exists. The users
// in-memory repository satisfies it.
type OwnerLookup interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// InMemoryRepository is a mutex-guarded Repository used by tests and local
// runs. The single mutex plays the role the per-owner row lock plays in
// Postgres: Add and SetPrimary are atomic with their checks.
type InMemoryRepository struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*models.Wallet
	owners OwnerLookup
}

// NewInMemoryRepository builds an empty repository. A nil owners lookup
// disables the owner-existence check.
func NewInMemoryRepository(owners OwnerLookup) *InMemoryRepository {
	return &InMemoryRepository{nextID: 1, byID: make(map[int64]*models.Wallet), owners: owners}
}

func cloneWallet(w *models.Wallet) *models.Wallet {
	c := *w
	return &c
}

func (r *InMemoryRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := []*models.Wallet{}
	for _, w := range r.byID {
		if w.UserID == userID {
			result = append(result, cloneWallet(w))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

func (r *InMemoryRepository) Add(ctx context.Context, userID int64, address, walletType string) (*models.Wallet, error) {
	if r.owners != nil {
		if _, err := r.owners.FindByID(ctx, userID); err != nil {
			return nil, err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	hasWallets := false
	for _, w := range r.byID {
		if w.Address == address {
			return nil, fmt.Errorf("%w: address", common.ErrorConflict)
		}
		if w.UserID == userID {
			hasWallets = true
		}
	}

	stored := &models.Wallet{
		ID:         r.nextID,
		UserID:     userID,
		Address:    address,
		WalletType: walletType,
		IsPrimary:  !hasWallets,
		CreatedAt:  time.Now(),
	}
	r.nextID++
	r.byID[stored.ID] = stored

	return cloneWallet(stored), nil
}

func (r *InMemoryRepository) SetPrimary(ctx context.Context, userID, walletID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	target, ok := r.byID[walletID]
	if !ok || target.UserID != userID {
		return false, nil
	}

	for _, w := range r.byID {
		if w.UserID == userID {
			w.IsPrimary = false
		}
	}
	target.IsPrimary = true

	return true, nil
}

func (r *InMemoryRepository) Remove(ctx context.Context, userID, walletID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.byID[walletID]
	if !ok || w.UserID != userID {
		return false, nil
	}
	delete(r.byID, walletID)

	return true, nil
}
