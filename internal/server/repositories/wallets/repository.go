// Package wallets persists linked blockchain wallets and enforces the two
// store invariants: a wallet address is unique across all users, and a user
// with wallets has exactly one primary.
package wallets

import (
	"context"

	"github.com/apetrovs/walletgate/internal/server/models"
)

// Repository is the WalletStore contract. Add and SetPrimary run their
// read-check-write sequences inside a single transaction serialized per
// owner, so concurrent calls cannot commit zero or two primaries.
type Repository interface {
	// ListByUser returns the user's wallets ordered by creation time, then
	// id, so display order is deterministic.
	ListByUser(ctx context.Context, userID int64) ([]*models.Wallet, error)

	// Add links an address to the user; the first wallet a user links
	// becomes primary automatically. A duplicate address (under any owner)
	// yields common.ErrorConflict; an unknown user common.ErrorNotFound.
	Add(ctx context.Context, userID int64, address, walletType string) (*models.Wallet, error)

	// SetPrimary atomically moves the primary flag to the given wallet.
	// Returns false without changing anything when the wallet does not
	// exist or belongs to a different user.
	SetPrimary(ctx context.Context, userID, walletID int64) (bool, error)

	// Remove deletes the wallet when owned by userID. Removing the primary
	// does not promote another wallet; the user is left without a primary
	// until SetPrimary is called.
	Remove(ctx context.Context, userID, walletID int64) (bool, error)
}
