package services

import (
	"context"

	"github.com/apetrovs/walletgate/internal/logging"
	"github.com/apetrovs/walletgate/internal/server/models"
	"github.com/apetrovs/walletgate/internal/server/repositories/wallets"
)

// WalletService exposes the wallet-linking operations to authenticated
// flows. The invariants (global address uniqueness, exactly one primary per
// wallet-owning user) live in the store; this layer adds logging and keeps
// callers away from repository types.
type WalletService struct {
	wallets wallets.Repository
	logger  logging.Logger
}

func NewWalletService(repo wallets.Repository, logger logging.Logger) *WalletService {
	return &WalletService{
		wallets: repo,
		logger:  logger.With("module", "wallets"),
	}
}

// List returns the user's wallets in creation order.
func (s *WalletService) List(ctx context.Context, userID int64) ([]*models.Wallet, error) {
	return s.wallets.ListByUser(ctx, userID)
}

// Link attaches an address to the user. The first linked wallet becomes the
// primary automatically.
func (s *WalletService) Link(ctx context.Context, userID int64, address, walletType string) (*models.Wallet, error) {
	wallet, err := s.wallets.Add(ctx, userID, address, walletType)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "wallet linked",
		"user_id", userID, "wallet_id", wallet.ID, "primary", wallet.IsPrimary)

	return wallet, nil
}

// SetPrimary transfers primary status to the given wallet. False means the
// wallet does not exist or is owned by someone else; nothing changed.
func (s *WalletService) SetPrimary(ctx context.Context, userID, walletID int64) (bool, error) {
	ok, err := s.wallets.SetPrimary(ctx, userID, walletID)
	if err != nil {
		return false, err
	}
	if ok {
		s.logger.Info(ctx, "primary wallet changed", "user_id", userID, "wallet_id", walletID)
	}
	return ok, nil
}

// Unlink removes the wallet when owned by the user. Removing the primary
// leaves the remaining wallets without one until SetPrimary is called; no
// automatic promotion happens here.
func (s *WalletService) Unlink(ctx context.Context, userID, walletID int64) (bool, error) {
	ok, err := s.wallets.Remove(ctx, userID, walletID)
	if err != nil {
		return false, err
	}
	if ok {
		s.logger.Info(ctx, "wallet unlinked", "user_id", userID, "wallet_id", walletID)
	}
	return ok, nil
}
