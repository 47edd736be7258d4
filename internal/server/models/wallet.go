package models

import "time"

// Wallet links one blockchain address to a user. Address is unique across
// all users; per user at most one wallet carries IsPrimary, and a user with
// wallets always has exactly one primary.
type Wallet struct {
	ID         int64
	UserID     int64
	Address    string
	WalletType string
	IsPrimary  bool
	CreatedAt  time.Time
}
