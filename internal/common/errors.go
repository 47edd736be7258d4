// Package common defines the sentinel errors shared across WalletGate
// layers. Callers match them with errors.Is; repositories and services wrap
// them with context but never replace them.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("already exists")

	// Service-level errors (generic flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Token lifecycle errors. Distinguished so callers can tell
	// "log in again" from "token is garbage".
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Identity-provider errors, not retried by the core.
	ErrProviderRejected   = errors.New("identity provider rejected request")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Provider/local drift and account-state errors.
	ErrAccountNotProvisioned = errors.New("account not provisioned locally")
	ErrAccountDisabled       = errors.New("account disabled")

	// ErrInconsistent marks a post-provider-success local failure: the
	// provider holds an account the local store does not. Surfaced loudly,
	// never swallowed.
	ErrInconsistent = errors.New("provider and local store are inconsistent")
)
