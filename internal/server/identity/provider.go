// Package identity wraps the external identity provider. The provider owns
// credentials and password hashing; WalletGate only consumes its sign-up,
// sign-in and sign-out operations and treats everything else as a black box.
package identity

import "context"

// ProfileAttrs are the optional profile fields forwarded to the provider on
// sign-up. The provider stores them as opaque user metadata.
type ProfileAttrs struct {
	Username *string `json:"username,omitempty"`
	FullName *string `json:"full_name,omitempty"`
}

// Provider is the contract the session flows depend on. Implementations make
// remote calls with their own latency and failure modes; no retries happen
// at this layer or above.
type Provider interface {
	// SignUp creates an account and returns the opaque external identity id.
	// Provider-side rejections (duplicate email, weak password) surface as
	// common.ErrProviderRejected with the provider's reason attached.
	SignUp(ctx context.Context, email, password string, attrs ProfileAttrs) (string, error)

	// SignIn verifies credentials and returns the external identity id, or
	// common.ErrInvalidCredentials.
	SignIn(ctx context.Context, email, password string) (string, error)

	// SignOut invalidates the provider-side session. Best effort; callers
	// treat failures as non-fatal.
	SignOut(ctx context.Context) error
}
