// Package services contains server-side business logic. This file implements
// SessionService, the coordinator for signup, signin, logout and "who am I"
// across the external identity provider, the local user store, and the
// session token signer.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/apetrovs/walletgate/internal/common"
	"github.com/apetrovs/walletgate/internal/logging"
	"github.com/apetrovs/walletgate/internal/server/auth"
	"github.com/apetrovs/walletgate/internal/server/config"
	"github.com/apetrovs/walletgate/internal/server/identity"
	"github.com/apetrovs/walletgate/internal/server/models"
	"github.com/apetrovs/walletgate/internal/server/repositories/users"
)

// Profile carries the optional profile fields collected at signup.
type Profile struct {
	Username *string
	FullName *string
}

// Session is a successful signup/signin result: a signed token plus the
// local user snapshot it is bound to.
type Session struct {
	Token string
	User  *models.User
}

// SessionService coordinates the two sources of truth. The provider is
// always called first (it owns credentials); the local store is the source
// of truth for everything else. A token is issued only after both steps
// succeeded; there is no distributed transaction, so a local failure after
// provider success is recorded as drift and surfaced, never papered over.
type SessionService struct {
	users                 users.Repository
	provider              identity.Provider
	logger                logging.Logger
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

func NewSessionService(repo users.Repository, provider identity.Provider, cfg *config.Config, logger logging.Logger) *SessionService {
	return &SessionService{
		users:                 repo,
		provider:              provider,
		logger:                logger.With("module", "sessions"),
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Signup registers the account with the provider, creates the local shadow
// record, and returns a fresh session. When the local create fails after the
// provider already accepted the account, the drift is logged with a stable
// event id for the reconciliation job and common.ErrInconsistent is
// returned; no token is ever issued for a user record that does not exist.
func (s *SessionService) Signup(ctx context.Context, email, password string, profile Profile) (*Session, error) {
	externalID, err := s.provider.SignUp(ctx, email, password, identity.ProfileAttrs{
		Username: profile.Username,
		FullName: profile.FullName,
	})
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, &models.User{
		ExternalID: externalID,
		Email:      email,
		Username:   profile.Username,
		FullName:   profile.FullName,
	})
	if err != nil {
		eventID := uuid.NewString()
		s.logger.Error(ctx, "local provisioning failed after provider sign-up",
			"drift_event_id", eventID, "external_id", externalID, "error", err)
		return nil, fmt.Errorf("%w (drift event %s): %v", common.ErrInconsistent, eventID, err)
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &Session{Token: token, User: user}, nil
}

// Signin verifies credentials with the provider and issues a session bound
// to the local shadow record. A provider account without a local row is
// drift, reported as common.ErrAccountNotProvisioned so callers can tell it
// apart from a wrong password.
func (s *SessionService) Signin(ctx context.Context, email, password string) (*Session, error) {
	externalID, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Warn(ctx, "provider account has no local shadow",
				"external_id", externalID)
			return nil, common.ErrAccountNotProvisioned
		}
		return nil, common.ErrorInternal
	}

	if !user.Active {
		return nil, common.ErrAccountDisabled
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &Session{Token: token, User: user}, nil
}

// Logout tells the provider to drop its session. Tokens issued by us are
// stateless and cannot be revoked; they simply expire. Provider failures are
// logged and swallowed so local logout always succeeds.
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.provider.SignOut(ctx); err != nil {
		s.logger.Warn(ctx, "provider sign-out failed", "error", err)
	}
	return nil
}

// CurrentUser resolves a session token to the user it asserts. Any
// verification failure, and a subject whose row no longer exists, yield
// common.ErrorUnauthorized.
func (s *SessionService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	return user, nil
}

// UpdateProfile applies a partial profile update to the local record.
func (s *SessionService) UpdateProfile(ctx context.Context, userID int64, upd users.Update) (*models.User, error) {
	return s.users.Update(ctx, userID, upd)
}

// Deactivate soft-deletes the local account. Already-issued tokens keep
// verifying until expiry, but signin refuses disabled accounts.
func (s *SessionService) Deactivate(ctx context.Context, userID int64) (bool, error) {
	ok, err := s.users.Deactivate(ctx, userID)
	if err != nil {
		return false, err
	}
	if ok {
		s.logger.Info(ctx, "account deactivated", "user_id", userID)
	}
	return ok, nil
}
