// Package users persists the local user shadow records, keyed by the
// external identity id.
package users

import (
	"context"

	"github.com/apetrovs/walletgate/internal/server/models"
)

// Update carries a partial profile update; nil fields are left untouched.
type Update struct {
	Username *string
	FullName *string
	Verified *bool
}

// Repository is the UserStore contract. Uniqueness of external_id, email and
// username is enforced atomically by the store (unique constraints), not by
// prior reads, so concurrent creates with the same email cannot both win.
type Repository interface {
	// Create inserts a new user (active, not verified) and returns it with
	// id and timestamps filled in. A uniqueness violation yields
	// common.ErrorConflict.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// FindByID / FindByExternalID / FindByEmail return common.ErrorNotFound
	// when no row matches.
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByExternalID(ctx context.Context, externalID string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// Update applies the provided fields only. common.ErrorNotFound when the
	// id is absent, common.ErrorConflict when a unique field collides.
	Update(ctx context.Context, id int64, upd Update) (*models.User, error)

	// Deactivate sets active=false. The bool reports whether this call
	// performed the transition; repeating it on an already inactive or
	// absent user returns false without error.
	Deactivate(ctx context.Context, id int64) (bool, error)
}
