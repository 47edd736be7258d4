package users

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/apetrovs/walletgate/internal/common"
	"github.com/apetrovs/walletgate/internal/server/models"
)

// InMemoryRepository is a mutex-guarded Repository used by tests and local
// runs without Postgres. It enforces the same uniqueness rules as the
// database schema.
type InMemoryRepository struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*models.User
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1, byID: make(map[int64]*models.User)}
}

func cloneUser(u *models.User) *models.User {
	c := *u
	return &c
}

// uniqueTaken reports whether another row (id != selfID) already uses the
// given email, external id, or username. Callers hold r.mu.
func (r *InMemoryRepository) uniqueTaken(selfID int64, externalID, email string, username *string) bool {
	for _, u := range r.byID {
		if u.ID == selfID {
			continue
		}
		if u.ExternalID == externalID || u.Email == email {
			return true
		}
		if username != nil && u.Username != nil && *u.Username == *username {
			return true
		}
	}
	return false
}

func (r *InMemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.uniqueTaken(0, user.ExternalID, user.Email, user.Username) {
		return nil, fmt.Errorf("%w: user", common.ErrorConflict)
	}

	now := time.Now()
	stored := cloneUser(user)
	stored.ID = r.nextID
	stored.Active = true
	stored.Verified = false
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.nextID++
	r.byID[stored.ID] = stored

	return cloneUser(stored), nil
}

func (r *InMemoryRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.byID[id]; ok {
		return cloneUser(u), nil
	}
	return nil, common.ErrorNotFound
}

func (r *InMemoryRepository) FindByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.byID {
		if u.ExternalID == externalID {
			return cloneUser(u), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *InMemoryRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.byID {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *InMemoryRepository) Update(ctx context.Context, id int64, upd Update) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}

	if upd.Username != nil && r.uniqueTaken(id, u.ExternalID, u.Email, upd.Username) {
		return nil, fmt.Errorf("%w: username", common.ErrorConflict)
	}

	if upd.Username != nil {
		v := *upd.Username
		u.Username = &v
	}
	if upd.FullName != nil {
		v := *upd.FullName
		u.FullName = &v
	}
	if upd.Verified != nil {
		u.Verified = *upd.Verified
	}
	u.UpdatedAt = time.Now()

	return cloneUser(u), nil
}

func (r *InMemoryRepository) Deactivate(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok || !u.Active {
		return false, nil
	}
	u.Active = false
	u.UpdatedAt = time.Now()
	return true, nil
}
