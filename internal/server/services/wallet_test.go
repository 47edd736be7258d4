package services

import (
	"context"
	"errors"
	"testing"

	"github.com/apetrovs/walletgate/internal/common"
	"github.com/apetrovs/walletgate/internal/server/models"
	"github.com/apetrovs/walletgate/internal/server/repositories/users"
	"github.com/apetrovs/walletgate/internal/server/repositories/wallets"
)

func newWalletFixture(t *testing.T) (*WalletService, *models.User) {
	t.Helper()
	owners := users.NewInMemoryRepository()
	owner, err := owners.Create(context.Background(), &models.User{ExternalID: "ext-1", Email: "a@x.com"})
	if err != nil {
		t.Fatalf("create owner: %v", err)
	}
	repo := wallets.NewInMemoryRepository(owners)
	return NewWalletService(repo, testLogger()), owner
}

func TestLink_FirstWalletIsPrimary(t *testing.T) {
	s, owner := newWalletFixture(t)
	ctx := context.Background()

	first, err := s.Link(ctx, owner.ID, "0xaaa", "eth")
	if err != nil {
		t.Fatalf("Link error: %v", err)
	}
	if !first.IsPrimary {
		t.Fatalf("first linked wallet must be primary")
	}

	second, err := s.Link(ctx, owner.ID, "0xbbb", "sol")
	if err != nil {
		t.Fatalf("Link error: %v", err)
	}
	if second.IsPrimary {
		t.Fatalf("second linked wallet must not be primary")
	}
}

func TestLink_DuplicateAddress(t *testing.T) {
	s, owner := newWalletFixture(t)
	ctx := context.Background()

	if _, err := s.Link(ctx, owner.ID, "0xaaa", "eth"); err != nil {
		t.Fatalf("Link error: %v", err)
	}
	_, err := s.Link(ctx, owner.ID, "0xaaa", "eth")
	if !errors.Is(err, common.ErrorConflict) {
		t.Fatalf("expected common.ErrorConflict, got %v", err)
	}
}

func TestSetPrimary_MovesFlag(t *testing.T) {
	s, owner := newWalletFixture(t)
	ctx := context.Background()

	first, _ := s.Link(ctx, owner.ID, "0xaaa", "eth")
	second, _ := s.Link(ctx, owner.ID, "0xbbb", "eth")

	ok, err := s.SetPrimary(ctx, owner.ID, second.ID)
	if err != nil || !ok {
		t.Fatalf("SetPrimary = (%v, %v), want (true, nil)", ok, err)
	}

	list, err := s.List(ctx, owner.ID)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	for _, w := range list {
		if w.ID == first.ID && w.IsPrimary {
			t.Fatalf("old primary still set")
		}
		if w.ID == second.ID && !w.IsPrimary {
			t.Fatalf("new primary not set")
		}
	}
}

func TestSetPrimary_UnknownWallet(t *testing.T) {
	s, owner := newWalletFixture(t)

	ok, err := s.SetPrimary(context.Background(), owner.ID, 404)
	if err != nil || ok {
		t.Fatalf("SetPrimary = (%v, %v), want (false, nil)", ok, err)
	}
}

func TestUnlink(t *testing.T) {
	s, owner := newWalletFixture(t)
	ctx := context.Background()

	w, _ := s.Link(ctx, owner.ID, "0xaaa", "eth")

	ok, err := s.Unlink(ctx, owner.ID, w.ID)
	if err != nil || !ok {
		t.Fatalf("Unlink = (%v, %v), want (true, nil)", ok, err)
	}

	list, err := s.List(ctx, owner.ID)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("wallet still listed after unlink: %+v", list)
	}

	ok, err = s.Unlink(ctx, owner.ID, w.ID)
	if err != nil || ok {
		t.Fatalf("repeat Unlink = (%v, %v), want (false, nil)", ok, err)
	}
}
