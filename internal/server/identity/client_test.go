package identity

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apetrovs/walletgate/internal/common"
	"github.com/apetrovs/walletgate/internal/logging"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewClient(srv.URL, "test-key", 2*time.Second, logger)
}

func TestSignUp_Success(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]any

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("apikey")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "ext-123"})
	})

	username := "alice"
	id, err := c.SignUp(context.Background(), "a@x.com", "pw", ProfileAttrs{Username: &username})
	require.NoError(t, err)

	assert.Equal(t, "ext-123", id)
	assert.Equal(t, "/auth/v1/signup", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "a@x.com", gotBody["email"])
	assert.Equal(t, map[string]any{"username": "alice"}, gotBody["data"])
}

func TestSignUp_ProviderRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]string{"msg": "email already registered"})
	})

	_, err := c.SignUp(context.Background(), "a@x.com", "pw", ProfileAttrs{})
	require.ErrorIs(t, err, common.ErrProviderRejected)
	assert.Contains(t, err.Error(), "email already registered")
}

func TestSignIn_Success_NestedUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "provider-token",
			"user":         map[string]string{"id": "ext-9"},
		})
	})

	id, err := c.SignIn(context.Background(), "a@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "ext-9", id)
}

func TestSignIn_InvalidCredentials(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden} {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(map[string]string{"error_description": "bad login"})
		})

		_, err := c.SignIn(context.Background(), "a@x.com", "nope")
		require.ErrorIs(t, err, common.ErrInvalidCredentials, "status %d", status)
	}
}

func TestSignIn_MissingUserID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "t"})
	})

	_, err := c.SignIn(context.Background(), "a@x.com", "pw")
	require.ErrorIs(t, err, common.ErrProviderRejected)
}

func TestSignOut(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/auth/v1/logout", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		})
		require.NoError(t, c.SignOut(context.Background()))
	})

	t.Run("failure reported", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		require.Error(t, c.SignOut(context.Background()))
	})
}

func TestPost_ContextCancelled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := c.SignIn(ctx, "a@x.com", "pw")
	require.Error(t, err)
	require.False(t, errors.Is(err, common.ErrInvalidCredentials), "timeout must not masquerade as bad credentials")
}
