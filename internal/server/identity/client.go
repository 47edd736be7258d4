package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/apetrovs/walletgate/internal/common"
	"github.com/apetrovs/walletgate/internal/logging"
)

// Client talks to a GoTrue-compatible identity provider over REST:
// POST /auth/v1/signup, POST /auth/v1/token?grant_type=password,
// POST /auth/v1/logout. Every request carries the service API key and is
// bounded by the configured timeout.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     logging.Logger
}

func NewClient(baseURL, apiKey string, timeout time.Duration, logger logging.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger.With("module", "identity_client"),
	}
}

type signUpRequest struct {
	Email    string       `json:"email"`
	Password string       `json:"password"`
	Data     ProfileAttrs `json:"data"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userPayload matches the two response shapes GoTrue uses: the user object
// at the top level (signup) or nested under "user" (token grant).
type userPayload struct {
	ID   string `json:"id"`
	User *struct {
		ID string `json:"id"`
	} `json:"user"`
}

type errorPayload struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
}

func (e *errorPayload) reason() string {
	for _, s := range []string{e.Msg, e.Message, e.ErrorDescription} {
		if s != "" {
			return s
		}
	}
	return "unknown reason"
}

func (c *Client) SignUp(ctx context.Context, email, password string, attrs ProfileAttrs) (string, error) {
	body, status, err := c.post(ctx, "/auth/v1/signup", signUpRequest{Email: email, Password: password, Data: attrs})
	if err != nil {
		return "", err
	}

	if status != http.StatusOK {
		reason := decodeError(body)
		c.logger.Warn(ctx, "provider rejected sign-up", "status", status, "reason", reason)
		return "", fmt.Errorf("%w: %s", common.ErrProviderRejected, reason)
	}

	return decodeExternalID(body)
}

func (c *Client) SignIn(ctx context.Context, email, password string) (string, error) {
	body, status, err := c.post(ctx, "/auth/v1/token?grant_type=password", signInRequest{Email: email, Password: password})
	if err != nil {
		return "", err
	}

	if status == http.StatusBadRequest || status == http.StatusUnauthorized || status == http.StatusForbidden {
		return "", common.ErrInvalidCredentials
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("%w: %s", common.ErrProviderRejected, decodeError(body))
	}

	return decodeExternalID(body)
}

func (c *Client) SignOut(ctx context.Context) error {
	body, status, err := c.post(ctx, "/auth/v1/logout", struct{}{})
	if err != nil {
		return err
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: %s", common.ErrProviderRejected, decodeError(body))
	}
	return nil
}

// post sends a JSON request and returns the raw response body and status.
// Transport-level failures (including timeouts) come back as errors; HTTP
// error statuses are the caller's business.
func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, int, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("identity provider request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, 0, fmt.Errorf("read response: %w", err)
	}

	return body, resp.StatusCode, nil
}

func decodeExternalID(body []byte) (string, error) {
	var p userPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if p.User != nil && p.User.ID != "" {
		return p.User.ID, nil
	}
	if p.ID != "" {
		return p.ID, nil
	}
	return "", fmt.Errorf("%w: response carries no user id", common.ErrProviderRejected)
}

func decodeError(body []byte) string {
	var e errorPayload
	if err := json.Unmarshal(body, &e); err != nil {
		return "unknown reason"
	}
	return e.reason()
}
