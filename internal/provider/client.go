package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/biguard-dev/biguard/internal/model"
)

// DefaultSessionTTL bounds how long a link session may be exchanged.
// The provider enforces its own TTL server-side; this is the local cap.
const DefaultSessionTTL = 30 * time.Minute

// Client talks to the bank-data provider over HTTP. It tracks at most
// one unconsumed link session per user.
type Client struct {
	baseURL     string
	clientID    string
	secret      string
	environment string
	sessionTTL  time.Duration
	httpClient  *http.Client
	log         zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*LinkSession // user ID -> active session
}

// NewClient creates a provider Client.
func NewClient(baseURL, clientID, secret, environment string, log zerolog.Logger) *Client {
	return &Client{
		baseURL:     baseURL,
		clientID:    clientID,
		secret:      secret,
		environment: environment,
		sessionTTL:  DefaultSessionTTL,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		log:         log,
		sessions:    make(map[string]*LinkSession),
	}
}

type linkTokenRequest struct {
	ClientID     string `json:"client_id"`
	Secret       string `json:"secret"`
	ClientName   string `json:"client_name"`
	ClientUserID string `json:"client_user_id"`
	RequestID    string `json:"request_id"`
}

type linkTokenResponse struct {
	LinkToken string `json:"link_token"`
}

type exchangeRequest struct {
	ClientID    string `json:"client_id"`
	Secret      string `json:"secret"`
	PublicToken string `json:"public_token"`
	RequestID   string `json:"request_id"`
}

type exchangeResponse struct {
	AccessToken string `json:"access_token"`
	ItemID      string `json:"item_id"`
}

type fireWebhookRequest struct {
	ClientID    string `json:"client_id"`
	Secret      string `json:"secret"`
	AccessToken string `json:"access_token"`
	WebhookCode string `json:"webhook_code"`
}

// CreateLinkSession starts a link flow for the user. A prior unconsumed
// session for the same user is replaced, so repeated calls before
// consumption are safe.
func (c *Client) CreateLinkSession(ctx context.Context, sess model.SessionContext) (LinkSession, error) {
	req := linkTokenRequest{
		ClientID:     c.clientID,
		Secret:       c.secret,
		ClientName:   "BiGuard",
		ClientUserID: sess.UserID,
		RequestID:    uuid.NewString(),
	}

	var resp linkTokenResponse
	if err := c.post(ctx, "/link/token/create", req, &resp); err != nil {
		c.log.Error().Err(err).Str("user", sess.UserID).Msg("link session creation failed")
		return LinkSession{}, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	session := LinkSession{SessionToken: resp.LinkToken, CreatedAt: time.Now()}

	c.mu.Lock()
	c.sessions[sess.UserID] = &session
	c.mu.Unlock()

	c.log.Info().Str("user", sess.UserID).Msg("link session created")
	return session, nil
}

// ExchangePublicToken trades the public token from the link UI for an
// access grant. The user's active link session is consumed; a second
// exchange for the same session fails with ErrExchangeFailed.
func (c *Client) ExchangePublicToken(ctx context.Context, sess model.SessionContext, publicToken string) (AccessGrant, error) {
	c.mu.Lock()
	session, ok := c.sessions[sess.UserID]
	switch {
	case !ok:
		c.mu.Unlock()
		return AccessGrant{}, fmt.Errorf("%w: no active link session", ErrExchangeFailed)
	case session.Consumed:
		c.mu.Unlock()
		return AccessGrant{}, fmt.Errorf("%w: link session already consumed", ErrExchangeFailed)
	case time.Since(session.CreatedAt) > c.sessionTTL:
		delete(c.sessions, sess.UserID)
		c.mu.Unlock()
		return AccessGrant{}, fmt.Errorf("%w: link session expired", ErrExchangeFailed)
	}
	c.mu.Unlock()

	req := exchangeRequest{
		ClientID:    c.clientID,
		Secret:      c.secret,
		PublicToken: publicToken,
		RequestID:   uuid.NewString(),
	}

	var resp exchangeResponse
	if err := c.post(ctx, "/item/public_token/exchange", req, &resp); err != nil {
		c.log.Error().Err(err).Str("user", sess.UserID).Msg("token exchange failed")
		return AccessGrant{}, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}

	c.mu.Lock()
	session.Consumed = true
	c.mu.Unlock()

	grant := AccessGrant{
		ProviderAccessID: resp.AccessToken,
		ItemID:           resp.ItemID,
		Sandbox:          IsSandboxAccessID(resp.AccessToken),
	}
	c.log.Info().Str("user", sess.UserID).Bool("sandbox", grant.Sandbox).Msg("access grant issued")
	return grant, nil
}

// IsSandboxGrant reports whether the grant belongs to a sandbox
// institution.
func (c *Client) IsSandboxGrant(grant AccessGrant) bool {
	return grant.Sandbox || IsSandboxAccessID(grant.ProviderAccessID)
}

// GenerateSandboxTransactions fires the provider's sandbox webhook to
// seed test transactions for a sandbox grant.
func (c *Client) GenerateSandboxTransactions(ctx context.Context, grant AccessGrant) error {
	req := fireWebhookRequest{
		ClientID:    c.clientID,
		Secret:      c.secret,
		AccessToken: grant.ProviderAccessID,
		WebhookCode: "DEFAULT_UPDATE",
	}
	if err := c.post(ctx, "/sandbox/item/fire_webhook", req, nil); err != nil {
		return fmt.Errorf("firing sandbox webhook: %w", err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			ErrorCode    string `json:"error_code"`
			ErrorMessage string `json:"error_message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.ErrorCode != "" {
			return fmt.Errorf("provider returned %s: %s", apiErr.ErrorCode, apiErr.ErrorMessage)
		}
		return fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
