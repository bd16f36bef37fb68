package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// Scopes requested for the calendar backend: read and write events.
	ScopeCalendar       = "https://www.googleapis.com/auth/calendar"
	ScopeCalendarEvents = "https://www.googleapis.com/auth/calendar.events"

	grantTypeJWTBearer = "urn:ietf:params:oauth:grant-type:jwt-bearer"

	// TokenLifetime is the validity window claimed in the signed assertion.
	TokenLifetime = time.Hour

	// refreshSlack expires cached tokens slightly before the backend does.
	refreshSlack = 5 * time.Minute
)

// ErrTokenExchange signals that no usable bearer token could be obtained.
// Callers must treat it as a fatal precondition for any calendar call.
var ErrTokenExchange = errors.New("service token exchange failed")

// CredentialBroker exchanges a service credential for a short-lived bearer
// token accepted by the calendar backend.
type CredentialBroker interface {
	IssueToken(ctx context.Context) (string, error)
}

// DefaultCredentialBroker is the production implementation. It signs a
// JWT-bearer assertion with the service-account key and posts it to the OAuth
// token endpoint. Issued tokens are cached for the process lifetime and
// refreshed shortly before expiry.
type DefaultCredentialBroker struct {
	Credential ServiceCredential
	TokenURI   string
	HTTPClient *http.Client
	Logger     *zap.Logger

	mu     sync.Mutex
	token  string
	expiry time.Time
	now    func() time.Time
}

// NewCredentialBroker wires a broker for the given credential and token endpoint.
func NewCredentialBroker(cred ServiceCredential, tokenURI string, logger *zap.Logger) *DefaultCredentialBroker {
	return &DefaultCredentialBroker{
		Credential: cred,
		TokenURI:   tokenURI,
		HTTPClient: http.DefaultClient,
		Logger:     logger,
		now:        time.Now,
	}
}

// IssueToken returns a bearer token authorized for the calendar scopes,
// reusing the cached one while it remains valid.
func (b *DefaultCredentialBroker) IssueToken(ctx context.Context) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.now == nil {
		b.now = time.Now
	}
	issuedAt := b.now()

	if b.token != "" && issuedAt.Before(b.expiry) {
		return b.token, nil
	}

	token, expiresIn, err := b.exchange(ctx, issuedAt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenExchange, err)
	}

	b.token = token
	b.expiry = issuedAt.Add(expiresIn - refreshSlack)
	return token, nil
}

func (b *DefaultCredentialBroker) exchange(ctx context.Context, issuedAt time.Time) (string, time.Duration, error) {
	scopes := []string{ScopeCalendar, ScopeCalendarEvents}
	assertion, err := signAssertion(b.Credential, scopes, b.TokenURI, issuedAt)
	if err != nil {
		return "", 0, err
	}

	form := url.Values{}
	form.Set("grant_type", grantTypeJWTBearer)
	form.Set("assertion", assertion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.TokenURI, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := b.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, err
	}
	if resp.StatusCode != http.StatusOK {
		b.Logger.Warn("token endpoint rejected assertion",
			zap.String("clientEmail", b.Credential.ClientEmail),
			zap.String("projectId", b.Credential.ProjectID),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return "", 0, fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", 0, fmt.Errorf("decode token response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", 0, errors.New("token response contained no access_token")
	}

	expiresIn := time.Duration(payload.ExpiresIn) * time.Second
	if expiresIn <= 0 {
		expiresIn = TokenLifetime
	}
	return payload.AccessToken, expiresIn, nil
}
