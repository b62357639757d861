package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// SessionData is what the external identity provider returns for a pending
// login exchange.
type SessionData struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Picture      string `json:"picture"`
	SessionToken string `json:"session_token"`
}

// Provider exchanges a provider-issued session id for user data. The
// concrete provider is an external collaborator; only this contract matters.
type Provider interface {
	FetchSession(ctx context.Context, sessionID string) (*SessionData, error)
}

// HTTPProvider calls the identity provider's session-data endpoint.
type HTTPProvider struct {
	url    string
	client *http.Client
}

// NewHTTPProvider builds a provider client for the given endpoint URL.
func NewHTTPProvider(url string) *HTTPProvider {
	return &HTTPProvider{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchSession exchanges the session id. A non-200 response means the
// session id is unknown or expired.
func (p *HTTPProvider) FetchSession(ctx context.Context, sessionID string) (*SessionData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Session-ID", sessionID)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("identity provider returned status %d", resp.StatusCode)
	}

	var data SessionData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, err
	}
	if data.Email == "" || data.SessionToken == "" {
		return nil, fmt.Errorf("identity provider returned incomplete session data")
	}
	return &data, nil
}
