package session

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// defaultRefreshTimeout is the hard upper bound on one refresh round trip.
const defaultRefreshTimeout = 5 * time.Second

// RefreshedCredential is the identity provider's answer to a refresh_token
// grant. An empty IDToken or RefreshToken means the provider did not rotate
// that value and the caller must retain the previous one.
type RefreshedCredential struct {
	AccessToken  string `json:"access_token"`
	ExpiresIn    int64  `json:"expires_in"`
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// Refresher exchanges a refresh token for a new access credential at the
// identity provider's token endpoint.
type Refresher struct {
	TokenEndpoint string
	ClientID      string
	ClientSecret  string
	Audience      string

	// Client and Timeout default to http.DefaultClient and 5s.
	Client  *http.Client
	Timeout time.Duration
}

// Refresh performs a single refresh_token grant. Any transport error,
// timeout, non-2xx status, or unusable response body returns nil; failures
// on the request hot path are uniform and never escape this boundary.
func (r *Refresher) Refresh(ctx context.Context, refreshToken string) *RefreshedCredential {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaultRefreshTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := json.Marshal(map[string]string{
		"grant_type":    "refresh_token",
		"client_id":     r.ClientID,
		"client_secret": r.ClientSecret,
		"refresh_token": refreshToken,
		"audience":      r.Audience,
	})
	if err != nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.TokenEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/json")

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}

	res, err := client.Do(req)
	if err != nil {
		log.Printf("session: token refresh failed: %v", err)
		return nil
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		log.Printf("session: token refresh returned status %d", res.StatusCode)
		return nil
	}

	var cred RefreshedCredential
	if err := json.NewDecoder(res.Body).Decode(&cred); err != nil {
		log.Printf("session: token refresh returned unreadable body: %v", err)
		return nil
	}
	if cred.AccessToken == "" {
		return nil
	}

	return &cred
}
