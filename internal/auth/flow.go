// Package auth implements the identity-provider login flow: authorize
// redirect, authorization-code exchange, user provisioning, and logout.
// It produces the session record the middleware validates on every request.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"logipack-console/internal/config"
	"logipack-console/internal/session"
)

var (
	ErrAccountConflict = errors.New("email already linked to another account")
	ErrInvalidProfile  = errors.New("profile rejected by hub api")
)

// Flow holds the OIDC client state for one identity provider.
type Flow struct {
	provider *oidc.Provider
	oauth    *oauth2.Config
	verifier *oidc.IDTokenVerifier
	codec    *session.Codec

	domain    string
	clientID  string
	audience  string
	logoutURL string
	apiBase   string
	client    *http.Client
}

// NewFlow discovers the identity provider and prepares the OAuth2 client.
func NewFlow(ctx context.Context, cfg *config.Config, codec *session.Codec) (*Flow, error) {
	initCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	provider, err := oidc.NewProvider(initCtx, cfg.IssuerURL())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OIDC provider: %w", err)
	}

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.Auth0ClientID,
		ClientSecret: cfg.Auth0ClientSecret,
		RedirectURL:  cfg.Auth0CallbackURL,
		Endpoint:     provider.Endpoint(),
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email", oidc.ScopeOfflineAccess},
	}

	return &Flow{
		provider:  provider,
		oauth:     oauthCfg,
		verifier:  provider.Verifier(&oidc.Config{ClientID: cfg.Auth0ClientID}),
		codec:     codec,
		domain:    cfg.Auth0Domain,
		clientID:  cfg.Auth0ClientID,
		audience:  cfg.Auth0Audience,
		logoutURL: cfg.Auth0LogoutURL,
		apiBase:   cfg.HubAPIBase,
		client:    http.DefaultClient,
	}, nil
}

// safeReturnPath only accepts same-site absolute paths; everything else
// falls back to the app shell.
func safeReturnPath(raw string) string {
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return "/app"
	}
	if strings.HasPrefix(decoded, "/") && !strings.HasPrefix(decoded, "//") {
		return decoded
	}
	return "/app"
}

// ensureUser provisions the logged-in user with the hub API.
func (f *Flow) ensureUser(ctx context.Context, accessToken, name, email string) error {
	body, err := json.Marshal(map[string]string{"name": name, "email": email})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.apiBase+"/ensure-user", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	res, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("ensure-user call failed: %w", err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode >= 200 && res.StatusCode < 300:
		return nil
	case res.StatusCode == http.StatusConflict:
		return ErrAccountConflict
	case res.StatusCode == http.StatusBadRequest:
		return ErrInvalidProfile
	default:
		return fmt.Errorf("ensure-user returned status %d", res.StatusCode)
	}
}

// fetchRole reads the provisioned role from the hub API. A 404 means the
// user exists but has no role yet.
func (f *Flow) fetchRole(ctx context.Context, accessToken string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.apiBase+"/me", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	res, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("me call failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", fmt.Errorf("me returned status %d", res.StatusCode)
	}

	var payload struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return "", err
	}
	return payload.Role, nil
}
