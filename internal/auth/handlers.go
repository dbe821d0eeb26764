package auth

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/oauth2"

	"logipack-console/internal/session"
)

// Login redirects the browser to the identity provider's authorize page.
// The sanitized return path travels in the OAuth2 state parameter.
func (f *Flow) Login(c echo.Context) error {
	returnTo := safeReturnPath(c.QueryParam("returnTo"))

	authorizeURL := f.oauth.AuthCodeURL(
		url.QueryEscape(returnTo),
		oauth2.SetAuthURLParam("audience", f.audience),
		oauth2.SetAuthURLParam("ui_locales", session.LocaleFromContext(c)),
	)
	return c.Redirect(http.StatusFound, authorizeURL)
}

// Callback completes the login: exchanges the authorization code, extracts
// identity claims, provisions the user with the hub API, and issues the
// encrypted session cookie.
func (f *Flow) Callback(c echo.Context) error {
	code := c.QueryParam("code")
	if code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing ?code")
	}

	exchangeCtx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	token, err := f.oauth.Exchange(exchangeCtx, code)
	if err != nil {
		log.Printf("auth: code exchange failed: %v", err)
		return echo.NewHTTPError(http.StatusBadGateway, "authentication failed, please try again")
	}

	rawIDToken, _ := token.Extra("id_token").(string)
	name, email := f.identityClaims(exchangeCtx, token, rawIDToken)

	if err := f.ensureUser(exchangeCtx, token.AccessToken, name, email); err != nil {
		log.Printf("auth: ensure-user failed: %v", err)
		switch {
		case errors.Is(err, ErrAccountConflict):
			return c.Redirect(http.StatusSeeOther, "/?err=account_conflict&code=email_already_linked")
		case errors.Is(err, ErrInvalidProfile):
			return c.Redirect(http.StatusSeeOther, "/?err=invalid_profile")
		default:
			return echo.NewHTTPError(http.StatusBadGateway, "failed to provision user account")
		}
	}

	role, err := f.fetchRole(exchangeCtx, token.AccessToken)
	if err != nil {
		// A missing role is not fatal; the app shell shows no-access.
		log.Printf("auth: role fetch failed: %v", err)
	}

	expiresAt := token.Expiry.Unix()
	if token.Expiry.IsZero() {
		expiresAt = time.Now().Unix() + 3600
	}

	rec := &session.Record{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		IDToken:      rawIDToken,
		ExpiresAt:    expiresAt,
		Role:         role,
		Name:         name,
		Email:        email,
	}

	encoded, err := f.codec.Encode(rec)
	if err != nil {
		log.Printf("auth: session encode failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to establish session")
	}
	session.WriteCookie(c, encoded)

	return c.Redirect(http.StatusFound, safeReturnPath(c.QueryParam("state")))
}

// Logout clears the session cookie and sends the browser to the identity
// provider's logout endpoint.
func (f *Flow) Logout(c echo.Context) error {
	session.ClearCookie(c)

	u := url.URL{Scheme: "https", Host: f.domain, Path: "/v2/logout"}
	q := u.Query()
	q.Set("client_id", f.clientID)
	q.Set("returnTo", f.logoutURL)
	u.RawQuery = q.Encode()

	return c.Redirect(http.StatusFound, u.String())
}

// identityClaims pulls name and email from the verified ID token, falling
// back to the userinfo endpoint when the token carries neither.
func (f *Flow) identityClaims(ctx context.Context, token *oauth2.Token, rawIDToken string) (name, email string) {
	if rawIDToken != "" {
		if idToken, err := f.verifier.Verify(ctx, rawIDToken); err == nil {
			var claims struct {
				Name     string `json:"name"`
				Nickname string `json:"nickname"`
				Email    string `json:"email"`
			}
			if err := idToken.Claims(&claims); err == nil {
				name = claims.Name
				if name == "" {
					name = claims.Nickname
				}
				email = claims.Email
			}
		} else {
			log.Printf("auth: id token verification failed: %v", err)
		}
	}

	if name == "" || email == "" {
		infoCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if info, err := f.provider.UserInfo(infoCtx, oauth2.StaticTokenSource(token)); err == nil {
			var extra struct {
				Name     string `json:"name"`
				Nickname string `json:"nickname"`
			}
			_ = info.Claims(&extra)
			if name == "" {
				name = extra.Name
				if name == "" {
					name = extra.Nickname
				}
			}
			if email == "" {
				email = info.Email
			}
		}
	}

	if name == "" {
		name = "User"
	}
	return name, email
}
