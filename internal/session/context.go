package session

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// SessionCookie carries the encrypted session token.
const SessionCookie = "lp_session"

// Context keys for values the middleware publishes to downstream handlers.
const (
	ContextKeySession = "session"
	ContextKeyLocale  = "locale"
)

// FromContext retrieves the session record published by the middleware, or
// nil when the request is unauthenticated.
func FromContext(c echo.Context) *Record {
	rec, ok := c.Get(ContextKeySession).(*Record)
	if !ok {
		return nil
	}
	return rec
}

// LocaleFromContext retrieves the resolved locale for the request. Requests
// that bypass the middleware fall back to the default locale.
func LocaleFromContext(c echo.Context) string {
	locale, ok := c.Get(ContextKeyLocale).(string)
	if !ok || locale == "" {
		return DefaultLocale
	}
	return locale
}

// WriteCookie stores an encoded session token on the response.
func WriteCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   60 * 60 * 24 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   c.Scheme() == "https",
	})
}

// ClearCookie deletes the session cookie.
func ClearCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   c.Scheme() == "https",
	})
}
