package session

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// refreshWindow is how close to credential expiry a proactive refresh kicks in.
const refreshWindow = 30 * time.Second

// defaultLifetime is assumed when the provider omits expires_in.
const defaultLifetime = 3600

// authFlowPaths skip the locale redirect but still run session logic; they
// live outside the locale scope because the identity provider calls back to
// a fixed URL.
var authFlowPaths = map[string]struct{}{
	"/callback": {},
	"/logout":   {},
}

var bypassPaths = map[string]struct{}{
	"/favicon.ico":          {},
	"/robots.txt":           {},
	"/sitemap.xml":          {},
	"/manifest.webmanifest": {},
}

var bypassPrefixes = []string{
	"/static/",
	"/assets/",
	"/fonts/",
	"/images/",
	"/.well-known/",
}

// Middleware classifies every request: resolves its locale, decodes and
// validates the session cookie, and transparently renews the access
// credential shortly before it expires. All cryptographic and network
// failures collapse into "no session"; nothing from this path is ever
// surfaced to the client as an error.
type Middleware struct {
	codec     *Codec
	refresher *Refresher

	// SkipRedirect lists path prefixes (such as the JSON API) that are not
	// locale-scoped but must still get session resolution.
	SkipRedirect []string

	now func() time.Time
}

// NewMiddleware wires the session codec and credential refresher.
func NewMiddleware(codec *Codec, refresher *Refresher) *Middleware {
	return &Middleware{codec: codec, refresher: refresher, now: time.Now}
}

// Middleware returns the echo middleware performing the per-request
// bypass -> locale -> decode -> refresh -> publish sequence.
func (m *Middleware) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path

			if isBypassPath(path) {
				return next(c)
			}

			locale, out := m.resolveLocale(c, path)
			if !out.Continues() {
				// No session logic runs on a locale redirect.
				return out.Apply(c)
			}
			c.Set(ContextKeyLocale, locale)

			if rec := m.resolveSession(c); rec != nil {
				c.Set(ContextKeySession, rec)
			}

			return next(c)
		}
	}
}

// resolveLocale decides the request locale and whether the request must be
// redirected into the locale scope.
func (m *Middleware) resolveLocale(c echo.Context, path string) (string, Outcome) {
	seg := firstSegment(path)

	var cookieVal string
	if cookie, err := c.Cookie(LangCookie); err == nil {
		cookieVal = cookie.Value
	}

	locale := ResolveLocale(seg, cookieVal, c.Request().Header.Get("Accept-Language"))
	writeLangCookie(c, locale)

	if IsSupportedLocale(seg) {
		return locale, Continue()
	}
	if _, ok := authFlowPaths[path]; ok {
		return locale, Continue()
	}
	for _, prefix := range m.SkipRedirect {
		if strings.HasPrefix(path, prefix) {
			return locale, Continue()
		}
	}

	target := "/" + locale
	if path != "/" {
		target += path
	}
	if q := c.Request().URL.RawQuery; q != "" {
		target += "?" + q
	}
	return locale, Redirect(target)
}

// resolveSession reads, validates, and (near expiry) renews the session
// cookie. It returns nil for anything that is not a usable session, clearing
// the stale cookie along the way.
func (m *Middleware) resolveSession(c echo.Context) *Record {
	cookie, err := c.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}

	rec, err := m.codec.Decode(cookie.Value)
	if err != nil {
		ClearCookie(c)
		return nil
	}

	now := m.now()
	if rec.RefreshToken == "" || rec.ExpiresAt-now.Unix() >= int64(refreshWindow/time.Second) {
		return rec
	}

	cred := m.refresher.Refresh(c.Request().Context(), rec.RefreshToken)
	if cred == nil {
		ClearCookie(c)
		return nil
	}

	refreshed := rec.renewed(cred, now)
	token, err := m.codec.Encode(refreshed)
	if err != nil {
		ClearCookie(c)
		return nil
	}

	WriteCookie(c, token)
	return refreshed
}

// renewed builds the follow-up record after a successful refresh, keeping
// every field the provider did not rotate.
func (r *Record) renewed(cred *RefreshedCredential, now time.Time) *Record {
	lifetime := cred.ExpiresIn
	if lifetime <= 0 {
		lifetime = defaultLifetime
	}

	next := *r
	next.AccessToken = cred.AccessToken
	next.ExpiresAt = now.Unix() + lifetime
	if cred.IDToken != "" {
		next.IDToken = cred.IDToken
	}
	if cred.RefreshToken != "" {
		next.RefreshToken = cred.RefreshToken
	}
	return &next
}

func isBypassPath(path string) bool {
	if _, ok := bypassPaths[path]; ok {
		return true
	}
	for _, prefix := range bypassPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func firstSegment(path string) string {
	seg := strings.TrimPrefix(path, "/")
	seg, _, _ = strings.Cut(seg, "/")
	return seg
}
