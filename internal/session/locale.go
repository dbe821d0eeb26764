package session

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// LangCookie persists the visitor's locale preference across visits.
const LangCookie = "lang"

// DefaultLocale is the fixed fallback when nothing else resolves.
const DefaultLocale = "en"

var supportedLocales = []string{"en", "bg"}

// IsSupportedLocale reports whether s is one of the supported locale codes.
func IsSupportedLocale(s string) bool {
	for _, l := range supportedLocales {
		if s == l {
			return true
		}
	}
	return false
}

// ResolveLocale picks the locale for a request, in priority order: an
// explicit locale path segment, the preference cookie, the Accept-Language
// header, then the fallback. It always returns a supported locale.
func ResolveLocale(pathSegment, cookieValue, acceptLanguage string) string {
	if IsSupportedLocale(pathSegment) {
		return pathSegment
	}
	if IsSupportedLocale(cookieValue) {
		return cookieValue
	}
	for _, tag := range parseAcceptLanguage(acceptLanguage) {
		if IsSupportedLocale(tag) {
			return tag
		}
	}
	return DefaultLocale
}

// parseAcceptLanguage extracts lower-cased primary subtags from an
// Accept-Language header, in order of appearance.
func parseAcceptLanguage(header string) []string {
	if header == "" {
		return nil
	}

	var tags []string
	for _, part := range strings.Split(header, ",") {
		tag, _, _ := strings.Cut(part, ";")
		tag = strings.ToLower(strings.TrimSpace(tag))
		tag, _, _ = strings.Cut(tag, "-")
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// writeLangCookie persists the resolved locale when it differs from the
// current preference cookie.
func writeLangCookie(c echo.Context, locale string) {
	if cookie, err := c.Cookie(LangCookie); err == nil && cookie.Value == locale {
		return
	}
	c.SetCookie(&http.Cookie{
		Name:     LangCookie,
		Value:    locale,
		Path:     "/",
		MaxAge:   60 * 60 * 24 * 365,
		SameSite: http.SameSiteLaxMode,
		Secure:   c.Scheme() == "https",
		HttpOnly: false,
	})
}
