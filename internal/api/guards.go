package api

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"logipack-console/internal/session"
)

// RequireSession rejects API requests that carry no valid session. The
// session middleware has already recovered every failure into "no session",
// so a bare nil check is all that is left to do here.
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if session.FromContext(c) == nil {
				return session.Reject(http.StatusUnauthorized, "authentication required").Apply(c)
			}
			return next(c)
		}
	}
}

// RequireRole rejects sessions whose role is not in the allowed set.
// Must be used after RequireSession.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rec := session.FromContext(c)
			if rec == nil {
				return session.Reject(http.StatusUnauthorized, "authentication required").Apply(c)
			}
			for _, role := range roles {
				if rec.Role == role {
					return next(c)
				}
			}
			return session.Reject(http.StatusForbidden, "insufficient permissions").Apply(c)
		}
	}
}

// RequirePageSession sends unauthenticated page requests to the landing
// page, remembering where they were headed.
func RequirePageSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if session.FromContext(c) != nil {
				return next(c)
			}
			target := c.Request().URL.Path
			if q := c.Request().URL.RawQuery; q != "" {
				target += "?" + q
			}
			return session.Redirect("/?redirect=" + url.QueryEscape(target)).Apply(c)
		}
	}
}
