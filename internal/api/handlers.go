package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"logipack-console/internal/models"
	"logipack-console/internal/session"
	"logipack-console/internal/store"
)

func healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// getCurrentUser exposes the minimal user context the app shell needs.
func getCurrentUser(c echo.Context) error {
	rec := session.FromContext(c)
	return c.JSON(http.StatusOK, map[string]string{
		"name":   rec.Name,
		"email":  rec.Email,
		"role":   rec.Role,
		"locale": session.LocaleFromContext(c),
	})
}

func landingPage(c echo.Context) error {
	locale := session.LocaleFromContext(c)
	if session.FromContext(c) != nil {
		return c.Redirect(http.StatusFound, "/"+locale+"/app")
	}
	return c.JSON(http.StatusOK, map[string]string{
		"app":       "LogiPack",
		"locale":    locale,
		"login_url": "/" + locale + "/login",
	})
}

func appShell(c echo.Context) error {
	rec := session.FromContext(c)
	locale := session.LocaleFromContext(c)

	if rec.Role != "admin" && rec.Role != "employee" {
		return c.Redirect(http.StatusFound, "/"+locale+"/app/no-access")
	}
	return c.JSON(http.StatusOK, map[string]string{
		"name":   rec.Name,
		"email":  rec.Email,
		"role":   rec.Role,
		"locale": locale,
	})
}

func noAccessPage(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"error": "no role assigned to this account",
	})
}

// resetStores restores every store to its seed state.
func resetStores(st *store.Stores) echo.HandlerFunc {
	return func(c echo.Context) error {
		st.Shipments.Reset()
		st.Offices.Reset()
		st.Employees.Reset()
		return c.JSON(http.StatusOK, map[string]string{"status": "reset"})
	}
}

// storeError translates data-layer failures into HTTP responses.
func storeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, store.ErrValidation), errors.Is(err, models.ErrUnknownStatus):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, models.ErrTerminalState),
		errors.Is(err, models.ErrOfficeHop):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
