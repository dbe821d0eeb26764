package session

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type outcomeKind int

const (
	kindContinue outcomeKind = iota
	kindRedirect
	kindReject
)

// Outcome is the tagged result of one middleware stage. The orchestrator
// (and the API route guards) interpret it; stages never abort a request by
// panicking or returning raw errors.
type Outcome struct {
	kind     outcomeKind
	location string
	status   int
	detail   string
}

// Continue lets the request proceed to the next stage.
func Continue() Outcome { return Outcome{kind: kindContinue} }

// Redirect stops the request with a 302 to the given location.
func Redirect(location string) Outcome {
	return Outcome{kind: kindRedirect, location: location}
}

// Reject stops the request with the given status and detail message.
func Reject(status int, detail string) Outcome {
	return Outcome{kind: kindReject, status: status, detail: detail}
}

// Continues reports whether the request should proceed downstream.
func (o Outcome) Continues() bool { return o.kind == kindContinue }

// Apply writes a non-Continue outcome to the response.
func (o Outcome) Apply(c echo.Context) error {
	switch o.kind {
	case kindRedirect:
		return c.Redirect(http.StatusFound, o.location)
	case kindReject:
		return c.JSON(o.status, map[string]string{"error": o.detail})
	default:
		return nil
	}
}
