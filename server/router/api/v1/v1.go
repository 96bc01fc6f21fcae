// Package v1 exposes the calendar operations as REST resources. The handlers
// are thin adapters: boundary input (usernames, form-encoded instants) is
// validated and parsed at the edge, then handed to the calendar service, and
// the resulting envelope is rendered as JSON without inventing new status
// semantics.
package v1

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/meetcal/internal/profile"
	"github.com/hrygo/meetcal/server/internal/observability"
	"github.com/hrygo/meetcal/server/service/calendar"
	"github.com/hrygo/meetcal/store"
)

type APIV1Service struct {
	Profile         *profile.Profile
	Store           *store.Store
	CalendarService *calendar.Service
}

func NewAPIV1Service(profile *profile.Profile, store *store.Store) *APIV1Service {
	return &APIV1Service{
		Profile:         profile,
		Store:           store,
		CalendarService: calendar.NewService(store),
	}
}

// RegisterRoutes registers the v1 REST routes with the given Echo instance.
func (s *APIV1Service) RegisterRoutes(echoServer *echo.Echo) {
	g := echoServer.Group("/api/v1")

	g.POST("/person/:username", s.registerPerson)
	g.GET("/person/:username", s.lookupPerson)

	g.GET("/slots/:username", s.listSlots)
	g.POST("/slots/:username", s.addSlots)

	g.GET("/meeting/:usernames", s.organizeMeeting)
}

// respond renders an envelope. Domain failures stay HTTP 200 with a nonzero
// envelope code; only malformed boundary input downgrades to 400.
func respond(c echo.Context, env calendar.Envelope) error {
	if !env.IsOK() {
		if reqCtx, ok := observability.FromContext(c.Request().Context()); ok {
			reqCtx.Warn("operation rejected", rejectionAttrs(c, env)...)
		}
	}
	return c.JSON(http.StatusOK, env)
}

func respondBadRequest(c echo.Context, env calendar.Envelope) error {
	if reqCtx, ok := observability.FromContext(c.Request().Context()); ok {
		reqCtx.Debug("malformed request input", rejectionAttrs(c, env)...)
	}
	return c.JSON(http.StatusBadRequest, env)
}

func rejectionAttrs(c echo.Context, env calendar.Envelope) []slog.Attr {
	attrs := []slog.Attr{slog.Int(observability.LogFieldErrorCode, env.Code)}
	if username := c.Param("username"); username != "" {
		attrs = append(attrs, slog.String(observability.LogFieldUsername, username))
	}
	return attrs
}
