// Package server assembles the HTTP façade: an echo instance carrying the v1
// REST routes, request logging, and graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/hrygo/meetcal/internal/profile"
	"github.com/hrygo/meetcal/server/internal/observability"
	"github.com/hrygo/meetcal/server/middleware"
	apiv1 "github.com/hrygo/meetcal/server/router/api/v1"
	"github.com/hrygo/meetcal/store"
)

type Server struct {
	Profile *profile.Profile
	Store   *store.Store

	echoServer *echo.Echo
}

func NewServer(ctx context.Context, profile *profile.Profile, store *store.Store) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(requestLogger())
	e.Use(middleware.NewRateLimiter().Echo())

	apiV1Service := apiv1.NewAPIV1Service(profile, store)
	apiV1Service.RegisterRoutes(e)

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "Service ready.")
	})

	return &Server{
		Profile:    profile,
		Store:      store,
		echoServer: e,
	}, nil
}

func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	slog.Info("server listening", slog.String("addr", addr), slog.String("mode", s.Profile.Mode))
	return s.echoServer.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.echoServer.Shutdown(ctx); err != nil {
		slog.Error("failed to shutdown server", slog.String("error", err.Error()))
	}
	if err := s.Store.Close(); err != nil {
		slog.Error("failed to close store", slog.String("error", err.Error()))
	}
	slog.Info("server stopped")
}

// requestLogger attaches a request context with a generated request ID and
// logs one line per request.
func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqCtx := observability.NewRequestContext(slog.Default(), c.Request().Method+" "+c.Path())
			c.SetRequest(c.Request().WithContext(
				observability.WithRequestContext(c.Request().Context(), reqCtx),
			))

			err := next(c)

			attrs := []slog.Attr{
				slog.Int("status", c.Response().Status),
				slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()),
			}
			if err != nil {
				reqCtx.Error("request failed", err, attrs...)
			} else {
				reqCtx.Info("request completed", attrs...)
			}
			return err
		}
	}
}
