// Package server assembles the HTTP API: middleware, routes and the
// metrics endpoint.
package server

import (
	"context"
	"fmt"

	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Ramsey-B/fern/config"
	"github.com/Ramsey-B/fern/pkg/health"
	"github.com/Ramsey-B/fern/pkg/middleware"
	pluginroutes "github.com/Ramsey-B/fern/pkg/routes/plugins"
	transferroutes "github.com/Ramsey-B/fern/pkg/routes/transfer"
	validationroutes "github.com/Ramsey-B/fern/pkg/routes/validation"
)

// Server is the assembled HTTP API.
type Server struct {
	echo   *echo.Echo
	logger ectologger.Logger
	port   int
}

// New builds the echo app with error handling, request logging, the API
// route groups and the health and metrics endpoints.
func New(cfg *config.Config, logger ectologger.Logger, checker *health.Checker) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.Error(logger)
	e.Use(middleware.Logger(logger))

	api := e.Group("/api/v1")
	validationroutes.Register(api.Group("/validation"))
	transferroutes.Register(api.Group("/transfers"))
	pluginroutes.Register(api.Group("/plugins"))

	checker.RegisterRoutes(e)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return &Server{
		echo:   e,
		logger: logger,
		port:   cfg.Port,
	}
}

// Echo exposes the underlying echo instance for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.logger.WithField("port", s.port).Info("Starting HTTP server")
	return s.echo.Start(fmt.Sprintf(":%d", s.port))
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
