// Package server exposes the moderator service over HTTP.
package server

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/bicheichane/millers-hollow/internal/metrics"
	"github.com/bicheichane/millers-hollow/internal/service"
)

// Config holds the HTTP server settings.
type Config struct {
	Addr string
}

// Server is the moderator HTTP API.
type Server struct {
	app    *fiber.App
	svc    *service.Service
	logger zerolog.Logger
	addr   string
}

// New creates and wires the HTTP server.
func New(cfg Config, svc *service.Service, m *metrics.Metrics, logger zerolog.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(logger),
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
	})

	s := &Server{
		app:    app,
		svc:    svc,
		logger: logger.With().Str("component", "server").Logger(),
		addr:   cfg.Addr,
	}

	app.Use(recover.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	v1 := app.Group("/api/v1")
	v1.Post("/sessions", s.createSession)
	v1.Get("/sessions", s.listSessions)
	v1.Get("/sessions/:id", s.getSession)
	v1.Post("/sessions/:id/input", s.submitInput)

	return s
}

// Start blocks serving HTTP until the listener closes.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.addr).Msg("http server starting")
	return s.app.Listen(s.addr)
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown() error {
	s.logger.Info().Msg("http server shutting down")
	return s.app.Shutdown()
}

// App exposes the fiber application for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func errorHandler(logger zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}
		logger.Error().
			Err(err).
			Int("status", code).
			Str("path", c.Path()).
			Msg("unhandled error")
		return c.Status(code).JSON(fiber.Map{"error": err.Error()})
	}
}
