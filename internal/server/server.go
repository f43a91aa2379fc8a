// Package server exposes assistant sessions over HTTP and streams preference
// changes over a websocket.
package server

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/alexanderramin/coach/internal/assistant"
	"github.com/alexanderramin/coach/internal/config"
	"github.com/alexanderramin/coach/internal/events"
	"github.com/alexanderramin/coach/internal/knowledge"
)

type Deps struct {
	Factory   *assistant.Factory
	Knowledge *knowledge.Registry
	Bus       *events.Bus // optional; disables /ws/preferences when nil
	Logger    *zap.Logger
}

type Server struct {
	app      *fiber.App
	cfg      config.ServerConfig
	registry *Registry
	kb       *knowledge.Registry
	bus      *events.Bus
	logger   *zap.Logger
	clock    ClockFunc
}

type Option func(*Server)

// WithClock replaces the realtime scheduler used for new sessions.
func WithClock(fn ClockFunc) Option {
	return func(s *Server) { s.clock = fn }
}

func New(cfg config.ServerConfig, deps Deps, opts ...Option) (*Server, error) {
	if deps.Factory == nil || deps.Knowledge == nil {
		return nil, errors.New("server: factory and knowledge are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		cfg:    cfg,
		kb:     deps.Knowledge,
		bus:    deps.Bus,
		logger: logger.Named("server"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registry = NewRegistry(deps.Factory, cfg.SessionTTL, s.clock, s.logger)

	s.app = fiber.New(fiber.Config{
		AppName:               "coach",
		BodyLimit:             64 * 1024,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(s.logger),
	})
	s.app.Use(recover.New())
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))
	s.app.Use(requestLogger(s.logger))
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.app.Get("/healthz", s.health)

	api := s.app.Group("/api/v1")
	api.Get("/topics", s.listTopics)
	api.Get("/quick", s.listQuick)

	sessions := api.Group("/sessions")
	sessions.Post("", s.createSession)
	sessions.Get("/:id", s.getSession)
	sessions.Delete("/:id", s.deleteSession)
	sessions.Post("/:id/messages", s.postMessage)
	sessions.Put("/:id/variant", s.putVariant)
	sessions.Post("/:id/surface", s.postSurface)
	sessions.Post("/:id/quick/:n", s.postQuick)

	if s.bus != nil {
		s.app.Use("/ws", upgradeOnly)
		s.app.Get("/ws/preferences", websocket.New(s.streamPreferences))
	}
}

func requestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.Debug("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
			zap.Error(err))
		return err
	}
}

func (s *Server) App() *fiber.App { return s.app }

func (s *Server) Registry() *Registry { return s.registry }

// Listen serves on the configured address until Shutdown.
func (s *Server) Listen() error {
	s.logger.Info("listening", zap.String("addr", s.cfg.Addr))
	return s.app.Listen(s.cfg.Addr)
}

// Shutdown stops accepting requests, then stops every session.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.app.ShutdownWithContext(ctx)
	s.registry.Close()
	return err
}
