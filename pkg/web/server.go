// Package web is the HTTP transport for nubot: the per-turn endpoint,
// the static game pages, and the caregiver management API. Everything
// stateful lives below it; handlers translate between HTTP and the
// dialogue pipeline.
package web

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/nubotics/go-nubot/pkg/dialogue"
	"github.com/nubotics/go-nubot/pkg/hub"
	"github.com/nubotics/go-nubot/pkg/led"
	"github.com/nubotics/go-nubot/pkg/notify"
)

// Options carries the collaborators the server needs.
type Options struct {
	Orchestrator *dialogue.Orchestrator
	Gateway      *led.Gateway
	Log          *notify.Log

	// StaticDir holds sounds and synthesized replies, served at /static.
	StaticDir string

	// PagesDir holds the HTML game pages.
	PagesDir string

	// Pins is reported by /api/status when running on hardware.
	Pins led.Pins

	Logger *slog.Logger
}

// Server is the nubot web front-end.
type Server struct {
	app     *fiber.App
	orch    *dialogue.Orchestrator
	gateway *led.Gateway
	log     *notify.Log
	hub     *hub.Hub
	pins    led.Pins
	pages   string
	logger  *slog.Logger
}

// NewServer builds the fiber app and wires all routes. The notification
// hub is registered on the log so every append streams to connected
// caregiver dashboards.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		orch:    opts.Orchestrator,
		gateway: opts.Gateway,
		log:     opts.Log,
		hub:     hub.New("notifications", logger),
		pins:    opts.Pins,
		pages:   opts.PagesDir,
		logger:  logger.With("component", "web"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "nubot",
		DisableStartupMessage: true,
	})
	app.Use(cors.New())

	app.Static("/static", opts.StaticDir)
	for path, file := range pageFiles {
		app.Get(path, s.pageHandler(file))
	}

	app.Post("/get_response", s.handleGetResponse)

	api := app.Group("/api")
	api.Get("/notifications", s.handleNotifications)
	api.Get("/emotion/:emotion", s.handleSetEmotion)
	api.Get("/status", s.handleStatus)
	api.Get("/test-led", s.handleTestLED)
	api.Post("/offline-mode", s.handleOfflineMode)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/notifications", websocket.New(s.handleNotificationsWS))

	s.log.OnAppend(func(rec notify.Record) {
		if err := s.hub.BroadcastJSON(rec); err != nil {
			s.logger.Warn("broadcasting notification failed", "error", err)
		}
	})

	s.app = app
	return s
}

// Start runs the notification hub and listens on the given port.
// It blocks until Shutdown is called.
func (s *Server) Start(port int) error {
	go s.hub.Run()
	s.logger.Info("listening", "port", port)
	return s.app.Listen(fmt.Sprintf(":%d", port))
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}
