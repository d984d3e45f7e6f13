package web

import (
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/nubotics/go-nubot/pkg/dialogue"
	"github.com/nubotics/go-nubot/pkg/emotion"
	"github.com/nubotics/go-nubot/pkg/hub"
)

// pageFiles maps page routes to the HTML files under PagesDir.
var pageFiles = map[string]string{
	"/":                        "index.html",
	"/games":                   "games.html",
	"/games/guess-animal":      "guess-animal.html",
	"/games/tic-tac-toe":       "tic-tac-toe.html",
	"/games/magic-math":        "magic-math.html",
	"/games/story-spinner":     "story-spinner.html",
	"/games/animal-facts-quiz": "animal-facts-quiz.html",
	"/games/memory-echo":       "memory-echo.html",
	"/games/guess-the-number":  "guess-the-number.html",
}

func (s *Server) pageHandler(file string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendFile(filepath.Join(s.pages, file))
	}
}

// turnRequest is the body of POST /get_response.
type turnRequest struct {
	Text   string `json:"text"`
	Lang   string `json:"lang"`
	Source string `json:"source"`
}

// handleGetResponse runs one dialogue turn. The session identity is the
// caller's IP; the referrer header is a fallback source hint.
func (s *Server) handleGetResponse(c *fiber.Ctx) error {
	var req turnRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if req.Lang == "" {
		req.Lang = "auto"
	}

	env := s.orch.Respond(c.Context(), dialogue.TurnInput{
		Text:      req.Text,
		Lang:      req.Lang,
		Source:    req.Source,
		Referrer:  c.Get(fiber.HeaderReferer),
		SessionID: c.IP(),
	})
	return c.JSON(env)
}

// handleNotifications returns the most recent notification records.
func (s *Server) handleNotifications(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	return c.JSON(s.log.Recent(limit))
}

// handleSetEmotion sets the LED color manually, for caregiver dashboards.
func (s *Server) handleSetEmotion(c *fiber.Ctx) error {
	label := emotion.Label(c.Params("emotion"))
	if !label.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unknown emotion",
		})
	}
	s.gateway.SetEmotionColor(label)
	return c.JSON(fiber.Map{"status": "success", "emotion": label})
}

// handleStatus reports runtime health for the dashboard.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	var pins any = "simulation_mode"
	if !s.gateway.Simulated() {
		pins = s.pins
	}
	return c.JSON(fiber.Map{
		"offline_mode":        s.orch.Router().OfflineMode(),
		"raspberry_pi":        !s.gateway.Simulated(),
		"notifications_count": s.log.Len(),
		"led_pins":            pins,
	})
}

// handleTestLED blinks the indicator. The blink runs synchronously, so
// the response confirms the pattern completed.
func (s *Server) handleTestLED(c *fiber.Ctx) error {
	s.gateway.Blink(3, 500*time.Millisecond)
	return c.JSON(fiber.Map{"status": "LED test completed"})
}

// offlineModeRequest is the body of POST /api/offline-mode.
type offlineModeRequest struct {
	Offline bool `json:"offline"`
}

// handleOfflineMode toggles the forced offline path. The toggle takes
// effect on the next turn; no restart is needed.
func (s *Server) handleOfflineMode(c *fiber.Ctx) error {
	var req offlineModeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	s.orch.Router().SetOfflineMode(req.Offline)
	return c.JSON(fiber.Map{
		"status":       "success",
		"offline_mode": req.Offline,
	})
}

// handleNotificationsWS streams notification records to a caregiver
// dashboard: a backlog of recent records first, then live appends via
// the hub.
func (s *Server) handleNotificationsWS(c *websocket.Conn) {
	for _, rec := range s.log.Recent(10) {
		if err := c.WriteJSON(rec); err != nil {
			c.Close()
			return
		}
	}
	client := hub.NewClient(s.hub, c)
	client.Run()
}
