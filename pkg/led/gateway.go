package led

import (
	"log/slog"
	"sync"
	"time"

	"github.com/nubotics/go-nubot/pkg/emotion"
)

// Color is an RGB triple mirrored to the actuator.
type Color struct {
	R, G, B uint8
}

// emotionColors is the fixed emotion to color table.
var emotionColors = map[emotion.Label]Color{
	emotion.Happy:    {0, 255, 0},
	emotion.Sad:      {0, 0, 255},
	emotion.Angry:    {255, 0, 0},
	emotion.Surprise: {255, 255, 0},
	emotion.Playing:  {255, 0, 255},
	emotion.Neutral:  {255, 255, 255},
}

// ColorFor returns the color for an emotion. Unknown labels map to the
// neutral color rather than failing.
func ColorFor(label emotion.Label) Color {
	if c, ok := emotionColors[label]; ok {
		return c
	}
	return emotionColors[emotion.Neutral]
}

// Gateway maps emotion labels onto the actuator and exposes the blink
// primitive used for notification escalation. Hardware errors are logged,
// never propagated: a failed LED write must not fail a turn.
type Gateway struct {
	act       Actuator
	logger    *slog.Logger
	simulated bool

	mu    sync.Mutex
	color Color
}

// NewGateway creates a gateway over the given actuator.
func NewGateway(act Actuator, simulated bool, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		act:       act,
		simulated: simulated,
		logger:    logger.With("component", "led.gateway"),
	}
}

// Detect probes for hardware and returns a gateway over real GPIO pins,
// falling back to the simulated actuator when no Pi is present or the
// pins cannot be claimed.
func Detect(pins Pins, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	if DetectRaspberryPi() {
		gpio, err := NewGPIO(pins)
		if err == nil {
			logger.Info("led hardware detected", "pins", pins)
			return NewGateway(gpio, false, logger)
		}
		logger.Warn("led hardware present but unusable, simulating", "error", err)
	}
	return NewGateway(NewSimulated(logger), true, logger)
}

// SetEmotionColor sets the indicator to the color for the given emotion.
func (g *Gateway) SetEmotionColor(label emotion.Label) {
	g.set(ColorFor(label))
}

// Blink flashes the indicator the given number of times, then restores
// the previous color. Used by the notification log for escalation.
func (g *Gateway) Blink(times int, delay time.Duration) {
	g.mu.Lock()
	restore := g.color
	g.mu.Unlock()

	for i := 0; i < times; i++ {
		g.write(Color{255, 255, 255})
		time.Sleep(delay)
		g.write(Color{})
		time.Sleep(delay)
	}
	g.set(restore)
}

// Color returns the last color written. Last write wins; concurrent
// turns racing here is cosmetic, not a correctness issue.
func (g *Gateway) Color() Color {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.color
}

// Simulated reports whether the gateway is running without hardware.
func (g *Gateway) Simulated() bool {
	return g.simulated
}

func (g *Gateway) set(c Color) {
	g.mu.Lock()
	g.color = c
	g.mu.Unlock()
	g.write(c)
}

func (g *Gateway) write(c Color) {
	if err := g.act.SetRGB(c.R, c.G, c.B); err != nil {
		g.logger.Warn("led write failed", "error", err)
	}
}
