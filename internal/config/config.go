// Package config loads go-nubot configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime configuration for the nubot service.
// Every field can be set through environment variables; defaults are
// chosen so the service runs on a dev machine with no setup at all
// (simulated LED, offline responses, file-backed notifications).
type Config struct {
	// HTTP server
	Port      int    `env:"NUBOT_PORT" envDefault:"8080"`
	StaticDir string `env:"NUBOT_STATIC_DIR" envDefault:"./static"`
	PagesDir  string `env:"NUBOT_PAGES_DIR" envDefault:"./web"`

	// Logging
	LogLevel string `env:"NUBOT_LOG_LEVEL" envDefault:"info"`

	// Completion / TTS backends
	OpenAIKey   string `env:"OPENAI_API_KEY"`
	ChatModel   string `env:"NUBOT_CHAT_MODEL" envDefault:"gpt-4"`
	TTSModel    string `env:"NUBOT_TTS_MODEL" envDefault:"tts-1-hd"`
	TTSVoice    string `env:"NUBOT_TTS_VOICE" envDefault:"shimmer"`
	OfflineMode bool   `env:"OFFLINE_MODE" envDefault:"false"`

	// LED pins (BCM numbering)
	LEDPinRed   int `env:"LED_PIN_RED" envDefault:"18"`
	LEDPinGreen int `env:"LED_PIN_GREEN" envDefault:"23"`
	LEDPinBlue  int `env:"LED_PIN_BLUE" envDefault:"24"`

	// Notification store. Driver is "file" or "sqlite".
	NotifyDriver string `env:"NUBOT_NOTIFY_DRIVER" envDefault:"file"`
	NotifyPath   string `env:"NUBOT_NOTIFY_PATH" envDefault:"notifications.json"`

	// Game sessions. Zero means rounds never expire.
	GameSessionTTL time.Duration `env:"NUBOT_GAME_SESSION_TTL" envDefault:"0"`
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
