// Package tts turns reply text into audio files the web player can fetch.
//
// Providers write their output into the static directory and return the
// generated file name as an audio token; the transport layer maps tokens
// to /static/<token> URLs. Multiple backends implement the Synthesizer
// interface (OpenAI speech API, local espeak), composed through Chain so
// the online voice degrades to the local one instead of failing a turn.
package tts

import (
	"context"
	"log/slog"
	"time"
)

// Synthesizer converts text to a stored audio file.
type Synthesizer interface {
	// Synthesize renders the text in the given language and returns the
	// audio file token (a file name inside the static directory).
	Synthesize(ctx context.Context, text, lang string) (string, error)

	// Close releases any resources held by the provider.
	Close() error
}

// Config holds provider configuration shared by the backends.
type Config struct {
	APIKey    string
	BaseURL   string
	ModelID   string
	VoiceID   string
	StaticDir string

	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration

	Logger *slog.Logger
}

// Option is a functional option for configuring providers.
type Option func(*Config)

// WithAPIKey sets the API key for the provider.
func WithAPIKey(key string) Option {
	return func(c *Config) { c.APIKey = key }
}

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *Config) { c.BaseURL = url }
}

// WithModel sets the speech model ID.
func WithModel(modelID string) Option {
	return func(c *Config) { c.ModelID = modelID }
}

// WithVoice sets the voice ID.
func WithVoice(voiceID string) Option {
	return func(c *Config) { c.VoiceID = voiceID }
}

// WithStaticDir sets the directory audio files are written into.
func WithStaticDir(dir string) Option {
	return func(c *Config) { c.StaticDir = dir }
}

// WithTimeout sets the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) { c.Timeout = timeout }
}

// WithRetry configures retry behavior for failed requests.
func WithRetry(maxRetries int, delay time.Duration) Option {
	return func(c *Config) {
		c.MaxRetries = maxRetries
		c.RetryDelay = delay
	}
}

// WithLogger sets the structured logger for the provider.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) { c.Logger = logger }
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() *Config {
	return &Config{
		ModelID:    ModelTTS1HD,
		VoiceID:    VoiceShimmer,
		StaticDir:  "./static",
		Timeout:    30 * time.Second,
		MaxRetries: 2,
		RetryDelay: 100 * time.Millisecond,
		Logger:     slog.Default(),
	}
}

// Apply applies functional options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrNoAPIKey
	}
	return nil
}
