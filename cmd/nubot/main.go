// nubot: conversational front-end for a child-companion robot.
// Routes each utterance into free conversation, canned redirects or the
// Guess the Animal game, drives the RGB indicator from detected emotion
// and keeps a caregiver notification log.
package main

import (
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nubotics/go-nubot/internal/config"
	"github.com/nubotics/go-nubot/internal/log"
	"github.com/nubotics/go-nubot/pkg/completion"
	"github.com/nubotics/go-nubot/pkg/dialogue"
	"github.com/nubotics/go-nubot/pkg/game"
	"github.com/nubotics/go-nubot/pkg/led"
	"github.com/nubotics/go-nubot/pkg/notify"
	"github.com/nubotics/go-nubot/pkg/tts"
	"github.com/nubotics/go-nubot/pkg/web"
)

var (
	port     = flag.Int("port", 0, "HTTP server port (overrides NUBOT_PORT)")
	logLevel = flag.String("log-level", "", "log level (overrides NUBOT_LOG_LEVEL)")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Error("loading configuration failed", "error", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	log.Init(cfg.LogLevel)
	logger := log.L()

	pins := led.Pins{Red: cfg.LEDPinRed, Green: cfg.LEDPinGreen, Blue: cfg.LEDPinBlue}
	gateway := led.Detect(pins, logger)

	store, err := openStore(cfg)
	if err != nil {
		log.Error("opening notification store failed", "error", err)
		os.Exit(1)
	}
	notifications := notify.NewLog(store, gateway, logger)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	var gameOpts []game.Option
	if cfg.GameSessionTTL > 0 {
		gameOpts = append(gameOpts, game.WithTTL(cfg.GameSessionTTL))
	}
	sessions := game.NewSessions(rng, gameOpts...)

	var online completion.Service
	if cfg.OpenAIKey != "" {
		svc, err := completion.NewOpenAI(cfg.OpenAIKey,
			completion.WithModel(cfg.ChatModel),
			completion.WithLogger(logger),
		)
		if err != nil {
			log.Error("configuring completion backend failed", "error", err)
			os.Exit(1)
		}
		online = svc
	} else {
		log.Warn("no OPENAI_API_KEY set, conversation runs offline only")
	}
	offline := completion.NewOffline(nil)

	speech := buildSpeech(cfg, logger)
	defer func() {
		if speech != nil {
			speech.Close()
		}
	}()

	router := dialogue.NewRouter(sessions, online, offline, cfg.OfflineMode, logger)
	orch := dialogue.NewOrchestrator(router, gateway, notifications, speech, logger)

	srv := web.NewServer(web.Options{
		Orchestrator: orch,
		Gateway:      gateway,
		Log:          notifications,
		StaticDir:    cfg.StaticDir,
		PagesDir:     cfg.PagesDir,
		Pins:         pins,
		Logger:       logger,
	})

	go func() {
		if err := srv.Start(cfg.Port); err != nil {
			log.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	if err := srv.Shutdown(); err != nil {
		log.Error("shutdown failed", "error", err)
	}
}

// openStore picks the notification store from configuration.
func openStore(cfg *config.Config) (notify.Store, error) {
	if cfg.NotifyDriver == "sqlite" {
		return notify.OpenSQLite(cfg.NotifyPath)
	}
	return notify.NewFileStore(cfg.NotifyPath), nil
}

// buildSpeech assembles the TTS provider chain: OpenAI when a key is
// configured, espeak when the binary is installed. A nil return means
// turns carry no audio.
func buildSpeech(cfg *config.Config, logger *slog.Logger) tts.Synthesizer {
	var providers []tts.Synthesizer

	if cfg.OpenAIKey != "" {
		openai, err := tts.NewOpenAI(
			tts.WithAPIKey(cfg.OpenAIKey),
			tts.WithModel(cfg.TTSModel),
			tts.WithVoice(cfg.TTSVoice),
			tts.WithStaticDir(cfg.StaticDir),
			tts.WithLogger(logger),
		)
		if err != nil {
			log.Warn("configuring openai speech failed", "error", err)
		} else {
			providers = append(providers, openai)
		}
	}

	if espeak := tts.NewEspeak(cfg.StaticDir, logger); espeak.Available() {
		providers = append(providers, espeak)
	} else {
		log.Warn("espeak not installed, no local speech fallback")
	}

	chain, err := tts.NewChain(providers...)
	if err != nil {
		log.Warn("no speech providers available, replies will be silent")
		return nil
	}
	return chain
}
