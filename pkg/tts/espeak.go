package tts

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"
)

const providerEspeak = "espeak"

// Espeak implements Synthesizer with the local espeak binary.
// It is the offline fallback: no network, robotic but dependable voice.
type Espeak struct {
	staticDir string
	binary    string
	speed     int
	logger    *slog.Logger
}

// NewEspeak creates the local synthesizer writing into staticDir.
func NewEspeak(staticDir string, logger *slog.Logger) *Espeak {
	if logger == nil {
		logger = slog.Default()
	}
	return &Espeak{
		staticDir: staticDir,
		binary:    "espeak",
		speed:     150,
		logger:    logger.With("component", "tts.espeak"),
	}
}

// Available reports whether the espeak binary can be found.
func (e *Espeak) Available() bool {
	_, err := exec.LookPath(e.binary)
	return err == nil
}

// Synthesize renders the text as response_<uuid>.wav via espeak.
func (e *Espeak) Synthesize(ctx context.Context, text, lang string) (string, error) {
	if lang != "en" && lang != "ar" {
		lang = "en"
	}

	if err := os.MkdirAll(e.staticDir, 0o755); err != nil {
		return "", WrapError(providerEspeak, fmt.Errorf("create static dir: %w", err))
	}

	token := fmt.Sprintf("response_%s.wav", uuid.NewString())
	path := filepath.Join(e.staticDir, token)

	cmd := exec.CommandContext(ctx, e.binary,
		"-s", fmt.Sprintf("%d", e.speed),
		"-v", lang,
		"-w", path,
		text,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", WrapError(providerEspeak, fmt.Errorf("%w: %s", err, out))
	}

	e.logger.Debug("synthesized audio", "chars", len(text), "lang", lang)
	return token, nil
}

// Close is a no-op for the local binary.
func (e *Espeak) Close() error {
	return nil
}

// Verify Espeak implements Synthesizer at compile time.
var _ Synthesizer = (*Espeak)(nil)
