package dialogue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nubotics/go-nubot/pkg/completion"
	"github.com/nubotics/go-nubot/pkg/emotion"
	"github.com/nubotics/go-nubot/pkg/led"
	"github.com/nubotics/go-nubot/pkg/notify"
	"github.com/nubotics/go-nubot/pkg/tts"
)

// Orchestrator runs one turn end to end: route, classify, actuate,
// notify, synthesize, assemble. It owns no state of its own; everything
// mutable lives in the injected collaborators.
type Orchestrator struct {
	router  *Router
	gateway *led.Gateway
	log     *notify.Log
	speech  tts.Synthesizer
	logger  *slog.Logger
}

// NewOrchestrator wires the turn pipeline. speech may be nil, in which
// case turns carry no audio token.
func NewOrchestrator(router *Router, gateway *led.Gateway, log *notify.Log, speech tts.Synthesizer, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		router:  router,
		gateway: gateway,
		log:     log,
		speech:  speech,
		logger:  logger.With("component", "dialogue.orchestrator"),
	}
}

// Router exposes the underlying router, for the offline-mode toggle.
func (o *Orchestrator) Router() *Router {
	return o.router
}

// Respond handles one turn and assembles the response envelope.
// Every failure below this point has a degraded behavior; the caller
// always receives a usable envelope.
func (o *Orchestrator) Respond(ctx context.Context, in TurnInput) Envelope {
	start := time.Now()
	out := o.router.Route(ctx, in)

	env := Envelope{
		Text:     out.Text,
		Redirect: out.Redirect,
	}

	if out.SoundCue != "" {
		// Game-start turns play the pre-recorded cue instead of
		// synthesized speech.
		env.Audio = out.SoundCue
	} else {
		lang := completion.DetectLang(in.Lang, in.Text)
		ttsStart := time.Now()
		env.Audio = o.synthesize(ctx, out.Text, lang)
		env.Timing.TTSMs = time.Since(ttsStart).Milliseconds()
	}

	// The classifier reads the reply, not the child's utterance. Game
	// and redirect replies classify as happy or neutral, so they light
	// the indicator but never notify.
	label := emotion.Classify(out.Text)
	env.Emotion = string(label)
	o.gateway.SetEmotionColor(label)

	if sev, ok := notify.SeverityFor(label); ok {
		o.log.Append(label, notificationMessage(label, in.Text), sev)
	}

	env.Timing.TotalMs = time.Since(start).Milliseconds()
	o.logTurn(in, env, out)
	return env
}

// synthesize returns the audio token for the reply, or "" when speech
// is unconfigured or every provider failed.
func (o *Orchestrator) synthesize(ctx context.Context, text, lang string) string {
	if o.speech == nil || text == "" {
		return ""
	}
	token, err := o.speech.Synthesize(ctx, text, lang)
	if err != nil {
		o.logger.Warn("speech synthesis failed, turn carries no audio", "error", err)
		return ""
	}
	return "/static/" + token
}

// notificationMessage formats the caregiver-facing message, quoting the
// first 50 characters of the child's utterance.
func notificationMessage(label emotion.Label, userText string) string {
	runes := []rune(userText)
	if len(runes) > 50 {
		runes = runes[:50]
	}
	return fmt.Sprintf("Child expressed %s emotion: %s...", label, string(runes))
}

func (o *Orchestrator) logTurn(in TurnInput, env Envelope, out Outcome) {
	o.logger.Info("turn complete",
		"session", in.SessionID,
		"kind", out.Kind,
		"emotion", env.Emotion,
		"redirect", env.Redirect,
		"total_ms", env.Timing.TotalMs,
		"tts_ms", env.Timing.TTSMs,
	)
}
