package dialogue

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/nubotics/go-nubot/pkg/completion"
	"github.com/nubotics/go-nubot/pkg/game"
)

// redirectRule is one entry of the fixed intent table.
type redirectRule struct {
	phrases []string
	path    string
	text    string
}

// redirectTable is scanned in order; the order is a frozen policy.
// Specific game names come first, the generic play/fun/game catch-all
// last. The stop-playing phrases sit just above the catch-all so that
// "don't want to play" resolves to stopping, not to the games page.
var redirectTable = []redirectRule{
	{
		phrases: []string{"let's play guess the animal", "guess the animal", "animal game", "play animal", "animal sound", "play guess animal"},
		path:    "/games/guess-animal",
		text:    "Yay! Let's play Guess the Animal!",
	},
	{
		phrases: []string{"tic tac toe", "tic-tac-toe"},
		path:    "/games/tic-tac-toe",
		text:    "Alright! Starting Tic-Tac-Toe!",
	},
	{
		phrases: []string{"magic math", "math game"},
		path:    "/games/magic-math",
		text:    "Let's do some Magic Math!",
	},
	{
		phrases: []string{"story spinner", "story game"},
		path:    "/games/story-spinner",
		text:    "Time for a story adventure!",
	},
	{
		phrases: []string{"animal facts", "facts quiz"},
		path:    "/games/animal-facts-quiz",
		text:    "Get ready for the Animal Facts Quiz!",
	},
	{
		phrases: []string{"memory echo", "memory game"},
		path:    "/games/memory-echo",
		text:    "Alright! Memory Echo coming up!",
	},
	{
		phrases: []string{"guess the number", "number game"},
		path:    "/games/guess-the-number",
		text:    "Okay! Let's guess the number!",
	},
	{
		phrases: []string{"don't want to play", "no game", "stop playing"},
		path:    "/",
		text:    "Okay, back to chatting! Tell me anything.",
	},
	{
		phrases: []string{"play", "fun", "game"},
		path:    "/games",
		text:    "Wohoo! Welcome to the Games Page! Let's pick a fun game.",
	},
}

// Router decides what each turn means and produces its reply text.
// It owns the online-to-offline fallback: a completion failure is logged
// and answered from the offline generator, never surfaced to the caller.
type Router struct {
	sessions *game.Sessions
	online   completion.Service
	offline  *completion.Offline
	logger   *slog.Logger

	// offlineMode forces every conversation turn onto the offline path.
	// Atomic: toggled by the management API while turns are in flight.
	offlineMode atomic.Bool
}

// NewRouter creates the intent router. online may be nil (no backend
// configured); offline is required and must never fail.
func NewRouter(sessions *game.Sessions, online completion.Service, offline *completion.Offline, offlineMode bool, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Router{
		sessions: sessions,
		online:   online,
		offline:  offline,
		logger:   logger.With("component", "dialogue.router"),
	}
	r.offlineMode.Store(offlineMode)
	return r
}

// SetOfflineMode toggles the forced offline path at runtime.
func (r *Router) SetOfflineMode(on bool) {
	r.offlineMode.Store(on)
}

// OfflineMode reports whether conversation turns are forced offline.
func (r *Router) OfflineMode() bool {
	return r.offlineMode.Load()
}

// gameAttributed reports whether the turn belongs to Guess the Animal,
// by explicit source tag or by referrer path.
func gameAttributed(in TurnInput) bool {
	return in.Source == "guess-animal" || strings.Contains(in.Referrer, "/guess-animal")
}

// Route applies the fixed decision order:
// game start, game guess, redirect table, free conversation.
func (r *Router) Route(ctx context.Context, in TurnInput) Outcome {
	lower := strings.ToLower(in.Text)

	if strings.Contains(lower, "start") && gameAttributed(in) {
		round := r.sessions.StartRound(in.SessionID)
		r.logger.Info("game round started", "session", in.SessionID, "animal", round.Animal)
		return Outcome{
			Kind:     GameTurn,
			Text:     round.Prompt,
			SoundCue: round.SoundPath,
		}
	}

	if gameAttributed(in) {
		if res, ok := r.sessions.CheckGuess(in.SessionID, lower); ok {
			r.logger.Debug("game guess", "session", in.SessionID, "correct", res.Correct)
			return Outcome{Kind: GameTurn, Text: res.Text}
		}
		// No active round: fall through to the normal decision order.
	}

	for _, rule := range redirectTable {
		for _, phrase := range rule.phrases {
			if strings.Contains(lower, phrase) {
				return Outcome{Kind: RedirectTurn, Text: rule.text, Redirect: rule.path}
			}
		}
	}

	return Outcome{Kind: ConversationTurn, Text: r.converse(ctx, in)}
}

// converse produces free-conversation reply text. Empty input and every
// backend failure land on the offline generator.
func (r *Router) converse(ctx context.Context, in TurnInput) string {
	lang := completion.DetectLang(in.Lang, in.Text)

	if strings.TrimSpace(in.Text) == "" {
		return r.fallback(ctx, lang, in.Text)
	}
	if r.offlineMode.Load() || r.online == nil {
		return r.fallback(ctx, lang, in.Text)
	}

	reply, err := r.online.Complete(ctx, lang, in.Text)
	if err != nil {
		r.logger.Warn("online completion failed, using offline fallback", "error", err)
		return r.fallback(ctx, lang, in.Text)
	}
	return reply
}

func (r *Router) fallback(ctx context.Context, lang, text string) string {
	reply, err := r.offline.Complete(ctx, lang, text)
	if err != nil {
		r.logger.Error("offline generator failed", "error", err)
		return "I'm having trouble understanding. Can you try again?"
	}
	return reply
}
