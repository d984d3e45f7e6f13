// Package dialogue contains the per-turn decision core: the intent
// router that picks what a turn means, and the orchestrator that runs a
// turn end to end and assembles the response envelope.
package dialogue

// TurnInput is one inbound turn, independent of transport.
type TurnInput struct {
	// Text is the child's transcribed utterance.
	Text string `json:"text"`

	// Lang is "auto", "en" or "ar".
	Lang string `json:"lang"`

	// Source is an explicit page tag, e.g. "guess-animal".
	Source string `json:"source"`

	// Referrer is the referring page path, used as a fallback source tag.
	Referrer string `json:"-"`

	// SessionID identifies the caller; derived from network origin,
	// not authenticated.
	SessionID string `json:"-"`
}

// Timing carries diagnostic wall-clock measurements of a turn.
type Timing struct {
	TotalMs int64 `json:"total_ms"`
	TTSMs   int64 `json:"tts_ms"`
}

// Envelope is the assembled per-turn output. It is constructed once per
// turn and never mutated after return.
type Envelope struct {
	Text     string `json:"text"`
	Audio    string `json:"audio,omitempty"`
	Redirect string `json:"redirect,omitempty"`
	Emotion  string `json:"emotion"`
	Timing   Timing `json:"timing"`
}

// Kind discriminates turn outcomes.
type Kind int

const (
	// ConversationTurn is a free-conversation reply.
	ConversationTurn Kind = iota

	// GameTurn is a mini-game start or guess reply.
	GameTurn

	// RedirectTurn sends the caller to another page with a canned reply.
	RedirectTurn
)

// String returns the kind name for logs.
func (k Kind) String() string {
	switch k {
	case GameTurn:
		return "game"
	case RedirectTurn:
		return "redirect"
	default:
		return "conversation"
	}
}

// Outcome is the router's decision for one turn.
type Outcome struct {
	Kind Kind
	Text string

	// SoundCue is the pre-recorded audio path for game-start turns.
	// When set, the orchestrator plays it instead of synthesizing speech.
	SoundCue string

	// Redirect is the target path for RedirectTurn outcomes.
	Redirect string
}
