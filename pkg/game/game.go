// Package game implements the per-identity mini-game state machine.
//
// The only game type today is Guess the Animal: a start turn picks a
// secret animal and plays its sound cue, every following turn is a guess
// against that secret. A round has no terminal state — it lives until the
// same identity says start again and overwrites it.
package game

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Animal is one of the fixed animal kinds with a pre-recorded sound cue.
type Animal string

// Animals is the fixed pool a round's secret is drawn from.
var Animals = []Animal{"dog", "cat", "cow", "sheep"}

// SoundPath returns the static path of the animal's pre-recorded cue.
func (a Animal) SoundPath() string {
	return fmt.Sprintf("/static/sounds/%s.mp3", a)
}

// Round is the outcome of a start turn.
type Round struct {
	Animal    Animal
	Prompt    string
	SoundPath string
}

// Result is the outcome of a guess turn.
type Result struct {
	Text    string
	Correct bool
}

// Sessions holds one game state per session identity.
// The random source is injected so tests can fix the secret sequence;
// access to it shares the state mutex since rand.Rand is not safe for
// concurrent use.
type Sessions struct {
	mu     sync.Mutex
	rounds map[string]roundState
	rng    *rand.Rand
	ttl    time.Duration
	now    func() time.Time
}

type roundState struct {
	secret  Animal
	started time.Time
}

// Option configures a Sessions store.
type Option func(*Sessions)

// WithTTL makes rounds expire after d of inactivity. Zero keeps rounds
// forever, which matches the original behavior.
func WithTTL(d time.Duration) Option {
	return func(s *Sessions) { s.ttl = d }
}

// WithClock overrides the time source, for TTL tests.
func WithClock(now func() time.Time) Option {
	return func(s *Sessions) { s.now = now }
}

// NewSessions creates a session store drawing secrets from rng.
// A nil rng falls back to a time-seeded source.
func NewSessions(rng *rand.Rand, opts ...Option) *Sessions {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &Sessions{
		rounds: make(map[string]roundState),
		rng:    rng,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartRound begins a new round for the identity, overwriting any round
// already in progress. The previous secret is discarded.
func (s *Sessions) StartRound(id string) Round {
	s.mu.Lock()
	secret := Animals[s.rng.Intn(len(Animals))]
	s.rounds[id] = roundState{secret: secret, started: s.now()}
	s.mu.Unlock()

	return Round{
		Animal:    secret,
		Prompt:    "Listen carefully! What animal made that sound?",
		SoundPath: secret.SoundPath(),
	}
}

// CheckGuess evaluates a guess for the identity's active round.
// The second return is false when the identity has no active round.
//
// Matching is a case-insensitive substring test, so "it was a dog"
// matches a dog secret — and so does "dogmatic". The false positive is
// an accepted simplification, identical across languages.
func (s *Sessions) CheckGuess(id, text string) (Result, bool) {
	s.mu.Lock()
	state, ok := s.rounds[id]
	if ok && s.ttl > 0 && s.now().Sub(state.started) > s.ttl {
		delete(s.rounds, id)
		ok = false
	}
	s.mu.Unlock()
	if !ok {
		return Result{}, false
	}

	if strings.Contains(strings.ToLower(text), string(state.secret)) {
		return Result{
			Text:    fmt.Sprintf("Yay! You're right, it was a %s! Want to play again? Say start.", state.secret),
			Correct: true,
		}, true
	}
	return Result{Text: "Hmm, that's not it. Try again!"}, true
}

// Secret returns the identity's current secret, if a round is active.
func (s *Sessions) Secret(id string) (Animal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.rounds[id]
	return state.secret, ok
}

// Active reports whether the identity has a round in progress.
func (s *Sessions) Active(id string) bool {
	_, ok := s.Secret(id)
	return ok
}
