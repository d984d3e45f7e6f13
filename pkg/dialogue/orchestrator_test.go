package dialogue_test

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nubotics/go-nubot/pkg/completion"
	"github.com/nubotics/go-nubot/pkg/dialogue"
	"github.com/nubotics/go-nubot/pkg/emotion"
	"github.com/nubotics/go-nubot/pkg/game"
	"github.com/nubotics/go-nubot/pkg/led"
	"github.com/nubotics/go-nubot/pkg/notify"
	"github.com/nubotics/go-nubot/pkg/tts"
)

// recorderActuator captures every color written to the LEDs.
type recorderActuator struct {
	mu     sync.Mutex
	writes []led.Color
}

func (r *recorderActuator) SetRGB(red, green, blue uint8) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes = append(r.writes, led.Color{R: red, G: green, B: blue})
	return nil
}

// noBlink keeps tests from sleeping through the escalation pattern.
type noBlink struct{}

func (noBlink) Blink(int, time.Duration) {}

type pipeline struct {
	orch    *dialogue.Orchestrator
	gateway *led.Gateway
	log     *notify.Log
	act     *recorderActuator
}

func newPipeline(t *testing.T, online completion.Service, speech tts.Synthesizer) *pipeline {
	t.Helper()
	sessions := game.NewSessions(rand.New(rand.NewSource(7)))
	offline := completion.NewOffline(rand.New(rand.NewSource(7)))
	router := dialogue.NewRouter(sessions, online, offline, false, nil)

	act := &recorderActuator{}
	gateway := led.NewGateway(act, false, nil)
	log := notify.NewLog(nil, noBlink{}, nil)

	return &pipeline{
		orch:    dialogue.NewOrchestrator(router, gateway, log, speech, nil),
		gateway: gateway,
		log:     log,
		act:     act,
	}
}

func TestRespondGameStart(t *testing.T) {
	speech := tts.NewMock()
	p := newPipeline(t, nil, speech)

	env := p.orch.Respond(context.Background(), dialogue.TurnInput{
		Text: "start", Source: "guess-animal", SessionID: "kid",
	})

	assert.Equal(t, "Listen carefully! What animal made that sound?", env.Text)
	assert.Regexp(t, `^/static/sounds/(dog|cat|cow|sheep)\.mp3$`, env.Audio)
	assert.Equal(t, "neutral", env.Emotion)
	assert.Empty(t, env.Redirect)
	assert.Zero(t, speech.CallCount(), "start turns play the cue, not synthesized speech")
	assert.Zero(t, p.log.Len())
}

func TestRespondCorrectGuess(t *testing.T) {
	p := newPipeline(t, nil, tts.NewMock())
	ctx := context.Background()

	start := p.orch.Respond(ctx, dialogue.TurnInput{
		Text: "start", Source: "guess-animal", SessionID: "kid",
	})
	animal := strings.TrimSuffix(strings.TrimPrefix(start.Audio, "/static/sounds/"), ".mp3")

	env := p.orch.Respond(ctx, dialogue.TurnInput{
		Text: "was it a " + animal + "?", Source: "guess-animal", SessionID: "kid",
	})

	assert.Contains(t, env.Text, animal)
	assert.Equal(t, "happy", env.Emotion, "the congratulation reads as happy")
	assert.Equal(t, "/static/response_mock.mp3", env.Audio)
	assert.Equal(t, led.ColorFor(emotion.Happy), p.gateway.Color())
	assert.Zero(t, p.log.Len(), "a correct guess never notifies")
}

func TestRespondAngryConversation(t *testing.T) {
	online := &completion.Mock{
		CompleteFunc: func(context.Context, string, string) (string, error) {
			return "I can see you're very angry. Take a deep breath with me.", nil
		},
	}
	p := newPipeline(t, online, tts.NewMock())

	env := p.orch.Respond(context.Background(), dialogue.TurnInput{
		Text: "I am so angry", Lang: "en", SessionID: "kid",
	})

	assert.Equal(t, "angry", env.Emotion)
	assert.Equal(t, led.Color{R: 255}, p.gateway.Color())

	require.Equal(t, 1, p.log.Len())
	rec := p.log.Recent(1)[0]
	assert.Equal(t, "angry", rec.Emotion)
	assert.Equal(t, notify.High, rec.Severity)
	assert.Contains(t, rec.Message, "I am so angry")
	assert.WithinDuration(t, time.Now(), rec.Timestamp, 5*time.Second)
}

func TestRespondHappyConversationSkipsNotify(t *testing.T) {
	online := &completion.Mock{
		CompleteFunc: func(context.Context, string, string) (string, error) {
			return "Yay! That is awesome, I'm so happy for you!", nil
		},
	}
	p := newPipeline(t, online, tts.NewMock())

	env := p.orch.Respond(context.Background(), dialogue.TurnInput{
		Text: "I got a gold star today", Lang: "en", SessionID: "kid",
	})

	assert.Equal(t, "happy", env.Emotion)
	assert.Equal(t, led.ColorFor(emotion.Happy), p.gateway.Color())
	assert.Zero(t, p.log.Len(), "happy turns carry no notification")
}

func TestRespondRedirectTurn(t *testing.T) {
	speech := tts.NewMock()
	p := newPipeline(t, nil, speech)

	env := p.orch.Respond(context.Background(), dialogue.TurnInput{
		Text: "let's play a fun game", SessionID: "kid",
	})

	assert.Equal(t, "/games", env.Redirect)
	assert.NotEmpty(t, env.Emotion)
	assert.Equal(t, 1, speech.CallCount(), "redirect replies are spoken")
}

func TestRespondSpeechFailureDegrades(t *testing.T) {
	p := newPipeline(t, nil, tts.MockWithError(errors.New("no provider")))

	env := p.orch.Respond(context.Background(), dialogue.TurnInput{
		Text: "hello", Lang: "en", SessionID: "kid",
	})

	assert.NotEmpty(t, env.Text)
	assert.Empty(t, env.Audio)
}

func TestRespondNoSynthesizer(t *testing.T) {
	p := newPipeline(t, nil, nil)

	env := p.orch.Respond(context.Background(), dialogue.TurnInput{
		Text: "hello", Lang: "en", SessionID: "kid",
	})

	assert.NotEmpty(t, env.Text)
	assert.Empty(t, env.Audio)
}

func TestNotificationMessageTruncation(t *testing.T) {
	online := &completion.Mock{
		CompleteFunc: func(context.Context, string, string) (string, error) {
			return "That sounds really sad, I'm here for you.", nil
		},
	}
	p := newPipeline(t, online, nil)

	long := strings.Repeat("x", 80)
	p.orch.Respond(context.Background(), dialogue.TurnInput{
		Text: long, Lang: "en", SessionID: "kid",
	})

	require.Equal(t, 1, p.log.Len())
	rec := p.log.Recent(1)[0]
	assert.Equal(t, notify.Medium, rec.Severity)
	assert.Contains(t, rec.Message, strings.Repeat("x", 50)+"...")
	assert.NotContains(t, rec.Message, strings.Repeat("x", 51))
}
