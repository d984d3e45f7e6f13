package dialogue_test

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nubotics/go-nubot/pkg/completion"
	"github.com/nubotics/go-nubot/pkg/dialogue"
	"github.com/nubotics/go-nubot/pkg/game"
)

func newRouter(online completion.Service) (*dialogue.Router, *game.Sessions) {
	sessions := game.NewSessions(rand.New(rand.NewSource(1)))
	offline := completion.NewOffline(rand.New(rand.NewSource(1)))
	return dialogue.NewRouter(sessions, online, offline, false, nil), sessions
}

func TestRouteGameStart(t *testing.T) {
	router, sessions := newRouter(nil)

	tests := []struct {
		name string
		in   dialogue.TurnInput
	}{
		{"source tag", dialogue.TurnInput{Text: "start", Source: "guess-animal", SessionID: "a"}},
		{"referrer path", dialogue.TurnInput{Text: "let's start!", Referrer: "/games/guess-animal", SessionID: "b"}},
		{"start embedded", dialogue.TurnInput{Text: "ok START now", Source: "guess-animal", SessionID: "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := router.Route(context.Background(), tt.in)
			require.Equal(t, dialogue.GameTurn, out.Kind)
			assert.Equal(t, "Listen carefully! What animal made that sound?", out.Text)
			assert.Regexp(t, `^/static/sounds/(dog|cat|cow|sheep)\.mp3$`, out.SoundCue)
			assert.True(t, sessions.Active(tt.in.SessionID))
		})
	}
}

func TestRouteGameGuess(t *testing.T) {
	router, sessions := newRouter(nil)
	ctx := context.Background()

	router.Route(ctx, dialogue.TurnInput{Text: "start", Source: "guess-animal", SessionID: "kid"})
	secret, ok := sessions.Secret("kid")
	require.True(t, ok)

	t.Run("correct guess", func(t *testing.T) {
		out := router.Route(ctx, dialogue.TurnInput{
			Text: "it was a " + string(secret), Source: "guess-animal", SessionID: "kid",
		})
		require.Equal(t, dialogue.GameTurn, out.Kind)
		assert.Contains(t, out.Text, string(secret))
		assert.Contains(t, out.Text, "Yay")
		assert.Empty(t, out.SoundCue)
	})

	t.Run("wrong guess", func(t *testing.T) {
		out := router.Route(ctx, dialogue.TurnInput{
			Text: "a dinosaur", Source: "guess-animal", SessionID: "kid",
		})
		require.Equal(t, dialogue.GameTurn, out.Kind)
		assert.Equal(t, "Hmm, that's not it. Try again!", out.Text)
	})

	t.Run("no round falls through", func(t *testing.T) {
		out := router.Route(ctx, dialogue.TurnInput{
			Text: "a dog", Source: "guess-animal", SessionID: "stranger",
		})
		assert.Equal(t, dialogue.ConversationTurn, out.Kind)
	})
}

func TestRouteRedirectTable(t *testing.T) {
	router, _ := newRouter(nil)
	ctx := context.Background()

	tests := []struct {
		text string
		path string
	}{
		{"I want to play guess the animal", "/games/guess-animal"},
		{"animal sound please", "/games/guess-animal"},
		{"tic tac toe", "/games/tic-tac-toe"},
		{"can we play tic-tac-toe", "/games/tic-tac-toe"},
		{"magic math", "/games/magic-math"},
		{"a math game", "/games/magic-math"},
		{"story spinner please", "/games/story-spinner"},
		{"animal facts", "/games/animal-facts-quiz"},
		{"memory echo", "/games/memory-echo"},
		{"guess the number", "/games/guess-the-number"},
		{"let's have fun", "/games"},
		{"something with a game in it", "/games"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			out := router.Route(ctx, dialogue.TurnInput{Text: tt.text, SessionID: "x"})
			require.Equal(t, dialogue.RedirectTurn, out.Kind)
			assert.Equal(t, tt.path, out.Redirect)
			assert.NotEmpty(t, out.Text)
		})
	}
}

func TestRoutePrecedenceIsFrozen(t *testing.T) {
	router, _ := newRouter(nil)
	ctx := context.Background()

	t.Run("overlapping game names pick the first rule", func(t *testing.T) {
		out := router.Route(ctx, dialogue.TurnInput{
			Text: "let's play tic tac toe and guess the animal", SessionID: "x",
		})
		require.Equal(t, dialogue.RedirectTurn, out.Kind)
		// guess-animal phrases are scanned before tic-tac-toe
		assert.Equal(t, "/games/guess-animal", out.Redirect)
	})

	t.Run("specific name beats the play catch-all", func(t *testing.T) {
		out := router.Route(ctx, dialogue.TurnInput{Text: "play tic tac toe", SessionID: "x"})
		assert.Equal(t, "/games/tic-tac-toe", out.Redirect)
	})

	t.Run("stop playing beats the play catch-all", func(t *testing.T) {
		out := router.Route(ctx, dialogue.TurnInput{Text: "I don't want to play", SessionID: "x"})
		require.Equal(t, dialogue.RedirectTurn, out.Kind)
		assert.Equal(t, "/", out.Redirect)
		assert.Equal(t, "Okay, back to chatting! Tell me anything.", out.Text)
	})

	t.Run("game start beats the redirect table", func(t *testing.T) {
		out := router.Route(ctx, dialogue.TurnInput{
			Text: "start the animal game", Source: "guess-animal", SessionID: "x",
		})
		assert.Equal(t, dialogue.GameTurn, out.Kind)
	})
}

func TestRouteConversationOnline(t *testing.T) {
	mock := &completion.Mock{
		CompleteFunc: func(_ context.Context, lang, text string) (string, error) {
			return "Wohoo! Hello friend!", nil
		},
	}
	router, _ := newRouter(mock)

	out := router.Route(context.Background(), dialogue.TurnInput{Text: "how are you?", Lang: "en", SessionID: "x"})
	require.Equal(t, dialogue.ConversationTurn, out.Kind)
	assert.Equal(t, "Wohoo! Hello friend!", out.Text)
	require.Len(t, mock.Calls(), 1)
	assert.Equal(t, "en", mock.Calls()[0].Lang)
}

func TestRouteFallsBackWhenOnlineFails(t *testing.T) {
	mock := &completion.Mock{
		CompleteFunc: func(context.Context, string, string) (string, error) {
			return "", errors.New("backend down")
		},
	}
	router, _ := newRouter(mock)

	out := router.Route(context.Background(), dialogue.TurnInput{Text: "hello there", Lang: "en", SessionID: "x"})
	require.Equal(t, dialogue.ConversationTurn, out.Kind)
	// hello lands in the offline greeting bucket
	assert.Contains(t, []string{"Hello! I'm Nubot!", "Hi there!", "Hey little friend!"}, out.Text)
}

func TestRouteOfflineMode(t *testing.T) {
	mock := &completion.Mock{
		CompleteFunc: func(context.Context, string, string) (string, error) {
			t.Fatal("online backend must not be called in offline mode")
			return "", nil
		},
	}
	router, _ := newRouter(mock)
	router.SetOfflineMode(true)

	out := router.Route(context.Background(), dialogue.TurnInput{Text: "hello", Lang: "en", SessionID: "x"})
	assert.Equal(t, dialogue.ConversationTurn, out.Kind)
	assert.NotEmpty(t, out.Text)
	assert.True(t, router.OfflineMode())
}

func TestOfflineModeToggleDuringTurns(t *testing.T) {
	mock := &completion.Mock{
		CompleteFunc: func(context.Context, string, string) (string, error) {
			return "Hello friend!", nil
		},
	}
	router, _ := newRouter(mock)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				out := router.Route(ctx, dialogue.TurnInput{
					Text: "how are you?", Lang: "en", SessionID: "kid",
				})
				assert.Equal(t, dialogue.ConversationTurn, out.Kind)
				assert.NotEmpty(t, out.Text)
			}
		}(i)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 400; j++ {
			router.SetOfflineMode(j%2 == 0)
		}
	}()
	wg.Wait()
}

func TestRouteEmptyUtterance(t *testing.T) {
	mock := &completion.Mock{
		CompleteFunc: func(context.Context, string, string) (string, error) {
			t.Fatal("empty input must not reach the online backend")
			return "", nil
		},
	}
	router, _ := newRouter(mock)

	out := router.Route(context.Background(), dialogue.TurnInput{Text: "   ", Lang: "en", SessionID: "x"})
	require.Equal(t, dialogue.ConversationTurn, out.Kind)
	// offline default bucket
	assert.Contains(t, []string{"I'm listening!", "Tell me more!", "That's interesting!"}, out.Text)
}

func TestSecondStartDiscardsFirstSecretThroughRouter(t *testing.T) {
	for seed := int64(0); seed < 64; seed++ {
		sessions := game.NewSessions(rand.New(rand.NewSource(seed)))
		offline := completion.NewOffline(rand.New(rand.NewSource(1)))
		router := dialogue.NewRouter(sessions, nil, offline, false, nil)
		ctx := context.Background()

		router.Route(ctx, dialogue.TurnInput{Text: "start", Source: "guess-animal", SessionID: "kid"})
		first, _ := sessions.Secret("kid")
		router.Route(ctx, dialogue.TurnInput{Text: "start", Source: "guess-animal", SessionID: "kid"})
		second, _ := sessions.Secret("kid")
		if first == second {
			continue
		}

		out := router.Route(ctx, dialogue.TurnInput{
			Text: "it was a " + string(first), Source: "guess-animal", SessionID: "kid",
		})
		require.Equal(t, dialogue.GameTurn, out.Kind)
		assert.Equal(t, "Hmm, that's not it. Try again!", out.Text,
			"first secret must be wrong after a second start")
		return
	}
	t.Fatal("no seed produced two distinct secrets")
}
