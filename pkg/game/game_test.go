package game_test

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/nubotics/go-nubot/pkg/game"
)

func newDeterministic() *game.Sessions {
	return game.NewSessions(rand.New(rand.NewSource(1)))
}

func TestStartRound(t *testing.T) {
	s := newDeterministic()
	round := s.StartRound("child-1")

	valid := false
	for _, a := range game.Animals {
		if round.Animal == a {
			valid = true
		}
	}
	if !valid {
		t.Fatalf("secret %q not in the animal pool", round.Animal)
	}
	if round.Prompt == "" {
		t.Error("expected a prompt")
	}
	want := "/static/sounds/" + string(round.Animal) + ".mp3"
	if round.SoundPath != want {
		t.Errorf("sound path = %q, want %q", round.SoundPath, want)
	}
	if !s.Active("child-1") {
		t.Error("expected an active round after start")
	}
}

func TestCheckGuess(t *testing.T) {
	s := newDeterministic()
	round := s.StartRound("child-1")
	secret := string(round.Animal)

	t.Run("exact name matches", func(t *testing.T) {
		res, ok := s.CheckGuess("child-1", secret)
		if !ok {
			t.Fatal("expected an active round")
		}
		if !res.Correct {
			t.Errorf("guessing %q should be correct", secret)
		}
		if !strings.Contains(res.Text, secret) {
			t.Errorf("congratulation %q should name the animal", res.Text)
		}
	})

	t.Run("case varied name matches", func(t *testing.T) {
		res, _ := s.CheckGuess("child-1", "It Was A "+strings.ToUpper(secret)+"!")
		if !res.Correct {
			t.Error("case-varied guess should be correct")
		}
	})

	t.Run("name embedded in sentence matches", func(t *testing.T) {
		res, _ := s.CheckGuess("child-1", "i think it was a "+secret+" maybe")
		if !res.Correct {
			t.Error("substring guess should be correct")
		}
	})

	t.Run("unrelated text is a retry", func(t *testing.T) {
		res, ok := s.CheckGuess("child-1", "an elephant")
		if !ok {
			t.Fatal("expected an active round")
		}
		if res.Correct {
			t.Error("elephant should never be correct")
		}
	})

	t.Run("correct guess does not end the round", func(t *testing.T) {
		s.CheckGuess("child-1", secret)
		if !s.Active("child-1") {
			t.Error("round should persist until the next start")
		}
	})
}

func TestCheckGuessWithoutRound(t *testing.T) {
	s := newDeterministic()
	if _, ok := s.CheckGuess("nobody", "dog"); ok {
		t.Error("expected no active round for an unknown identity")
	}
}

func TestSecondStartDiscardsFirstSecret(t *testing.T) {
	// Walk the rng until consecutive starts pick different animals, then
	// verify the first secret no longer wins.
	for seed := int64(0); seed < 64; seed++ {
		s := game.NewSessions(rand.New(rand.NewSource(seed)))
		first := s.StartRound("child-1")
		second := s.StartRound("child-1")
		if first.Animal == second.Animal {
			continue
		}

		res, ok := s.CheckGuess("child-1", string(first.Animal))
		if !ok {
			t.Fatal("expected an active round")
		}
		if res.Correct {
			t.Errorf("first secret %q must be wrong after restart with %q",
				first.Animal, second.Animal)
		}
		return
	}
	t.Fatal("no seed produced two distinct secrets")
}

func TestIdentitiesAreIndependent(t *testing.T) {
	s := newDeterministic()
	s.StartRound("child-1")

	if s.Active("child-2") {
		t.Error("second identity should have no round")
	}
	if _, ok := s.CheckGuess("child-2", "dog"); ok {
		t.Error("second identity's guess should fall through")
	}
}

func TestRoundTTL(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	s := game.NewSessions(
		rand.New(rand.NewSource(1)),
		game.WithTTL(time.Minute),
		game.WithClock(clock),
	)

	round := s.StartRound("child-1")

	if _, ok := s.CheckGuess("child-1", string(round.Animal)); !ok {
		t.Fatal("round should be alive within the TTL")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := s.CheckGuess("child-1", string(round.Animal)); ok {
		t.Error("round should expire past the TTL")
	}
}

func TestConcurrentSameIdentity(t *testing.T) {
	s := newDeterministic()
	s.StartRound("child-1")

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				s.StartRound("child-1")
				s.CheckGuess("child-1", "dog")
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	if !s.Active("child-1") {
		t.Error("round should survive a retry storm")
	}
}
