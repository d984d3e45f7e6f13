package emotion_test

import (
	"testing"

	"github.com/nubotics/go-nubot/pkg/emotion"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want emotion.Label
	}{
		{"happy english", "I'm so excited that you're happy!", emotion.Happy},
		{"happy from yay", "Yay! You're right, it was a dog!", emotion.Happy},
		{"sad english", "I can hear that you're feeling sad.", emotion.Sad},
		{"sad from sorry", "I'm sorry to hear that.", emotion.Sad},
		{"surprise", "Wow, that is amazing!", emotion.Surprise},
		{"angry english", "I am so angry", emotion.Angry},
		{"angry arabic", "أنا غاضب جدا", emotion.Angry},
		{"playing", "Do you want to play a game with me?", emotion.Playing},
		{"happy arabic", "هذا رائع", emotion.Happy},
		{"sad arabic", "أشعر أنك حزين", emotion.Sad},
		{"neutral", "The weather is fine today.", emotion.Neutral},
		{"empty", "", emotion.Neutral},
		{"case insensitive", "WOHOO! That was GREAT!", emotion.Happy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := emotion.Classify(tt.text); got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassifyPriority(t *testing.T) {
	t.Run("happy beats sad", func(t *testing.T) {
		got := emotion.Classify("I was sad but now I'm happy")
		if got != emotion.Happy {
			t.Errorf("expected happy to win over sad, got %s", got)
		}
	})

	t.Run("sad beats playing", func(t *testing.T) {
		got := emotion.Classify("I'm sad we can't play")
		if got != emotion.Sad {
			t.Errorf("expected sad to win over playing, got %s", got)
		}
	})

	t.Run("surprise beats angry", func(t *testing.T) {
		got := emotion.Classify("wow, you seem upset")
		if got != emotion.Surprise {
			t.Errorf("expected surprise to win over angry, got %s", got)
		}
	})
}

func TestLabelValid(t *testing.T) {
	for _, l := range []emotion.Label{
		emotion.Happy, emotion.Sad, emotion.Angry,
		emotion.Surprise, emotion.Playing, emotion.Neutral,
	} {
		if !l.Valid() {
			t.Errorf("expected %s to be valid", l)
		}
	}
	if emotion.Label("bored").Valid() {
		t.Error("expected unknown label to be invalid")
	}
}
