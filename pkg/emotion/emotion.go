// Package emotion infers an emotional label from generated reply text.
//
// Classification is deliberately simple: an ordered keyword table covering
// English and Arabic fragments, scanned against the lower-cased text. The
// first category with any match wins, so the declaration order below is a
// fixed priority, not an implementation detail. Texts matching nothing are
// neutral.
package emotion

import "strings"

// Label is the closed set of emotions the robot can express.
type Label string

const (
	Happy    Label = "happy"
	Sad      Label = "sad"
	Angry    Label = "angry"
	Surprise Label = "surprise"
	Playing  Label = "playing"
	Neutral  Label = "neutral"
)

// Valid reports whether l is a member of the closed label set.
func (l Label) Valid() bool {
	switch l {
	case Happy, Sad, Angry, Surprise, Playing, Neutral:
		return true
	}
	return false
}

// category pairs a label with its keyword fragments.
type category struct {
	label    Label
	keywords []string
}

// categories is scanned in order; earlier categories win ties.
// A congratulation like "Yay! You're right" must read happy even when
// it also mentions playing again, so happy is declared first.
var categories = []category{
	{Happy, []string{"happy", "great", "excited", "awesome", "love", "yay", "wohoo", "correct", "right", "سعيد", "ممتاز", "رائع"}},
	{Sad, []string{"sad", "worried", "bad", "sorry", "حزين", "قلق", "أسف"}},
	{Surprise, []string{"wow", "amazing", "interesting", "مفاجئ", "مدهش"}},
	{Angry, []string{"angry", "mad", "upset", "غاضب", "منزعج"}},
	{Playing, []string{"play", "game", "wait", "لعب", "لعبة"}},
}

// Classify returns the emotion label for the given text.
// It is pure and deterministic; empty or unmatched text is Neutral.
func Classify(text string) Label {
	lower := strings.ToLower(text)
	for _, cat := range categories {
		for _, kw := range cat.keywords {
			if strings.Contains(lower, kw) {
				return cat.label
			}
		}
	}
	return Neutral
}
