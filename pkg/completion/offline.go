package completion

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// bucket names a keyword category of the offline generator.
type bucket string

const (
	bucketGreeting bucket = "greeting"
	bucketPlay     bucket = "play"
	bucketSad      bucket = "sad"
	bucketAngry    bucket = "angry"
	bucketHappy    bucket = "happy"
	bucketStory    bucket = "story"
	bucketMath     bucket = "math"
	bucketDefault  bucket = "default"
)

// bucketOrder is the scan priority; the first bucket whose keywords match wins.
var bucketOrder = []struct {
	name     bucket
	keywords []string
}{
	{bucketGreeting, []string{"hello", "hi", "hey", "مرحبا", "أهلا"}},
	{bucketPlay, []string{"play", "game", "لعب", "لعبة"}},
	{bucketSad, []string{"sad", "cry", "حزين", "بكاء"}},
	{bucketAngry, []string{"angry", "mad", "غاضب", "منزعج"}},
	{bucketHappy, []string{"happy", "joy", "سعيد", "فرح"}},
	{bucketStory, []string{"story", "tale", "قصة", "حكاية"}},
	{bucketMath, []string{"math", "number", "رياضيات", "رقم"}},
}

// phrases holds the fixed reply sets per language and bucket.
var phrases = map[string]map[bucket][]string{
	"en": {
		bucketGreeting: {"Hello! I'm Nubot!", "Hi there!", "Hey little friend!"},
		bucketPlay:     {"Let's play a game!", "Games are so much fun!", "What game would you like to play?"},
		bucketSad:      {"I'm here to help you feel better.", "Would you like to talk about it?", "I care about you."},
		bucketAngry:    {"I understand you're upset.", "Let's take a deep breath together.", "I'm here to listen."},
		bucketHappy:    {"I'm so glad you're happy!", "Your joy makes me happy too!", "That's wonderful!"},
		bucketStory:    {"Once upon a time...", "Let me tell you a story!", "Here's a magical tale..."},
		bucketMath:     {"Let's do some math together!", "Numbers are fun!", "Ready for some calculations?"},
		bucketDefault:  {"I'm listening!", "Tell me more!", "That's interesting!"},
	},
	"ar": {
		bucketGreeting: {"مرحباً! أنا نوبوت!", "أهلاً وسهلاً!", "مرحباً يا صديقي الصغير!"},
		bucketPlay:     {"هيا نلعب لعبة!", "الألعاب ممتعة جداً!", "أي لعبة تريد أن تلعبها؟"},
		bucketSad:      {"أنا هنا لأساعدك تشعر بتحسن.", "هل تريد أن نتحدث عن ذلك؟", "أنا أهتم بك."},
		bucketAngry:    {"أفهم أنك منزعج.", "دعنا نأخذ نفساً عميقاً معاً.", "أنا هنا لأستمع إليك."},
		bucketHappy:    {"أنا سعيد جداً لأنك سعيد!", "فرحك يجعلني سعيداً أيضاً!", "هذا رائع!"},
		bucketStory:    {"كان يا ما كان...", "دعني أحكي لك قصة!", "إليك حكاية سحرية..."},
		bucketMath:     {"دعنا نحل مسائل رياضية معاً!", "الأرقام ممتعة!", "مستعد لبعض الحسابات؟"},
		bucketDefault:  {"أنا أستمع!", "أخبرني المزيد!", "هذا مثير للاهتمام!"},
	},
}

// Offline implements Service with the deterministic keyword-bucketed
// generator. It never fails: it is the last resort of every turn.
type Offline struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewOffline creates the offline generator. A nil rng falls back to a
// time-seeded source; tests inject a fixed seed instead.
func NewOffline(rng *rand.Rand) *Offline {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Offline{rng: rng}
}

// Complete picks a phrase from the matched bucket, uniformly at random.
func (o *Offline) Complete(_ context.Context, lang, text string) (string, error) {
	lang = DetectLang(lang, text)
	set, ok := phrases[lang]
	if !ok {
		set = phrases["en"]
	}

	options := set[bucketFor(text)]

	o.mu.Lock()
	reply := options[o.rng.Intn(len(options))]
	o.mu.Unlock()
	return reply, nil
}

// bucketFor returns the category the utterance falls into.
func bucketFor(text string) bucket {
	lower := strings.ToLower(text)
	for _, b := range bucketOrder {
		for _, kw := range b.keywords {
			if strings.Contains(lower, kw) {
				return b.name
			}
		}
	}
	return bucketDefault
}

// Verify Offline implements Service at compile time.
var _ Service = (*Offline)(nil)
