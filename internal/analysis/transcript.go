// Package analysis turns a session transcript into the emotion and cognitive
// scores used by the reports. It performs no I/O.
package analysis

import (
	"strings"
	"unicode"

	"github.com/zhouzirui/medjourney/backend/internal/analysis/cognitive"
	"github.com/zhouzirui/medjourney/backend/internal/analysis/emotion"
	"github.com/zhouzirui/medjourney/backend/internal/model/chat"
)

// Result is the outcome of analysing one transcript.
type Result struct {
	TotalMessages     int
	UserMessages      int
	AssistantMessages int
	DominantEmotion   emotion.Label
	Emotions          emotion.Distribution
	Cognitive         cognitive.Indicators
}

// Analyze scores messages, which are expected in timestamp order. Only
// user-authored text feeds the emotion and language scores.
func Analyze(messages []*chat.Message) Result {
	var (
		userTexts []string
		assistant int
	)
	for _, m := range messages {
		switch m.Role {
		case chat.RoleUser:
			userTexts = append(userTexts, m.Content)
		case chat.RoleAssistant:
			assistant++
		}
	}

	corpus := strings.Join(userTexts, " ")
	emotions := emotion.Score(corpus)

	indicators := cognitive.Assess(cognitive.Inputs{
		PositiveScore: emotions.Positive,
		NegativeScore: emotions.Negative,
		UserMessages:  len(userTexts),
		TotalMessages: len(messages),
		LetterCount:   countLetters(corpus),
	})

	return Result{
		TotalMessages:     len(messages),
		UserMessages:      len(userTexts),
		AssistantMessages: assistant,
		DominantEmotion:   emotions.Dominant(),
		Emotions:          emotions,
		Cognitive:         indicators,
	}
}

func countLetters(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}
