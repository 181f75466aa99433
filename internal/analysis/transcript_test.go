package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/medjourney/backend/internal/analysis/emotion"
	"github.com/zhouzirui/medjourney/backend/internal/model/chat"
)

func msg(role chat.Role, content string) *chat.Message {
	return &chat.Message{SessionID: "s1", Role: role, Content: content}
}

func TestAnalyzeHappyExchange(t *testing.T) {
	got := Analyze([]*chat.Message{
		msg(chat.RoleUser, "我今天很开心"),
		msg(chat.RoleAssistant, "太好了"),
	})

	assert.Equal(t, 2, got.TotalMessages)
	assert.Equal(t, 1, got.UserMessages)
	assert.Equal(t, 1, got.AssistantMessages)
	assert.Equal(t, emotion.Positive, got.DominantEmotion)
	// assistant text "太好了" must not be scored
	assert.Equal(t, emotion.Distribution{Positive: 1}, got.Emotions)
	assert.Equal(t, 87.0, got.Cognitive.Memory)
	assert.Equal(t, 80.5, got.Cognitive.Attention)
	assert.InDelta(t, 90.06, got.Cognitive.Language, 1e-9)
	assert.InDelta(t, 85.6, got.Cognitive.CommunicationQuality, 1e-9)
}

func TestAnalyzeEmptyTranscript(t *testing.T) {
	got := Analyze(nil)

	assert.Zero(t, got.TotalMessages)
	assert.Equal(t, emotion.Positive, got.DominantEmotion)
	assert.Equal(t, 85.0, got.Cognitive.Memory)
	assert.Equal(t, 80.0, got.Cognitive.Attention)
	assert.Equal(t, 90.0, got.Cognitive.Language)
	assert.Equal(t, 85.0, got.Cognitive.CommunicationQuality)
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	messages := []*chat.Message{
		msg(chat.RoleUser, "最近头疼，有点担心"),
		msg(chat.RoleAssistant, "能具体说说吗？"),
		msg(chat.RoleUser, "睡得不好，但是心情还行"),
		msg(chat.RoleAssistant, "明白了"),
	}

	first := Analyze(messages)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, Analyze(messages))
	}
	assert.Equal(t, emotion.Negative, first.DominantEmotion)
	assert.Equal(t, emotion.Distribution{Positive: 1, Negative: 3, Neutral: 1}, first.Emotions)
}

func TestAnalyzeClampsMemoryAtZero(t *testing.T) {
	sad := strings.Repeat("难过", 50)
	got := Analyze([]*chat.Message{msg(chat.RoleUser, sad)})

	assert.Equal(t, emotion.Negative, got.DominantEmotion)
	assert.Equal(t, 0.0, got.Cognitive.Memory)
	assert.InDelta(t, 91.0, got.Cognitive.Language, 1e-9)
}

func TestAnalyzeClampsAtHundred(t *testing.T) {
	var messages []*chat.Message
	for i := 0; i < 60; i++ {
		messages = append(messages, msg(chat.RoleUser, "开心"))
	}
	got := Analyze(messages)

	assert.Equal(t, 100.0, got.Cognitive.Memory)
	assert.Equal(t, 100.0, got.Cognitive.Attention)
	assert.Equal(t, 100.0, got.Cognitive.CommunicationQuality)
}

func TestCountLettersSkipsDigitsAndPunctuation(t *testing.T) {
	assert.Equal(t, 5, countLetters("疼痛 3 天, ok!"))
}
