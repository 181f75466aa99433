package chat

import "time"

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the two accepted roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Message is one immutable turn of a session. EmotionAnalysis is opaque data
// attached by the caller and never interpreted by the service.
type Message struct {
	ID              int64          `json:"id"`
	SessionID       string         `json:"session_id"`
	Role            Role           `json:"role"`
	Content         string         `json:"content"`
	Timestamp       time.Time      `json:"timestamp"`
	EmotionAnalysis map[string]any `json:"emotion_analysis,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
}
