package chat

import "time"

const (
	DefaultSessionType = "medical_assessment"
	DefaultStatus      = "active"
)

// Session groups the turns exchanged between one user and the assistant.
type Session struct {
	ID          string         `json:"session_id"`
	UserID      string         `json:"user_id"`
	SessionType string         `json:"session_type"`
	Status      string         `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}
