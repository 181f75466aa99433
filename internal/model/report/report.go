package report

import (
	"encoding/json"
	"time"
)

// Kind 报告类型。
type Kind string

const (
	KindDoctor Kind = "doctor"
	KindFamily Kind = "family"
)

// Valid reports whether k is a supported report kind.
func (k Kind) Valid() bool {
	return k == KindDoctor || k == KindFamily
}

// Report is an immutable snapshot of a generated document. Content holds the
// serialized document exactly as it was returned to the caller.
type Report struct {
	ID          int64           `json:"id"`
	SessionID   string          `json:"session_id"`
	Kind        Kind            `json:"report_type"`
	Content     json.RawMessage `json:"content"`
	GeneratedAt time.Time       `json:"generated_at"`
	Metadata    map[string]any  `json:"metadata,omitempty"`
}
