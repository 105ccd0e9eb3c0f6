package models

import "time"

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"

	ChatTypeSymptom = "symptom_check"
	ChatTypeGeneral = "general"
)

// ChatMessage is one turn of a symptom-check conversation. Both the
// user message and the assistant reply are stored under the same
// session id.
type ChatMessage struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`

	ChatType  string `gorm:"not null;default:symptom_check" json:"chat_type"`
	SessionID string `gorm:"not null;index" json:"session_id"`
	Role      string `gorm:"not null" json:"role"`
	Message   string `gorm:"not null" json:"message"`

	// Assistant turns only.
	UrgencyLevel    string `json:"urgency_level,omitempty"`
	SuggestedAction string `json:"suggested_action,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
