package models

import "time"

// VoiceAnalysis stores one voice check-in: the transcript (either
// client-supplied or produced by speech-to-text) and the emotion
// analysis derived from it.
type VoiceAnalysis struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`

	Transcript string  `gorm:"not null" json:"transcript"`
	Confidence float64 `json:"confidence"`

	PrimaryEmotion string             `json:"primary_emotion,omitempty"`
	Sentiment      string             `json:"sentiment,omitempty"`
	Intensity      float64            `json:"intensity"`
	EmotionScores  map[string]float64 `gorm:"serializer:json" json:"emotion_scores,omitempty"`
	Keywords       []string           `gorm:"serializer:json" json:"keywords,omitempty"`
	Analysis       string             `json:"analysis,omitempty"`

	UrgencyLevel string `json:"urgency_level,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

const (
	ReminderMedication   = "medication"
	ReminderMeal         = "meal"
	ReminderExercise     = "exercise"
	ReminderCheckup      = "checkup"
	ReminderMentalHealth = "mental_health"
)

func KnownReminderType(value string) bool {
	switch value {
	case ReminderMedication, ReminderMeal, ReminderExercise, ReminderCheckup, ReminderMentalHealth:
		return true
	}
	return false
}

// VoiceReminder is a scheduled care prompt the client reads aloud via
// TTS when tapped. Nothing fires server-side; the rows are stored and
// listed soonest first.
type VoiceReminder struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`

	ReminderType string `gorm:"not null" json:"reminder_type"`
	Title        string `gorm:"not null" json:"title"`
	TTSText      string `gorm:"column:tts_text;not null" json:"tts_text"`

	ScheduledTime time.Time `gorm:"not null" json:"scheduled_time"`

	VoiceLanguage string  `gorm:"not null;default:ko-KR" json:"voice_language"`
	VoiceSpeed    float64 `gorm:"not null;default:1" json:"voice_speed"`

	RepeatEnabled bool   `gorm:"not null;default:false" json:"repeat_enabled"`
	RepeatPattern string `json:"repeat_pattern,omitempty"`
	IsActive      bool   `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Notification is a request-time row (no background delivery); the
// voice monitor writes one when it detects a concerning state.
type Notification struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`

	Kind    string `gorm:"not null" json:"kind"`
	Message string `gorm:"not null" json:"message"`
	IsRead  bool   `gorm:"not null;default:false" json:"is_read"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
