package models

import "time"

const (
	MoodVeryHappy = "very_happy"
	MoodHappy     = "happy"
	MoodNeutral   = "neutral"
	MoodSad       = "sad"
	MoodVerySad   = "very_sad"
	MoodAngry     = "angry"
	MoodAnxious   = "anxious"
	MoodStressed  = "stressed"
	MoodTired     = "tired"
	MoodExcited   = "excited"
)

// MoodScores maps each mood level onto a 1-10 scale used by the
// statistics service. Unknown levels score as neutral.
var MoodScores = map[string]float64{
	MoodVerySad:   1,
	MoodAngry:     2,
	MoodSad:       3,
	MoodAnxious:   3,
	MoodStressed:  3,
	MoodTired:     4,
	MoodNeutral:   5,
	MoodHappy:     7,
	MoodExcited:   8,
	MoodVeryHappy: 9,
}

func KnownMoodLevel(value string) bool {
	_, ok := MoodScores[value]
	return ok
}

type MoodRecord struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`

	MoodLevel     string `gorm:"not null" json:"mood_level"`
	MoodIntensity int    `gorm:"not null" json:"mood_intensity"`

	Note       string `json:"note,omitempty"`
	Activities string `json:"activities,omitempty"`
	Triggers   string `json:"triggers,omitempty"`

	// Filled by the AI enrichment call; empty when the provider was
	// unavailable and the fallback text was declined.
	AIAnalysis string `json:"ai_analysis,omitempty"`
	AIAdvice   string `json:"ai_advice,omitempty"`

	RecordedAt time.Time `gorm:"not null" json:"recorded_at"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}
