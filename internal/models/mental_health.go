package models

import "time"

// MentalHealthCheck is a self-reported wellbeing snapshot on 1-10
// scales, enriched with an AI assessment at creation.
type MentalHealthCheck struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`

	StressLevel  *int `json:"stress_level,omitempty"`
	AnxietyLevel *int `json:"anxiety_level,omitempty"`
	MoodLevel    *int `json:"mood_level,omitempty"`
	SleepQuality *int `json:"sleep_quality,omitempty"`

	Symptoms []string `gorm:"serializer:json" json:"symptoms,omitempty"`
	Notes    string   `json:"notes,omitempty"`

	AIAssessment    string `json:"ai_assessment,omitempty"`
	Recommendations string `json:"recommendations,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
