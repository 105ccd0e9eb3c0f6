package models

import "time"

type SleepRecord struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`

	SleepStart time.Time `gorm:"not null" json:"sleep_start"`
	SleepEnd   time.Time `gorm:"not null" json:"sleep_end"`
	// Derived from SleepStart/SleepEnd at write time.
	DurationHours float64 `gorm:"not null" json:"duration_hours"`

	SleepQuality   int      `gorm:"not null" json:"sleep_quality"`
	DeepSleepHours *float64 `json:"deep_sleep_hours,omitempty"`
	RemSleepHours  *float64 `json:"rem_sleep_hours,omitempty"`
	AwakeCount     int      `json:"awake_count"`

	SleepEnvironment string   `json:"sleep_environment,omitempty"`
	RoomTemperature  *float64 `json:"room_temperature,omitempty"`
	MoodBefore       string   `json:"mood_before,omitempty"`
	MoodAfter        string   `json:"mood_after,omitempty"`

	Notes             string `json:"notes,omitempty"`
	AIAnalysis        string `json:"ai_analysis,omitempty"`
	AIRecommendations string `json:"ai_recommendations,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
