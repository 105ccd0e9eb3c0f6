package models

import "time"

// MeditationSession and MusicSession are near-twins kept as separate
// tables because their catalogs differ.

type MeditationSession struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`

	SessionType     string `gorm:"not null" json:"session_type"`
	DurationMinutes int    `gorm:"not null" json:"duration_minutes"`
	MoodBefore      string `json:"mood_before,omitempty"`
	MoodAfter       string `json:"mood_after,omitempty"`
	Notes           string `json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

type MusicSession struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`

	TrackTitle      string `gorm:"not null" json:"track_title"`
	Genre           string `json:"genre,omitempty"`
	DurationMinutes int    `gorm:"not null" json:"duration_minutes"`
	MoodBefore      string `json:"mood_before,omitempty"`
	MoodAfter       string `json:"mood_after,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
