package models

import "time"

// Medication uses soft deletion: DELETE flips IsActive instead of
// removing the row, so dose history survives.
type Medication struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`

	MedicationName string `gorm:"not null" json:"medication_name"`
	Dosage         string `gorm:"not null" json:"dosage"`
	Frequency      string `gorm:"not null" json:"frequency"`

	TimeMorning   string `json:"time_morning,omitempty"`
	TimeAfternoon string `json:"time_afternoon,omitempty"`
	TimeEvening   string `json:"time_evening,omitempty"`

	StartDate time.Time  `gorm:"not null" json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	ReminderEnabled bool   `gorm:"not null;default:true" json:"reminder_enabled"`
	Notes           string `json:"notes,omitempty"`
	IsActive        bool   `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
