package models

import "time"

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// User owns every other record in the system.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"not null" json:"-"`
	FullName     string `json:"full_name,omitempty"`
	Age          *int   `json:"age,omitempty"`
	Gender       string `json:"gender,omitempty"`
	Phone        string `json:"phone,omitempty"`

	// Free-text, comma-separated lists kept as the user entered them.
	ChronicConditions string `json:"chronic_conditions,omitempty"`
	Allergies         string `json:"allergies,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func KnownGender(value string) bool {
	switch value {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}
