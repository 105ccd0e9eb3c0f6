package models

import "time"

const (
	StageInfant    = "infant"
	StageToddler   = "toddler"
	StagePreschool = "preschool"
	StageSchoolAge = "school_age"
)

// ChildProfile roots the childcare aggregate (growth records and
// vaccinations). Age in months and the developmental stage are
// derived from BirthDate on every read/write, never stored as
// client-settable state.
type ChildProfile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`

	ChildName   string    `gorm:"not null" json:"child_name"`
	ChildGender string    `json:"child_gender,omitempty"`
	BirthDate   time.Time `gorm:"not null" json:"birth_date"`
	BirthWeight *float64  `json:"birth_weight,omitempty"`
	BirthHeight *float64  `json:"birth_height,omitempty"`

	CurrentAgeMonths   int    `gorm:"not null;default:0" json:"current_age_months"`
	DevelopmentalStage string `json:"developmental_stage,omitempty"`

	HealthConditions []string `gorm:"serializer:json" json:"health_conditions,omitempty"`
	Allergies        []string `gorm:"serializer:json" json:"allergies,omitempty"`

	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type GrowthRecord struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	ChildID uint `gorm:"not null;index" json:"child_id"`
	UserID  uint `gorm:"not null;index" json:"user_id"`

	MeasurementDate time.Time `gorm:"not null" json:"measurement_date"`
	AgeMonths       int       `json:"age_months"`

	WeightKg          float64  `gorm:"not null" json:"weight_kg"`
	HeightCm          float64  `gorm:"not null" json:"height_cm"`
	HeadCircumference *float64 `json:"head_circumference,omitempty"`

	// Derived from WeightKg/HeightCm at write time.
	BMI float64 `gorm:"column:bmi" json:"bmi"`

	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

// DevelopmentLog is a dated journal entry on a child's development.
// AgeMonths is derived from the child's birth date at the log date.
type DevelopmentLog struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	ChildID uint `gorm:"not null;index" json:"child_id"`
	UserID  uint `gorm:"not null;index" json:"user_id"`

	LogDate   time.Time `gorm:"not null" json:"log_date"`
	AgeMonths int       `json:"age_months"`

	MotorSkills     string `json:"motor_skills,omitempty"`
	LanguageSkills  string `json:"language_skills,omitempty"`
	CognitiveSkills string `json:"cognitive_skills,omitempty"`
	SocialSkills    string `json:"social_skills,omitempty"`
	EmotionalSkills string `json:"emotional_skills,omitempty"`

	EatingHabits string   `json:"eating_habits,omitempty"`
	SleepPattern string   `json:"sleep_pattern,omitempty"`
	SleepHours   *float64 `json:"sleep_hours,omitempty"`

	PlayActivities []string `gorm:"serializer:json" json:"play_activities,omitempty"`
	Mood           string   `json:"mood,omitempty"`
	SpecialMoments string   `json:"special_moments,omitempty"`
	Photos         []string `gorm:"serializer:json" json:"photos,omitempty"`

	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

type Vaccination struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	ChildID uint `gorm:"not null;index" json:"child_id"`
	UserID  uint `gorm:"not null;index" json:"user_id"`

	VaccineName string `gorm:"not null" json:"vaccine_name"`
	VaccineType string `json:"vaccine_type,omitempty"`
	DoseNumber  int    `gorm:"not null;default:1" json:"dose_number"`

	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`
	ActualDate    *time.Time `json:"actual_date,omitempty"`
	IsCompleted   bool       `gorm:"not null;default:false" json:"is_completed"`

	HospitalName string `json:"hospital_name,omitempty"`
	SideEffects  string `json:"side_effects,omitempty"`

	NextDoseDueDate *time.Time `json:"next_dose_due_date,omitempty"`
	Notes           string     `json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
