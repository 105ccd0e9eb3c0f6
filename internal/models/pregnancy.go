package models

import "time"

const (
	PregnancyPreparing  = "preparing"
	PregnancyPregnant   = "pregnant"
	PregnancyPostpartum = "postpartum"
	PregnancyCompleted  = "completed"
)

func KnownPregnancyStatus(value string) bool {
	switch value {
	case PregnancyPreparing, PregnancyPregnant, PregnancyPostpartum, PregnancyCompleted:
		return true
	}
	return false
}

// PregnancyRecord roots the pregnancy aggregate (prenatal care
// entries and day logs share its owner and cascade on delete).
type PregnancyRecord struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`

	PregnancyStatus string     `gorm:"not null" json:"pregnancy_status"`
	ConceptionDate  *time.Time `json:"conception_date,omitempty"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	ActualBirthDate *time.Time `json:"actual_birth_date,omitempty"`

	CurrentWeek      *int `json:"current_week,omitempty"`
	CurrentTrimester *int `json:"current_trimester,omitempty"`

	WeightBeforePregnancy *float64 `json:"weight_before_pregnancy,omitempty"`
	CurrentWeight         *float64 `json:"current_weight,omitempty"`
	BloodPressure         string   `json:"blood_pressure,omitempty"`

	HospitalName    string     `json:"hospital_name,omitempty"`
	DoctorName      string     `json:"doctor_name,omitempty"`
	NextCheckupDate *time.Time `json:"next_checkup_date,omitempty"`

	BabyNickname   string `json:"baby_nickname,omitempty"`
	NumberOfBabies int    `gorm:"not null;default:1" json:"number_of_babies"`

	Symptoms    []string `gorm:"serializer:json" json:"symptoms,omitempty"`
	MoodStatus  string   `json:"mood_status,omitempty"`
	EnergyLevel *int     `json:"energy_level,omitempty"`

	AIAnalysis        string `json:"ai_analysis,omitempty"`
	AIRecommendations string `json:"ai_recommendations,omitempty"`
	RiskLevel         string `json:"risk_level,omitempty"`

	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PrenatalCare struct {
	ID                uint `gorm:"primaryKey" json:"id"`
	PregnancyRecordID uint `gorm:"not null;index" json:"pregnancy_record_id"`
	UserID            uint `gorm:"not null;index" json:"user_id"`

	CareDate time.Time `gorm:"not null" json:"care_date"`
	CareType string    `gorm:"not null" json:"care_type"`

	Title           string `json:"title,omitempty"`
	Description     string `json:"description,omitempty"`
	DurationMinutes *int   `json:"duration_minutes,omitempty"`

	MusicTitle     string `json:"music_title,omitempty"`
	TalkingContent string `json:"talking_content,omitempty"`

	FetalMovementCount    *int   `json:"fetal_movement_count,omitempty"`
	FetalMovementStrength string `json:"fetal_movement_strength,omitempty"`

	MotherMood string `json:"mother_mood,omitempty"`
	Notes      string `json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

type PregnancyLog struct {
	ID                uint `gorm:"primaryKey" json:"id"`
	PregnancyRecordID uint `gorm:"not null;index" json:"pregnancy_record_id"`
	UserID            uint `gorm:"not null;index" json:"user_id"`

	LogDate       time.Time `gorm:"not null" json:"log_date"`
	PregnancyWeek *int      `json:"pregnancy_week,omitempty"`

	Weight        *float64 `json:"weight,omitempty"`
	BloodPressure string   `json:"blood_pressure,omitempty"`
	Temperature   *float64 `json:"temperature,omitempty"`

	Symptoms     []string `gorm:"serializer:json" json:"symptoms,omitempty"`
	NauseaLevel  *int     `json:"nausea_level,omitempty"`
	FatigueLevel *int     `json:"fatigue_level,omitempty"`
	PainLevel    *int     `json:"pain_level,omitempty"`

	SleepHours  *float64 `json:"sleep_hours,omitempty"`
	WaterIntake *float64 `json:"water_intake,omitempty"`

	Mood               string `json:"mood,omitempty"`
	StressLevel        *int   `json:"stress_level,omitempty"`
	FetalMovementCount *int   `json:"fetal_movement_count,omitempty"`

	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

const (
	DepressionRiskLow    = "low"
	DepressionRiskMedium = "medium"
	DepressionRiskHigh   = "high"
)

// PostpartumCare carries the depression-screening score; the derived
// risk bucket is recomputed from it on every write.
type PostpartumCare struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`

	BirthDate     time.Time  `gorm:"not null" json:"birth_date"`
	CareType      string     `json:"care_type,omitempty"`
	CareStartDate *time.Time `json:"care_start_date,omitempty"`
	CareEndDate   *time.Time `json:"care_end_date,omitempty"`

	PhysicalRecoveryScore *int   `json:"physical_recovery_score,omitempty"`
	PainLevel             *int   `json:"pain_level,omitempty"`
	BreastfeedingStatus   string `json:"breastfeeding_status,omitempty"`

	MoodScore                *int `json:"mood_score,omitempty"`
	DepressionScreeningScore *int `json:"depression_screening_score,omitempty"`
	AnxietyLevel             *int `json:"anxiety_level,omitempty"`
	SleepQuality             *int `json:"sleep_quality,omitempty"`

	Symptoms []string `gorm:"serializer:json" json:"symptoms,omitempty"`
	Concerns string   `json:"concerns,omitempty"`

	AIAnalysis               string `json:"ai_analysis,omitempty"`
	AIRecommendations        string `json:"ai_recommendations,omitempty"`
	PostpartumDepressionRisk string `json:"postpartum_depression_risk,omitempty"`

	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
