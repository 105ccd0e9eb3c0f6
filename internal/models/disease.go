package models

import "time"

const (
	SeverityMild     = "mild"
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"
	SeverityCritical = "critical"
)

func KnownSeverity(value string) bool {
	switch value {
	case SeverityMild, SeverityModerate, SeveritySevere, SeverityCritical:
		return true
	}
	return false
}

// DiseaseRecord is the root of a one-to-many aggregate: treatment
// plans, checklists and progress logs all hang off it and share its
// owner. Deleting the record cascades to all three.
type DiseaseRecord struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`

	DiseaseName   string    `gorm:"not null" json:"disease_name"`
	DiseaseCode   string    `json:"disease_code,omitempty"`
	Severity      string    `gorm:"not null" json:"severity"`
	DiagnosisDate time.Time `gorm:"not null" json:"diagnosis_date"`

	Symptoms      []string `gorm:"serializer:json" json:"symptoms,omitempty"`
	CurrentStatus string   `json:"current_status,omitempty"`
	DoctorName    string   `json:"doctor_name,omitempty"`
	HospitalName  string   `json:"hospital_name,omitempty"`

	TreatmentMethod string   `json:"treatment_method,omitempty"`
	Medications     []string `gorm:"serializer:json" json:"medications,omitempty"`
	Precautions     string   `json:"precautions,omitempty"`

	// Mirrors the latest progress log; recomputed on every log write,
	// never accepted from the client.
	ImprovementScore float64 `gorm:"not null;default:0" json:"improvement_score"`

	Notes             string `json:"notes,omitempty"`
	AIAnalysis        string `json:"ai_analysis,omitempty"`
	AIRecommendations string `json:"ai_recommendations,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TreatmentPlan struct {
	ID              uint `gorm:"primaryKey" json:"id"`
	DiseaseRecordID uint `gorm:"not null;index" json:"disease_record_id"`
	UserID          uint `gorm:"not null;index" json:"user_id"`

	PlanName  string    `gorm:"not null" json:"plan_name"`
	Duration  string    `gorm:"not null" json:"duration"`
	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`

	Goals      []ChecklistItem `gorm:"serializer:json" json:"goals"`
	Milestones []string        `gorm:"serializer:json" json:"milestones,omitempty"`
	DailyTasks []string        `gorm:"serializer:json" json:"daily_tasks,omitempty"`

	// Derived from Goals on every write.
	CompletionPercentage float64 `gorm:"not null;default:0" json:"completion_percentage"`
	IsActive             bool    `gorm:"not null;default:true" json:"is_active"`

	AIGenerated       bool   `gorm:"not null;default:false" json:"ai_generated"`
	AIRecommendations string `json:"ai_recommendations,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChecklistItem is one entry of a checklist or goal list.
type ChecklistItem struct {
	Label     string `json:"label"`
	Completed bool   `json:"completed"`
}

type DiseaseChecklist struct {
	ID              uint `gorm:"primaryKey" json:"id"`
	DiseaseRecordID uint `gorm:"not null;index" json:"disease_record_id"`
	UserID          uint `gorm:"not null;index" json:"user_id"`

	Title         string    `gorm:"not null" json:"title"`
	Description   string    `json:"description,omitempty"`
	ChecklistDate time.Time `gorm:"not null" json:"checklist_date"`

	Items []ChecklistItem `gorm:"serializer:json" json:"items"`

	// All three derived from Items on every write. An empty checklist
	// is never completed.
	CompletedCount int  `gorm:"not null;default:0" json:"completed_count"`
	TotalCount     int  `gorm:"not null;default:0" json:"total_count"`
	IsCompleted    bool `gorm:"not null;default:false" json:"is_completed"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type DiseaseProgressLog struct {
	ID              uint `gorm:"primaryKey" json:"id"`
	DiseaseRecordID uint `gorm:"not null;index" json:"disease_record_id"`
	UserID          uint `gorm:"not null;index" json:"user_id"`

	LogDate          time.Time `gorm:"not null" json:"log_date"`
	ImprovementScore float64   `gorm:"not null" json:"improvement_score"`

	PainLevel     *int   `json:"pain_level,omitempty"`
	ActivityLevel string `json:"activity_level,omitempty"`
	EnergyLevel   *int   `json:"energy_level,omitempty"`

	Notes      string `json:"notes,omitempty"`
	AIAnalysis string `json:"ai_analysis,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
