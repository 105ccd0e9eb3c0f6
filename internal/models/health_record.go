package models

import "time"

const (
	RecordBloodPressure    = "blood_pressure"
	RecordBloodSugar       = "blood_sugar"
	RecordWeight           = "weight"
	RecordHeartRate        = "heart_rate"
	RecordTemperature      = "temperature"
	RecordOxygenSaturation = "oxygen_saturation"
	RecordOther            = "other"
)

// HealthRecord is a single vital-sign measurement.
type HealthRecord struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`

	RecordType string  `gorm:"not null" json:"record_type"`
	Value      float64 `gorm:"not null" json:"value"`
	Unit       string  `gorm:"not null" json:"unit"`

	// Blood pressure carries both phases alongside Value.
	Systolic  *float64 `json:"systolic,omitempty"`
	Diastolic *float64 `json:"diastolic,omitempty"`

	Notes      string    `json:"notes,omitempty"`
	MeasuredAt time.Time `gorm:"not null" json:"measured_at"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}

// KnownRecordType maps unrecognized values to the closed "other"
// case instead of rejecting them outright.
func KnownRecordType(value string) bool {
	switch value {
	case RecordBloodPressure, RecordBloodSugar, RecordWeight, RecordHeartRate,
		RecordTemperature, RecordOxygenSaturation, RecordOther:
		return true
	}
	return false
}
