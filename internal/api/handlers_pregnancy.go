package api

import (
	"time"

	"github.com/daon-health/vitalog/internal/db"
	"github.com/daon-health/vitalog/internal/models"
	"github.com/daon-health/vitalog/internal/services"
	"github.com/gofiber/fiber/v2"
)

type createPregnancyRecordRequest struct {
	PregnancyStatus       string     `json:"pregnancy_status" validate:"required,oneof=preparing pregnant postpartum completed"`
	ConceptionDate        *time.Time `json:"conception_date"`
	DueDate               *time.Time `json:"due_date"`
	ActualBirthDate       *time.Time `json:"actual_birth_date"`
	CurrentWeek           *int       `json:"current_week" validate:"omitempty,gte=1,lte=45"`
	CurrentTrimester      *int       `json:"current_trimester" validate:"omitempty,gte=1,lte=3"`
	WeightBeforePregnancy *float64   `json:"weight_before_pregnancy" validate:"omitempty,gt=0"`
	CurrentWeight         *float64   `json:"current_weight" validate:"omitempty,gt=0"`
	BloodPressure         string     `json:"blood_pressure" validate:"max=20"`
	HospitalName          string     `json:"hospital_name" validate:"max=255"`
	DoctorName            string     `json:"doctor_name" validate:"max=100"`
	NextCheckupDate       *time.Time `json:"next_checkup_date"`
	BabyNickname          string     `json:"baby_nickname" validate:"max=100"`
	NumberOfBabies        *int       `json:"number_of_babies" validate:"omitempty,gte=1,lte=5"`
	Symptoms              []string   `json:"symptoms" validate:"max=30,dive,max=200"`
	MoodStatus            string     `json:"mood_status" validate:"max=100"`
	EnergyLevel           *int       `json:"energy_level" validate:"omitempty,gte=1,lte=10"`
	Notes                 string     `json:"notes" validate:"max=2000"`
}

func (handler *Handler) CreatePregnancyRecord(c *fiber.Ctx) error {
	var request createPregnancyRecordRequest
	if !handler.parseBody(c, &request) {
		return nil
	}

	babies := 1
	if request.NumberOfBabies != nil {
		babies = *request.NumberOfBabies
	}

	record := models.PregnancyRecord{
		UserID:                handler.currentUser(c).ID,
		PregnancyStatus:       request.PregnancyStatus,
		ConceptionDate:        request.ConceptionDate,
		DueDate:               request.DueDate,
		ActualBirthDate:       request.ActualBirthDate,
		CurrentWeek:           request.CurrentWeek,
		CurrentTrimester:      request.CurrentTrimester,
		WeightBeforePregnancy: request.WeightBeforePregnancy,
		CurrentWeight:         request.CurrentWeight,
		BloodPressure:         request.BloodPressure,
		HospitalName:          request.HospitalName,
		DoctorName:            request.DoctorName,
		NextCheckupDate:       request.NextCheckupDate,
		BabyNickname:          request.BabyNickname,
		NumberOfBabies:        babies,
		Symptoms:              request.Symptoms,
		MoodStatus:            request.MoodStatus,
		EnergyLevel:           request.EnergyLevel,
		Notes:                 request.Notes,
	}
	if err := handler.repos.PregnancyRecords.Create(&record); err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

func (handler *Handler) ListPregnancyRecords(c *fiber.Ctx) error {
	records, err := handler.repos.PregnancyRecords.List(
		handler.currentUser(c).ID,
		listOptions(c, "created_at"),
	)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(records)
}

func (handler *Handler) GetPregnancyRecord(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	record, err := handler.repos.PregnancyRecords.Get(handler.currentUser(c).ID, id)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(record)
}

var pregnancyRecordColumns = map[string]string{
	"pregnancy_status":        "pregnancy_status",
	"conception_date":         "conception_date",
	"due_date":                "due_date",
	"actual_birth_date":       "actual_birth_date",
	"current_week":            "current_week",
	"current_trimester":       "current_trimester",
	"weight_before_pregnancy": "weight_before_pregnancy",
	"current_weight":          "current_weight",
	"blood_pressure":          "blood_pressure",
	"hospital_name":           "hospital_name",
	"doctor_name":             "doctor_name",
	"next_checkup_date":       "next_checkup_date",
	"baby_nickname":           "baby_nickname",
	"number_of_babies":        "number_of_babies",
	"mood_status":             "mood_status",
	"energy_level":            "energy_level",
	"notes":                   "notes",
}

var pregnancyTimeColumns = map[string]bool{
	"conception_date":   true,
	"due_date":          true,
	"actual_birth_date": true,
	"next_checkup_date": true,
}

var pregnancyRecordRules = map[string]patchRule{
	"pregnancy_status":        {kind: "string"},
	"current_week":            {kind: "number", tag: "gte=1,lte=45"},
	"current_trimester":       {kind: "number", tag: "gte=1,lte=3"},
	"weight_before_pregnancy": {kind: "number", tag: "gt=0"},
	"current_weight":          {kind: "number", tag: "gt=0"},
	"blood_pressure":          {kind: "string", tag: "max=20"},
	"hospital_name":           {kind: "string", tag: "max=255"},
	"doctor_name":             {kind: "string", tag: "max=100"},
	"baby_nickname":           {kind: "string", tag: "max=100"},
	"number_of_babies":        {kind: "number", tag: "gte=1,lte=5"},
	"mood_status":             {kind: "string", tag: "max=100"},
	"energy_level":            {kind: "number", tag: "gte=1,lte=10"},
	"notes":                   {kind: "string", tag: "max=2000"},
}

func (handler *Handler) UpdatePregnancyRecord(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	changes, ok := handler.patchChanges(c, pregnancyRecordColumns, pregnancyTimeColumns, pregnancyRecordRules)
	if !ok {
		return nil
	}
	if status, present := changes["pregnancy_status"]; present {
		value, _ := status.(string)
		if !models.KnownPregnancyStatus(value) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":  "validation failed",
				"fields": map[string]string{"pregnancy_status": "oneof"},
			})
		}
	}

	record, err := handler.repos.PregnancyRecords.Update(handler.currentUser(c).ID, id, changes)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(record)
}

func (handler *Handler) DeletePregnancyRecord(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	if err := handler.repos.DeletePregnancyRecordCascade(handler.currentUser(c).ID, id); err != nil {
		return handler.respondRepoError(c, err)
	}
	return sendNoContent(c)
}

func (handler *Handler) verifyPregnancyParent(ownerID uint, pregnancyID uint) error {
	_, err := handler.repos.PregnancyRecords.Get(ownerID, pregnancyID)
	return err
}

type createPrenatalCareRequest struct {
	CareDate              *time.Time `json:"care_date"`
	CareType              string     `json:"care_type" validate:"required,max=100"`
	Title                 string     `json:"title" validate:"max=255"`
	Description           string     `json:"description" validate:"max=2000"`
	DurationMinutes       *int       `json:"duration_minutes" validate:"omitempty,gte=1,lte=600"`
	MusicTitle            string     `json:"music_title" validate:"max=255"`
	TalkingContent        string     `json:"talking_content" validate:"max=2000"`
	FetalMovementCount    *int       `json:"fetal_movement_count" validate:"omitempty,gte=0"`
	FetalMovementStrength string     `json:"fetal_movement_strength" validate:"max=50"`
	MotherMood            string     `json:"mother_mood" validate:"max=100"`
	Notes                 string     `json:"notes" validate:"max=2000"`
}

func (handler *Handler) CreatePrenatalCare(c *fiber.Ctx) error {
	pregnancyID, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	ownerID := handler.currentUser(c).ID
	if err := handler.verifyPregnancyParent(ownerID, pregnancyID); err != nil {
		return handler.respondRepoError(c, err)
	}

	var request createPrenatalCareRequest
	if !handler.parseBody(c, &request) {
		return nil
	}

	careDate := time.Now()
	if request.CareDate != nil {
		careDate = *request.CareDate
	}

	care := models.PrenatalCare{
		PregnancyRecordID:     pregnancyID,
		UserID:                ownerID,
		CareDate:              careDate,
		CareType:              request.CareType,
		Title:                 request.Title,
		Description:           request.Description,
		DurationMinutes:       request.DurationMinutes,
		MusicTitle:            request.MusicTitle,
		TalkingContent:        request.TalkingContent,
		FetalMovementCount:    request.FetalMovementCount,
		FetalMovementStrength: request.FetalMovementStrength,
		MotherMood:            request.MotherMood,
		Notes:                 request.Notes,
	}
	if err := handler.repos.PrenatalCares.Create(&care); err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(care)
}

func (handler *Handler) ListPrenatalCares(c *fiber.Ctx) error {
	pregnancyID, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	ownerID := handler.currentUser(c).ID
	if err := handler.verifyPregnancyParent(ownerID, pregnancyID); err != nil {
		return handler.respondRepoError(c, err)
	}

	cares, err := handler.repos.PrenatalCares.List(ownerID, listOptions(c, "care_date",
		db.FieldEquals("pregnancy_record_id", pregnancyID)))
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(cares)
}

type createPregnancyLogRequest struct {
	LogDate            *time.Time `json:"log_date"`
	PregnancyWeek      *int       `json:"pregnancy_week" validate:"omitempty,gte=1,lte=45"`
	Weight             *float64   `json:"weight" validate:"omitempty,gt=0"`
	BloodPressure      string     `json:"blood_pressure" validate:"max=20"`
	Temperature        *float64   `json:"temperature" validate:"omitempty,gte=30,lte=45"`
	Symptoms           []string   `json:"symptoms" validate:"max=30,dive,max=200"`
	NauseaLevel        *int       `json:"nausea_level" validate:"omitempty,gte=0,lte=10"`
	FatigueLevel       *int       `json:"fatigue_level" validate:"omitempty,gte=0,lte=10"`
	PainLevel          *int       `json:"pain_level" validate:"omitempty,gte=0,lte=10"`
	SleepHours         *float64   `json:"sleep_hours" validate:"omitempty,gte=0,lte=24"`
	WaterIntake        *float64   `json:"water_intake" validate:"omitempty,gte=0"`
	Mood               string     `json:"mood" validate:"max=100"`
	StressLevel        *int       `json:"stress_level" validate:"omitempty,gte=0,lte=10"`
	FetalMovementCount *int       `json:"fetal_movement_count" validate:"omitempty,gte=0"`
	Notes              string     `json:"notes" validate:"max=2000"`
}

func (handler *Handler) CreatePregnancyLog(c *fiber.Ctx) error {
	pregnancyID, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	ownerID := handler.currentUser(c).ID
	if err := handler.verifyPregnancyParent(ownerID, pregnancyID); err != nil {
		return handler.respondRepoError(c, err)
	}

	var request createPregnancyLogRequest
	if !handler.parseBody(c, &request) {
		return nil
	}

	logDate := time.Now()
	if request.LogDate != nil {
		logDate = *request.LogDate
	}

	pregnancyLog := models.PregnancyLog{
		PregnancyRecordID:  pregnancyID,
		UserID:             ownerID,
		LogDate:            logDate,
		PregnancyWeek:      request.PregnancyWeek,
		Weight:             request.Weight,
		BloodPressure:      request.BloodPressure,
		Temperature:        request.Temperature,
		Symptoms:           request.Symptoms,
		NauseaLevel:        request.NauseaLevel,
		FatigueLevel:       request.FatigueLevel,
		PainLevel:          request.PainLevel,
		SleepHours:         request.SleepHours,
		WaterIntake:        request.WaterIntake,
		Mood:               request.Mood,
		StressLevel:        request.StressLevel,
		FetalMovementCount: request.FetalMovementCount,
		Notes:              request.Notes,
	}
	if err := handler.repos.PregnancyLogs.Create(&pregnancyLog); err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(pregnancyLog)
}

func (handler *Handler) ListPregnancyLogs(c *fiber.Ctx) error {
	pregnancyID, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	ownerID := handler.currentUser(c).ID
	if err := handler.verifyPregnancyParent(ownerID, pregnancyID); err != nil {
		return handler.respondRepoError(c, err)
	}

	logs, err := handler.repos.PregnancyLogs.List(ownerID, listOptions(c, "log_date",
		db.FieldEquals("pregnancy_record_id", pregnancyID)))
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(logs)
}

type createPostpartumCareRequest struct {
	BirthDate                time.Time  `json:"birth_date" validate:"required"`
	CareType                 string     `json:"care_type" validate:"max=100"`
	CareStartDate            *time.Time `json:"care_start_date"`
	CareEndDate              *time.Time `json:"care_end_date"`
	PhysicalRecoveryScore    *int       `json:"physical_recovery_score" validate:"omitempty,gte=1,lte=10"`
	PainLevel                *int       `json:"pain_level" validate:"omitempty,gte=0,lte=10"`
	BreastfeedingStatus      string     `json:"breastfeeding_status" validate:"max=100"`
	MoodScore                *int       `json:"mood_score" validate:"omitempty,gte=1,lte=10"`
	DepressionScreeningScore *int       `json:"depression_screening_score" validate:"omitempty,gte=0,lte=30"`
	AnxietyLevel             *int       `json:"anxiety_level" validate:"omitempty,gte=0,lte=10"`
	SleepQuality             *int       `json:"sleep_quality" validate:"omitempty,gte=1,lte=10"`
	Symptoms                 []string   `json:"symptoms" validate:"max=30,dive,max=200"`
	Concerns                 string     `json:"concerns" validate:"max=2000"`
	Notes                    string     `json:"notes" validate:"max=2000"`
}

func (handler *Handler) CreatePostpartumCare(c *fiber.Ctx) error {
	var request createPostpartumCareRequest
	if !handler.parseBody(c, &request) {
		return nil
	}

	care := models.PostpartumCare{
		UserID:                   handler.currentUser(c).ID,
		BirthDate:                request.BirthDate,
		CareType:                 request.CareType,
		CareStartDate:            request.CareStartDate,
		CareEndDate:              request.CareEndDate,
		PhysicalRecoveryScore:    request.PhysicalRecoveryScore,
		PainLevel:                request.PainLevel,
		BreastfeedingStatus:      request.BreastfeedingStatus,
		MoodScore:                request.MoodScore,
		DepressionScreeningScore: request.DepressionScreeningScore,
		AnxietyLevel:             request.AnxietyLevel,
		SleepQuality:             request.SleepQuality,
		Symptoms:                 request.Symptoms,
		Concerns:                 request.Concerns,
		Notes:                    request.Notes,
	}
	if request.DepressionScreeningScore != nil {
		care.PostpartumDepressionRisk = services.ClassifyRisk(
			*request.DepressionScreeningScore, services.PostpartumDepressionTable)
	}
	if err := handler.repos.PostpartumCares.Create(&care); err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(care)
}

func (handler *Handler) ListPostpartumCares(c *fiber.Ctx) error {
	cares, err := handler.repos.PostpartumCares.List(
		handler.currentUser(c).ID,
		listOptions(c, "birth_date"),
	)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(cares)
}

func (handler *Handler) GetPostpartumCare(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	care, err := handler.repos.PostpartumCares.Get(handler.currentUser(c).ID, id)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(care)
}

// postpartum_depression_risk is derived from the screening score and
// never patched directly.
var postpartumCareColumns = map[string]string{
	"birth_date":                 "birth_date",
	"care_type":                  "care_type",
	"care_start_date":            "care_start_date",
	"care_end_date":              "care_end_date",
	"physical_recovery_score":    "physical_recovery_score",
	"pain_level":                 "pain_level",
	"breastfeeding_status":       "breastfeeding_status",
	"mood_score":                 "mood_score",
	"depression_screening_score": "depression_screening_score",
	"anxiety_level":              "anxiety_level",
	"sleep_quality":              "sleep_quality",
	"concerns":                   "concerns",
	"notes":                      "notes",
}

var postpartumCareRules = map[string]patchRule{
	"care_type":                  {kind: "string", tag: "max=100"},
	"physical_recovery_score":    {kind: "number", tag: "gte=1,lte=10"},
	"pain_level":                 {kind: "number", tag: "gte=0,lte=10"},
	"breastfeeding_status":       {kind: "string", tag: "max=100"},
	"mood_score":                 {kind: "number", tag: "gte=1,lte=10"},
	"depression_screening_score": {kind: "number", tag: "gte=0,lte=30"},
	"anxiety_level":              {kind: "number", tag: "gte=0,lte=10"},
	"sleep_quality":              {kind: "number", tag: "gte=1,lte=10"},
	"concerns":                   {kind: "string", tag: "max=2000"},
	"notes":                      {kind: "string", tag: "max=2000"},
}

func (handler *Handler) UpdatePostpartumCare(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	changes, ok := handler.patchChanges(c, postpartumCareColumns, map[string]bool{
		"birth_date":      true,
		"care_start_date": true,
		"care_end_date":   true,
	}, postpartumCareRules)
	if !ok {
		return nil
	}

	if score, present := changes["depression_screening_score"]; present {
		if score == nil {
			changes["postpartum_depression_risk"] = ""
		} else if value, isNumber := score.(float64); isNumber {
			changes["postpartum_depression_risk"] = services.ClassifyRisk(
				int(value), services.PostpartumDepressionTable)
		}
	}

	care, err := handler.repos.PostpartumCares.Update(handler.currentUser(c).ID, id, changes)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(care)
}
