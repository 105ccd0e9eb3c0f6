package api

import (
	"time"

	"github.com/daon-health/vitalog/internal/db"
	"github.com/daon-health/vitalog/internal/models"
	"github.com/daon-health/vitalog/internal/services"
	"github.com/gofiber/fiber/v2"
)

type createChildRequest struct {
	ChildName        string    `json:"child_name" validate:"required,max=100"`
	ChildGender      string    `json:"child_gender" validate:"omitempty,oneof=male female other"`
	BirthDate        time.Time `json:"birth_date" validate:"required"`
	BirthWeight      *float64  `json:"birth_weight" validate:"omitempty,gt=0"`
	BirthHeight      *float64  `json:"birth_height" validate:"omitempty,gt=0"`
	HealthConditions []string  `json:"health_conditions" validate:"max=30,dive,max=200"`
	Allergies        []string  `json:"allergies" validate:"max=30,dive,max=200"`
	Notes            string    `json:"notes" validate:"max=2000"`
}

func (handler *Handler) CreateChild(c *fiber.Ctx) error {
	var request createChildRequest
	if !handler.parseBody(c, &request) {
		return nil
	}

	ageMonths := services.AgeInMonths(request.BirthDate, time.Now())
	child := models.ChildProfile{
		UserID:             handler.currentUser(c).ID,
		ChildName:          request.ChildName,
		ChildGender:        request.ChildGender,
		BirthDate:          request.BirthDate,
		BirthWeight:        request.BirthWeight,
		BirthHeight:        request.BirthHeight,
		CurrentAgeMonths:   ageMonths,
		DevelopmentalStage: services.DevelopmentalStage(ageMonths),
		HealthConditions:   request.HealthConditions,
		Allergies:          request.Allergies,
		Notes:              request.Notes,
	}
	if err := handler.repos.Children.Create(&child); err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(child)
}

// refreshChildAge recomputes the derived age fields on read so a
// profile created months ago still reports the current age.
func refreshChildAge(child *models.ChildProfile, now time.Time) {
	child.CurrentAgeMonths = services.AgeInMonths(child.BirthDate, now)
	child.DevelopmentalStage = services.DevelopmentalStage(child.CurrentAgeMonths)
}

func (handler *Handler) ListChildren(c *fiber.Ctx) error {
	children, err := handler.repos.Children.List(
		handler.currentUser(c).ID,
		listOptions(c, ""),
	)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	now := time.Now()
	for index := range children {
		refreshChildAge(&children[index], now)
	}
	return c.JSON(children)
}

func (handler *Handler) GetChild(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	child, err := handler.repos.Children.Get(handler.currentUser(c).ID, id)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	refreshChildAge(&child, time.Now())
	return c.JSON(child)
}

var childColumns = map[string]string{
	"child_name":   "child_name",
	"child_gender": "child_gender",
	"birth_date":   "birth_date",
	"birth_weight": "birth_weight",
	"birth_height": "birth_height",
	"notes":        "notes",
}

var childRules = map[string]patchRule{
	"child_name":   {kind: "string", tag: "max=100"},
	"child_gender": {kind: "string", tag: "omitempty,oneof=male female other"},
	"birth_weight": {kind: "number", tag: "gt=0"},
	"birth_height": {kind: "number", tag: "gt=0"},
	"notes":        {kind: "string", tag: "max=2000"},
}

func (handler *Handler) UpdateChild(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	changes, ok := handler.patchChanges(c, childColumns, map[string]bool{"birth_date": true}, childRules)
	if !ok {
		return nil
	}
	if birthDate, present := changes["birth_date"]; present {
		if parsed, isTime := birthDate.(time.Time); isTime {
			ageMonths := services.AgeInMonths(parsed, time.Now())
			changes["current_age_months"] = ageMonths
			changes["developmental_stage"] = services.DevelopmentalStage(ageMonths)
		}
	}

	child, err := handler.repos.Children.Update(handler.currentUser(c).ID, id, changes)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	refreshChildAge(&child, time.Now())
	return c.JSON(child)
}

func (handler *Handler) DeleteChild(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	if err := handler.repos.DeleteChildCascade(handler.currentUser(c).ID, id); err != nil {
		return handler.respondRepoError(c, err)
	}
	return sendNoContent(c)
}

type createGrowthRecordRequest struct {
	MeasurementDate   *time.Time `json:"measurement_date"`
	WeightKg          float64    `json:"weight_kg" validate:"required,gt=0"`
	HeightCm          float64    `json:"height_cm" validate:"required,gt=0"`
	HeadCircumference *float64   `json:"head_circumference" validate:"omitempty,gt=0"`
	Notes             string     `json:"notes" validate:"max=2000"`
}

func (handler *Handler) CreateGrowthRecord(c *fiber.Ctx) error {
	childID, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	ownerID := handler.currentUser(c).ID
	child, err := handler.repos.Children.Get(ownerID, childID)
	if err != nil {
		return handler.respondRepoError(c, err)
	}

	var request createGrowthRecordRequest
	if !handler.parseBody(c, &request) {
		return nil
	}

	measurementDate := time.Now()
	if request.MeasurementDate != nil {
		measurementDate = *request.MeasurementDate
	}

	record := models.GrowthRecord{
		ChildID:           childID,
		UserID:            ownerID,
		MeasurementDate:   measurementDate,
		AgeMonths:         services.AgeInMonths(child.BirthDate, measurementDate),
		WeightKg:          request.WeightKg,
		HeightCm:          request.HeightCm,
		HeadCircumference: request.HeadCircumference,
		BMI:               services.BMI(request.WeightKg, request.HeightCm),
		Notes:             request.Notes,
	}
	if err := handler.repos.GrowthRecords.Create(&record); err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

func (handler *Handler) ListGrowthRecords(c *fiber.Ctx) error {
	childID, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	ownerID := handler.currentUser(c).ID
	if _, err := handler.repos.Children.Get(ownerID, childID); err != nil {
		return handler.respondRepoError(c, err)
	}

	records, err := handler.repos.GrowthRecords.List(ownerID, listOptions(c, "measurement_date",
		db.FieldEquals("child_id", childID)))
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(records)
}

type createDevelopmentLogRequest struct {
	LogDate         *time.Time `json:"log_date"`
	MotorSkills     string     `json:"motor_skills" validate:"max=2000"`
	LanguageSkills  string     `json:"language_skills" validate:"max=2000"`
	CognitiveSkills string     `json:"cognitive_skills" validate:"max=2000"`
	SocialSkills    string     `json:"social_skills" validate:"max=2000"`
	EmotionalSkills string     `json:"emotional_skills" validate:"max=2000"`
	EatingHabits    string     `json:"eating_habits" validate:"max=2000"`
	SleepPattern    string     `json:"sleep_pattern" validate:"max=2000"`
	SleepHours      *float64   `json:"sleep_hours" validate:"omitempty,gte=0,lte=24"`
	PlayActivities  []string   `json:"play_activities" validate:"max=30,dive,max=200"`
	Mood            string     `json:"mood" validate:"max=100"`
	SpecialMoments  string     `json:"special_moments" validate:"max=2000"`
	Photos          []string   `json:"photos" validate:"max=20,dive,max=500"`
	Notes           string     `json:"notes" validate:"max=2000"`
}

func (handler *Handler) CreateDevelopmentLog(c *fiber.Ctx) error {
	childID, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	ownerID := handler.currentUser(c).ID
	child, err := handler.repos.Children.Get(ownerID, childID)
	if err != nil {
		return handler.respondRepoError(c, err)
	}

	var request createDevelopmentLogRequest
	if !handler.parseBody(c, &request) {
		return nil
	}

	logDate := time.Now()
	if request.LogDate != nil {
		logDate = *request.LogDate
	}

	developmentLog := models.DevelopmentLog{
		ChildID:         childID,
		UserID:          ownerID,
		LogDate:         logDate,
		AgeMonths:       services.AgeInMonths(child.BirthDate, logDate),
		MotorSkills:     request.MotorSkills,
		LanguageSkills:  request.LanguageSkills,
		CognitiveSkills: request.CognitiveSkills,
		SocialSkills:    request.SocialSkills,
		EmotionalSkills: request.EmotionalSkills,
		EatingHabits:    request.EatingHabits,
		SleepPattern:    request.SleepPattern,
		SleepHours:      request.SleepHours,
		PlayActivities:  request.PlayActivities,
		Mood:            request.Mood,
		SpecialMoments:  request.SpecialMoments,
		Photos:          request.Photos,
		Notes:           request.Notes,
	}
	if err := handler.repos.DevelopmentLogs.Create(&developmentLog); err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(developmentLog)
}

func (handler *Handler) ListDevelopmentLogs(c *fiber.Ctx) error {
	childID, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	ownerID := handler.currentUser(c).ID
	if _, err := handler.repos.Children.Get(ownerID, childID); err != nil {
		return handler.respondRepoError(c, err)
	}

	logs, err := handler.repos.DevelopmentLogs.List(ownerID, listOptions(c, "log_date",
		db.FieldEquals("child_id", childID)))
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(logs)
}

type createVaccinationRequest struct {
	VaccineName     string     `json:"vaccine_name" validate:"required,max=255"`
	VaccineType     string     `json:"vaccine_type" validate:"max=100"`
	DoseNumber      *int       `json:"dose_number" validate:"omitempty,gte=1,lte=10"`
	ScheduledDate   *time.Time `json:"scheduled_date"`
	ActualDate      *time.Time `json:"actual_date"`
	HospitalName    string     `json:"hospital_name" validate:"max=255"`
	SideEffects     string     `json:"side_effects" validate:"max=2000"`
	NextDoseDueDate *time.Time `json:"next_dose_due_date"`
	Notes           string     `json:"notes" validate:"max=2000"`
}

func (handler *Handler) CreateVaccination(c *fiber.Ctx) error {
	childID, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	ownerID := handler.currentUser(c).ID
	if _, err := handler.repos.Children.Get(ownerID, childID); err != nil {
		return handler.respondRepoError(c, err)
	}

	var request createVaccinationRequest
	if !handler.parseBody(c, &request) {
		return nil
	}

	dose := 1
	if request.DoseNumber != nil {
		dose = *request.DoseNumber
	}

	vaccination := models.Vaccination{
		ChildID:         childID,
		UserID:          ownerID,
		VaccineName:     request.VaccineName,
		VaccineType:     request.VaccineType,
		DoseNumber:      dose,
		ScheduledDate:   request.ScheduledDate,
		ActualDate:      request.ActualDate,
		IsCompleted:     request.ActualDate != nil,
		HospitalName:    request.HospitalName,
		SideEffects:     request.SideEffects,
		NextDoseDueDate: request.NextDoseDueDate,
		Notes:           request.Notes,
	}
	if err := handler.repos.Vaccinations.Create(&vaccination); err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(vaccination)
}

func (handler *Handler) ListVaccinations(c *fiber.Ctx) error {
	childID, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	ownerID := handler.currentUser(c).ID
	if _, err := handler.repos.Children.Get(ownerID, childID); err != nil {
		return handler.respondRepoError(c, err)
	}

	vaccinations, err := handler.repos.Vaccinations.List(ownerID, listOptions(c, "",
		db.FieldEquals("child_id", childID)))
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(vaccinations)
}

var vaccinationColumns = map[string]string{
	"vaccine_name":       "vaccine_name",
	"vaccine_type":       "vaccine_type",
	"dose_number":        "dose_number",
	"scheduled_date":     "scheduled_date",
	"actual_date":        "actual_date",
	"is_completed":       "is_completed",
	"hospital_name":      "hospital_name",
	"side_effects":       "side_effects",
	"next_dose_due_date": "next_dose_due_date",
	"notes":              "notes",
}

var vaccinationRules = map[string]patchRule{
	"vaccine_name":  {kind: "string", tag: "max=255"},
	"vaccine_type":  {kind: "string", tag: "max=100"},
	"dose_number":   {kind: "number", tag: "gte=1,lte=10"},
	"is_completed":  {kind: "bool"},
	"hospital_name": {kind: "string", tag: "max=255"},
	"side_effects":  {kind: "string", tag: "max=2000"},
	"notes":         {kind: "string", tag: "max=2000"},
}

func (handler *Handler) UpdateVaccination(c *fiber.Ctx) error {
	childID, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	vaccinationID, ok := parseIDParam(c, "vaccinationID")
	if !ok {
		return nil
	}
	ownerID := handler.currentUser(c).ID

	vaccination, err := handler.repos.Vaccinations.Get(ownerID, vaccinationID)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	if vaccination.ChildID != childID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}

	changes, ok := handler.patchChanges(c, vaccinationColumns, map[string]bool{
		"scheduled_date":     true,
		"actual_date":        true,
		"next_dose_due_date": true,
	}, vaccinationRules)
	if !ok {
		return nil
	}
	// Recording an actual date marks the dose complete.
	if actualDate, present := changes["actual_date"]; present {
		if _, explicit := changes["is_completed"]; !explicit {
			changes["is_completed"] = actualDate != nil
		}
	}

	updated, err := handler.repos.Vaccinations.Update(ownerID, vaccinationID, changes)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(updated)
}
