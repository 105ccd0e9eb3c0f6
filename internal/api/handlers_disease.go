package api

import (
	"time"

	"github.com/daon-health/vitalog/internal/db"
	"github.com/daon-health/vitalog/internal/models"
	"github.com/daon-health/vitalog/internal/services"
	"github.com/gofiber/fiber/v2"
)

type createDiseaseRecordRequest struct {
	DiseaseName     string     `json:"disease_name" validate:"required,max=255"`
	DiseaseCode     string     `json:"disease_code" validate:"max=50"`
	Severity        string     `json:"severity" validate:"required,oneof=mild moderate severe critical"`
	DiagnosisDate   time.Time  `json:"diagnosis_date" validate:"required"`
	Symptoms        []string   `json:"symptoms" validate:"max=30,dive,max=200"`
	CurrentStatus   string     `json:"current_status" validate:"max=255"`
	DoctorName      string     `json:"doctor_name" validate:"max=100"`
	HospitalName    string     `json:"hospital_name" validate:"max=255"`
	TreatmentMethod string     `json:"treatment_method" validate:"max=2000"`
	Medications     []string   `json:"medications" validate:"max=30,dive,max=200"`
	Precautions     string     `json:"precautions" validate:"max=2000"`
	Notes           string     `json:"notes" validate:"max=2000"`
}

func (handler *Handler) CreateDiseaseRecord(c *fiber.Ctx) error {
	var request createDiseaseRecordRequest
	if !handler.parseBody(c, &request) {
		return nil
	}

	record := models.DiseaseRecord{
		UserID:          handler.currentUser(c).ID,
		DiseaseName:     request.DiseaseName,
		DiseaseCode:     request.DiseaseCode,
		Severity:        request.Severity,
		DiagnosisDate:   request.DiagnosisDate,
		Symptoms:        request.Symptoms,
		CurrentStatus:   request.CurrentStatus,
		DoctorName:      request.DoctorName,
		HospitalName:    request.HospitalName,
		TreatmentMethod: request.TreatmentMethod,
		Medications:     request.Medications,
		Precautions:     request.Precautions,
		Notes:           request.Notes,
	}
	if err := handler.repos.DiseaseRecords.Create(&record); err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

func (handler *Handler) ListDiseaseRecords(c *fiber.Ctx) error {
	records, err := handler.repos.DiseaseRecords.List(
		handler.currentUser(c).ID,
		listOptions(c, "diagnosis_date"),
	)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(records)
}

func (handler *Handler) GetDiseaseRecord(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	record, err := handler.repos.DiseaseRecords.Get(handler.currentUser(c).ID, id)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(record)
}

// improvement_score is deliberately absent: it mirrors the latest
// progress log and never comes from the client.
var diseaseRecordColumns = map[string]string{
	"disease_name":     "disease_name",
	"disease_code":     "disease_code",
	"severity":         "severity",
	"diagnosis_date":   "diagnosis_date",
	"current_status":   "current_status",
	"doctor_name":      "doctor_name",
	"hospital_name":    "hospital_name",
	"treatment_method": "treatment_method",
	"precautions":      "precautions",
	"notes":            "notes",
}

var diseaseRecordRules = map[string]patchRule{
	"disease_name":     {kind: "string", tag: "max=255"},
	"disease_code":     {kind: "string", tag: "max=50"},
	"severity":         {kind: "string"},
	"current_status":   {kind: "string", tag: "max=255"},
	"doctor_name":      {kind: "string", tag: "max=100"},
	"hospital_name":    {kind: "string", tag: "max=255"},
	"treatment_method": {kind: "string", tag: "max=2000"},
	"precautions":      {kind: "string", tag: "max=2000"},
	"notes":            {kind: "string", tag: "max=2000"},
}

func (handler *Handler) UpdateDiseaseRecord(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	changes, ok := handler.patchChanges(c, diseaseRecordColumns, map[string]bool{"diagnosis_date": true}, diseaseRecordRules)
	if !ok {
		return nil
	}
	if severity, present := changes["severity"]; present {
		value, _ := severity.(string)
		if !models.KnownSeverity(value) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":  "validation failed",
				"fields": map[string]string{"severity": "oneof"},
			})
		}
	}

	record, err := handler.repos.DiseaseRecords.Update(handler.currentUser(c).ID, id, changes)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(record)
}

func (handler *Handler) DeleteDiseaseRecord(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	if err := handler.repos.DeleteDiseaseRecordCascade(handler.currentUser(c).ID, id); err != nil {
		return handler.respondRepoError(c, err)
	}
	return sendNoContent(c)
}

type createTreatmentPlanRequest struct {
	PlanName          string                 `json:"plan_name" validate:"required,max=255"`
	Duration          string                 `json:"duration" validate:"required,max=100"`
	StartDate         time.Time              `json:"start_date" validate:"required"`
	EndDate           time.Time              `json:"end_date" validate:"required"`
	Goals             []models.ChecklistItem `json:"goals" validate:"max=50"`
	Milestones        []string               `json:"milestones" validate:"max=50,dive,max=500"`
	DailyTasks        []string               `json:"daily_tasks" validate:"max=50,dive,max=500"`
	AIGenerated       bool                   `json:"ai_generated"`
	AIRecommendations string                 `json:"ai_recommendations" validate:"max=5000"`
}

func (handler *Handler) CreateTreatmentPlan(c *fiber.Ctx) error {
	diseaseID, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	ownerID := handler.currentUser(c).ID
	if err := handler.diseases.VerifyParent(ownerID, diseaseID); err != nil {
		return handler.respondRepoError(c, err)
	}

	var request createTreatmentPlanRequest
	if !handler.parseBody(c, &request) {
		return nil
	}

	plan := models.TreatmentPlan{
		DiseaseRecordID:      diseaseID,
		UserID:               ownerID,
		PlanName:             request.PlanName,
		Duration:             request.Duration,
		StartDate:            request.StartDate,
		EndDate:              request.EndDate,
		Goals:                request.Goals,
		Milestones:           request.Milestones,
		DailyTasks:           request.DailyTasks,
		CompletionPercentage: services.CompletionPercentage(request.Goals),
		IsActive:             true,
		AIGenerated:          request.AIGenerated,
		AIRecommendations:    request.AIRecommendations,
	}
	if err := handler.repos.TreatmentPlans.Create(&plan); err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(plan)
}

func (handler *Handler) ListTreatmentPlans(c *fiber.Ctx) error {
	diseaseID, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	ownerID := handler.currentUser(c).ID
	if err := handler.diseases.VerifyParent(ownerID, diseaseID); err != nil {
		return handler.respondRepoError(c, err)
	}

	plans, err := handler.repos.TreatmentPlans.List(ownerID, listOptions(c, "",
		db.FieldEquals("disease_record_id", diseaseID)))
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(plans)
}

type generateTreatmentPlanRequest struct {
	Duration           string   `json:"duration" validate:"required,oneof=3_months 6_months 12_months"`
	PatientPreferences string   `json:"patient_preferences" validate:"max=2000"`
	FocusAreas         []string `json:"focus_areas" validate:"max=20,dive,max=200"`
}

var planDurationDays = map[string]int{
	"3_months":  90,
	"6_months":  180,
	"12_months": 365,
}

// GenerateTreatmentPlan drafts a plan with the assistant and stores it
// under the disease record. Goals start unchecked, so the completion
// percentage of a fresh plan is always zero.
func (handler *Handler) GenerateTreatmentPlan(c *fiber.Ctx) error {
	diseaseID, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	ownerID := handler.currentUser(c).ID
	record, err := handler.repos.DiseaseRecords.Get(ownerID, diseaseID)
	if err != nil {
		return handler.respondRepoError(c, err)
	}

	var request generateTreatmentPlanRequest
	if !handler.parseBody(c, &request) {
		return nil
	}

	draft := handler.assistant.GenerateTreatmentPlan(c.UserContext(),
		record.DiseaseName, record.Severity, request.Duration,
		request.PatientPreferences, request.FocusAreas)

	goals := make([]models.ChecklistItem, 0, len(draft.Goals))
	for _, goal := range draft.Goals {
		goals = append(goals, models.ChecklistItem{Label: goal})
	}

	startDate := time.Now()
	plan := models.TreatmentPlan{
		DiseaseRecordID:   diseaseID,
		UserID:            ownerID,
		PlanName:          draft.PlanName,
		Duration:          request.Duration,
		StartDate:         startDate,
		EndDate:           startDate.AddDate(0, 0, planDurationDays[request.Duration]),
		Goals:             goals,
		Milestones:        draft.Milestones,
		DailyTasks:        draft.DailyTasks,
		IsActive:          true,
		AIGenerated:       true,
		AIRecommendations: draft.Recommendations,
	}
	if err := handler.repos.TreatmentPlans.Create(&plan); err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(plan)
}

type updateTreatmentPlanRequest struct {
	PlanName          *string                 `json:"plan_name" validate:"omitempty,max=255"`
	Duration          *string                 `json:"duration" validate:"omitempty,max=100"`
	StartDate         *time.Time              `json:"start_date"`
	EndDate           *time.Time              `json:"end_date"`
	Goals             *[]models.ChecklistItem `json:"goals" validate:"omitempty,max=50"`
	Milestones        *[]string               `json:"milestones" validate:"omitempty,max=50,dive,max=500"`
	DailyTasks        *[]string               `json:"daily_tasks" validate:"omitempty,max=50,dive,max=500"`
	IsActive          *bool                   `json:"is_active"`
	AIRecommendations *string                 `json:"ai_recommendations" validate:"omitempty,max=5000"`
}

// UpdateTreatmentPlan recomputes the completion percentage whenever
// the goal list changes.
func (handler *Handler) UpdateTreatmentPlan(c *fiber.Ctx) error {
	diseaseID, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	planID, ok := parseIDParam(c, "planID")
	if !ok {
		return nil
	}
	ownerID := handler.currentUser(c).ID

	plan, err := handler.repos.TreatmentPlans.Get(ownerID, planID)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	if plan.DiseaseRecordID != diseaseID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}

	var request updateTreatmentPlanRequest
	if !handler.parseBody(c, &request) {
		return nil
	}

	changes := map[string]any{}
	if request.PlanName != nil {
		changes["plan_name"] = *request.PlanName
	}
	if request.Duration != nil {
		changes["duration"] = *request.Duration
	}
	if request.StartDate != nil {
		changes["start_date"] = *request.StartDate
	}
	if request.EndDate != nil {
		changes["end_date"] = *request.EndDate
	}
	if request.Goals != nil {
		changes["goals"] = *request.Goals
		changes["completion_percentage"] = services.CompletionPercentage(*request.Goals)
	}
	if request.Milestones != nil {
		changes["milestones"] = *request.Milestones
	}
	if request.DailyTasks != nil {
		changes["daily_tasks"] = *request.DailyTasks
	}
	if request.IsActive != nil {
		changes["is_active"] = *request.IsActive
	}
	if request.AIRecommendations != nil {
		changes["ai_recommendations"] = *request.AIRecommendations
	}

	updated, err := handler.repos.TreatmentPlans.Update(ownerID, planID, changes)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(updated)
}

func (handler *Handler) DeleteTreatmentPlan(c *fiber.Ctx) error {
	diseaseID, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	planID, ok := parseIDParam(c, "planID")
	if !ok {
		return nil
	}
	ownerID := handler.currentUser(c).ID

	plan, err := handler.repos.TreatmentPlans.Get(ownerID, planID)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	if plan.DiseaseRecordID != diseaseID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}

	if err := handler.repos.TreatmentPlans.Delete(ownerID, planID); err != nil {
		return handler.respondRepoError(c, err)
	}
	return sendNoContent(c)
}

type createChecklistRequest struct {
	Title         string                 `json:"title" validate:"required,max=255"`
	Description   string                 `json:"description" validate:"max=2000"`
	ChecklistDate *time.Time             `json:"checklist_date"`
	Items         []models.ChecklistItem `json:"items" validate:"max=100"`
}

func (handler *Handler) CreateChecklist(c *fiber.Ctx) error {
	diseaseID, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	ownerID := handler.currentUser(c).ID
	if err := handler.diseases.VerifyParent(ownerID, diseaseID); err != nil {
		return handler.respondRepoError(c, err)
	}

	var request createChecklistRequest
	if !handler.parseBody(c, &request) {
		return nil
	}

	checklistDate := time.Now()
	if request.ChecklistDate != nil {
		checklistDate = *request.ChecklistDate
	}
	completed, total, isCompleted := services.ChecklistCompletion(request.Items)

	checklist := models.DiseaseChecklist{
		DiseaseRecordID: diseaseID,
		UserID:          ownerID,
		Title:           request.Title,
		Description:     request.Description,
		ChecklistDate:   checklistDate,
		Items:           request.Items,
		CompletedCount:  completed,
		TotalCount:      total,
		IsCompleted:     isCompleted,
	}
	if err := handler.repos.Checklists.Create(&checklist); err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(checklist)
}

func (handler *Handler) ListChecklists(c *fiber.Ctx) error {
	diseaseID, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	ownerID := handler.currentUser(c).ID
	if err := handler.diseases.VerifyParent(ownerID, diseaseID); err != nil {
		return handler.respondRepoError(c, err)
	}

	checklists, err := handler.repos.Checklists.List(ownerID, listOptions(c, "checklist_date",
		db.FieldEquals("disease_record_id", diseaseID)))
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(checklists)
}

type updateChecklistRequest struct {
	Title         *string                 `json:"title" validate:"omitempty,max=255"`
	Description   *string                 `json:"description" validate:"omitempty,max=2000"`
	ChecklistDate *time.Time              `json:"checklist_date"`
	Items         *[]models.ChecklistItem `json:"items" validate:"omitempty,max=100"`
}

// UpdateChecklist recomputes the completion counters whenever the item
// list changes; they are never accepted from the client.
func (handler *Handler) UpdateChecklist(c *fiber.Ctx) error {
	diseaseID, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	checklistID, ok := parseIDParam(c, "checklistID")
	if !ok {
		return nil
	}
	ownerID := handler.currentUser(c).ID

	checklist, err := handler.repos.Checklists.Get(ownerID, checklistID)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	if checklist.DiseaseRecordID != diseaseID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}

	var request updateChecklistRequest
	if !handler.parseBody(c, &request) {
		return nil
	}

	changes := map[string]any{}
	if request.Title != nil {
		changes["title"] = *request.Title
	}
	if request.Description != nil {
		changes["description"] = *request.Description
	}
	if request.ChecklistDate != nil {
		changes["checklist_date"] = *request.ChecklistDate
	}
	if request.Items != nil {
		completed, total, isCompleted := services.ChecklistCompletion(*request.Items)
		changes["items"] = *request.Items
		changes["completed_count"] = completed
		changes["total_count"] = total
		changes["is_completed"] = isCompleted
	}

	updated, err := handler.repos.Checklists.Update(ownerID, checklistID, changes)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(updated)
}

func (handler *Handler) DeleteChecklist(c *fiber.Ctx) error {
	diseaseID, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	checklistID, ok := parseIDParam(c, "checklistID")
	if !ok {
		return nil
	}
	ownerID := handler.currentUser(c).ID

	checklist, err := handler.repos.Checklists.Get(ownerID, checklistID)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	if checklist.DiseaseRecordID != diseaseID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}

	if err := handler.repos.Checklists.Delete(ownerID, checklistID); err != nil {
		return handler.respondRepoError(c, err)
	}
	return sendNoContent(c)
}

type createProgressLogRequest struct {
	LogDate          *time.Time `json:"log_date"`
	ImprovementScore float64    `json:"improvement_score" validate:"gte=0,lte=100"`
	PainLevel        *int       `json:"pain_level" validate:"omitempty,gte=0,lte=10"`
	ActivityLevel    string     `json:"activity_level" validate:"max=100"`
	EnergyLevel      *int       `json:"energy_level" validate:"omitempty,gte=0,lte=10"`
	Notes            string     `json:"notes" validate:"max=2000"`
}

func (handler *Handler) CreateProgressLog(c *fiber.Ctx) error {
	diseaseID, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	var request createProgressLogRequest
	if !handler.parseBody(c, &request) {
		return nil
	}

	logDate := time.Now()
	if request.LogDate != nil {
		logDate = *request.LogDate
	}

	progressLog := models.DiseaseProgressLog{
		DiseaseRecordID:  diseaseID,
		UserID:           handler.currentUser(c).ID,
		LogDate:          logDate,
		ImprovementScore: request.ImprovementScore,
		PainLevel:        request.PainLevel,
		ActivityLevel:    request.ActivityLevel,
		EnergyLevel:      request.EnergyLevel,
		Notes:            request.Notes,
	}
	if err := handler.diseases.AddProgressLog(handler.currentUser(c).ID, &progressLog); err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(progressLog)
}

func (handler *Handler) ListProgressLogs(c *fiber.Ctx) error {
	diseaseID, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	ownerID := handler.currentUser(c).ID
	if err := handler.diseases.VerifyParent(ownerID, diseaseID); err != nil {
		return handler.respondRepoError(c, err)
	}

	logs, err := handler.repos.ProgressLogs.List(ownerID, listOptions(c, "log_date",
		db.FieldEquals("disease_record_id", diseaseID)))
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(logs)
}

func (handler *Handler) ProgressStatistics(c *fiber.Ctx) error {
	diseaseID, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	statistics, err := handler.diseases.ProgressStatistics(
		handler.currentUser(c).ID, diseaseID, c.QueryInt("days", 30))
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(statistics)
}
