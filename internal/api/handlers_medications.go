package api

import (
	"time"

	"github.com/daon-health/vitalog/internal/db"
	"github.com/daon-health/vitalog/internal/models"
	"github.com/gofiber/fiber/v2"
)

type createMedicationRequest struct {
	MedicationName  string     `json:"medication_name" validate:"required,max=255"`
	Dosage          string     `json:"dosage" validate:"required,max=100"`
	Frequency       string     `json:"frequency" validate:"required,max=100"`
	TimeMorning     string     `json:"time_morning" validate:"max=10"`
	TimeAfternoon   string     `json:"time_afternoon" validate:"max=10"`
	TimeEvening     string     `json:"time_evening" validate:"max=10"`
	StartDate       time.Time  `json:"start_date" validate:"required"`
	EndDate         *time.Time `json:"end_date"`
	ReminderEnabled *bool      `json:"reminder_enabled"`
	Notes           string     `json:"notes" validate:"max=2000"`
}

func (handler *Handler) CreateMedication(c *fiber.Ctx) error {
	var request createMedicationRequest
	if !handler.parseBody(c, &request) {
		return nil
	}

	reminder := true
	if request.ReminderEnabled != nil {
		reminder = *request.ReminderEnabled
	}

	medication := models.Medication{
		UserID:          handler.currentUser(c).ID,
		MedicationName:  request.MedicationName,
		Dosage:          request.Dosage,
		Frequency:       request.Frequency,
		TimeMorning:     request.TimeMorning,
		TimeAfternoon:   request.TimeAfternoon,
		TimeEvening:     request.TimeEvening,
		StartDate:       request.StartDate,
		EndDate:         request.EndDate,
		ReminderEnabled: reminder,
		Notes:           request.Notes,
		IsActive:        true,
	}
	if err := handler.repos.Medications.Create(&medication); err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(medication)
}

func (handler *Handler) ListMedications(c *fiber.Ctx) error {
	var filters []db.Filter
	// active_only defaults to true.
	if c.QueryBool("active_only", true) {
		filters = append(filters, db.FieldEquals("is_active", true))
	}

	medications, err := handler.repos.Medications.List(
		handler.currentUser(c).ID,
		listOptions(c, "", filters...),
	)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(medications)
}

func (handler *Handler) GetMedication(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	medication, err := handler.repos.Medications.Get(handler.currentUser(c).ID, id)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(medication)
}

var medicationColumns = map[string]string{
	"medication_name":  "medication_name",
	"dosage":           "dosage",
	"frequency":        "frequency",
	"time_morning":     "time_morning",
	"time_afternoon":   "time_afternoon",
	"time_evening":     "time_evening",
	"start_date":       "start_date",
	"end_date":         "end_date",
	"reminder_enabled": "reminder_enabled",
	"notes":            "notes",
	"is_active":        "is_active",
}

var medicationRules = map[string]patchRule{
	"medication_name":  {kind: "string", tag: "max=255"},
	"dosage":           {kind: "string", tag: "max=100"},
	"frequency":        {kind: "string", tag: "max=100"},
	"time_morning":     {kind: "string", tag: "max=10"},
	"time_afternoon":   {kind: "string", tag: "max=10"},
	"time_evening":     {kind: "string", tag: "max=10"},
	"reminder_enabled": {kind: "bool"},
	"notes":            {kind: "string", tag: "max=2000"},
	"is_active":        {kind: "bool"},
}

func (handler *Handler) UpdateMedication(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	changes, ok := handler.patchChanges(c, medicationColumns, map[string]bool{"start_date": true, "end_date": true}, medicationRules)
	if !ok {
		return nil
	}

	medication, err := handler.repos.Medications.Update(handler.currentUser(c).ID, id, changes)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(medication)
}

// DeactivateMedication soft-deletes: the row stays, IsActive flips.
// Dose history must survive deletion, so this entity never hard
// deletes.
func (handler *Handler) DeactivateMedication(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	_, err := handler.repos.Medications.Update(handler.currentUser(c).ID, id, map[string]any{"is_active": false})
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return sendNoContent(c)
}
