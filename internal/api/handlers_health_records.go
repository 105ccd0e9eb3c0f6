package api

import (
	"time"

	"github.com/daon-health/vitalog/internal/db"
	"github.com/daon-health/vitalog/internal/models"
	"github.com/gofiber/fiber/v2"
)

type createHealthRecordRequest struct {
	RecordType string     `json:"record_type" validate:"required"`
	Value      float64    `json:"value" validate:"required"`
	Unit       string     `json:"unit" validate:"required,max=30"`
	Systolic   *float64   `json:"systolic"`
	Diastolic  *float64   `json:"diastolic"`
	Notes      string     `json:"notes" validate:"max=2000"`
	MeasuredAt *time.Time `json:"measured_at"`
}

func (handler *Handler) CreateHealthRecord(c *fiber.Ctx) error {
	var request createHealthRecordRequest
	if !handler.parseBody(c, &request) {
		return nil
	}

	recordType := request.RecordType
	if !models.KnownRecordType(recordType) {
		recordType = models.RecordOther
	}
	measuredAt := time.Now()
	if request.MeasuredAt != nil {
		measuredAt = *request.MeasuredAt
	}

	record := models.HealthRecord{
		UserID:     handler.currentUser(c).ID,
		RecordType: recordType,
		Value:      request.Value,
		Unit:       request.Unit,
		Systolic:   request.Systolic,
		Diastolic:  request.Diastolic,
		Notes:      request.Notes,
		MeasuredAt: measuredAt,
	}
	if err := handler.repos.HealthRecords.Create(&record); err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

func (handler *Handler) ListHealthRecords(c *fiber.Ctx) error {
	var filters []db.Filter
	if recordType := c.Query("record_type"); recordType != "" {
		filters = append(filters, db.FieldEquals("record_type", recordType))
	}

	records, err := handler.repos.HealthRecords.List(
		handler.currentUser(c).ID,
		listOptions(c, "measured_at", filters...),
	)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(records)
}

func (handler *Handler) GetHealthRecord(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	record, err := handler.repos.HealthRecords.Get(handler.currentUser(c).ID, id)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(record)
}

var healthRecordColumns = map[string]string{
	"value":       "value",
	"unit":        "unit",
	"systolic":    "systolic",
	"diastolic":   "diastolic",
	"notes":       "notes",
	"measured_at": "measured_at",
}

var healthRecordRules = map[string]patchRule{
	"value":     {kind: "number"},
	"unit":      {kind: "string", tag: "max=30"},
	"systolic":  {kind: "number"},
	"diastolic": {kind: "number"},
	"notes":     {kind: "string", tag: "max=2000"},
}

func (handler *Handler) UpdateHealthRecord(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	changes, ok := handler.patchChanges(c, healthRecordColumns, map[string]bool{"measured_at": true}, healthRecordRules)
	if !ok {
		return nil
	}

	record, err := handler.repos.HealthRecords.Update(handler.currentUser(c).ID, id, changes)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(record)
}

func (handler *Handler) DeleteHealthRecord(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	if err := handler.repos.HealthRecords.Delete(handler.currentUser(c).ID, id); err != nil {
		return handler.respondRepoError(c, err)
	}
	return sendNoContent(c)
}
