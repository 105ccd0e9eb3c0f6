package api

import (
	"time"

	"github.com/daon-health/vitalog/internal/db"
	"github.com/daon-health/vitalog/internal/models"
	"github.com/daon-health/vitalog/internal/services"
	"github.com/gofiber/fiber/v2"
)

type createMoodRecordRequest struct {
	MoodLevel     string     `json:"mood_level" validate:"required"`
	MoodIntensity int        `json:"mood_intensity" validate:"required,gte=1,lte=10"`
	Note          string     `json:"note" validate:"max=2000"`
	Activities    string     `json:"activities" validate:"max=1000"`
	Triggers      string     `json:"triggers" validate:"max=1000"`
	RecordedAt    *time.Time `json:"recorded_at"`
}

func (handler *Handler) CreateMoodRecord(c *fiber.Ctx) error {
	var request createMoodRecordRequest
	if !handler.parseBody(c, &request) {
		return nil
	}
	if !models.KnownMoodLevel(request.MoodLevel) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "validation failed",
			"fields": map[string]string{"mood_level": "oneof"},
		})
	}

	recordedAt := time.Now()
	if request.RecordedAt != nil {
		recordedAt = *request.RecordedAt
	}

	insight := handler.assistant.MoodInsight(c.UserContext(), request.MoodLevel, request.MoodIntensity, request.Note)

	record := models.MoodRecord{
		UserID:        handler.currentUser(c).ID,
		MoodLevel:     request.MoodLevel,
		MoodIntensity: request.MoodIntensity,
		Note:          request.Note,
		Activities:    request.Activities,
		Triggers:      request.Triggers,
		AIAnalysis:    insight.Assessment,
		AIAdvice:      insight.Recommendations,
		RecordedAt:    recordedAt,
	}
	if err := handler.repos.MoodRecords.Create(&record); err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

func (handler *Handler) ListMoodRecords(c *fiber.Ctx) error {
	records, err := handler.repos.MoodRecords.List(
		handler.currentUser(c).ID,
		listOptions(c, "recorded_at"),
	)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(records)
}

func (handler *Handler) MoodStats(c *fiber.Ctx) error {
	days := c.QueryInt("days", 30)
	if days <= 0 {
		days = 30
	}

	now := time.Now()
	records, err := handler.repos.MoodRecords.List(handler.currentUser(c).ID, db.ListOptions{
		Filters: []db.Filter{db.DateFrom("recorded_at", now.AddDate(0, 0, -days))},
		Limit:   200,
	})
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(services.ComputeMoodStats(records, now))
}

func (handler *Handler) GetMoodRecord(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	record, err := handler.repos.MoodRecords.Get(handler.currentUser(c).ID, id)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(record)
}

func (handler *Handler) DeleteMoodRecord(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	if err := handler.repos.MoodRecords.Delete(handler.currentUser(c).ID, id); err != nil {
		return handler.respondRepoError(c, err)
	}
	return sendNoContent(c)
}
