package api

import (
	"time"

	"github.com/daon-health/vitalog/internal/db"
	"github.com/daon-health/vitalog/internal/models"
	"github.com/daon-health/vitalog/internal/services"
	"github.com/gofiber/fiber/v2"
)

type createSleepRecordRequest struct {
	SleepStart       time.Time `json:"sleep_start" validate:"required"`
	SleepEnd         time.Time `json:"sleep_end" validate:"required"`
	SleepQuality     int       `json:"sleep_quality" validate:"required,gte=1,lte=10"`
	DeepSleepHours   *float64  `json:"deep_sleep_hours" validate:"omitempty,gte=0"`
	RemSleepHours    *float64  `json:"rem_sleep_hours" validate:"omitempty,gte=0"`
	AwakeCount       int       `json:"awake_count" validate:"gte=0"`
	SleepEnvironment string    `json:"sleep_environment" validate:"max=255"`
	RoomTemperature  *float64  `json:"room_temperature"`
	MoodBefore       string    `json:"mood_before" validate:"max=50"`
	MoodAfter        string    `json:"mood_after" validate:"max=50"`
	Notes            string    `json:"notes" validate:"max=2000"`
}

func (handler *Handler) CreateSleepRecord(c *fiber.Ctx) error {
	var request createSleepRecordRequest
	if !handler.parseBody(c, &request) {
		return nil
	}
	if !request.SleepEnd.After(request.SleepStart) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "validation failed",
			"fields": map[string]string{"sleep_end": "gtfield"},
		})
	}

	duration := services.SleepDurationHours(request.SleepStart, request.SleepEnd)
	analysis := handler.assistant.SleepAnalysis(c.UserContext(), duration, request.SleepQuality, request.Notes)

	record := models.SleepRecord{
		UserID:            handler.currentUser(c).ID,
		SleepStart:        request.SleepStart,
		SleepEnd:          request.SleepEnd,
		DurationHours:     duration,
		SleepQuality:      request.SleepQuality,
		DeepSleepHours:    request.DeepSleepHours,
		RemSleepHours:     request.RemSleepHours,
		AwakeCount:        request.AwakeCount,
		SleepEnvironment:  request.SleepEnvironment,
		RoomTemperature:   request.RoomTemperature,
		MoodBefore:        request.MoodBefore,
		MoodAfter:         request.MoodAfter,
		Notes:             request.Notes,
		AIAnalysis:        analysis.Assessment,
		AIRecommendations: analysis.Recommendations,
	}
	if err := handler.repos.SleepRecords.Create(&record); err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

func (handler *Handler) ListSleepRecords(c *fiber.Ctx) error {
	records, err := handler.repos.SleepRecords.List(
		handler.currentUser(c).ID,
		listOptions(c, "sleep_start"),
	)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(records)
}

func (handler *Handler) SleepStatistics(c *fiber.Ctx) error {
	days := c.QueryInt("days", 7)
	if days <= 0 {
		days = 7
	}

	records, err := handler.repos.SleepRecords.List(handler.currentUser(c).ID, db.ListOptions{
		Filters: []db.Filter{db.DateFrom("sleep_start", time.Now().AddDate(0, 0, -days))},
		Limit:   200,
	})
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(services.ComputeSleepStats(records))
}

func (handler *Handler) GetSleepRecord(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	record, err := handler.repos.SleepRecords.Get(handler.currentUser(c).ID, id)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(record)
}

func (handler *Handler) DeleteSleepRecord(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	if err := handler.repos.SleepRecords.Delete(handler.currentUser(c).ID, id); err != nil {
		return handler.respondRepoError(c, err)
	}
	return sendNoContent(c)
}
