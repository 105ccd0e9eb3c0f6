package api

import (
	"github.com/daon-health/vitalog/internal/models"
	"github.com/gofiber/fiber/v2"
)

type createMeditationSessionRequest struct {
	SessionType     string `json:"session_type" validate:"required,max=100"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,gte=1,lte=600"`
	MoodBefore      string `json:"mood_before" validate:"max=50"`
	MoodAfter       string `json:"mood_after" validate:"max=50"`
	Notes           string `json:"notes" validate:"max=2000"`
}

func (handler *Handler) CreateMeditationSession(c *fiber.Ctx) error {
	var request createMeditationSessionRequest
	if !handler.parseBody(c, &request) {
		return nil
	}

	session := models.MeditationSession{
		UserID:          handler.currentUser(c).ID,
		SessionType:     request.SessionType,
		DurationMinutes: request.DurationMinutes,
		MoodBefore:      request.MoodBefore,
		MoodAfter:       request.MoodAfter,
		Notes:           request.Notes,
	}
	if err := handler.repos.MeditationSessions.Create(&session); err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

func (handler *Handler) ListMeditationSessions(c *fiber.Ctx) error {
	sessions, err := handler.repos.MeditationSessions.List(
		handler.currentUser(c).ID,
		listOptions(c, "created_at"),
	)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(sessions)
}

func (handler *Handler) DeleteMeditationSession(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	if err := handler.repos.MeditationSessions.Delete(handler.currentUser(c).ID, id); err != nil {
		return handler.respondRepoError(c, err)
	}
	return sendNoContent(c)
}

type createMusicSessionRequest struct {
	TrackTitle      string `json:"track_title" validate:"required,max=255"`
	Genre           string `json:"genre" validate:"max=100"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,gte=1,lte=600"`
	MoodBefore      string `json:"mood_before" validate:"max=50"`
	MoodAfter       string `json:"mood_after" validate:"max=50"`
}

func (handler *Handler) CreateMusicSession(c *fiber.Ctx) error {
	var request createMusicSessionRequest
	if !handler.parseBody(c, &request) {
		return nil
	}

	session := models.MusicSession{
		UserID:          handler.currentUser(c).ID,
		TrackTitle:      request.TrackTitle,
		Genre:           request.Genre,
		DurationMinutes: request.DurationMinutes,
		MoodBefore:      request.MoodBefore,
		MoodAfter:       request.MoodAfter,
	}
	if err := handler.repos.MusicSessions.Create(&session); err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

func (handler *Handler) ListMusicSessions(c *fiber.Ctx) error {
	sessions, err := handler.repos.MusicSessions.List(
		handler.currentUser(c).ID,
		listOptions(c, "created_at"),
	)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(sessions)
}

func (handler *Handler) DeleteMusicSession(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	if err := handler.repos.MusicSessions.Delete(handler.currentUser(c).ID, id); err != nil {
		return handler.respondRepoError(c, err)
	}
	return sendNoContent(c)
}
