package api

import (
	"github.com/daon-health/vitalog/internal/models"
	"github.com/gofiber/fiber/v2"
)

type createMentalHealthRequest struct {
	StressLevel  *int     `json:"stress_level" validate:"omitempty,gte=1,lte=10"`
	AnxietyLevel *int     `json:"anxiety_level" validate:"omitempty,gte=1,lte=10"`
	MoodLevel    *int     `json:"mood_level" validate:"omitempty,gte=1,lte=10"`
	SleepQuality *int     `json:"sleep_quality" validate:"omitempty,gte=1,lte=10"`
	Symptoms     []string `json:"symptoms" validate:"max=20,dive,max=100"`
	Notes        string   `json:"notes" validate:"max=2000"`
}

func (handler *Handler) CreateMentalHealthCheck(c *fiber.Ctx) error {
	var request createMentalHealthRequest
	if !handler.parseBody(c, &request) {
		return nil
	}

	assessment := handler.assistant.MentalHealthAssessment(
		c.UserContext(),
		request.StressLevel, request.AnxietyLevel, request.MoodLevel, request.SleepQuality,
		request.Notes,
	)

	check := models.MentalHealthCheck{
		UserID:          handler.currentUser(c).ID,
		StressLevel:     request.StressLevel,
		AnxietyLevel:    request.AnxietyLevel,
		MoodLevel:       request.MoodLevel,
		SleepQuality:    request.SleepQuality,
		Symptoms:        request.Symptoms,
		Notes:           request.Notes,
		AIAssessment:    assessment.Assessment,
		Recommendations: assessment.Recommendations,
	}
	if err := handler.repos.MentalHealthChecks.Create(&check); err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(check)
}

func (handler *Handler) ListMentalHealthChecks(c *fiber.Ctx) error {
	checks, err := handler.repos.MentalHealthChecks.List(
		handler.currentUser(c).ID,
		listOptions(c, "created_at"),
	)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(checks)
}

func (handler *Handler) GetMentalHealthCheck(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	check, err := handler.repos.MentalHealthChecks.Get(handler.currentUser(c).ID, id)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(check)
}
