package api

import (
	"github.com/daon-health/vitalog/internal/ai"
	"github.com/daon-health/vitalog/internal/db"
	"github.com/daon-health/vitalog/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type symptomCheckRequest struct {
	Message   string `json:"message" validate:"required,max=4000"`
	SessionID string `json:"session_id" validate:"omitempty,max=64"`
}

// SymptomCheck is the one AI flow whose provider failures reach the
// client. The user turn is only persisted once the assistant turn
// succeeded, so a failed call leaves no half-conversation behind.
func (handler *Handler) SymptomCheck(c *fiber.Ctx) error {
	var request symptomCheckRequest
	if !handler.parseBody(c, &request) {
		return nil
	}

	user := handler.currentUser(c)
	sessionID := request.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	reply, err := handler.assistant.SymptomCheck(c.UserContext(), request.Message, ai.UserContext{
		Age:               user.Age,
		Gender:            user.Gender,
		ChronicConditions: user.ChronicConditions,
		Allergies:         user.Allergies,
	})
	if err != nil {
		handler.logger.Error("symptom check provider failure", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "AI 상담 서비스를 일시적으로 사용할 수 없습니다. 잠시 후 다시 시도해주세요.",
		})
	}

	userTurn := models.ChatMessage{
		UserID:    user.ID,
		ChatType:  models.ChatTypeSymptom,
		SessionID: sessionID,
		Role:      models.ChatRoleUser,
		Message:   request.Message,
	}
	if err := handler.repos.ChatMessages.Create(&userTurn); err != nil {
		return handler.respondRepoError(c, err)
	}

	assistantTurn := models.ChatMessage{
		UserID:          user.ID,
		ChatType:        models.ChatTypeSymptom,
		SessionID:       sessionID,
		Role:            models.ChatRoleAssistant,
		Message:         reply.Response,
		UrgencyLevel:    reply.UrgencyLevel,
		SuggestedAction: reply.SuggestedAction,
	}
	if err := handler.repos.ChatMessages.Create(&assistantTurn); err != nil {
		return handler.respondRepoError(c, err)
	}

	return c.JSON(fiber.Map{
		"session_id":       sessionID,
		"response":         reply.Response,
		"urgency_level":    reply.UrgencyLevel,
		"suggested_action": reply.SuggestedAction,
	})
}

func (handler *Handler) ChatHistory(c *fiber.Ctx) error {
	var filters []db.Filter
	if sessionID := c.Query("session_id"); sessionID != "" {
		filters = append(filters, db.FieldEquals("session_id", sessionID))
	}

	// A transcript reads oldest to newest.
	opts := listOptions(c, "", filters...)
	opts.Ascending = true

	messages, err := handler.repos.ChatMessages.List(
		handler.currentUser(c).ID,
		opts,
	)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(messages)
}
