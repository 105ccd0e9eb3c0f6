package api

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/daon-health/vitalog/internal/ai"
	"github.com/daon-health/vitalog/internal/db"
	"github.com/daon-health/vitalog/internal/models"
	"github.com/daon-health/vitalog/internal/speech"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type transcribeRequest struct {
	AudioContent    string `json:"audio_content" validate:"required"`
	Language        string `json:"language" validate:"max=20"`
	Encoding        string `json:"encoding" validate:"max=30"`
	SampleRateHertz int    `json:"sample_rate_hertz" validate:"gte=0"`
}

func (handler *Handler) TranscribeAudio(c *fiber.Ctx) error {
	var request transcribeRequest
	if !handler.parseBody(c, &request) {
		return nil
	}

	audio, err := base64.StdEncoding.DecodeString(request.AudioContent)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "validation failed",
			"fields": map[string]string{"audio_content": "base64"},
		})
	}

	transcript, confidence, err := handler.transcriber.Transcribe(
		c.UserContext(), audio, request.Language, request.Encoding, request.SampleRateHertz)
	if err != nil {
		if errors.Is(err, speech.ErrTranscription) {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "음성 인식 서비스를 일시적으로 사용할 수 없습니다.",
			})
		}
		return handler.respondRepoError(c, err)
	}

	return c.JSON(fiber.Map{
		"transcript": transcript,
		"confidence": confidence,
	})
}

type analyzeVoiceRequest struct {
	Transcript string  `json:"transcript" validate:"required,max=4000"`
	Confidence float64 `json:"confidence" validate:"gte=0,lte=1"`
}

// AnalyzeVoice runs the emotion analysis over a transcript, stores the
// check-in and raises a notification when the result looks concerning.
func (handler *Handler) AnalyzeVoice(c *fiber.Ctx) error {
	var request analyzeVoiceRequest
	if !handler.parseBody(c, &request) {
		return nil
	}

	user := handler.currentUser(c)
	result := handler.emotions.AnalyzeText(c.UserContext(), request.Transcript)
	urgency := ai.ClassifyUrgencyByKeywords(request.Transcript)

	analysis := models.VoiceAnalysis{
		UserID:         user.ID,
		Transcript:     request.Transcript,
		Confidence:     request.Confidence,
		PrimaryEmotion: result.PrimaryEmotion,
		Sentiment:      result.Sentiment,
		Intensity:      result.Intensity,
		EmotionScores:  result.EmotionScores,
		Keywords:       result.Keywords,
		Analysis:       result.Analysis,
		UrgencyLevel:   urgency,
	}
	if err := handler.repos.VoiceAnalyses.Create(&analysis); err != nil {
		return handler.respondRepoError(c, err)
	}

	if urgency == ai.UrgencyEmergency || urgency == ai.UrgencyHigh ||
		(result.Sentiment == "negative" && result.Intensity >= 0.8) {
		notification := models.Notification{
			UserID: user.ID,
			Kind:   "voice_alert",
			Message: fmt.Sprintf("음성 분석에서 주의가 필요한 상태가 감지되었습니다 (감정: %s, 긴급도: %s).",
				result.PrimaryEmotion, urgency),
		}
		if err := handler.repos.Notifications.Create(&notification); err != nil {
			// The check-in itself is already stored.
			handler.logger.Warn("voice alert notification not stored", zap.Error(err))
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"analysis":     analysis,
		"emotion_icon": result.EmotionIcon,
	})
}

func (handler *Handler) ListVoiceAnalyses(c *fiber.Ctx) error {
	analyses, err := handler.repos.VoiceAnalyses.List(
		handler.currentUser(c).ID,
		listOptions(c, "created_at"),
	)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(analyses)
}

type createVoiceReminderRequest struct {
	ReminderType  string    `json:"reminder_type" validate:"required,oneof=medication meal exercise checkup mental_health"`
	Title         string    `json:"title" validate:"required,max=200"`
	TTSText       string    `json:"tts_text" validate:"required,max=2000"`
	ScheduledTime time.Time `json:"scheduled_time" validate:"required"`
	VoiceLanguage string    `json:"voice_language" validate:"max=10"`
	VoiceSpeed    *float64  `json:"voice_speed" validate:"omitempty,gte=0.5,lte=2"`
	RepeatEnabled bool      `json:"repeat_enabled"`
	RepeatPattern string    `json:"repeat_pattern" validate:"max=50"`
}

func (handler *Handler) CreateVoiceReminder(c *fiber.Ctx) error {
	var request createVoiceReminderRequest
	if !handler.parseBody(c, &request) {
		return nil
	}

	language := request.VoiceLanguage
	if language == "" {
		language = "ko-KR"
	}
	speed := 1.0
	if request.VoiceSpeed != nil {
		speed = *request.VoiceSpeed
	}

	reminder := models.VoiceReminder{
		UserID:        handler.currentUser(c).ID,
		ReminderType:  request.ReminderType,
		Title:         request.Title,
		TTSText:       request.TTSText,
		ScheduledTime: request.ScheduledTime,
		VoiceLanguage: language,
		VoiceSpeed:    speed,
		RepeatEnabled: request.RepeatEnabled,
		RepeatPattern: request.RepeatPattern,
		IsActive:      true,
	}
	if err := handler.repos.VoiceReminders.Create(&reminder); err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(reminder)
}

func (handler *Handler) ListVoiceReminders(c *fiber.Ctx) error {
	var filters []db.Filter
	if c.QueryBool("active_only", false) {
		filters = append(filters, db.FieldEquals("is_active", true))
	}

	// Upcoming reminders read soonest first.
	opts := listOptions(c, "", filters...)
	opts.Ascending = true

	reminders, err := handler.repos.VoiceReminders.List(handler.currentUser(c).ID, opts)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(reminders)
}

var voiceReminderColumns = map[string]string{
	"reminder_type":  "reminder_type",
	"title":          "title",
	"tts_text":       "tts_text",
	"scheduled_time": "scheduled_time",
	"voice_language": "voice_language",
	"voice_speed":    "voice_speed",
	"repeat_enabled": "repeat_enabled",
	"repeat_pattern": "repeat_pattern",
	"is_active":      "is_active",
}

var voiceReminderRules = map[string]patchRule{
	"reminder_type":  {kind: "string"},
	"title":          {kind: "string", tag: "max=200"},
	"tts_text":       {kind: "string", tag: "max=2000"},
	"voice_language": {kind: "string", tag: "max=10"},
	"voice_speed":    {kind: "number", tag: "gte=0.5,lte=2"},
	"repeat_enabled": {kind: "bool"},
	"repeat_pattern": {kind: "string", tag: "max=50"},
	"is_active":      {kind: "bool"},
}

func (handler *Handler) UpdateVoiceReminder(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	changes, ok := handler.patchChanges(c, voiceReminderColumns,
		map[string]bool{"scheduled_time": true}, voiceReminderRules)
	if !ok {
		return nil
	}
	if reminderType, present := changes["reminder_type"]; present {
		value, _ := reminderType.(string)
		if !models.KnownReminderType(value) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":  "validation failed",
				"fields": map[string]string{"reminder_type": "oneof"},
			})
		}
	}

	reminder, err := handler.repos.VoiceReminders.Update(handler.currentUser(c).ID, id, changes)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(reminder)
}

func (handler *Handler) DeleteVoiceReminder(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	if err := handler.repos.VoiceReminders.Delete(handler.currentUser(c).ID, id); err != nil {
		return handler.respondRepoError(c, err)
	}
	return sendNoContent(c)
}
