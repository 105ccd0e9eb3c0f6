package api

import (
	"github.com/daon-health/vitalog/internal/ai"
	"github.com/daon-health/vitalog/internal/auth"
	"github.com/daon-health/vitalog/internal/db"
	"github.com/daon-health/vitalog/internal/services"
	"github.com/daon-health/vitalog/internal/speech"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const contextUserKey = "current_user"

// Handler carries every dependency the routes need. All collaborators
// are constructed at startup and injected here; nothing is
// lazy-initialized per request.
type Handler struct {
	repos       *db.Repositories
	tokens      *auth.TokenManager
	validate    *validator.Validate
	assistant   *ai.Assistant
	emotions    *ai.EmotionAnalyzer
	transcriber speech.Transcriber
	diseases    *services.DiseaseService
	logger      *zap.Logger
}

func NewHandler(
	database *gorm.DB,
	tokens *auth.TokenManager,
	assistant *ai.Assistant,
	emotions *ai.EmotionAnalyzer,
	transcriber speech.Transcriber,
	logger *zap.Logger,
) *Handler {
	repos := db.NewRepositories(database)
	return &Handler{
		repos:       repos,
		tokens:      tokens,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		assistant:   assistant,
		emotions:    emotions,
		transcriber: transcriber,
		diseases:    services.NewDiseaseService(repos),
		logger:      logger,
	}
}
