package db

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/daon-health/vitalog/internal/models"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenSQLite opens (creating if missing) the database and brings the
// schema up to date.
func OpenSQLite(dbPath string) (*gorm.DB, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", dbPath)
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := migrate(database); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return database, nil
}

func migrate(database *gorm.DB) error {
	return database.AutoMigrate(
		&models.User{},
		&models.HealthRecord{},
		&models.Medication{},
		&models.MoodRecord{},
		&models.SleepRecord{},
		&models.Meal{},
		&models.MentalHealthCheck{},
		&models.ChatMessage{},
		&models.MeditationSession{},
		&models.MusicSession{},
		&models.DiseaseRecord{},
		&models.TreatmentPlan{},
		&models.DiseaseChecklist{},
		&models.DiseaseProgressLog{},
		&models.PregnancyRecord{},
		&models.PrenatalCare{},
		&models.PregnancyLog{},
		&models.PostpartumCare{},
		&models.ChildProfile{},
		&models.GrowthRecord{},
		&models.DevelopmentLog{},
		&models.Vaccination{},
		&models.VoiceAnalysis{},
		&models.VoiceReminder{},
		&models.Notification{},
	)
}
