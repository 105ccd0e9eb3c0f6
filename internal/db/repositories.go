package db

import (
	"github.com/daon-health/vitalog/internal/models"
	"gorm.io/gorm"
)

// Repositories bundles every data-access object. Most collections
// page at 30, chat history at 50, and measurements order by their
// measurement timestamp rather than insertion time.
type Repositories struct {
	DB *gorm.DB

	Users *UserRepository

	HealthRecords      *OwnedRepository[models.HealthRecord]
	Medications        *OwnedRepository[models.Medication]
	MoodRecords        *OwnedRepository[models.MoodRecord]
	SleepRecords       *OwnedRepository[models.SleepRecord]
	Meals              *OwnedRepository[models.Meal]
	MentalHealthChecks *OwnedRepository[models.MentalHealthCheck]
	ChatMessages       *OwnedRepository[models.ChatMessage]
	MeditationSessions *OwnedRepository[models.MeditationSession]
	MusicSessions      *OwnedRepository[models.MusicSession]

	DiseaseRecords   *OwnedRepository[models.DiseaseRecord]
	TreatmentPlans   *OwnedRepository[models.TreatmentPlan]
	Checklists       *OwnedRepository[models.DiseaseChecklist]
	ProgressLogs     *OwnedRepository[models.DiseaseProgressLog]
	PregnancyRecords *OwnedRepository[models.PregnancyRecord]
	PrenatalCares    *OwnedRepository[models.PrenatalCare]
	PregnancyLogs    *OwnedRepository[models.PregnancyLog]
	PostpartumCares  *OwnedRepository[models.PostpartumCare]
	Children         *OwnedRepository[models.ChildProfile]
	GrowthRecords    *OwnedRepository[models.GrowthRecord]
	DevelopmentLogs  *OwnedRepository[models.DevelopmentLog]
	Vaccinations     *OwnedRepository[models.Vaccination]

	VoiceAnalyses  *OwnedRepository[models.VoiceAnalysis]
	VoiceReminders *OwnedRepository[models.VoiceReminder]
	Notifications  *OwnedRepository[models.Notification]
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		DB:    database,
		Users: NewUserRepository(database),

		HealthRecords:      NewOwnedRepository[models.HealthRecord](database, "measured_at", 30),
		Medications:        NewOwnedRepository[models.Medication](database, "created_at", 50),
		MoodRecords:        NewOwnedRepository[models.MoodRecord](database, "recorded_at", 30),
		SleepRecords:       NewOwnedRepository[models.SleepRecord](database, "sleep_start", 30),
		Meals:              NewOwnedRepository[models.Meal](database, "meal_date", 30),
		MentalHealthChecks: NewOwnedRepository[models.MentalHealthCheck](database, "created_at", 30),
		ChatMessages:       NewOwnedRepository[models.ChatMessage](database, "created_at", 50),
		MeditationSessions: NewOwnedRepository[models.MeditationSession](database, "created_at", 30),
		MusicSessions:      NewOwnedRepository[models.MusicSession](database, "created_at", 30),

		DiseaseRecords:   NewOwnedRepository[models.DiseaseRecord](database, "created_at", 20),
		TreatmentPlans:   NewOwnedRepository[models.TreatmentPlan](database, "created_at", 20),
		Checklists:       NewOwnedRepository[models.DiseaseChecklist](database, "checklist_date", 30),
		ProgressLogs:     NewOwnedRepository[models.DiseaseProgressLog](database, "log_date", 30),
		PregnancyRecords: NewOwnedRepository[models.PregnancyRecord](database, "created_at", 20),
		PrenatalCares:    NewOwnedRepository[models.PrenatalCare](database, "care_date", 30),
		PregnancyLogs:    NewOwnedRepository[models.PregnancyLog](database, "log_date", 30),
		PostpartumCares:  NewOwnedRepository[models.PostpartumCare](database, "created_at", 20),
		Children:         NewOwnedRepository[models.ChildProfile](database, "created_at", 20),
		GrowthRecords:    NewOwnedRepository[models.GrowthRecord](database, "measurement_date", 30),
		DevelopmentLogs:  NewOwnedRepository[models.DevelopmentLog](database, "log_date", 30),
		Vaccinations:     NewOwnedRepository[models.Vaccination](database, "created_at", 50),

		VoiceAnalyses:  NewOwnedRepository[models.VoiceAnalysis](database, "created_at", 30),
		VoiceReminders: NewOwnedRepository[models.VoiceReminder](database, "scheduled_time", 50),
		Notifications:  NewOwnedRepository[models.Notification](database, "created_at", 50),
	}
}

// DeleteDiseaseRecordCascade removes a disease record and its plans,
// checklists and progress logs in one transaction.
func (repos *Repositories) DeleteDiseaseRecordCascade(ownerID uint, recordID uint) error {
	return repos.DB.Transaction(func(tx *gorm.DB) error {
		if err := repos.DiseaseRecords.WithTx(tx).Delete(ownerID, recordID); err != nil {
			return err
		}
		for _, child := range []any{
			&models.TreatmentPlan{}, &models.DiseaseChecklist{}, &models.DiseaseProgressLog{},
		} {
			if err := tx.Where("disease_record_id = ? AND user_id = ?", recordID, ownerID).Delete(child).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeletePregnancyRecordCascade removes a pregnancy record and its
// prenatal care entries and day logs in one transaction.
func (repos *Repositories) DeletePregnancyRecordCascade(ownerID uint, recordID uint) error {
	return repos.DB.Transaction(func(tx *gorm.DB) error {
		if err := repos.PregnancyRecords.WithTx(tx).Delete(ownerID, recordID); err != nil {
			return err
		}
		for _, child := range []any{&models.PrenatalCare{}, &models.PregnancyLog{}} {
			if err := tx.Where("pregnancy_record_id = ? AND user_id = ?", recordID, ownerID).Delete(child).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteChildCascade removes a child profile with its growth records,
// development logs and vaccinations in one transaction.
func (repos *Repositories) DeleteChildCascade(ownerID uint, childID uint) error {
	return repos.DB.Transaction(func(tx *gorm.DB) error {
		if err := repos.Children.WithTx(tx).Delete(ownerID, childID); err != nil {
			return err
		}
		for _, child := range []any{&models.GrowthRecord{}, &models.DevelopmentLog{}, &models.Vaccination{}} {
			if err := tx.Where("child_id = ? AND user_id = ?", childID, ownerID).Delete(child).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
