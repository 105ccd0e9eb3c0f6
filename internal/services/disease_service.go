package services

import (
	"math"
	"time"

	"github.com/daon-health/vitalog/internal/db"
	"github.com/daon-health/vitalog/internal/models"
	"gorm.io/gorm"
)

// DiseaseService owns the disease aggregate invariants: children are
// only created under a parent the caller owns, and the parent's
// derived improvement score moves in the same transaction as the
// progress log that changes it.
type DiseaseService struct {
	repos *db.Repositories
}

func NewDiseaseService(repos *db.Repositories) *DiseaseService {
	return &DiseaseService{repos: repos}
}

// VerifyParent confirms the disease record exists under this owner.
// Absent and foreign-owned parents are both db.ErrNotFound.
func (service *DiseaseService) VerifyParent(ownerID uint, diseaseRecordID uint) error {
	_, err := service.repos.DiseaseRecords.Get(ownerID, diseaseRecordID)
	return err
}

// AddProgressLog inserts the log and mirrors its score onto the
// parent record atomically.
func (service *DiseaseService) AddProgressLog(ownerID uint, log *models.DiseaseProgressLog) error {
	if err := service.VerifyParent(ownerID, log.DiseaseRecordID); err != nil {
		return err
	}

	return service.repos.DB.Transaction(func(tx *gorm.DB) error {
		if err := service.repos.ProgressLogs.WithTx(tx).Create(log); err != nil {
			return err
		}
		return tx.Model(&models.DiseaseRecord{}).
			Where("id = ? AND user_id = ?", log.DiseaseRecordID, ownerID).
			Update("improvement_score", log.ImprovementScore).Error
	})
}

// ProgressStatistics summarizes a disease record's score history over
// the trailing window.
type ProgressStatistics struct {
	Count              int          `json:"count"`
	AverageImprovement float64      `json:"average_improvement"`
	Trend              string       `json:"trend"`
	LatestScore        float64      `json:"latest_score"`
	ScoresHistory      []ScorePoint `json:"scores_history"`
}

type ScorePoint struct {
	Date  time.Time `json:"date"`
	Score float64   `json:"score"`
}

// progressTrendThreshold is the latest-vs-mean gap on the 0-100
// improvement scale that counts as a real move.
const progressTrendThreshold = 10

func (service *DiseaseService) ProgressStatistics(ownerID uint, diseaseRecordID uint, days int) (ProgressStatistics, error) {
	if err := service.VerifyParent(ownerID, diseaseRecordID); err != nil {
		return ProgressStatistics{}, err
	}
	if days <= 0 {
		days = 30
	}

	logs, err := service.repos.ProgressLogs.List(ownerID, db.ListOptions{
		Filters: []db.Filter{
			db.FieldEquals("disease_record_id", diseaseRecordID),
			db.DateFrom("log_date", time.Now().AddDate(0, 0, -days)),
		},
		Limit: 200,
	})
	if err != nil {
		return ProgressStatistics{}, err
	}
	if len(logs) == 0 {
		return ProgressStatistics{Trend: TrendStable, ScoresHistory: []ScorePoint{}}, nil
	}

	// List returns newest first; statistics read oldest to latest.
	scores := make([]float64, 0, len(logs))
	history := make([]ScorePoint, 0, len(logs))
	var sum float64
	for index := len(logs) - 1; index >= 0; index-- {
		log := logs[index]
		scores = append(scores, log.ImprovementScore)
		history = append(history, ScorePoint{Date: log.LogDate, Score: log.ImprovementScore})
		sum += log.ImprovementScore
	}

	return ProgressStatistics{
		Count:              len(scores),
		AverageImprovement: math.Round(sum/float64(len(scores))*100) / 100,
		Trend:              ClassifyTrend(scores, progressTrendThreshold),
		LatestScore:        scores[len(scores)-1],
		ScoresHistory:      history,
	}, nil
}
