package services

import (
	"math"
	"time"

	"github.com/daon-health/vitalog/internal/models"
)

const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

// BMI computes weight(kg) / height(m)^2 rounded to two decimals.
// Returns 0 for non-positive inputs.
func BMI(weightKg float64, heightCm float64) float64 {
	if weightKg <= 0 || heightCm <= 0 {
		return 0
	}
	meters := heightCm / 100
	return math.Round(weightKg/(meters*meters)*100) / 100
}

// ClassifyTrend compares the latest score against the mean of the
// whole window. The threshold is caller-supplied (disease progress
// statistics use 10 on a 0-100 scale).
func ClassifyTrend(scores []float64, threshold float64) string {
	if len(scores) == 0 {
		return TrendStable
	}
	var sum float64
	for _, score := range scores {
		sum += score
	}
	mean := sum / float64(len(scores))
	latest := scores[len(scores)-1]

	switch {
	case latest > mean+threshold:
		return TrendImproving
	case latest < mean-threshold:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// RiskThreshold is one row of an ordered screening table: scores at
// or above Score classify as Level. Tables are ordered highest
// threshold first so they read the way the instrument is published.
type RiskThreshold struct {
	Score int
	Level string
}

// PostpartumDepressionTable is the screening instrument used for
// postpartum checks (EPDS-style: >=13 high, >=10 medium).
var PostpartumDepressionTable = []RiskThreshold{
	{Score: 13, Level: models.DepressionRiskHigh},
	{Score: 10, Level: models.DepressionRiskMedium},
}

// ClassifyRisk walks the ordered table and returns the first level
// whose threshold the score meets, defaulting to low.
func ClassifyRisk(score int, table []RiskThreshold) string {
	for _, row := range table {
		if score >= row.Score {
			return row.Level
		}
	}
	return models.DepressionRiskLow
}

// ChecklistCompletion recomputes the derived counters for a checklist
// or goal list. An empty list is never completed.
func ChecklistCompletion(items []models.ChecklistItem) (completed int, total int, isCompleted bool) {
	total = len(items)
	for _, item := range items {
		if item.Completed {
			completed++
		}
	}
	return completed, total, completed == total && total > 0
}

// CompletionPercentage is the checked share of a goal list, rounded
// to two decimals. Empty lists are 0%.
func CompletionPercentage(items []models.ChecklistItem) float64 {
	completed, total, _ := ChecklistCompletion(items)
	if total == 0 {
		return 0
	}
	return math.Round(float64(completed)/float64(total)*10000) / 100
}

// AgeInMonths is floor(days/30); calendar months are deliberately
// not used.
func AgeInMonths(birthDate time.Time, today time.Time) int {
	if today.Before(birthDate) {
		return 0
	}
	days := today.Sub(birthDate).Hours() / 24
	return int(math.Floor(days / 30))
}

// DevelopmentalStage buckets an age in months by fixed breakpoints.
func DevelopmentalStage(ageMonths int) string {
	switch {
	case ageMonths < 12:
		return models.StageInfant
	case ageMonths < 36:
		return models.StageToddler
	case ageMonths < 72:
		return models.StagePreschool
	default:
		return models.StageSchoolAge
	}
}

// SleepDurationHours returns the elapsed hours between start and end
// rounded to two decimals, or 0 when the range is inverted.
func SleepDurationHours(start time.Time, end time.Time) float64 {
	if !end.After(start) {
		return 0
	}
	return math.Round(end.Sub(start).Hours()*100) / 100
}
