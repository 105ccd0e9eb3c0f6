package services

import (
	"math"
	"time"

	"github.com/daon-health/vitalog/internal/models"
)

// moodTrendThreshold is the recent-vs-older average gap (on the 1-10
// mood scale) that counts as a real shift.
const moodTrendThreshold = 0.5

// MoodStats summarizes a window of mood records.
type MoodStats struct {
	AverageMood      float64        `json:"average_mood"`
	MostCommonMood   string         `json:"most_common_mood"`
	MoodTrend        string         `json:"mood_trend"`
	TotalRecords     int            `json:"total_records"`
	MoodDistribution map[string]int `json:"mood_distribution"`
}

func moodScore(level string) float64 {
	if score, ok := models.MoodScores[level]; ok {
		return score
	}
	return models.MoodScores[models.MoodNeutral]
}

// ComputeMoodStats aggregates the given records. The average weighs
// each mood score by intensity/10; the trend compares the last seven
// days against the rest of the window and needs at least seven
// records to call anything other than stable.
func ComputeMoodStats(records []models.MoodRecord, now time.Time) MoodStats {
	if len(records) == 0 {
		return MoodStats{
			AverageMood:      5.0,
			MostCommonMood:   models.MoodNeutral,
			MoodTrend:        TrendStable,
			MoodDistribution: map[string]int{},
		}
	}

	var totalScore float64
	distribution := make(map[string]int, len(models.MoodScores))
	for _, record := range records {
		totalScore += moodScore(record.MoodLevel) * (float64(record.MoodIntensity) / 10)
		distribution[record.MoodLevel]++
	}

	mostCommon := models.MoodNeutral
	highest := 0
	for level, count := range distribution {
		if count > highest {
			mostCommon = level
			highest = count
		}
	}

	return MoodStats{
		AverageMood:      math.Round(totalScore/float64(len(records))*100) / 100,
		MostCommonMood:   mostCommon,
		MoodTrend:        moodTrend(records, now),
		TotalRecords:     len(records),
		MoodDistribution: distribution,
	}
}

func moodTrend(records []models.MoodRecord, now time.Time) string {
	if len(records) < 7 {
		return TrendStable
	}

	cutoff := now.AddDate(0, 0, -7)
	var recentSum, olderSum float64
	var recentCount, olderCount int
	for _, record := range records {
		score := moodScore(record.MoodLevel)
		if record.RecordedAt.After(cutoff) || record.RecordedAt.Equal(cutoff) {
			recentSum += score
			recentCount++
		} else {
			olderSum += score
			olderCount++
		}
	}
	if recentCount == 0 || olderCount == 0 {
		return TrendStable
	}

	recentAvg := recentSum / float64(recentCount)
	olderAvg := olderSum / float64(olderCount)
	switch {
	case recentAvg > olderAvg+moodTrendThreshold:
		return TrendImproving
	case recentAvg < olderAvg-moodTrendThreshold:
		return TrendDeclining
	default:
		return TrendStable
	}
}
