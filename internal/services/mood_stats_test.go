package services

import (
	"testing"
	"time"

	"github.com/daon-health/vitalog/internal/models"
)

func moodAt(level string, intensity int, recordedAt time.Time) models.MoodRecord {
	return models.MoodRecord{MoodLevel: level, MoodIntensity: intensity, RecordedAt: recordedAt}
}

func TestComputeMoodStatsEmptyWindow(t *testing.T) {
	stats := ComputeMoodStats(nil, time.Now())

	if stats.AverageMood != 5.0 {
		t.Fatalf("average = %v, want 5.0", stats.AverageMood)
	}
	if stats.MostCommonMood != models.MoodNeutral {
		t.Fatalf("most common = %q, want neutral", stats.MostCommonMood)
	}
	if stats.MoodTrend != TrendStable {
		t.Fatalf("trend = %q, want stable", stats.MoodTrend)
	}
	if stats.TotalRecords != 0 {
		t.Fatalf("total = %d, want 0", stats.TotalRecords)
	}
	if stats.MoodDistribution == nil {
		t.Fatalf("distribution must not be nil")
	}
}

func TestComputeMoodStatsWeightsByIntensity(t *testing.T) {
	now := time.Now()
	records := []models.MoodRecord{
		moodAt(models.MoodHappy, 10, now),
		moodAt(models.MoodHappy, 5, now),
	}

	stats := ComputeMoodStats(records, now)

	// (7*1.0 + 7*0.5) / 2 = 5.25
	if stats.AverageMood != 5.25 {
		t.Fatalf("average = %v, want 5.25", stats.AverageMood)
	}
	if stats.MostCommonMood != models.MoodHappy {
		t.Fatalf("most common = %q, want happy", stats.MostCommonMood)
	}
	if stats.TotalRecords != 2 {
		t.Fatalf("total = %d, want 2", stats.TotalRecords)
	}
	if stats.MoodDistribution[models.MoodHappy] != 2 {
		t.Fatalf("distribution[happy] = %d, want 2", stats.MoodDistribution[models.MoodHappy])
	}
}

func TestComputeMoodStatsTrendNeedsSevenRecords(t *testing.T) {
	now := time.Now()
	records := []models.MoodRecord{
		moodAt(models.MoodVerySad, 5, now),
		moodAt(models.MoodVerySad, 5, now.AddDate(0, 0, -10)),
	}

	if trend := ComputeMoodStats(records, now).MoodTrend; trend != TrendStable {
		t.Fatalf("trend = %q, want stable with fewer than seven records", trend)
	}
}

func TestComputeMoodStatsTrendDirections(t *testing.T) {
	now := time.Now()

	improving := []models.MoodRecord{
		moodAt(models.MoodVeryHappy, 5, now),
		moodAt(models.MoodVeryHappy, 5, now.AddDate(0, 0, -1)),
		moodAt(models.MoodVeryHappy, 5, now.AddDate(0, 0, -2)),
		moodAt(models.MoodSad, 5, now.AddDate(0, 0, -10)),
		moodAt(models.MoodSad, 5, now.AddDate(0, 0, -11)),
		moodAt(models.MoodSad, 5, now.AddDate(0, 0, -12)),
		moodAt(models.MoodSad, 5, now.AddDate(0, 0, -13)),
	}
	if trend := ComputeMoodStats(improving, now).MoodTrend; trend != TrendImproving {
		t.Fatalf("trend = %q, want improving", trend)
	}

	declining := []models.MoodRecord{
		moodAt(models.MoodVerySad, 5, now),
		moodAt(models.MoodVerySad, 5, now.AddDate(0, 0, -1)),
		moodAt(models.MoodVerySad, 5, now.AddDate(0, 0, -2)),
		moodAt(models.MoodHappy, 5, now.AddDate(0, 0, -10)),
		moodAt(models.MoodHappy, 5, now.AddDate(0, 0, -11)),
		moodAt(models.MoodHappy, 5, now.AddDate(0, 0, -12)),
		moodAt(models.MoodHappy, 5, now.AddDate(0, 0, -13)),
	}
	if trend := ComputeMoodStats(declining, now).MoodTrend; trend != TrendDeclining {
		t.Fatalf("trend = %q, want declining", trend)
	}
}

func TestComputeMoodStatsUnknownLevelScoresNeutral(t *testing.T) {
	now := time.Now()
	records := []models.MoodRecord{moodAt("mysterious", 10, now)}

	stats := ComputeMoodStats(records, now)
	if stats.AverageMood != 5.0 {
		t.Fatalf("average = %v, want neutral score 5.0", stats.AverageMood)
	}
}
