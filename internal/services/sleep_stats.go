package services

import (
	"math"

	"github.com/daon-health/vitalog/internal/models"
)

// SleepStats summarizes a window of sleep records.
type SleepStats struct {
	Count           int     `json:"count"`
	AverageDuration float64 `json:"average_duration"`
	AverageQuality  float64 `json:"average_quality"`
	TotalDeepSleep  float64 `json:"total_deep_sleep"`
	TotalRemSleep   float64 `json:"total_rem_sleep"`
}

// ComputeSleepStats aggregates the given records. Deep and REM hours
// are summed over the window; records without them count as zero.
func ComputeSleepStats(records []models.SleepRecord) SleepStats {
	if len(records) == 0 {
		return SleepStats{}
	}

	var durationSum, qualitySum, deepSum, remSum float64
	for _, record := range records {
		durationSum += record.DurationHours
		qualitySum += float64(record.SleepQuality)
		if record.DeepSleepHours != nil {
			deepSum += *record.DeepSleepHours
		}
		if record.RemSleepHours != nil {
			remSum += *record.RemSleepHours
		}
	}

	count := float64(len(records))
	return SleepStats{
		Count:           len(records),
		AverageDuration: math.Round(durationSum/count*100) / 100,
		AverageQuality:  math.Round(qualitySum/count*10) / 10,
		TotalDeepSleep:  math.Round(deepSum*100) / 100,
		TotalRemSleep:   math.Round(remSum*100) / 100,
	}
}
