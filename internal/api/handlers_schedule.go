package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/daon-health/vitalog/internal/ai"
	"github.com/daon-health/vitalog/internal/db"
	"github.com/gofiber/fiber/v2"
)

type generateScheduleRequest struct {
	DaysAhead int `json:"days_ahead" validate:"gte=0,lte=30"`
}

// GenerateSchedule builds a request-time plan from the user's recent
// records. Nothing is persisted; the client re-requests when it wants
// a fresh plan.
func (handler *Handler) GenerateSchedule(c *fiber.Ctx) error {
	var request generateScheduleRequest
	if !handler.parseBody(c, &request) {
		return nil
	}

	user := handler.currentUser(c)
	summary := handler.recentHealthSummary(user.ID)

	days := handler.assistant.GenerateSchedule(c.UserContext(), ai.UserContext{
		Age:               user.Age,
		Gender:            user.Gender,
		ChronicConditions: user.ChronicConditions,
		Allergies:         user.Allergies,
	}, summary, request.DaysAhead)

	return c.JSON(fiber.Map{"schedule": days})
}

// recentHealthSummary condenses the last week of records into the
// prompt context. Lookup failures degrade to a thinner summary rather
// than failing the request.
func (handler *Handler) recentHealthSummary(ownerID uint) string {
	weekAgo := time.Now().AddDate(0, 0, -7)
	var lines []string

	if records, err := handler.repos.HealthRecords.List(ownerID, db.ListOptions{
		Filters: []db.Filter{db.DateFrom("measured_at", weekAgo)},
		Limit:   20,
	}); err == nil && len(records) > 0 {
		lines = append(lines, fmt.Sprintf("최근 7일 건강 측정 %d건 (최신: %s %.1f%s)",
			len(records), records[0].RecordType, records[0].Value, records[0].Unit))
	}

	if moods, err := handler.repos.MoodRecords.List(ownerID, db.ListOptions{
		Filters: []db.Filter{db.DateFrom("recorded_at", weekAgo)},
		Limit:   20,
	}); err == nil && len(moods) > 0 {
		lines = append(lines, fmt.Sprintf("최근 7일 감정 기록 %d건 (최신 감정: %s)",
			len(moods), moods[0].MoodLevel))
	}

	if sleeps, err := handler.repos.SleepRecords.List(ownerID, db.ListOptions{
		Filters: []db.Filter{db.DateFrom("sleep_start", weekAgo)},
		Limit:   20,
	}); err == nil && len(sleeps) > 0 {
		var total float64
		for _, record := range sleeps {
			total += record.DurationHours
		}
		lines = append(lines, fmt.Sprintf("최근 7일 수면 기록 %d건 (평균 %.1f시간)",
			len(sleeps), total/float64(len(sleeps))))
	}

	if len(lines) == 0 {
		return "최근 기록이 없습니다."
	}
	return strings.Join(lines, "\n")
}
