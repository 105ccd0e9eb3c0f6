package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ScheduleTask is one recommended activity in a generated day plan.
type ScheduleTask struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Time        string `json:"time"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// ScheduleDay groups the tasks recommended for one calendar day.
type ScheduleDay struct {
	Date  string         `json:"date"`
	Tasks []ScheduleTask `json:"tasks"`
}

// GenerateSchedule produces a synchronous, request-time health plan
// for the next daysAhead days; nothing is persisted. Policy is
// Fallback: failures return a deterministic template plan.
func (assistant *Assistant) GenerateSchedule(ctx context.Context, userContext UserContext, summary string, daysAhead int) []ScheduleDay {
	if daysAhead <= 0 {
		daysAhead = 7
	}

	prompt := fmt.Sprintf(`%s

사용자의 건강 데이터를 바탕으로 향후 %d일간의 건강 관리 스케줄을 만들어주세요.
%s
**최근 건강 기록 요약:**
%s

다음 형식의 JSON 배열로만 답변해주세요:
[
  {
    "date": "YYYY-MM-DD",
    "tasks": [
      {"type": "meal|exercise|sleep|checkup", "title": "제목", "time": "HH:MM", "description": "설명", "priority": "high|medium|low"}
    ]
  }
]`, systemInstruction, daysAhead, userContext.promptSection(), summary)

	reply, err := assistant.generator.Generate(ctx, prompt)
	if err != nil {
		assistant.logger.Warn("schedule generation degraded to fallback", zap.Error(err))
		return fallbackSchedule(daysAhead)
	}

	var days []ScheduleDay
	if err := json.Unmarshal([]byte(stripCodeFences(reply)), &days); err != nil || len(days) == 0 {
		assistant.logger.Warn("schedule reply not parseable", zap.Error(err))
		return fallbackSchedule(daysAhead)
	}
	return days
}

func fallbackSchedule(daysAhead int) []ScheduleDay {
	days := make([]ScheduleDay, 0, daysAhead)
	for offset := 1; offset <= daysAhead; offset++ {
		date := time.Now().AddDate(0, 0, offset).Format("2006-01-02")
		days = append(days, ScheduleDay{
			Date: date,
			Tasks: []ScheduleTask{
				{Type: "meal", Title: "균형 잡힌 아침 식사", Time: "08:00", Description: "단백질과 채소를 포함한 아침 식사", Priority: "medium"},
				{Type: "exercise", Title: "가벼운 운동 30분", Time: "18:00", Description: "걷기 또는 스트레칭", Priority: "medium"},
				{Type: "sleep", Title: "취침 준비", Time: "22:30", Description: "7-8시간 수면을 위한 취침", Priority: "high"},
			},
		})
	}
	return days
}
