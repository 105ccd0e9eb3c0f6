package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// TreatmentPlanDraft is the generated scaffold for a treatment plan.
// The caller turns the goals into checklist entries and persists the
// plan under its disease record.
type TreatmentPlanDraft struct {
	PlanName        string   `json:"plan_name"`
	Goals           []string `json:"goals"`
	Milestones      []string `json:"milestones"`
	DailyTasks      []string `json:"daily_tasks"`
	Recommendations string   `json:"recommendations"`
}

// GenerateTreatmentPlan drafts a plan for the given disease. Policy is
// Fallback: provider or parse failures yield a generic Korean template
// so the plan can still be created.
func (assistant *Assistant) GenerateTreatmentPlan(ctx context.Context, diseaseName string, severity string, duration string, preferences string, focusAreas []string) TreatmentPlanDraft {
	if preferences == "" {
		preferences = "없음"
	}
	focus := "없음"
	if len(focusAreas) > 0 {
		focus = strings.Join(focusAreas, ", ")
	}

	prompt := fmt.Sprintf(`%s

사용자의 질병 정보를 바탕으로 치료 관리 계획을 만들어주세요.

**질병 정보:**
- 질병명: %s
- 중증도: %s
- 계획 기간: %s
- 환자 선호사항: %s
- 집중 관리 영역: %s

다음 형식의 JSON으로만 답변해주세요:
{
  "plan_name": "계획 이름",
  "goals": ["목표1", "목표2"],
  "milestones": ["마일스톤1"],
  "daily_tasks": ["일일 과제1", "일일 과제2"],
  "recommendations": "추가 권장사항"
}`, systemInstruction, diseaseName, severity, duration, preferences, focus)

	reply, err := assistant.generator.Generate(ctx, prompt)
	if err != nil {
		assistant.logger.Warn("treatment plan generation degraded to fallback", zap.Error(err))
		return fallbackTreatmentPlan(diseaseName, duration)
	}

	var draft TreatmentPlanDraft
	if err := json.Unmarshal([]byte(stripCodeFences(reply)), &draft); err != nil || len(draft.Goals) == 0 {
		assistant.logger.Warn("treatment plan reply not parseable", zap.Error(err))
		return fallbackTreatmentPlan(diseaseName, duration)
	}
	if draft.PlanName == "" {
		draft.PlanName = fmt.Sprintf("%s 치료 계획 (%s)", diseaseName, duration)
	}
	return draft
}

func fallbackTreatmentPlan(diseaseName string, duration string) TreatmentPlanDraft {
	return TreatmentPlanDraft{
		PlanName: fmt.Sprintf("%s 치료 계획 (%s)", diseaseName, duration),
		Goals: []string{
			"증상 완화 및 관리",
			"삶의 질 향상",
			"합병증 예방",
			"정기적인 모니터링",
		},
		DailyTasks: []string{
			"증상 기록하기",
			"처방된 약물 복용",
			"적절한 휴식 취하기",
			"건강한 식단 유지",
		},
		Recommendations: "AI 기반 맞춤 치료 계획입니다. 의사와 상담 후 조정이 필요할 수 있습니다.",
	}
}
