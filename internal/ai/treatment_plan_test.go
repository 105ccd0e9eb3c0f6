package ai

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestGenerateTreatmentPlanParsesReply(t *testing.T) {
	stub := &stubGenerator{reply: "```json\n" + `{
  "plan_name": "천식 관리 계획",
  "goals": ["호흡 안정", "발작 예방"],
  "milestones": ["1개월차 점검"],
  "daily_tasks": ["흡입기 사용"],
  "recommendations": "정기 검진을 유지하세요."
}` + "\n```"}
	assistant := NewAssistant(stub, zap.NewNop())

	draft := assistant.GenerateTreatmentPlan(context.Background(), "천식", "moderate", "3_months", "", nil)
	if draft.PlanName != "천식 관리 계획" {
		t.Fatalf("plan name = %q", draft.PlanName)
	}
	if len(draft.Goals) != 2 || draft.Goals[0] != "호흡 안정" {
		t.Fatalf("unexpected goals: %+v", draft.Goals)
	}
	if len(draft.DailyTasks) != 1 || len(draft.Milestones) != 1 {
		t.Fatalf("unexpected draft: %+v", draft)
	}
	if !strings.Contains(stub.lastPrompt, "천식") || !strings.Contains(stub.lastPrompt, "3_months") {
		t.Fatalf("prompt missing disease context: %q", stub.lastPrompt)
	}
}

func TestGenerateTreatmentPlanFallsBack(t *testing.T) {
	assistant := NewAssistant(&stubGenerator{err: ErrUpstream}, zap.NewNop())

	draft := assistant.GenerateTreatmentPlan(context.Background(), "고혈압", "mild", "6_months", "", nil)
	if !strings.Contains(draft.PlanName, "고혈압") {
		t.Fatalf("fallback plan name = %q", draft.PlanName)
	}
	if len(draft.Goals) == 0 || len(draft.DailyTasks) == 0 {
		t.Fatalf("fallback draft must carry goals and tasks: %+v", draft)
	}

	// An unparseable reply degrades the same way.
	garbled := NewAssistant(&stubGenerator{reply: "계획을 세워 보겠습니다."}, zap.NewNop())
	draft = garbled.GenerateTreatmentPlan(context.Background(), "고혈압", "mild", "6_months", "", nil)
	if len(draft.Goals) == 0 {
		t.Fatalf("expected fallback goals for unparseable reply: %+v", draft)
	}
}
