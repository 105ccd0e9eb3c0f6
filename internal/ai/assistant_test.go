package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

type stubGenerator struct {
	reply      string
	err        error
	lastPrompt string
}

func (stub *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	stub.lastPrompt = prompt
	return stub.reply, stub.err
}

func TestSymptomCheckParsesUrgencyTag(t *testing.T) {
	cases := []struct {
		name         string
		reply        string
		wantResponse string
		wantUrgency  string
	}{
		{
			name:         "well-formed tag",
			reply:        "충분한 휴식을 취하세요.\n[URGENCY: low]",
			wantResponse: "충분한 휴식을 취하세요.",
			wantUrgency:  UrgencyLow,
		},
		{
			name:         "emergency tag",
			reply:        "즉시 응급실로 가세요. [URGENCY: emergency]",
			wantResponse: "즉시 응급실로 가세요.",
			wantUrgency:  UrgencyEmergency,
		},
		{
			name:         "missing tag defaults to medium",
			reply:        "병원 방문을 권장합니다.",
			wantResponse: "병원 방문을 권장합니다.",
			wantUrgency:  UrgencyMedium,
		},
		{
			name:         "unknown level defaults to medium",
			reply:        "경과를 지켜보세요. [URGENCY: catastrophic]",
			wantResponse: "경과를 지켜보세요.",
			wantUrgency:  UrgencyMedium,
		},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			assistant := NewAssistant(&stubGenerator{reply: testCase.reply}, zap.NewNop())

			reply, err := assistant.SymptomCheck(context.Background(), "머리가 아파요", UserContext{})
			if err != nil {
				t.Fatalf("symptom check: %v", err)
			}
			if reply.Response != testCase.wantResponse {
				t.Fatalf("response = %q, want %q", reply.Response, testCase.wantResponse)
			}
			if reply.UrgencyLevel != testCase.wantUrgency {
				t.Fatalf("urgency = %q, want %q", reply.UrgencyLevel, testCase.wantUrgency)
			}
			if reply.SuggestedAction != SuggestedActions[testCase.wantUrgency] {
				t.Fatalf("suggested action = %q, want canned action for %q", reply.SuggestedAction, testCase.wantUrgency)
			}
		})
	}
}

func TestSymptomCheckPropagatesProviderFailure(t *testing.T) {
	assistant := NewAssistant(&stubGenerator{err: ErrUpstream}, zap.NewNop())

	_, err := assistant.SymptomCheck(context.Background(), "머리가 아파요", UserContext{})
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream to propagate, got %v", err)
	}
}

func TestSymptomCheckIncludesUserContext(t *testing.T) {
	age := 34
	generator := &stubGenerator{reply: "ok [URGENCY: low]"}
	assistant := NewAssistant(generator, zap.NewNop())

	_, err := assistant.SymptomCheck(context.Background(), "기침이 나요", UserContext{
		Age:               &age,
		Gender:            "female",
		ChronicConditions: "천식",
	})
	if err != nil {
		t.Fatalf("symptom check: %v", err)
	}
	if !strings.Contains(generator.lastPrompt, "34세") {
		t.Fatalf("prompt missing age section:\n%s", generator.lastPrompt)
	}
	if !strings.Contains(generator.lastPrompt, "천식") {
		t.Fatalf("prompt missing chronic conditions section")
	}
}

func TestMentalHealthAssessmentSplitsSections(t *testing.T) {
	reply := "[ASSESSMENT]\n전반적으로 양호합니다.\n[RECOMMENDATIONS]\n- 규칙적으로 주무세요"
	assistant := NewAssistant(&stubGenerator{reply: reply}, zap.NewNop())

	level := 4
	assessment := assistant.MentalHealthAssessment(context.Background(), &level, &level, &level, &level, "")
	if assessment.Assessment != "전반적으로 양호합니다." {
		t.Fatalf("assessment = %q", assessment.Assessment)
	}
	if assessment.Recommendations != "- 규칙적으로 주무세요" {
		t.Fatalf("recommendations = %q", assessment.Recommendations)
	}
}

func TestMentalHealthAssessmentFallsBackOnFailure(t *testing.T) {
	assistant := NewAssistant(&stubGenerator{err: ErrUpstream}, zap.NewNop())

	assessment := assistant.MentalHealthAssessment(context.Background(), nil, nil, nil, nil, "")
	if assessment != fallbackAssessment {
		t.Fatalf("expected the templated fallback assessment")
	}
}

func TestMoodInsightFallsBackOnFailure(t *testing.T) {
	assistant := NewAssistant(&stubGenerator{err: ErrUpstream}, zap.NewNop())

	insight := assistant.MoodInsight(context.Background(), "sad", 5, "")
	if insight.Assessment == "" || insight.Recommendations == "" {
		t.Fatalf("expected non-empty fallback insight, got %+v", insight)
	}
}

func TestSleepAnalysisUnstructuredReplyKeptWhole(t *testing.T) {
	assistant := NewAssistant(&stubGenerator{reply: "수면의 질이 좋습니다."}, zap.NewNop())

	analysis := assistant.SleepAnalysis(context.Background(), 7.5, 8, "")
	if analysis.Assessment != "수면의 질이 좋습니다." {
		t.Fatalf("assessment = %q", analysis.Assessment)
	}
}

func TestAnalyzeMealParsesJSONReply(t *testing.T) {
	reply := "```json\n{\"analysis\": \"균형 잡힌 식사입니다.\", \"recommendation\": \"채소를 더 드세요.\", \"calories\": 650, \"protein\": 30, \"carbs\": 80, \"fat\": 20}\n```"
	assistant := NewAssistant(&stubGenerator{reply: reply}, zap.NewNop())

	estimate := assistant.AnalyzeMeal(context.Background(), "lunch", "비빔밥")
	if estimate.Analysis != "균형 잡힌 식사입니다." {
		t.Fatalf("analysis = %q", estimate.Analysis)
	}
	if estimate.Calories == nil || *estimate.Calories != 650 {
		t.Fatalf("calories = %v, want 650", estimate.Calories)
	}
}

func TestAnalyzeMealFallbackKeepsNilNumbers(t *testing.T) {
	assistant := NewAssistant(&stubGenerator{reply: "not json"}, zap.NewNop())

	estimate := assistant.AnalyzeMeal(context.Background(), "dinner", "라면")
	if estimate.Analysis == "" {
		t.Fatalf("expected templated analysis text")
	}
	if estimate.Calories != nil || estimate.Protein != nil {
		t.Fatalf("expected nil nutrition numbers on fallback, got %+v", estimate)
	}
}

func TestGenerateScheduleFallbackCoversRequestedDays(t *testing.T) {
	assistant := NewAssistant(&stubGenerator{err: ErrUpstream}, zap.NewNop())

	days := assistant.GenerateSchedule(context.Background(), UserContext{}, "", 3)
	if len(days) != 3 {
		t.Fatalf("expected 3 fallback days, got %d", len(days))
	}
	for _, day := range days {
		if len(day.Tasks) == 0 {
			t.Fatalf("fallback day %s has no tasks", day.Date)
		}
	}
}
