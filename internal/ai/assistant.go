package ai

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// FailurePolicy makes the per-call degradation choice explicit.
// Exactly one flow (the symptom-check chat) propagates provider
// failures to the caller; every other enrichment call falls back to
// a deterministic template so the request can still succeed.
type FailurePolicy int

const (
	PolicyFallback FailurePolicy = iota
	PolicyPropagate
)

const (
	UrgencyEmergency = "emergency"
	UrgencyHigh      = "high"
	UrgencyMedium    = "medium"
	UrgencyLow       = "low"
)

// SuggestedActions maps each urgency level to its canned guidance.
var SuggestedActions = map[string]string{
	UrgencyEmergency: "⚠️ 즉시 119에 연락하거나 가까운 응급실로 가세요.",
	UrgencyHigh:      "가능한 빨리 병원을 방문하시거나 전문의 상담을 받으세요.",
	UrgencyMedium:    "증상이 지속되거나 악화되면 병원을 방문하세요.",
	UrgencyLow:       "경과를 지켜보시고 증상이 지속되면 병원을 방문하세요.",
}

const systemInstruction = `당신은 한국어 AI 건강 상담 어시스턴트입니다.

**역할 및 제약사항:**
1. 당신은 의사가 아니며, 의학적 진단이나 치료를 제공할 수 없습니다.
2. 정보 제공 목적으로만 조언을 제공합니다.
3. 응급 상황에서는 즉시 119에 연락하거나 응급실 방문을 권장합니다.

**응답 방식:**
친절하고 공감적인 어조를 유지하고, 의료 용어는 쉽게 설명하며,
항상 면책 조항을 포함합니다. 한국어 존댓말로 응답하세요.`

// UserContext carries the profile fields woven into prompts.
type UserContext struct {
	Age               *int
	Gender            string
	ChronicConditions string
	Allergies         string
}

func (userContext UserContext) promptSection() string {
	var builder strings.Builder
	if userContext.Age != nil {
		fmt.Fprintf(&builder, "- 나이: %d세\n", *userContext.Age)
	}
	if userContext.Gender != "" {
		fmt.Fprintf(&builder, "- 성별: %s\n", userContext.Gender)
	}
	if userContext.ChronicConditions != "" {
		fmt.Fprintf(&builder, "- 기저질환: %s\n", userContext.ChronicConditions)
	}
	if userContext.Allergies != "" {
		fmt.Fprintf(&builder, "- 알레르기: %s\n", userContext.Allergies)
	}
	if builder.Len() == 0 {
		return ""
	}
	return "\n**사용자 정보:**\n" + builder.String()
}

// Assistant wraps the text generator behind domain-shaped calls.
type Assistant struct {
	generator TextGenerator
	logger    *zap.Logger
}

func NewAssistant(generator TextGenerator, logger *zap.Logger) *Assistant {
	return &Assistant{generator: generator, logger: logger}
}

// SymptomReply is the normalized symptom-check result.
type SymptomReply struct {
	Response        string
	UrgencyLevel    string
	SuggestedAction string
}

// SymptomCheck runs the primary chat flow. Policy is Propagate: a
// provider failure returns the error to the handler instead of a
// fallback body.
func (assistant *Assistant) SymptomCheck(ctx context.Context, message string, userContext UserContext) (SymptomReply, error) {
	prompt := fmt.Sprintf(`%s

사용자의 증상에 대해 상담해주세요.

**사용자 증상:**
%s
%s
응답의 마지막에 반드시 다음 형식으로 응급도를 명시하세요:
[URGENCY: emergency/high/medium/low]`, systemInstruction, message, userContext.promptSection())

	text, err := assistant.generator.Generate(ctx, prompt)
	if err != nil {
		return SymptomReply{}, err
	}

	response, urgency := splitUrgencyTag(text)
	return SymptomReply{
		Response:        response,
		UrgencyLevel:    urgency,
		SuggestedAction: SuggestedActions[urgency],
	}, nil
}

// splitUrgencyTag strips the trailing [URGENCY: x] marker, defaulting
// to medium when the tag is missing or malformed.
func splitUrgencyTag(text string) (string, string) {
	urgency := UrgencyMedium
	response := text
	if index := strings.LastIndex(text, "[URGENCY:"); index >= 0 {
		tail := text[index+len("[URGENCY:"):]
		if closing := strings.Index(tail, "]"); closing >= 0 {
			candidate := strings.TrimSpace(tail[:closing])
			switch candidate {
			case UrgencyEmergency, UrgencyHigh, UrgencyMedium, UrgencyLow:
				urgency = candidate
			}
			response = strings.TrimSpace(text[:index])
		}
	}
	return response, urgency
}

// Assessment is the two-section mental health reply.
type Assessment struct {
	Assessment      string
	Recommendations string
}

var fallbackAssessment = Assessment{
	Assessment: `현재 AI 분석 서비스를 일시적으로 사용할 수 없어 자동 평가를 제공하지 못했습니다.

입력하신 지표를 바탕으로 스스로 상태를 살펴보시고, 수치가 낮거나 힘든 상태가 지속된다면 전문가 상담을 권장합니다.

**긴급 지원:**
- 정신건강 위기상담: ☎1577-0199
- 자살예방 상담전화: ☎1393`,
	Recommendations: `- 규칙적인 생활 패턴 유지
- 하루 30분 이상 운동
- 충분한 수면 (7-8시간)
- 가족, 친구와 소통
- 전문가 상담 고려`,
}

// MentalHealthAssessment asks for an [ASSESSMENT]/[RECOMMENDATIONS]
// structured reply. Policy is Fallback: any provider or parse failure
// yields the templated assessment and a nil error.
func (assistant *Assistant) MentalHealthAssessment(ctx context.Context, stress, anxiety, mood, sleepQuality *int, notes string) Assessment {
	scale := func(value *int) string {
		if value == nil {
			return "기록 안 됨"
		}
		return fmt.Sprintf("%d/10", *value)
	}
	if notes == "" {
		notes = "없음"
	}

	prompt := fmt.Sprintf(`%s

사용자의 정신 건강 상태를 평가하고 조언해주세요.

**정신 건강 지표 (1-10 척도):**
- 스트레스 수준: %s
- 불안 수준: %s
- 기분 상태: %s
- 수면 질: %s

**사용자 메모:**
%s

응답을 두 부분으로 나누어 주세요:
1. [ASSESSMENT] 전반적인 평가
2. [RECOMMENDATIONS] 구체적인 권장사항 (각 항목을 "-"로 시작)`,
		systemInstruction, scale(stress), scale(anxiety), scale(mood), scale(sleepQuality), notes)

	text, err := assistant.generator.Generate(ctx, prompt)
	if err != nil {
		assistant.logger.Warn("mental health assessment degraded to fallback", zap.Error(err))
		return fallbackAssessment
	}

	if strings.Contains(text, "[ASSESSMENT]") && strings.Contains(text, "[RECOMMENDATIONS]") {
		parts := strings.SplitN(text, "[RECOMMENDATIONS]", 2)
		return Assessment{
			Assessment:      strings.TrimSpace(strings.ReplaceAll(parts[0], "[ASSESSMENT]", "")),
			Recommendations: strings.TrimSpace(parts[1]),
		}
	}
	// Unstructured reply: keep it whole rather than guessing a split.
	return Assessment{Assessment: strings.TrimSpace(text), Recommendations: fallbackAssessment.Recommendations}
}

// MoodInsight enriches a mood record. Policy is Fallback.
func (assistant *Assistant) MoodInsight(ctx context.Context, moodLevel string, intensity int, note string) Assessment {
	if note == "" {
		note = "없음"
	}
	prompt := fmt.Sprintf(`%s

사용자의 감정 기록을 분석하고 조언해주세요.

**감정 기록:**
- 감정: %s
- 강도: %d/10
- 메모: %s

응답을 두 부분으로 나누어 주세요:
1. [ASSESSMENT] 감정 분석
2. [RECOMMENDATIONS] 감정 관리 조언 (각 항목을 "-"로 시작)`, systemInstruction, moodLevel, intensity, note)

	text, err := assistant.generator.Generate(ctx, prompt)
	if err != nil {
		assistant.logger.Warn("mood insight degraded to fallback", zap.Error(err))
		return Assessment{
			Assessment:      "현재 AI 분석 서비스를 일시적으로 사용할 수 없습니다. 기록은 정상적으로 저장되었습니다.",
			Recommendations: "- 감정을 기록하는 습관을 유지하세요\n- 힘든 감정이 지속되면 전문가 상담을 고려하세요",
		}
	}
	if strings.Contains(text, "[ASSESSMENT]") && strings.Contains(text, "[RECOMMENDATIONS]") {
		parts := strings.SplitN(text, "[RECOMMENDATIONS]", 2)
		return Assessment{
			Assessment:      strings.TrimSpace(strings.ReplaceAll(parts[0], "[ASSESSMENT]", "")),
			Recommendations: strings.TrimSpace(parts[1]),
		}
	}
	return Assessment{Assessment: strings.TrimSpace(text)}
}

// SleepAnalysis enriches a sleep record. Policy is Fallback.
func (assistant *Assistant) SleepAnalysis(ctx context.Context, durationHours float64, quality int, notes string) Assessment {
	if notes == "" {
		notes = "없음"
	}
	prompt := fmt.Sprintf(`%s

사용자의 수면 기록을 분석해주세요.

**수면 기록:**
- 수면 시간: %.1f시간
- 수면 질 (1-10): %d
- 메모: %s

응답을 두 부분으로 나누어 주세요:
1. [ASSESSMENT] 수면 분석
2. [RECOMMENDATIONS] 수면 개선 조언 (각 항목을 "-"로 시작)`, systemInstruction, durationHours, quality, notes)

	text, err := assistant.generator.Generate(ctx, prompt)
	if err != nil {
		assistant.logger.Warn("sleep analysis degraded to fallback", zap.Error(err))
		return Assessment{
			Assessment:      "현재 AI 분석 서비스를 일시적으로 사용할 수 없습니다. 기록은 정상적으로 저장되었습니다.",
			Recommendations: "- 일정한 취침/기상 시간을 유지하세요\n- 취침 전 스마트폰 사용을 줄이세요",
		}
	}
	if strings.Contains(text, "[ASSESSMENT]") && strings.Contains(text, "[RECOMMENDATIONS]") {
		parts := strings.SplitN(text, "[RECOMMENDATIONS]", 2)
		return Assessment{
			Assessment:      strings.TrimSpace(strings.ReplaceAll(parts[0], "[ASSESSMENT]", "")),
			Recommendations: strings.TrimSpace(parts[1]),
		}
	}
	return Assessment{Assessment: strings.TrimSpace(text)}
}
