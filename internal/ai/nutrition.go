package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// NutritionEstimate is the parsed meal analysis. Pointer fields stay
// nil when the provider reply could not be parsed, so the handler
// persists the meal without fabricated numbers.
type NutritionEstimate struct {
	Analysis       string   `json:"analysis"`
	Recommendation string   `json:"recommendation"`
	Calories       *float64 `json:"calories"`
	Protein        *float64 `json:"protein"`
	Carbs          *float64 `json:"carbs"`
	Fat            *float64 `json:"fat"`
}

// AnalyzeMeal estimates nutrition for a described meal. Policy is
// Fallback: failures return a templated analysis with nil numbers.
func (assistant *Assistant) AnalyzeMeal(ctx context.Context, mealType string, description string) NutritionEstimate {
	prompt := fmt.Sprintf(`다음 식사의 영양 성분을 추정해주세요.

**식사 정보:**
- 식사 종류: %s
- 내용: %s

다음 형식의 JSON으로만 답변해주세요:
{
  "analysis": "식단에 대한 간단한 분석 (한국어, 2-3문장)",
  "recommendation": "개선 제안 (한국어, 1-2문장)",
  "calories": 0.0,
  "protein": 0.0,
  "carbs": 0.0,
  "fat": 0.0
}`, mealType, description)

	reply, err := assistant.generator.Generate(ctx, prompt)
	if err != nil {
		assistant.logger.Warn("meal analysis degraded to fallback", zap.Error(err))
		return fallbackNutrition()
	}

	var estimate NutritionEstimate
	if err := json.Unmarshal([]byte(stripCodeFences(reply)), &estimate); err != nil {
		assistant.logger.Warn("meal analysis reply not parseable", zap.Error(err))
		return fallbackNutrition()
	}
	if estimate.Analysis == "" {
		return fallbackNutrition()
	}
	return estimate
}

func fallbackNutrition() NutritionEstimate {
	return NutritionEstimate{
		Analysis:       "현재 AI 분석 서비스를 일시적으로 사용할 수 없습니다. 식단 기록은 정상적으로 저장되었습니다.",
		Recommendation: "균형 잡힌 식단을 유지하고, 충분한 수분을 섭취하세요.",
	}
}
