package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// EmotionIcons maps the closed emotion set to display icons. Anything
// outside the set renders as neutral.
var EmotionIcons = map[string]string{
	"joy":      "😊",
	"sadness":  "😢",
	"anger":    "😠",
	"fear":     "😨",
	"anxiety":  "😰",
	"neutral":  "😐",
	"surprise": "😲",
	"disgust":  "🤢",
}

// EmotionResult is the normalized emotion analysis shape.
type EmotionResult struct {
	PrimaryEmotion string             `json:"primary_emotion"`
	EmotionScores  map[string]float64 `json:"emotion_scores"`
	Sentiment      string             `json:"sentiment"`
	Intensity      float64            `json:"intensity"`
	Keywords       []string           `json:"keywords"`
	Analysis       string             `json:"analysis"`
	EmotionIcon    string             `json:"emotion_icon"`
}

func defaultEmotionResult() EmotionResult {
	return EmotionResult{
		PrimaryEmotion: "neutral",
		EmotionScores:  map[string]float64{"neutral": 1.0},
		Sentiment:      "neutral",
		Intensity:      0,
		Keywords:       []string{},
		Analysis:       "감정을 분석할 수 없습니다.",
		EmotionIcon:    EmotionIcons["neutral"],
	}
}

// EmotionAnalyzer asks the provider for a JSON emotion breakdown.
// Policy is always Fallback: provider failure or a malformed reply
// returns the neutral default, never an error.
type EmotionAnalyzer struct {
	generator TextGenerator
	logger    *zap.Logger
}

func NewEmotionAnalyzer(generator TextGenerator, logger *zap.Logger) *EmotionAnalyzer {
	return &EmotionAnalyzer{generator: generator, logger: logger}
}

func (analyzer *EmotionAnalyzer) AnalyzeText(ctx context.Context, text string) EmotionResult {
	prompt := fmt.Sprintf(`다음 텍스트의 감정을 분석해주세요.

텍스트: "%s"

다음 형식의 JSON으로만 답변해주세요:
{
  "primary_emotion": "joy|sadness|anger|fear|anxiety|neutral|surprise|disgust 중 하나",
  "emotion_scores": {"joy": 0.0, "sadness": 0.0, "anger": 0.0, "fear": 0.0, "anxiety": 0.0, "neutral": 0.0},
  "sentiment": "positive|negative|neutral 중 하나",
  "intensity": 0.0,
  "keywords": ["감정을", "나타내는", "단어들"],
  "analysis": "간단한 감정 분석 설명 (1-2문장, 한국어)"
}`, text)

	reply, err := analyzer.generator.Generate(ctx, prompt)
	if err != nil {
		analyzer.logger.Warn("emotion analysis degraded to default", zap.Error(err))
		return defaultEmotionResult()
	}

	var result EmotionResult
	if err := json.Unmarshal([]byte(stripCodeFences(reply)), &result); err != nil {
		analyzer.logger.Warn("emotion reply not parseable", zap.Error(err))
		return defaultEmotionResult()
	}

	if _, known := EmotionIcons[result.PrimaryEmotion]; !known {
		result.PrimaryEmotion = "neutral"
	}
	result.EmotionIcon = EmotionIcons[result.PrimaryEmotion]
	if result.Keywords == nil {
		result.Keywords = []string{}
	}
	if result.EmotionScores == nil {
		result.EmotionScores = map[string]float64{}
	}
	return result
}

// stripCodeFences removes a surrounding markdown code block, which
// the provider frequently wraps JSON replies in.
func stripCodeFences(text string) string {
	trimmed := strings.TrimSpace(text)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}
