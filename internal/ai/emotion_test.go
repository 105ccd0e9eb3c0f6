package ai

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestAnalyzeTextParsesReply(t *testing.T) {
	reply := `{"primary_emotion": "joy", "emotion_scores": {"joy": 0.9}, "sentiment": "positive", "intensity": 0.8, "keywords": ["기뻐요"], "analysis": "긍정적인 감정 상태입니다."}`
	analyzer := NewEmotionAnalyzer(&stubGenerator{reply: reply}, zap.NewNop())

	result := analyzer.AnalyzeText(context.Background(), "오늘 정말 기뻐요")
	if result.PrimaryEmotion != "joy" {
		t.Fatalf("primary emotion = %q, want joy", result.PrimaryEmotion)
	}
	if result.EmotionIcon != EmotionIcons["joy"] {
		t.Fatalf("icon = %q, want joy icon", result.EmotionIcon)
	}
	if result.Intensity != 0.8 {
		t.Fatalf("intensity = %v, want 0.8", result.Intensity)
	}
}

func TestAnalyzeTextUnknownEmotionBecomesNeutral(t *testing.T) {
	reply := `{"primary_emotion": "melancholy", "sentiment": "negative", "intensity": 0.4}`
	analyzer := NewEmotionAnalyzer(&stubGenerator{reply: reply}, zap.NewNop())

	result := analyzer.AnalyzeText(context.Background(), "애매한 기분")
	if result.PrimaryEmotion != "neutral" {
		t.Fatalf("primary emotion = %q, want neutral", result.PrimaryEmotion)
	}
	if result.Keywords == nil || result.EmotionScores == nil {
		t.Fatalf("expected non-nil keywords and scores")
	}
}

func TestAnalyzeTextDefaultsOnProviderFailure(t *testing.T) {
	analyzer := NewEmotionAnalyzer(&stubGenerator{err: ErrUpstream}, zap.NewNop())

	result := analyzer.AnalyzeText(context.Background(), "텍스트")
	if result.PrimaryEmotion != "neutral" {
		t.Fatalf("primary emotion = %q, want neutral default", result.PrimaryEmotion)
	}
	if result.EmotionIcon != EmotionIcons["neutral"] {
		t.Fatalf("icon = %q, want neutral icon", result.EmotionIcon)
	}
}

func TestAnalyzeTextDefaultsOnMalformedReply(t *testing.T) {
	analyzer := NewEmotionAnalyzer(&stubGenerator{reply: "not a json object"}, zap.NewNop())

	result := analyzer.AnalyzeText(context.Background(), "텍스트")
	if result.PrimaryEmotion != "neutral" {
		t.Fatalf("primary emotion = %q, want neutral default", result.PrimaryEmotion)
	}
}

func TestStripCodeFences(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "```json\n{\"a\": 1}\n```", want: `{"a": 1}`},
		{in: "```\n{}\n```", want: "{}"},
		{in: "{}", want: "{}"},
	}
	for _, testCase := range cases {
		if got := stripCodeFences(testCase.in); got != testCase.want {
			t.Fatalf("stripCodeFences(%q) = %q, want %q", testCase.in, got, testCase.want)
		}
	}
}
