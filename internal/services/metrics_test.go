package services

import (
	"testing"
	"time"

	"github.com/daon-health/vitalog/internal/models"
)

func TestBMI(t *testing.T) {
	cases := []struct {
		name     string
		weightKg float64
		heightCm float64
		want     float64
	}{
		{name: "typical adult", weightKg: 70, heightCm: 175, want: 22.86},
		{name: "rounded to two decimals", weightKg: 60, heightCm: 170, want: 20.76},
		{name: "zero height", weightKg: 70, heightCm: 0, want: 0},
		{name: "zero weight", weightKg: 0, heightCm: 175, want: 0},
		{name: "negative input", weightKg: -5, heightCm: 175, want: 0},
	}
	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			got := BMI(testCase.weightKg, testCase.heightCm)
			if got != testCase.want {
				t.Fatalf("BMI(%v, %v) = %v, want %v", testCase.weightKg, testCase.heightCm, got, testCase.want)
			}
		})
	}
}

func TestClassifyTrend(t *testing.T) {
	cases := []struct {
		name      string
		scores    []float64
		threshold float64
		want      string
	}{
		{name: "empty window is stable", scores: nil, threshold: 10, want: TrendStable},
		{name: "latest above mean", scores: []float64{50, 50, 50, 50, 50, 80}, threshold: 10, want: TrendImproving},
		{name: "latest below mean", scores: []float64{50, 50, 50, 50, 50, 20}, threshold: 10, want: TrendDeclining},
		{name: "latest near mean", scores: []float64{50, 50, 50, 50, 50, 55}, threshold: 10, want: TrendStable},
		{name: "single score is stable", scores: []float64{70}, threshold: 10, want: TrendStable},
	}
	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			got := ClassifyTrend(testCase.scores, testCase.threshold)
			if got != testCase.want {
				t.Fatalf("ClassifyTrend(%v, %v) = %q, want %q", testCase.scores, testCase.threshold, got, testCase.want)
			}
		})
	}
}

func TestClassifyRisk(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{score: 0, want: models.DepressionRiskLow},
		{score: 9, want: models.DepressionRiskLow},
		{score: 10, want: models.DepressionRiskMedium},
		{score: 12, want: models.DepressionRiskMedium},
		{score: 13, want: models.DepressionRiskHigh},
		{score: 30, want: models.DepressionRiskHigh},
	}
	for _, testCase := range cases {
		got := ClassifyRisk(testCase.score, PostpartumDepressionTable)
		if got != testCase.want {
			t.Fatalf("ClassifyRisk(%d) = %q, want %q", testCase.score, got, testCase.want)
		}
	}
}

func TestChecklistCompletion(t *testing.T) {
	t.Run("empty checklist is never completed", func(t *testing.T) {
		completed, total, isCompleted := ChecklistCompletion(nil)
		if completed != 0 || total != 0 || isCompleted {
			t.Fatalf("got (%d, %d, %v), want (0, 0, false)", completed, total, isCompleted)
		}
	})

	t.Run("partially checked", func(t *testing.T) {
		items := []models.ChecklistItem{
			{Label: "약 복용", Completed: true},
			{Label: "혈압 측정", Completed: false},
			{Label: "산책", Completed: true},
		}
		completed, total, isCompleted := ChecklistCompletion(items)
		if completed != 2 || total != 3 || isCompleted {
			t.Fatalf("got (%d, %d, %v), want (2, 3, false)", completed, total, isCompleted)
		}
	})

	t.Run("all checked", func(t *testing.T) {
		items := []models.ChecklistItem{
			{Label: "약 복용", Completed: true},
			{Label: "산책", Completed: true},
		}
		completed, total, isCompleted := ChecklistCompletion(items)
		if completed != 2 || total != 2 || !isCompleted {
			t.Fatalf("got (%d, %d, %v), want (2, 2, true)", completed, total, isCompleted)
		}
	})
}

func TestCompletionPercentage(t *testing.T) {
	if got := CompletionPercentage(nil); got != 0 {
		t.Fatalf("empty goals percentage = %v, want 0", got)
	}
	items := []models.ChecklistItem{
		{Completed: true},
		{Completed: false},
		{Completed: false},
	}
	if got := CompletionPercentage(items); got != 33.33 {
		t.Fatalf("percentage = %v, want 33.33", got)
	}
}

func TestAgeInMonthsAndStage(t *testing.T) {
	birth := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		today     time.Time
		wantAge   int
		wantStage string
	}{
		{name: "newborn", today: birth, wantAge: 0, wantStage: models.StageInfant},
		{name: "six months", today: birth.AddDate(0, 0, 182), wantAge: 6, wantStage: models.StageInfant},
		{name: "toddler", today: birth.AddDate(0, 0, 30*14), wantAge: 14, wantStage: models.StageToddler},
		{name: "preschool", today: birth.AddDate(0, 0, 30*40), wantAge: 40, wantStage: models.StagePreschool},
		{name: "school age", today: birth.AddDate(0, 0, 30*80), wantAge: 80, wantStage: models.StageSchoolAge},
		{name: "future birth date clamps to zero", today: birth.AddDate(0, 0, -10), wantAge: 0, wantStage: models.StageInfant},
	}
	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			age := AgeInMonths(birth, testCase.today)
			if age != testCase.wantAge {
				t.Fatalf("AgeInMonths = %d, want %d", age, testCase.wantAge)
			}
			if stage := DevelopmentalStage(age); stage != testCase.wantStage {
				t.Fatalf("DevelopmentalStage(%d) = %q, want %q", age, stage, testCase.wantStage)
			}
		})
	}
}

func TestSleepDurationHours(t *testing.T) {
	start := time.Date(2026, 3, 1, 23, 0, 0, 0, time.UTC)
	if got := SleepDurationHours(start, start.Add(7*time.Hour+30*time.Minute)); got != 7.5 {
		t.Fatalf("duration = %v, want 7.5", got)
	}
	if got := SleepDurationHours(start, start); got != 0 {
		t.Fatalf("zero range duration = %v, want 0", got)
	}
	if got := SleepDurationHours(start, start.Add(-time.Hour)); got != 0 {
		t.Fatalf("inverted range duration = %v, want 0", got)
	}
}
