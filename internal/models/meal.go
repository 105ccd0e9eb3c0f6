package models

import "time"

const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

type Meal struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`

	MealType string    `gorm:"not null" json:"meal_type"`
	MealDate time.Time `gorm:"not null" json:"meal_date"`

	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`

	AIAnalysis       string   `json:"ai_analysis,omitempty"`
	AIRecommendation string   `json:"ai_recommendation,omitempty"`
	MatchPercentage  *float64 `json:"match_percentage,omitempty"`

	// Nutrition estimates parsed from the AI analysis; nil when the
	// provider response could not be parsed.
	Calories *float64 `json:"calories,omitempty"`
	Protein  *float64 `json:"protein,omitempty"`
	Carbs    *float64 `json:"carbs,omitempty"`
	Fat      *float64 `json:"fat,omitempty"`

	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func KnownMealType(value string) bool {
	switch value {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}
