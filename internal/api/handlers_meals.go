package api

import (
	"time"

	"github.com/daon-health/vitalog/internal/db"
	"github.com/daon-health/vitalog/internal/models"
	"github.com/gofiber/fiber/v2"
)

type createMealRequest struct {
	MealType    string     `json:"meal_type" validate:"required,oneof=breakfast lunch dinner snack"`
	MealDate    *time.Time `json:"meal_date"`
	Description string     `json:"description" validate:"max=2000"`
	ImageURL    string     `json:"image_url" validate:"omitempty,url,max=500"`
	Notes       string     `json:"notes" validate:"max=2000"`
}

func (handler *Handler) CreateMeal(c *fiber.Ctx) error {
	var request createMealRequest
	if !handler.parseBody(c, &request) {
		return nil
	}

	mealDate := time.Now()
	if request.MealDate != nil {
		mealDate = *request.MealDate
	}

	meal := models.Meal{
		UserID:      handler.currentUser(c).ID,
		MealType:    request.MealType,
		MealDate:    mealDate,
		Description: request.Description,
		ImageURL:    request.ImageURL,
		Notes:       request.Notes,
	}
	if request.Description != "" {
		estimate := handler.assistant.AnalyzeMeal(c.UserContext(), request.MealType, request.Description)
		meal.AIAnalysis = estimate.Analysis
		meal.AIRecommendation = estimate.Recommendation
		meal.Calories = estimate.Calories
		meal.Protein = estimate.Protein
		meal.Carbs = estimate.Carbs
		meal.Fat = estimate.Fat
	}

	if err := handler.repos.Meals.Create(&meal); err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(meal)
}

func (handler *Handler) ListMeals(c *fiber.Ctx) error {
	var filters []db.Filter
	if mealType := c.Query("meal_type"); models.KnownMealType(mealType) {
		filters = append(filters, db.FieldEquals("meal_type", mealType))
	}

	meals, err := handler.repos.Meals.List(
		handler.currentUser(c).ID,
		listOptions(c, "meal_date", filters...),
	)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(meals)
}

func (handler *Handler) GetMeal(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	meal, err := handler.repos.Meals.Get(handler.currentUser(c).ID, id)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(meal)
}

var mealColumns = map[string]string{
	"meal_type":        "meal_type",
	"meal_date":        "meal_date",
	"description":      "description",
	"image_url":        "image_url",
	"match_percentage": "match_percentage",
	"notes":            "notes",
}

var mealRules = map[string]patchRule{
	"meal_type":        {kind: "string"},
	"description":      {kind: "string", tag: "max=2000"},
	"image_url":        {kind: "string", tag: "omitempty,url,max=500"},
	"match_percentage": {kind: "number", tag: "gte=0,lte=100"},
	"notes":            {kind: "string", tag: "max=2000"},
}

func (handler *Handler) UpdateMeal(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	changes, ok := handler.patchChanges(c, mealColumns, map[string]bool{"meal_date": true}, mealRules)
	if !ok {
		return nil
	}
	if mealType, present := changes["meal_type"]; present {
		value, _ := mealType.(string)
		if !models.KnownMealType(value) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":  "validation failed",
				"fields": map[string]string{"meal_type": "oneof"},
			})
		}
	}

	meal, err := handler.repos.Meals.Update(handler.currentUser(c).ID, id, changes)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(meal)
}

func (handler *Handler) DeleteMeal(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	if err := handler.repos.Meals.Delete(handler.currentUser(c).ID, id); err != nil {
		return handler.respondRepoError(c, err)
	}
	return sendNoContent(c)
}
