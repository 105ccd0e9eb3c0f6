package api

import (
	"strings"

	"github.com/daon-health/vitalog/internal/auth"
	"github.com/daon-health/vitalog/internal/models"
	"github.com/gofiber/fiber/v2"
)

type registerRequest struct {
	Email             string `json:"email" validate:"required,email"`
	Username          string `json:"username" validate:"required,min=2,max=50"`
	Password          string `json:"password" validate:"required,min=2,max=128"`
	FullName          string `json:"full_name" validate:"max=100"`
	Age               *int   `json:"age" validate:"omitempty,gte=0,lte=150"`
	Gender            string `json:"gender" validate:"omitempty,oneof=male female other"`
	Phone             string `json:"phone" validate:"max=30"`
	ChronicConditions string `json:"chronic_conditions" validate:"max=1000"`
	Allergies         string `json:"allergies" validate:"max=1000"`
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	var request registerRequest
	if !handler.parseBody(c, &request) {
		return nil
	}

	email := strings.ToLower(strings.TrimSpace(request.Email))
	exists, err := handler.repos.Users.ExistsByEmail(email)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	if exists {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "이미 등록된 이메일입니다."})
	}
	taken, err := handler.repos.Users.ExistsByUsername(request.Username)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	if taken {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "이미 사용 중인 사용자명입니다."})
	}

	passwordHash, err := auth.HashPassword(request.Password)
	if err != nil {
		return handler.respondRepoError(c, err)
	}

	user := models.User{
		Email:             email,
		Username:          strings.TrimSpace(request.Username),
		PasswordHash:      passwordHash,
		FullName:          request.FullName,
		Age:               request.Age,
		Gender:            request.Gender,
		Phone:             request.Phone,
		ChronicConditions: request.ChronicConditions,
		Allergies:         request.Allergies,
	}
	if err := handler.repos.Users.Create(&user); err != nil {
		return handler.respondRepoError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	var request loginRequest
	if !handler.parseBody(c, &request) {
		return nil
	}

	user, err := handler.repos.Users.FindByEmail(strings.ToLower(strings.TrimSpace(request.Email)))
	if err != nil || !auth.CheckPassword(request.Password, user.PasswordHash) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "이메일 또는 비밀번호가 올바르지 않습니다."})
	}

	token, err := handler.tokens.Issue(user.ID, 0)
	if err != nil {
		return handler.respondRepoError(c, err)
	}

	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
		"user":         user,
	})
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	return c.JSON(handler.currentUser(c))
}

var profileColumns = map[string]string{
	"full_name":          "full_name",
	"age":                "age",
	"gender":             "gender",
	"phone":              "phone",
	"chronic_conditions": "chronic_conditions",
	"allergies":          "allergies",
}

var profileRules = map[string]patchRule{
	"full_name":          {kind: "string", tag: "max=100"},
	"age":                {kind: "number", tag: "gte=0,lte=150"},
	"gender":             {kind: "string"},
	"phone":              {kind: "string", tag: "max=30"},
	"chronic_conditions": {kind: "string", tag: "max=1000"},
	"allergies":          {kind: "string", tag: "max=1000"},
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	changes, ok := handler.patchChanges(c, profileColumns, nil, profileRules)
	if !ok {
		return nil
	}
	if gender, present := changes["gender"]; present && gender != nil {
		value, _ := gender.(string)
		if !models.KnownGender(value) {
			changes["gender"] = models.GenderOther
		}
	}

	user, err := handler.repos.Users.UpdateByID(handler.currentUser(c).ID, changes)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(user)
}
