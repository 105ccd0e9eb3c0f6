package api

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/daon-health/vitalog/internal/db"
	"github.com/daon-health/vitalog/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (handler *Handler) currentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(contextUserKey).(*models.User)
	return user
}

// parseBody decodes the request body and runs schema validation,
// answering 400 with per-field detail itself. The returned bool
// reports whether the handler should continue.
func (handler *Handler) parseBody(c *fiber.Ctx, dest any) bool {
	if err := c.BodyParser(dest); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		return false
	}
	if err := handler.validate.Struct(dest); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) {
			fields := make(map[string]string, len(fieldErrors))
			for _, fieldError := range fieldErrors {
				fields[strings.ToLower(fieldError.Field())] = fieldError.Tag()
			}
			_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":  "validation failed",
				"fields": fields,
			})
			return false
		}
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation failed"})
		return false
	}
	return true
}

// respondRepoError translates data-access failures. Absent rows and
// foreign-owned rows are the same 404.
func (handler *Handler) respondRepoError(c *fiber.Ctx, err error) error {
	if errors.Is(err, db.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	handler.logger.Error("repository failure", zap.Error(err), zap.String("path", c.Path()))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}

func parseIDParam(c *fiber.Ctx, name string) (uint, bool) {
	raw := c.Params(name)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
		return 0, false
	}
	return uint(value), true
}

// listOptions reads limit/offset plus optional measured-date range
// filters from the query string.
func listOptions(c *fiber.Ctx, dateColumn string, extra ...db.Filter) db.ListOptions {
	opts := db.ListOptions{
		Limit:   c.QueryInt("limit"),
		Offset:  c.QueryInt("offset"),
		Filters: extra,
	}
	if dateColumn != "" {
		if from, ok := parseQueryDate(c.Query("start_date")); ok {
			opts.Filters = append(opts.Filters, db.DateFrom(dateColumn, from))
		}
		if to, ok := parseQueryDate(c.Query("end_date")); ok {
			opts.Filters = append(opts.Filters, db.DateTo(dateColumn, to.AddDate(0, 0, 1)))
		}
	}
	return opts
}

func parseQueryDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if parsed, err := time.Parse("2006-01-02", raw); err == nil {
		return parsed, true
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed, true
	}
	return time.Time{}, false
}

// patchRule constrains one patchable column: the JSON type it must
// carry and an optional validator tag checked against non-null values,
// mirroring the tags the create request enforces.
type patchRule struct {
	kind string // "string", "number" or "bool"
	tag  string
}

func matchesKind(value any, kind string) bool {
	switch kind {
	case "string":
		_, ok := value.(string)
		return ok
	case "number":
		_, ok := value.(float64)
		return ok
	case "bool":
		_, ok := value.(bool)
		return ok
	}
	return true
}

// patchChanges extracts a partial-update change set from the raw
// body. allowed maps JSON keys onto database columns; keys absent
// from the body are untouched, keys set to null clear the column.
// timeKeys lists the columns whose string values must parse as
// timestamps; rules apply the same type and range checks the create
// path runs.
func (handler *Handler) patchChanges(c *fiber.Ctx, allowed map[string]string, timeKeys map[string]bool, rules map[string]patchRule) (map[string]any, bool) {
	var body map[string]any
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		return nil, false
	}

	reject := func(key string, tag string) (map[string]any, bool) {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "validation failed",
			"fields": map[string]string{key: tag},
		})
		return nil, false
	}

	changes := make(map[string]any, len(body))
	for key, value := range body {
		column, ok := allowed[key]
		if !ok {
			continue
		}
		if value == nil {
			changes[column] = nil
			continue
		}
		if timeKeys[column] {
			raw, isString := value.(string)
			if !isString {
				return reject(key, "datetime")
			}
			parsed, ok := parseQueryDate(raw)
			if !ok {
				return reject(key, "datetime")
			}
			changes[column] = parsed
			continue
		}
		if rule, constrained := rules[key]; constrained {
			if !matchesKind(value, rule.kind) {
				return reject(key, rule.kind)
			}
			if rule.tag != "" {
				if err := handler.validate.Var(value, rule.tag); err != nil {
					tag := rule.tag
					var fieldErrors validator.ValidationErrors
					if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
						tag = fieldErrors[0].Tag()
					}
					return reject(key, tag)
				}
			}
		}
		changes[column] = value
	}
	return changes, true
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
