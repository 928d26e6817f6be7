package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/stackcheck/internal/services"
)

func (handler *Handler) UpsertEntry(c *fiber.Ctx) error {
	profileID, ok := currentProfileID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	day, err := services.ParseDay(c.Params("date"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}
	if day.After(handler.today()) {
		return apiError(c, fiber.StatusBadRequest, "date cannot be in the future")
	}

	payload := entryPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := validate.Struct(payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	entry, err := handler.entryService.SaveEntry(c.UserContext(), profileID, day, payload.input())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(entry)
}

func (handler *Handler) GetEntry(c *fiber.Ctx) error {
	profileID, ok := currentProfileID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	day, err := services.ParseDay(c.Params("date"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	entry, err := handler.entryService.GetEntry(c.UserContext(), profileID, day)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(entry)
}

func (handler *Handler) ListEntries(c *fiber.Ctx) error {
	profileID, ok := currentProfileID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	query := entryRangeQuery{}
	if err := c.QueryParser(&query); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid query")
	}
	if err := validate.Struct(query); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	from, err := handler.optionalDay(query.From)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}
	to, err := handler.optionalDay(query.To)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	entries, err := handler.entryService.ListEntries(c.UserContext(), profileID, from, to)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(entries)
}

func (handler *Handler) optionalDay(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	day, err := services.ParseDay(raw, handler.location)
	if err != nil {
		return nil, err
	}
	return &day, nil
}
