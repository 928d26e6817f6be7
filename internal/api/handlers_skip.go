package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/stackcheck/internal/services"
)

func (handler *Handler) GetSkipSuggestions(c *fiber.Ctx) error {
	profileID, ok := currentProfileID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	query := dayQuery{}
	if err := c.QueryParser(&query); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid query")
	}
	if err := validate.Struct(query); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	day := handler.today()
	if query.Date != "" {
		parsed, err := services.ParseDay(query.Date, handler.location)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid date")
		}
		day = parsed
	}

	suggestions, err := handler.skipService.SuggestSkips(c.UserContext(), profileID, day)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(suggestions)
}
