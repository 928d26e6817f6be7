package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) ListSupplements(c *fiber.Ctx) error {
	profileID, ok := currentProfileID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	supplements, err := handler.supplementService.ListSupplements(c.UserContext(), profileID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(supplements)
}

func (handler *Handler) CreateSupplement(c *fiber.Ctx) error {
	profileID, ok := currentProfileID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := supplementPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := validate.Struct(payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	input, err := payload.input(handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	supplement, err := handler.supplementService.CreateSupplement(c.UserContext(), profileID, input)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(supplement)
}
