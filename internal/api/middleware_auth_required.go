package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	profileID, err := handler.authenticateRequest(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals(contextProfileKey, profileID)
	return c.Next()
}

func currentProfileID(c *fiber.Ctx) (uint, bool) {
	profileID, ok := c.Locals(contextProfileKey).(uint)
	return profileID, ok && profileID != 0
}
