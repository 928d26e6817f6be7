package api

import (
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/stackcheck/internal/effects"
	"github.com/terraincognita07/stackcheck/internal/services"
)

type errorMapping struct {
	target  error
	status  int
	message string
}

var serviceErrorMappings = []errorMapping{
	{effects.ErrUnknownMetric, fiber.StatusBadRequest, "unknown metric"},
	{effects.ErrUnsupportedMetric, fiber.StatusBadRequest, "metric not supported"},
	{services.ErrInvalidSupplementID, fiber.StatusBadRequest, "invalid supplement id"},
	{services.ErrInvalidIntakeState, fiber.StatusBadRequest, "invalid intake state"},
	{services.ErrInvalidSupplementRange, fiber.StatusBadRequest, "invalid supplement range"},
	{services.ErrSupplementNameRequired, fiber.StatusBadRequest, "supplement name required"},
	{services.ErrInvalidEntryRange, fiber.StatusBadRequest, "invalid entry range"},
	{services.ErrSupplementNotFound, fiber.StatusNotFound, "supplement not found"},
	{services.ErrEntryNotFound, fiber.StatusNotFound, "entry not found"},
	{services.ErrEffectHistoryLoadFailed, fiber.StatusInternalServerError, "failed to load history"},
	{services.ErrEntryLoadFailed, fiber.StatusInternalServerError, "failed to load entries"},
	{services.ErrInsightPersistFailed, fiber.StatusInternalServerError, "failed to persist insights"},
	{services.ErrInsightLoadFailed, fiber.StatusInternalServerError, "failed to load insights"},
	{services.ErrEntrySaveFailed, fiber.StatusInternalServerError, "failed to save entry"},
	{services.ErrSupplementSaveFailed, fiber.StatusInternalServerError, "failed to save supplement"},
}

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func (handler *Handler) respondServiceError(c *fiber.Ctx, err error) error {
	status, message := fiber.StatusInternalServerError, "internal error"
	for _, mapping := range serviceErrorMappings {
		if errors.Is(err, mapping.target) {
			status, message = mapping.status, mapping.message
			break
		}
	}
	if status >= fiber.StatusInternalServerError {
		handler.log.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
	}
	return apiError(c, status, message)
}

func tooManyRequests(c *fiber.Ctx, retryAfter time.Duration) error {
	seconds := int(math.Ceil(retryAfter.Seconds()))
	if seconds < 1 {
		seconds = 1
	}
	c.Set(fiber.HeaderRetryAfter, strconv.Itoa(seconds))
	return apiError(c, fiber.StatusTooManyRequests, "too many recompute requests")
}

func (handler *Handler) today() time.Time {
	return services.DateAtLocation(handler.now(), handler.location)
}
