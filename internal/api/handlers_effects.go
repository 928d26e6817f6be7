package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/stackcheck/internal/effects"
)

func (handler *Handler) GetSupplementEffects(c *fiber.Ctx) error {
	profileID, ok := currentProfileID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	query := metricQuery{}
	if err := c.QueryParser(&query); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid query")
	}
	if err := validate.Struct(query); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid query")
	}

	var metrics []effects.Metric
	if strings.TrimSpace(query.Metric) != "" {
		metric, err := effects.ParseMetric(query.Metric)
		if err != nil {
			return handler.respondServiceError(c, err)
		}
		metrics = []effects.Metric{metric}
	}

	results, err := handler.effectService.AnalyzeSupplement(c.UserContext(), profileID, c.Params("id"), metrics)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(results)
}

func (handler *Handler) GetPainCheck(c *fiber.Ctx) error {
	profileID, ok := currentProfileID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	result, err := handler.effectService.PainCheck(c.UserContext(), profileID, c.Params("id"))
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(result)
}

func (handler *Handler) GetTrendShift(c *fiber.Ctx) error {
	profileID, ok := currentProfileID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	query := metricQuery{}
	if err := c.QueryParser(&query); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid query")
	}
	if strings.TrimSpace(query.Metric) == "" {
		return apiError(c, fiber.StatusBadRequest, "metric is required")
	}
	metric, err := effects.ParseMetric(query.Metric)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	comparison, err := handler.effectService.TrendShift(c.UserContext(), profileID, c.Params("id"), metric)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(comparison)
}

func (handler *Handler) RecomputeEffects(c *fiber.Ctx) error {
	profileID, ok := currentProfileID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	allowed, retryAfter := handler.recomputeLimiter.allow(profileLimiterKey(profileID), handler.now(), recomputeLimit, recomputeWindow)
	if !allowed {
		return tooManyRequests(c, retryAfter)
	}

	summary, err := handler.effectService.RecomputeProfile(c.UserContext(), profileID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(summary)
}

func (handler *Handler) ListInsights(c *fiber.Ctx) error {
	profileID, ok := currentProfileID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	insights, err := handler.effectService.ListInsights(c.UserContext(), profileID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(insights)
}
