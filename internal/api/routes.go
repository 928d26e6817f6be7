package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/metrics", handler.metricsHandler())
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api", handler.AuthRequired)

	supplements := api.Group("/supplements")
	supplements.Get("", handler.ListSupplements)
	supplements.Post("", handler.CreateSupplement)
	supplements.Get("/:id/effects", handler.GetSupplementEffects)
	supplements.Get("/:id/pain-check", handler.GetPainCheck)
	supplements.Get("/:id/trend", handler.GetTrendShift)

	entries := api.Group("/entries")
	entries.Get("", handler.ListEntries)
	entries.Get("/:date", handler.GetEntry)
	entries.Put("/:date", handler.UpsertEntry)

	effects := api.Group("/effects")
	effects.Post("/recompute", handler.RecomputeEffects)

	api.Get("/insights", handler.ListInsights)
	api.Get("/skip-suggestions", handler.GetSkipSuggestions)
}
