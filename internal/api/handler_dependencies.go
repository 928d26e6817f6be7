package api

import (
	"github.com/terraincognita07/stackcheck/internal/db"
	"github.com/terraincognita07/stackcheck/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB, options Options) *Handler {
	handler.repositories = db.NewRepositories(database)
	handler.effectService = services.NewEffectService(
		handler.repositories.DailyEntries,
		handler.repositories.Supplements,
		handler.repositories.PatternInsights,
		options.Thresholds,
		options.Concurrency,
		handler.location,
		handler.log,
		options.Recorder,
	)
	handler.skipService = services.NewSkipService(
		handler.repositories.DailyEntries,
		handler.repositories.Supplements,
		options.Thresholds,
		handler.location,
		handler.log,
		options.Recorder,
	)
	handler.entryService = services.NewEntryService(handler.repositories.DailyEntries, handler.location)
	handler.supplementService = services.NewSupplementService(handler.repositories.Supplements, handler.location)
	return handler
}
