package services

import (
	"time"

	"github.com/terraincognita07/stackcheck/internal/effects"
	"github.com/terraincognita07/stackcheck/internal/models"
)

func EngineEntries(entries []models.DailyEntry, location *time.Location) []effects.Entry {
	converted := make([]effects.Entry, 0, len(entries))
	for _, entry := range entries {
		converted = append(converted, EngineEntry(entry, location))
	}
	return converted
}

func EngineEntry(entry models.DailyEntry, location *time.Location) effects.Entry {
	metrics := make(map[effects.Metric]float64, len(effects.AllMetrics()))
	for _, metric := range effects.AllMetrics() {
		if value, ok := entry.MetricValue(string(metric)); ok {
			metrics[metric] = value
		}
	}

	intake := make(map[string]effects.IntakeState, len(entry.SupplementIntake))
	for supplementID, state := range entry.SupplementIntake {
		switch state {
		case models.IntakeTaken:
			intake[supplementID] = effects.IntakeTaken
		case models.IntakeOff:
			intake[supplementID] = effects.IntakeOff
		}
	}

	return effects.Entry{
		Date:    calendarDay(entry.Date, location),
		Metrics: metrics,
		Tags:    append([]string(nil), entry.Tags...),
		Intake:  intake,
		Skipped: append([]string(nil), entry.SkippedSupplements...),
	}
}

func EngineSupplement(supplement models.Supplement, location *time.Location) effects.Supplement {
	ranges := make([]effects.DateRange, 0, len(supplement.Ranges))
	for _, active := range supplement.Ranges {
		converted := effects.DateRange{Start: calendarDay(active.StartDate, location)}
		if active.EndDate != nil {
			end := calendarDay(*active.EndDate, location)
			converted.End = &end
		}
		ranges = append(ranges, converted)
	}
	return effects.Supplement{
		ID:          supplement.ID.String(),
		Name:        supplement.Name,
		Ranges:      ranges,
		MonthlyCost: supplement.MonthlyCost,
	}
}
