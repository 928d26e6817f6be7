package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/terraincognita07/stackcheck/internal/effects"
	"github.com/terraincognita07/stackcheck/internal/logger"
	"github.com/terraincognita07/stackcheck/internal/models"
)

type SkipSupplementReader interface {
	ListByProfile(ctx context.Context, profileID uint) ([]models.Supplement, error)
}

type SkipRecorder interface {
	ObserveSkipSuggestions(suggestions []effects.SkipSuggestion)
}

type SkipService struct {
	entries     EffectEntryReader
	supplements SkipSupplementReader
	classifier  *effects.Classifier
	thresholds  effects.Thresholds
	location    *time.Location
	log         *logger.Logger
	recorder    SkipRecorder
}

func NewSkipService(
	entries EffectEntryReader,
	supplements SkipSupplementReader,
	thresholds effects.Thresholds,
	location *time.Location,
	log *logger.Logger,
	recorder SkipRecorder,
) *SkipService {
	if location == nil {
		location = time.UTC
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &SkipService{
		entries:     entries,
		supplements: supplements,
		classifier:  effects.NewClassifier(effects.StandardizedEffectPolicy{}, thresholds),
		thresholds:  thresholds,
		location:    location,
		log:         log,
		recorder:    recorder,
	}
}

// SuggestSkips recommends which active supplements to withhold on day.
func (service *SkipService) SuggestSkips(ctx context.Context, profileID uint, day time.Time) ([]effects.SkipSuggestion, error) {
	today := DateAtLocation(day, service.location)

	supplementRows, err := service.supplements.ListByProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("%w: list supplements: %w", ErrEffectHistoryLoadFailed, err)
	}
	entryRows, err := service.entries.ListByProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("%w: list entries: %w", ErrEffectHistoryLoadFailed, err)
	}
	history := entriesThrough(EngineEntries(entryRows, service.location), today)

	candidates := make([]effects.SkipCandidate, 0, len(supplementRows))
	for _, row := range supplementRows {
		if !row.IsActive() {
			continue
		}
		candidate, err := BuildSkipCandidate(EngineSupplement(row, service.location), history, today, service.classifier)
		if err != nil {
			return nil, err
		}
		service.log.Debug("skip candidate",
			"supplement_id", candidate.SupplementID,
			"state", candidate.State,
			"days_off", candidate.DaysOff,
			"dirty", candidate.IsDirty,
		)
		candidates = append(candidates, candidate)
	}

	suggestions, err := effects.SuggestSkips(candidates, today, service.thresholds)
	if err != nil {
		return nil, err
	}
	if service.recorder != nil {
		service.recorder.ObserveSkipSuggestions(suggestions)
	}
	return suggestions, nil
}

// BuildSkipCandidate derives scheduler input from history ending on today.
func BuildSkipCandidate(supplement effects.Supplement, history []effects.Entry, today time.Time, classifier *effects.Classifier) (effects.SkipCandidate, error) {
	thresholds := classifier.Thresholds()
	daysOn, daysOff := effects.CountDays(supplement, history, thresholds)

	candidate := effects.SkipCandidate{
		SupplementID:     supplement.ID,
		Name:             supplement.Name,
		DaysOn:           daysOn,
		DaysOff:          daysOff,
		SkippedYesterday: skippedOn(supplement, history, today.AddDate(0, 0, -1)),
		IsDirty:          recentlyDirty(history, thresholds),
		StartDate:        supplement.CurrentEpochStart(),
	}

	state, highUncertainty, err := trialState(supplement, history, classifier)
	if err != nil {
		return effects.SkipCandidate{}, err
	}
	candidate.State = state
	candidate.HighUncertainty = highUncertainty
	return candidate, nil
}

func trialState(supplement effects.Supplement, history []effects.Entry, classifier *effects.Classifier) (effects.TrialState, bool, error) {
	classified := 0
	conclusive := 0
	uncertain := false
	for _, metric := range effects.AllMetrics() {
		result, err := classifier.Analyze(supplement, metric, history)
		if err != nil {
			return "", false, err
		}
		if result.Reason == effects.ReasonNoData {
			continue
		}
		classified++
		switch {
		case result.Reason == effects.ReasonUncertainDirection:
			uncertain = true
		case result.Category == effects.CategoryWorks, result.Category == effects.CategoryNoEffect:
			conclusive++
		}
	}

	switch {
	case uncertain:
		return effects.TrialBuilding, true, nil
	case classified > 0 && conclusive == classified:
		return effects.TrialConclusive, false, nil
	default:
		return effects.TrialNeedsMoreData, false, nil
	}
}

func skippedOn(supplement effects.Supplement, history []effects.Entry, day time.Time) bool {
	for _, entry := range history {
		if !sameCalendarDay(entry.Date, day) {
			continue
		}
		return !effects.IsOnDay(supplement, entry)
	}
	return false
}

func recentlyDirty(history []effects.Entry, thresholds effects.Thresholds) bool {
	window := thresholds.DirtyWindowDays
	if window <= 0 || len(history) == 0 {
		return false
	}
	if len(history) < window {
		window = len(history)
	}

	noisy := 0
	for _, entry := range history[len(history)-window:] {
		if thresholds.IsNoisy(entry) {
			noisy++
		}
	}
	return float64(noisy)/float64(window) > thresholds.DirtyNoisyRatio
}

func entriesThrough(entries []effects.Entry, day time.Time) []effects.Entry {
	end := day.AddDate(0, 0, 1)
	kept := make([]effects.Entry, 0, len(entries))
	for _, entry := range entries {
		if entry.Date.Before(end) {
			kept = append(kept, entry)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Date.Before(kept[j].Date)
	})
	return kept
}

func sameCalendarDay(left time.Time, right time.Time) bool {
	leftYear, leftMonth, leftDay := left.Date()
	rightYear, rightMonth, rightDay := right.Date()
	return leftYear == rightYear && leftMonth == rightMonth && leftDay == rightDay
}
