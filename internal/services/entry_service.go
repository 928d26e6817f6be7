package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/stackcheck/internal/models"
)

var (
	ErrInvalidIntakeState = errors.New("invalid intake state")
	ErrEntrySaveFailed    = errors.New("entry save failed")
	ErrEntryNotFound      = errors.New("entry not found")
	ErrEntryLoadFailed    = errors.New("entry load failed")
	ErrInvalidEntryRange  = errors.New("invalid entry range")
)

type EntryStore interface {
	Upsert(ctx context.Context, entry *models.DailyEntry) error
	FindByProfileAndDayRange(ctx context.Context, profileID uint, dayStart time.Time, dayEnd time.Time) (models.DailyEntry, bool, error)
	ListByProfileRange(ctx context.Context, profileID uint, fromStart *time.Time, toEnd *time.Time) ([]models.DailyEntry, error)
}

type EntryInput struct {
	Pain               *float64
	Mood               *float64
	SleepQuality       *float64
	Energy             *float64
	Focus              *float64
	Tags               []string
	SupplementIntake   map[string]string
	SkippedSupplements []string
	Source             string
	Notes              string
}

type EntryService struct {
	entries  EntryStore
	location *time.Location
}

func NewEntryService(entries EntryStore, location *time.Location) *EntryService {
	if location == nil {
		location = time.UTC
	}
	return &EntryService{entries: entries, location: location}
}

// SaveEntry stores the check-in for day, replacing any earlier one.
func (service *EntryService) SaveEntry(ctx context.Context, profileID uint, day time.Time, input EntryInput) (models.DailyEntry, error) {
	intake := make(map[string]string, len(input.SupplementIntake))
	for supplementID, state := range input.SupplementIntake {
		normalized := strings.ToLower(strings.TrimSpace(state))
		if normalized != models.IntakeTaken && normalized != models.IntakeOff {
			return models.DailyEntry{}, fmt.Errorf("%w: %q", ErrInvalidIntakeState, state)
		}
		intake[strings.TrimSpace(supplementID)] = normalized
	}

	source := strings.TrimSpace(input.Source)
	if source == "" {
		source = models.EntrySourceManual
	}

	entry := models.DailyEntry{
		ProfileID:          profileID,
		Date:               DateAtLocation(day, service.location),
		Pain:               input.Pain,
		Mood:               input.Mood,
		SleepQuality:       input.SleepQuality,
		Energy:             input.Energy,
		Focus:              input.Focus,
		Tags:               normalizeTags(input.Tags),
		SupplementIntake:   intake,
		SkippedSupplements: append([]string{}, input.SkippedSupplements...),
		Source:             source,
		Notes:              strings.TrimSpace(input.Notes),
	}
	if err := service.entries.Upsert(ctx, &entry); err != nil {
		return models.DailyEntry{}, fmt.Errorf("%w: %w", ErrEntrySaveFailed, err)
	}
	return entry, nil
}

func (service *EntryService) GetEntry(ctx context.Context, profileID uint, day time.Time) (models.DailyEntry, error) {
	dayStart, dayEnd := DayRange(day, service.location)
	entry, found, err := service.entries.FindByProfileAndDayRange(ctx, profileID, dayStart, dayEnd)
	if err != nil {
		return models.DailyEntry{}, fmt.Errorf("%w: %w", ErrEntryLoadFailed, err)
	}
	if !found {
		return models.DailyEntry{}, ErrEntryNotFound
	}
	return entry, nil
}

// ListEntries returns check-ins between from and to, both inclusive. A nil
// bound leaves that side open.
func (service *EntryService) ListEntries(ctx context.Context, profileID uint, from *time.Time, to *time.Time) ([]models.DailyEntry, error) {
	var fromStart, toEnd *time.Time
	if from != nil {
		start := DateAtLocation(*from, service.location)
		fromStart = &start
	}
	if to != nil {
		_, end := DayRange(*to, service.location)
		toEnd = &end
	}
	if fromStart != nil && toEnd != nil && !fromStart.Before(*toEnd) {
		return nil, ErrInvalidEntryRange
	}

	entries, err := service.entries.ListByProfileRange(ctx, profileID, fromStart, toEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEntryLoadFailed, err)
	}
	return entries, nil
}

func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		value := strings.ToLower(strings.TrimSpace(tag))
		if value == "" {
			continue
		}
		if _, exists := seen[value]; exists {
			continue
		}
		seen[value] = struct{}{}
		normalized = append(normalized, value)
	}
	return normalized
}
