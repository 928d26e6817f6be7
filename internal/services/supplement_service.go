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
	ErrSupplementNameRequired = errors.New("supplement name required")
	ErrInvalidSupplementRange = errors.New("invalid supplement range")
	ErrSupplementSaveFailed   = errors.New("supplement save failed")
)

type SupplementStore interface {
	Create(ctx context.Context, supplement *models.Supplement) error
	ListByProfile(ctx context.Context, profileID uint) ([]models.Supplement, error)
}

type SupplementRangeInput struct {
	Start time.Time
	End   *time.Time
}

type SupplementInput struct {
	Name        string
	MonthlyCost float64
	Ranges      []SupplementRangeInput
}

type SupplementService struct {
	supplements SupplementStore
	location    *time.Location
}

func NewSupplementService(supplements SupplementStore, location *time.Location) *SupplementService {
	if location == nil {
		location = time.UTC
	}
	return &SupplementService{supplements: supplements, location: location}
}

func (service *SupplementService) CreateSupplement(ctx context.Context, profileID uint, input SupplementInput) (models.Supplement, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return models.Supplement{}, ErrSupplementNameRequired
	}
	if len(input.Ranges) == 0 {
		return models.Supplement{}, fmt.Errorf("%w: at least one range is required", ErrInvalidSupplementRange)
	}

	ranges := make([]models.SupplementRange, 0, len(input.Ranges))
	openRanges := 0
	for _, active := range input.Ranges {
		start := DateAtLocation(active.Start, service.location)
		converted := models.SupplementRange{StartDate: start}
		if active.End == nil {
			openRanges++
		} else {
			end := DateAtLocation(*active.End, service.location)
			if end.Before(start) {
				return models.Supplement{}, fmt.Errorf("%w: end %s before start %s", ErrInvalidSupplementRange, end.Format("2006-01-02"), start.Format("2006-01-02"))
			}
			converted.EndDate = &end
		}
		ranges = append(ranges, converted)
	}
	if openRanges > 1 {
		return models.Supplement{}, fmt.Errorf("%w: only one open-ended range is allowed", ErrInvalidSupplementRange)
	}

	supplement := models.Supplement{
		ProfileID:   profileID,
		Name:        name,
		MonthlyCost: input.MonthlyCost,
		Ranges:      ranges,
	}
	if err := service.supplements.Create(ctx, &supplement); err != nil {
		return models.Supplement{}, fmt.Errorf("%w: %w", ErrSupplementSaveFailed, err)
	}
	return supplement, nil
}

func (service *SupplementService) ListSupplements(ctx context.Context, profileID uint) ([]models.Supplement, error) {
	supplements, err := service.supplements.ListByProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("%w: list supplements: %w", ErrEffectHistoryLoadFailed, err)
	}
	return supplements, nil
}
