package api

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/terraincognita07/stackcheck/internal/services"
)

var validate = validator.New()

type metricQuery struct {
	Metric string `query:"metric" validate:"omitempty,max=32"`
}

type dayQuery struct {
	Date string `query:"date" validate:"omitempty,datetime=2006-01-02"`
}

type entryRangeQuery struct {
	From string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}

type entryPayload struct {
	Pain               *float64          `json:"pain" validate:"omitempty,gte=0,lte=10"`
	Mood               *float64          `json:"mood" validate:"omitempty,gte=0,lte=10"`
	SleepQuality       *float64          `json:"sleepQuality" validate:"omitempty,gte=0,lte=10"`
	Energy             *float64          `json:"energy" validate:"omitempty,gte=0,lte=10"`
	Focus              *float64          `json:"focus" validate:"omitempty,gte=0,lte=10"`
	Tags               []string          `json:"tags" validate:"max=20,dive,max=32"`
	SupplementIntake   map[string]string `json:"supplementIntake" validate:"max=50,dive,keys,uuid,endkeys,required"`
	SkippedSupplements []string          `json:"skippedSupplements" validate:"max=50,dive,uuid"`
	Source             string            `json:"source" validate:"omitempty,oneof=manual wearable"`
	Notes              string            `json:"notes" validate:"max=2000"`
}

func (payload entryPayload) input() services.EntryInput {
	return services.EntryInput{
		Pain:               payload.Pain,
		Mood:               payload.Mood,
		SleepQuality:       payload.SleepQuality,
		Energy:             payload.Energy,
		Focus:              payload.Focus,
		Tags:               payload.Tags,
		SupplementIntake:   payload.SupplementIntake,
		SkippedSupplements: payload.SkippedSupplements,
		Source:             payload.Source,
		Notes:              payload.Notes,
	}
}

type supplementRangePayload struct {
	Start string `json:"start" validate:"required,datetime=2006-01-02"`
	End   string `json:"end" validate:"omitempty,datetime=2006-01-02"`
}

type supplementPayload struct {
	Name        string                   `json:"name" validate:"required,max=120"`
	MonthlyCost float64                  `json:"monthlyCost" validate:"gte=0"`
	Ranges      []supplementRangePayload `json:"ranges" validate:"required,min=1,max=50,dive"`
}

func (payload supplementPayload) input(location *time.Location) (services.SupplementInput, error) {
	ranges := make([]services.SupplementRangeInput, 0, len(payload.Ranges))
	for _, active := range payload.Ranges {
		start, err := services.ParseDay(active.Start, location)
		if err != nil {
			return services.SupplementInput{}, err
		}
		converted := services.SupplementRangeInput{Start: start}
		if strings.TrimSpace(active.End) != "" {
			end, err := services.ParseDay(active.End, location)
			if err != nil {
				return services.SupplementInput{}, err
			}
			converted.End = &end
		}
		ranges = append(ranges, converted)
	}
	return services.SupplementInput{
		Name:        payload.Name,
		MonthlyCost: payload.MonthlyCost,
		Ranges:      ranges,
	}, nil
}
