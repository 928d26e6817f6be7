package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	EntrySourceManual   = "manual"
	EntrySourceWearable = "wearable"
)

const (
	IntakeTaken = "taken"
	IntakeOff   = "off"
)

type DailyEntry struct {
	ID                 uint                        `gorm:"primaryKey" json:"id"`
	ProfileID          uint                        `gorm:"not null;uniqueIndex:uidx_daily_entries_profile_date" json:"-"`
	Date               time.Time                   `gorm:"type:date;not null;uniqueIndex:uidx_daily_entries_profile_date" json:"date"`
	Pain               *float64                    `json:"pain,omitempty"`
	Mood               *float64                    `json:"mood,omitempty"`
	SleepQuality       *float64                    `json:"sleepQuality,omitempty"`
	Energy             *float64                    `json:"energy,omitempty"`
	Focus              *float64                    `json:"focus,omitempty"`
	Tags               datatypes.JSONSlice[string] `json:"tags"`
	SupplementIntake   map[string]string           `gorm:"serializer:json" json:"supplementIntake"`
	SkippedSupplements datatypes.JSONSlice[string] `json:"skippedSupplements"`
	Source             string                      `gorm:"not null;default:manual" json:"source"`
	Notes              string                      `json:"notes"`
	CreatedAt          time.Time                   `json:"-"`
	UpdatedAt          time.Time                   `json:"-"`
}

// MetricValue returns the logged value for a metric column name.
func (entry DailyEntry) MetricValue(metric string) (float64, bool) {
	var value *float64
	switch metric {
	case "pain":
		value = entry.Pain
	case "mood":
		value = entry.Mood
	case "sleep_quality":
		value = entry.SleepQuality
	case "energy":
		value = entry.Energy
	case "focus":
		value = entry.Focus
	}
	if value == nil {
		return 0, false
	}
	return *value, true
}
