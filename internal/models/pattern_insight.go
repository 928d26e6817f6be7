package models

import "time"

type PatternInsight struct {
	ID              uint      `gorm:"primaryKey" json:"-"`
	ProfileID       uint      `gorm:"not null;uniqueIndex:uidx_pattern_insights_key" json:"-"`
	SupplementID    string    `gorm:"not null;uniqueIndex:uidx_pattern_insights_key" json:"supplementId"`
	Metric          string    `gorm:"not null;uniqueIndex:uidx_pattern_insights_key" json:"metric"`
	EffectSize      float64   `gorm:"not null;default:0" json:"effectSize"`
	ConfidenceScore float64   `gorm:"not null;default:0" json:"confidenceScore"`
	SampleSize      int       `gorm:"not null;default:0" json:"sampleSize"`
	Status          string    `gorm:"not null" json:"status"`
	PreMean         float64   `gorm:"not null;default:0" json:"preMean"`
	PostMean        float64   `gorm:"not null;default:0" json:"postMean"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
