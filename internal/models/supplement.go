package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Supplement struct {
	ID          uuid.UUID         `gorm:"type:text;primaryKey" json:"id"`
	ProfileID   uint              `gorm:"not null;index" json:"-"`
	Name        string            `gorm:"not null" json:"name"`
	MonthlyCost float64           `gorm:"not null;default:0" json:"monthlyCost"`
	Ranges      []SupplementRange `gorm:"constraint:OnDelete:CASCADE" json:"ranges"`
	CreatedAt   time.Time         `json:"-"`
	UpdatedAt   time.Time         `json:"-"`
}

func (supplement *Supplement) BeforeCreate(tx *gorm.DB) error {
	if supplement.ID == uuid.Nil {
		supplement.ID = uuid.New()
	}
	return nil
}

// SupplementRange is one active stretch. A nil End keeps the supplement active.
type SupplementRange struct {
	ID           uint       `gorm:"primaryKey" json:"-"`
	SupplementID uuid.UUID  `gorm:"type:text;not null;index" json:"-"`
	StartDate    time.Time  `gorm:"type:date;not null" json:"start"`
	EndDate      *time.Time `gorm:"type:date" json:"end,omitempty"`
}

func (supplement Supplement) IsActive() bool {
	for _, active := range supplement.Ranges {
		if active.EndDate == nil {
			return true
		}
	}
	return false
}
