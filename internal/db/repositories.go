package db

import "gorm.io/gorm"

type Repositories struct {
	DailyEntries    *DailyEntryRepository
	Supplements     *SupplementRepository
	PatternInsights *PatternInsightRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		DailyEntries:    NewDailyEntryRepository(database),
		Supplements:     NewSupplementRepository(database),
		PatternInsights: NewPatternInsightRepository(database),
	}
}
