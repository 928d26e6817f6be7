package db

import (
	"context"
	"time"

	"github.com/terraincognita07/stackcheck/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DailyEntryRepository struct {
	database *gorm.DB
}

func NewDailyEntryRepository(database *gorm.DB) *DailyEntryRepository {
	return &DailyEntryRepository{database: database}
}

func (repo *DailyEntryRepository) ListByProfile(ctx context.Context, profileID uint) ([]models.DailyEntry, error) {
	entries := make([]models.DailyEntry, 0)
	if err := repo.database.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("date ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *DailyEntryRepository) ListByProfileRange(ctx context.Context, profileID uint, fromStart *time.Time, toEnd *time.Time) ([]models.DailyEntry, error) {
	query := repo.database.WithContext(ctx).Model(&models.DailyEntry{}).Where("profile_id = ?", profileID)
	if fromStart != nil {
		query = query.Where("date >= ?", *fromStart)
	}
	if toEnd != nil {
		query = query.Where("date < ?", *toEnd)
	}

	entries := make([]models.DailyEntry, 0)
	if err := query.Order("date ASC, id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *DailyEntryRepository) FindByProfileAndDayRange(ctx context.Context, profileID uint, dayStart time.Time, dayEnd time.Time) (models.DailyEntry, bool, error) {
	entry := models.DailyEntry{}
	result := repo.database.WithContext(ctx).
		Where("profile_id = ? AND date >= ? AND date < ?", profileID, dayStart, dayEnd).
		Order("date DESC, id DESC").
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.DailyEntry{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.DailyEntry{}, false, nil
	}
	return entry, true, nil
}

// Upsert keeps one check-in per profile and day; a second write replaces
// metrics, tags and intake.
func (repo *DailyEntryRepository) Upsert(ctx context.Context, entry *models.DailyEntry) error {
	return repo.database.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "profile_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"pain", "mood", "sleep_quality", "energy", "focus",
				"tags", "supplement_intake", "skipped_supplements",
				"source", "notes", "updated_at",
			}),
		}).
		Create(entry).Error
}
