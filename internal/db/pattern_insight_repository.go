package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/stackcheck/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrInsightUpsertFailed = errors.New("pattern insight upsert failed")

type PatternInsightRepository struct {
	database *gorm.DB
	now      func() time.Time
}

func NewPatternInsightRepository(database *gorm.DB) *PatternInsightRepository {
	return &PatternInsightRepository{database: database, now: time.Now}
}

// Upsert writes one row per (profile, supplement, metric). The last write
// wins on every measured column. The caller's struct is not modified.
func (repo *PatternInsightRepository) Upsert(ctx context.Context, insight models.PatternInsight) error {
	now := repo.now().UTC()
	row := insight
	row.ID = 0
	row.CreatedAt = now
	row.UpdatedAt = now

	err := repo.database.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "profile_id"}, {Name: "supplement_id"}, {Name: "metric"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"effect_size", "confidence_score", "sample_size", "status", "pre_mean", "post_mean", "updated_at",
			}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("%w: %s/%s: %w", ErrInsightUpsertFailed, insight.SupplementID, insight.Metric, err)
	}
	return nil
}

func (repo *PatternInsightRepository) ListByProfile(ctx context.Context, profileID uint) ([]models.PatternInsight, error) {
	insights := make([]models.PatternInsight, 0)
	if err := repo.database.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("supplement_id ASC, metric ASC").
		Find(&insights).Error; err != nil {
		return nil, err
	}
	return insights, nil
}

func (repo *PatternInsightRepository) FindByKey(ctx context.Context, profileID uint, supplementID string, metric string) (models.PatternInsight, bool, error) {
	insight := models.PatternInsight{}
	result := repo.database.WithContext(ctx).
		Where("profile_id = ? AND supplement_id = ? AND metric = ?", profileID, supplementID, metric).
		Limit(1).
		Find(&insight)
	if result.Error != nil {
		return models.PatternInsight{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.PatternInsight{}, false, nil
	}
	return insight, true, nil
}
