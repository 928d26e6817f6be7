package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/terraincognita07/stackcheck/internal/models"
	"gorm.io/gorm"
)

type SupplementRepository struct {
	database *gorm.DB
}

func NewSupplementRepository(database *gorm.DB) *SupplementRepository {
	return &SupplementRepository{database: database}
}

func (repo *SupplementRepository) ListByProfile(ctx context.Context, profileID uint) ([]models.Supplement, error) {
	supplements := make([]models.Supplement, 0)
	if err := repo.database.WithContext(ctx).
		Preload("Ranges", func(tx *gorm.DB) *gorm.DB { return tx.Order("start_date ASC, id ASC") }).
		Where("profile_id = ?", profileID).
		Order("name ASC, id ASC").
		Find(&supplements).Error; err != nil {
		return nil, err
	}
	return supplements, nil
}

func (repo *SupplementRepository) FindByProfileAndID(ctx context.Context, profileID uint, supplementID uuid.UUID) (models.Supplement, bool, error) {
	supplement := models.Supplement{}
	result := repo.database.WithContext(ctx).
		Preload("Ranges", func(tx *gorm.DB) *gorm.DB { return tx.Order("start_date ASC, id ASC") }).
		Where("profile_id = ? AND id = ?", profileID, supplementID).
		Limit(1).
		Find(&supplement)
	if result.Error != nil {
		return models.Supplement{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Supplement{}, false, nil
	}
	return supplement, true, nil
}

func (repo *SupplementRepository) Create(ctx context.Context, supplement *models.Supplement) error {
	return repo.database.WithContext(ctx).Create(supplement).Error
}
