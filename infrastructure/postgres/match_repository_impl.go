package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"decorlens/domain/models"
	"decorlens/domain/repositories"
)

type MatchRepositoryImpl struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) repositories.MatchRepository {
	return &MatchRepositoryImpl{db: db}
}

// CreateBatch ignores item/product pairs that are already matched
func (r *MatchRepositoryImpl) CreateBatch(ctx context.Context, matches []*models.ItemProductMatch) error {
	if len(matches) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "detected_item_id"}, {Name: "product_id"}},
			DoNothing: true,
		}).
		Create(matches).Error
}

func (r *MatchRepositoryImpl) GetByItem(ctx context.Context, itemID uuid.UUID) ([]models.ItemProductMatch, error) {
	var matches []models.ItemProductMatch
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("detected_item_id = ?", itemID).
		Order("match_score DESC").
		Order("created_at ASC").
		Find(&matches).Error
	return matches, err
}

func (r *MatchRepositoryImpl) CountByItem(ctx context.Context, itemID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ItemProductMatch{}).Where("detected_item_id = ?", itemID).Count(&count).Error
	return count, err
}
