package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"decorlens/domain/models"
	"decorlens/domain/repositories"
)

type DetectedItemRepositoryImpl struct {
	db *gorm.DB
}

func NewDetectedItemRepository(db *gorm.DB) repositories.DetectedItemRepository {
	return &DetectedItemRepositoryImpl{db: db}
}

// CreateBatch issues a single INSERT so the batch lands atomically
func (r *DetectedItemRepositoryImpl) CreateBatch(ctx context.Context, items []*models.DetectedItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(items).Error
}

func (r *DetectedItemRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.DetectedItem, error) {
	var item models.DetectedItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *DetectedItemRepositoryImpl) GetByBoard(ctx context.Context, boardID uuid.UUID) ([]models.DetectedItem, error) {
	var items []models.DetectedItem
	err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *DetectedItemRepositoryImpl) CountByBoard(ctx context.Context, boardID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.DetectedItem{}).Where("board_id = ?", boardID).Count(&count).Error
	return count, err
}

func (r *DetectedItemRepositoryImpl) UpdateDetails(ctx context.Context, id uuid.UUID, materials []string, dimensions *models.ItemDimensions) error {
	item := models.DetectedItem{Materials: materials, Dimensions: dimensions}
	result := r.db.WithContext(ctx).
		Model(&models.DetectedItem{ID: id}).
		Select("materials", "dimensions").
		Updates(&item)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *DetectedItemRepositoryImpl) UpdateCarpenterSpec(ctx context.Context, id uuid.UUID, spec datatypes.JSON) error {
	return r.db.WithContext(ctx).
		Model(&models.DetectedItem{}).
		Where("id = ?", id).
		Update("carpenter_spec", spec).Error
}
