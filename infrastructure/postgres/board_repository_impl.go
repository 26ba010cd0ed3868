package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"decorlens/domain/models"
	"decorlens/domain/repositories"
)

type BoardRepositoryImpl struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) repositories.BoardRepository {
	return &BoardRepositoryImpl{db: db}
}

func (r *BoardRepositoryImpl) Create(ctx context.Context, board *models.Board) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(board).Error
}

func (r *BoardRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Board, error) {
	var board models.Board
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&board).Error
	if err != nil {
		return nil, err
	}
	return &board, nil
}

func (r *BoardRepositoryImpl) UpdateAnalysis(ctx context.Context, id uuid.UUID, status models.BoardStatus, count int) error {
	return r.updates(ctx, id, map[string]interface{}{
		"status":               status,
		"detected_items_count": count,
	})
}

func (r *BoardRepositoryImpl) UpdateCount(ctx context.Context, id uuid.UUID, count int) error {
	return r.updates(ctx, id, map[string]interface{}{"detected_items_count": count})
}

func (r *BoardRepositoryImpl) UpdateRoomMaterials(ctx context.Context, id uuid.UUID, notes datatypes.JSON) error {
	return r.updates(ctx, id, map[string]interface{}{"room_materials": notes})
}

func (r *BoardRepositoryImpl) updates(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.Board{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BoardRepositoryImpl) CountByStatus(ctx context.Context, status models.BoardStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Board{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// ListCountDrift finds boards whose detected_items_count no longer matches their rows
func (r *BoardRepositoryImpl) ListCountDrift(ctx context.Context, limit int) ([]repositories.BoardCountDrift, error) {
	if limit <= 0 {
		limit = 500
	}

	var drift []repositories.BoardCountDrift
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			b.id AS board_id,
			b.detected_items_count AS stored_count,
			COUNT(d.id) AS actual_count
		FROM boards b
		LEFT JOIN detected_items d ON d.board_id = b.id
		GROUP BY b.id, b.detected_items_count
		HAVING b.detected_items_count <> COUNT(d.id)
		LIMIT ?
	`, limit).Scan(&drift).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return drift, nil
}
