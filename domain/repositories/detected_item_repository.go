package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"decorlens/domain/models"
)

type DetectedItemRepository interface {
	// CreateBatch inserts all items in a single statement: all rows or none
	CreateBatch(ctx context.Context, items []*models.DetectedItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.DetectedItem, error)
	GetByBoard(ctx context.Context, boardID uuid.UUID) ([]models.DetectedItem, error)
	CountByBoard(ctx context.Context, boardID uuid.UUID) (int64, error)

	// Enrichment writes never touch id or board_id
	UpdateDetails(ctx context.Context, id uuid.UUID, materials []string, dimensions *models.ItemDimensions) error
	UpdateCarpenterSpec(ctx context.Context, id uuid.UUID, spec datatypes.JSON) error
}
