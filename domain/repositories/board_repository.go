package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"decorlens/domain/models"
)

// BoardCountDrift describes a board whose stored count disagrees with its rows
type BoardCountDrift struct {
	BoardID     uuid.UUID
	StoredCount int
	ActualCount int
}

type BoardRepository interface {
	Create(ctx context.Context, board *models.Board) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Board, error)

	// UpdateAnalysis sets status and detected_items_count in one statement
	UpdateAnalysis(ctx context.Context, id uuid.UUID, status models.BoardStatus, count int) error
	UpdateCount(ctx context.Context, id uuid.UUID, count int) error
	UpdateRoomMaterials(ctx context.Context, id uuid.UUID, notes datatypes.JSON) error

	CountByStatus(ctx context.Context, status models.BoardStatus) (int64, error)
	ListCountDrift(ctx context.Context, limit int) ([]BoardCountDrift, error)
}
