package repositories

import (
	"context"

	"github.com/google/uuid"

	"decorlens/domain/models"
)

type MatchRepository interface {
	CreateBatch(ctx context.Context, matches []*models.ItemProductMatch) error
	// GetByItem returns matches joined with their products, highest score first
	GetByItem(ctx context.Context, itemID uuid.UUID) ([]models.ItemProductMatch, error)
	CountByItem(ctx context.Context, itemID uuid.UUID) (int64, error)
}
