package repositories

import (
	"context"

	"github.com/google/uuid"

	"decorlens/domain/models"
)

type ProductRepository interface {
	CreateBatch(ctx context.Context, products []*models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetByExternalIDs(ctx context.Context, externalIDs []string) ([]models.Product, error)
}
