package services

import (
	"context"

	"github.com/google/uuid"

	"decorlens/domain/models"
)

type ProductService interface {
	// SearchProducts returns stored matches for the item, creating them on first call
	SearchProducts(ctx context.Context, itemID uuid.UUID) ([]models.ItemProductMatch, error)
}
