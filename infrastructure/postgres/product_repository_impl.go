package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"decorlens/domain/models"
	"decorlens/domain/repositories"
)

type ProductRepositoryImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) repositories.ProductRepository {
	return &ProductRepositoryImpl{db: db}
}

// CreateBatch skips products whose external id is already stored. Skipped
// rows keep the ID generated for them, so callers re-read by external id.
func (r *ProductRepositoryImpl) CreateBatch(ctx context.Context, products []*models.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "external_id"}}, DoNothing: true}).
		CreateInBatches(products, 50).Error
}

func (r *ProductRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepositoryImpl) GetByExternalIDs(ctx context.Context, externalIDs []string) ([]models.Product, error) {
	var products []models.Product
	if len(externalIDs) == 0 {
		return products, nil
	}
	err := r.db.WithContext(ctx).Where("external_id IN ?", externalIDs).Find(&products).Error
	return products, err
}
