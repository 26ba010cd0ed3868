package serviceimpl

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"decorlens/domain/models"
	"decorlens/domain/repositories"
	"decorlens/domain/services"
	"decorlens/infrastructure/metrics"
	"decorlens/pkg/logger"
)

// Placeholder scoring: the first candidate scores topScore, each next one scoreStep less
const (
	topScore  = 0.95
	scoreStep = 0.05
)

type ProductServiceImpl struct {
	itemRepo    repositories.DetectedItemRepository
	productRepo repositories.ProductRepository
	matchRepo   repositories.MatchRepository
	provider    services.CatalogSearchProvider
	candidates  int
	metrics     *metrics.Metrics
}

func NewProductService(
	itemRepo repositories.DetectedItemRepository,
	productRepo repositories.ProductRepository,
	matchRepo repositories.MatchRepository,
	provider services.CatalogSearchProvider,
	candidates int,
	m *metrics.Metrics,
) services.ProductService {
	if candidates <= 0 {
		candidates = 4
	}
	return &ProductServiceImpl{
		itemRepo:    itemRepo,
		productRepo: productRepo,
		matchRepo:   matchRepo,
		provider:    provider,
		candidates:  candidates,
		metrics:     m,
	}
}

// SearchProducts returns stored matches for the item in their stored order.
// On the first call it asks the catalog provider for candidates and stores
// them with descending scores, flagging the first as the top pick.
func (s *ProductServiceImpl) SearchProducts(ctx context.Context, itemID uuid.UUID) ([]models.ItemProductMatch, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to load detected item: %w", err)
	}

	existing, err := s.matchRepo.GetByItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load matches: %w", err)
	}
	if len(existing) > 0 {
		return existing, nil
	}

	products, err := s.provider.Search(ctx, item, s.candidates)
	if err != nil {
		logger.CatalogError("search_failed", "Catalog search failed", err, map[string]interface{}{
			"item_id":  itemID.String(),
			"provider": s.provider.Name(),
		})
		return nil, fmt.Errorf("catalog search failed: %w", err)
	}
	if len(products) == 0 {
		return []models.ItemProductMatch{}, nil
	}

	products, err = s.storeProducts(ctx, products)
	if err != nil {
		return nil, err
	}

	matches := make([]*models.ItemProductMatch, 0, len(products))
	for i, product := range products {
		matches = append(matches, &models.ItemProductMatch{
			DetectedItemID: itemID,
			ProductID:      product.ID,
			MatchScore:     matchScore(i),
			IsTopPick:      i == 0,
		})
	}
	if err := s.matchRepo.CreateBatch(ctx, matches); err != nil {
		return nil, fmt.Errorf("failed to store matches: %w", err)
	}
	s.metrics.RecordMatchesCreated(len(matches))

	logger.Catalog("matches_created", "Synthesized product matches", map[string]interface{}{
		"item_id":  itemID.String(),
		"provider": s.provider.Name(),
		"count":    len(matches),
	})

	return s.matchRepo.GetByItem(ctx, itemID)
}

// storeProducts inserts the candidates, keeping rows whose external id is
// already stored, and returns the stored rows in candidate order.
func (s *ProductServiceImpl) storeProducts(ctx context.Context, products []*models.Product) ([]*models.Product, error) {
	if err := s.productRepo.CreateBatch(ctx, products); err != nil {
		return nil, fmt.Errorf("failed to store products: %w", err)
	}

	externalIDs := make([]string, 0, len(products))
	for _, p := range products {
		externalIDs = append(externalIDs, p.ExternalID)
	}
	stored, err := s.productRepo.GetByExternalIDs(ctx, externalIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	byExternal := make(map[string]models.Product, len(stored))
	for _, p := range stored {
		byExternal[p.ExternalID] = p
	}

	out := make([]*models.Product, 0, len(products))
	for _, p := range products {
		row, ok := byExternal[p.ExternalID]
		if !ok {
			return nil, fmt.Errorf("product %s missing after insert", p.ExternalID)
		}
		out = append(out, &row)
	}
	return out, nil
}

func matchScore(rank int) float64 {
	score := topScore - float64(rank)*scoreStep
	if score < 0 {
		return 0
	}
	// Avoid 0.8999999 style float noise in stored scores
	return float64(int(score*100+0.5)) / 100
}
