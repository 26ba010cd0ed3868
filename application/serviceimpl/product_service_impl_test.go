package serviceimpl

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"decorlens/domain/models"
	"decorlens/domain/services"
	"decorlens/infrastructure/catalog"
	"decorlens/infrastructure/postgres"
	"decorlens/infrastructure/postgres/testutil"
	"decorlens/pkg/retailquery"
)

type failingProvider struct{}

func (failingProvider) Name() string { return "failing" }

func (failingProvider) Search(context.Context, *models.DetectedItem, int) ([]*models.Product, error) {
	return nil, errors.New("catalog offline")
}

func newProductFixture(t *testing.T, provider services.CatalogSearchProvider) (services.ProductService, *models.DetectedItem) {
	t.Helper()
	db := testutil.DB(t)
	ctx := context.Background()

	board := &models.Board{SourceImageURL: "https://img.example.com/room.jpg"}
	require.NoError(t, postgres.NewBoardRepository(db).Create(ctx, board))

	itemRepo := postgres.NewDetectedItemRepository(db)
	item := &models.DetectedItem{BoardID: board.ID, ItemName: "Grey Sofa", Category: models.CategorySeating, Style: "Modern"}
	require.NoError(t, itemRepo.CreateBatch(ctx, []*models.DetectedItem{item}))

	svc := NewProductService(itemRepo, postgres.NewProductRepository(db), postgres.NewMatchRepository(db), provider, 4, nil)
	return svc, item
}

func TestSearchProducts_SynthesizesRankedMatches(t *testing.T) {
	svc, item := newProductFixture(t, catalog.NewPlaceholderProvider(retailquery.Affiliate{}))

	matches, err := svc.SearchProducts(context.Background(), item.ID)
	require.NoError(t, err)
	require.Len(t, matches, 4)

	topPicks := 0
	for i, m := range matches {
		if m.IsTopPick {
			topPicks++
			assert.Equal(t, 0, i, "top pick must be the highest scored match")
		}
		if i > 0 {
			assert.LessOrEqual(t, m.MatchScore, matches[i-1].MatchScore)
		}
		assert.Equal(t, item.ID, m.DetectedItemID)
		assert.Equal(t, m.ProductID, m.Product.ID)
		assert.NotEmpty(t, m.Product.ProductURL)
	}
	assert.Equal(t, 1, topPicks)
	assert.Equal(t, []float64{0.95, 0.9, 0.85, 0.8}, []float64{
		matches[0].MatchScore, matches[1].MatchScore, matches[2].MatchScore, matches[3].MatchScore,
	})
}

func TestSearchProducts_SecondCallReturnsStoredMatches(t *testing.T) {
	svc, item := newProductFixture(t, catalog.NewPlaceholderProvider(retailquery.Affiliate{}))
	ctx := context.Background()

	first, err := svc.SearchProducts(ctx, item.ID)
	require.NoError(t, err)

	second, err := svc.SearchProducts(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, second, len(first))

	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].ProductID, second[i].ProductID)
		assert.Equal(t, first[i].MatchScore, second[i].MatchScore)
		assert.Equal(t, first[i].IsTopPick, second[i].IsTopPick)
	}
}

type fixedProvider struct {
	externalIDs []string
}

func (fixedProvider) Name() string { return "fixed" }

func (p fixedProvider) Search(_ context.Context, item *models.DetectedItem, limit int) ([]*models.Product, error) {
	var out []*models.Product
	for i, id := range p.externalIDs {
		if i == limit {
			break
		}
		out = append(out, &models.Product{ExternalID: id, ProductName: item.ItemName, Price: 100})
	}
	return out, nil
}

func TestSearchProducts_ReusesProductsStoredByAnotherRequest(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()

	board := &models.Board{SourceImageURL: "https://img.example.com/room.jpg"}
	require.NoError(t, postgres.NewBoardRepository(db).Create(ctx, board))
	itemRepo := postgres.NewDetectedItemRepository(db)
	item := &models.DetectedItem{BoardID: board.ID, ItemName: "Walnut Desk", Category: models.CategoryTables, Style: "Modern"}
	require.NoError(t, itemRepo.CreateBatch(ctx, []*models.DetectedItem{item}))

	// Another request stored the first candidate between our lookup and insert
	productRepo := postgres.NewProductRepository(db)
	stored := &models.Product{ExternalID: "ext-1", ProductName: "Walnut Desk", Price: 100}
	require.NoError(t, productRepo.CreateBatch(ctx, []*models.Product{stored}))

	matchRepo := postgres.NewMatchRepository(db)
	svc := NewProductService(itemRepo, productRepo, matchRepo, fixedProvider{externalIDs: []string{"ext-1", "ext-2"}}, 4, nil)

	matches, err := svc.SearchProducts(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, stored.ID, matches[0].ProductID)
	assert.True(t, matches[0].IsTopPick)
	assert.False(t, matches[1].IsTopPick)

	// A second writer inserting the same pairs changes nothing
	require.NoError(t, matchRepo.CreateBatch(ctx, []*models.ItemProductMatch{
		{DetectedItemID: item.ID, ProductID: stored.ID, MatchScore: 0.95, IsTopPick: true},
	}))
	again, err := svc.SearchProducts(ctx, item.ID)
	require.NoError(t, err)
	assert.Len(t, again, 2)
}

func TestSearchProducts_Errors(t *testing.T) {
	svc, item := newProductFixture(t, failingProvider{})

	_, err := svc.SearchProducts(context.Background(), uuid.New())
	assert.ErrorIs(t, err, services.ErrItemNotFound)

	_, err = svc.SearchProducts(context.Background(), item.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog offline")
}

func TestMatchScore(t *testing.T) {
	assert.Equal(t, 0.95, matchScore(0))
	assert.Equal(t, 0.8, matchScore(3))
	assert.Equal(t, 0.0, matchScore(40))
}
