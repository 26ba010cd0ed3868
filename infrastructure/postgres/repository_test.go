package postgres_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"decorlens/domain/models"
	"decorlens/infrastructure/postgres"
	"decorlens/infrastructure/postgres/testutil"
)

func strPtr(s string) *string { return &s }

func seedBoard(t *testing.T, db *gorm.DB) *models.Board {
	t.Helper()
	board := &models.Board{SourceImageURL: "https://img.example.com/room.jpg"}
	require.NoError(t, postgres.NewBoardRepository(db).Create(context.Background(), board))
	return board
}

func TestBoardRepository(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := postgres.NewBoardRepository(db)

	board := seedBoard(t, db)
	assert.NotEqual(t, uuid.Nil, board.ID)

	got, err := repo.GetByID(ctx, board.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BoardStatusUploaded, got.Status)
	assert.Equal(t, 0, got.DetectedItemsCount)

	require.NoError(t, repo.UpdateAnalysis(ctx, board.ID, models.BoardStatusAnalyzed, 3))
	got, err = repo.GetByID(ctx, board.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BoardStatusAnalyzed, got.Status)
	assert.Equal(t, 3, got.DetectedItemsCount)

	require.NoError(t, repo.UpdateRoomMaterials(ctx, board.ID, datatypes.JSON(`{"floor":"oak"}`)))
	got, err = repo.GetByID(ctx, board.ID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"floor":"oak"}`, string(got.RoomMaterials))

	analyzed, err := repo.CountByStatus(ctx, models.BoardStatusAnalyzed)
	require.NoError(t, err)
	assert.Equal(t, int64(1), analyzed)

	err = repo.UpdateCount(ctx, uuid.New(), 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestBoardRepository_ListCountDrift(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	boards := postgres.NewBoardRepository(db)
	items := postgres.NewDetectedItemRepository(db)

	consistent := seedBoard(t, db)
	drifted := seedBoard(t, db)

	require.NoError(t, items.CreateBatch(ctx, []*models.DetectedItem{
		{BoardID: consistent.ID, ItemName: "Lamp", Category: models.CategoryLighting},
	}))
	require.NoError(t, boards.UpdateCount(ctx, consistent.ID, 1))

	require.NoError(t, items.CreateBatch(ctx, []*models.DetectedItem{
		{BoardID: drifted.ID, ItemName: "Sofa", Category: models.CategorySeating},
		{BoardID: drifted.ID, ItemName: "Rug", Category: models.CategoryRugs},
	}))

	drift, err := boards.ListCountDrift(ctx, 10)
	require.NoError(t, err)
	require.Len(t, drift, 1)
	assert.Equal(t, drifted.ID, drift[0].BoardID)
	assert.Equal(t, 0, drift[0].StoredCount)
	assert.Equal(t, 2, drift[0].ActualCount)
}

func TestDetectedItemRepository(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := postgres.NewDetectedItemRepository(db)
	board := seedBoard(t, db)

	desc := "Three seat sofa"
	batch := []*models.DetectedItem{
		{
			BoardID:       board.ID,
			ItemName:      "Grey Sofa",
			Category:      models.CategorySeating,
			Style:         "Modern",
			DominantColor: strPtr("grey"),
			Materials:     []string{"linen", "oak"},
			Tags:          []string{"living room"},
			Description:   &desc,
			Confidence:    0.9,
		},
		{BoardID: board.ID, ItemName: "Vase", Category: models.CategoryDecor, Style: "Modern", Materials: []string{}, Tags: []string{}, Confidence: 0.5},
	}
	require.NoError(t, repo.CreateBatch(ctx, batch))
	require.NoError(t, repo.CreateBatch(ctx, nil))

	count, err := repo.CountByBoard(ctx, board.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	got, err := repo.GetByID(ctx, batch[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"linen", "oak"}, got.Materials)
	assert.Equal(t, "grey", *got.DominantColor)
	assert.Nil(t, got.Dimensions)
	assert.Equal(t, models.ItemSourceInitial, got.Source)

	dims := &models.ItemDimensions{Width: "84 in", Height: "34 in"}
	require.NoError(t, repo.UpdateDetails(ctx, batch[1].ID, []string{"ceramic"}, dims))

	got, err = repo.GetByID(ctx, batch[1].ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"ceramic"}, got.Materials)
	require.NotNil(t, got.Dimensions)
	assert.Equal(t, "84 in", got.Dimensions.Width)
	assert.Equal(t, board.ID, got.BoardID)
	assert.Equal(t, "Vase", got.ItemName)

	require.NoError(t, repo.UpdateCarpenterSpec(ctx, batch[0].ID, datatypes.JSON(`{"joinery":"dowel"}`)))
	got, err = repo.GetByID(ctx, batch[0].ID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"joinery":"dowel"}`, string(got.CarpenterSpec))

	list, err := repo.GetByBoard(ctx, board.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	err = repo.UpdateDetails(ctx, uuid.New(), nil, nil)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMatchRepository_OrderedWithProducts(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	board := seedBoard(t, db)

	item := &models.DetectedItem{BoardID: board.ID, ItemName: "Rug", Category: models.CategoryRugs}
	require.NoError(t, postgres.NewDetectedItemRepository(db).CreateBatch(ctx, []*models.DetectedItem{item}))

	products := []*models.Product{
		{ExternalID: "p-1", ProductName: "Wool Rug", Merchant: "Wayfair", Price: 199},
		{ExternalID: "p-2", ProductName: "Jute Rug", Merchant: "Target", Price: 89},
	}
	productRepo := postgres.NewProductRepository(db)
	require.NoError(t, productRepo.CreateBatch(ctx, products))

	found, err := productRepo.GetByExternalIDs(ctx, []string{"p-1", "p-2", "missing"})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	matchRepo := postgres.NewMatchRepository(db)
	require.NoError(t, matchRepo.CreateBatch(ctx, []*models.ItemProductMatch{
		{DetectedItemID: item.ID, ProductID: products[1].ID, MatchScore: 0.90},
		{DetectedItemID: item.ID, ProductID: products[0].ID, MatchScore: 0.95, IsTopPick: true},
	}))

	matches, err := matchRepo.GetByItem(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.True(t, matches[0].IsTopPick)
	assert.Equal(t, "Wool Rug", matches[0].Product.ProductName)
	assert.Equal(t, "Jute Rug", matches[1].Product.ProductName)

	count, err := matchRepo.CountByItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// An already matched (item, product) pair is left as stored
	err = matchRepo.CreateBatch(ctx, []*models.ItemProductMatch{
		{DetectedItemID: item.ID, ProductID: products[0].ID, MatchScore: 0.5},
	})
	require.NoError(t, err)

	matches, err = matchRepo.GetByItem(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, 0.95, matches[0].MatchScore)
	assert.True(t, matches[0].IsTopPick)
}

func TestProductRepository_CreateBatchKeepsStoredExternalIDs(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := postgres.NewProductRepository(db)

	first := &models.Product{ExternalID: "p-1", ProductName: "Oak Desk", Price: 240}
	require.NoError(t, repo.CreateBatch(ctx, []*models.Product{first}))

	again := &models.Product{ExternalID: "p-1", ProductName: "Renamed Desk", Price: 1}
	other := &models.Product{ExternalID: "p-2", ProductName: "Pine Desk", Price: 120}
	require.NoError(t, repo.CreateBatch(ctx, []*models.Product{again, other}))

	found, err := repo.GetByExternalIDs(ctx, []string{"p-1", "p-2"})
	require.NoError(t, err)
	require.Len(t, found, 2)

	byExternal := map[string]models.Product{}
	for _, p := range found {
		byExternal[p.ExternalID] = p
	}
	assert.Equal(t, first.ID, byExternal["p-1"].ID)
	assert.Equal(t, "Oak Desk", byExternal["p-1"].ProductName)
	assert.Equal(t, other.ID, byExternal["p-2"].ID)
}
