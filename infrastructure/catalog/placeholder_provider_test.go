package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"decorlens/domain/models"
	"decorlens/pkg/retailquery"
)

func strPtr(s string) *string { return &s }

func TestPlaceholderProvider_Search(t *testing.T) {
	p := NewPlaceholderProvider(retailquery.Affiliate{AmazonTag: "tag-20"})
	item := &models.DetectedItem{
		ID:            uuid.New(),
		ItemName:      "Grey Sofa",
		Category:      models.CategorySeating,
		Style:         "Modern",
		DominantColor: strPtr("grey"),
		Materials:     []string{"linen", "oak"},
	}

	products, err := p.Search(context.Background(), item, 4)
	require.NoError(t, err)
	require.Len(t, products, 4)

	seen := map[string]bool{}
	for i, product := range products {
		assert.False(t, seen[product.ExternalID], "external ids must be unique")
		seen[product.ExternalID] = true
		assert.Equal(t, placeholderImages[models.CategorySeating], product.ImageURL)
		assert.Equal(t, string(retailquery.Retailers[i]), product.Merchant)
		assert.Equal(t, "grey", *product.Color)
		assert.True(t, strings.HasSuffix(product.ProductName, "Grey Sofa"))
	}
	assert.Equal(t, "https://www.amazon.com/s?k=grey+linen+sectional+sofa&tag=tag-20", products[0].ProductURL)

	again, err := p.Search(context.Background(), item, 4)
	require.NoError(t, err)
	assert.Equal(t, products[2].ExternalID, again[2].ExternalID)
}

func TestPlaceholderProvider_UnknownCategory(t *testing.T) {
	p := NewPlaceholderProvider(retailquery.Affiliate{})
	item := &models.DetectedItem{ID: uuid.New(), ItemName: "Vase", Category: models.CategoryOther}

	products, err := p.Search(context.Background(), item, 2)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, defaultPlaceholderImage, products[0].ImageURL)
	assert.Equal(t, "https://www.amazon.com/s?k=Vase", products[0].ProductURL)

	none, err := p.Search(context.Background(), item, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestQueryForItem(t *testing.T) {
	rug := &models.DetectedItem{
		ItemName:   "Jute Area Rug",
		Category:   models.CategoryRugs,
		Materials:  []string{"jute"},
		Dimensions: &models.ItemDimensions{Width: "8", Length: "10"},
	}
	assert.Equal(t, "jute area rug under 8x10 feet", QueryForItem(rug))

	desk := &models.DetectedItem{
		ItemName:   "Writing Desk",
		Category:   models.CategoryTables,
		Style:      "Industrial",
		Dimensions: &models.ItemDimensions{Width: "48 in", Depth: "24\""},
	}
	assert.Equal(t, "Industrial desk under 48 inches wide under 24 inches deep", QueryForItem(desk))
}
