// Package catalog holds CatalogSearchProvider implementations
package catalog

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"decorlens/domain/models"
	"decorlens/pkg/retailquery"
)

// Category-keyed stock imagery for synthesized products
var placeholderImages = map[string]string{
	models.CategorySeating:  "https://images.unsplash.com/photo-1555041469-a586c61ea9bc?w=600",
	models.CategoryTables:   "https://images.unsplash.com/photo-1533090481720-856c6e3c1fdc?w=600",
	models.CategoryLighting: "https://images.unsplash.com/photo-1507473885765-e6ed057f782c?w=600",
	models.CategoryRugs:     "https://images.unsplash.com/photo-1600166898405-da9535204843?w=600",
	models.CategoryStorage:  "https://images.unsplash.com/photo-1595428774223-ef52624120d2?w=600",
	models.CategoryDecor:    "https://images.unsplash.com/photo-1513519245088-0e12902e5a38?w=600",
}

const defaultPlaceholderImage = "https://images.unsplash.com/photo-1586023492125-27b2c045efd7?w=600"

// Name variants, one per candidate slot
var variants = []struct {
	prefix string
	price  float64
	rating float64
}{
	{"", 1.0, 4.6},
	{"Premium", 1.6, 4.8},
	{"Classic", 0.8, 4.3},
	{"Compact", 0.6, 4.1},
	{"Designer", 2.2, 4.7},
	{"Essential", 0.5, 3.9},
}

// Base prices in USD by item category
var basePrices = map[string]float64{
	models.CategorySeating:  899,
	models.CategoryTables:   549,
	models.CategoryLighting: 129,
	models.CategoryRugs:     249,
	models.CategoryStorage:  399,
	models.CategoryDecor:    59,
}

// PlaceholderProvider synthesizes candidate products from the item's own
// attributes. Product links point at retailer search pages for the item.
type PlaceholderProvider struct {
	affiliate retailquery.Affiliate
}

func NewPlaceholderProvider(affiliate retailquery.Affiliate) *PlaceholderProvider {
	return &PlaceholderProvider{affiliate: affiliate}
}

func (p *PlaceholderProvider) Name() string {
	return "placeholder"
}

func (p *PlaceholderProvider) Search(ctx context.Context, item *models.DetectedItem, limit int) ([]*models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return []*models.Product{}, nil
	}

	query := QueryForItem(item)
	image, ok := placeholderImages[item.Category]
	if !ok {
		image = defaultPlaceholderImage
	}
	base, ok := basePrices[item.Category]
	if !ok {
		base = 199
	}

	products := make([]*models.Product, 0, limit)
	for i := 0; i < limit; i++ {
		v := variants[i%len(variants)]
		retailer := retailquery.Retailers[i%len(retailquery.Retailers)]

		name := item.ItemName
		if v.prefix != "" {
			name = v.prefix + " " + name
		}

		products = append(products, &models.Product{
			ExternalID:  fmt.Sprintf("placeholder:%s:%d", item.ID, i),
			Merchant:    string(retailer),
			ProductName: name,
			Category:    item.Category,
			Price:       roundPrice(base * v.price),
			Currency:    "USD",
			ProductURL:  retailquery.SearchURL(retailer, query, p.affiliate),
			ImageURL:    image,
			Color:       item.DominantColor,
			Materials:   append([]string{}, item.Materials...),
			Style:       item.Style,
			Tags:        append([]string{}, item.Tags...),
			Rating:      v.rating,
			ReviewCount: 40 + 37*(i+1),
		})
	}
	return products, nil
}

// QueryForItem builds the retailer query for a detected item
func QueryForItem(item *models.DetectedItem) string {
	attrs := retailquery.Attributes{
		Category: queryCategory(item),
		Style:    item.Style,
	}
	if item.DominantColor != nil {
		attrs.Color = *item.DominantColor
	}
	if len(item.Materials) > 0 {
		attrs.Material = item.Materials[0]
	}
	if d := item.Dimensions; !d.IsEmpty() {
		attrs.Width = measure(d.Width)
		attrs.Length = measure(d.Length)
		attrs.Height = measure(d.Height)
		attrs.Depth = measure(d.Depth)
	}

	query := retailquery.Build(attrs)
	if attrs.Category == "" {
		query = strings.TrimSpace(query + " " + item.ItemName)
	}
	return query
}

// queryCategory maps an item onto one of the query builder's categories,
// or "" when none applies
func queryCategory(item *models.DetectedItem) string {
	name := strings.ToLower(item.ItemName)
	switch {
	case strings.Contains(name, "sofa"), strings.Contains(name, "couch"), strings.Contains(name, "sectional"):
		return retailquery.CategorySofa
	case strings.Contains(name, "dining table"):
		return retailquery.CategoryDiningTable
	case strings.Contains(name, "desk"):
		return retailquery.CategoryDesk
	case strings.Contains(name, "bed"):
		return retailquery.CategoryBed
	case item.Category == models.CategoryRugs || strings.Contains(name, "rug"):
		return retailquery.CategoryRug
	}
	return ""
}

var leadingNumber = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)`)

// measure keeps the number of a model measurement such as "84 in"
func measure(s string) retailquery.Measure {
	m := leadingNumber.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return retailquery.Measure(m[1])
}

func roundPrice(v float64) float64 {
	// Retail style: whole dollars ending in .99
	return float64(int(v)) + 0.99
}
