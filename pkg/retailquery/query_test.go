package retailquery

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name  string
		attrs Attributes
		want  string
	}{
		{
			name:  "sofa shape equal to sofa is suppressed",
			attrs: Attributes{Category: "sofa", Shape: "sofa", Seating: "3", Width: "90"},
			want:  "sectional sofa 3 seater under 90 inches",
		},
		{
			name:  "sofa with shape",
			attrs: Attributes{Category: "sofa", Color: "grey", Fabric: "velvet", Shape: "L-shaped"},
			want:  "grey velvet L-shaped sectional sofa",
		},
		{
			name:  "rug shape equal to rug is suppressed",
			attrs: Attributes{Category: "rug", Shape: "rug", Width: "8", Length: "10"},
			want:  "area rug under 8x10 feet",
		},
		{
			name:  "rug needs both dimensions",
			attrs: Attributes{Category: "rug", Shape: "round", Width: "8"},
			want:  "round area rug",
		},
		{
			name:  "desk style equal to desk is suppressed",
			attrs: Attributes{Category: "desk", Style: "desk", Width: "48", Depth: "24"},
			want:  "desk under 48 inches wide under 24 inches deep",
		},
		{
			name:  "dining table",
			attrs: Attributes{Category: "dining-table", Material: "oak", Shape: "round", Seating: "6", Length: "72"},
			want:  "oak round dining table 6 seater under 72 inches",
		},
		{
			name:  "bed repeats style",
			attrs: Attributes{Category: "bed", Size: "queen", Style: "platform", Height: "14"},
			want:  "queen bed frame platform under 14 inches high",
		},
		{
			name:  "fabric wins over material",
			attrs: Attributes{Category: "sofa", Material: "leather", Fabric: "linen"},
			want:  "linen sectional sofa",
		},
		{
			name:  "unknown category keeps color and material only",
			attrs: Attributes{Category: "lamp", Color: "black", Material: "brass", Width: "20"},
			want:  "black brass",
		},
		{
			name:  "suffix order",
			attrs: Attributes{Category: "rug", EasyReturns: true, LowestPrice: true},
			want:  "area rug easy returns budget",
		},
		{
			name:  "blank sofa shape is absent",
			attrs: Attributes{Category: "sofa", Shape: " "},
			want:  "sectional sofa",
		},
		{
			name:  "blank dining table shape is absent",
			attrs: Attributes{Category: "dining-table", Shape: "\t", Seating: "4"},
			want:  "dining table 4 seater",
		},
		{
			name:  "blank bed size and style are absent",
			attrs: Attributes{Category: "bed", Size: "  ", Style: " "},
			want:  "bed frame",
		},
		{
			name:  "blank desk style is absent",
			attrs: Attributes{Category: "desk", Style: "   ", Width: "48"},
			want:  "desk under 48 inches wide",
		},
		{
			name:  "padded values are trimmed",
			attrs: Attributes{Category: " rug ", Color: " ivory ", Material: " jute", Shape: "round ", Width: " 5", Length: "8 "},
			want:  "ivory jute round area rug under 5x8 feet",
		},
		{
			name:  "literal suppression ignores case",
			attrs: Attributes{Category: "sofa", Shape: "Sofa"},
			want:  "sectional sofa",
		},
		{
			name:  "budget alone",
			attrs: Attributes{Category: "desk", LowestPrice: true},
			want:  "desk budget",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Build(tt.attrs))
		})
	}
}

func TestBuild_SuffixesForEveryCategory(t *testing.T) {
	for _, category := range []string{CategorySofa, CategoryDiningTable, CategoryRug, CategoryBed, CategoryDesk, "other"} {
		plain := Build(Attributes{Category: category, Color: "white"})
		flagged := Build(Attributes{Category: category, Color: "white", EasyReturns: true, LowestPrice: true})
		assert.Equal(t, plain+" easy returns budget", flagged, category)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	a := Attributes{Category: "sofa", Color: "blue", Fabric: "boucle", Shape: "curved", Seating: "4", Width: "100"}
	assert.Equal(t, Build(a), Build(a))
}

func TestAttributes_UnmarshalMeasures(t *testing.T) {
	var a Attributes
	err := json.Unmarshal([]byte(`{"category":"sofa","shape":"sofa","seating":3,"width":"90","length":null}`), &a)
	require.NoError(t, err)

	assert.Equal(t, Measure("3"), a.Seating)
	assert.Equal(t, Measure("90"), a.Width)
	assert.Equal(t, Measure(""), a.Length)
	assert.Equal(t, "sectional sofa 3 seater under 90 inches", Build(a))

	require.NoError(t, json.Unmarshal([]byte(`{"category":"rug","width":7.5,"length":9.5}`), &a))
	assert.Equal(t, "area rug under 7.5x9.5 feet", Build(a))
}

func TestSearchURL(t *testing.T) {
	aff := Affiliate{AmazonTag: "decorlens-20", WayfairRef: "dl1"}

	assert.Equal(t, "https://www.amazon.com/s?k=area+rug&tag=decorlens-20", SearchURL(RetailerAmazon, "area rug", aff))
	assert.Equal(t, "https://www.wayfair.com/keyword.php?keyword=area+rug&refid=dl1", SearchURL(RetailerWayfair, "area rug", aff))
	assert.Equal(t, "https://www.target.com/s?searchTerm=area+rug", SearchURL(RetailerTarget, "area rug", aff))
	assert.Equal(t, "https://www.ikea.com/us/en/search/?q=area+rug", SearchURL(RetailerIKEA, "area rug", aff))
	assert.Equal(t, "https://www.amazon.com/s?k=desk", SearchURL(RetailerAmazon, "desk", Affiliate{}))
	assert.Empty(t, SearchURL(Retailer("ebay"), "desk", aff))

	links := Links("desk", aff)
	require.Len(t, links, len(Retailers))
	assert.Equal(t, RetailerAmazon, links[0].Retailer)
}
