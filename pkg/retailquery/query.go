// Package retailquery turns structured furniture attributes into retailer
// search strings and search URLs. Everything here is pure.
package retailquery

import "strings"

const (
	CategorySofa        = "sofa"
	CategoryDiningTable = "dining-table"
	CategoryRug         = "rug"
	CategoryBed         = "bed"
	CategoryDesk        = "desk"
)

// Attributes is the attribute bag collected by the furniture forms
type Attributes struct {
	Category string  `json:"category"`
	Color    string  `json:"color,omitempty"`
	Material string  `json:"material,omitempty"`
	Fabric   string  `json:"fabric,omitempty"`
	Shape    string  `json:"shape,omitempty"`
	Style    string  `json:"style,omitempty"`
	Size     string  `json:"size,omitempty"`
	Seating  Measure `json:"seating,omitempty"`
	Width    Measure `json:"width,omitempty"`
	Length   Measure `json:"length,omitempty"`
	Height   Measure `json:"height,omitempty"`
	Depth    Measure `json:"depth,omitempty"`

	EasyReturns bool `json:"easy_returns,omitempty"`
	LowestPrice bool `json:"lowest_price,omitempty"`
}

// Build composes the search string. Token order is color, fabric or
// material, then the category phrase; preference suffixes come last.
func Build(a Attributes) string {
	a = a.trimmed()

	var tokens []string
	add := func(s string) {
		if s != "" {
			tokens = append(tokens, s)
		}
	}

	add(a.Color)
	if a.Fabric != "" {
		add(a.Fabric)
	} else {
		add(a.Material)
	}

	for _, t := range variantTokens(a) {
		add(t)
	}

	query := strings.Join(tokens, " ")
	if a.EasyReturns {
		query += " easy returns"
	}
	if a.LowestPrice {
		query += " budget"
	}
	return query
}

// trimmed strips surrounding whitespace from every text field so a blank
// value counts as absent everywhere.
func (a Attributes) trimmed() Attributes {
	a.Category = strings.TrimSpace(a.Category)
	a.Color = strings.TrimSpace(a.Color)
	a.Material = strings.TrimSpace(a.Material)
	a.Fabric = strings.TrimSpace(a.Fabric)
	a.Shape = strings.TrimSpace(a.Shape)
	a.Size = strings.TrimSpace(a.Size)
	a.Style = strings.TrimSpace(a.Style)
	a.Seating = Measure(strings.TrimSpace(string(a.Seating)))
	a.Width = Measure(strings.TrimSpace(string(a.Width)))
	a.Length = Measure(strings.TrimSpace(string(a.Length)))
	a.Height = Measure(strings.TrimSpace(string(a.Height)))
	a.Depth = Measure(strings.TrimSpace(string(a.Depth)))
	return a
}

// variantTokens expects trimmed attributes. The shape and style literals
// ("sofa", "rug", "desk") are matched case-insensitively, so "Sofa" is
// dropped as well.
func variantTokens(a Attributes) []string {
	present := func(m Measure) bool { return m != "" }
	var out []string

	switch normalizeCategory(a.Category) {
	case CategorySofa:
		if a.Shape != "" && !strings.EqualFold(a.Shape, "sofa") {
			out = append(out, a.Shape+" sectional sofa")
		} else {
			out = append(out, "sectional sofa")
		}
		if present(a.Seating) {
			out = append(out, a.Seating.String()+" seater")
		}
		if present(a.Width) {
			out = append(out, "under "+a.Width.String()+" inches")
		}

	case CategoryDiningTable:
		if a.Shape != "" {
			out = append(out, a.Shape+" dining table")
		} else {
			out = append(out, "dining table")
		}
		if present(a.Seating) {
			out = append(out, a.Seating.String()+" seater")
		}
		if present(a.Length) {
			out = append(out, "under "+a.Length.String()+" inches")
		}

	case CategoryRug:
		if a.Shape != "" && !strings.EqualFold(a.Shape, "rug") {
			out = append(out, a.Shape+" area rug")
		} else {
			out = append(out, "area rug")
		}
		if present(a.Width) && present(a.Length) {
			out = append(out, "under "+a.Width.String()+"x"+a.Length.String()+" feet")
		}

	case CategoryBed:
		if a.Size != "" {
			out = append(out, a.Size+" bed frame")
		} else {
			out = append(out, "bed frame")
		}
		if a.Style != "" {
			out = append(out, a.Style)
		}
		if present(a.Height) {
			out = append(out, "under "+a.Height.String()+" inches high")
		}

	case CategoryDesk:
		if a.Style != "" && !strings.EqualFold(a.Style, "desk") {
			out = append(out, a.Style+" desk")
		} else {
			out = append(out, "desk")
		}
		if present(a.Width) {
			out = append(out, "under "+a.Width.String()+" inches wide")
		}
		if present(a.Depth) {
			out = append(out, "under "+a.Depth.String()+" inches deep")
		}
	}

	return out
}

func normalizeCategory(category string) string {
	c := strings.ToLower(strings.TrimSpace(category))
	switch c {
	case "dining_table", "dining table", "diningtable":
		return CategoryDiningTable
	}
	return c
}
