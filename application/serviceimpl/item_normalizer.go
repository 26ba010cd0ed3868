package serviceimpl

import (
	"encoding/json"
	"strconv"
	"strings"

	"decorlens/domain/models"
)

// Defaults applied when the model leaves a field out
const (
	defaultItemName   = "Unknown Item"
	defaultCategory   = models.CategoryDecor
	defaultStyle      = "Modern"
	defaultConfidence = 0.5
)

// NormalizeItems maps every raw entry onto a DetectedItem, one record per entry
func NormalizeItems(raw []any) []models.DetectedItem {
	items := make([]models.DetectedItem, 0, len(raw))
	for _, entry := range raw {
		items = append(items, NormalizeItem(entry))
	}
	return items
}

// NormalizeItem never fails: anything missing or of the wrong type takes the
// documented default, and a non-object entry yields an all-defaults record.
func NormalizeItem(raw any) models.DetectedItem {
	obj, _ := raw.(map[string]any)

	item := models.DetectedItem{
		ItemName:   defaultItemName,
		Category:   defaultCategory,
		Style:      defaultStyle,
		Materials:  []string{},
		Tags:       []string{},
		Confidence: defaultConfidence,
	}
	if obj == nil {
		return item
	}

	if name, ok := stringField(obj, "name", "item_name"); ok {
		item.ItemName = name
	}
	if category, ok := stringField(obj, "category"); ok {
		item.Category = canonicalCategory(category)
	}
	if style, ok := stringField(obj, "style"); ok {
		item.Style = style
	}
	if color, ok := stringField(obj, "color", "dominant_color"); ok {
		item.DominantColor = &color
	}
	if desc, ok := stringField(obj, "description"); ok {
		item.Description = &desc
	}

	item.Materials = stringList(obj["materials"], false)
	item.Tags = stringList(obj["tags"], true)
	item.Dimensions = parseDimensions(obj["dimensions"])

	if c, ok := number(obj["confidence"]); ok {
		item.Confidence = clamp01(c)
	}

	return item
}

// stringField returns the first non-blank string among keys
func stringField(obj map[string]any, keys ...string) (string, bool) {
	for _, key := range keys {
		s, ok := obj[key].(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			return s, true
		}
	}
	return "", false
}

func canonicalCategory(category string) string {
	for _, known := range models.ItemCategories {
		if strings.EqualFold(category, known) {
			return known
		}
	}
	return models.CategoryOther
}

// stringList keeps non-blank strings in order; dedupe gives set semantics
func stringList(v any, dedupe bool) []string {
	out := []string{}
	list, ok := v.([]any)
	if !ok {
		return out
	}

	seen := make(map[string]bool, len(list))
	for _, entry := range list {
		s, ok := entry.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if dedupe {
			key := strings.ToLower(s)
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		out = append(out, s)
	}
	return out
}

func parseDimensions(v any) *models.ItemDimensions {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}

	dims := &models.ItemDimensions{
		Width:    measurement(obj["width"]),
		Length:   measurement(obj["length"]),
		Height:   measurement(obj["height"]),
		Depth:    measurement(obj["depth"]),
		Diameter: measurement(obj["diameter"]),
	}
	if dims.IsEmpty() {
		return nil
	}
	return dims
}

// measurement renders a number or string as the stored measurement string
func measurement(v any) string {
	switch m := v.(type) {
	case string:
		return strings.TrimSpace(m)
	case float64:
		return strconv.FormatFloat(m, 'f', -1, 64)
	case json.Number:
		return m.String()
	}
	return ""
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
