package serviceimpl

import (
	"fmt"
	"strings"

	"decorlens/domain/models"
	"decorlens/domain/services"
)

// Vision operations, used as metric and log labels
const (
	opAnalyzeImage     = "analyze_image"
	opItemDetails      = "add_item_details"
	opSeeMoreItems     = "see_more_items"
	opAnalyzeRoom      = "analyze_room"
	opCarpenterSpec    = "carpenter_spec"
	opStyleDirections  = "style_directions"
	opStyleInspiration = "style_inspiration"
	opDeepDesign       = "deep_design"
	opValidateDecor    = "validate_decor"
)

// inspirationAngles gives each concurrently generated inspiration its own focus
var inspirationAngles = []string{
	"a calm, minimal take",
	"a warm, layered take with rich textures",
	"a bold take with a statement piece",
	"a budget-friendly take using affordable pieces",
	"a family-friendly take with durable materials",
	"a small-space take that maximizes storage",
}

func buildAnalyzeImagePrompt() string {
	return fmt.Sprintf(`You are an interior design assistant. Identify every distinct piece of furniture and decor visible in this room photo.

Return a JSON object: {"items": [ ... ]}. Each item has:
- "name": short product-style name, e.g. "Grey Velvet Sofa"
- "category": one of %s
- "style": design style, e.g. "Modern", "Scandinavian", "Mid-Century"
- "color": dominant color
- "materials": list of visible materials
- "tags": short descriptive keywords
- "description": one sentence
- "confidence": number between 0 and 1

Only include items you can actually see. Respond with JSON only.`, strings.Join(models.ItemCategories, ", "))
}

func buildItemDetailsPrompt(items []models.DetectedItem) string {
	var b strings.Builder
	for i, item := range items {
		fmt.Fprintf(&b, "%d. id=%s name=%q category=%s\n", i+1, item.ID, item.ItemName, item.Category)
	}

	return fmt.Sprintf(`You previously identified these items in this room photo:
%s
For each item estimate its materials and real-world dimensions in inches.

Return a JSON object: {"items": [{"id": "<id from the list>", "materials": ["..."], "dimensions": {"width": 0, "length": 0, "height": 0, "depth": 0, "diameter": 0}}]}
Omit a dimension you cannot estimate. Respond with JSON only.`, b.String())
}

func buildSeeMorePrompt(existing []models.DetectedItem) string {
	names := make([]string, 0, len(existing))
	for _, item := range existing {
		names = append(names, item.ItemName)
	}
	known := "none"
	if len(names) > 0 {
		known = strings.Join(names, "; ")
	}

	return fmt.Sprintf(`Look at this room photo again. These items were already identified: %s.

Find additional furniture, lighting, textiles and decor that are NOT in that list, including small or partially hidden items.
Also describe the room's surfaces.

Return a JSON object:
{"items": [same shape as before: name, category (one of %s), style, color, materials, tags, description, confidence],
 "room_materials": {"flooring": "...", "walls": "...", "ceiling": "...", "notes": "..."}}
Respond with JSON only.`, known, strings.Join(models.ItemCategories, ", "))
}

func buildRoomAnalysisPrompt(req *services.RoomAnalysisRequest) string {
	dims := "Estimate the room's dimensions in feet from visual cues."
	if req.UnknownDimensions {
		dims = "The user does not know the room's dimensions. Estimate them in feet from visual cues such as door heights and furniture, and say how confident you are."
	}

	return fmt.Sprintf(`You are an interior designer analyzing a room photo.
%s

Return a JSON object with:
- "room_type": e.g. "living room"
- "dimensions": {"width_ft": number, "length_ft": number, "ceiling_height_ft": number, "confidence": number 0-1}
- "lighting": natural and artificial light description
- "color_palette": list of dominant colors
- "style": current design style
- "layout_notes": list of observations about the layout and traffic flow
- "suggestions": list of improvement ideas
Respond with JSON only.`, dims)
}

func buildCarpenterSpecPrompt(req *services.CarpenterSpecRequest) string {
	var details []string
	if req.Category != "" {
		details = append(details, "Category: "+req.Category)
	}
	if req.Style != "" {
		details = append(details, "Style: "+req.Style)
	}
	if req.Color != "" {
		details = append(details, "Color: "+req.Color)
	}
	if req.Description != "" {
		details = append(details, "Description: "+req.Description)
	}

	return fmt.Sprintf(`You are a master carpenter. Write a build specification for a custom piece based on:
Item: %s
%s

Return a JSON object with:
- "overview": short summary
- "dimensions": {"width": "...", "depth": "...", "height": "..."} with units
- "materials": list of {"name": "...", "quantity": "...", "notes": "..."}
- "hardware": list of strings
- "joinery": list of techniques
- "finish": finishing instructions
- "steps": ordered list of build steps
- "estimated_hours": number
- "difficulty": "beginner", "intermediate" or "advanced"
Respond with JSON only.`, req.ItemName, strings.Join(details, "\n"))
}

func buildStyleDirectionsPrompt(req *services.StyleDirectionsRequest) string {
	var extra []string
	if len(req.Colors) > 0 {
		extra = append(extra, "Preferred colors: "+strings.Join(req.Colors, ", "))
	}
	if len(req.Furniture) > 0 {
		extra = append(extra, "Furniture to keep: "+strings.Join(req.Furniture, ", "))
	}
	if len(req.ExcludedStyles) > 0 {
		extra = append(extra, "Do not suggest: "+strings.Join(req.ExcludedStyles, ", "))
	}

	return fmt.Sprintf(`Suggest distinct interior design style directions for a %s %s.
%s

Return a JSON object: {"directions": [{"name": "...", "summary": "...", "palette": ["..."], "key_materials": ["..."], "signature_pieces": ["..."]}]}
Give 4 to 6 directions. Respond with JSON only.`, req.SizeClass, req.RoomType, strings.Join(extra, "\n"))
}

func styleContextLines(req *services.StyleContext) string {
	var lines []string
	if len(req.Colors) > 0 {
		lines = append(lines, "Preferred colors: "+strings.Join(req.Colors, ", "))
	}
	if len(req.Furniture) > 0 {
		lines = append(lines, "Furniture to keep: "+strings.Join(req.Furniture, ", "))
	}
	if req.Notes != "" {
		lines = append(lines, "Notes: "+req.Notes)
	}
	return strings.Join(lines, "\n")
}

func buildStyleInspirationPrompt(req *services.StyleContext, index int) string {
	angle := inspirationAngles[index%len(inspirationAngles)]

	return fmt.Sprintf(`Create one %s style inspiration for a %s %s. Make it %s.
%s

Return a JSON object: {"title": "...", "description": "...", "palette": ["..."], "furniture": ["..."], "decor": ["..."], "image_prompt": "a detailed prompt to render this room"}
Respond with JSON only.`, req.SelectedStyle, req.SizeClass, req.RoomType, angle, styleContextLines(req))
}

func buildDeepDesignPrompt(req *services.StyleContext) string {
	return fmt.Sprintf(`Produce a complete %s design plan for a %s %s.
%s

Return a JSON object with:
- "concept": paragraph describing the design
- "palette": list of {"name": "...", "hex": "#rrggbb", "usage": "..."}
- "layout": list of placement instructions
- "furniture": list of {"item": "...", "category": "...", "materials": ["..."], "dimensions": "...", "budget_usd": number}
- "lighting": list of strings
- "textiles": list of strings
- "finishing_touches": list of strings
Respond with JSON only.`, req.SelectedStyle, req.SizeClass, req.RoomType, styleContextLines(req))
}

func buildDecorValidationPrompt() string {
	return `Decide whether this image shows an interior room, furniture or home decor that a design assistant could work with.

Return a JSON object: {"is_valid": true|false, "confidence": number 0-1, "reason": "short explanation", "type": "room" | "furniture" | "decor" | "other"}
Respond with JSON only.`
}
