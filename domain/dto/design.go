package dto

import "encoding/json"

type AnalyzeRoomRequest struct {
	ImageURL          string `json:"imageUrl" validate:"required"`
	UnknownDimensions bool   `json:"unknownDimensions"`
}

type AnalyzeRoomResponse struct {
	Success  bool            `json:"success"`
	Analysis json.RawMessage `json:"analysis"`
}

type CarpenterSpecRequest struct {
	ItemID      string `json:"item_id" validate:"required,uuid"`
	ItemName    string `json:"item_name" validate:"required"`
	Category    string `json:"category"`
	Style       string `json:"style"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

type CarpenterSpecResponse struct {
	ItemID        string          `json:"item_id"`
	CarpenterSpec json.RawMessage `json:"carpenter_spec"`
}

type StyleDirectionsRequest struct {
	RoomType       string   `json:"roomType" validate:"required"`
	SizeClass      string   `json:"sizeClass" validate:"required"`
	Colors         []string `json:"colors"`
	Furniture      []string `json:"furniture"`
	ExcludedStyles []string `json:"excludedStyles"`
}

type StyleDirectionsResponse struct {
	Directions []json.RawMessage `json:"directions"`
}

// StyleContextRequest is shared by inspirations and deep design
type StyleContextRequest struct {
	RoomType      string   `json:"roomType" validate:"required"`
	SizeClass     string   `json:"sizeClass" validate:"required"`
	SelectedStyle string   `json:"selectedStyle" validate:"required"`
	Colors        []string `json:"colors"`
	Furniture     []string `json:"furniture"`
	Notes         string   `json:"notes"`
}

type StyleInspirationsResponse struct {
	Inspirations []json.RawMessage `json:"inspirations"`
}

type ValidateDecorRequest struct {
	ImageURL string `json:"image_url" validate:"required"`
}
