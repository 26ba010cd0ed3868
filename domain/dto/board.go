package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type CreateBoardRequest struct {
	SourceImageURL string `json:"source_image_url" validate:"required,url"`
}

type AnalyzeImageRequest struct {
	BoardID  string `json:"board_id" validate:"required,uuid"`
	ImageURL string `json:"image_url" validate:"required"`
}

// BoardRequest is the body of the enrichment passes
type BoardRequest struct {
	BoardID string `json:"board_id" validate:"required,uuid"`
}

type BoardResponse struct {
	ID                 uuid.UUID       `json:"id"`
	SourceImageURL     string          `json:"source_image_url"`
	Status             string          `json:"status"`
	DetectedItemsCount int             `json:"detected_items_count"`
	RoomMaterials      json.RawMessage `json:"room_materials,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

type DimensionsResponse struct {
	Width    string `json:"width,omitempty"`
	Length   string `json:"length,omitempty"`
	Height   string `json:"height,omitempty"`
	Depth    string `json:"depth,omitempty"`
	Diameter string `json:"diameter,omitempty"`
}

type DetectedItemResponse struct {
	ID            uuid.UUID           `json:"id"`
	BoardID       uuid.UUID           `json:"board_id"`
	ItemName      string              `json:"item_name"`
	Category      string              `json:"category"`
	Style         string              `json:"style"`
	DominantColor *string             `json:"dominant_color"`
	Materials     []string            `json:"materials"`
	Tags          []string            `json:"tags"`
	Dimensions    *DimensionsResponse `json:"dimensions"`
	Description   *string             `json:"description"`
	Confidence    float64             `json:"confidence"`
	Source        string              `json:"source"`
	CarpenterSpec json.RawMessage     `json:"carpenter_spec,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
}

type BoardDetailResponse struct {
	Board         *BoardResponse         `json:"board"`
	DetectedItems []DetectedItemResponse `json:"detected_items"`
}

type DetectedItemsResponse struct {
	DetectedItems []DetectedItemResponse `json:"detected_items"`
}

type SeeMoreItemsResponse struct {
	DetectedItems []DetectedItemResponse `json:"detected_items"`
	RoomMaterials json.RawMessage        `json:"room_materials"`
	NewItemsCount int                    `json:"new_items_count"`
}
