package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

type RoomAnalysisRequest struct {
	ImageURL          string
	UnknownDimensions bool
}

type CarpenterSpecRequest struct {
	ItemID      uuid.UUID
	ItemName    string
	Category    string
	Style       string
	Description string
	Color       string
}

type StyleDirectionsRequest struct {
	RoomType       string
	SizeClass      string
	Colors         []string
	Furniture      []string
	ExcludedStyles []string
}

// StyleContext is shared by inspiration and deep-design generation
type StyleContext struct {
	RoomType      string
	SizeClass     string
	SelectedStyle string
	Colors        []string
	Furniture     []string
	Notes         string
}

// DesignService covers the free-form generation endpoints. Results are model
// JSON passed through after validation.
type DesignService interface {
	AnalyzeRoom(ctx context.Context, req *RoomAnalysisRequest) (json.RawMessage, error)
	GenerateCarpenterSpec(ctx context.Context, req *CarpenterSpecRequest) (json.RawMessage, error)
	GenerateStyleDirections(ctx context.Context, req *StyleDirectionsRequest) ([]json.RawMessage, error)
	GenerateStyleInspirations(ctx context.Context, req *StyleContext) ([]json.RawMessage, error)
	GenerateDeepDesign(ctx context.Context, req *StyleContext) (json.RawMessage, error)
}
