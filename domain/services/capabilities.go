package services

import (
	"context"
	"time"

	"decorlens/domain/models"
)

// VisionRequest is a single prompt, optionally grounded on an image
type VisionRequest struct {
	Operation string // Used for logging and metrics (e.g. "analyze_image")
	Prompt    string
	ImageURL  string
}

// VisionModel is the multimodal completion capability. Implementations make
// at most one attempt per call and return the raw text the model produced.
type VisionModel interface {
	Complete(ctx context.Context, req *VisionRequest) (string, error)
}

// CatalogSearchProvider finds candidate products for a detected item.
// The bundled implementation synthesizes placeholders; a retailer API can replace it.
type CatalogSearchProvider interface {
	Name() string
	Search(ctx context.Context, item *models.DetectedItem, limit int) ([]*models.Product, error)
}

// EventPublisher pushes progress events to clients watching a board
type EventPublisher interface {
	Publish(room string, event string, payload interface{})
}

// ImageCache stores fetched bytes keyed by URL
type ImageCache interface {
	Get(ctx context.Context, key string) (*CachedImage, bool)
	Set(ctx context.Context, key string, img *CachedImage, ttl time.Duration)
}

type CachedImage struct {
	Data        []byte `json:"data"`
	ContentType string `json:"content_type"`
}

// NopPublisher drops every event
type NopPublisher struct{}

func (NopPublisher) Publish(string, string, interface{}) {}
