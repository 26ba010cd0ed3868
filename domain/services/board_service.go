package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"decorlens/domain/models"
)

// Board progress events published to the board's room
const (
	EventAnalysisStarted   = "analysis_started"
	EventAnalysisCompleted = "analysis_completed"
	EventAnalysisFailed    = "analysis_failed"
	EventItemsEnriched     = "items_enriched"
	EventMoreItemsFound    = "more_items_found"
)

// SeeMoreResult is returned by the second detection pass
type SeeMoreResult struct {
	Items         []models.DetectedItem
	RoomMaterials json.RawMessage
	NewItemsCount int
}

// ReconcileResult summarizes a consistency run
type ReconcileResult struct {
	Checked  int `json:"checked"`
	Repaired int `json:"repaired"`
	Failed   int `json:"failed"`
}

type BoardService interface {
	CreateBoard(ctx context.Context, sourceImageURL string) (*models.Board, error)
	GetBoard(ctx context.Context, id uuid.UUID) (*models.Board, []models.DetectedItem, error)

	// AnalyzeImage runs vision extraction, normalization and persistence for a board
	AnalyzeImage(ctx context.Context, boardID uuid.UUID, imageURL string) ([]models.DetectedItem, error)
	// AddItemDetails enriches existing items with materials and dimensions
	AddItemDetails(ctx context.Context, boardID uuid.UUID) ([]models.DetectedItem, error)
	// SeeMoreItems asks the model for items missed by the first pass
	SeeMoreItems(ctx context.Context, boardID uuid.UUID) (*SeeMoreResult, error)

	// ReconcileCounts recomputes detected_items_count for drifted boards
	ReconcileCounts(ctx context.Context) (*ReconcileResult, error)
}
