package serviceimpl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"decorlens/domain/models"
	"decorlens/domain/repositories"
	"decorlens/domain/services"
	"decorlens/infrastructure/gemini"
	"decorlens/infrastructure/metrics"
	"decorlens/pkg/logger"
)

// reconcileBatch bounds one consistency run
const reconcileBatch = 500

type BoardServiceImpl struct {
	boardRepo repositories.BoardRepository
	itemRepo  repositories.DetectedItemRepository
	vision    services.VisionModel
	publisher services.EventPublisher
	metrics   *metrics.Metrics
}

func NewBoardService(
	boardRepo repositories.BoardRepository,
	itemRepo repositories.DetectedItemRepository,
	vision services.VisionModel,
	publisher services.EventPublisher,
	m *metrics.Metrics,
) services.BoardService {
	if publisher == nil {
		publisher = services.NopPublisher{}
	}
	return &BoardServiceImpl{
		boardRepo: boardRepo,
		itemRepo:  itemRepo,
		vision:    vision,
		publisher: publisher,
		metrics:   m,
	}
}

func (s *BoardServiceImpl) CreateBoard(ctx context.Context, sourceImageURL string) (*models.Board, error) {
	sourceImageURL = strings.TrimSpace(sourceImageURL)
	if sourceImageURL == "" {
		return nil, services.ErrInvalidImageURL
	}

	board := &models.Board{
		SourceImageURL: sourceImageURL,
		Status:         models.BoardStatusUploaded,
	}
	if err := s.boardRepo.Create(ctx, board); err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	logger.Pipeline("board_created", "Board created", map[string]interface{}{"board_id": board.ID.String()})
	return board, nil
}

func (s *BoardServiceImpl) GetBoard(ctx context.Context, id uuid.UUID) (*models.Board, []models.DetectedItem, error) {
	board, err := s.loadBoard(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.itemRepo.GetByBoard(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load detected items: %w", err)
	}
	return board, items, nil
}

// AnalyzeImage runs the detection pipeline. Items are inserted in one
// statement; the board status/count update is a second, separate write.
func (s *BoardServiceImpl) AnalyzeImage(ctx context.Context, boardID uuid.UUID, imageURL string) ([]models.DetectedItem, error) {
	start := time.Now()

	board, err := s.loadBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(imageURL) == "" {
		imageURL = board.SourceImageURL
	}

	room := boardID.String()
	s.publisher.Publish(room, services.EventAnalysisStarted, map[string]interface{}{"board_id": room})

	text, err := s.vision.Complete(ctx, &services.VisionRequest{
		Operation: opAnalyzeImage,
		Prompt:    buildAnalyzeImagePrompt(),
		ImageURL:  imageURL,
	})
	if err != nil {
		return nil, s.failAnalysis(room, "vision_failed", err)
	}

	raw, err := gemini.ExtractItems(text)
	if err != nil {
		s.metrics.RecordVisionParseError(opAnalyzeImage)
		return nil, s.failAnalysis(room, "parse_failed", err)
	}

	items := s.prepareItems(NormalizeItems(raw), boardID, models.ItemSourceInitial)
	if err := s.itemRepo.CreateBatch(ctx, items); err != nil {
		return nil, s.failAnalysis(room, "insert_failed", fmt.Errorf("failed to store detected items: %w", err))
	}
	s.metrics.RecordItemsDetected(string(models.ItemSourceInitial), len(items))

	// Second step, not covered by the insert above
	count, err := s.syncBoard(ctx, boardID, models.BoardStatusAnalyzed)
	if err != nil {
		return nil, s.failAnalysis(room, "board_update_failed", err)
	}

	s.publisher.Publish(room, services.EventAnalysisCompleted, map[string]interface{}{
		"board_id":             room,
		"detected_items_count": count,
	})
	logger.Pipeline("analysis_completed", "Board analyzed", map[string]interface{}{
		"board_id":    room,
		"items":       len(items),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return derefItems(items), nil
}

// AddItemDetails asks the model for materials and dimensions of the board's
// items. A failed write for one item is logged and that item is returned unchanged.
func (s *BoardServiceImpl) AddItemDetails(ctx context.Context, boardID uuid.UUID) ([]models.DetectedItem, error) {
	board, err := s.loadBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}

	items, err := s.itemRepo.GetByBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to load detected items: %w", err)
	}
	if len(items) == 0 {
		return items, nil
	}

	text, err := s.vision.Complete(ctx, &services.VisionRequest{
		Operation: opItemDetails,
		Prompt:    buildItemDetailsPrompt(items),
		ImageURL:  board.SourceImageURL,
	})
	if err != nil {
		return nil, err
	}

	details, err := gemini.ExtractItems(text)
	if err != nil {
		s.metrics.RecordVisionParseError(opItemDetails)
		return nil, err
	}

	byID := make(map[string]int, len(items))
	for i := range items {
		byID[items[i].ID.String()] = i
	}

	enriched := 0
	for pos, entry := range details {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		// Fall back to list position when the model drops or mangles the id
		idx, found := -1, false
		if id, ok := obj["id"].(string); ok {
			idx, found = byID[strings.TrimSpace(id)]
		}
		if !found {
			if pos >= len(items) {
				continue
			}
			idx = pos
		}

		item := &items[idx]
		materials := stringList(obj["materials"], false)
		if len(materials) == 0 {
			materials = item.Materials
		}
		dimensions := parseDimensions(obj["dimensions"])
		if dimensions == nil {
			dimensions = item.Dimensions
		}

		if err := s.itemRepo.UpdateDetails(ctx, item.ID, materials, dimensions); err != nil {
			logger.PipelineError("item_details_write_failed", "Keeping unenriched item", err, map[string]interface{}{
				"board_id": boardID.String(),
				"item_id":  item.ID.String(),
			})
			continue
		}
		item.Materials = materials
		item.Dimensions = dimensions
		enriched++
	}

	if _, err := s.syncBoard(ctx, boardID, ""); err != nil {
		logger.PipelineWarn("count_sync_failed", "Board count left for reconciliation", map[string]interface{}{
			"board_id": boardID.String(),
			"error":    err.Error(),
		})
	}

	s.publisher.Publish(boardID.String(), services.EventItemsEnriched, map[string]interface{}{
		"board_id": boardID.String(),
		"enriched": enriched,
	})
	logger.Pipeline("items_enriched", "Item details added", map[string]interface{}{
		"board_id": boardID.String(),
		"items":    len(items),
		"enriched": enriched,
	})

	return items, nil
}

// SeeMoreItems runs a second detection pass for items the first one missed
func (s *BoardServiceImpl) SeeMoreItems(ctx context.Context, boardID uuid.UUID) (*services.SeeMoreResult, error) {
	board, err := s.loadBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}

	existing, err := s.itemRepo.GetByBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to load detected items: %w", err)
	}

	text, err := s.vision.Complete(ctx, &services.VisionRequest{
		Operation: opSeeMoreItems,
		Prompt:    buildSeeMorePrompt(existing),
		ImageURL:  board.SourceImageURL,
	})
	if err != nil {
		return nil, err
	}

	obj, err := gemini.ParseJSONObject(text)
	if err != nil {
		s.metrics.RecordVisionParseError(opSeeMoreItems)
		return nil, err
	}
	raw, _ := obj["items"].([]any)

	known := make(map[string]bool, len(existing))
	for _, item := range existing {
		known[strings.ToLower(item.ItemName)] = true
	}

	var fresh []models.DetectedItem
	for _, item := range NormalizeItems(raw) {
		key := strings.ToLower(item.ItemName)
		if known[key] {
			continue
		}
		known[key] = true
		fresh = append(fresh, item)
	}

	newItems := s.prepareItems(fresh, boardID, models.ItemSourceMore)
	if err := s.itemRepo.CreateBatch(ctx, newItems); err != nil {
		return nil, fmt.Errorf("failed to store detected items: %w", err)
	}
	s.metrics.RecordItemsDetected(string(models.ItemSourceMore), len(newItems))

	var roomMaterials json.RawMessage
	if notes, ok := obj["room_materials"]; ok && notes != nil {
		if b, err := json.Marshal(notes); err == nil {
			roomMaterials = b
			if err := s.boardRepo.UpdateRoomMaterials(ctx, boardID, datatypes.JSON(b)); err != nil {
				logger.PipelineError("room_materials_write_failed", "Room materials not stored", err, map[string]interface{}{
					"board_id": boardID.String(),
				})
			}
		}
	}
	if roomMaterials == nil && len(board.RoomMaterials) > 0 {
		roomMaterials = json.RawMessage(board.RoomMaterials)
	}

	if _, err := s.syncBoard(ctx, boardID, ""); err != nil {
		return nil, err
	}

	all, err := s.itemRepo.GetByBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to load detected items: %w", err)
	}

	s.publisher.Publish(boardID.String(), services.EventMoreItemsFound, map[string]interface{}{
		"board_id":        boardID.String(),
		"new_items_count": len(newItems),
	})
	logger.Pipeline("more_items_found", "Second detection pass completed", map[string]interface{}{
		"board_id":  boardID.String(),
		"new_items": len(newItems),
		"total":     len(all),
	})

	return &services.SeeMoreResult{
		Items:         all,
		RoomMaterials: roomMaterials,
		NewItemsCount: len(newItems),
	}, nil
}

// ReconcileCounts repairs boards whose count drifted from their rows, e.g.
// when the second write of AnalyzeImage failed
func (s *BoardServiceImpl) ReconcileCounts(ctx context.Context) (*services.ReconcileResult, error) {
	drift, err := s.boardRepo.ListCountDrift(ctx, reconcileBatch)
	if err != nil {
		return nil, fmt.Errorf("failed to list drifted boards: %w", err)
	}

	result := &services.ReconcileResult{Checked: len(drift)}
	for _, d := range drift {
		if err := s.boardRepo.UpdateCount(ctx, d.BoardID, d.ActualCount); err != nil {
			result.Failed++
			logger.PipelineError("reconcile_failed", "Failed to repair board count", err, map[string]interface{}{
				"board_id": d.BoardID.String(),
			})
			continue
		}
		result.Repaired++
		logger.PipelineWarn("board_count_repaired", "Repaired drifted board count", map[string]interface{}{
			"board_id":     d.BoardID.String(),
			"stored_count": d.StoredCount,
			"actual_count": d.ActualCount,
		})
	}
	s.metrics.RecordBoardsRepaired(result.Repaired)

	return result, nil
}

func (s *BoardServiceImpl) loadBoard(ctx context.Context, id uuid.UUID) (*models.Board, error) {
	board, err := s.boardRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to load board: %w", err)
	}
	return board, nil
}

// syncBoard recomputes detected_items_count from the rows, setting status too
// when one is given. Failure means the count drifted.
func (s *BoardServiceImpl) syncBoard(ctx context.Context, boardID uuid.UUID, status models.BoardStatus) (int, error) {
	count, err := s.itemRepo.CountByBoard(ctx, boardID)
	if err == nil {
		if status != "" {
			err = s.boardRepo.UpdateAnalysis(ctx, boardID, status, int(count))
		} else {
			err = s.boardRepo.UpdateCount(ctx, boardID, int(count))
		}
	}
	if err != nil {
		logger.PipelineError("board_update_failed", "Items stored but board not updated", err, map[string]interface{}{
			"board_id": boardID.String(),
		})
		return 0, fmt.Errorf("%w: %w", services.ErrBoardUpdateDrift, err)
	}
	return int(count), nil
}

func (s *BoardServiceImpl) failAnalysis(room, action string, err error) error {
	logger.PipelineError(action, "Board analysis failed", err, map[string]interface{}{"board_id": room})
	s.publisher.Publish(room, services.EventAnalysisFailed, map[string]interface{}{
		"board_id": room,
		"stage":    action,
	})
	return err
}

func (s *BoardServiceImpl) prepareItems(items []models.DetectedItem, boardID uuid.UUID, source models.ItemSource) []*models.DetectedItem {
	out := make([]*models.DetectedItem, 0, len(items))
	for i := range items {
		item := items[i]
		item.BoardID = boardID
		item.Source = source
		out = append(out, &item)
	}
	return out
}

func derefItems(items []*models.DetectedItem) []models.DetectedItem {
	out := make([]models.DetectedItem, 0, len(items))
	for _, item := range items {
		out = append(out, *item)
	}
	return out
}
