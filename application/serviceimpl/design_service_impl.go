package serviceimpl

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"decorlens/domain/repositories"
	"decorlens/domain/services"
	"decorlens/infrastructure/gemini"
	"decorlens/infrastructure/metrics"
	"decorlens/pkg/fanout"
	"decorlens/pkg/logger"
)

// FanoutOptions bounds concurrent inspiration generation
type FanoutOptions struct {
	BatchSize    int
	Delay        time.Duration
	Inspirations int
}

type DesignServiceImpl struct {
	vision   services.VisionModel
	itemRepo repositories.DetectedItemRepository
	fanout   FanoutOptions
	metrics  *metrics.Metrics
}

func NewDesignService(vision services.VisionModel, itemRepo repositories.DetectedItemRepository, opts FanoutOptions, m *metrics.Metrics) services.DesignService {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 3
	}
	if opts.Inspirations <= 0 {
		opts.Inspirations = len(inspirationAngles)
	}
	return &DesignServiceImpl{
		vision:   vision,
		itemRepo: itemRepo,
		fanout:   opts,
		metrics:  m,
	}
}

func (s *DesignServiceImpl) AnalyzeRoom(ctx context.Context, req *services.RoomAnalysisRequest) (json.RawMessage, error) {
	return s.completeObject(ctx, &services.VisionRequest{
		Operation: opAnalyzeRoom,
		Prompt:    buildRoomAnalysisPrompt(req),
		ImageURL:  req.ImageURL,
	})
}

// GenerateCarpenterSpec also stores the spec on the item when it exists.
// That write is best effort.
func (s *DesignServiceImpl) GenerateCarpenterSpec(ctx context.Context, req *services.CarpenterSpecRequest) (json.RawMessage, error) {
	spec, err := s.completeObject(ctx, &services.VisionRequest{
		Operation: opCarpenterSpec,
		Prompt:    buildCarpenterSpecPrompt(req),
	})
	if err != nil {
		return nil, err
	}

	if req.ItemID != uuid.Nil && s.itemRepo != nil {
		if err := s.itemRepo.UpdateCarpenterSpec(ctx, req.ItemID, datatypes.JSON(spec)); err != nil {
			logger.PipelineError("carpenter_spec_write_failed", "Carpenter spec not stored", err, map[string]interface{}{
				"item_id": req.ItemID.String(),
			})
		}
	}
	return spec, nil
}

func (s *DesignServiceImpl) GenerateStyleDirections(ctx context.Context, req *services.StyleDirectionsRequest) ([]json.RawMessage, error) {
	text, err := s.vision.Complete(ctx, &services.VisionRequest{
		Operation: opStyleDirections,
		Prompt:    buildStyleDirectionsPrompt(req),
	})
	if err != nil {
		return nil, err
	}

	obj, err := gemini.ParseJSONObject(text)
	if err != nil {
		s.metrics.RecordVisionParseError(opStyleDirections)
		return nil, err
	}
	return rawList(obj["directions"])
}

// GenerateStyleInspirations issues one model call per inspiration in
// bounded batches with a pause between batches
func (s *DesignServiceImpl) GenerateStyleInspirations(ctx context.Context, req *services.StyleContext) ([]json.RawMessage, error) {
	start := time.Now()

	results, err := fanout.Batches(ctx, s.fanout.Inspirations, s.fanout.BatchSize, s.fanout.Delay,
		func(ctx context.Context, i int) (json.RawMessage, error) {
			return s.completeObject(ctx, &services.VisionRequest{
				Operation: opStyleInspiration,
				Prompt:    buildStyleInspirationPrompt(req, i),
			})
		})
	if err != nil {
		return nil, err
	}

	logger.Pipeline("inspirations_generated", "Style inspirations generated", map[string]interface{}{
		"style":       req.SelectedStyle,
		"count":       len(results),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return results, nil
}

func (s *DesignServiceImpl) GenerateDeepDesign(ctx context.Context, req *services.StyleContext) (json.RawMessage, error) {
	return s.completeObject(ctx, &services.VisionRequest{
		Operation: opDeepDesign,
		Prompt:    buildDeepDesignPrompt(req),
	})
}

// completeObject runs one model call and returns its JSON object re-encoded
func (s *DesignServiceImpl) completeObject(ctx context.Context, req *services.VisionRequest) (json.RawMessage, error) {
	text, err := s.vision.Complete(ctx, req)
	if err != nil {
		return nil, err
	}
	obj, err := gemini.ParseJSONObject(text)
	if err != nil {
		s.metrics.RecordVisionParseError(req.Operation)
		logger.VisionError("parse_failed", "Model returned invalid JSON", err, map[string]interface{}{"operation": req.Operation})
		return nil, err
	}
	raw, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to encode model response: %w", err)
	}
	return raw, nil
}

func rawList(v any) ([]json.RawMessage, error) {
	list, ok := v.([]any)
	if !ok {
		return []json.RawMessage{}, nil
	}
	out := make([]json.RawMessage, 0, len(list))
	for _, entry := range list {
		raw, err := json.Marshal(entry)
		if err != nil {
			return nil, fmt.Errorf("failed to encode model response: %w", err)
		}
		out = append(out, raw)
	}
	return out, nil
}
