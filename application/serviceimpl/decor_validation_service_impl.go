package serviceimpl

import (
	"context"
	"strings"
	"time"

	"decorlens/domain/services"
	"decorlens/infrastructure/cache"
	"decorlens/infrastructure/gemini"
	"decorlens/infrastructure/metrics"
	"decorlens/pkg/logger"
)

const decorVerdictTTL = 6 * time.Hour

type DecorValidationServiceImpl struct {
	vision  services.VisionModel
	verdict *cache.Memory
	metrics *metrics.Metrics
}

func NewDecorValidationService(vision services.VisionModel, verdicts *cache.Memory, m *metrics.Metrics) services.DecorValidationService {
	if verdicts == nil {
		verdicts = cache.NewMemory(decorVerdictTTL, time.Hour)
	}
	return &DecorValidationServiceImpl{vision: vision, verdict: verdicts, metrics: m}
}

// Validate fails open: any error, unparsable answer or missing verdict
// returns services.PermissiveDecorValidation. Only real verdicts are cached.
func (s *DecorValidationServiceImpl) Validate(ctx context.Context, imageURL string) services.DecorValidation {
	imageURL = strings.TrimSpace(imageURL)
	if v, ok := s.verdict.Get(imageURL); ok {
		return v.(services.DecorValidation)
	}

	text, err := s.vision.Complete(ctx, &services.VisionRequest{
		Operation: opValidateDecor,
		Prompt:    buildDecorValidationPrompt(),
		ImageURL:  imageURL,
	})
	if err != nil {
		logger.VisionError("decor_validation_failed", "Allowing image by default", err, nil)
		return services.PermissiveDecorValidation()
	}

	obj, err := gemini.ParseJSONObject(text)
	if err != nil {
		s.metrics.RecordVisionParseError(opValidateDecor)
		logger.VisionError("decor_validation_parse_failed", "Allowing image by default", err, nil)
		return services.PermissiveDecorValidation()
	}

	isValid, ok := obj["is_valid"].(bool)
	if !ok {
		return services.PermissiveDecorValidation()
	}

	result := services.DecorValidation{
		IsValid:    isValid,
		Confidence: 0.5,
		Type:       "unknown",
	}
	if c, ok := number(obj["confidence"]); ok {
		result.Confidence = clamp01(c)
	}
	if reason, ok := stringField(obj, "reason"); ok {
		result.Reason = reason
	}
	if t, ok := stringField(obj, "type"); ok {
		result.Type = strings.ToLower(t)
	}

	s.verdict.Set(imageURL, result, 0)
	return result
}
