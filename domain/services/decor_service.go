package services

import "context"

// DecorValidation is the verdict on whether an image shows a room or decor
type DecorValidation struct {
	IsValid    bool    `json:"is_valid"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
	Type       string  `json:"type"`
}

// PermissiveDecorValidation is returned whenever validation cannot be completed.
func PermissiveDecorValidation() DecorValidation {
	return DecorValidation{
		IsValid:    true,
		Confidence: 0.5,
		Reason:     "validation unavailable, allowing by default",
		Type:       "unknown",
	}
}

type DecorValidationService interface {
	// Validate never fails; errors degrade to PermissiveDecorValidation
	Validate(ctx context.Context, imageURL string) DecorValidation
}
