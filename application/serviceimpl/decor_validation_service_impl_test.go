package serviceimpl

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"decorlens/domain/services"
)

func TestDecorValidation_FailsOpen(t *testing.T) {
	tests := []struct {
		name   string
		vision *fakeVision
	}{
		{"model unavailable", failWith(fmt.Errorf("%w: 503", services.ErrVisionUnavailable))},
		{"not configured", failWith(services.ErrVisionNotConfigured)},
		{"unparsable answer", respond("I think this is a kitchen")},
		{"missing verdict", respond(`{"confidence":0.9}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewDecorValidationService(tt.vision, nil, nil)
			got := svc.Validate(context.Background(), "https://img.example.com/x.jpg")
			assert.Equal(t, services.PermissiveDecorValidation(), got)
			assert.True(t, got.IsValid)
			assert.Equal(t, 0.5, got.Confidence)
			assert.Equal(t, "unknown", got.Type)
		})
	}
}

func TestDecorValidation_VerdictIsCached(t *testing.T) {
	vision := respond(`{"is_valid":false,"confidence":1.4,"reason":"This is a cat","type":"Other"}`)
	svc := NewDecorValidationService(vision, nil, nil)

	got := svc.Validate(context.Background(), "https://img.example.com/cat.jpg")
	assert.False(t, got.IsValid)
	assert.Equal(t, 1.0, got.Confidence)
	assert.Equal(t, "This is a cat", got.Reason)
	assert.Equal(t, "other", got.Type)

	again := svc.Validate(context.Background(), "https://img.example.com/cat.jpg")
	assert.Equal(t, got, again)
	assert.Equal(t, 1, vision.callCount())
}
