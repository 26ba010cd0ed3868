package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type BoardStatus string

const (
	BoardStatusUploaded BoardStatus = "uploaded"
	BoardStatusAnalyzed BoardStatus = "analyzed"
)

// Board is one image-analysis session. It is never deleted by the pipeline.
type Board struct {
	ID             uuid.UUID   `gorm:"primaryKey;type:uuid"`
	SourceImageURL string      `gorm:"type:text;not null"`
	Status         BoardStatus `gorm:"size:20;default:'uploaded';index"`

	// Maintained by the pipeline as a separate, non-transactional step.
	// See BoardService.ReconcileCounts for the repair path.
	DetectedItemsCount int `gorm:"default:0"`

	RoomMaterials datatypes.JSON // Freeform notes returned by the see-more pass

	CreatedAt time.Time
	UpdatedAt time.Time

	DetectedItems []DetectedItem `gorm:"foreignKey:BoardID"`
}

func (Board) TableName() string {
	return "boards"
}

func (b *Board) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Status == "" {
		b.Status = BoardStatusUploaded
	}
	return nil
}
