package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemProductMatch links a detected item to a product. For one item, scores are
// non-increasing in creation order and only the first row is the top pick.
type ItemProductMatch struct {
	ID             uuid.UUID `gorm:"primaryKey;type:uuid"`
	DetectedItemID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_match_item_product"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_match_item_product"`
	MatchScore     float64   `gorm:"not null"`
	IsTopPick      bool      `gorm:"default:false"`
	CreatedAt      time.Time

	DetectedItem DetectedItem `gorm:"foreignKey:DetectedItemID"`
	Product      Product      `gorm:"foreignKey:ProductID"`
}

func (ItemProductMatch) TableName() string {
	return "item_product_matches"
}

func (m *ItemProductMatch) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
