package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a shoppable catalog entry. A product may back many matches.
type Product struct {
	ID          uuid.UUID `gorm:"primaryKey;type:uuid"`
	ExternalID  string    `gorm:"size:255;uniqueIndex;not null"`
	Merchant    string    `gorm:"size:100"`
	ProductName string    `gorm:"size:255;not null"`
	Category    string    `gorm:"size:50;index"`
	Price       float64
	Currency    string `gorm:"size:3;default:'USD'"`
	ProductURL  string `gorm:"type:text"`
	ImageURL    string `gorm:"type:text"`

	// Mirrored from the matched item
	Color     *string  `gorm:"size:100"`
	Materials []string `gorm:"type:text;serializer:json"`
	Style     string   `gorm:"size:100"`
	Tags      []string `gorm:"type:text;serializer:json"`

	Rating      float64
	ReviewCount int

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Product) TableName() string {
	return "products"
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
