package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Item categories the vision prompt asks for
const (
	CategorySeating  = "Seating"
	CategoryTables   = "Tables"
	CategoryLighting = "Lighting"
	CategoryRugs     = "Rugs"
	CategoryStorage  = "Storage"
	CategoryDecor    = "Decor"
	CategoryOther    = "Other"
)

var ItemCategories = []string{
	CategorySeating, CategoryTables, CategoryLighting, CategoryRugs,
	CategoryStorage, CategoryDecor, CategoryOther,
}

type ItemSource string

const (
	ItemSourceInitial ItemSource = "initial"
	ItemSourceMore    ItemSource = "more"
)

// ItemDimensions holds measurement strings as the model reported them
type ItemDimensions struct {
	Width    string `json:"width,omitempty"`
	Length   string `json:"length,omitempty"`
	Height   string `json:"height,omitempty"`
	Depth    string `json:"depth,omitempty"`
	Diameter string `json:"diameter,omitempty"`
}

func (d *ItemDimensions) IsEmpty() bool {
	return d == nil || (d.Width == "" && d.Length == "" && d.Height == "" && d.Depth == "" && d.Diameter == "")
}

type DetectedItem struct {
	ID      uuid.UUID `gorm:"primaryKey;type:uuid"`
	BoardID uuid.UUID `gorm:"type:uuid;not null;index"` // Immutable after insert

	ItemName      string          `gorm:"size:255;not null"`
	Category      string          `gorm:"size:50;index"`
	Style         string          `gorm:"size:100"`
	DominantColor *string         `gorm:"size:100"`
	Materials     []string        `gorm:"type:text;serializer:json"` // Ordered
	Tags          []string        `gorm:"type:text;serializer:json"` // Set semantics
	Dimensions    *ItemDimensions `gorm:"type:text;serializer:json"`
	Description   *string         `gorm:"type:text"`
	Confidence    float64         `gorm:"default:0.5"`
	Source        ItemSource      `gorm:"size:20;default:'initial'"`

	CarpenterSpec datatypes.JSON // Filled by the carpenter-spec enrichment

	CreatedAt time.Time
	UpdatedAt time.Time

	Board Board `gorm:"foreignKey:BoardID"`
}

func (DetectedItem) TableName() string {
	return "detected_items"
}

func (i *DetectedItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.Source == "" {
		i.Source = ItemSourceInitial
	}
	return nil
}
