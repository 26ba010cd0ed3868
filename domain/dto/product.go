package dto

import (
	"time"

	"github.com/google/uuid"

	"decorlens/pkg/retailquery"
)

type SearchProductsRequest struct {
	DetectedItemID string `json:"detected_item_id" validate:"required,uuid"`
}

// ProductMatchResponse is a product joined with its match for one item
type ProductMatchResponse struct {
	MatchID     uuid.UUID `json:"match_id"`
	ID          uuid.UUID `json:"id"`
	ExternalID  string    `json:"external_id"`
	Merchant    string    `json:"merchant"`
	ProductName string    `json:"product_name"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Currency    string    `json:"currency"`
	ProductURL  string    `json:"product_url"`
	ImageURL    string    `json:"image_url"`
	Color       *string   `json:"color"`
	Materials   []string  `json:"materials"`
	Style       string    `json:"style"`
	Tags        []string  `json:"tags"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"review_count"`
	MatchScore  float64   `json:"match_score"`
	IsTopPick   bool      `json:"is_top_pick"`
	MatchedAt   time.Time `json:"matched_at"`
}

type SearchProductsResponse struct {
	Products []ProductMatchResponse `json:"products"`
}

type RetailerQueryResponse struct {
	Query string             `json:"query"`
	Links []retailquery.Link `json:"links"`
}
