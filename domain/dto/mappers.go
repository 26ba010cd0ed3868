package dto

import (
	"encoding/json"

	"decorlens/domain/models"
)

func BoardToResponse(board *models.Board) *BoardResponse {
	if board == nil {
		return nil
	}
	return &BoardResponse{
		ID:                 board.ID,
		SourceImageURL:     board.SourceImageURL,
		Status:             string(board.Status),
		DetectedItemsCount: board.DetectedItemsCount,
		RoomMaterials:      rawJSON(board.RoomMaterials),
		CreatedAt:          board.CreatedAt,
		UpdatedAt:          board.UpdatedAt,
	}
}

func DetectedItemToResponse(item *models.DetectedItem) DetectedItemResponse {
	resp := DetectedItemResponse{
		ID:            item.ID,
		BoardID:       item.BoardID,
		ItemName:      item.ItemName,
		Category:      item.Category,
		Style:         item.Style,
		DominantColor: item.DominantColor,
		Materials:     nonNil(item.Materials),
		Tags:          nonNil(item.Tags),
		Description:   item.Description,
		Confidence:    item.Confidence,
		Source:        string(item.Source),
		CarpenterSpec: rawJSON(item.CarpenterSpec),
		CreatedAt:     item.CreatedAt,
	}
	if !item.Dimensions.IsEmpty() {
		d := item.Dimensions
		resp.Dimensions = &DimensionsResponse{
			Width:    d.Width,
			Length:   d.Length,
			Height:   d.Height,
			Depth:    d.Depth,
			Diameter: d.Diameter,
		}
	}
	return resp
}

func DetectedItemsToResponse(items []models.DetectedItem) []DetectedItemResponse {
	out := make([]DetectedItemResponse, 0, len(items))
	for i := range items {
		out = append(out, DetectedItemToResponse(&items[i]))
	}
	return out
}

func MatchToProductResponse(match *models.ItemProductMatch) ProductMatchResponse {
	p := match.Product
	return ProductMatchResponse{
		MatchID:     match.ID,
		ID:          p.ID,
		ExternalID:  p.ExternalID,
		Merchant:    p.Merchant,
		ProductName: p.ProductName,
		Category:    p.Category,
		Price:       p.Price,
		Currency:    p.Currency,
		ProductURL:  p.ProductURL,
		ImageURL:    p.ImageURL,
		Color:       p.Color,
		Materials:   nonNil(p.Materials),
		Style:       p.Style,
		Tags:        nonNil(p.Tags),
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
		MatchScore:  match.MatchScore,
		IsTopPick:   match.IsTopPick,
		MatchedAt:   match.CreatedAt,
	}
}

// MatchesToProductResponse keeps the stored match order
func MatchesToProductResponse(matches []models.ItemProductMatch) []ProductMatchResponse {
	out := make([]ProductMatchResponse, 0, len(matches))
	for i := range matches {
		out = append(out, MatchToProductResponse(&matches[i]))
	}
	return out
}

func rawJSON(b []byte) json.RawMessage {
	if len(b) == 0 {
		return nil
	}
	return json.RawMessage(b)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
