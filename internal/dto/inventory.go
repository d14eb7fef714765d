package dto

import (
	"github.com/bankterm/terminal_backend/internal/core/domain"
)

// InventoryPositionResponse is the API representation of one denomination position.
type InventoryPositionResponse struct {
	Denomination int64 `json:"denomination"`
	Quantity     int64 `json:"quantity"`
}

// ToInventoryPositionResponses converts domain positions to their API shape.
func ToInventoryPositionResponses(positions []domain.InventoryPosition) []InventoryPositionResponse {
	out := make([]InventoryPositionResponse, len(positions))
	for i, p := range positions {
		out[i] = InventoryPositionResponse{
			Denomination: int64(p.Denomination),
			Quantity:     p.Quantity,
		}
	}
	return out
}

// RestockRequest is the payload for an administrator inventory adjustment.
type RestockRequest struct {
	Quantity int64 `json:"quantity" binding:"gte=0"`
}
