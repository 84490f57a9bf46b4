package dto

import "time"

// RegisterMovementRequest entrada para registrar un movimiento de stock.
// Date es opcional; si se omite se usa la hora del servidor (UTC).
type RegisterMovementRequest struct {
	ProductID string     `json:"productId" validate:"required"`
	Type      string     `json:"type" validate:"required,oneof=entrada salida"`
	Quantity  int        `json:"quantity" validate:"required,gt=0"`
	Reason    string     `json:"reason"`
	Date      *time.Time `json:"date"`
}

// MovementProductRef datos mínimos del producto asociado a un movimiento.
type MovementProductRef struct {
	Name string `json:"name"`
	SKU  string `json:"sku"`
}

// MovementResponse salida de un movimiento con su producto resuelto.
type MovementResponse struct {
	ID        string             `json:"id"`
	ProductID string             `json:"productId"`
	Type      string             `json:"type"`
	Quantity  int                `json:"quantity"`
	Reason    string             `json:"reason"`
	Date      time.Time          `json:"date"`
	Product   MovementProductRef `json:"product"`
}
