package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// MinStock e IsPublic usan puntero para distinguir omitido de cero/false.
type CreateProductRequest struct {
	Name             string          `json:"name" validate:"required,min=1,max=200"`
	SKU              string          `json:"sku" validate:"required,min=1,max=100"`
	CategoryID       string          `json:"categoryId"`
	Price            decimal.Decimal `json:"price"`
	Stock            int             `json:"stock"`
	MinStock         *int            `json:"minStock"`
	ImageURL         string          `json:"imageUrl"`
	CloudStoragePath string          `json:"cloudStoragePath"`
	IsPublic         *bool           `json:"isPublic"`
}

// UpdateProductRequest parche parcial: solo los campos presentes se aplican.
// No incluye Stock: el stock se modifica únicamente vía movimientos.
type UpdateProductRequest struct {
	Name             *string          `json:"name" validate:"omitempty,min=1,max=200"`
	SKU              *string          `json:"sku" validate:"omitempty,min=1,max=100"`
	CategoryID       *string          `json:"categoryId"`
	Price            *decimal.Decimal `json:"price"`
	MinStock         *int             `json:"minStock"`
	ImageURL         *string          `json:"imageUrl"`
	CloudStoragePath *string          `json:"cloudStoragePath"`
	IsPublic         *bool            `json:"isPublic"`
}

// ProductResponse salida de un producto con su categoría resuelta.
type ProductResponse struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	SKU              string            `json:"sku"`
	CategoryID       string            `json:"categoryId,omitempty"`
	Category         *CategoryResponse `json:"category,omitempty"`
	Price            decimal.Decimal   `json:"price"`
	Stock            int               `json:"stock"`
	MinStock         int               `json:"minStock"`
	ImageURL         string            `json:"imageUrl,omitempty"`
	CloudStoragePath string            `json:"cloudStoragePath,omitempty"`
	IsPublic         bool              `json:"isPublic"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// ProductQRResponse código QR del producto como data URL PNG.
type ProductQRResponse struct {
	QRCode string `json:"qrCode"`
}
