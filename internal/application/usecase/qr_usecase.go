package usecase

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/ferreinv/inventario-api/internal/application/dto"
	"github.com/ferreinv/inventario-api/internal/application/ports"
	"github.com/ferreinv/inventario-api/internal/domain"
	"github.com/ferreinv/inventario-api/internal/domain/repository"
)

const qrImageSize = 300 // px

// ProductQRUseCase genera el código QR de etiqueta de un producto.
// El payload es un JSON compacto con id, nombre, sku y precio.
type ProductQRUseCase struct {
	repo      repository.ProductRepository
	generator ports.QRGenerator
}

// NewProductQRUseCase construye el caso de uso.
func NewProductQRUseCase(repo repository.ProductRepository, generator ports.QRGenerator) *ProductQRUseCase {
	return &ProductQRUseCase{repo: repo, generator: generator}
}

type qrPayload struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	SKU   string          `json:"sku"`
	Price decimal.Decimal `json:"price"`
}

// Generate devuelve el QR del producto como data URL PNG de 300px.
func (uc *ProductQRUseCase) Generate(ctx context.Context, productID string) (*dto.ProductQRResponse, error) {
	product, err := uc.repo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	payload, err := json.Marshal(qrPayload{
		ID:    product.ID,
		Name:  product.Name,
		SKU:   product.SKU,
		Price: product.Price,
	})
	if err != nil {
		return nil, err
	}
	dataURL, err := uc.generator.DataURL(payload, qrImageSize)
	if err != nil {
		return nil, err
	}
	return &dto.ProductQRResponse{QRCode: dataURL}, nil
}
