package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo identificado por su SKU.
// Stock es un contador denormalizado del ledger de movimientos: solo se
// modifica a través del motor de inventario, nunca por edición directa.
type Product struct {
	ID               string
	Name             string
	SKU              string // código único global
	CategoryID       string // vacío si no tiene categoría
	Price            decimal.Decimal
	Stock            int // unidades disponibles, nunca negativo
	MinStock         int // umbral de stock bajo (default 10)
	ImageURL         string
	CloudStoragePath string // key del objeto en S3, vacío si no hay imagen
	IsPublic         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// LowStock indica si el producto está en o por debajo de su umbral mínimo.
// Incluye stock cero: el dashboard cuenta todo lo que requiere atención.
func (p *Product) LowStock() bool {
	return p.Stock <= p.MinStock
}
