package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ferreinv/inventario-api/internal/domain/entity"
)

// MovementFilter criterios de consulta del ledger.
type MovementFilter struct {
	ProductID string
	Type      string // entrada | salida | vacío (ambos)
	From      *time.Time
	To        *time.Time
}

// MovementWithProduct movimiento con los datos del producto resueltos
// (nombre, sku y precio vigente, necesarios para respuestas y reportes).
type MovementWithProduct struct {
	Movement     entity.StockMovement
	ProductName  string
	ProductSKU   string
	ProductPrice decimal.Decimal
}

// StockMovementRepository define el puerto de persistencia del ledger.
// El ledger es append-only: no existe Update; DeleteByProduct solo se usa
// en la eliminación en cascada del producto.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	List(filter MovementFilter) ([]*MovementWithProduct, error)
	Recent(limit int) ([]*MovementWithProduct, error)
	DeleteByProduct(productID string) error
}
