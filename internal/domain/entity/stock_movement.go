package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeEntrada = "entrada" // aumenta stock (compra, devolución)
	MovementTypeSalida  = "salida"  // disminuye stock (venta, merma)
)

// ValidMovementType verifica que el tipo sea exactamente entrada o salida.
func ValidMovementType(t string) bool {
	return t == MovementTypeEntrada || t == MovementTypeSalida
}

// StockMovement es una entrada inmutable del ledger de inventario: registra
// qué cambió el stock de un producto y por qué. Nunca se actualiza; solo se
// elimina en cascada cuando se elimina el producto.
type StockMovement struct {
	ID        string
	ProductID string
	Type      string // entrada | salida
	Quantity  int    // siempre positivo; el tipo define el signo
	Reason    string
	Date      time.Time // puede ser retroactiva si el caller la indica
	CreatedAt time.Time
}
