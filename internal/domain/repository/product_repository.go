package repository

import "github.com/ferreinv/inventario-api/internal/domain/entity"

// Estados de stock aceptados por el filtro de listado.
const (
	StockStatusAll = "all"
	StockStatusLow = "low" // 0 < stock <= min_stock
	StockStatusOut = "out" // stock = 0
)

// ProductFilter criterios de listado de productos.
type ProductFilter struct {
	Search      string // substring case-insensitive sobre name o sku
	CategoryID  string
	StockStatus string // all | low | out (vacío = all)
}

// ProductWithCategory producto con su categoría resuelta (LEFT JOIN).
// Category es nil si el producto no tiene categoría asignada.
type ProductWithCategory struct {
	Product  entity.Product
	Category *entity.Category
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetForUpdate bloquea la fila (SELECT FOR UPDATE) y solo tiene sentido
// dentro de una transacción del TxRunner.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	GetWithCategory(id string) (*ProductWithCategory, error)
	Update(product *entity.Product) error
	UpdateStock(productID string, stock int) error
	List(filter ProductFilter) ([]*ProductWithCategory, error)
	CountByCategory(categoryID string) (int, error)
	Delete(id string) error
}
