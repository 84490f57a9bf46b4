package repository

import "github.com/ferreinv/inventario-api/internal/domain/entity"

// CategoryWithCount categoría con el número de productos que la referencian.
type CategoryWithCount struct {
	Category     entity.Category
	ProductCount int
}

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	Update(category *entity.Category) error
	ListWithCounts() ([]*CategoryWithCount, error)
	Delete(id string) error
}
