package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Color string `json:"color"` // hex opcional; default #3B82F6
}

// UpdateCategoryRequest parche parcial de categoría.
type UpdateCategoryRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=100"`
	Color *string `json:"color"`
}

// CategoryResponse salida de una categoría. ProductCount solo se llena
// en el listado.
type CategoryResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Color        string    `json:"color"`
	ProductCount int       `json:"productCount,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
