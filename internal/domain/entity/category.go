package entity

import "time"

// DefaultCategoryColor color hex asignado cuando no se indica uno.
const DefaultCategoryColor = "#3B82F6"

// Category representa una categoría de productos con color para las gráficas.
type Category struct {
	ID        string
	Name      string
	Color     string // hex, ej. #3B82F6
	CreatedAt time.Time
}
