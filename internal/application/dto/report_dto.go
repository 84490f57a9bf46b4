package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardMetricsResponse métricas agregadas del inventario.
// LowStockCount usa stock <= min_stock (incluye agotados): cuenta todo lo
// que requiere atención, a diferencia del filtro status=low del listado.
type DashboardMetricsResponse struct {
	TotalProducts   int             `json:"totalProducts"`
	TotalStockValue decimal.Decimal `json:"totalStockValue"`
	LowStockCount   int             `json:"lowStockCount"`
}

// ActivityItem movimiento reciente para el widget de actividad.
type ActivityItem struct {
	ID          string    `json:"id"`
	ProductName string    `json:"productName"`
	Type        string    `json:"type"`
	Quantity    int       `json:"quantity"`
	Date        time.Time `json:"date"`
}

// TopProductDTO producto más vendido (salidas agregadas del ledger).
type TopProductDTO struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	TotalSold int             `json:"totalSold"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// CategoryValueDTO valor de inventario acumulado por categoría.
type CategoryValueDTO struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
	Color string          `json:"color"`
}

// PeriodMovementsDTO entradas y salidas agregadas por fecha calendario (UTC).
type PeriodMovementsDTO struct {
	Date     string `json:"date"` // YYYY-MM-DD
	Entradas int    `json:"entradas"`
	Salidas  int    `json:"salidas"`
}
