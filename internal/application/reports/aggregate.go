// Package reports contiene la capa de agregación de solo lectura: métricas
// del dashboard, productos más vendidos, valor por categoría y movimientos
// por período. Las agregaciones son funciones puras sobre los datos de los
// repositorios; la comparación stock <= min_stock se evalúa como predicado
// explícito de aplicación.
package reports

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ferreinv/inventario-api/internal/application/dto"
	"github.com/ferreinv/inventario-api/internal/domain/entity"
	"github.com/ferreinv/inventario-api/internal/domain/repository"
)

// Etiqueta y color para productos sin categoría en los reportes.
const (
	uncategorizedLabel = "Sin categoría"
	uncategorizedColor = "#6B7280"
)

// ComputeDashboardMetrics calcula totales sobre el catálogo completo.
// lowStockCount cuenta stock <= min_stock, agotados incluidos; el filtro
// status=low del listado separa los agotados en su propio bucket.
func ComputeDashboardMetrics(products []*repository.ProductWithCategory) dto.DashboardMetricsResponse {
	total := decimal.Zero
	lowStock := 0
	for _, pc := range products {
		p := pc.Product
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Stock))))
		if p.LowStock() {
			lowStock++
		}
	}
	return dto.DashboardMetricsResponse{
		TotalProducts:   len(products),
		TotalStockValue: total,
		LowStockCount:   lowStock,
	}
}

// AggregateTopProducts agrega las salidas del ledger por producto: suma de
// unidades y de ingresos (cantidad × precio vigente), orden descendente por
// unidades vendidas, truncado a limit.
func AggregateTopProducts(salidas []*repository.MovementWithProduct, limit int) []dto.TopProductDTO {
	type acc struct {
		name      string
		sku       string
		totalSold int
		revenue   decimal.Decimal
	}
	byProduct := make(map[string]*acc)
	order := make([]string, 0) // primer avistamiento, para desempates estables
	for _, m := range salidas {
		if m.Movement.Type != entity.MovementTypeSalida {
			continue
		}
		id := m.Movement.ProductID
		a, ok := byProduct[id]
		if !ok {
			a = &acc{name: m.ProductName, sku: m.ProductSKU, revenue: decimal.Zero}
			byProduct[id] = a
			order = append(order, id)
		}
		a.totalSold += m.Movement.Quantity
		a.revenue = a.revenue.Add(m.ProductPrice.Mul(decimal.NewFromInt(int64(m.Movement.Quantity))))
	}

	out := make([]dto.TopProductDTO, 0, len(order))
	for _, id := range order {
		a := byProduct[id]
		out = append(out, dto.TopProductDTO{
			ID:        id,
			Name:      a.name,
			SKU:       a.sku,
			TotalSold: a.totalSold,
			Revenue:   a.revenue,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalSold > out[j].TotalSold })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// AggregateValueByCategory acumula precio × stock por nombre de categoría,
// orden descendente por valor. Sin categoría se agrupa bajo una etiqueta fija.
func AggregateValueByCategory(products []*repository.ProductWithCategory) []dto.CategoryValueDTO {
	type acc struct {
		value decimal.Decimal
		color string
	}
	byName := make(map[string]*acc)
	order := make([]string, 0)
	for _, pc := range products {
		name := uncategorizedLabel
		color := uncategorizedColor
		if pc.Category != nil {
			name = pc.Category.Name
			color = pc.Category.Color
		}
		a, ok := byName[name]
		if !ok {
			a = &acc{value: decimal.Zero, color: color}
			byName[name] = a
			order = append(order, name)
		}
		p := pc.Product
		a.value = a.value.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Stock))))
	}

	out := make([]dto.CategoryValueDTO, 0, len(order))
	for _, name := range order {
		a := byName[name]
		out = append(out, dto.CategoryValueDTO{Name: name, Value: a.value, Color: a.color})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value.GreaterThan(out[j].Value) })
	return out
}

// AggregateMovementsByPeriod agrupa los movimientos por fecha calendario UTC
// sumando entradas y salidas por día, orden ascendente por fecha.
func AggregateMovementsByPeriod(movements []*repository.MovementWithProduct) []dto.PeriodMovementsDTO {
	byDate := make(map[string]*dto.PeriodMovementsDTO)
	for _, m := range movements {
		day := m.Movement.Date.UTC().Format("2006-01-02")
		bucket, ok := byDate[day]
		if !ok {
			bucket = &dto.PeriodMovementsDTO{Date: day}
			byDate[day] = bucket
		}
		switch m.Movement.Type {
		case entity.MovementTypeEntrada:
			bucket.Entradas += m.Movement.Quantity
		case entity.MovementTypeSalida:
			bucket.Salidas += m.Movement.Quantity
		}
	}

	out := make([]dto.PeriodMovementsDTO, 0, len(byDate))
	for _, bucket := range byDate {
		out = append(out, *bucket)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
