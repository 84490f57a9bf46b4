package reports_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferreinv/inventario-api/internal/application/reports"
	"github.com/ferreinv/inventario-api/internal/domain/entity"
	"github.com/ferreinv/inventario-api/internal/domain/repository"
)

func producto(name string, price int64, stock, minStock int, cat *entity.Category) *repository.ProductWithCategory {
	return &repository.ProductWithCategory{
		Product: entity.Product{
			Name:     name,
			Price:    decimal.NewFromInt(price),
			Stock:    stock,
			MinStock: minStock,
		},
		Category: cat,
	}
}

func salida(productID, name, sku string, qty int, price int64, date time.Time) *repository.MovementWithProduct {
	return &repository.MovementWithProduct{
		Movement: entity.StockMovement{
			ProductID: productID,
			Type:      entity.MovementTypeSalida,
			Quantity:  qty,
			Date:      date,
		},
		ProductName:  name,
		ProductSKU:   sku,
		ProductPrice: decimal.NewFromInt(price),
	}
}

// ── métricas del dashboard ────────────────────────────────────────────────────

// TestComputeDashboardMetrics_Totales verifica el conteo de productos, el
// valor total (precio × stock) y el conteo de stock bajo.
func TestComputeDashboardMetrics_Totales(t *testing.T) {
	products := []*repository.ProductWithCategory{
		producto("A", 10, 100, 5, nil), // valor 1000, stock sano
		producto("B", 20, 3, 5, nil),   // valor 60, stock bajo
		producto("C", 50, 0, 5, nil),   // valor 0, agotado (también cuenta como bajo)
	}

	m := reports.ComputeDashboardMetrics(products)

	assert.Equal(t, 3, m.TotalProducts)
	assert.True(t, m.TotalStockValue.Equal(decimal.NewFromInt(1060)),
		"valor total = 1000 + 60 + 0")
	assert.Equal(t, 2, m.LowStockCount, "stock <= min_stock incluye agotados")
}

// TestComputeDashboardMetrics_LimiteExacto verifica el caso límite
// stock == min_stock: cuenta como stock bajo.
func TestComputeDashboardMetrics_LimiteExacto(t *testing.T) {
	products := []*repository.ProductWithCategory{
		producto("A", 10, 5, 5, nil),
	}
	m := reports.ComputeDashboardMetrics(products)
	assert.Equal(t, 1, m.LowStockCount, "stock == min_stock cuenta como bajo")
}

// TestComputeDashboardMetrics_MinStockRecalcula verifica que subir el umbral
// min_stock cambia el conteo: la métrica se evalúa sobre el estado vigente,
// no sobre un flag almacenado.
func TestComputeDashboardMetrics_MinStockRecalcula(t *testing.T) {
	p := producto("A", 10, 8, 5, nil)

	antes := reports.ComputeDashboardMetrics([]*repository.ProductWithCategory{p})
	assert.Equal(t, 0, antes.LowStockCount, "8 > 5: stock sano")

	p.Product.MinStock = 10
	despues := reports.ComputeDashboardMetrics([]*repository.ProductWithCategory{p})
	assert.Equal(t, 1, despues.LowStockCount, "8 <= 10: ahora es stock bajo")
}

func TestComputeDashboardMetrics_CatalogoVacio(t *testing.T) {
	m := reports.ComputeDashboardMetrics(nil)
	assert.Equal(t, 0, m.TotalProducts)
	assert.True(t, m.TotalStockValue.IsZero())
	assert.Equal(t, 0, m.LowStockCount)
}

// ── productos más vendidos ────────────────────────────────────────────────────

// TestAggregateTopProducts_OrdenYLimite verifica la agregación por producto,
// el orden descendente por unidades y el truncado a limit.
func TestAggregateTopProducts_OrdenYLimite(t *testing.T) {
	hoy := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	salidas := []*repository.MovementWithProduct{
		salida("p1", "Tornillo", "TOR-1", 5, 2, hoy),
		salida("p2", "Martillo", "MAR-1", 12, 25, hoy),
		salida("p1", "Tornillo", "TOR-1", 10, 2, hoy),
	}

	top := reports.AggregateTopProducts(salidas, 10)

	require.Len(t, top, 2)
	assert.Equal(t, "p1", top[0].ID, "15 unidades > 12 unidades")
	assert.Equal(t, 15, top[0].TotalSold)
	assert.True(t, top[0].Revenue.Equal(decimal.NewFromInt(30)), "15 × 2 = 30")
	assert.Equal(t, "p2", top[1].ID)
	assert.True(t, top[1].Revenue.Equal(decimal.NewFromInt(300)), "12 × 25 = 300")

	soloUno := reports.AggregateTopProducts(salidas, 1)
	require.Len(t, soloUno, 1, "limit trunca el resultado")
	assert.Equal(t, "p1", soloUno[0].ID)
}

// TestAggregateTopProducts_IgnoraEntradas verifica que solo las salidas
// cuentan como ventas.
func TestAggregateTopProducts_IgnoraEntradas(t *testing.T) {
	hoy := time.Now().UTC()
	movs := []*repository.MovementWithProduct{
		salida("p1", "Tornillo", "TOR-1", 5, 2, hoy),
		{
			Movement: entity.StockMovement{
				ProductID: "p1", Type: entity.MovementTypeEntrada, Quantity: 100, Date: hoy,
			},
			ProductName: "Tornillo", ProductSKU: "TOR-1", ProductPrice: decimal.NewFromInt(2),
		},
	}

	top := reports.AggregateTopProducts(movs, 10)

	require.Len(t, top, 1)
	assert.Equal(t, 5, top[0].TotalSold, "la entrada de 100 no suma")
}

func TestAggregateTopProducts_SinSalidasDevuelveVacio(t *testing.T) {
	top := reports.AggregateTopProducts(nil, 10)
	assert.NotNil(t, top)
	assert.Empty(t, top)
}

// ── valor por categoría ───────────────────────────────────────────────────────

// TestAggregateValueByCategory_AgrupaYOrdena verifica la acumulación por
// categoría con orden descendente por valor.
func TestAggregateValueByCategory_AgrupaYOrdena(t *testing.T) {
	herramientas := &entity.Category{Name: "Herramientas", Color: "#FF0000"}
	fijaciones := &entity.Category{Name: "Fijaciones", Color: "#00FF00"}
	products := []*repository.ProductWithCategory{
		producto("Martillo", 25, 10, 5, herramientas),      // 250
		producto("Tornillo", 2, 500, 50, fijaciones),       // 1000
		producto("Destornillador", 12, 5, 5, herramientas), // 60
	}

	out := reports.AggregateValueByCategory(products)

	require.Len(t, out, 2)
	assert.Equal(t, "Fijaciones", out[0].Name, "1000 > 310")
	assert.True(t, out[0].Value.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, "Herramientas", out[1].Name)
	assert.True(t, out[1].Value.Equal(decimal.NewFromInt(310)), "250 + 60")
	assert.Equal(t, "#FF0000", out[1].Color)
}

// TestAggregateValueByCategory_SinCategoria verifica el bucket de productos
// sin categoría con su etiqueta y color fijos.
func TestAggregateValueByCategory_SinCategoria(t *testing.T) {
	products := []*repository.ProductWithCategory{
		producto("Suelto", 10, 3, 5, nil),
	}

	out := reports.AggregateValueByCategory(products)

	require.Len(t, out, 1)
	assert.Equal(t, "Sin categoría", out[0].Name)
	assert.Equal(t, "#6B7280", out[0].Color)
	assert.True(t, out[0].Value.Equal(decimal.NewFromInt(30)))
}

// ── movimientos por período ───────────────────────────────────────────────────

// TestAggregateMovementsByPeriod_AgrupaPorDiaUTC verifica la agrupación por
// fecha calendario UTC con orden ascendente.
func TestAggregateMovementsByPeriod_AgrupaPorDiaUTC(t *testing.T) {
	dia1 := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	dia2 := time.Date(2024, 6, 2, 18, 0, 0, 0, time.UTC)
	movs := []*repository.MovementWithProduct{
		{Movement: entity.StockMovement{Type: entity.MovementTypeEntrada, Quantity: 10, Date: dia2}},
		{Movement: entity.StockMovement{Type: entity.MovementTypeEntrada, Quantity: 5, Date: dia1}},
		{Movement: entity.StockMovement{Type: entity.MovementTypeSalida, Quantity: 3, Date: dia1}},
	}

	out := reports.AggregateMovementsByPeriod(movs)

	require.Len(t, out, 2)
	assert.Equal(t, "2024-06-01", out[0].Date, "orden ascendente por fecha")
	assert.Equal(t, 5, out[0].Entradas)
	assert.Equal(t, 3, out[0].Salidas)
	assert.Equal(t, "2024-06-02", out[1].Date)
	assert.Equal(t, 10, out[1].Entradas)
	assert.Equal(t, 0, out[1].Salidas)
}

// TestAggregateMovementsByPeriod_HorasDistintasMismoDia verifica que la hora
// no separa buckets: el mismo día calendario acumula junto.
func TestAggregateMovementsByPeriod_HorasDistintasMismoDia(t *testing.T) {
	manana := time.Date(2024, 6, 1, 0, 0, 1, 0, time.UTC)
	noche := time.Date(2024, 6, 1, 23, 59, 59, 0, time.UTC)
	movs := []*repository.MovementWithProduct{
		{Movement: entity.StockMovement{Type: entity.MovementTypeSalida, Quantity: 1, Date: manana}},
		{Movement: entity.StockMovement{Type: entity.MovementTypeSalida, Quantity: 2, Date: noche}},
	}

	out := reports.AggregateMovementsByPeriod(movs)

	require.Len(t, out, 1)
	assert.Equal(t, 3, out[0].Salidas)
}
