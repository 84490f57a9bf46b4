package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ferreinv/inventario-api/internal/application/dto"
	"github.com/ferreinv/inventario-api/internal/domain/entity"
	"github.com/ferreinv/inventario-api/internal/domain/repository"
)

const (
	defaultTopProducts  = 10
	recentActivityLimit = 10
)

// ValuationRow línea del reporte PDF de valorización de inventario.
type ValuationRow struct {
	Name     string
	SKU      string
	Category string
	Stock    int
	Price    decimal.Decimal
	Value    decimal.Decimal
}

// ValuationPDFGenerator puerto hacia el generador PDF del reporte.
type ValuationPDFGenerator interface {
	GenerateValuationPDF(ctx context.Context, generatedAt time.Time, rows []ValuationRow, total decimal.Decimal) ([]byte, error)
}

// ReportUseCase consultas de solo lectura sobre catálogo y ledger.
// Sin mutaciones: dos llamadas sin escrituras intermedias devuelven lo mismo.
type ReportUseCase struct {
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
	pdf         ValuationPDFGenerator
}

// NewReportUseCase construye el caso de uso. pdf puede ser nil si el export
// PDF no está habilitado.
func NewReportUseCase(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	pdf ValuationPDFGenerator,
) *ReportUseCase {
	return &ReportUseCase{productRepo: productRepo, movRepo: movRepo, pdf: pdf}
}

// DashboardMetrics devuelve los totales del dashboard en una sola pasada
// sobre el catálogo.
func (uc *ReportUseCase) DashboardMetrics(ctx context.Context) (*dto.DashboardMetricsResponse, error) {
	products, err := uc.productRepo.List(repository.ProductFilter{})
	if err != nil {
		return nil, fmt.Errorf("dashboard: listar productos: %w", err)
	}
	metrics := ComputeDashboardMetrics(products)
	return &metrics, nil
}

// RecentActivity devuelve los movimientos más recientes del ledger.
func (uc *ReportUseCase) RecentActivity(ctx context.Context) ([]dto.ActivityItem, error) {
	movements, err := uc.movRepo.Recent(recentActivityLimit)
	if err != nil {
		return nil, fmt.Errorf("dashboard: actividad reciente: %w", err)
	}
	out := make([]dto.ActivityItem, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.ActivityItem{
			ID:          m.Movement.ID,
			ProductName: m.ProductName,
			Type:        m.Movement.Type,
			Quantity:    m.Movement.Quantity,
			Date:        m.Movement.Date,
		})
	}
	return out, nil
}

// TopProducts agrega las salidas del ledger por producto. limit <= 0 usa 10.
func (uc *ReportUseCase) TopProducts(ctx context.Context, limit int) ([]dto.TopProductDTO, error) {
	if limit <= 0 {
		limit = defaultTopProducts
	}
	salidas, err := uc.movRepo.List(repository.MovementFilter{Type: entity.MovementTypeSalida})
	if err != nil {
		return nil, fmt.Errorf("reportes: salidas del ledger: %w", err)
	}
	return AggregateTopProducts(salidas, limit), nil
}

// InventoryValueByCategory devuelve el valor de inventario por categoría.
func (uc *ReportUseCase) InventoryValueByCategory(ctx context.Context) ([]dto.CategoryValueDTO, error) {
	products, err := uc.productRepo.List(repository.ProductFilter{})
	if err != nil {
		return nil, fmt.Errorf("reportes: listar productos: %w", err)
	}
	return AggregateValueByCategory(products), nil
}

// MovementsByPeriod agrega entradas/salidas por fecha calendario dentro del
// rango opcional.
func (uc *ReportUseCase) MovementsByPeriod(ctx context.Context, from, to *time.Time) ([]dto.PeriodMovementsDTO, error) {
	movements, err := uc.movRepo.List(repository.MovementFilter{From: from, To: to})
	if err != nil {
		return nil, fmt.Errorf("reportes: movimientos: %w", err)
	}
	return AggregateMovementsByPeriod(movements), nil
}

// InventoryValuationPDF genera el reporte PDF de valorización del catálogo.
func (uc *ReportUseCase) InventoryValuationPDF(ctx context.Context) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("reportes: generador PDF no configurado")
	}
	products, err := uc.productRepo.List(repository.ProductFilter{})
	if err != nil {
		return nil, fmt.Errorf("reportes: listar productos: %w", err)
	}
	rows := make([]ValuationRow, 0, len(products))
	total := decimal.Zero
	for _, pc := range products {
		p := pc.Product
		category := uncategorizedLabel
		if pc.Category != nil {
			category = pc.Category.Name
		}
		value := p.Price.Mul(decimal.NewFromInt(int64(p.Stock)))
		total = total.Add(value)
		rows = append(rows, ValuationRow{
			Name:     p.Name,
			SKU:      p.SKU,
			Category: category,
			Stock:    p.Stock,
			Price:    p.Price,
			Value:    value,
		})
	}
	return uc.pdf.GenerateValuationPDF(ctx, time.Now().UTC(), rows, total)
}
