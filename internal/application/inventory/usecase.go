// Package inventory contiene el motor de consistencia de inventario: el
// único camino autorizado para modificar el stock de un producto. Cada
// movimiento valida el stock disponible, recalcula el contador y persiste
// el registro del ledger y el nuevo stock como una unidad atómica.
package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ferreinv/inventario-api/internal/application/dto"
	"github.com/ferreinv/inventario-api/internal/domain"
	"github.com/ferreinv/inventario-api/internal/domain/entity"
	"github.com/ferreinv/inventario-api/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos de stock de forma
// transaccional con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
// Dos salidas concurrentes sobre el mismo producto se serializan en el lock;
// productos distintos no se bloquean entre sí.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	movRepo  repository.StockMovementRepository
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner, movRepo repository.StockMovementRepository) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, movRepo: movRepo}
}

// RegisterMovement valida la entrada, inicia una transacción, bloquea la
// fila del producto, verifica stock disponible en salidas y persiste
// movimiento + stock actualizado. Si algo falla no queda estado parcial.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	if in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidMovementType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	date := now
	if in.Date != nil {
		date = in.Date.UTC()
	}

	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		Date:      date,
		CreatedAt: now,
	}

	var productName, productSKU string

	// Commit si todo ok, Rollback si algo falla (TxRunner.Run lo hace).
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		// Bloquea la fila del producto para serializar lectura-validación-escritura.
		product, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		newStock := product.Stock
		switch in.Type {
		case entity.MovementTypeEntrada:
			newStock += in.Quantity
		case entity.MovementTypeSalida:
			if in.Quantity > product.Stock {
				return domain.ErrInsufficientStock
			}
			newStock -= in.Quantity
		}

		if err := movRepo.Create(mov); err != nil {
			return err
		}
		if err := productRepo.UpdateStock(product.ID, newStock); err != nil {
			return err
		}

		productName = product.Name
		productSKU = product.SKU
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.MovementResponse{
		ID:        mov.ID,
		ProductID: mov.ProductID,
		Type:      mov.Type,
		Quantity:  mov.Quantity,
		Reason:    mov.Reason,
		Date:      mov.Date,
		Product:   dto.MovementProductRef{Name: productName, SKU: productSKU},
	}, nil
}

// ListMovements consulta el ledger con filtros opcionales, más reciente
// primero. Sin coincidencias devuelve slice vacío, nunca error.
func (uc *RegisterMovementUseCase) ListMovements(ctx context.Context, filter repository.MovementFilter) ([]dto.MovementResponse, error) {
	if filter.Type != "" && !entity.ValidMovementType(filter.Type) {
		// Tipo desconocido: se ignora en vez de fallar la consulta.
		filter.Type = ""
	}
	list, err := uc.movRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.MovementResponse{
			ID:        m.Movement.ID,
			ProductID: m.Movement.ProductID,
			Type:      m.Movement.Type,
			Quantity:  m.Movement.Quantity,
			Reason:    m.Movement.Reason,
			Date:      m.Movement.Date,
			Product:   dto.MovementProductRef{Name: m.ProductName, SKU: m.ProductSKU},
		})
	}
	return out, nil
}
