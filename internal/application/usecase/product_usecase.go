package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ferreinv/inventario-api/internal/application/dto"
	"github.com/ferreinv/inventario-api/internal/application/inventory"
	"github.com/ferreinv/inventario-api/internal/application/ports"
	"github.com/ferreinv/inventario-api/internal/domain"
	"github.com/ferreinv/inventario-api/internal/domain/entity"
	"github.com/ferreinv/inventario-api/internal/domain/repository"
	"github.com/ferreinv/inventario-api/pkg/logger"
)

const defaultMinStock = 10

// ProductUseCase casos de uso CRUD para productos. El stock inicial se fija
// al crear; después solo cambia vía movimientos (motor de inventario).
type ProductUseCase struct {
	repo     repository.ProductRepository
	txRunner inventory.TxRunner
	storage  ports.ObjectStorage // puede ser nil si no hay S3 configurado
	log      *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	txRunner inventory.TxRunner,
	storage ports.ObjectStorage,
	log *logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, txRunner: txRunner, storage: storage, log: log}
}

// Create crea un producto. SKU duplicado devuelve ErrDuplicate; defaults:
// stock 0, min_stock 10, is_public true.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.SKU == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	minStock := defaultMinStock
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		minStock = *in.MinStock
	}
	isPublic := true
	if in.IsPublic != nil {
		isPublic = *in.IsPublic
	}

	now := time.Now().UTC()
	product := &entity.Product{
		ID:               uuid.New().String(),
		Name:             in.Name,
		SKU:              in.SKU,
		CategoryID:       in.CategoryID,
		Price:            in.Price,
		Stock:            in.Stock,
		MinStock:         minStock,
		ImageURL:         in.ImageURL,
		CloudStoragePath: in.CloudStoragePath,
		IsPublic:         isPublic,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	// Releer con la categoría resuelta para la respuesta.
	pc, err := uc.repo.GetWithCategory(product.ID)
	if err != nil || pc == nil {
		return toProductResponse(&repository.ProductWithCategory{Product: *product}), nil
	}
	return toProductResponse(pc), nil
}

// GetByID obtiene un producto con su categoría; nil si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	pc, err := uc.repo.GetWithCategory(id)
	if err != nil {
		return nil, err
	}
	if pc == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(pc), nil
}

// Update aplica un parche parcial. Cambiar el SKU a uno existente devuelve
// ErrDuplicate. Si cambia la imagen almacenada, la anterior se libera
// best-effort: un fallo se registra en log y no afecta la operación.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	existing, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}

	if in.SKU != nil && *in.SKU != existing.SKU {
		other, err := uc.repo.GetBySKU(*in.SKU)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, domain.ErrDuplicate
		}
	}

	updated := ApplyProductPatch(*existing, in)
	if updated.Name == "" || updated.SKU == "" || updated.Price.IsNegative() || updated.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	updated.UpdatedAt = time.Now().UTC()

	oldPath := existing.CloudStoragePath
	if err := uc.repo.Update(&updated); err != nil {
		return nil, err
	}

	// La imagen anterior se libera después de confirmar el update.
	if oldPath != "" && updated.CloudStoragePath != oldPath {
		uc.releaseImage(ctx, oldPath)
	}

	pc, err := uc.repo.GetWithCategory(id)
	if err != nil || pc == nil {
		return toProductResponse(&repository.ProductWithCategory{Product: updated}), nil
	}
	return toProductResponse(pc), nil
}

// Delete elimina el producto y, en la misma transacción, su historial de
// movimientos (decisión explícita: sin filas huérfanas en el ledger).
// La imagen asociada se libera best-effort.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	existing, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := movRepo.DeleteByProduct(id); err != nil {
			return err
		}
		return productRepo.Delete(id)
	})
	if err != nil {
		return err
	}

	if existing.CloudStoragePath != "" {
		uc.releaseImage(ctx, existing.CloudStoragePath)
	}
	return nil
}

// List lista productos con filtros de búsqueda, categoría y estado de stock.
func (uc *ProductUseCase) List(ctx context.Context, filter repository.ProductFilter) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, pc := range list {
		out = append(out, *toProductResponse(pc))
	}
	return out, nil
}

// releaseImage borra un objeto de S3 sin propagar el error (log-and-continue).
func (uc *ProductUseCase) releaseImage(ctx context.Context, path string) {
	if uc.storage == nil {
		return
	}
	if err := uc.storage.Delete(ctx, path); err != nil && uc.log != nil {
		uc.log.Warn().Err(err).Str("path", path).Msg("no se pudo liberar la imagen anterior")
	}
}

// ApplyProductPatch mezcla un parche parcial sobre un producto existente.
// Función pura: los campos nil del parche conservan el valor previo.
// CategoryID admite string vacío para desasignar la categoría. Stock queda
// fuera a propósito: solo el motor de inventario lo modifica.
func ApplyProductPatch(p entity.Product, in dto.UpdateProductRequest) entity.Product {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.SKU != nil {
		p.SKU = *in.SKU
	}
	if in.CategoryID != nil {
		p.CategoryID = *in.CategoryID
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.MinStock != nil {
		p.MinStock = *in.MinStock
	}
	if in.ImageURL != nil {
		p.ImageURL = *in.ImageURL
	}
	if in.CloudStoragePath != nil {
		p.CloudStoragePath = *in.CloudStoragePath
	}
	if in.IsPublic != nil {
		p.IsPublic = *in.IsPublic
	}
	return p
}

func toProductResponse(pc *repository.ProductWithCategory) *dto.ProductResponse {
	p := pc.Product
	resp := &dto.ProductResponse{
		ID:               p.ID,
		Name:             p.Name,
		SKU:              p.SKU,
		CategoryID:       p.CategoryID,
		Price:            p.Price,
		Stock:            p.Stock,
		MinStock:         p.MinStock,
		ImageURL:         p.ImageURL,
		CloudStoragePath: p.CloudStoragePath,
		IsPublic:         p.IsPublic,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if pc.Category != nil {
		resp.Category = &dto.CategoryResponse{
			ID:        pc.Category.ID,
			Name:      pc.Category.Name,
			Color:     pc.Category.Color,
			CreatedAt: pc.Category.CreatedAt,
		}
	}
	return resp
}
