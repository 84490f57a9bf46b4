package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ferreinv/inventario-api/internal/application/dto"
	"github.com/ferreinv/inventario-api/internal/domain"
	"github.com/ferreinv/inventario-api/internal/domain/entity"
	"github.com/ferreinv/inventario-api/internal/domain/repository"
)

// CategoryUseCase casos de uso CRUD para categorías. Una categoría con
// productos asignados no puede eliminarse (se verifica por conteo, no por
// constraint de BD).
type CategoryUseCase struct {
	repo        repository.CategoryRepository
	productRepo repository.ProductRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, productRepo repository.ProductRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, productRepo: productRepo}
}

// Create crea una categoría. Nombre en blanco es inválido; sin color se
// asigna el azul por defecto.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	color := in.Color
	if color == "" {
		color = entity.DefaultCategoryColor
	}
	category := &entity.Category{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Color:     color,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.repo.Create(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category, 0), nil
}

// Update aplica un parche parcial sobre la categoría.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		category.Name = *in.Name
	}
	if in.Color != nil {
		category.Color = *in.Color
	}
	if err := uc.repo.Update(category); err != nil {
		return nil, err
	}
	count, err := uc.productRepo.CountByCategory(id)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(category, count), nil
}

// Delete elimina una categoría vacía. Con productos asignados devuelve
// ErrConflict.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	count, err := uc.productRepo.CountByCategory(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrConflict
	}
	return uc.repo.Delete(id)
}

// List devuelve todas las categorías con su conteo de productos.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.ListWithCounts()
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, cc := range list {
		out = append(out, *toCategoryResponse(&cc.Category, cc.ProductCount))
	}
	return out, nil
}

func toCategoryResponse(c *entity.Category, count int) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:           c.ID,
		Name:         c.Name,
		Color:        c.Color,
		ProductCount: count,
		CreatedAt:    c.CreatedAt,
	}
}
