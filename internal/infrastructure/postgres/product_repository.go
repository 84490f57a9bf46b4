package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ferreinv/inventario-api/internal/domain"
	"github.com/ferreinv/inventario-api/internal/domain/entity"
	"github.com/ferreinv/inventario-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
// Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, name, sku, category_id, price, stock, min_stock, image_url, cloud_storage_path, is_public, created_at, updated_at`

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.SKU, nullable(product.CategoryID),
		product.Price, product.Stock, product.MinStock,
		nullable(product.ImageURL), nullable(product.CloudStoragePath),
		product.IsPublic, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID; nil si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product")
}

// GetBySKU obtiene un producto por SKU; nil si no existe.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, sku), "get product by sku")
}

// GetForUpdate obtiene el producto y bloquea su fila (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product for update")
}

// GetWithCategory obtiene un producto con su categoría resuelta (LEFT JOIN).
func (r *ProductRepo) GetWithCategory(id string) (*repository.ProductWithCategory, error) {
	query := `
		SELECT p.id, p.name, p.sku, p.category_id, p.price, p.stock, p.min_stock,
		       p.image_url, p.cloud_storage_path, p.is_public, p.created_at, p.updated_at,
		       c.id, c.name, c.color, c.created_at
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1`
	pc, err := scanProductWithCategory(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product with category: %w", err)
	}
	return pc, nil
}

// Update sobrescribe los campos editables del producto. No toca stock: el
// stock solo cambia vía UpdateStock dentro del motor de inventario.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, sku = $3, category_id = $4, price = $5, min_stock = $6,
		    image_url = $7, cloud_storage_path = $8, is_public = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.SKU, nullable(product.CategoryID),
		product.Price, product.MinStock,
		nullable(product.ImageURL), nullable(product.CloudStoragePath),
		product.IsPublic, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock actualiza solo el contador de stock (usado por el motor de
// inventario dentro de la transacción del movimiento).
func (r *ProductRepo) UpdateStock(productID string, stock int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = $2, updated_at = now() WHERE id = $1`,
		productID, stock,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

// List lista productos con filtros opcionales, más reciente primero.
// status=low excluye stock cero (tiene su propio bucket "out").
func (r *ProductRepo) List(filter repository.ProductFilter) ([]*repository.ProductWithCategory, error) {
	query := `
		SELECT p.id, p.name, p.sku, p.category_id, p.price, p.stock, p.min_stock,
		       p.image_url, p.cloud_storage_path, p.is_public, p.created_at, p.updated_at,
		       c.id, c.name, c.color, c.created_at
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.Search != "" {
		query += fmt.Sprintf(" AND (p.name ILIKE $%d OR p.sku ILIKE $%d)", pos, pos)
		args = append(args, "%"+filter.Search+"%")
		pos++
	}
	if filter.CategoryID != "" && filter.CategoryID != "all" {
		query += fmt.Sprintf(" AND p.category_id = $%d", pos)
		args = append(args, filter.CategoryID)
		pos++
	}
	switch filter.StockStatus {
	case repository.StockStatusLow:
		query += " AND p.stock > 0 AND p.stock <= p.min_stock"
	case repository.StockStatusOut:
		query += " AND p.stock = 0"
	}
	query += " ORDER BY p.created_at DESC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*repository.ProductWithCategory
	for rows.Next() {
		pc, err := scanProductWithCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, pc)
	}
	return list, rows.Err()
}

// CountByCategory cuenta los productos asignados a una categoría.
func (r *ProductRepo) CountByCategory(categoryID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM products WHERE category_id = $1`, categoryID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count products by category: %w", err)
	}
	return count, nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var categoryID, imageURL, storagePath *string
	err := row.Scan(
		&p.ID, &p.Name, &p.SKU, &categoryID, &p.Price, &p.Stock, &p.MinStock,
		&imageURL, &storagePath, &p.IsPublic, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.CategoryID = deref(categoryID)
	p.ImageURL = deref(imageURL)
	p.CloudStoragePath = deref(storagePath)
	return &p, nil
}

func scanProductWithCategory(row pgx.Row) (*repository.ProductWithCategory, error) {
	var p entity.Product
	var categoryID, imageURL, storagePath *string
	var catID, catName, catColor *string
	var catCreatedAt *time.Time
	err := row.Scan(
		&p.ID, &p.Name, &p.SKU, &categoryID, &p.Price, &p.Stock, &p.MinStock,
		&imageURL, &storagePath, &p.IsPublic, &p.CreatedAt, &p.UpdatedAt,
		&catID, &catName, &catColor, &catCreatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.CategoryID = deref(categoryID)
	p.ImageURL = deref(imageURL)
	p.CloudStoragePath = deref(storagePath)

	pc := &repository.ProductWithCategory{Product: p}
	if catID != nil {
		pc.Category = &entity.Category{
			ID:    *catID,
			Name:  deref(catName),
			Color: deref(catColor),
		}
		if catCreatedAt != nil {
			pc.Category.CreatedAt = *catCreatedAt
		}
	}
	return pc, nil
}

// nullable convierte string vacío a NULL para columnas opcionales.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
