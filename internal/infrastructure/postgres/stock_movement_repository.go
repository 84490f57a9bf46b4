package postgres

import (
	"context"
	"fmt"

	"github.com/ferreinv/inventario-api/internal/domain/entity"
	"github.com/ferreinv/inventario-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del ledger sobre PostgreSQL (usable con
// pool o tx). Append-only: no hay Update.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento del ledger.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, type, quantity, reason, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.Type, movement.Quantity,
		movement.Reason, movement.Date, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

const movementSelect = `
	SELECT m.id, m.product_id, m.type, m.quantity, m.reason, m.date, m.created_at,
	       p.name, p.sku, p.price
	FROM stock_movements m
	JOIN products p ON p.id = m.product_id`

// List consulta el ledger con filtros opcionales, más reciente primero.
func (r *StockMovementRepo) List(filter repository.MovementFilter) ([]*repository.MovementWithProduct, error) {
	query := movementSelect + ` WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.ProductID != "" {
		query += fmt.Sprintf(" AND m.product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	if filter.Type != "" {
		query += fmt.Sprintf(" AND m.type = $%d", pos)
		args = append(args, filter.Type)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND m.date >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND m.date <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += " ORDER BY m.date DESC"

	return r.queryMovements(query, args...)
}

// Recent devuelve los últimos movimientos para el widget de actividad.
func (r *StockMovementRepo) Recent(limit int) ([]*repository.MovementWithProduct, error) {
	query := movementSelect + ` ORDER BY m.date DESC LIMIT $1`
	return r.queryMovements(query, limit)
}

// DeleteByProduct elimina el historial de un producto. Solo se usa en la
// eliminación en cascada, dentro de la misma transacción que borra el producto.
func (r *StockMovementRepo) DeleteByProduct(productID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM stock_movements WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete movements by product: %w", err)
	}
	return nil
}

func (r *StockMovementRepo) queryMovements(query string, args ...any) ([]*repository.MovementWithProduct, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	list := make([]*repository.MovementWithProduct, 0)
	for rows.Next() {
		var m repository.MovementWithProduct
		if err := rows.Scan(
			&m.Movement.ID, &m.Movement.ProductID, &m.Movement.Type,
			&m.Movement.Quantity, &m.Movement.Reason, &m.Movement.Date,
			&m.Movement.CreatedAt, &m.ProductName, &m.ProductSKU, &m.ProductPrice,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
