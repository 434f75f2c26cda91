package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Contable-api/internal/application/inventory"
)

var _ inventory.InventoryQueries = (*InventoryQueries)(nil)

// InventoryQueries modelo de lectura de inventario: registro más nombre y
// código del producto, en una sola consulta con JOIN.
type InventoryQueries struct {
	pool *pgxpool.Pool
}

// NewInventoryQueries construye las consultas de lectura de inventario.
func NewInventoryQueries(pool *pgxpool.Pool) *InventoryQueries {
	return &InventoryQueries{pool: pool}
}

const recordWithProductColumns = `
	r.id, r.product_id, r.current_stock, r.minimum_stock, r.location, r.last_movement_at, r.created_at, r.updated_at,
	p.name, p.code`

// ListRecords lista el inventario del usuario con datos del producto.
func (q *InventoryQueries) ListRecords(userID string, limit, offset int) ([]*inventory.RecordWithProduct, error) {
	query := `
		SELECT ` + recordWithProductColumns + `
		FROM inventory_records r
		JOIN products p ON p.id = r.product_id
		WHERE p.user_id = $1
		ORDER BY p.name LIMIT $2 OFFSET $3`
	rows, err := q.pool.Query(context.Background(), query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	return scanRecordsWithProduct(rows)
}

// ListLowStock devuelve los registros con stock en o por debajo del mínimo,
// ordenados por déficit descendente (mayor quiebre primero).
func (q *InventoryQueries) ListLowStock(userID string) ([]*inventory.RecordWithProduct, error) {
	query := `
		SELECT ` + recordWithProductColumns + `
		FROM inventory_records r
		JOIN products p ON p.id = r.product_id
		WHERE p.user_id = $1 AND r.minimum_stock > 0 AND r.current_stock <= r.minimum_stock
		ORDER BY (r.minimum_stock - r.current_stock) DESC`
	rows, err := q.pool.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	return scanRecordsWithProduct(rows)
}

func scanRecordsWithProduct(rows pgx.Rows) ([]*inventory.RecordWithProduct, error) {
	var list []*inventory.RecordWithProduct
	for rows.Next() {
		var rwp inventory.RecordWithProduct
		if err := rows.Scan(
			&rwp.Record.ID, &rwp.Record.ProductID, &rwp.Record.CurrentStock, &rwp.Record.MinimumStock,
			&rwp.Record.Location, &rwp.Record.LastMovementAt, &rwp.Record.CreatedAt, &rwp.Record.UpdatedAt,
			&rwp.ProductName, &rwp.ProductCode,
		); err != nil {
			return nil, fmt.Errorf("scan inventory row: %w", err)
		}
		list = append(list, &rwp)
	}
	return list, rows.Err()
}
