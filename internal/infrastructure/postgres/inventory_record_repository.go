package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.InventoryRecordRepository = (*InventoryRecordRepo)(nil)

// InventoryRecordRepo implementación de InventoryRecordRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRecordRepo struct {
	q Querier
}

// NewInventoryRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRecordRepository(q Querier) *InventoryRecordRepo {
	return &InventoryRecordRepo{q: q}
}

const inventoryRecordColumns = `id, product_id, current_stock, minimum_stock, location, last_movement_at, created_at, updated_at`

// Get obtiene el registro de inventario de un producto. Devuelve nil si no existe.
func (r *InventoryRecordRepo) Get(productID string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryRecordColumns + ` FROM inventory_records WHERE product_id = $1`
	rec, err := r.scanOne(r.q.QueryRow(context.Background(), query, productID))
	if err != nil {
		return nil, fmt.Errorf("get inventory record: %w", err)
	}
	return rec, nil
}

// GetForUpdate obtiene el registro y bloquea la fila (SELECT FOR UPDATE).
// Devuelve nil si el producto no tiene registro; solo tiene sentido dentro de una tx.
func (r *InventoryRecordRepo) GetForUpdate(productID string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryRecordColumns + ` FROM inventory_records WHERE product_id = $1 FOR UPDATE`
	rec, err := r.scanOne(r.q.QueryRow(context.Background(), query, productID))
	if err != nil {
		return nil, fmt.Errorf("get inventory record for update: %w", err)
	}
	return rec, nil
}

func (r *InventoryRecordRepo) scanOne(row pgx.Row) (*entity.InventoryRecord, error) {
	var rec entity.InventoryRecord
	err := row.Scan(
		&rec.ID, &rec.ProductID, &rec.CurrentStock, &rec.MinimumStock,
		&rec.Location, &rec.LastMovementAt, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// Upsert inserta o actualiza el registro de inventario (uno por producto).
func (r *InventoryRecordRepo) Upsert(record *entity.InventoryRecord) error {
	query := `
		INSERT INTO inventory_records (id, product_id, current_stock, minimum_stock, location, last_movement_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (product_id)
		DO UPDATE SET current_stock = EXCLUDED.current_stock,
			minimum_stock = EXCLUDED.minimum_stock,
			location = EXCLUDED.location,
			last_movement_at = EXCLUDED.last_movement_at,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.ProductID, record.CurrentStock, record.MinimumStock,
		record.Location, record.LastMovementAt, record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert inventory record: %w", err)
	}
	return nil
}

// ListByUser lista los registros de inventario de los productos del usuario.
func (r *InventoryRecordRepo) ListByUser(userID string, limit, offset int) ([]*entity.InventoryRecord, error) {
	query := `
		SELECT r.id, r.product_id, r.current_stock, r.minimum_stock, r.location, r.last_movement_at, r.created_at, r.updated_at
		FROM inventory_records r
		JOIN products p ON p.id = r.product_id
		WHERE p.user_id = $1
		ORDER BY r.updated_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory records: %w", err)
	}
	defer rows.Close()
	return r.scanList(rows)
}

// ListBelowMinimumByUser devuelve los registros con stock en o por debajo del mínimo.
func (r *InventoryRecordRepo) ListBelowMinimumByUser(userID string) ([]*entity.InventoryRecord, error) {
	query := `
		SELECT r.id, r.product_id, r.current_stock, r.minimum_stock, r.location, r.last_movement_at, r.created_at, r.updated_at
		FROM inventory_records r
		JOIN products p ON p.id = r.product_id
		WHERE p.user_id = $1 AND r.minimum_stock > 0 AND r.current_stock <= r.minimum_stock
		ORDER BY (r.minimum_stock - r.current_stock) DESC`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list inventory records below minimum: %w", err)
	}
	defer rows.Close()
	return r.scanList(rows)
}

func (r *InventoryRecordRepo) scanList(rows pgx.Rows) ([]*entity.InventoryRecord, error) {
	var list []*entity.InventoryRecord
	for rows.Next() {
		var rec entity.InventoryRecord
		if err := rows.Scan(&rec.ID, &rec.ProductID, &rec.CurrentStock, &rec.MinimumStock,
			&rec.Location, &rec.LastMovementAt, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory record: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}
