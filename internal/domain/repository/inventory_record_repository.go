package repository

import (
	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// InventoryRecordRepository define el puerto de persistencia para InventoryRecord.
// Get y GetForUpdate devuelven nil (sin error) si el producto no tiene registro:
// para el ledger eso dispara el get-or-create, para una venta es un error duro.
type InventoryRecordRepository interface {
	Get(productID string) (*entity.InventoryRecord, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) durante la
	// transacción en curso, para serializar lecturas-modificaciones concurrentes
	// sobre el mismo producto sin bloquear productos distintos.
	GetForUpdate(productID string) (*entity.InventoryRecord, error)
	Upsert(record *entity.InventoryRecord) error
	ListByUser(userID string, limit, offset int) ([]*entity.InventoryRecord, error)
	ListBelowMinimumByUser(userID string) ([]*entity.InventoryRecord, error)
}
