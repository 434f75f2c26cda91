package inventory

import (
	"context"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que cada comando que toca inventario
// se confirme completo o no se confirme nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		recRepo repository.InventoryRecordRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// RecordWithProduct es el modelo de lectura de inventario para la API:
// el registro más el nombre y código del producto.
type RecordWithProduct struct {
	Record      entity.InventoryRecord
	ProductName string
	ProductCode string
}

// InventoryQueries son las consultas de solo lectura del inventario de un usuario.
type InventoryQueries interface {
	ListRecords(userID string, limit, offset int) ([]*RecordWithProduct, error)
	// ListLowStock devuelve los registros con stock en o por debajo del mínimo.
	ListLowStock(userID string) ([]*RecordWithProduct, error)
}
