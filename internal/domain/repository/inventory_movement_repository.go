package repository

import (
	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// InventoryMovementRepository define el puerto de persistencia para el historial
// de movimientos. Solo hay Create y lecturas: los movimientos son inmutables.
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	ListByProduct(productID string, limit, offset int) ([]*entity.InventoryMovement, error)
	ListByUser(userID string, limit, offset int) ([]*entity.InventoryMovement, error)
}
