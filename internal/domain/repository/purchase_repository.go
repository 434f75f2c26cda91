package repository

import (
	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// PurchaseRepository define el puerto de persistencia para Purchase y PurchaseItem.
// DeleteItemsByPurchaseID existe para la fase de reemplazo del update de compras:
// los movimientos de inventario que compensan el borrado los aplica el procesador.
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	CreateItem(item *entity.PurchaseItem) error
	GetByID(id string) (*entity.Purchase, error)
	GetItemsByPurchaseID(purchaseID string) ([]*entity.PurchaseItem, error)
	Update(purchase *entity.Purchase) error
	DeleteItemsByPurchaseID(purchaseID string) error
	ListByUser(userID, search string, limit, offset int) ([]*entity.Purchase, error)
}
