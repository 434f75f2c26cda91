package repository

import (
	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice e InvoiceItem.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateItem(item *entity.InvoiceItem) error
	GetByID(id string) (*entity.Invoice, error)
	GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error)
	ListByUser(userID, search string, limit, offset int) ([]*entity.Invoice, error)
	UpdateStatus(id, status string) error
}
