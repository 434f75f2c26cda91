package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// PurchaseUseCase crea y actualiza compras a proveedor, incrementando el
// inventario por cada línea vía ledger en la misma transacción.
type PurchaseUseCase struct {
	txRunner     PurchaseTxRunner
	ledger       Ledger
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
	purchaseRepo repository.PurchaseRepository
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(
	txRunner PurchaseTxRunner,
	ledger Ledger,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseRepository,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		txRunner:     txRunner,
		ledger:       ledger,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		purchaseRepo: purchaseRepo,
	}
}

// validateLines valida proveedor, productos y cantidades; retorna el proveedor.
// La propiedad se valida contra el userID: recursos de otro usuario son "no encontrados".
func (uc *PurchaseUseCase) validateLines(userID, supplierID string, items []dto.PurchaseItemRequest) (*entity.Supplier, error) {
	if supplierID == "" || len(items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil || supplier.UserID != userID {
		return nil, domain.ErrNotFound
	}
	for _, item := range items {
		if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if item.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || product.UserID != userID {
			return nil, domain.ErrNotFound
		}
	}
	return supplier, nil
}

// buildItems arma las líneas de compra; si el total de una línea viene en cero
// se calcula como cantidad por precio unitario.
func buildItems(purchaseID string, items []dto.PurchaseItemRequest, now time.Time) []*entity.PurchaseItem {
	out := make([]*entity.PurchaseItem, 0, len(items))
	for _, item := range items {
		total := item.Total
		if total.IsZero() {
			total = item.Quantity.Mul(item.UnitPrice)
		}
		out = append(out, &entity.PurchaseItem{
			ID:         uuid.New().String(),
			PurchaseID: purchaseID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			Total:      total,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}
	return out
}

// CreatePurchase crea la cabecera, sus líneas y un movimiento purchase por línea,
// todo en una transacción.
func (uc *PurchaseUseCase) CreatePurchase(ctx context.Context, userID string, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	supplier, err := uc.validateLines(userID, in.SupplierID, in.Items)
	if err != nil {
		return nil, err
	}
	date, err := dto.ParseDate(in.Date)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if in.PaymentMethod == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	purchase := &entity.Purchase{
		ID:            uuid.New().String(),
		UserID:        userID,
		SupplierID:    supplier.ID,
		InvoiceNumber: in.InvoiceNumber,
		Date:          date,
		PaymentMethod: in.PaymentMethod,
		Subtotal:      in.Subtotal,
		Tax:           in.Tax,
		Total:         in.Total,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	items := buildItems(purchase.ID, in.Items, now)

	err = uc.txRunner.RunPurchase(ctx, func(
		movRepo repository.InventoryMovementRepository,
		recRepo repository.InventoryRecordRepository,
		purchaseRepo repository.PurchaseRepository,
	) error {
		if err := purchaseRepo.Create(purchase); err != nil {
			return err
		}
		reason := fmt.Sprintf("Compra #%s", purchase.ID)
		for _, item := range items {
			if err := purchaseRepo.CreateItem(item); err != nil {
				return err
			}
			if _, err := uc.ledger.ApplyInTx(
				movRepo, recRepo,
				item.ProductID, entity.MovementKindPurchase,
				item.Quantity, reason, purchase.Date, now,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPurchaseResponse(purchase, supplier.Name, items), nil
}

// UpdatePurchase reemplaza la cabecera y el conjunto completo de líneas con
// conciliación de inventario en dos fases, en una sola transacción:
//  1. revertir: un decrease por cada línea existente con su cantidad original,
//  2. borrar las líneas existentes,
//  3. reaplicar: un purchase por cada línea nueva.
// Cada update deja un par simétrico de movimientos por línea cambiada (y también
// por las no cambiadas): más entradas en el historial a cambio de una auditoría
// completa, en lugar de calcular deltas por producto.
func (uc *PurchaseUseCase) UpdatePurchase(ctx context.Context, userID, purchaseID string, in dto.UpdatePurchaseRequest) (*dto.PurchaseResponse, error) {
	purchase, err := uc.purchaseRepo.GetByID(purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase == nil || purchase.UserID != userID {
		return nil, domain.ErrNotFound
	}

	supplier, err := uc.validateLines(userID, in.SupplierID, in.Items)
	if err != nil {
		return nil, err
	}
	date, err := dto.ParseDate(in.Date)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	// Asignación simple de campos de cabecera antes de conciliar las líneas.
	purchase.SupplierID = supplier.ID
	purchase.InvoiceNumber = in.InvoiceNumber
	purchase.Date = date
	if in.PaymentMethod != "" {
		purchase.PaymentMethod = in.PaymentMethod
	}
	purchase.Subtotal = in.Subtotal
	purchase.Tax = in.Tax
	purchase.Total = in.Total
	purchase.Notes = in.Notes
	purchase.UpdatedAt = now

	newItems := buildItems(purchase.ID, in.Items, now)

	err = uc.txRunner.RunPurchase(ctx, func(
		movRepo repository.InventoryMovementRepository,
		recRepo repository.InventoryRecordRepository,
		purchaseRepo repository.PurchaseRepository,
	) error {
		if err := purchaseRepo.Update(purchase); err != nil {
			return err
		}

		// Fase 1: revertir cada línea existente por su cantidad original,
		// sin recalcular deltas contra las líneas nuevas.
		oldItems, err := purchaseRepo.GetItemsByPurchaseID(purchase.ID)
		if err != nil {
			return err
		}
		revertReason := fmt.Sprintf("Compra #%s actualizada - item eliminado", purchase.ID)
		for _, old := range oldItems {
			if _, err := uc.ledger.ApplyInTx(
				movRepo, recRepo,
				old.ProductID, entity.MovementKindDecrease,
				old.Quantity, revertReason, purchase.Date, now,
			); err != nil {
				return err
			}
		}

		// Fase 2: borrar las líneas existentes.
		if err := purchaseRepo.DeleteItemsByPurchaseID(purchase.ID); err != nil {
			return err
		}

		// Fase 3: reaplicar las líneas nuevas igual que en la creación.
		replayReason := fmt.Sprintf("Compra #%s actualizada - item agregado", purchase.ID)
		for _, item := range newItems {
			if err := purchaseRepo.CreateItem(item); err != nil {
				return err
			}
			if _, err := uc.ledger.ApplyInTx(
				movRepo, recRepo,
				item.ProductID, entity.MovementKindPurchase,
				item.Quantity, replayReason, purchase.Date, now,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPurchaseResponse(purchase, supplier.Name, newItems), nil
}

// GetPurchase obtiene una compra del usuario con sus líneas.
func (uc *PurchaseUseCase) GetPurchase(ctx context.Context, userID, id string) (*dto.PurchaseResponse, error) {
	purchase, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if purchase == nil || purchase.UserID != userID {
		return nil, domain.ErrNotFound
	}
	items, err := uc.purchaseRepo.GetItemsByPurchaseID(id)
	if err != nil {
		return nil, err
	}
	supplierName := ""
	if supplier, _ := uc.supplierRepo.GetByID(purchase.SupplierID); supplier != nil {
		supplierName = supplier.Name
	}
	return toPurchaseResponse(purchase, supplierName, items), nil
}

// ListPurchases lista compras del usuario con búsqueda por número de factura.
func (uc *PurchaseUseCase) ListPurchases(ctx context.Context, userID, search string, limit, offset int) ([]dto.PurchaseResponse, error) {
	purchases, err := uc.purchaseRepo.ListByUser(userID, search, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		supplierName := ""
		if supplier, _ := uc.supplierRepo.GetByID(p.SupplierID); supplier != nil {
			supplierName = supplier.Name
		}
		out = append(out, *toPurchaseResponse(p, supplierName, nil))
	}
	return out, nil
}

func toPurchaseResponse(p *entity.Purchase, supplierName string, items []*entity.PurchaseItem) *dto.PurchaseResponse {
	resp := &dto.PurchaseResponse{
		ID:            p.ID,
		SupplierID:    p.SupplierID,
		SupplierName:  supplierName,
		InvoiceNumber: p.InvoiceNumber,
		Date:          dto.FormatDate(p.Date),
		PaymentMethod: p.PaymentMethod,
		Subtotal:      p.Subtotal,
		Tax:           p.Tax,
		Total:         p.Total,
		Notes:         p.Notes,
		Items:         make([]dto.PurchaseItemResponse, 0, len(items)),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.PurchaseItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.Total,
		})
	}
	return resp
}
