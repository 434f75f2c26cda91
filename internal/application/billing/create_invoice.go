package billing

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

// CreateInvoiceUseCase crea una factura y descuenta el inventario de las líneas
// de tipo producto en una sola transacción. Los servicios nunca tocan inventario.
type CreateInvoiceUseCase struct {
	txRunner    SaleTxRunner
	ledger      Ledger
	clientRepo  repository.ClientRepository
	productRepo repository.ProductRepository
	invoiceRepo repository.InvoiceRepository
}

// NewCreateInvoiceUseCase construye el caso de uso.
func NewCreateInvoiceUseCase(
	txRunner SaleTxRunner,
	ledger Ledger,
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
) *CreateInvoiceUseCase {
	return &CreateInvoiceUseCase{
		txRunner:    txRunner,
		ledger:      ledger,
		clientRepo:  clientRepo,
		productRepo: productRepo,
		invoiceRepo: invoiceRepo,
	}
}

// CreateInvoice valida (cliente y productos del usuario, sin líneas repetidas,
// stock disponible) y luego ejecuta en una transacción: cabecera, líneas y una
// salida de inventario por cada línea de tipo producto. Cualquier falla aborta
// el comando completo: sin factura parcial y sin stock parcialmente descontado.
func (uc *CreateInvoiceUseCase) CreateInvoice(ctx context.Context, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.ClientID == "" || in.Number == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.InvoiceStatusDraft
	}
	if !entity.ValidInvoiceStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	date, err := dto.ParseDate(in.Date)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	dueDate, err := dto.ParseDate(in.DueDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	// Validar cliente y propiedad. Un cliente de otro usuario es "no encontrado".
	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil || client.UserID != userID {
		return nil, domain.ErrNotFound
	}

	// Validar productos, propiedad y líneas repetidas (fuera de la tx, solo lectura).
	productsByID := make(map[string]*entity.Product, len(in.Items))
	for i := range in.Items {
		item := &in.Items[i]
		if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if _, seen := productsByID[item.ProductID]; seen {
			return nil, domain.ErrDuplicateProductLine
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || product.UserID != userID {
			return nil, domain.ErrNotFound
		}
		productsByID[item.ProductID] = product
		if item.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		if item.UnitPrice.IsZero() {
			item.UnitPrice = product.Price
		}
	}

	now := time.Now()
	inv := &entity.Invoice{
		ID:        uuid.New().String(),
		UserID:    userID,
		ClientID:  client.ID,
		Number:    in.Number,
		Date:      date,
		DueDate:   dueDate,
		Status:    status,
		Tax:       in.Tax,
		CreatedAt: now,
		UpdatedAt: now,
	}

	items := make([]*entity.InvoiceItem, 0, len(in.Items))
	subtotal := decimal.Zero
	for _, item := range in.Items {
		lineTotal := item.Quantity.Mul(item.UnitPrice)
		subtotal = subtotal.Add(lineTotal)
		items = append(items, &entity.InvoiceItem{
			ID:        uuid.New().String(),
			InvoiceID: inv.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     lineTotal,
		})
	}
	inv.Subtotal = subtotal
	inv.Total = subtotal.Add(inv.Tax)

	err = uc.txRunner.RunSale(ctx, func(
		movRepo repository.InventoryMovementRepository,
		recRepo repository.InventoryRecordRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		for _, item := range items {
			if err := invoiceRepo.CreateItem(item); err != nil {
				return err
			}
			product := productsByID[item.ProductID]
			if product.IsService() {
				continue
			}
			// Para líneas de producto el registro de inventario debe existir:
			// su ausencia es un error duro, distinto de stock en cero.
			record, err := recRepo.GetForUpdate(item.ProductID)
			if err != nil {
				return err
			}
			if record == nil {
				return domain.ErrNoInventoryRecord
			}
			reason := fmt.Sprintf("Venta - Factura #%s", inv.Number)
			if _, err := uc.ledger.ApplyInTx(
				movRepo, recRepo,
				item.ProductID, entity.MovementKindSale,
				item.Quantity, reason, inv.Date, now,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toInvoiceResponse(inv, client.Name, items), nil
}

// GetInvoice obtiene una factura del usuario con su detalle completo.
func (uc *CreateInvoiceUseCase) GetInvoice(ctx context.Context, userID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil || inv.UserID != userID {
		return nil, domain.ErrNotFound
	}
	items, err := uc.invoiceRepo.GetItemsByInvoiceID(id)
	if err != nil {
		return nil, err
	}
	clientName := ""
	if client, _ := uc.clientRepo.GetByID(inv.ClientID); client != nil {
		clientName = client.Name
	}
	return toInvoiceResponse(inv, clientName, items), nil
}

// ListInvoices lista facturas del usuario con búsqueda por número.
func (uc *CreateInvoiceUseCase) ListInvoices(ctx context.Context, userID, search string, limit, offset int) ([]dto.InvoiceResponse, error) {
	invoices, err := uc.invoiceRepo.ListByUser(userID, search, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		clientName := ""
		if client, _ := uc.clientRepo.GetByID(inv.ClientID); client != nil {
			clientName = client.Name
		}
		out = append(out, *toInvoiceResponse(inv, clientName, nil))
	}
	return out, nil
}

// UpdateStatus cambia el estado de una factura del usuario (draft → sent → paid...).
func (uc *CreateInvoiceUseCase) UpdateStatus(ctx context.Context, userID, id, status string) error {
	if !entity.ValidInvoiceStatus(status) {
		return domain.ErrInvalidInput
	}
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return err
	}
	if inv == nil || inv.UserID != userID {
		return domain.ErrNotFound
	}
	return uc.invoiceRepo.UpdateStatus(id, status)
}

func toInvoiceResponse(inv *entity.Invoice, clientName string, items []*entity.InvoiceItem) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:         inv.ID,
		ClientID:   inv.ClientID,
		ClientName: clientName,
		Number:     inv.Number,
		Date:       dto.FormatDate(inv.Date),
		DueDate:    dto.FormatDate(inv.DueDate),
		Status:     inv.Status,
		Subtotal:   inv.Subtotal,
		Tax:        inv.Tax,
		Total:      inv.Total,
		Items:      make([]dto.InvoiceItemResponse, 0, len(items)),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.InvoiceItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.Total,
		})
	}
	return resp
}
