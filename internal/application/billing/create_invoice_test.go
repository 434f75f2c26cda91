package billing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/application/billing"
	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/inventory"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// CreateInvoiceUseCase: la venta es atómica. O se confirma la factura completa
// con todo su descuento de inventario, o no queda nada: ni cabecera, ni líneas,
// ni movimientos, ni stock tocado.
// ──────────────────────────────────────────────────────────────────────────────

const (
	testUserID      = "00000000-0000-0000-0000-000000000001"
	testOtherUserID = "00000000-0000-0000-0000-000000000002"
	testClientID    = "00000000-0000-0000-0000-0000000000c1"
)

// ─── Fakes en memoria ─────────────────────────────────────────────────────────

type fakeMovementRepo struct {
	movements []*entity.InventoryMovement
}

func (r *fakeMovementRepo) Create(m *entity.InventoryMovement) error {
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	return r.movements, nil
}

func (r *fakeMovementRepo) ListByUser(userID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	return r.movements, nil
}

type fakeRecordRepo struct {
	records map[string]*entity.InventoryRecord
}

func (r *fakeRecordRepo) Get(productID string) (*entity.InventoryRecord, error) {
	rec, ok := r.records[productID]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *fakeRecordRepo) GetForUpdate(productID string) (*entity.InventoryRecord, error) {
	return r.Get(productID)
}

func (r *fakeRecordRepo) Upsert(record *entity.InventoryRecord) error {
	cp := *record
	r.records[record.ProductID] = &cp
	return nil
}

func (r *fakeRecordRepo) ListByUser(userID string, limit, offset int) ([]*entity.InventoryRecord, error) {
	return nil, nil
}

func (r *fakeRecordRepo) ListBelowMinimumByUser(userID string) ([]*entity.InventoryRecord, error) {
	return nil, nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) Create(p *entity.Product) error  { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) Update(p *entity.Product) error  { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) Delete(id string) error          { delete(r.products, id); return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}
func (r *fakeProductRepo) GetByUserAndCode(userID, code string) (*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) ListByUser(userID, search string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

type fakeClientRepo struct {
	clients map[string]*entity.Client
}

func (r *fakeClientRepo) Create(c *entity.Client) error { r.clients[c.ID] = c; return nil }
func (r *fakeClientRepo) Update(c *entity.Client) error { r.clients[c.ID] = c; return nil }
func (r *fakeClientRepo) Delete(id string) error        { delete(r.clients, id); return nil }
func (r *fakeClientRepo) GetByID(id string) (*entity.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}
func (r *fakeClientRepo) ListByUser(userID, search string, limit, offset int) ([]*entity.Client, error) {
	return nil, nil
}

type fakeInvoiceRepo struct {
	invoices map[string]*entity.Invoice
	items    []*entity.InvoiceItem
}

func (r *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	cp := *item
	r.items = append(r.items, &cp)
	return nil
}

func (r *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	return inv, nil
}

func (r *fakeInvoiceRepo) GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error) {
	out := make([]*entity.InvoiceItem, 0)
	for _, item := range r.items {
		if item.InvoiceID == invoiceID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) ListByUser(userID, search string, limit, offset int) ([]*entity.Invoice, error) {
	return nil, nil
}

func (r *fakeInvoiceRepo) UpdateStatus(id, status string) error {
	if inv, ok := r.invoices[id]; ok {
		inv.Status = status
	}
	return nil
}

// fakeSaleTxRunner imita la transacción con snapshot y restore de todo lo que
// el comando puede escribir: factura, líneas, movimientos y registros de stock.
type fakeSaleTxRunner struct {
	movRepo     *fakeMovementRepo
	recRepo     *fakeRecordRepo
	invoiceRepo *fakeInvoiceRepo
}

func (r *fakeSaleTxRunner) RunSale(ctx context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	recRepo repository.InventoryRecordRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	movSnap := append([]*entity.InventoryMovement(nil), r.movRepo.movements...)
	recSnap := make(map[string]*entity.InventoryRecord, len(r.recRepo.records))
	for k, v := range r.recRepo.records {
		cp := *v
		recSnap[k] = &cp
	}
	invSnap := make(map[string]*entity.Invoice, len(r.invoiceRepo.invoices))
	for k, v := range r.invoiceRepo.invoices {
		cp := *v
		invSnap[k] = &cp
	}
	itemSnap := append([]*entity.InvoiceItem(nil), r.invoiceRepo.items...)

	if err := fn(r.movRepo, r.recRepo, r.invoiceRepo); err != nil {
		r.movRepo.movements = movSnap
		r.recRepo.records = recSnap
		r.invoiceRepo.invoices = invSnap
		r.invoiceRepo.items = itemSnap
		return err
	}
	return nil
}

// ─── Armado de escenario ──────────────────────────────────────────────────────

type saleFixture struct {
	uc          *billing.CreateInvoiceUseCase
	runner      *fakeSaleTxRunner
	productRepo *fakeProductRepo
	recRepo     *fakeRecordRepo
}

func setupSale() *saleFixture {
	runner := &fakeSaleTxRunner{
		movRepo:     &fakeMovementRepo{},
		recRepo:     &fakeRecordRepo{records: make(map[string]*entity.InventoryRecord)},
		invoiceRepo: &fakeInvoiceRepo{invoices: make(map[string]*entity.Invoice)},
	}
	productRepo := &fakeProductRepo{products: make(map[string]*entity.Product)}
	clientRepo := &fakeClientRepo{clients: map[string]*entity.Client{
		testClientID: {ID: testClientID, UserID: testUserID, Name: "Cliente Uno"},
	}}
	uc := billing.NewCreateInvoiceUseCase(
		runner, inventory.NewStockLedger(), clientRepo, productRepo, runner.invoiceRepo)
	return &saleFixture{uc: uc, runner: runner, productRepo: productRepo, recRepo: runner.recRepo}
}

func (f *saleFixture) addProduct(id, userID, typ string, price, stock int64) {
	f.productRepo.products[id] = &entity.Product{
		ID: id, UserID: userID, Code: "P-" + id, Name: "Producto " + id,
		Type: typ, Price: decimal.NewFromInt(price),
	}
	if typ == entity.ProductTypeProduct && stock >= 0 {
		f.recRepo.records[id] = &entity.InventoryRecord{
			ID: "rec-" + id, ProductID: id, CurrentStock: decimal.NewFromInt(stock),
		}
	}
}

func baseRequest(items ...dto.InvoiceItemRequest) dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		ClientID: testClientID,
		Number:   "F-001",
		Date:     "2026-02-01",
		DueDate:  "2026-03-01",
		Status:   entity.InvoiceStatusPending,
		Tax:      decimal.NewFromInt(19),
		Items:    items,
	}
}

// ─── Tests ────────────────────────────────────────────────────────────────────

func TestCreateInvoice_VentaMultilinea_DescuentaTodo(t *testing.T) {
	f := setupSale()
	f.addProduct("p1", testUserID, entity.ProductTypeProduct, 100, 10)
	f.addProduct("p2", testUserID, entity.ProductTypeProduct, 50, 5)

	resp, err := f.uc.CreateInvoice(context.Background(), testUserID, baseRequest(
		dto.InvoiceItemRequest{ProductID: "p1", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromInt(100)},
		dto.InvoiceItemRequest{ProductID: "p2", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(50)},
	))

	require.NoError(t, err)
	assert.Equal(t, "Cliente Uno", resp.ClientName)
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(400)), "subtotal = 3*100 + 2*50")
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(419)), "total = subtotal + tax")
	assert.Len(t, resp.Items, 2)

	rec1, _ := f.recRepo.Get("p1")
	rec2, _ := f.recRepo.Get("p2")
	assert.True(t, rec1.CurrentStock.Equal(decimal.NewFromInt(7)))
	assert.True(t, rec2.CurrentStock.Equal(decimal.NewFromInt(3)))

	require.Len(t, f.runner.movRepo.movements, 2, "un movimiento sale por línea de producto")
	for _, m := range f.runner.movRepo.movements {
		assert.Equal(t, entity.MovementKindSale, m.Kind)
		assert.Equal(t, "Venta - Factura #F-001", m.Reason)
	}
}

func TestCreateInvoice_StockInsuficienteEnUnaLinea_RevierteTodo(t *testing.T) {
	f := setupSale()
	f.addProduct("p1", testUserID, entity.ProductTypeProduct, 100, 10)
	f.addProduct("p2", testUserID, entity.ProductTypeProduct, 50, 1)

	_, err := f.uc.CreateInvoice(context.Background(), testUserID, baseRequest(
		dto.InvoiceItemRequest{ProductID: "p1", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromInt(100)},
		dto.InvoiceItemRequest{ProductID: "p2", Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(50)},
	))

	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nada quedó confirmado: ni la factura, ni la primera línea ya descontada.
	assert.Empty(t, f.runner.invoiceRepo.invoices, "no debe quedar cabecera")
	assert.Empty(t, f.runner.invoiceRepo.items, "no deben quedar líneas")
	assert.Empty(t, f.runner.movRepo.movements, "no deben quedar movimientos")
	rec1, _ := f.recRepo.Get("p1")
	assert.True(t, rec1.CurrentStock.Equal(decimal.NewFromInt(10)),
		"el stock de la primera línea debe volver a su valor previo")
}

func TestCreateInvoice_ServicioNoTocaInventario(t *testing.T) {
	f := setupSale()
	f.addProduct("p1", testUserID, entity.ProductTypeProduct, 100, 10)
	f.addProduct("s1", testUserID, entity.ProductTypeService, 200, -1)

	resp, err := f.uc.CreateInvoice(context.Background(), testUserID, baseRequest(
		dto.InvoiceItemRequest{ProductID: "p1", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)},
		dto.InvoiceItemRequest{ProductID: "s1", Quantity: decimal.NewFromInt(4), UnitPrice: decimal.NewFromInt(200)},
	))

	require.NoError(t, err, "un servicio sin registro de inventario es facturable")
	assert.Len(t, resp.Items, 2)
	assert.Len(t, f.runner.movRepo.movements, 1,
		"solo la línea de producto genera movimiento")
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(900)))
}

func TestCreateInvoice_ProductoSinRegistro_EsErrorDuro(t *testing.T) {
	f := setupSale()
	f.addProduct("p1", testUserID, entity.ProductTypeProduct, 100, -1) // sin registro

	_, err := f.uc.CreateInvoice(context.Background(), testUserID, baseRequest(
		dto.InvoiceItemRequest{ProductID: "p1", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)},
	))

	require.ErrorIs(t, err, domain.ErrNoInventoryRecord,
		"vender un producto sin registro es distinto de vender con stock cero")
	assert.Empty(t, f.runner.invoiceRepo.invoices)
}

func TestCreateInvoice_LineaDuplicada(t *testing.T) {
	f := setupSale()
	f.addProduct("p1", testUserID, entity.ProductTypeProduct, 100, 10)

	_, err := f.uc.CreateInvoice(context.Background(), testUserID, baseRequest(
		dto.InvoiceItemRequest{ProductID: "p1", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)},
		dto.InvoiceItemRequest{ProductID: "p1", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(100)},
	))

	assert.ErrorIs(t, err, domain.ErrDuplicateProductLine)
}

func TestCreateInvoice_PrecioCeroUsaPrecioDelProducto(t *testing.T) {
	f := setupSale()
	f.addProduct("p1", testUserID, entity.ProductTypeProduct, 350, 10)

	resp, err := f.uc.CreateInvoice(context.Background(), testUserID, baseRequest(
		dto.InvoiceItemRequest{ProductID: "p1", Quantity: decimal.NewFromInt(2)},
	))

	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].UnitPrice.Equal(decimal.NewFromInt(350)),
		"con precio en cero se toma el precio vigente del producto")
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(700)))
}

func TestCreateInvoice_RecursosDeOtroUsuario(t *testing.T) {
	f := setupSale()
	f.addProduct("p1", testOtherUserID, entity.ProductTypeProduct, 100, 10)

	_, err := f.uc.CreateInvoice(context.Background(), testUserID, baseRequest(
		dto.InvoiceItemRequest{ProductID: "p1", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)},
	))
	assert.ErrorIs(t, err, domain.ErrNotFound, "producto ajeno es no encontrado")

	f2 := setupSale()
	f2.addProduct("p1", testUserID, entity.ProductTypeProduct, 100, 10)
	req := baseRequest(
		dto.InvoiceItemRequest{ProductID: "p1", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)},
	)
	req.ClientID = "cliente-ajeno"
	_, err = f2.uc.CreateInvoice(context.Background(), testUserID, req)
	assert.ErrorIs(t, err, domain.ErrNotFound, "cliente inexistente o ajeno es no encontrado")
}

func TestCreateInvoice_EntradasInvalidas(t *testing.T) {
	f := setupSale()
	f.addProduct("p1", testUserID, entity.ProductTypeProduct, 100, 10)
	item := dto.InvoiceItemRequest{ProductID: "p1", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)}

	cases := []struct {
		name   string
		mutate func(*dto.CreateInvoiceRequest)
	}{
		{"sin líneas", func(r *dto.CreateInvoiceRequest) { r.Items = nil }},
		{"sin número", func(r *dto.CreateInvoiceRequest) { r.Number = "" }},
		{"estado desconocido", func(r *dto.CreateInvoiceRequest) { r.Status = "archived" }},
		{"fecha malformada", func(r *dto.CreateInvoiceRequest) { r.Date = "01-02-2026" }},
		{"cantidad cero", func(r *dto.CreateInvoiceRequest) {
			r.Items[0].Quantity = decimal.Zero
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := baseRequest(item)
			tc.mutate(&req)
			_, err := f.uc.CreateInvoice(context.Background(), testUserID, req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestUpdateStatus_CambiaEstado(t *testing.T) {
	f := setupSale()
	f.addProduct("p1", testUserID, entity.ProductTypeProduct, 100, 10)

	resp, err := f.uc.CreateInvoice(context.Background(), testUserID, baseRequest(
		dto.InvoiceItemRequest{ProductID: "p1", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)},
	))
	require.NoError(t, err)

	require.NoError(t, f.uc.UpdateStatus(context.Background(), testUserID, resp.ID, entity.InvoiceStatusPaid))
	inv, _ := f.runner.invoiceRepo.GetByID(resp.ID)
	assert.Equal(t, entity.InvoiceStatusPaid, inv.Status)

	assert.ErrorIs(t, f.uc.UpdateStatus(context.Background(), testUserID, resp.ID, "refunded"),
		domain.ErrInvalidInput)
	assert.ErrorIs(t, f.uc.UpdateStatus(context.Background(), testOtherUserID, resp.ID, entity.InvoiceStatusPaid),
		domain.ErrNotFound, "otro usuario no puede tocar la factura")
}
