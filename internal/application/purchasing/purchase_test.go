package purchasing_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/inventory"
	"github.com/jhoicas/Contable-api/internal/application/purchasing"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// PurchaseUseCase: crear incrementa inventario por línea; actualizar concilia
// en dos fases (revertir las líneas viejas, reaplicar las nuevas) dentro de una
// transacción. Si la reversión dejaría stock negativo, el update entero aborta.
// ──────────────────────────────────────────────────────────────────────────────

const (
	testUserID      = "00000000-0000-0000-0000-000000000001"
	testOtherUserID = "00000000-0000-0000-0000-000000000002"
	testSupplierID  = "00000000-0000-0000-0000-0000000000s1"
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

func (r *fakeProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) Delete(id string) error         { delete(r.products, id); return nil }
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

type fakeSupplierRepo struct {
	suppliers map[string]*entity.Supplier
}

func (r *fakeSupplierRepo) Create(s *entity.Supplier) error { r.suppliers[s.ID] = s; return nil }
func (r *fakeSupplierRepo) Update(s *entity.Supplier) error { r.suppliers[s.ID] = s; return nil }
func (r *fakeSupplierRepo) Delete(id string) error          { delete(r.suppliers, id); return nil }
func (r *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, nil
	}
	return s, nil
}
func (r *fakeSupplierRepo) ListByUser(userID, search string, limit, offset int) ([]*entity.Supplier, error) {
	return nil, nil
}

type fakePurchaseRepo struct {
	purchases map[string]*entity.Purchase
	items     []*entity.PurchaseItem
}

func (r *fakePurchaseRepo) Create(p *entity.Purchase) error {
	cp := *p
	r.purchases[p.ID] = &cp
	return nil
}

func (r *fakePurchaseRepo) CreateItem(item *entity.PurchaseItem) error {
	cp := *item
	r.items = append(r.items, &cp)
	return nil
}

func (r *fakePurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	p, ok := r.purchases[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePurchaseRepo) GetItemsByPurchaseID(purchaseID string) ([]*entity.PurchaseItem, error) {
	out := make([]*entity.PurchaseItem, 0)
	for _, item := range r.items {
		if item.PurchaseID == purchaseID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakePurchaseRepo) Update(p *entity.Purchase) error {
	cp := *p
	r.purchases[p.ID] = &cp
	return nil
}

func (r *fakePurchaseRepo) DeleteItemsByPurchaseID(purchaseID string) error {
	kept := r.items[:0]
	for _, item := range r.items {
		if item.PurchaseID != purchaseID {
			kept = append(kept, item)
		}
	}
	r.items = append([]*entity.PurchaseItem(nil), kept...)
	return nil
}

func (r *fakePurchaseRepo) ListByUser(userID, search string, limit, offset int) ([]*entity.Purchase, error) {
	return nil, nil
}

// fakePurchaseTxRunner imita la transacción con snapshot y restore de compras,
// movimientos y registros de stock.
type fakePurchaseTxRunner struct {
	movRepo      *fakeMovementRepo
	recRepo      *fakeRecordRepo
	purchaseRepo *fakePurchaseRepo
}

func (r *fakePurchaseTxRunner) RunPurchase(ctx context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	recRepo repository.InventoryRecordRepository,
	purchaseRepo repository.PurchaseRepository,
) error) error {
	movSnap := append([]*entity.InventoryMovement(nil), r.movRepo.movements...)
	recSnap := make(map[string]*entity.InventoryRecord, len(r.recRepo.records))
	for k, v := range r.recRepo.records {
		cp := *v
		recSnap[k] = &cp
	}
	purSnap := make(map[string]*entity.Purchase, len(r.purchaseRepo.purchases))
	for k, v := range r.purchaseRepo.purchases {
		cp := *v
		purSnap[k] = &cp
	}
	itemSnap := append([]*entity.PurchaseItem(nil), r.purchaseRepo.items...)

	if err := fn(r.movRepo, r.recRepo, r.purchaseRepo); err != nil {
		r.movRepo.movements = movSnap
		r.recRepo.records = recSnap
		r.purchaseRepo.purchases = purSnap
		r.purchaseRepo.items = itemSnap
		return err
	}
	return nil
}

// ─── Armado de escenario ──────────────────────────────────────────────────────

type purchaseFixture struct {
	uc          *purchasing.PurchaseUseCase
	runner      *fakePurchaseTxRunner
	productRepo *fakeProductRepo
	recRepo     *fakeRecordRepo
}

func setupPurchase() *purchaseFixture {
	runner := &fakePurchaseTxRunner{
		movRepo:      &fakeMovementRepo{},
		recRepo:      &fakeRecordRepo{records: make(map[string]*entity.InventoryRecord)},
		purchaseRepo: &fakePurchaseRepo{purchases: make(map[string]*entity.Purchase)},
	}
	productRepo := &fakeProductRepo{products: make(map[string]*entity.Product)}
	supplierRepo := &fakeSupplierRepo{suppliers: map[string]*entity.Supplier{
		testSupplierID: {ID: testSupplierID, UserID: testUserID, Name: "Proveedor Uno"},
	}}
	uc := purchasing.NewPurchaseUseCase(
		runner, inventory.NewStockLedger(), supplierRepo, productRepo, runner.purchaseRepo)
	return &purchaseFixture{uc: uc, runner: runner, productRepo: productRepo, recRepo: runner.recRepo}
}

func (f *purchaseFixture) addProduct(id string, stock int64) {
	f.productRepo.products[id] = &entity.Product{
		ID: id, UserID: testUserID, Code: "P-" + id, Name: "Producto " + id,
		Type: entity.ProductTypeProduct, Price: decimal.NewFromInt(80),
	}
	if stock >= 0 {
		f.recRepo.records[id] = &entity.InventoryRecord{
			ID: "rec-" + id, ProductID: id, CurrentStock: decimal.NewFromInt(stock),
		}
	}
}

func (f *purchaseFixture) stock(t *testing.T, productID string) decimal.Decimal {
	t.Helper()
	rec, err := f.recRepo.Get(productID)
	require.NoError(t, err)
	require.NotNil(t, rec, "debe existir registro para %s", productID)
	return rec.CurrentStock
}

func createRequest(items ...dto.PurchaseItemRequest) dto.CreatePurchaseRequest {
	return dto.CreatePurchaseRequest{
		SupplierID:    testSupplierID,
		InvoiceNumber: "C-100",
		Date:          "2026-02-10",
		PaymentMethod: "transferencia",
		Subtotal:      decimal.NewFromInt(100),
		Tax:           decimal.NewFromInt(19),
		Total:         decimal.NewFromInt(119),
		Items:         items,
	}
}

func updateRequest(items ...dto.PurchaseItemRequest) dto.UpdatePurchaseRequest {
	return dto.UpdatePurchaseRequest{
		SupplierID:    testSupplierID,
		InvoiceNumber: "C-100",
		Date:          "2026-02-11",
		PaymentMethod: "transferencia",
		Subtotal:      decimal.NewFromInt(100),
		Tax:           decimal.NewFromInt(19),
		Total:         decimal.NewFromInt(119),
		Items:         items,
	}
}

func line(productID string, qty, price int64) dto.PurchaseItemRequest {
	return dto.PurchaseItemRequest{
		ProductID: productID,
		Quantity:  decimal.NewFromInt(qty),
		UnitPrice: decimal.NewFromInt(price),
	}
}

// ─── Tests ────────────────────────────────────────────────────────────────────

func TestCreatePurchase_IncrementaStockPorLinea(t *testing.T) {
	f := setupPurchase()
	f.addProduct("p1", 5)
	f.addProduct("p2", -1) // sin registro previo: la compra lo crea

	resp, err := f.uc.CreatePurchase(context.Background(), testUserID, createRequest(
		line("p1", 10, 8),
		line("p2", 4, 20),
	))

	require.NoError(t, err)
	assert.Equal(t, "Proveedor Uno", resp.SupplierName)
	require.Len(t, resp.Items, 2)
	assert.True(t, resp.Items[0].Total.Equal(decimal.NewFromInt(80)),
		"total de línea en cero se calcula como cantidad por precio")

	assert.True(t, f.stock(t, "p1").Equal(decimal.NewFromInt(15)))
	assert.True(t, f.stock(t, "p2").Equal(decimal.NewFromInt(4)),
		"la compra crea el registro que falta con get-or-create")

	require.Len(t, f.runner.movRepo.movements, 2)
	wantReason := fmt.Sprintf("Compra #%s", resp.ID)
	for _, m := range f.runner.movRepo.movements {
		assert.Equal(t, entity.MovementKindPurchase, m.Kind)
		assert.Equal(t, wantReason, m.Reason)
	}
}

func TestUpdatePurchase_RevierteYReaplica(t *testing.T) {
	f := setupPurchase()
	f.addProduct("p1", 0)
	f.addProduct("p2", 0)

	resp, err := f.uc.CreatePurchase(context.Background(), testUserID, createRequest(
		line("p1", 10, 8),
		line("p2", 4, 20),
	))
	require.NoError(t, err)
	require.Len(t, f.runner.movRepo.movements, 2)

	// Cambia p1 de 10 a 6 y elimina p2.
	updated, err := f.uc.UpdatePurchase(context.Background(), testUserID, resp.ID, updateRequest(
		line("p1", 6, 8),
	))
	require.NoError(t, err)

	assert.True(t, f.stock(t, "p1").Equal(decimal.NewFromInt(6)),
		"stock neto de p1 tras conciliar: 0 + 10 - 10 + 6")
	assert.True(t, f.stock(t, "p2").Equal(decimal.Zero),
		"stock neto de p2 tras eliminar su línea")

	// Historial completo: 2 de la creación + 2 reversiones + 1 reaplicación.
	movs := f.runner.movRepo.movements
	require.Len(t, movs, 5,
		"cada update deja un par revertir/reaplicar por línea, sin calcular deltas")
	assert.Equal(t, entity.MovementKindDecrease, movs[2].Kind)
	assert.Equal(t, fmt.Sprintf("Compra #%s actualizada - item eliminado", resp.ID), movs[2].Reason)
	assert.Equal(t, entity.MovementKindPurchase, movs[4].Kind)
	assert.Equal(t, fmt.Sprintf("Compra #%s actualizada - item agregado", resp.ID), movs[4].Reason)

	// Las líneas viejas fueron reemplazadas por completo.
	items, _ := f.runner.purchaseRepo.GetItemsByPurchaseID(resp.ID)
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ProductID)
	assert.True(t, items[0].Quantity.Equal(decimal.NewFromInt(6)))
	require.Len(t, updated.Items, 1)
}

func TestUpdatePurchase_ReversionDejaNegativo_AbortaTodo(t *testing.T) {
	f := setupPurchase()
	f.addProduct("p1", 0)

	resp, err := f.uc.CreatePurchase(context.Background(), testUserID, createRequest(
		line("p1", 10, 8),
	))
	require.NoError(t, err)

	// Simula ventas posteriores que consumieron parte de la compra.
	rec, _ := f.recRepo.Get("p1")
	rec.CurrentStock = decimal.NewFromInt(3)
	require.NoError(t, f.recRepo.Upsert(rec))

	_, err = f.uc.UpdatePurchase(context.Background(), testUserID, resp.ID, updateRequest(
		line("p1", 20, 8),
	))

	require.ErrorIs(t, err, domain.ErrInsufficientStock,
		"revertir 10 sobre stock 3 dejaría negativo: el update entero aborta")

	assert.True(t, f.stock(t, "p1").Equal(decimal.NewFromInt(3)),
		"el stock queda como estaba antes del update")
	items, _ := f.runner.purchaseRepo.GetItemsByPurchaseID(resp.ID)
	require.Len(t, items, 1, "las líneas originales sobreviven al rollback")
	assert.True(t, items[0].Quantity.Equal(decimal.NewFromInt(10)))
	assert.Len(t, f.runner.movRepo.movements, 1,
		"solo queda el movimiento de la creación original")
}

func TestCreatePurchase_Validaciones(t *testing.T) {
	f := setupPurchase()
	f.addProduct("p1", 0)

	cases := []struct {
		name   string
		mutate func(*dto.CreatePurchaseRequest)
		want   error
	}{
		{"sin proveedor", func(r *dto.CreatePurchaseRequest) { r.SupplierID = "" }, domain.ErrInvalidInput},
		{"proveedor inexistente", func(r *dto.CreatePurchaseRequest) { r.SupplierID = "nope" }, domain.ErrNotFound},
		{"sin líneas", func(r *dto.CreatePurchaseRequest) { r.Items = nil }, domain.ErrInvalidInput},
		{"cantidad cero", func(r *dto.CreatePurchaseRequest) { r.Items[0].Quantity = decimal.Zero }, domain.ErrInvalidInput},
		{"precio negativo", func(r *dto.CreatePurchaseRequest) { r.Items[0].UnitPrice = decimal.NewFromInt(-1) }, domain.ErrInvalidInput},
		{"producto inexistente", func(r *dto.CreatePurchaseRequest) { r.Items[0].ProductID = "nope" }, domain.ErrNotFound},
		{"fecha malformada", func(r *dto.CreatePurchaseRequest) { r.Date = "10/02/2026" }, domain.ErrInvalidInput},
		{"sin método de pago", func(r *dto.CreatePurchaseRequest) { r.PaymentMethod = "" }, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := createRequest(line("p1", 5, 8))
			tc.mutate(&req)
			_, err := f.uc.CreatePurchase(context.Background(), testUserID, req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestUpdatePurchase_CompraDeOtroUsuario(t *testing.T) {
	f := setupPurchase()
	f.addProduct("p1", 0)

	resp, err := f.uc.CreatePurchase(context.Background(), testUserID, createRequest(
		line("p1", 5, 8),
	))
	require.NoError(t, err)

	_, err = f.uc.UpdatePurchase(context.Background(), testOtherUserID, resp.ID, updateRequest(
		line("p1", 5, 8),
	))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
