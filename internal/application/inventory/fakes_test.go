package inventory_test

import (
	"context"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia. Imitan la semántica del
// esquema real: Get/GetForUpdate devuelven nil sin error cuando no hay fila,
// y devuelven copias para que una mutación sin Upsert no toque el "almacén".
// ──────────────────────────────────────────────────────────────────────────────

type fakeMovementRepo struct {
	movements []*entity.InventoryMovement
}

func (r *fakeMovementRepo) Create(m *entity.InventoryMovement) error {
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	out := make([]*entity.InventoryMovement, 0)
	for _, m := range r.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByUser(userID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	return r.movements, nil
}

type fakeRecordRepo struct {
	records map[string]*entity.InventoryRecord // por ProductID
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{records: make(map[string]*entity.InventoryRecord)}
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
	out := make([]*entity.InventoryRecord, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec)
	}
	return out, nil
}

func (r *fakeRecordRepo) ListBelowMinimumByUser(userID string) ([]*entity.InventoryRecord, error) {
	out := make([]*entity.InventoryRecord, 0)
	for _, rec := range r.records {
		if rec.BelowMinimum() {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product // por ID
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (r *fakeProductRepo) Create(product *entity.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (r *fakeProductRepo) GetByUserAndCode(userID, code string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.UserID == userID && p.Code == code {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(product *entity.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) ListByUser(userID, search string, limit, offset int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0)
	for _, p := range r.products {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.products, id)
	return nil
}

// fakeTxRunner imita la semántica transaccional con snapshot y restore: si el
// callback falla, el estado de movimientos y registros vuelve al punto de inicio.
type fakeTxRunner struct {
	movRepo     *fakeMovementRepo
	recRepo     *fakeRecordRepo
	productRepo *fakeProductRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	recRepo repository.InventoryRecordRepository,
	productRepo repository.ProductRepository,
) error) error {
	movSnap := snapshotMovements(r.movRepo)
	recSnap := snapshotRecords(r.recRepo)
	if err := fn(r.movRepo, r.recRepo, r.productRepo); err != nil {
		r.movRepo.movements = movSnap
		r.recRepo.records = recSnap
		return err
	}
	return nil
}

func snapshotMovements(repo *fakeMovementRepo) []*entity.InventoryMovement {
	snap := make([]*entity.InventoryMovement, len(repo.movements))
	copy(snap, repo.movements)
	return snap
}

func snapshotRecords(repo *fakeRecordRepo) map[string]*entity.InventoryRecord {
	snap := make(map[string]*entity.InventoryRecord, len(repo.records))
	for k, v := range repo.records {
		cp := *v
		snap[k] = &cp
	}
	return snap
}
