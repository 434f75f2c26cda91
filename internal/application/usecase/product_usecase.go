package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/inventory"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// ProductUseCase CRUD de productos. Crear un producto de tipo product también
// crea su registro de inventario y, si trae stock inicial, el movimiento de
// apertura, todo en una transacción. Los servicios no llevan inventario.
type ProductUseCase struct {
	txRunner   inventory.TxRunner
	ledger     *inventory.StockLedger
	repo       repository.ProductRepository
	recordRepo repository.InventoryRecordRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	txRunner inventory.TxRunner,
	ledger *inventory.StockLedger,
	repo repository.ProductRepository,
	recordRepo repository.InventoryRecordRepository,
) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, ledger: ledger, repo: repo, recordRepo: recordRepo}
}

// Create crea un producto. Para type=product siempre queda un InventoryRecord;
// con stock inicial mayor a cero se agrega además un movimiento "Stock inicial"
// (con stock cero no se registra movimiento).
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if !entity.ValidProductType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	if in.InitialStock.IsNegative() || in.MinimumStock.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByUserAndCode(userID, in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		UserID:      userID,
		Code:        in.Code,
		Name:        in.Name,
		Description: in.Description,
		Type:        in.Type,
		Price:       in.Price,
		UnitWeight:  in.UnitWeight,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if product.IsService() {
		if err := uc.repo.Create(product); err != nil {
			return nil, err
		}
		return toProductResponse(product, nil), nil
	}

	var stock decimal.Decimal
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		recRepo repository.InventoryRecordRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := productRepo.Create(product); err != nil {
			return err
		}
		record := &entity.InventoryRecord{
			ID:           uuid.New().String(),
			ProductID:    product.ID,
			CurrentStock: decimal.Zero,
			MinimumStock: in.MinimumStock,
			Location:     in.Location,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := recRepo.Upsert(record); err != nil {
			return err
		}
		if in.InitialStock.GreaterThan(decimal.Zero) {
			if _, err := uc.ledger.ApplyInTx(
				movRepo, recRepo,
				product.ID, entity.MovementKindIncrease,
				in.InitialStock, "Stock inicial", now, now,
			); err != nil {
				return err
			}
			stock = in.InitialStock
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, &stock), nil
}

// GetByID obtiene un producto del usuario.
func (uc *ProductUseCase) GetByID(userID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product, uc.currentStock(product)), nil
}

// Update actualiza un producto del usuario. El stock no se modifica por acá.
func (uc *ProductUseCase) Update(userID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.UserID != userID {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.UnitWeight != nil {
		product.UnitWeight = in.UnitWeight
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product, uc.currentStock(product)), nil
}

// List lista productos del usuario con búsqueda por nombre o código.
func (uc *ProductUseCase) List(userID, search string, limit, offset int) (*dto.ProductListResponse, error) {
	products, err := uc.repo.ListByUser(userID, search, limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{
		Items: make([]dto.ProductResponse, 0, len(products)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, p := range products {
		out.Items = append(out.Items, *toProductResponse(p, uc.currentStock(p)))
	}
	return out, nil
}

// Delete elimina un producto del usuario.
func (uc *ProductUseCase) Delete(userID, id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil || product.UserID != userID {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// currentStock lee el stock actual para la respuesta; nil para servicios o sin registro.
func (uc *ProductUseCase) currentStock(product *entity.Product) *decimal.Decimal {
	if product.IsService() {
		return nil
	}
	record, err := uc.recordRepo.Get(product.ID)
	if err != nil || record == nil {
		return nil
	}
	return &record.CurrentStock
}

func toProductResponse(p *entity.Product, stock *decimal.Decimal) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID,
		Code:         p.Code,
		Name:         p.Name,
		Description:  p.Description,
		Type:         p.Type,
		Price:        p.Price,
		UnitWeight:   p.UnitWeight,
		CurrentStock: stock,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
