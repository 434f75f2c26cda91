package inventory

import (
	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// QueryUseCase lecturas de inventario: registros, bajos de stock y kardex por producto.
type QueryUseCase struct {
	queries     InventoryQueries
	movRepo     repository.InventoryMovementRepository
	productRepo repository.ProductRepository
}

// NewQueryUseCase construye el caso de uso de lectura.
func NewQueryUseCase(queries InventoryQueries, movRepo repository.InventoryMovementRepository, productRepo repository.ProductRepository) *QueryUseCase {
	return &QueryUseCase{queries: queries, movRepo: movRepo, productRepo: productRepo}
}

// ListRecords lista el inventario del usuario con nombre y código de producto.
func (uc *QueryUseCase) ListRecords(userID string, limit, offset int) ([]dto.InventoryRecordResponse, error) {
	rows, err := uc.queries.ListRecords(userID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryRecordResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.ToInventoryRecordResponse(&row.Record, row.ProductName, row.ProductCode))
	}
	return out, nil
}

// ListLowStock lista los productos en o por debajo de su stock mínimo.
func (uc *QueryUseCase) ListLowStock(userID string) ([]dto.InventoryRecordResponse, error) {
	rows, err := uc.queries.ListLowStock(userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryRecordResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.ToInventoryRecordResponse(&row.Record, row.ProductName, row.ProductCode))
	}
	return out, nil
}

// ListMovements lista el historial de un producto del usuario (más reciente primero).
func (uc *QueryUseCase) ListMovements(userID, productID string, limit, offset int) ([]dto.MovementResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.UserID != userID {
		return nil, domain.ErrNotFound
	}
	movements, err := uc.movRepo.ListByProduct(productID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, *dto.ToMovementResponse(m))
	}
	return out, nil
}
