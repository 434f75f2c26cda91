package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// AdjustInventoryUseCase aplica ajustes manuales de inventario (increase/decrease).
// Es el único camino donde el kind lo elige el caller; compras y ventas fijan
// purchase/sale en sus procesadores.
type AdjustInventoryUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	ledger      *StockLedger
}

// NewAdjustInventoryUseCase construye el caso de uso.
func NewAdjustInventoryUseCase(txRunner TxRunner, productRepo repository.ProductRepository, ledger *StockLedger) *AdjustInventoryUseCase {
	return &AdjustInventoryUseCase{txRunner: txRunner, productRepo: productRepo, ledger: ledger}
}

// Adjust valida producto y propiedad, y aplica el movimiento vía ledger en una
// transacción. Un producto de otro usuario se reporta como no encontrado.
func (uc *AdjustInventoryUseCase) Adjust(ctx context.Context, userID string, in dto.AdjustInventoryRequest) (*dto.MovementResponse, error) {
	if !entity.ValidAdjustmentKind(in.Kind) {
		return nil, domain.ErrInvalidInput
	}
	if in.Reason == "" {
		return nil, domain.ErrInvalidInput
	}
	date, err := dto.ParseDate(in.Date)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	product, perr := uc.productRepo.GetByID(in.ProductID)
	if perr != nil {
		return nil, perr
	}
	if product == nil || product.UserID != userID {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	var movement *entity.InventoryMovement
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		recRepo repository.InventoryRecordRepository,
		_ repository.ProductRepository,
	) error {
		var lerr error
		movement, lerr = uc.ledger.ApplyInTx(movRepo, recRepo, product.ID, in.Kind, in.Quantity, in.Reason, date, now)
		return lerr
	})
	if err != nil {
		return nil, err
	}
	return dto.ToMovementResponse(movement), nil
}
