package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/application/inventory"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// StockLedger.ApplyInTx es el único mutador de CurrentStock; estos tests cubren
// sus invariantes: stock nunca negativo, get-or-create del registro, un
// movimiento exacto por aplicación con ResultingStock consistente.
// ──────────────────────────────────────────────────────────────────────────────

const testProductID = "00000000-0000-0000-0000-0000000000aa"

func setupLedger() (*inventory.StockLedger, *fakeMovementRepo, *fakeRecordRepo) {
	return inventory.NewStockLedger(), &fakeMovementRepo{}, newFakeRecordRepo()
}

func seedRecord(recRepo *fakeRecordRepo, productID string, stock decimal.Decimal) {
	recRepo.records[productID] = &entity.InventoryRecord{
		ID:           "rec-" + productID,
		ProductID:    productID,
		CurrentStock: stock,
	}
}

func TestApplyInTx_IncreaseSumaStock(t *testing.T) {
	ledger, movRepo, recRepo := setupLedger()
	seedRecord(recRepo, testProductID, decimal.NewFromInt(10))
	now := time.Now()

	mov, err := ledger.ApplyInTx(movRepo, recRepo, testProductID,
		entity.MovementKindIncrease, decimal.NewFromInt(5), "Conteo físico", now, now)

	require.NoError(t, err)
	assert.True(t, mov.ResultingStock.Equal(decimal.NewFromInt(15)),
		"ResultingStock debe ser el stock después de aplicar")

	rec, _ := recRepo.Get(testProductID)
	assert.True(t, rec.CurrentStock.Equal(decimal.NewFromInt(15)),
		"CurrentStock debe reflejar el movimiento")
	assert.NotNil(t, rec.LastMovementAt, "LastMovementAt debe actualizarse")
	assert.Len(t, movRepo.movements, 1, "debe quedar exactamente un movimiento")
}

func TestApplyInTx_DecreaseRestaStock(t *testing.T) {
	ledger, movRepo, recRepo := setupLedger()
	seedRecord(recRepo, testProductID, decimal.NewFromInt(10))
	now := time.Now()

	mov, err := ledger.ApplyInTx(movRepo, recRepo, testProductID,
		entity.MovementKindDecrease, decimal.NewFromInt(4), "Merma", now, now)

	require.NoError(t, err)
	assert.True(t, mov.ResultingStock.Equal(decimal.NewFromInt(6)))
	assert.True(t, mov.Quantity.Equal(decimal.NewFromInt(4)),
		"Quantity se conserva positiva, el signo lo da el kind")
}

func TestApplyInTx_DecreaseHastaCeroEsValido(t *testing.T) {
	ledger, movRepo, recRepo := setupLedger()
	seedRecord(recRepo, testProductID, decimal.NewFromInt(7))
	now := time.Now()

	mov, err := ledger.ApplyInTx(movRepo, recRepo, testProductID,
		entity.MovementKindSale, decimal.NewFromInt(7), "Venta - Factura #F-001", now, now)

	require.NoError(t, err, "llegar exactamente a cero no es stock insuficiente")
	assert.True(t, mov.ResultingStock.IsZero())
}

func TestApplyInTx_StockInsuficiente_NoEscribeNada(t *testing.T) {
	ledger, movRepo, recRepo := setupLedger()
	seedRecord(recRepo, testProductID, decimal.NewFromInt(3))
	now := time.Now()

	mov, err := ledger.ApplyInTx(movRepo, recRepo, testProductID,
		entity.MovementKindSale, decimal.NewFromInt(4), "Venta - Factura #F-002", now, now)

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Nil(t, mov)

	// El rechazo ocurre antes de cualquier escritura.
	rec, _ := recRepo.Get(testProductID)
	assert.True(t, rec.CurrentStock.Equal(decimal.NewFromInt(3)),
		"el stock no debe cambiar tras un rechazo")
	assert.Empty(t, movRepo.movements, "no debe quedar ningún movimiento")
}

func TestApplyInTx_SinRegistro_CreaConStockCero(t *testing.T) {
	ledger, movRepo, recRepo := setupLedger()
	now := time.Now()

	mov, err := ledger.ApplyInTx(movRepo, recRepo, testProductID,
		entity.MovementKindPurchase, decimal.NewFromInt(12), "Compra #abc", now, now)

	require.NoError(t, err, "la falta de registro nunca es error para el ledger")
	assert.True(t, mov.ResultingStock.Equal(decimal.NewFromInt(12)))

	rec, _ := recRepo.Get(testProductID)
	require.NotNil(t, rec, "debe haberse creado el registro")
	assert.True(t, rec.CurrentStock.Equal(decimal.NewFromInt(12)))
	assert.True(t, rec.MinimumStock.IsZero())
}

func TestApplyInTx_SinRegistro_DecreaseFalla(t *testing.T) {
	ledger, movRepo, recRepo := setupLedger()
	now := time.Now()

	_, err := ledger.ApplyInTx(movRepo, recRepo, testProductID,
		entity.MovementKindDecrease, decimal.NewFromInt(1), "Merma", now, now)

	require.ErrorIs(t, err, domain.ErrInsufficientStock,
		"restar sobre un registro recién creado en cero debe rechazarse")
	_, ok := recRepo.records[testProductID]
	assert.False(t, ok, "el registro implícito tampoco debe persistirse")
	assert.Empty(t, movRepo.movements)
}

func TestApplyInTx_CantidadNoPositiva(t *testing.T) {
	ledger, movRepo, recRepo := setupLedger()
	now := time.Now()

	for _, qty := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		_, err := ledger.ApplyInTx(movRepo, recRepo, testProductID,
			entity.MovementKindIncrease, qty, "Ajuste", now, now)
		assert.ErrorIs(t, err, domain.ErrInvalidInput,
			"cantidad %s debe rechazarse", qty)
	}
}

func TestApplyInTx_KindDesconocido(t *testing.T) {
	ledger, movRepo, recRepo := setupLedger()
	seedRecord(recRepo, testProductID, decimal.NewFromInt(10))
	now := time.Now()

	_, err := ledger.ApplyInTx(movRepo, recRepo, testProductID,
		"transfer", decimal.NewFromInt(1), "Ajuste", now, now)

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, movRepo.movements)
}

func TestApplyInTx_SecuenciaDeMovimientos_ResultingStockConsistente(t *testing.T) {
	ledger, movRepo, recRepo := setupLedger()
	now := time.Now()

	steps := []struct {
		kind string
		qty  int64
		want int64
	}{
		{entity.MovementKindIncrease, 10, 10},
		{entity.MovementKindSale, 3, 7},
		{entity.MovementKindPurchase, 8, 15},
		{entity.MovementKindDecrease, 15, 0},
	}
	for _, step := range steps {
		mov, err := ledger.ApplyInTx(movRepo, recRepo, testProductID,
			step.kind, decimal.NewFromInt(step.qty), "Secuencia", now, now)
		require.NoError(t, err)
		assert.True(t, mov.ResultingStock.Equal(decimal.NewFromInt(step.want)),
			"tras %s de %d el stock debe ser %d", step.kind, step.qty, step.want)
	}
	assert.Len(t, movRepo.movements, len(steps))

	// Cada snapshot permite reconstruir el stock previo.
	for _, m := range movRepo.movements {
		prev := m.PreviousStock()
		if m.Increases() {
			assert.True(t, prev.Add(m.Quantity).Equal(m.ResultingStock))
		} else {
			assert.True(t, prev.Sub(m.Quantity).Equal(m.ResultingStock))
		}
	}
}
