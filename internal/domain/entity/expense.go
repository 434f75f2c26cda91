package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense representa un gasto registrado por un usuario.
type Expense struct {
	ID          string
	UserID      string
	Category    string
	Amount      decimal.Decimal
	Date        time.Time
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
