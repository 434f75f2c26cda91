package repository

import (
	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// ExpenseRepository define el puerto de persistencia para Expense.
type ExpenseRepository interface {
	Create(expense *entity.Expense) error
	GetByID(id string) (*entity.Expense, error)
	Update(expense *entity.Expense) error
	ListByUser(userID, search string, limit, offset int) ([]*entity.Expense, error)
	Delete(id string) error
}
