package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// ExpenseUseCase CRUD de gastos del usuario.
type ExpenseUseCase struct {
	repo repository.ExpenseRepository
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(repo repository.ExpenseRepository) *ExpenseUseCase {
	return &ExpenseUseCase{repo: repo}
}

// Create crea un gasto.
func (uc *ExpenseUseCase) Create(userID string, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	date, err := dto.ParseDate(in.Date)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	expense := &entity.Expense{
		ID:          uuid.New().String(),
		UserID:      userID,
		Category:    in.Category,
		Amount:      in.Amount,
		Date:        date,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// GetByID obtiene un gasto del usuario.
func (uc *ExpenseUseCase) GetByID(userID, id string) (*dto.ExpenseResponse, error) {
	expense, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if expense == nil || expense.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return toExpenseResponse(expense), nil
}

// Update actualiza un gasto del usuario.
func (uc *ExpenseUseCase) Update(userID, id string, in dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error) {
	expense, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if expense == nil || expense.UserID != userID {
		return nil, domain.ErrNotFound
	}
	if in.Category != nil {
		expense.Category = *in.Category
	}
	if in.Amount != nil {
		if !in.Amount.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		expense.Amount = *in.Amount
	}
	if in.Date != nil {
		date, err := dto.ParseDate(*in.Date)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		expense.Date = date
	}
	if in.Description != nil {
		expense.Description = *in.Description
	}
	expense.UpdatedAt = time.Now()
	if err := uc.repo.Update(expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// List lista gastos del usuario con búsqueda por categoría o descripción.
func (uc *ExpenseUseCase) List(userID, search string, limit, offset int) (*dto.ExpenseListResponse, error) {
	expenses, err := uc.repo.ListByUser(userID, search, limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.ExpenseListResponse{
		Items: make([]dto.ExpenseResponse, 0, len(expenses)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, e := range expenses {
		out.Items = append(out.Items, *toExpenseResponse(e))
	}
	return out, nil
}

// Delete elimina un gasto del usuario.
func (uc *ExpenseUseCase) Delete(userID, id string) error {
	expense, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if expense == nil || expense.UserID != userID {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:          e.ID,
		Category:    e.Category,
		Amount:      e.Amount,
		Date:        dto.FormatDate(e.Date),
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
