package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// SupplierUseCase CRUD de proveedores del usuario.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create crea un proveedor. El RUC es único por usuario (violación => ErrDuplicate).
func (uc *SupplierUseCase) Create(userID string, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	now := time.Now()
	supplier := &entity.Supplier{
		ID:            uuid.New().String(),
		UserID:        userID,
		Name:          in.Name,
		RUC:           in.RUC,
		Address:       in.Address,
		Email:         in.Email,
		Phone:         in.Phone,
		ContactPerson: in.ContactPerson,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// GetByID obtiene un proveedor del usuario.
func (uc *SupplierUseCase) GetByID(userID, id string) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil || supplier.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return toSupplierResponse(supplier), nil
}

// Update actualiza un proveedor del usuario.
func (uc *SupplierUseCase) Update(userID, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil || supplier.UserID != userID {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		supplier.Name = *in.Name
	}
	if in.RUC != nil {
		supplier.RUC = *in.RUC
	}
	if in.Address != nil {
		supplier.Address = *in.Address
	}
	if in.Email != nil {
		supplier.Email = *in.Email
	}
	if in.Phone != nil {
		supplier.Phone = *in.Phone
	}
	if in.ContactPerson != nil {
		supplier.ContactPerson = *in.ContactPerson
	}
	supplier.UpdatedAt = time.Now()
	if err := uc.repo.Update(supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// List lista proveedores del usuario con búsqueda.
func (uc *SupplierUseCase) List(userID, search string, limit, offset int) (*dto.SupplierListResponse, error) {
	suppliers, err := uc.repo.ListByUser(userID, search, limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.SupplierListResponse{
		Items: make([]dto.SupplierResponse, 0, len(suppliers)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, s := range suppliers {
		out.Items = append(out.Items, *toSupplierResponse(s))
	}
	return out, nil
}

// Delete elimina un proveedor del usuario.
func (uc *SupplierUseCase) Delete(userID, id string) error {
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if supplier == nil || supplier.UserID != userID {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:            s.ID,
		Name:          s.Name,
		RUC:           s.RUC,
		Address:       s.Address,
		Email:         s.Email,
		Phone:         s.Phone,
		ContactPerson: s.ContactPerson,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
