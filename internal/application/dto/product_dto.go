package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto o servicio.
// InitialStock, MinimumStock y Location solo aplican a type=product.
type CreateProductRequest struct {
	Code         string           `json:"code" validate:"required,min=1,max=50"`
	Name         string           `json:"name" validate:"required,min=1,max=255"`
	Description  string           `json:"description"`
	Type         string           `json:"type" validate:"required,oneof=product service"`
	Price        decimal.Decimal  `json:"price"`
	UnitWeight   *decimal.Decimal `json:"unit_weight,omitempty"`
	InitialStock decimal.Decimal  `json:"initial_stock"`
	MinimumStock decimal.Decimal  `json:"minimum_stock"`
	Location     string           `json:"location"`
}

// UpdateProductRequest entrada para actualizar un producto. El stock no se toca
// por acá: se maneja vía movimientos de inventario.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	UnitWeight  *decimal.Decimal `json:"unit_weight"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string           `json:"id"`
	Code         string           `json:"code"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Type         string           `json:"type"`
	Price        decimal.Decimal  `json:"price"`
	UnitWeight   *decimal.Decimal `json:"unit_weight,omitempty"`
	CurrentStock *decimal.Decimal `json:"current_stock,omitempty"` // solo type=product
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
