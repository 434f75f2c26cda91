package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de producto.
const (
	ProductTypeProduct = "product" // bien físico, lleva inventario
	ProductTypeService = "service" // servicio, nunca lleva inventario
)

// Product representa un producto o servicio del catálogo de un usuario.
// Code es único por usuario; el stock vive en InventoryRecord (1:1, solo para type=product).
type Product struct {
	ID          string
	UserID      string
	Code        string
	Name        string
	Description string
	Type        string // product | service
	Price       decimal.Decimal
	UnitWeight  *decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsService indica si el producto es un servicio (exento de inventario).
func (p *Product) IsService() bool {
	return p.Type == ProductTypeService
}

// ValidProductType valida el tipo contra los valores permitidos.
func ValidProductType(t string) bool {
	return t == ProductTypeProduct || t == ProductTypeService
}
