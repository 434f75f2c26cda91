package entity

import "time"

// Supplier representa un proveedor de compras, propiedad exclusiva de un usuario.
// El RUC es único por usuario.
type Supplier struct {
	ID            string
	UserID        string
	Name          string
	RUC           string
	Address       string
	Email         string
	Phone         string
	ContactPerson string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
