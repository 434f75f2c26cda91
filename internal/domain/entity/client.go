package entity

import "time"

// Client representa un cliente de facturación, propiedad exclusiva de un usuario.
// La cédula es única por usuario (el mismo documento puede existir bajo otro usuario).
type Client struct {
	ID        string
	UserID    string
	Name      string
	Cedula    string
	RUC       string
	Address   string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
