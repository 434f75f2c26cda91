package entity

import "time"

// User es la cuenta dueña de todos los datos contables: cada cliente, producto,
// factura, compra y gasto pertenece exclusivamente a un usuario.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PasswordResetCode es un código de recuperación de contraseña de un solo uso.
type PasswordResetCode struct {
	ID        string
	UserID    string
	Code      string // seis dígitos, ej: "483920"
	IsUsed    bool
	CreatedAt time.Time
}

// resetCodeTTL vigencia del código de recuperación.
const resetCodeTTL = 10 * time.Minute

// IsValid indica si el código sigue vigente (no usado y con menos de 10 minutos).
func (c *PasswordResetCode) IsValid(now time.Time) bool {
	return !c.IsUsed && now.Sub(c.CreatedAt) < resetCodeTTL
}
