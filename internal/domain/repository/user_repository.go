package repository

import (
	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User y los códigos de
// recuperación de contraseña.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	UpdatePassword(userID, passwordHash string) error

	CreateResetCode(code *entity.PasswordResetCode) error
	GetLatestResetCode(userID string) (*entity.PasswordResetCode, error)
	MarkResetCodeUsed(id string) error
}
