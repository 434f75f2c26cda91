package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(context.Background(), query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.Status,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	query := `
		SELECT id, email, password_hash, name, status, created_at, updated_at
		FROM users WHERE id = $1`
	var u entity.User
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Status, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &u, nil
}

// FindByEmail obtiene un usuario por email.
func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	query := `
		SELECT id, email, password_hash, name, status, created_at, updated_at
		FROM users WHERE email = $1 LIMIT 1`
	var u entity.User
	err := r.pool.QueryRow(context.Background(), query, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Status, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

// UpdatePassword actualiza solo el hash de contraseña.
func (r *UserRepo) UpdatePassword(userID, passwordHash string) error {
	_, err := r.pool.Exec(context.Background(),
		`UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`,
		userID, passwordHash,
	)
	if err != nil {
		return fmt.Errorf("update user password: %w", err)
	}
	return nil
}

// CreateResetCode persiste un código de recuperación de contraseña.
func (r *UserRepo) CreateResetCode(code *entity.PasswordResetCode) error {
	if code.ID == "" {
		code.ID = uuid.New().String()
	}
	query := `
		INSERT INTO password_reset_codes (id, user_id, code, is_used, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(context.Background(), query,
		code.ID, code.UserID, code.Code, code.IsUsed, code.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert reset code: %w", err)
	}
	return nil
}

// GetLatestResetCode devuelve el código de recuperación más reciente del usuario.
// Devuelve nil si el usuario nunca pidió uno.
func (r *UserRepo) GetLatestResetCode(userID string) (*entity.PasswordResetCode, error) {
	query := `
		SELECT id, user_id, code, is_used, created_at
		FROM password_reset_codes WHERE user_id = $1
		ORDER BY created_at DESC LIMIT 1`
	var c entity.PasswordResetCode
	err := r.pool.QueryRow(context.Background(), query, userID).Scan(
		&c.ID, &c.UserID, &c.Code, &c.IsUsed, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest reset code: %w", err)
	}
	return &c, nil
}

// MarkResetCodeUsed marca un código como utilizado (un solo uso).
func (r *UserRepo) MarkResetCodeUsed(id string) error {
	_, err := r.pool.Exec(context.Background(),
		`UPDATE password_reset_codes SET is_used = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark reset code used: %w", err)
	}
	return nil
}
