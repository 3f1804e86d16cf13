package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"ledgerbook/internal/domain"
	"ledgerbook/internal/port"
)

type userRepo struct {
	db *sqlx.DB
}

// NewUserRepo creates a new PostgreSQL-backed UserRepository.
func NewUserRepo(db *sqlx.DB) port.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	return insertUser(ctx, r.db, user)
}

func insertUser(ctx context.Context, exec sqlx.ExecerContext, user *domain.User) error {
	user.ID = uuid.New()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `INSERT INTO users (id, business_id, phone, email, password_hash, full_name, role, is_active,
		created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := exec.ExecContext(ctx, query,
		user.ID, user.BusinessID, user.Phone, user.Email, user.PasswordHash, user.FullName,
		user.Role, user.IsActive, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if isDuplicateKey(err) {
			return domain.ErrDuplicatePhone
		}
		return fmt.Errorf("userRepo.Create: %w", err)
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, businessID, userID uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user,
		"SELECT * FROM users WHERE id = $1 AND business_id = $2", userID, businessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("userRepo.GetByID: %w", err)
	}
	return &user, nil
}

func (r *userRepo) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user, "SELECT * FROM users WHERE phone = $1", phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("userRepo.GetByPhone: %w", err)
	}
	return &user, nil
}

func (r *userRepo) ListByBusiness(ctx context.Context, businessID uuid.UUID, offset, limit int) ([]domain.User, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM users WHERE business_id = $1", businessID); err != nil {
		return nil, 0, fmt.Errorf("userRepo.ListByBusiness count: %w", err)
	}

	var users []domain.User
	err := r.db.SelectContext(ctx, &users,
		"SELECT * FROM users WHERE business_id = $1 ORDER BY created_at LIMIT $2 OFFSET $3",
		businessID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("userRepo.ListByBusiness: %w", err)
	}
	return users, total, nil
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET email = $1, full_name = $2, role = $3, is_active = $4, updated_at = $5
		 WHERE id = $6 AND business_id = $7`,
		user.Email, user.FullName, user.Role, user.IsActive, user.UpdatedAt, user.ID, user.BusinessID)
	if err != nil {
		return fmt.Errorf("userRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
