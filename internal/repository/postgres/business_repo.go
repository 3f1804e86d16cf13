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

type businessRepo struct {
	db *sqlx.DB
}

// NewBusinessRepo creates a new PostgreSQL-backed BusinessRepository.
func NewBusinessRepo(db *sqlx.DB) port.BusinessRepository {
	return &businessRepo{db: db}
}

const insertBusinessSQL = `INSERT INTO businesses (id, name, gstin, gst_registered, phone, address, is_active, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

func (r *businessRepo) Create(ctx context.Context, business *domain.Business) error {
	stampBusiness(business)
	_, err := r.db.ExecContext(ctx, insertBusinessSQL,
		business.ID, business.Name, business.GSTIN, business.GSTRegistered, business.Phone,
		business.Address, business.IsActive, business.CreatedAt, business.UpdatedAt)
	if err != nil {
		return fmt.Errorf("businessRepo.Create: %w", err)
	}
	return nil
}

func (r *businessRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Business, error) {
	var business domain.Business
	err := r.db.GetContext(ctx, &business, "SELECT * FROM businesses WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("businessRepo.GetByID: %w", err)
	}
	return &business, nil
}

func (r *businessRepo) Update(ctx context.Context, business *domain.Business) error {
	business.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE businesses SET name = $1, gstin = $2, gst_registered = $3, phone = $4, address = $5,
		 is_active = $6, updated_at = $7 WHERE id = $8`,
		business.Name, business.GSTIN, business.GSTRegistered, business.Phone, business.Address,
		business.IsActive, business.UpdatedAt, business.ID)
	if err != nil {
		return fmt.Errorf("businessRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CreateBusinessWithOwner inserts the business and its first user in one
// transaction.
func (r *businessRepo) CreateBusinessWithOwner(ctx context.Context, business *domain.Business, owner *domain.User) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("businessRepo.CreateBusinessWithOwner begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stampBusiness(business)
	if _, err := tx.ExecContext(ctx, insertBusinessSQL,
		business.ID, business.Name, business.GSTIN, business.GSTRegistered, business.Phone,
		business.Address, business.IsActive, business.CreatedAt, business.UpdatedAt); err != nil {
		return fmt.Errorf("businessRepo.CreateBusinessWithOwner business: %w", err)
	}

	owner.BusinessID = business.ID
	if err := insertUser(ctx, tx, owner); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("businessRepo.CreateBusinessWithOwner commit: %w", err)
	}
	return nil
}

// NewRegistrar returns the transactional business+owner writer.
func NewRegistrar(db *sqlx.DB) port.Registrar {
	return &businessRepo{db: db}
}

func stampBusiness(b *domain.Business) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
}
