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

var inventoryList = listSpec{
	sortColumns: map[string]string{
		"name":       "name",
		"quantity":   "quantity",
		"unit_price": "unit_price",
		"created_at": "created_at",
		"updated_at": "updated_at",
	},
	defaultSort: "name",
	searchCols:  []string{"name", "hsn_code"},
	dateCol:     "created_at",
}

type inventoryRepo struct {
	db *sqlx.DB
}

// NewInventoryRepo creates a new PostgreSQL-backed InventoryRepository.
func NewInventoryRepo(db *sqlx.DB) port.InventoryRepository {
	return &inventoryRepo{db: db}
}

func (r *inventoryRepo) Create(ctx context.Context, item *domain.InventoryItem) error {
	item.ID = uuid.New()
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO inventory_items (id, business_id, name, hsn_code, unit, quantity, unit_price, gst_percent,
		 created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		item.ID, item.BusinessID, item.Name, item.HSNCode, item.Unit, item.Quantity, item.UnitPrice,
		item.GSTPercent, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		if isDuplicateKey(err) {
			return domain.ErrDuplicateInventoryItem
		}
		return fmt.Errorf("inventoryRepo.Create: %w", err)
	}
	return nil
}

func (r *inventoryRepo) GetByID(ctx context.Context, businessID, itemID uuid.UUID) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	err := r.db.GetContext(ctx, &item,
		"SELECT * FROM inventory_items WHERE id = $1 AND business_id = $2", itemID, businessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("inventoryRepo.GetByID: %w", err)
	}
	return &item, nil
}

func (r *inventoryRepo) List(ctx context.Context, businessID uuid.UUID, q domain.ListQuery) ([]domain.InventoryItem, int, error) {
	where := inventoryList.where(businessID, q)
	order, err := inventoryList.orderBy(q)
	if err != nil {
		return nil, 0, err
	}

	countSQL, countArgs, err := psql.Select("COUNT(*)").From("inventory_items").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("inventoryRepo.List build count: %w", err)
	}
	var total int
	if err := r.db.GetContext(ctx, &total, countSQL, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("inventoryRepo.List count: %w", err)
	}

	listSQL, listArgs, err := psql.Select("*").From("inventory_items").Where(where).
		OrderBy(order).Limit(uint64(q.Limit)).Offset(uint64(q.Offset)).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("inventoryRepo.List build: %w", err)
	}
	var items []domain.InventoryItem
	if err := r.db.SelectContext(ctx, &items, listSQL, listArgs...); err != nil {
		return nil, 0, fmt.Errorf("inventoryRepo.List: %w", err)
	}
	return items, total, nil
}

func (r *inventoryRepo) Update(ctx context.Context, item *domain.InventoryItem) error {
	item.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE inventory_items SET name = $1, hsn_code = $2, unit = $3, quantity = $4, unit_price = $5,
		 gst_percent = $6, updated_at = $7 WHERE id = $8 AND business_id = $9`,
		item.Name, item.HSNCode, item.Unit, item.Quantity, item.UnitPrice, item.GSTPercent,
		item.UpdatedAt, item.ID, item.BusinessID)
	if err != nil {
		if isDuplicateKey(err) {
			return domain.ErrDuplicateInventoryItem
		}
		return fmt.Errorf("inventoryRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *inventoryRepo) Delete(ctx context.Context, businessID, itemID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM inventory_items WHERE id = $1 AND business_id = $2", itemID, businessID)
	if err != nil {
		return fmt.Errorf("inventoryRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *inventoryRepo) Upsert(ctx context.Context, item *domain.InventoryItem) (bool, error) {
	now := time.Now().UTC()
	item.ID = uuid.New()
	item.CreatedAt = now
	item.UpdatedAt = now

	var created bool
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO inventory_items (id, business_id, name, hsn_code, unit, quantity, unit_price, gst_percent,
		 created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (business_id, lower(name)) DO UPDATE SET
		   hsn_code = EXCLUDED.hsn_code, unit = EXCLUDED.unit, quantity = EXCLUDED.quantity,
		   unit_price = EXCLUDED.unit_price, gst_percent = EXCLUDED.gst_percent, updated_at = EXCLUDED.updated_at
		 RETURNING id, created_at, (xmax = 0) AS created`,
		item.ID, item.BusinessID, item.Name, item.HSNCode, item.Unit, item.Quantity, item.UnitPrice,
		item.GSTPercent, item.CreatedAt, item.UpdatedAt).Scan(&item.ID, &item.CreatedAt, &created)
	if err != nil {
		return false, fmt.Errorf("inventoryRepo.Upsert: %w", err)
	}
	return created, nil
}

// applyMovements adjusts stock by name inside tx. Quantities never drop below
// zero. Items that do not exist are created when the movement allows it and
// otherwise reported back as skipped.
func applyMovements(ctx context.Context, tx *sqlx.Tx, businessID uuid.UUID, moves []domain.StockMovement) ([]string, error) {
	var skipped []string
	for _, m := range moves {
		if m.Delta.IsZero() {
			continue
		}
		result, err := tx.ExecContext(ctx,
			`UPDATE inventory_items SET quantity = GREATEST(quantity + $1, 0), updated_at = NOW()
			 WHERE business_id = $2 AND lower(name) = lower($3)`,
			m.Delta, businessID, m.Name)
		if err != nil {
			return nil, fmt.Errorf("applyMovements update %q: %w", m.Name, err)
		}
		rows, _ := result.RowsAffected()
		if rows > 0 {
			continue
		}
		if !m.CreateMissing || !m.Delta.IsPositive() {
			skipped = append(skipped, m.Name)
			continue
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO inventory_items (id, business_id, name, hsn_code, unit, quantity, unit_price, gst_percent,
			 created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())`,
			uuid.New(), businessID, m.Name, m.HSNCode, m.Unit, m.Delta, m.UnitPrice, m.GSTPct)
		if err != nil {
			return nil, fmt.Errorf("applyMovements insert %q: %w", m.Name, err)
		}
	}
	return skipped, nil
}
