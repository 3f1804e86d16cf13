package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"ledgerbook/internal/domain"
	"ledgerbook/internal/port"
)

var documentList = listSpec{
	sortColumns: map[string]string{
		"date":       "document_date",
		"number":     "number",
		"party":      "party_name",
		"total":      "total",
		"created_at": "created_at",
	},
	defaultSort: "document_date",
	searchCols:  []string{"number", "party_name", "notes"},
	dateCol:     "document_date",
}

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, doc *domain.Document, moves []domain.StockMovement) ([]string, error) {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.Create begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `INSERT INTO documents (
		id, business_id, document_type, number, document_date, due_date,
		party_name, party_gstin, party_phone, items,
		subtotal, total_gst, cgst, sgst, igst, shipping, discount, total,
		notes, created_by, created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5, $6,
		$7, $8, $9, $10,
		$11, $12, $13, $14, $15, $16, $17, $18,
		$19, $20, $21, $22
	)`

	_, err = tx.ExecContext(ctx, query,
		doc.ID, doc.BusinessID, doc.DocumentType, doc.Number, doc.DocumentDate, doc.DueDate,
		doc.PartyName, doc.PartyGSTIN, doc.PartyPhone, doc.Items,
		doc.Subtotal, doc.TotalGST, doc.CGST, doc.SGST, doc.IGST, doc.Shipping, doc.Discount, doc.Total,
		doc.Notes, doc.CreatedBy, doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, domain.ErrDuplicateDocumentNumber
		}
		return nil, fmt.Errorf("documentRepo.Create: %w", err)
	}

	skipped, err := applyMovements(ctx, tx, doc.BusinessID, moves)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.Create: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("documentRepo.Create commit: %w", err)
	}
	return skipped, nil
}

func (r *documentRepo) GetByID(ctx context.Context, businessID, docID uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.GetContext(ctx, &doc,
		"SELECT * FROM documents WHERE id = $1 AND business_id = $2", docID, businessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	return &doc, nil
}

func (r *documentRepo) filters(businessID uuid.UUID, q domain.ListQuery) sq.And {
	where := documentList.where(businessID, q)
	if q.DocumentType != "" {
		where = append(where, sq.Eq{"document_type": q.DocumentType})
	}
	return where
}

func (r *documentRepo) List(ctx context.Context, businessID uuid.UUID, q domain.ListQuery) ([]domain.Document, int, error) {
	where := r.filters(businessID, q)
	order, err := documentList.orderBy(q)
	if err != nil {
		return nil, 0, err
	}

	countSQL, countArgs, err := psql.Select("COUNT(*)").From("documents").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.List build count: %w", err)
	}
	var total int
	if err := r.db.GetContext(ctx, &total, countSQL, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("documentRepo.List count: %w", err)
	}

	listSQL, listArgs, err := psql.Select("*").From("documents").Where(where).
		OrderBy(order).Limit(uint64(q.Limit)).Offset(uint64(q.Offset)).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.List build: %w", err)
	}
	var docs []domain.Document
	if err := r.db.SelectContext(ctx, &docs, listSQL, listArgs...); err != nil {
		return nil, 0, fmt.Errorf("documentRepo.List: %w", err)
	}
	return docs, total, nil
}

func (r *documentRepo) ListForExport(ctx context.Context, businessID uuid.UUID, q domain.ListQuery, maxRows int) ([]domain.Document, error) {
	order, err := documentList.orderBy(q)
	if err != nil {
		return nil, err
	}
	b := psql.Select("*").From("documents").Where(r.filters(businessID, q)).OrderBy(order)
	if maxRows > 0 {
		b = b.Limit(uint64(maxRows))
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("documentRepo.ListForExport build: %w", err)
	}
	var docs []domain.Document
	if err := r.db.SelectContext(ctx, &docs, query, args...); err != nil {
		return nil, fmt.Errorf("documentRepo.ListForExport: %w", err)
	}
	return docs, nil
}

func (r *documentRepo) Update(ctx context.Context, doc *domain.Document, moves []domain.StockMovement) ([]string, error) {
	doc.UpdatedAt = time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.Update begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `UPDATE documents SET
		number = $1, document_date = $2, due_date = $3,
		party_name = $4, party_gstin = $5, party_phone = $6, items = $7,
		subtotal = $8, total_gst = $9, cgst = $10, sgst = $11, igst = $12,
		shipping = $13, discount = $14, total = $15, notes = $16, updated_at = $17
		WHERE id = $18 AND business_id = $19`

	result, err := tx.ExecContext(ctx, query,
		doc.Number, doc.DocumentDate, doc.DueDate,
		doc.PartyName, doc.PartyGSTIN, doc.PartyPhone, doc.Items,
		doc.Subtotal, doc.TotalGST, doc.CGST, doc.SGST, doc.IGST,
		doc.Shipping, doc.Discount, doc.Total, doc.Notes, doc.UpdatedAt,
		doc.ID, doc.BusinessID)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, domain.ErrDuplicateDocumentNumber
		}
		return nil, fmt.Errorf("documentRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, domain.ErrNotFound
	}

	skipped, err := applyMovements(ctx, tx, doc.BusinessID, moves)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.Update: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("documentRepo.Update commit: %w", err)
	}
	return skipped, nil
}

func (r *documentRepo) Delete(ctx context.Context, businessID, docID uuid.UUID, moves []domain.StockMovement) ([]string, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.Delete begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx,
		"DELETE FROM documents WHERE id = $1 AND business_id = $2", docID, businessID)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, domain.ErrNotFound
	}

	skipped, err := applyMovements(ctx, tx, businessID, moves)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.Delete: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("documentRepo.Delete commit: %w", err)
	}
	return skipped, nil
}
