package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerbook/internal/calc"
	"ledgerbook/internal/domain"
	"ledgerbook/internal/repository/postgres"
)

func TestDocumentRepo_Create_AppliesMovements(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewDocumentRepo(db)
	businessID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO documents`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE inventory_items SET quantity = GREATEST`).
		WithArgs(sqlmock.AnyArg(), businessID, "Widget").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE inventory_items SET quantity = GREATEST`).
		WithArgs(sqlmock.AnyArg(), businessID, "Bolt").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO inventory_items`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE inventory_items SET quantity = GREATEST`).
		WithArgs(sqlmock.AnyArg(), businessID, "Nut").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	doc := &domain.Document{BusinessID: businessID, DocumentType: domain.DocTypePurchase, Number: "P-1"}
	moves := []domain.StockMovement{
		{Name: "Widget", Delta: calc.NewNumber(2)},
		{Name: "Bolt", Delta: calc.NewNumber(10), CreateMissing: true},
		{Name: "Nut", Delta: calc.NewNumber(-1), CreateMissing: true},
		{Name: "Washer", Delta: calc.Zero},
	}
	skipped, err := repo.Create(context.Background(), doc, moves)
	require.NoError(t, err)
	assert.Equal(t, []string{"Nut"}, skipped)
	assert.NotEqual(t, uuid.Nil, doc.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepo_Create_RollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewDocumentRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO documents`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), &domain.Document{BusinessID: uuid.New()}, nil)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepo_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewDocumentRepo(db)
	businessID := uuid.New()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM documents WHERE \(business_id = \$1 AND \(number ILIKE \$2 OR party_name ILIKE \$3 OR notes ILIKE \$4\) AND document_type = \$5\)`).
		WithArgs(businessID, "%acme%", "%acme%", "%acme%", domain.DocTypeExpense).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM documents WHERE .* ORDER BY total DESC, id DESC LIMIT 20 OFFSET 0`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "business_id", "number", "total", "document_date"}).
			AddRow(uuid.NewString(), businessID.String(), "E-7", "1062.00", time.Now()))

	docs, total, err := repo.List(context.Background(), businessID, domain.ListQuery{
		Limit: 20, Sort: "total", Desc: true, Search: "acme", DocumentType: domain.DocTypeExpense,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, docs, 1)
	assert.Equal(t, "1062.00", docs[0].Total.Fixed2())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepo_List_RejectsUnknownSort(t *testing.T) {
	db, _ := newMockDB(t)
	repo := postgres.NewDocumentRepo(db)

	_, _, err := repo.List(context.Background(), uuid.New(), domain.ListQuery{Limit: 20, Sort: "password_hash"})
	assert.ErrorIs(t, err, domain.ErrInvalidSortField)
}

func TestDocumentRepo_Delete_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewDocumentRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM documents`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.Delete(context.Background(), uuid.New(), uuid.New(), nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
