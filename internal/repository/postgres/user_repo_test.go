package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerbook/internal/domain"
	"ledgerbook/internal/repository/postgres"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func TestUserRepo_GetByPhone(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewUserRepo(db)

	userID, businessID := uuid.New(), uuid.New()
	rows := sqlmock.NewRows([]string{"id", "business_id", "phone", "full_name", "role", "is_active", "created_at"}).
		AddRow(userID.String(), businessID.String(), "9876543210", "Asha", "admin", true, time.Now())
	mock.ExpectQuery(`SELECT \* FROM users WHERE phone = \$1`).
		WithArgs("9876543210").
		WillReturnRows(rows)

	user, err := repo.GetByPhone(context.Background(), "9876543210")
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, businessID, user.BusinessID)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByPhone_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewUserRepo(db)

	mock.ExpectQuery(`SELECT \* FROM users WHERE phone = \$1`).
		WithArgs("000").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByPhone(context.Background(), "000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepo_Create_DuplicatePhone(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewUserRepo(db)

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "users_phone_key"`))

	err := repo.Create(context.Background(), &domain.User{Phone: "9876543210", Role: domain.RoleMember})
	assert.ErrorIs(t, err, domain.ErrDuplicatePhone)
}

func TestRegistrar_CreateBusinessWithOwner(t *testing.T) {
	db, mock := newMockDB(t)
	reg := postgres.NewRegistrar(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO businesses`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO users`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	business := &domain.Business{Name: "Acme Traders", IsActive: true}
	owner := &domain.User{Phone: "9876543210", Role: domain.RoleAdmin, IsActive: true}
	require.NoError(t, reg.CreateBusinessWithOwner(context.Background(), business, owner))

	assert.NotEqual(t, uuid.Nil, business.ID)
	assert.Equal(t, business.ID, owner.BusinessID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrar_CreateBusinessWithOwner_RollsBackOnDuplicatePhone(t *testing.T) {
	db, mock := newMockDB(t)
	reg := postgres.NewRegistrar(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO businesses`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO users`).WillReturnError(errors.New("duplicate key value"))
	mock.ExpectRollback()

	err := reg.CreateBusinessWithOwner(context.Background(), &domain.Business{Name: "x"}, &domain.User{Phone: "1"})
	assert.ErrorIs(t, err, domain.ErrDuplicatePhone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_ListByBusiness(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewUserRepo(db)
	businessID := uuid.New()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE business_id = \$1`).
		WithArgs(businessID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT \* FROM users WHERE business_id = \$1 ORDER BY created_at LIMIT \$2 OFFSET \$3`).
		WithArgs(businessID, 20, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "business_id", "phone", "role"}).
			AddRow(uuid.NewString(), businessID.String(), "9876543210", "admin").
			AddRow(uuid.NewString(), businessID.String(), "9876543211", "member"))

	users, total, err := repo.ListByBusiness(context.Background(), businessID, 0, 20)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, users, 2)
	assert.Equal(t, domain.RoleMember, users[1].Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Update_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewUserRepo(db)

	mock.ExpectExec(`UPDATE users SET`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &domain.User{ID: uuid.New(), BusinessID: uuid.New()})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
