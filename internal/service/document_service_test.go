package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"ledgerbook/internal/calc"
	"ledgerbook/internal/domain"
	"ledgerbook/internal/service"
	"ledgerbook/mocks"
)

func row(desc string, qty, price, gst, disc float64) calc.LineItem {
	return calc.LineItem{
		Description:     desc,
		Quantity:        calc.NewNumber(qty),
		UnitPrice:       calc.NewNumber(price),
		GSTPercent:      calc.NewNumber(gst),
		DiscountPercent: calc.NewNumber(disc),
	}
}

func movesByName(moves []domain.StockMovement) map[string]domain.StockMovement {
	out := make(map[string]domain.StockMovement, len(moves))
	for _, m := range moves {
		out[m.Name] = m
	}
	return out
}

func TestCalculate(t *testing.T) {
	out := service.Calculate(service.CalculateInput{
		Items: []calc.LineItem{
			row("Widget", 2, 500, 18, 10),
			row("Gadget", 1, 1000, 18, 0),
			row("", 5, 5, 5, 0),
		},
		Shipping: calc.NewNumber(50),
	})

	require.Len(t, out.Rows, 3)
	assert.Equal(t, "900.00", out.Rows[0].Amounts.TaxableValue.Fixed2())
	assert.Equal(t, "1062.00", out.Rows[0].Amounts.GrossTotal.Fixed2())
	assert.False(t, out.Rows[2].Counted)
	assert.Equal(t, "1900.00", out.Totals.Subtotal.Fixed2())
	assert.Equal(t, "342.00", out.Totals.TotalGST.Fixed2())
	assert.Equal(t, "171.00", out.Totals.CGST.Fixed2())
	assert.Equal(t, "2292.00", out.Totals.Total.Fixed2())
}

func TestCalculate_ClampsNegatives(t *testing.T) {
	out := service.Calculate(service.CalculateInput{
		Items:    []calc.LineItem{row("Widget", -3, 100, 18, 0)},
		Shipping: calc.NewNumber(-10),
		Discount: calc.NewNumber(-5),
	})
	assert.Equal(t, "0.00", out.Totals.Total.Fixed2())
	assert.True(t, out.Rows[0].Quantity.IsZero())
}

func TestDocumentService_Create_RecomputesTotals(t *testing.T) {
	repo := new(mocks.MockDocumentRepo)
	svc := service.NewDocumentService(repo, zap.NewNop())

	businessID, userID := uuid.New(), uuid.New()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Document"), mock.Anything).Return([]string(nil), nil)

	result, err := svc.Create(context.Background(), &service.CreateDocumentInput{
		BusinessID:   businessID,
		CreatedBy:    userID,
		DocumentType: domain.DocTypeInvoice,
		DocumentInput: service.DocumentInput{
			PartyName: "Acme",
			Items:     []calc.LineItem{row("Widget", 2, 500, 18, 10), row("Gadget", 1, 1000, 18, 0)},
			Shipping:  calc.NewNumber(50),
		},
	})

	require.NoError(t, err)
	doc := result.Document
	assert.Equal(t, businessID, doc.BusinessID)
	assert.Equal(t, userID, doc.CreatedBy)
	assert.Equal(t, "1900.00", doc.Subtotal.Fixed2())
	assert.Equal(t, "171.00", doc.CGST.Fixed2())
	assert.Equal(t, "171.00", doc.SGST.Fixed2())
	assert.Equal(t, "0.00", doc.IGST.Fixed2())
	assert.Equal(t, "2292.00", doc.Total.Fixed2())
	assert.Regexp(t, `^INV-\d{8}-[0-9A-F]{6}$`, doc.Number)
	assert.False(t, doc.DocumentDate.IsZero())
	repo.AssertExpectations(t)
}

func TestDocumentService_Create_AcceptsMatchingTotals(t *testing.T) {
	repo := new(mocks.MockDocumentRepo)
	svc := service.NewDocumentService(repo, zap.NewNop())
	repo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return([]string(nil), nil)

	submitted := calc.Totals{
		Subtotal: calc.NewNumber(900),
		TotalGST: calc.NewNumber(162),
		CGST:     calc.NewNumber(81),
		SGST:     calc.NewNumber(81),
		Total:    calc.NewNumber(1062.004),
	}
	_, err := svc.Create(context.Background(), &service.CreateDocumentInput{
		DocumentType: domain.DocTypeSale,
		DocumentInput: service.DocumentInput{
			Number: "S-1",
			Items:  []calc.LineItem{row("Widget", 2, 500, 18, 10)},
			Totals: &submitted,
		},
	})
	assert.NoError(t, err)
}

func TestDocumentService_Create_RejectsMismatchedTotals(t *testing.T) {
	repo := new(mocks.MockDocumentRepo)
	svc := service.NewDocumentService(repo, zap.NewNop())

	submitted := calc.Totals{
		Subtotal: calc.NewNumber(900),
		TotalGST: calc.NewNumber(162),
		CGST:     calc.NewNumber(81),
		SGST:     calc.NewNumber(81),
		Total:    calc.NewNumber(1100),
	}
	_, err := svc.Create(context.Background(), &service.CreateDocumentInput{
		DocumentType: domain.DocTypeInvoice,
		DocumentInput: service.DocumentInput{
			Items:  []calc.LineItem{row("Widget", 2, 500, 18, 10)},
			Totals: &submitted,
		},
	})

	require.ErrorIs(t, err, domain.ErrTotalsMismatch)
	var mismatch *domain.TotalsMismatchError
	require.True(t, errors.As(err, &mismatch))
	require.Len(t, mismatch.Mismatches, 1)
	assert.Equal(t, "total", mismatch.Mismatches[0].Field)
	assert.Equal(t, "1062.00", mismatch.Mismatches[0].Computed.Fixed2())
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestDocumentService_Create_EmptyDocument(t *testing.T) {
	svc := service.NewDocumentService(new(mocks.MockDocumentRepo), zap.NewNop())

	_, err := svc.Create(context.Background(), &service.CreateDocumentInput{
		DocumentType:  domain.DocTypeInvoice,
		DocumentInput: service.DocumentInput{Items: []calc.LineItem{row("  ", 1, 10, 0, 0)}},
	})
	assert.ErrorIs(t, err, domain.ErrEmptyDocument)
}

func TestDocumentService_Create_InvalidType(t *testing.T) {
	svc := service.NewDocumentService(new(mocks.MockDocumentRepo), zap.NewNop())

	_, err := svc.Create(context.Background(), &service.CreateDocumentInput{
		DocumentType:  "quote",
		DocumentInput: service.DocumentInput{Items: []calc.LineItem{row("Widget", 1, 10, 0, 0)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDocumentType)
}

func TestDocumentService_Create_PurchaseAddsStock(t *testing.T) {
	repo := new(mocks.MockDocumentRepo)
	svc := service.NewDocumentService(repo, zap.NewNop())

	var moves []domain.StockMovement
	repo.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { moves = args.Get(2).([]domain.StockMovement) }).
		Return([]string(nil), nil)

	_, err := svc.Create(context.Background(), &service.CreateDocumentInput{
		DocumentType: domain.DocTypePurchase,
		DocumentInput: service.DocumentInput{
			Items: []calc.LineItem{row("Bolt", 100, 2, 18, 0), row("bolt", 50, 2, 18, 0), row("Nut", 10, 1, 18, 0)},
		},
	})
	require.NoError(t, err)

	require.Len(t, moves, 2)
	byName := movesByName(moves)
	assert.Equal(t, "150", byName["Bolt"].Delta.String())
	assert.True(t, byName["Bolt"].CreateMissing)
	assert.Equal(t, "10", byName["Nut"].Delta.String())
}

func TestDocumentService_Create_SaleSubtractsStockAndLogsSkipped(t *testing.T) {
	repo := new(mocks.MockDocumentRepo)
	core, logs := observer.New(zap.WarnLevel)
	svc := service.NewDocumentService(repo, zap.New(core))

	var moves []domain.StockMovement
	repo.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { moves = args.Get(2).([]domain.StockMovement) }).
		Return([]string{"Gizmo"}, nil)

	result, err := svc.Create(context.Background(), &service.CreateDocumentInput{
		DocumentType:  domain.DocTypeSale,
		DocumentInput: service.DocumentInput{Items: []calc.LineItem{row("Gizmo", 3, 10, 5, 0)}},
	})
	require.NoError(t, err)

	require.Len(t, moves, 1)
	assert.Equal(t, "-3", moves[0].Delta.String())
	assert.False(t, moves[0].CreateMissing)
	assert.Equal(t, []string{"Gizmo"}, result.SkippedItems)
	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].Message, "inventory items not found")
}

func TestDocumentService_Create_ExpenseDoesNotMoveStock(t *testing.T) {
	repo := new(mocks.MockDocumentRepo)
	svc := service.NewDocumentService(repo, zap.NewNop())

	repo.On("Create", mock.Anything, mock.Anything, []domain.StockMovement{}).Return([]string(nil), nil)

	_, err := svc.Create(context.Background(), &service.CreateDocumentInput{
		DocumentType:  domain.DocTypeExpense,
		DocumentInput: service.DocumentInput{Items: []calc.LineItem{row("Rent", 1, 20000, 18, 0)}},
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestDocumentService_Update_MovesOnlyTheDifference(t *testing.T) {
	repo := new(mocks.MockDocumentRepo)
	svc := service.NewDocumentService(repo, zap.NewNop())

	businessID, docID := uuid.New(), uuid.New()
	due := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	existing := &domain.Document{
		ID:           docID,
		BusinessID:   businessID,
		DocumentType: domain.DocTypeSale,
		Number:       "S-7",
		DocumentDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		DueDate:      &due,
		Items:        domain.LineItems{row("Bolt", 10, 2, 18, 0), row("Nut", 4, 1, 18, 0)},
	}
	repo.On("GetByID", mock.Anything, businessID, docID).Return(existing, nil)

	var (
		saved *domain.Document
		moves []domain.StockMovement
	)
	repo.On("Update", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*domain.Document)
			moves = args.Get(2).([]domain.StockMovement)
		}).
		Return([]string(nil), nil)

	_, err := svc.Update(context.Background(), &service.UpdateDocumentInput{
		BusinessID: businessID,
		DocumentID: docID,
		DocumentInput: service.DocumentInput{
			Items: []calc.LineItem{row("Bolt", 12, 2, 18, 0), row("Nut", 4, 1, 18, 0)},
			Notes: "second delivery",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "S-7", saved.Number)
	assert.Equal(t, domain.DocTypeSale, saved.DocumentType)
	assert.Equal(t, "second delivery", saved.Notes)
	assert.True(t, saved.DocumentDate.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	require.NotNil(t, saved.DueDate)
	assert.True(t, saved.DueDate.Equal(due))
	require.Len(t, moves, 1)
	assert.Equal(t, "Bolt", moves[0].Name)
	assert.Equal(t, "-2", moves[0].Delta.String())
}

func TestDocumentService_Delete_ReversesStock(t *testing.T) {
	repo := new(mocks.MockDocumentRepo)
	svc := service.NewDocumentService(repo, zap.NewNop())

	businessID, docID := uuid.New(), uuid.New()
	existing := &domain.Document{
		ID:           docID,
		BusinessID:   businessID,
		DocumentType: domain.DocTypePurchase,
		Items:        domain.LineItems{row("Bolt", 10, 2, 18, 0)},
	}
	repo.On("GetByID", mock.Anything, businessID, docID).Return(existing, nil)
	repo.On("Delete", mock.Anything, businessID, docID, mock.MatchedBy(func(m []domain.StockMovement) bool {
		return len(m) == 1 && m[0].Delta.String() == "-10" && !m[0].CreateMissing
	})).Return([]string(nil), nil)

	require.NoError(t, svc.Delete(context.Background(), businessID, docID))
	repo.AssertExpectations(t)
}

func TestDocumentService_Delete_NotFound(t *testing.T) {
	repo := new(mocks.MockDocumentRepo)
	svc := service.NewDocumentService(repo, zap.NewNop())

	businessID, docID := uuid.New(), uuid.New()
	repo.On("GetByID", mock.Anything, businessID, docID).Return(nil, domain.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), businessID, docID), domain.ErrNotFound)
}

func TestDocumentService_List_InvalidType(t *testing.T) {
	svc := service.NewDocumentService(new(mocks.MockDocumentRepo), zap.NewNop())

	_, _, err := svc.List(context.Background(), uuid.New(), domain.ListQuery{DocumentType: "quote"})
	assert.ErrorIs(t, err, domain.ErrInvalidDocumentType)
}

func TestDocumentService_Update_ReplacesSuppliedDates(t *testing.T) {
	repo := new(mocks.MockDocumentRepo)
	svc := service.NewDocumentService(repo, zap.NewNop())

	businessID, docID := uuid.New(), uuid.New()
	oldDue := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	existing := &domain.Document{
		ID:           docID,
		BusinessID:   businessID,
		DocumentType: domain.DocTypeExpense,
		Number:       "E-1",
		DocumentDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		DueDate:      &oldDue,
		Items:        domain.LineItems{row("Rent", 1, 1000, 0, 0)},
	}
	repo.On("GetByID", mock.Anything, businessID, docID).Return(existing, nil)

	var saved *domain.Document
	repo.On("Update", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*domain.Document) }).
		Return([]string(nil), nil)

	date := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)
	due := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	_, err := svc.Update(context.Background(), &service.UpdateDocumentInput{
		BusinessID: businessID,
		DocumentID: docID,
		DocumentInput: service.DocumentInput{
			DocumentDate: &date,
			DueDate:      &due,
			Items:        []calc.LineItem{row("Rent", 1, 1000, 0, 0)},
		},
	})
	require.NoError(t, err)

	assert.True(t, saved.DocumentDate.Equal(date))
	require.NotNil(t, saved.DueDate)
	assert.True(t, saved.DueDate.Equal(due))
	assert.True(t, existing.DueDate.Equal(oldDue))
}
