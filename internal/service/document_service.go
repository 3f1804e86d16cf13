package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ledgerbook/internal/calc"
	"ledgerbook/internal/domain"
	"ledgerbook/internal/port"
)

// CalculateInput is the DTO for a stateless totals computation.
type CalculateInput struct {
	Items    []calc.LineItem `json:"items"`
	Shipping calc.Number     `json:"shipping"`
	Discount calc.Number     `json:"discount"`
}

// CalculatedRow pairs a sanitized row with its derived amounts.
type CalculatedRow struct {
	calc.LineItem
	Amounts calc.RowAmounts `json:"amounts"`
	Counted bool            `json:"counted"`
}

// CalculateOutput is the rounded result of Calculate.
type CalculateOutput struct {
	Rows   []CalculatedRow `json:"rows"`
	Totals calc.Totals     `json:"totals"`
}

// Calculate sanitizes the rows and returns per-row amounts and document
// totals, both rounded to two decimal places.
func Calculate(input CalculateInput) CalculateOutput {
	items := calc.SanitizeAll(input.Items)
	rows := make([]CalculatedRow, len(items))
	for i := range items {
		rows[i] = CalculatedRow{
			LineItem: items[i],
			Amounts:  calc.CalculateRow(items[i]).Rounded(),
			Counted:  items[i].Counts(),
		}
	}
	totals := calc.Aggregate(items, sanitizeAdjustments(input.Shipping, input.Discount))
	return CalculateOutput{Rows: rows, Totals: totals.Rounded()}
}

func sanitizeAdjustments(shipping, discount calc.Number) calc.Adjustments {
	return calc.Adjustments{Shipping: shipping.NonNegative(), Discount: discount.NonNegative()}
}

// DocumentInput holds the user-editable fields of a document.
type DocumentInput struct {
	Number       string          `json:"number" binding:"max=64"`
	DocumentDate *time.Time      `json:"document_date"`
	DueDate      *time.Time      `json:"due_date"`
	PartyName    string          `json:"party_name" binding:"max=255"`
	PartyGSTIN   string          `json:"party_gstin" binding:"max=15"`
	PartyPhone   string          `json:"party_phone" binding:"max=20"`
	Items        []calc.LineItem `json:"items" binding:"required"`
	Shipping     calc.Number     `json:"shipping"`
	Discount     calc.Number     `json:"discount"`
	// Totals are the client-side totals. When present they must agree with
	// the recomputed totals.
	Totals *calc.Totals `json:"totals"`
	Notes  string       `json:"notes" binding:"max=2000"`
}

// CreateDocumentInput is the DTO for document creation.
type CreateDocumentInput struct {
	DocumentInput
	BusinessID   uuid.UUID           `json:"-"`
	CreatedBy    uuid.UUID           `json:"-"`
	DocumentType domain.DocumentType `json:"document_type" binding:"required"`
}

// UpdateDocumentInput is the DTO for replacing a document's contents. The
// document type cannot change.
type UpdateDocumentInput struct {
	DocumentInput
	BusinessID uuid.UUID `json:"-"`
	DocumentID uuid.UUID `json:"-"`
}

// DocumentResult is a saved document plus the line items that could not be
// matched to inventory.
type DocumentResult struct {
	Document     *domain.Document `json:"document"`
	SkippedItems []string         `json:"skipped_items,omitempty"`
}

// DocumentService defines the document business logic contract.
type DocumentService interface {
	Create(ctx context.Context, input *CreateDocumentInput) (*DocumentResult, error)
	GetByID(ctx context.Context, businessID, docID uuid.UUID) (*domain.Document, error)
	List(ctx context.Context, businessID uuid.UUID, q domain.ListQuery) ([]domain.Document, int, error)
	Update(ctx context.Context, input *UpdateDocumentInput) (*DocumentResult, error)
	Delete(ctx context.Context, businessID, docID uuid.UUID) error
}

type documentService struct {
	docRepo port.DocumentRepository
	log     *zap.Logger
	now     func() time.Time
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(docRepo port.DocumentRepository, log *zap.Logger) DocumentService {
	return &documentService{
		docRepo: docRepo,
		log:     log.Named("documents"),
		now:     time.Now,
	}
}

func (s *documentService) Create(ctx context.Context, input *CreateDocumentInput) (*DocumentResult, error) {
	if !domain.ValidDocumentTypes[input.DocumentType] {
		return nil, domain.ErrInvalidDocumentType
	}

	doc := &domain.Document{
		ID:           uuid.New(),
		BusinessID:   input.BusinessID,
		DocumentType: input.DocumentType,
		CreatedBy:    input.CreatedBy,
	}
	if err := s.fill(doc, &input.DocumentInput); err != nil {
		return nil, err
	}
	if doc.Number == "" {
		doc.Number = generateNumber(doc.DocumentType, doc.DocumentDate, doc.ID)
	}

	moves := stockMoves(nil, doc)
	skipped, err := s.docRepo.Create(ctx, doc, moves)
	if err != nil {
		return nil, fmt.Errorf("creating document: %w", err)
	}
	s.logSkipped(doc, skipped)

	s.log.Info("document created",
		zap.String("document_id", doc.ID.String()),
		zap.String("business_id", doc.BusinessID.String()),
		zap.String("type", string(doc.DocumentType)),
		zap.String("total", doc.Total.Fixed2()),
		zap.Int("stock_moves", len(moves)),
	)
	return &DocumentResult{Document: doc, SkippedItems: skipped}, nil
}

func (s *documentService) GetByID(ctx context.Context, businessID, docID uuid.UUID) (*domain.Document, error) {
	return s.docRepo.GetByID(ctx, businessID, docID)
}

func (s *documentService) List(ctx context.Context, businessID uuid.UUID, q domain.ListQuery) ([]domain.Document, int, error) {
	if q.DocumentType != "" && !domain.ValidDocumentTypes[q.DocumentType] {
		return nil, 0, domain.ErrInvalidDocumentType
	}
	return s.docRepo.List(ctx, businessID, q)
}

func (s *documentService) Update(ctx context.Context, input *UpdateDocumentInput) (*DocumentResult, error) {
	existing, err := s.docRepo.GetByID(ctx, input.BusinessID, input.DocumentID)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if err := s.fill(&updated, &input.DocumentInput); err != nil {
		return nil, err
	}
	if updated.Number == "" {
		updated.Number = existing.Number
	}

	moves := stockMoves(existing, &updated)
	skipped, err := s.docRepo.Update(ctx, &updated, moves)
	if err != nil {
		return nil, fmt.Errorf("updating document: %w", err)
	}
	s.logSkipped(&updated, skipped)

	return &DocumentResult{Document: &updated, SkippedItems: skipped}, nil
}

func (s *documentService) Delete(ctx context.Context, businessID, docID uuid.UUID) error {
	existing, err := s.docRepo.GetByID(ctx, businessID, docID)
	if err != nil {
		return err
	}
	skipped, err := s.docRepo.Delete(ctx, businessID, docID, stockMoves(existing, nil))
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	s.logSkipped(existing, skipped)
	return nil
}

// fill copies input onto doc, recomputes the totals and checks them against
// any client-submitted totals.
func (s *documentService) fill(doc *domain.Document, input *DocumentInput) error {
	items := calc.SanitizeAll(input.Items)
	if !anyCounted(items) {
		return domain.ErrEmptyDocument
	}

	adj := sanitizeAdjustments(input.Shipping, input.Discount)
	computed := calc.Aggregate(items, adj)
	if input.Totals != nil {
		if mismatches := calc.Reconcile(*input.Totals, computed, calc.DefaultTolerance); len(mismatches) > 0 {
			return &domain.TotalsMismatchError{Mismatches: mismatches}
		}
	}

	doc.Number = strings.TrimSpace(input.Number)
	// Dates left out of the input keep their stored values; a new document
	// defaults to today.
	switch {
	case input.DocumentDate != nil:
		doc.DocumentDate = input.DocumentDate.UTC()
	case doc.DocumentDate.IsZero():
		doc.DocumentDate = s.now().UTC().Truncate(24 * time.Hour)
	}
	if input.DueDate != nil {
		doc.DueDate = input.DueDate
	}
	doc.PartyName = strings.TrimSpace(input.PartyName)
	doc.PartyGSTIN = strings.ToUpper(strings.TrimSpace(input.PartyGSTIN))
	doc.PartyPhone = NormalizePhone(input.PartyPhone)
	doc.Items = items
	doc.Notes = input.Notes
	doc.ApplyTotals(computed)
	return nil
}

func (s *documentService) logSkipped(doc *domain.Document, skipped []string) {
	if len(skipped) == 0 {
		return
	}
	s.log.Warn("inventory items not found, stock not moved",
		zap.String("document_id", doc.ID.String()),
		zap.String("business_id", doc.BusinessID.String()),
		zap.Strings("items", skipped),
	)
}

func anyCounted(items []calc.LineItem) bool {
	for i := range items {
		if items[i].Counts() {
			return true
		}
	}
	return false
}

var numberPrefixes = map[domain.DocumentType]string{
	domain.DocTypeInvoice:    "INV",
	domain.DocTypeExpense:    "EXP",
	domain.DocTypePurchase:   "PUR",
	domain.DocTypeSale:       "SAL",
	domain.DocTypeCreditNote: "CN",
	domain.DocTypeDebitNote:  "DN",
}

// generateNumber builds a document number such as INV-20240131-1A2B3C.
func generateNumber(t domain.DocumentType, date time.Time, id uuid.UUID) string {
	suffix := strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:6])
	return fmt.Sprintf("%s-%s-%s", numberPrefixes[t], date.Format("20060102"), suffix)
}

// stockMoves returns the inventory changes needed to go from the stock
// effect of before to that of after. Either may be nil. Movements for the
// same item name are merged.
func stockMoves(before, after *domain.Document) []domain.StockMovement {
	var (
		order []string
		moves = make(map[string]*domain.StockMovement)
	)
	add := func(doc *domain.Document, sign int64) {
		if doc == nil {
			return
		}
		dir := int64(doc.DocumentType.StockDirection())
		if dir == 0 {
			return
		}
		factor := calc.NewNumber(float64(dir * sign))
		for _, item := range doc.Items {
			if !item.Counts() || item.Quantity.IsZero() {
				continue
			}
			key := strings.ToLower(item.Description)
			m, ok := moves[key]
			if !ok {
				m = &domain.StockMovement{Name: item.Description, Delta: calc.Zero}
				moves[key] = m
				order = append(order, key)
			}
			m.Delta = calc.NumberFromDecimal(m.Delta.Add(item.Quantity.Mul(factor.Decimal)))
			if sign > 0 {
				m.HSNCode = item.HSNCode
				m.Unit = item.Unit
				m.UnitPrice = item.UnitPrice
				m.GSTPct = item.GSTPercent
				if doc.DocumentType == domain.DocTypePurchase {
					m.CreateMissing = true
				}
			}
		}
	}
	add(before, -1)
	add(after, 1)

	out := make([]domain.StockMovement, 0, len(order))
	for _, key := range order {
		m := moves[key]
		if m.Delta.IsZero() {
			continue
		}
		out = append(out, *m)
	}
	return out
}
