package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ledgerbook/internal/calc"
	"ledgerbook/internal/domain"
	"ledgerbook/internal/importer"
	"ledgerbook/internal/port"
)

// InventoryInput is the DTO for creating or replacing an inventory item.
type InventoryInput struct {
	Name       string      `json:"name" binding:"required,max=255"`
	HSNCode    string      `json:"hsn_code" binding:"omitempty,numeric,min=4,max=8"`
	Unit       string      `json:"unit" binding:"max=16"`
	Quantity   calc.Number `json:"quantity"`
	UnitPrice  calc.Number `json:"unit_price"`
	GSTPercent calc.Number `json:"gst_percent"`
}

func (in *InventoryInput) apply(item *domain.InventoryItem) {
	item.Name = strings.TrimSpace(in.Name)
	item.HSNCode = strings.TrimSpace(in.HSNCode)
	item.Unit = strings.TrimSpace(in.Unit)
	item.Quantity = in.Quantity.NonNegative()
	item.UnitPrice = in.UnitPrice.NonNegative()
	item.GSTPercent = in.GSTPercent.NonNegative()
}

// ImportOutput summarizes a bulk inventory import.
type ImportOutput struct {
	TotalRows int                 `json:"total_rows"`
	Created   int                 `json:"created"`
	Updated   int                 `json:"updated"`
	Failed    int                 `json:"failed"`
	Errors    []importer.RowError `json:"errors,omitempty"`
}

// InventoryService defines the inventory business logic contract.
type InventoryService interface {
	Create(ctx context.Context, businessID uuid.UUID, input *InventoryInput) (*domain.InventoryItem, error)
	GetByID(ctx context.Context, businessID, itemID uuid.UUID) (*domain.InventoryItem, error)
	List(ctx context.Context, businessID uuid.UUID, q domain.ListQuery) ([]domain.InventoryItem, int, error)
	Update(ctx context.Context, businessID, itemID uuid.UUID, input *InventoryInput) (*domain.InventoryItem, error)
	Delete(ctx context.Context, businessID, itemID uuid.UUID) error
	Import(ctx context.Context, businessID uuid.UUID, filename string, r io.Reader) (*ImportOutput, error)
}

type inventoryService struct {
	repo          port.InventoryRepository
	maxImportRows int
	log           *zap.Logger
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(repo port.InventoryRepository, maxImportRows int, log *zap.Logger) InventoryService {
	return &inventoryService{
		repo:          repo,
		maxImportRows: maxImportRows,
		log:           log.Named("inventory"),
	}
}

func (s *inventoryService) Create(ctx context.Context, businessID uuid.UUID, input *InventoryInput) (*domain.InventoryItem, error) {
	item := &domain.InventoryItem{BusinessID: businessID}
	input.apply(item)
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *inventoryService) GetByID(ctx context.Context, businessID, itemID uuid.UUID) (*domain.InventoryItem, error) {
	return s.repo.GetByID(ctx, businessID, itemID)
}

func (s *inventoryService) List(ctx context.Context, businessID uuid.UUID, q domain.ListQuery) ([]domain.InventoryItem, int, error) {
	return s.repo.List(ctx, businessID, q)
}

func (s *inventoryService) Update(ctx context.Context, businessID, itemID uuid.UUID, input *InventoryInput) (*domain.InventoryItem, error) {
	item, err := s.repo.GetByID(ctx, businessID, itemID)
	if err != nil {
		return nil, err
	}
	input.apply(item)
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *inventoryService) Delete(ctx context.Context, businessID, itemID uuid.UUID) error {
	return s.repo.Delete(ctx, businessID, itemID)
}

// Import parses a CSV or XLSX file and upserts every valid row by name.
// Invalid rows are reported and do not stop the import.
func (s *inventoryService) Import(ctx context.Context, businessID uuid.UUID, filename string, r io.Reader) (*ImportOutput, error) {
	res, err := importer.Parse(filename, r, s.maxImportRows)
	if err != nil {
		return nil, err
	}

	out := &ImportOutput{TotalRows: res.TotalRows, Errors: res.Errors}
	for i := range res.Items {
		item := res.Items[i]
		item.BusinessID = businessID
		created, err := s.repo.Upsert(ctx, &item)
		if err != nil {
			return nil, fmt.Errorf("importing %q: %w", item.Name, err)
		}
		if created {
			out.Created++
		} else {
			out.Updated++
		}
	}
	out.Failed = failedRows(res.Errors)

	s.log.Info("inventory imported",
		zap.String("business_id", businessID.String()),
		zap.String("file", filename),
		zap.Int("rows", out.TotalRows),
		zap.Int("created", out.Created),
		zap.Int("updated", out.Updated),
		zap.Int("failed", out.Failed),
	)
	return out, nil
}

// failedRows counts distinct rows among errs.
func failedRows(errs []importer.RowError) int {
	seen := make(map[int]struct{}, len(errs))
	for _, e := range errs {
		seen[e.Row] = struct{}{}
	}
	return len(seen)
}
