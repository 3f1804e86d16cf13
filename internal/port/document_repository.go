package port

import (
	"context"

	"github.com/google/uuid"

	"ledgerbook/internal/domain"
)

// DocumentRepository defines the contract for document persistence.
// Writes apply the given stock movements in the same transaction and return
// the names of items that were skipped because they do not exist.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document, moves []domain.StockMovement) ([]string, error)
	GetByID(ctx context.Context, businessID, docID uuid.UUID) (*domain.Document, error)
	List(ctx context.Context, businessID uuid.UUID, q domain.ListQuery) ([]domain.Document, int, error)
	ListForExport(ctx context.Context, businessID uuid.UUID, q domain.ListQuery, maxRows int) ([]domain.Document, error)
	Update(ctx context.Context, doc *domain.Document, moves []domain.StockMovement) ([]string, error)
	Delete(ctx context.Context, businessID, docID uuid.UUID, moves []domain.StockMovement) ([]string, error)
}

// InventoryRepository defines the contract for inventory persistence.
type InventoryRepository interface {
	Create(ctx context.Context, item *domain.InventoryItem) error
	GetByID(ctx context.Context, businessID, itemID uuid.UUID) (*domain.InventoryItem, error)
	List(ctx context.Context, businessID uuid.UUID, q domain.ListQuery) ([]domain.InventoryItem, int, error)
	Update(ctx context.Context, item *domain.InventoryItem) error
	Delete(ctx context.Context, businessID, itemID uuid.UUID) error
	// Upsert inserts the item or overwrites the existing item with the same
	// name, reporting whether a new row was created.
	Upsert(ctx context.Context, item *domain.InventoryItem) (bool, error)
}

// ExportJobRepository defines the contract for asynchronous export jobs.
type ExportJobRepository interface {
	Create(ctx context.Context, job *domain.ExportJob) error
	GetByID(ctx context.Context, businessID, jobID uuid.UUID) (*domain.ExportJob, error)
	// ClaimQueued moves up to limit queued jobs to processing and returns them.
	ClaimQueued(ctx context.Context, limit int) ([]domain.ExportJob, error)
	MarkCompleted(ctx context.Context, jobID uuid.UUID, fileName, s3Key string) error
	MarkFailed(ctx context.Context, jobID uuid.UUID, reason string) error
}
