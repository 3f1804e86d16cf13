package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ledgerbook/internal/domain"
)

// DraftStore persists in-progress wizard drafts with an expiry.
type DraftStore interface {
	Save(ctx context.Context, draft *domain.Draft, ttl time.Duration) error
	Get(ctx context.Context, businessID, draftID uuid.UUID) (*domain.Draft, error)
	Delete(ctx context.Context, businessID, draftID uuid.UUID) error
	Ping(ctx context.Context) error
}
