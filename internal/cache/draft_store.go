package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"ledgerbook/internal/domain"
	"ledgerbook/internal/port"
)

const defaultDraftPrefix = "ledgerbook:draft:"

type draftStore struct {
	client    redis.Cmdable
	keyPrefix string
}

// NewDraftStore creates a Redis-backed DraftStore. Drafts are stored as JSON
// under a key scoped by business.
func NewDraftStore(client redis.Cmdable, keyPrefix string) port.DraftStore {
	if keyPrefix == "" {
		keyPrefix = defaultDraftPrefix
	}
	return &draftStore{client: client, keyPrefix: keyPrefix}
}

func (s *draftStore) key(businessID, draftID uuid.UUID) string {
	return draftKey(s.keyPrefix, businessID, draftID)
}

func draftKey(prefix string, businessID, draftID uuid.UUID) string {
	return prefix + businessID.String() + ":" + draftID.String()
}

func (s *draftStore) Save(ctx context.Context, draft *domain.Draft, ttl time.Duration) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("draftStore.Save encode: %w", err)
	}
	if err := s.client.Set(ctx, s.key(draft.BusinessID, draft.ID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("draftStore.Save: %w", err)
	}
	return nil
}

func (s *draftStore) Get(ctx context.Context, businessID, draftID uuid.UUID) (*domain.Draft, error) {
	raw, err := s.client.Get(ctx, s.key(businessID, draftID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrDraftNotFound
		}
		return nil, fmt.Errorf("draftStore.Get: %w", err)
	}
	return decodeDraft(raw)
}

func (s *draftStore) Delete(ctx context.Context, businessID, draftID uuid.UUID) error {
	n, err := s.client.Del(ctx, s.key(businessID, draftID)).Result()
	if err != nil {
		return fmt.Errorf("draftStore.Delete: %w", err)
	}
	if n == 0 {
		return domain.ErrDraftNotFound
	}
	return nil
}

func (s *draftStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func decodeDraft(raw []byte) (*domain.Draft, error) {
	var d domain.Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("draftStore decode: %w", err)
	}
	return &d, nil
}
