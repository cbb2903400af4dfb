package cache

import (
	"context"
	"time"

	"github.com/ZaighumCheema47/klap-closing-app/internal/domain/entity"
)

// ClosingCache caches archived closings read back from the remote
// sheet. A sheet read is a full-worksheet network round trip, so even a
// short TTL takes the repeated-retrieval sting out of re-editing.
type ClosingCache interface {
	Get(ctx context.Context, key string) (*entity.ArchivedClosing, bool, error)
	Set(ctx context.Context, key string, value *entity.ArchivedClosing, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// NoopClosingCache disables caching; every retrieval hits the sheet.
type NoopClosingCache struct{}

func (NoopClosingCache) Get(_ context.Context, _ string) (*entity.ArchivedClosing, bool, error) {
	return nil, false, nil
}

func (NoopClosingCache) Set(_ context.Context, _ string, _ *entity.ArchivedClosing, _ time.Duration) error {
	return nil
}

func (NoopClosingCache) Delete(_ context.Context, _ string) error {
	return nil
}
