package scoring

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"talent-marketplace/internal/apperrors"
	"talent-marketplace/internal/domain/bands"
	"talent-marketplace/internal/domain/profiles"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
	fail bool
}

func newMemoryCache() *memoryCache { return &memoryCache{data: map[string][]byte{}} }

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return nil, errors.New("connection refused")
	}
	v, ok := c.data[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return v, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("connection refused")
	}
	c.data[key] = value
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

type stubLoader struct {
	talent     map[uint]*profiles.TalentProfile
	background map[uint]*profiles.BackgroundProfile
	band       map[uint]*bands.Band
	loads      int
}

func (l *stubLoader) LoadTalent(_ context.Context, id uint) (*profiles.TalentProfile, error) {
	l.loads++
	return l.talent[id], nil
}

func (l *stubLoader) LoadBackground(_ context.Context, id uint) (*profiles.BackgroundProfile, error) {
	l.loads++
	return l.background[id], nil
}

func (l *stubLoader) LoadBand(_ context.Context, id uint) (*bands.Band, error) {
	l.loads++
	return l.band[id], nil
}

func TestService_CachesUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	profile := &profiles.TalentProfile{ID: 7}
	loader := &stubLoader{talent: map[uint]*profiles.TalentProfile{7: profile}}
	cache := newMemoryCache()
	svc := NewService(loader, cache, time.Minute)

	first, err := svc.Score(ctx, KindTalent, 7)
	require.NoError(t, err)
	assert.Equal(t, 5, first.Total)
	assert.Contains(t, cache.data, "profile_score:talent:7")

	profile.IsVerified = true
	cached, err := svc.Score(ctx, KindTalent, 7)
	require.NoError(t, err)
	assert.Equal(t, 5, cached.Total)
	assert.Equal(t, 1, loader.loads)

	svc.Invalidate(ctx, KindTalent, 7)
	fresh, err := svc.Score(ctx, KindTalent, 7)
	require.NoError(t, err)
	assert.Equal(t, 30, fresh.Total)
	assert.Equal(t, 2, loader.loads)
}

func TestService_CacheFailureFallsBackToCompute(t *testing.T) {
	loader := &stubLoader{band: map[uint]*bands.Band{3: {ID: 3, IsVerified: true}}}
	cache := newMemoryCache()
	cache.fail = true
	svc := NewService(loader, cache, time.Minute)

	b, err := svc.Score(context.Background(), KindBand, 3)
	require.NoError(t, err)
	assert.Equal(t, 20, b.Total)
}

func TestService_WithoutCache(t *testing.T) {
	loader := &stubLoader{background: map[uint]*profiles.BackgroundProfile{1: {ID: 1}}}
	svc := NewService(loader, nil, 0)

	b, err := svc.Score(context.Background(), KindBackground, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, b.Total)
	svc.Invalidate(context.Background(), KindBackground, 1)
}

func TestService_MissingAndUnsupported(t *testing.T) {
	svc := NewService(&stubLoader{}, nil, 0)

	_, err := svc.Score(context.Background(), KindTalent, 99)
	assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)

	_, err = svc.Score(context.Background(), KindBand, 99)
	assert.ErrorIs(t, err, apperrors.ErrBandNotFound)

	_, err = svc.Score(context.Background(), "agency", 1)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnsupportedProfile))
}
