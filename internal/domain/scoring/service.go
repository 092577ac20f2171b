package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"talent-marketplace/internal/apperrors"
	"talent-marketplace/internal/domain/bands"
	"talent-marketplace/internal/domain/media"
	"talent-marketplace/internal/domain/profiles"
	"talent-marketplace/internal/logger"

	"go.uber.org/zap"
)

// Subject kinds share the media owner names so one key space serves both.
const (
	KindTalent     = media.OwnerTalent
	KindBackground = media.OwnerBackground
	KindBand       = media.OwnerBand
)

// ErrCacheMiss is returned by Cache.Get when the key is absent.
var ErrCacheMiss = errors.New("score cache miss")

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Loader fetches a subject with everything its table reads (media, members,
// specializations, listing count). Missing subjects return nil, nil.
type Loader interface {
	LoadTalent(ctx context.Context, id uint) (*profiles.TalentProfile, error)
	LoadBackground(ctx context.Context, id uint) (*profiles.BackgroundProfile, error)
	LoadBand(ctx context.Context, id uint) (*bands.Band, error)
}

type Service struct {
	loader Loader
	cache  Cache
	ttl    time.Duration
}

// NewService builds a scorer. A nil cache disables caching.
func NewService(loader Loader, cache Cache, ttl time.Duration) *Service {
	return &Service{loader: loader, cache: cache, ttl: ttl}
}

func CacheKey(kind string, id uint) string {
	return fmt.Sprintf("profile_score:%s:%d", kind, id)
}

// Score returns the breakdown for a subject, serving from cache when possible.
func (s *Service) Score(ctx context.Context, kind string, id uint) (Breakdown, error) {
	key := CacheKey(kind, id)
	if b, ok := s.cached(ctx, key); ok {
		return b, nil
	}

	b, err := s.compute(ctx, kind, id)
	if err != nil {
		return Breakdown{}, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(b); err == nil {
			if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
				logger.FromContext(ctx).Warn("score cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return b, nil
}

// Invalidate drops the cached score. Cache failures are logged and swallowed;
// the entry expires on its own.
func (s *Service) Invalidate(ctx context.Context, kind string, id uint) {
	if s.cache == nil {
		return
	}
	key := CacheKey(kind, id)
	if err := s.cache.Delete(ctx, key); err != nil && !errors.Is(err, ErrCacheMiss) {
		logger.FromContext(ctx).Warn("score cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *Service) cached(ctx context.Context, key string) (Breakdown, bool) {
	if s.cache == nil {
		return Breakdown{}, false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			logger.FromContext(ctx).Warn("score cache read failed", zap.String("key", key), zap.Error(err))
		}
		return Breakdown{}, false
	}
	var b Breakdown
	if err := json.Unmarshal(raw, &b); err != nil {
		return Breakdown{}, false
	}
	return b, true
}

func (s *Service) compute(ctx context.Context, kind string, id uint) (Breakdown, error) {
	switch kind {
	case KindTalent:
		p, err := s.loader.LoadTalent(ctx, id)
		if err != nil {
			return Breakdown{}, err
		}
		if p == nil {
			return Breakdown{}, apperrors.ErrProfileNotFound
		}
		return ScoreTalent(p), nil
	case KindBackground:
		p, err := s.loader.LoadBackground(ctx, id)
		if err != nil {
			return Breakdown{}, err
		}
		if p == nil {
			return Breakdown{}, apperrors.ErrProfileNotFound
		}
		return ScoreBackground(p), nil
	case KindBand:
		b, err := s.loader.LoadBand(ctx, id)
		if err != nil {
			return Breakdown{}, err
		}
		if b == nil {
			return Breakdown{}, apperrors.ErrBandNotFound
		}
		return ScoreBand(b), nil
	default:
		return Breakdown{}, apperrors.New(apperrors.CodeUnsupportedProfile,
			fmt.Sprintf("Scoring is not supported for %q profiles.", kind), http.StatusBadRequest)
	}
}
