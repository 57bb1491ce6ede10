package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/FACorreiaa/go-poi-itinerary/internal/types"
)

var _ Repository = (*CacheRepository)(nil)

// Direction selects which neighbour a suggestion cycles to.
type Direction string

const (
	Next Direction = "next"
	Prev Direction = "prev"
)

func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case Next, Prev:
		return d, nil
	default:
		return "", fmt.Errorf("unknown direction %q", s)
	}
}

// Repository keeps generated sessions for later retrieval and cycling.
type Repository interface {
	Save(ctx context.Context, s *types.Session) error
	Get(ctx context.Context, id uuid.UUID) (*types.Session, error)
	Cycle(ctx context.Context, id uuid.UUID, index int, dir Direction) (*types.Session, error)
	Count() int
}

// CacheRepository holds sessions in memory and forgets them after ttl.
type CacheRepository struct {
	logger *slog.Logger
	cache  *cache.Cache
	// mu serialises read-modify-write cycles on a single entry.
	mu sync.Mutex
}

func NewCacheRepository(ttl, cleanupInterval time.Duration, logger *slog.Logger) *CacheRepository {
	return &CacheRepository{
		logger: logger,
		cache:  cache.New(ttl, cleanupInterval),
	}
}

func (r *CacheRepository) Save(ctx context.Context, s *types.Session) error {
	if s == nil || s.ID == uuid.Nil {
		return errors.New("session must have an id")
	}
	r.cache.Set(s.ID.String(), clone(s), cache.DefaultExpiration)
	r.logger.DebugContext(ctx, "Session stored",
		slog.String("session_id", s.ID.String()),
		slog.Int("suggestions", len(s.Suggestions)))
	return nil
}

func (r *CacheRepository) Get(_ context.Context, id uuid.UUID) (*types.Session, error) {
	s, err := r.load(id)
	if err != nil {
		return nil, err
	}
	return clone(s), nil
}

// Cycle moves the selected place of suggestion index one step in dir and
// stores the result. The entry keeps its original expiry.
func (r *CacheRepository) Cycle(ctx context.Context, id uuid.UUID, index int, dir Direction) (*types.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := id.String()
	v, expiry, found := r.cache.GetWithExpiration(key)
	if !found {
		return nil, fmt.Errorf("%s: %w", key, types.ErrSessionNotFound)
	}
	s := clone(v.(*types.Session))
	if index < 0 || index >= len(s.Suggestions) {
		return nil, fmt.Errorf("suggestion %d of %d: %w", index, len(s.Suggestions), types.ErrSuggestionNotFound)
	}

	sug := &s.Suggestions[index]
	var err error
	switch dir {
	case Next:
		err = sug.Next()
	case Prev:
		err = sug.Prev()
	default:
		err = fmt.Errorf("unknown direction %q", dir)
	}
	if err != nil {
		return nil, err
	}

	ttl := cache.NoExpiration
	if !expiry.IsZero() {
		ttl = time.Until(expiry)
		if ttl <= 0 {
			return nil, fmt.Errorf("%s: %w", key, types.ErrSessionNotFound)
		}
	}
	r.cache.Set(key, s, ttl)

	r.logger.DebugContext(ctx, "Suggestion cycled",
		slog.String("session_id", key),
		slog.Int("index", index),
		slog.String("direction", string(dir)),
		slog.String("selected", sug.SelectedPlace.Title))
	return clone(s), nil
}

// Count reports the number of live sessions.
func (r *CacheRepository) Count() int {
	return r.cache.ItemCount()
}

func (r *CacheRepository) load(id uuid.UUID) (*types.Session, error) {
	v, found := r.cache.Get(id.String())
	if !found {
		return nil, fmt.Errorf("%s: %w", id, types.ErrSessionNotFound)
	}
	return v.(*types.Session), nil
}

// clone copies everything a caller could mutate through Next/Prev. Place
// slices inside suggestions are never written and stay shared.
func clone(s *types.Session) *types.Session {
	out := *s
	out.Suggestions = slices.Clone(s.Suggestions)
	if s.TotalCount != nil {
		tc := *s.TotalCount
		out.TotalCount = &tc
	}
	return &out
}
