// Package store owns the cart line items and keeps them persisted under a
// single storage key.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/salmankhalil12/Restaurant-Site/internal/domain"
	"github.com/salmankhalil12/Restaurant-Site/internal/repository"
	apperrors "github.com/salmankhalil12/Restaurant-Site/pkg/errors"
)

// DefaultKey is the storage key the cart is persisted under.
const DefaultKey = "FoodSprintCart"

const tracerName = "github.com/salmankhalil12/Restaurant-Site/internal/store"

// AddInput carries the attributes copied into a new line item.
type AddInput struct {
	ID    string
	Name  string
	Price float64
	Image string
}

// Store is the authoritative cart. Every operation runs under one mutex
// from read through persist, so callers observe operations one at a time.
type Store struct {
	mu      sync.Mutex
	storage repository.Storage
	key     string
	logger  *slog.Logger
	tracer  trace.Tracer
	items   []domain.LineItem
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the logger used for load warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New restores the cart from storage. A missing key, an unreachable backend
// or data that does not decode all start an empty cart; New never fails.
func New(ctx context.Context, storage repository.Storage, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		key:     DefaultKey,
		logger:  slog.Default(),
		tracer:  otel.Tracer(tracerName),
		items:   []domain.LineItem{},
	}
	for _, opt := range opts {
		opt(s)
	}

	ctx, span := s.tracer.Start(ctx, "store.Load", trace.WithAttributes(attribute.String("cart.key", s.key)))
	defer span.End()

	data, err := storage.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.DebugContext(ctx, "no saved cart", slog.String("key", s.key))
		} else {
			s.logger.WarnContext(ctx, "failed to read saved cart, starting empty",
				slog.String("key", s.key),
				slog.String("error", err.Error()),
			)
		}
		return s
	}

	items, err := domain.DecodeItems(data)
	if err != nil {
		s.logger.WarnContext(ctx, "discarding unreadable saved cart",
			slog.String("key", s.key),
			slog.String("error", err.Error()),
		)
		return s
	}

	s.items = items
	span.SetAttributes(attribute.Int("cart.lines", len(items)))
	s.logger.DebugContext(ctx, "cart restored", slog.String("key", s.key), slog.Int("lines", len(items)))
	return s
}

// Key returns the storage key in use.
func (s *Store) Key() string { return s.key }

// Add increments the quantity of an existing id or appends a new line with
// quantity 1. Unusable prices are stored as 0. An empty id is the one input
// Add refuses: it returns InvalidInput and leaves the cart untouched, since a
// line without an id could never be found again.
func (s *Store) Add(ctx context.Context, in AddInput) (err error) {
	if in.ID == "" {
		return apperrors.InvalidInput("item id is required")
	}

	ctx, end := s.startOp(ctx, "Add", in.ID)
	defer func() { end(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := domain.FindItemIndex(s.items, in.ID); i >= 0 {
		s.items[i].Quantity++
	} else {
		s.items = append(s.items, domain.LineItem{
			ID:       in.ID,
			Name:     in.Name,
			Price:    domain.SanitizePrice(in.Price),
			Image:    in.Image,
			Quantity: 1,
		})
	}
	return s.persist(ctx)
}

// Increase adds one to the quantity of id. It reports whether the cart
// changed; an unknown id changes nothing and writes nothing.
func (s *Store) Increase(ctx context.Context, id string) (changed bool, err error) {
	ctx, end := s.startOp(ctx, "Increase", id)
	defer func() { end(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	i := domain.FindItemIndex(s.items, id)
	if i < 0 {
		return false, nil
	}
	s.items[i].Quantity++
	return true, s.persist(ctx)
}

// Decrease subtracts one from the quantity of id while it is above 1. A line
// at quantity 1 is left alone; removal is a separate action.
func (s *Store) Decrease(ctx context.Context, id string) (changed bool, err error) {
	ctx, end := s.startOp(ctx, "Decrease", id)
	defer func() { end(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	i := domain.FindItemIndex(s.items, id)
	if i < 0 || s.items[i].Quantity <= 1 {
		return false, nil
	}
	s.items[i].Quantity--
	return true, s.persist(ctx)
}

// Remove deletes the line for id, keeping the order of the others.
func (s *Store) Remove(ctx context.Context, id string) (changed bool, err error) {
	ctx, end := s.startOp(ctx, "Remove", id)
	defer func() { end(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	i := domain.FindItemIndex(s.items, id)
	if i < 0 {
		return false, nil
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return true, s.persist(ctx)
}

// Items returns a copy of the current lines in insertion order.
func (s *Store) Items() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyItems()
}

// Totals returns the derived count and total of the current lines.
func (s *Store) Totals() domain.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.ComputeTotals(s.items)
}

// Snapshot returns items and totals read under the same lock.
func (s *Store) Snapshot() ([]domain.LineItem, domain.Totals) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyItems(), domain.ComputeTotals(s.items)
}

// Len returns the number of distinct lines.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) copyItems() []domain.LineItem {
	out := make([]domain.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// persist overwrites the storage key with the full sequence. The caller
// holds s.mu. On failure the in-memory cart keeps the mutation. Errors the
// backend did not classify are reported as internal.
func (s *Store) persist(ctx context.Context) error {
	data, err := domain.EncodeItems(s.items)
	if err != nil {
		return fmt.Errorf("persist cart: %w", apperrors.Internal(err))
	}
	if err := s.storage.Set(ctx, s.key, data); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist cart",
			slog.String("key", s.key),
			slog.String("error", err.Error()),
		)
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			err = apperrors.Internal(err)
		}
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}

func (s *Store) startOp(ctx context.Context, op, id string) (context.Context, func(error)) {
	ctx, span := s.tracer.Start(ctx, "store."+op, trace.WithAttributes(attribute.String("cart.item_id", id)))
	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}
