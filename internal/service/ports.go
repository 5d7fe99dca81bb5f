package service

import (
	"context"

	"github.com/salmankhalil12/Restaurant-Site/internal/domain"
	"github.com/salmankhalil12/Restaurant-Site/internal/render"
	"github.com/salmankhalil12/Restaurant-Site/internal/store"
)

// CartStore is the cart state the service drives.
type CartStore interface {
	Add(ctx context.Context, in store.AddInput) error
	Increase(ctx context.Context, id string) (bool, error)
	Decrease(ctx context.Context, id string) (bool, error)
	Remove(ctx context.Context, id string) (bool, error)
	Snapshot() ([]domain.LineItem, domain.Totals)
}

// Presenter is a renderer that can hand back what it last drew.
type Presenter interface {
	render.Renderer
	View() render.View
}

// Menu looks up catalog items.
type Menu interface {
	Find(id string) (domain.MenuItem, bool)
}

var _ CartStore = (*store.Store)(nil)
