package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/salmankhalil12/Restaurant-Site/internal/domain"
	"github.com/salmankhalil12/Restaurant-Site/internal/notify"
	"github.com/salmankhalil12/Restaurant-Site/internal/render"
	"github.com/salmankhalil12/Restaurant-Site/internal/store"
	apperrors "github.com/salmankhalil12/Restaurant-Site/pkg/errors"
	"github.com/salmankhalil12/Restaurant-Site/pkg/logger"
	"github.com/salmankhalil12/Restaurant-Site/pkg/validator"
)

// PriceText is a price as it arrives from a client: a JSON string such as
// "9.99" or a JSON number.
type PriceText string

// UnmarshalJSON accepts strings, numbers and null.
func (p *PriceText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = PriceText(s)
		return nil
	}
	if bytes.Equal(b, []byte("null")) {
		*p = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("price must be a number or a string: %w", err)
	}
	*p = PriceText(n.String())
	return nil
}

// AddItemRequest mirrors the data attributes of an "add to cart" button.
type AddItemRequest struct {
	ID    string    `json:"id" validate:"required,max=64"`
	Name  string    `json:"name" validate:"max=200"`
	Price PriceText `json:"price"`
	Image string    `json:"img" validate:"max=500"`
}

// CartView is the cart as the page shows it.
type CartView struct {
	Items    []domain.LineItem `json:"items"`
	Totals   domain.Totals     `json:"totals"`
	Display  string            `json:"total_display"`
	Rendered render.View       `json:"rendered"`
}

// MutationResult reports whether an operation changed the cart.
type MutationResult struct {
	Changed bool      `json:"changed"`
	Cart    *CartView `json:"cart"`
}

// CheckoutResult is the outcome of pressing the checkout button.
type CheckoutResult struct {
	Accepted bool      `json:"accepted"`
	Message  string    `json:"message"`
	Cart     *CartView `json:"cart"`
}

// CartService handles cart events: it mutates the store, then re-renders
// and notifies. Each mutation and the redraw that follows it run under one
// lock, so the last rendering always matches the store.
type CartService struct {
	mu       sync.Mutex
	store    CartStore
	view     Presenter
	notifier notify.Notifier
	menu     Menu
	logger   *slog.Logger
}

// NewCartService wires a cart service and draws the initial view.
func NewCartService(s CartStore, view Presenter, notifier notify.Notifier, menu Menu, l *slog.Logger) *CartService {
	if l == nil {
		l = slog.Default()
	}
	svc := &CartService{store: s, view: view, notifier: notifier, menu: menu, logger: l}
	svc.refresh()
	return svc
}

// Add puts an item in the cart, parsing its price text.
func (s *CartService) Add(ctx context.Context, req AddItemRequest) (*CartView, error) {
	if err := validator.Validate(req); err != nil {
		cartOperations.WithLabelValues("add", resultReject).Inc()
		return nil, err
	}
	return s.add(ctx, store.AddInput{
		ID:    req.ID,
		Name:  req.Name,
		Price: domain.ParsePrice(string(req.Price)).InexactFloat64(),
		Image: req.Image,
	})
}

// AddFromMenu adds a catalog item by id at its catalog price.
func (s *CartService) AddFromMenu(ctx context.Context, id string) (*CartView, error) {
	item, ok := s.menu.Find(id)
	if !ok {
		cartOperations.WithLabelValues("add", resultReject).Inc()
		return nil, apperrors.NotFound("menu item", id)
	}
	return s.add(ctx, store.AddInput{
		ID:    item.ID,
		Name:  item.Name,
		Price: domain.SanitizePrice(item.Price),
		Image: item.Image,
	})
}

func (s *CartService) add(ctx context.Context, in store.AddInput) (*CartView, error) {
	s.mu.Lock()
	err := s.store.Add(ctx, in)
	observe("add", err == nil, err)
	view := s.refresh()
	s.mu.Unlock()

	if err != nil {
		return nil, fmt.Errorf("add item %s: %w", in.ID, err)
	}

	logger.WithContext(ctx, s.logger).DebugContext(ctx, "item added",
		slog.String("item_id", in.ID),
		slog.Int("count", view.Totals.Count),
	)
	s.notifier.Notify(ctx, "Added to Cart", in.Name+" has been added to your cart", domain.ToastSuccess)
	return view, nil
}

// Increase bumps a quantity.
func (s *CartService) Increase(ctx context.Context, id string) (*MutationResult, error) {
	return s.mutate(ctx, "increase", id, s.store.Increase)
}

// Decrease lowers a quantity, never below 1.
func (s *CartService) Decrease(ctx context.Context, id string) (*MutationResult, error) {
	return s.mutate(ctx, "decrease", id, s.store.Decrease)
}

// Remove drops a line and tells the guest.
func (s *CartService) Remove(ctx context.Context, id string) (*MutationResult, error) {
	res, err := s.mutate(ctx, "remove", id, s.store.Remove)
	if err != nil {
		return nil, err
	}
	if res.Changed {
		s.notifier.Notify(ctx, "Item Removed", "Item has been removed from your cart", domain.ToastError)
	}
	return res, nil
}

// Checkout is a stub: it only checks that the cart has something in it.
func (s *CartService) Checkout(ctx context.Context) *CheckoutResult {
	view := s.View()
	if len(view.Items) == 0 {
		cartOperations.WithLabelValues("checkout", resultReject).Inc()
		s.notifier.Notify(ctx, "Cart Empty", "Please add items to your cart first", domain.ToastError)
		return &CheckoutResult{Accepted: false, Message: "Please add items to your cart first", Cart: view}
	}

	cartOperations.WithLabelValues("checkout", resultOK).Inc()
	s.notifier.Notify(ctx, "Checkout", "Redirecting to payment...", domain.ToastSuccess)
	return &CheckoutResult{Accepted: true, Message: "Redirecting to payment...", Cart: view}
}

// View returns the current cart and its last rendering.
func (s *CartService) View() *CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current()
}

func (s *CartService) mutate(ctx context.Context, op, id string, fn func(context.Context, string) (bool, error)) (*MutationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed, err := fn(ctx, id)
	observe(op, changed, err)
	if err != nil {
		// The store keeps the change even when persisting fails.
		s.refresh()
		return nil, fmt.Errorf("%s item %s: %w", op, id, err)
	}

	var view *CartView
	if changed {
		view = s.refresh()
	} else {
		view = s.current()
	}
	return &MutationResult{Changed: changed, Cart: view}, nil
}

// refresh redraws the whole cart from the store. The caller holds s.mu,
// except during construction.
func (s *CartService) refresh() *CartView {
	items, totals := s.store.Snapshot()
	s.view.RenderTotals(totals.Count, totals.Total)
	s.view.RenderCart(items)
	return &CartView{Items: items, Totals: totals, Display: totals.Display(), Rendered: s.view.View()}
}

func (s *CartService) current() *CartView {
	items, totals := s.store.Snapshot()
	return &CartView{Items: items, Totals: totals, Display: totals.Display(), Rendered: s.view.View()}
}
