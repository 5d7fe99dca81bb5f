package service

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/salmankhalil12/Restaurant-Site/internal/domain"
	"github.com/salmankhalil12/Restaurant-Site/internal/render"
	"github.com/salmankhalil12/Restaurant-Site/internal/store"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, title, message string, kind domain.ToastKind) {
	m.Called(ctx, title, message, kind)
}

type mockPresenter struct {
	mock.Mock
}

func (m *mockPresenter) RenderCart(items []domain.LineItem) {
	m.Called(items)
}

func (m *mockPresenter) RenderTotals(count int, total decimal.Decimal) {
	m.Called(count, total)
}

func (m *mockPresenter) View() render.View {
	return m.Called().Get(0).(render.View)
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Add(ctx context.Context, in store.AddInput) error {
	return m.Called(ctx, in).Error(0)
}

func (m *mockStore) Increase(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockStore) Decrease(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockStore) Remove(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockStore) Snapshot() ([]domain.LineItem, domain.Totals) {
	args := m.Called()
	return args.Get(0).([]domain.LineItem), args.Get(1).(domain.Totals)
}

type fakeMenu map[string]domain.MenuItem

func (f fakeMenu) Find(id string) (domain.MenuItem, bool) {
	item, ok := f[id]
	return item, ok
}
