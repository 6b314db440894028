package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/model"
)

type mockCartStore struct{ mock.Mock }

func (m *mockCartStore) AddOrIncrement(ctx context.Context, userID, productID string, qty int) error {
	return m.Called(ctx, userID, productID, qty).Error(0)
}
func (m *mockCartStore) SetQuantity(ctx context.Context, userID, productID string, qty int) error {
	return m.Called(ctx, userID, productID, qty).Error(0)
}
func (m *mockCartStore) Remove(ctx context.Context, userID, productID string) error {
	return m.Called(ctx, userID, productID).Error(0)
}
func (m *mockCartStore) Clear(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}
func (m *mockCartStore) ListByUser(ctx context.Context, userID string) ([]model.CartItem, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

type mockCheckoutStore struct{ mock.Mock }

func (m *mockCheckoutStore) CreateFromCart(ctx context.Context, userID string, items []model.CartItem, total float64, phone, address string) (*model.Order, error) {
	args := m.Called(ctx, userID, items, total, phone, address)
	o, _ := args.Get(0).(*model.Order)
	return o, args.Error(1)
}

type mockProductReader struct{ mock.Mock }

func (m *mockProductReader) GetByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.Product)
	return p, args.Error(1)
}

type recordingNotifier struct {
	called        bool
	customerEmail string
	items         []model.OrderItem
}

func (n *recordingNotifier) OrderPlaced(ctx context.Context, customerEmail string, order *model.Order, items []model.OrderItem) {
	n.called = true
	n.customerEmail = customerEmail
	n.items = items
}

func cartFixture() []model.CartItem {
	return []model.CartItem{
		{ProductID: "p1", Name: "Pork Chops 500g", Price: 120, Quantity: 2, Subtotal: 240},
		{ProductID: "p2", Name: "Boerewors 1kg", Price: 80, Quantity: 1, Subtotal: 80},
	}
}

func TestGetComputesTax(t *testing.T) {
	repo := &mockCartStore{}
	repo.On("ListByUser", mock.Anything, "u1").Return(cartFixture(), nil)

	svc := NewCartService(repo, nil, nil, nil)
	cart, err := svc.Get(context.Background(), "u1")

	require.NoError(t, err)
	assert.InDelta(t, 320.0, cart.Subtotal, 0.001)
	assert.InDelta(t, 48.0, cart.Tax, 0.001) // 15% of 320
	assert.InDelta(t, 368.0, cart.Total, 0.001)
}

func TestGetEmptyCart(t *testing.T) {
	repo := &mockCartStore{}
	repo.On("ListByUser", mock.Anything, "u1").Return(nil, nil)

	svc := NewCartService(repo, nil, nil, nil)
	cart, err := svc.Get(context.Background(), "u1")

	require.NoError(t, err)
	assert.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Total)
}

func TestAddDefaultsQuantity(t *testing.T) {
	repo := &mockCartStore{}
	products := &mockProductReader{}
	products.On("GetByID", mock.Anything, "p1").Return(&model.Product{ID: "p1", Stock: 3}, nil)
	repo.On("AddOrIncrement", mock.Anything, "u1", "p1", 1).Return(nil)

	svc := NewCartService(repo, nil, products, nil)
	require.NoError(t, svc.Add(context.Background(), "u1", "p1", 0))
	repo.AssertCalled(t, "AddOrIncrement", mock.Anything, "u1", "p1", 1)
}

func TestAddOutOfStock(t *testing.T) {
	repo := &mockCartStore{}
	products := &mockProductReader{}
	products.On("GetByID", mock.Anything, "p1").Return(&model.Product{ID: "p1", Stock: 0}, nil)

	svc := NewCartService(repo, nil, products, nil)
	err := svc.Add(context.Background(), "u1", "p1", 1)

	require.Error(t, err)
	repo.AssertNotCalled(t, "AddOrIncrement", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateRejectsNonPositiveQuantity(t *testing.T) {
	svc := NewCartService(&mockCartStore{}, nil, nil, nil)
	assert.Error(t, svc.Update(context.Background(), "u1", "p1", 0))
	assert.Error(t, svc.Update(context.Background(), "u1", "p1", -2))
}

func TestCheckoutEmptyCart(t *testing.T) {
	repo := &mockCartStore{}
	repo.On("ListByUser", mock.Anything, "u1").Return(nil, nil)

	svc := NewCartService(repo, &mockCheckoutStore{}, nil, nil)
	_, err := svc.Checkout(context.Background(), "u1", "a@x.com", "123", "farm road")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cart is empty")
}

func TestCheckoutTotalsAndNotification(t *testing.T) {
	items := cartFixture()
	repo := &mockCartStore{}
	repo.On("ListByUser", mock.Anything, "u1").Return(items, nil)

	orders := &mockCheckoutStore{}
	orders.On("CreateFromCart", mock.Anything, "u1", items, mock.AnythingOfType("float64"), "123", "farm road").
		Return(&model.Order{ID: "o1", UserID: "u1", Total: 368, Status: "pending"}, nil)

	notifier := &recordingNotifier{}

	svc := NewCartService(repo, orders, nil, notifier)
	order, err := svc.Checkout(context.Background(), "u1", "a@x.com", "123", "farm road")

	require.NoError(t, err)
	assert.Equal(t, "o1", order.ID)

	// total passed to the store is subtotal + 15% tax
	call := orders.Calls[0]
	assert.InDelta(t, 368.0, call.Arguments.Get(3).(float64), 0.001)

	require.True(t, notifier.called)
	assert.Equal(t, "a@x.com", notifier.customerEmail)
	require.Len(t, notifier.items, 2)
	assert.Equal(t, "o1", notifier.items[0].OrderID)
}

func TestCheckoutStoreFailureSkipsNotification(t *testing.T) {
	repo := &mockCartStore{}
	repo.On("ListByUser", mock.Anything, "u1").Return(cartFixture(), nil)

	orders := &mockCheckoutStore{}
	orders.On("CreateFromCart", mock.Anything, "u1", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, assert.AnError)

	notifier := &recordingNotifier{}
	svc := NewCartService(repo, orders, nil, notifier)

	_, err := svc.Checkout(context.Background(), "u1", "a@x.com", "123", "farm road")
	require.Error(t, err)
	assert.False(t, notifier.called)
}
