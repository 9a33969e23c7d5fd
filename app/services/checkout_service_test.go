package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/dukaan/app/models"
	"github.com/shashiranjanraj/dukaan/app/services"
)

type fakeCartRepo struct {
	mu    sync.Mutex
	carts []models.Cart
}

func (f *fakeCartRepo) Insert(_ context.Context, cart models.Cart) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.carts = append(f.carts, cart)
	return primitive.NewObjectID().Hex(), nil
}

type fakePaymentRepo struct {
	mu       sync.Mutex
	payments []models.Payment
}

func (f *fakePaymentRepo) Insert(_ context.Context, payment models.Payment) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payments = append(f.payments, payment)
	return primitive.NewObjectID().Hex(), nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders []models.Order
	err    error
}

func (f *fakeOrderRepo) Insert(_ context.Context, order models.Order) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.orders = append(f.orders, order)
	return primitive.NewObjectID().Hex(), nil
}

func newCheckoutFixture() (*services.CheckoutService, *fakeCartRepo, *fakePaymentRepo, *fakeOrderRepo) {
	carts := &fakeCartRepo{}
	payments := &fakePaymentRepo{}
	orders := &fakeOrderRepo{}
	return services.NewCheckoutService(carts, payments, orders), carts, payments, orders
}

func TestSaveCartNoMerge(t *testing.T) {
	svc, carts, _, _ := newCheckoutFixture()
	ctx := context.Background()
	items := []models.CartItem{{Name: "Mug", Price: 9.5, Quantity: 2}}

	id1, err := svc.SaveCart(ctx, "alice", items)
	require.NoError(t, err)
	id2, err := svc.SaveCart(ctx, "alice", items)
	require.NoError(t, err)

	// Identical payloads still produce two documents.
	assert.NotEqual(t, id1, id2)
	assert.Len(t, carts.carts, 2)
	assert.Equal(t, "alice", carts.carts[0].Username)
}

func TestSaveCartEmptyItems(t *testing.T) {
	svc, carts, _, _ := newCheckoutFixture()

	id, err := svc.SaveCart(context.Background(), "alice", []models.CartItem{})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	require.Len(t, carts.carts, 1)
	assert.Empty(t, carts.carts[0].Items)
}

func TestSavePayment(t *testing.T) {
	svc, _, payments, _ := newCheckoutFixture()

	id, err := svc.SavePayment(context.Background(), services.PaymentInput{
		Username:   "alice",
		NameOnCard: "Alice A",
		CardNumber: "4111111111111111",
		ExpiryDate: "12/27",
		CVV:        "123",
		Amount:     42.5,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	require.Len(t, payments.payments, 1)
	p := payments.payments[0]
	assert.Equal(t, "alice", p.Username)
	assert.Equal(t, "4111111111111111", p.CardNumber)
	assert.Equal(t, 42.5, p.Amount)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestPlaceOrderPending(t *testing.T) {
	svc, _, _, orders := newCheckoutFixture()
	ctx := context.Background()

	cartID, err := svc.SaveCart(ctx, "alice", []models.CartItem{{Name: "Mug", Price: 9.5, Quantity: 1}})
	require.NoError(t, err)
	paymentID, err := svc.SavePayment(ctx, services.PaymentInput{Username: "alice", Amount: 9.5})
	require.NoError(t, err)

	orderID, err := svc.PlaceOrder(ctx, "alice", cartID, paymentID)
	require.NoError(t, err)
	assert.NotEmpty(t, orderID)

	require.Len(t, orders.orders, 1)
	o := orders.orders[0]
	assert.Equal(t, models.OrderStatusPending, o.Status)
	assert.Equal(t, cartID, o.Cart.Hex())
	assert.Equal(t, paymentID, o.Payment.Hex())
}

func TestPlaceOrderBadReference(t *testing.T) {
	svc, _, _, orders := newCheckoutFixture()
	ctx := context.Background()

	valid := primitive.NewObjectID().Hex()

	_, err := svc.PlaceOrder(ctx, "alice", "not-a-hex-id", valid)
	assert.ErrorIs(t, err, services.ErrBadReference)

	_, err = svc.PlaceOrder(ctx, "alice", valid, "nope")
	assert.ErrorIs(t, err, services.ErrBadReference)

	assert.Empty(t, orders.orders)
}

func TestPlaceOrderInsertFailureLeavesOrphans(t *testing.T) {
	svc, carts, payments, orders := newCheckoutFixture()
	orders.err = errors.New("write concern error")
	ctx := context.Background()

	cartID, err := svc.SaveCart(ctx, "alice", []models.CartItem{{Name: "Mug", Price: 9.5, Quantity: 1}})
	require.NoError(t, err)
	paymentID, err := svc.SavePayment(ctx, services.PaymentInput{Username: "alice", Amount: 9.5})
	require.NoError(t, err)

	_, err = svc.PlaceOrder(ctx, "alice", cartID, paymentID)
	require.Error(t, err)

	// The earlier documents stay behind; there is no compensation.
	assert.Len(t, carts.carts, 1)
	assert.Len(t, payments.payments, 1)
	assert.Empty(t, orders.orders)
}
