package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/dukaan/app/models"
	"github.com/shashiranjanraj/dukaan/app/repositories"
	"github.com/shashiranjanraj/dukaan/pkg/logger"
)

// CheckoutService covers the three-call checkout sequence: save a cart
// snapshot, save a payment record, then link both into an order. The calls
// are independent requests with no transaction across them; nothing checks
// that they belong to the same logical purchase beyond the client invoking
// them in order. If order creation fails, the cart and payment documents
// stay behind as orphans; they are logged, not cleaned up.
type CheckoutService struct {
	carts    repositories.CartRepository
	payments repositories.PaymentRepository
	orders   repositories.OrderRepository
	now      func() time.Time
}

func NewCheckoutService(
	carts repositories.CartRepository,
	payments repositories.PaymentRepository,
	orders repositories.OrderRepository,
) *CheckoutService {
	return &CheckoutService{
		carts:    carts,
		payments: payments,
		orders:   orders,
		now:      time.Now,
	}
}

// SaveCart persists a new cart snapshot and returns its identifier. No
// merging with prior carts happens: two identical calls produce two
// distinct documents.
func (s *CheckoutService) SaveCart(ctx context.Context, username string, items []models.CartItem) (string, error) {
	cart := models.Cart{
		Username:  username,
		Items:     items,
		CreatedAt: s.now().UTC(),
	}
	return s.carts.Insert(ctx, cart)
}

// PaymentInput carries the raw payment-method fields. They are persisted
// verbatim; card format checks happen client-side only.
type PaymentInput struct {
	Username   string
	NameOnCard string
	CardNumber string
	ExpiryDate string
	CVV        string
	Amount     float64
}

// SavePayment persists a payment record and returns its identifier.
func (s *CheckoutService) SavePayment(ctx context.Context, in PaymentInput) (string, error) {
	payment := models.Payment{
		Username:   in.Username,
		NameOnCard: in.NameOnCard,
		CardNumber: in.CardNumber,
		ExpiryDate: in.ExpiryDate,
		CVV:        in.CVV,
		Amount:     in.Amount,
		CreatedAt:  s.now().UTC(),
	}
	return s.payments.Insert(ctx, payment)
}

// PlaceOrder links a previously stored cart and payment into an order with
// status "Pending". The references are taken on trust: no existence or
// ownership check is performed.
func (s *CheckoutService) PlaceOrder(ctx context.Context, username, cartID, paymentID string) (string, error) {
	cartRef, err := primitive.ObjectIDFromHex(cartID)
	if err != nil {
		return "", ErrBadReference
	}
	paymentRef, err := primitive.ObjectIDFromHex(paymentID)
	if err != nil {
		return "", ErrBadReference
	}

	order := models.Order{
		Username:  username,
		Cart:      cartRef,
		Payment:   paymentRef,
		Status:    models.OrderStatusPending,
		CreatedAt: s.now().UTC(),
	}

	id, err := s.orders.Insert(ctx, order)
	if err != nil {
		// The cart and payment documents written earlier in the sequence
		// are now orphaned. There is no compensation step.
		logger.WithCtx(ctx).Warn("order insert failed, cart and payment left orphaned",
			"username", username,
			"cart_id", cartID,
			"payment_id", paymentID,
		)
		return "", err
	}
	return id, nil
}
