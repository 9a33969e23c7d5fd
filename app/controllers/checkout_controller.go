package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/dukaan/app/models"
	"github.com/shashiranjanraj/dukaan/app/services"
	"github.com/shashiranjanraj/dukaan/pkg/bind"
	"github.com/shashiranjanraj/dukaan/pkg/logger"
	"github.com/shashiranjanraj/dukaan/pkg/response"
)

// CheckoutController handles the three checkout endpoints. Each call is an
// independent request; the client drives the cart → payment → order order.
type CheckoutController struct {
	checkout *services.CheckoutService
}

func NewCheckoutController(checkout *services.CheckoutService) *CheckoutController {
	return &CheckoutController{checkout: checkout}
}

type SaveCartRequest struct {
	Username string            `json:"username" validate:"required"`
	Items    []models.CartItem `json:"items" validate:"required"`
}

type SavePaymentRequest struct {
	Username   string  `json:"username" validate:"required"`
	NameOnCard string  `json:"nameOnCard" validate:"required"`
	CardNumber string  `json:"cardNumber" validate:"required"`
	ExpiryDate string  `json:"expiryDate" validate:"required"`
	CVV        string  `json:"cvv" validate:"required"`
	Amount     float64 `json:"amount" validate:"required"`
}

type PlaceOrderRequest struct {
	Username  string `json:"username" validate:"required"`
	CartID    string `json:"cartId" validate:"required"`
	PaymentID string `json:"paymentId" validate:"required"`
}

// SaveCart persists a cart snapshot and returns the generated cartId.
func (c *CheckoutController) SaveCart(w http.ResponseWriter, r *http.Request) {
	var req SaveCartRequest
	if errs, err := bind.JSON(r, &req); err != nil || len(errs) > 0 {
		response.Message(w, http.StatusBadRequest, "Invalid cart data.")
		return
	}

	cartID, err := c.checkout.SaveCart(r.Context(), req.Username, req.Items)
	if err != nil {
		logger.WithCtx(r.Context()).Error("cart save failed", "error", err)
		response.ServerError(w)
		return
	}

	response.JSON(w, http.StatusCreated, map[string]string{
		"message": "Cart saved successfully.",
		"cartId":  cartID,
	})
}

// SavePayment persists the payment fields verbatim and returns the
// generated paymentId.
func (c *CheckoutController) SavePayment(w http.ResponseWriter, r *http.Request) {
	var req SavePaymentRequest
	if errs, err := bind.JSON(r, &req); err != nil || len(errs) > 0 {
		response.Message(w, http.StatusBadRequest, "Invalid payment data.")
		return
	}

	paymentID, err := c.checkout.SavePayment(r.Context(), services.PaymentInput{
		Username:   req.Username,
		NameOnCard: req.NameOnCard,
		CardNumber: req.CardNumber,
		ExpiryDate: req.ExpiryDate,
		CVV:        req.CVV,
		Amount:     req.Amount,
	})
	if err != nil {
		logger.WithCtx(r.Context()).Error("payment save failed", "error", err)
		response.ServerError(w)
		return
	}

	response.JSON(w, http.StatusCreated, map[string]string{
		"message":   "Payment saved successfully.",
		"paymentId": paymentID,
	})
}

// PlaceOrder links a cart and a payment into a pending order and returns
// the generated orderId.
func (c *CheckoutController) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest
	if errs, err := bind.JSON(r, &req); err != nil || len(errs) > 0 {
		response.Message(w, http.StatusBadRequest, "Invalid order data.")
		return
	}

	orderID, err := c.checkout.PlaceOrder(r.Context(), req.Username, req.CartID, req.PaymentID)
	switch {
	case errors.Is(err, services.ErrBadReference):
		response.Message(w, http.StatusBadRequest, "Invalid order data.")
	case err != nil:
		logger.WithCtx(r.Context()).Error("order create failed", "error", err)
		response.ServerError(w)
	default:
		response.JSON(w, http.StatusCreated, map[string]string{
			"message": "Order placed successfully.",
			"orderId": orderID,
		})
	}
}
