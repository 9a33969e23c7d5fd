package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/shashiranjanraj/dukaan/app/controllers"
	"github.com/shashiranjanraj/dukaan/app/models"
	"github.com/shashiranjanraj/dukaan/app/repositories"
	"github.com/shashiranjanraj/dukaan/app/routes"
	"github.com/shashiranjanraj/dukaan/app/services"
	"github.com/shashiranjanraj/dukaan/pkg/router"
)

// In-memory repositories backing the full request path. The API is
// exercised through the real router, binding and controllers; only the
// store is replaced.

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]models.User
}

func (m *memUserRepo) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUserRepo) Insert(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	m.users[user.Username] = *user
	return nil
}

func (m *memUserRepo) FindByUsername(_ context.Context, username string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[username]
	if !ok {
		return models.User{}, repositories.ErrNotFound
	}
	return u, nil
}

func (m *memUserRepo) UpdateLastLogin(_ context.Context, username string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[username]
	if !ok {
		return repositories.ErrNotFound
	}
	u.LastLogin = &at
	m.users[username] = u
	return nil
}

func (m *memUserRepo) Profile(_ context.Context, username string) (models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[username]
	if !ok {
		return models.Profile{}, repositories.ErrNotFound
	}
	return models.Profile{
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
	}, nil
}

type memCartRepo struct {
	mu    sync.Mutex
	carts []models.Cart
}

func (m *memCartRepo) Insert(_ context.Context, cart models.Cart) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts = append(m.carts, cart)
	return primitive.NewObjectID().Hex(), nil
}

type memPaymentRepo struct {
	mu       sync.Mutex
	payments []models.Payment
}

func (m *memPaymentRepo) Insert(_ context.Context, payment models.Payment) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments = append(m.payments, payment)
	return primitive.NewObjectID().Hex(), nil
}

type memOrderRepo struct {
	mu     sync.Mutex
	orders []models.Order
}

func (m *memOrderRepo) Insert(_ context.Context, order models.Order) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append(m.orders, order)
	return primitive.NewObjectID().Hex(), nil
}

type apiFixture struct {
	handler  http.Handler
	users    *memUserRepo
	carts    *memCartRepo
	payments *memPaymentRepo
	orders   *memOrderRepo
}

func newAPIFixture() *apiFixture {
	users := &memUserRepo{users: make(map[string]models.User)}
	carts := &memCartRepo{}
	payments := &memPaymentRepo{}
	orders := &memOrderRepo{}

	auth := controllers.NewAuthController(
		services.NewAuthService(users, bcrypt.MinCost),
		nil, // no cache in tests; the cache degrades to a no-op
		time.Minute,
	)
	checkout := controllers.NewCheckoutController(
		services.NewCheckoutService(carts, payments, orders),
	)

	r := router.New()
	routes.RegisterAPI(r, auth, checkout)

	return &apiFixture{
		handler:  r.Handler(),
		users:    users,
		carts:    carts,
		payments: payments,
		orders:   orders,
	}
}

func (f *apiFixture) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	var parsed map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	}
	return rec, parsed
}

func TestSignupThenDuplicate(t *testing.T) {
	f := newAPIFixture()
	payload := map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "secret1",
	}

	rec, body := f.do(t, http.MethodPost, "/api/signup", payload)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "User registered successfully.", body["message"])

	rec, body = f.do(t, http.MethodPost, "/api/signup", payload)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Username or email already exists.", body["message"])

	// Same email under a new username conflicts too.
	rec, body = f.do(t, http.MethodPost, "/api/signup", map[string]string{
		"username": "alice2",
		"email":    "alice@example.com",
		"password": "secret1",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Username or email already exists.", body["message"])
}

func TestSignupDuplicateWinsOverWeakFields(t *testing.T) {
	f := newAPIFixture()
	_, _ = f.do(t, http.MethodPost, "/api/signup", map[string]string{
		"username": "alice",
		"email":    "alice@x.com",
		"password": "secret1",
	})

	// A duplicate username must answer conflict even when the password is
	// short; only absent fields are a 400.
	rec, body := f.do(t, http.MethodPost, "/api/signup", map[string]string{
		"username": "alice",
		"email":    "other@x.com",
		"password": "pw2",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Username or email already exists.", body["message"])
}

func TestSignupMissingFields(t *testing.T) {
	f := newAPIFixture()

	rec, body := f.do(t, http.MethodPost, "/api/signup", map[string]string{
		"username": "alice",
		"password": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Please provide username, email, and password.", body["message"])
	assert.Empty(t, f.users.users)
}

func TestLogin(t *testing.T) {
	f := newAPIFixture()
	_, _ = f.do(t, http.MethodPost, "/api/signup", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "secret1",
	})

	rec, body := f.do(t, http.MethodPost, "/api/login", map[string]string{
		"username": "alice",
		"password": "secret1",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Login successful.", body["message"])
	assert.Equal(t, "alice@example.com", body["email"])

	// Wrong password and unknown username map to the same answer.
	rec, body = f.do(t, http.MethodPost, "/api/login", map[string]string{
		"username": "alice",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid username or password."}`, rec.Body.String())

	rec, _ = f.do(t, http.MethodPost, "/api/login", map[string]string{
		"username": "nobody",
		"password": "secret1",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid username or password."}`, rec.Body.String())
}

func TestLoginMissingFields(t *testing.T) {
	f := newAPIFixture()

	rec, body := f.do(t, http.MethodPost, "/api/login", map[string]string{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Please provide username and password.", body["message"])
}

func TestLookup(t *testing.T) {
	f := newAPIFixture()
	_, _ = f.do(t, http.MethodPost, "/api/signup", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "secret1",
	})

	rec, body := f.do(t, http.MethodGet, "/api/user/alice", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "alice@example.com", user["email"])
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "secret1")

	rec, body = f.do(t, http.MethodGet, "/api/user/nobody", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found.", body["message"])
}

func TestCheckoutSequence(t *testing.T) {
	f := newAPIFixture()

	rec, body := f.do(t, http.MethodPost, "/api/cart", map[string]interface{}{
		"username": "alice",
		"items": []map[string]interface{}{
			{"name": "Mug", "price": 9.5, "quantity": 2},
		},
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Cart saved successfully.", body["message"])
	cartID, _ := body["cartId"].(string)
	require.NotEmpty(t, cartID)

	rec, body = f.do(t, http.MethodPost, "/api/payment", map[string]interface{}{
		"username":   "alice",
		"nameOnCard": "Alice A",
		"cardNumber": "4111111111111111",
		"expiryDate": "12/27",
		"cvv":        "123",
		"amount":     19.0,
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Payment saved successfully.", body["message"])
	paymentID, _ := body["paymentId"].(string)
	require.NotEmpty(t, paymentID)

	rec, body = f.do(t, http.MethodPost, "/api/order", map[string]interface{}{
		"username":  "alice",
		"cartId":    cartID,
		"paymentId": paymentID,
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Order placed successfully.", body["message"])
	assert.NotEmpty(t, body["orderId"])

	require.Len(t, f.orders.orders, 1)
	assert.Equal(t, models.OrderStatusPending, f.orders.orders[0].Status)
	assert.Equal(t, cartID, f.orders.orders[0].Cart.Hex())
}

func TestCartRepeatSavesAreDistinct(t *testing.T) {
	f := newAPIFixture()
	payload := map[string]interface{}{
		"username": "alice",
		"items": []map[string]interface{}{
			{"name": "Mug", "price": 9.5, "quantity": 1},
		},
	}

	_, body1 := f.do(t, http.MethodPost, "/api/cart", payload)
	_, body2 := f.do(t, http.MethodPost, "/api/cart", payload)

	assert.NotEqual(t, body1["cartId"], body2["cartId"])
	assert.Len(t, f.carts.carts, 2)
}

func TestCartMissingItems(t *testing.T) {
	f := newAPIFixture()

	rec, body := f.do(t, http.MethodPost, "/api/cart", map[string]interface{}{
		"username": "alice",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid cart data.", body["message"])
	assert.Empty(t, f.carts.carts)

	// An explicitly empty list is a present field and passes.
	rec, _ = f.do(t, http.MethodPost, "/api/cart", map[string]interface{}{
		"username": "alice",
		"items":    []map[string]interface{}{},
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestPaymentZeroAmountRejected(t *testing.T) {
	f := newAPIFixture()

	rec, body := f.do(t, http.MethodPost, "/api/payment", map[string]interface{}{
		"username":   "alice",
		"nameOnCard": "Alice A",
		"cardNumber": "4111111111111111",
		"expiryDate": "12/27",
		"cvv":        "123",
		"amount":     0,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid payment data.", body["message"])
	assert.Empty(t, f.payments.payments)
}

func TestPaymentStringAmountRejected(t *testing.T) {
	f := newAPIFixture()

	// Amount is a number on the wire; a quoted value is a decode error,
	// not coerced.
	rec, body := f.do(t, http.MethodPost, "/api/payment", map[string]interface{}{
		"username":   "alice",
		"nameOnCard": "Alice A",
		"cardNumber": "4111111111111111",
		"expiryDate": "12/27",
		"cvv":        "123",
		"amount":     "19.98",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid payment data.", body["message"])
	assert.Empty(t, f.payments.payments)
}

func TestOrderMissingFieldPersistsNothing(t *testing.T) {
	f := newAPIFixture()

	rec, body := f.do(t, http.MethodPost, "/api/order", map[string]interface{}{
		"username": "alice",
		"cartId":   primitive.NewObjectID().Hex(),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid order data.", body["message"])
	assert.Empty(t, f.orders.orders)
}

func TestOrderMalformedReference(t *testing.T) {
	f := newAPIFixture()

	rec, body := f.do(t, http.MethodPost, "/api/order", map[string]interface{}{
		"username":  "alice",
		"cartId":    "not-an-object-id",
		"paymentId": primitive.NewObjectID().Hex(),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid order data.", body["message"])
	assert.Empty(t, f.orders.orders)
}

func TestMalformedJSONBody(t *testing.T) {
	f := newAPIFixture()

	req := httptest.NewRequest(http.MethodPost, "/api/signup", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
