package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/shashiranjanraj/dukaan/app/services"
	"github.com/shashiranjanraj/dukaan/pkg/bind"
	"github.com/shashiranjanraj/dukaan/pkg/cache"
	"github.com/shashiranjanraj/dukaan/pkg/logger"
	"github.com/shashiranjanraj/dukaan/pkg/response"
	"github.com/shashiranjanraj/dukaan/pkg/router"
)

// AuthController handles signup, login and user lookup.
type AuthController struct {
	auth     *services.AuthService
	cache    *cache.Cache
	cacheTTL time.Duration
}

func NewAuthController(auth *services.AuthService, c *cache.Cache, cacheTTL time.Duration) *AuthController {
	return &AuthController{auth: auth, cache: c, cacheTTL: cacheTTL}
}

// SignupRequest checks presence only. Shape constraints (length, email
// format) are left to the client, so a duplicate username answers 409 even
// when other fields would not survive stricter rules.
type SignupRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Signup registers a new user. The created id is deliberately not returned,
// only a confirmation message.
func (c *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if errs, err := bind.JSON(r, &req); err != nil || len(errs) > 0 {
		response.Message(w, http.StatusBadRequest, "Please provide username, email, and password.")
		return
	}

	err := c.auth.Register(r.Context(), req.Username, req.Email, req.Password)
	switch {
	case errors.Is(err, services.ErrUserConflict):
		response.Message(w, http.StatusConflict, "Username or email already exists.")
	case err != nil:
		logger.WithCtx(r.Context()).Error("signup failed", "error", err)
		response.ServerError(w)
	default:
		response.Message(w, http.StatusCreated, "User registered successfully.")
	}
}

// Login performs a stateless credential check and returns the user's email.
// Failure messaging is identical for unknown usernames and wrong passwords.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if errs, err := bind.JSON(r, &req); err != nil || len(errs) > 0 {
		response.Message(w, http.StatusBadRequest, "Please provide username and password.")
		return
	}

	email, err := c.auth.Authenticate(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		response.Message(w, http.StatusUnauthorized, "Invalid username or password.")
	case err != nil:
		logger.WithCtx(r.Context()).Error("login failed", "error", err)
		response.ServerError(w)
	default:
		// last_login changed; drop any cached profile.
		if err := c.cache.Del(r.Context(), userCacheKey(req.Username)); err != nil {
			logger.WithCtx(r.Context()).Warn("profile cache invalidation failed", "error", err)
		}
		response.JSON(w, http.StatusOK, map[string]string{
			"message": "Login successful.",
			"email":   email,
		})
	}
}

// Lookup returns the public profile for a username, served from the cache
// when warm. The password hash is excluded from the store projection.
func (c *AuthController) Lookup(w http.ResponseWriter, r *http.Request) {
	username := router.Param(r, "username")

	var cached profilePayload
	if c.cache.Get(r.Context(), userCacheKey(username), &cached) {
		response.JSON(w, http.StatusOK, map[string]interface{}{"user": cached})
		return
	}

	profile, err := c.auth.Lookup(r.Context(), username)
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		response.Message(w, http.StatusNotFound, "User not found.")
	case err != nil:
		logger.WithCtx(r.Context()).Error("user lookup failed", "error", err)
		response.ServerError(w)
	default:
		if err := c.cache.Set(r.Context(), userCacheKey(username), profile, c.cacheTTL); err != nil {
			logger.WithCtx(r.Context()).Warn("profile cache write failed", "error", err)
		}
		response.JSON(w, http.StatusOK, map[string]interface{}{"user": profile})
	}
}

// profilePayload mirrors models.Profile for cache round-trips.
type profilePayload struct {
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login"`
}

func userCacheKey(username string) string {
	return "user:" + username
}
