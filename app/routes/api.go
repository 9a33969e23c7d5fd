// Package routes registers the API surface on the router.
package routes

import (
	"github.com/shashiranjanraj/dukaan/app/controllers"
	"github.com/shashiranjanraj/dukaan/pkg/router"
)

// RegisterAPI mounts the six JSON endpoints under /api.
func RegisterAPI(r *router.Router, auth *controllers.AuthController, checkout *controllers.CheckoutController) {
	api := r.Group("/api")

	api.Post("/signup", "auth.signup", auth.Signup)
	api.Post("/login", "auth.login", auth.Login)
	api.Get("/user/{username}", "auth.lookup", auth.Lookup)

	api.Post("/cart", "checkout.cart", checkout.SaveCart)
	api.Post("/payment", "checkout.payment", checkout.SavePayment)
	api.Post("/order", "checkout.order", checkout.PlaceOrder)
}
