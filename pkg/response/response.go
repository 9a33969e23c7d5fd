// Package response writes the JSON bodies the API speaks: a flat object with
// a human-readable "message" field, plus whatever extra fields the endpoint
// returns (cartId, paymentId, orderId, email, user).
package response

import (
	"encoding/json"
	"net/http"
)

// JSON writes v as the response body with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// Message writes {"message": text} with the given status code.
func Message(w http.ResponseWriter, status int, text string) {
	JSON(w, status, map[string]string{"message": text})
}

// ServerError writes the opaque 500 body. Internal detail is never exposed
// to the client, only logged server-side.
func ServerError(w http.ResponseWriter) {
	Message(w, http.StatusInternalServerError, "Server error.")
}
