package httputil

import (
	"context"
	"net/http"
)

// unexported key type keeps request-context values collision free
type contextKey string

const userIDKey contextKey = "userID"

// WithUserID returns a request whose context carries the authenticated
// user's ID. The auth middleware sets it after token verification.
func WithUserID(r *http.Request, userID string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userIDKey, userID))
}

// GetUserID reads the authenticated user ID, or "" on unauthenticated
// requests.
func GetUserID(r *http.Request) string {
	userID, _ := r.Context().Value(userIDKey).(string)
	return userID
}
