package middleware

import (
	"net/http"
	"strings"

	"github.com/phrazzld/frequency-api/internal/api/shared"
)

// UserIDHeader carries the caller's user identity. Authentication is handled
// upstream; the API trusts this header and only requires it to be present.
const UserIDHeader = "X-User-ID"

// RequireUserID extracts the user ID from the request header and stores it
// in the context. Requests without a user ID are rejected with 400.
func RequireUserID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(UserIDHeader))
		if userID == "" {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Missing "+UserIDHeader+" header")
			return
		}
		next.ServeHTTP(w, r.WithContext(shared.SetUserID(r.Context(), userID)))
	})
}
