// Package request provides middleware for request identifiers.
// Every request carries an ID, either propagated from the caller via
// X-Request-ID or generated here, so log lines across a request correlate.
package request

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"refdata/pkg/requestcontext"
)

const headerRequestID = "X-Request-ID"

// Middleware ensures the request context carries a request ID and echoes
// it back on the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		ctx := requestcontext.WithRequestID(r.Context(), id)
		w.Header().Set(headerRequestID, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID retrieves the request ID from context.
func GetRequestID(ctx context.Context) string {
	return requestcontext.RequestID(ctx)
}
