package testutil

import (
	"context"
	"net/http"
	"time"

	"refdata/pkg/requestcontext"
)

// WithSubject adds an authenticated subject to the request context,
// simulating what the auth middleware does for authenticated requests.
func WithSubject(req *http.Request, subject string) *http.Request {
	ctx := requestcontext.WithSubject(req.Context(), subject)
	return req.WithContext(ctx)
}

// ContextAt returns a context carrying a fixed request time, so domain
// timestamps in tests are deterministic.
func ContextAt(t time.Time) context.Context {
	return requestcontext.WithTime(context.Background(), t)
}
