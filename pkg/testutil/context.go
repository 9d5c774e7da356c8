package testutil

import (
	"net/http"
	"time"

	"correlativos/pkg/requestcontext"
)

// WithUser adds the acting user's id to the request context, simulating what
// the identity middleware would do for a request carrying X-Usuario-Id.
func WithUser(req *http.Request, userID int64) *http.Request {
	ctx := requestcontext.WithUserID(req.Context(), userID)
	return req.WithContext(ctx)
}

// WithRequestTime pins the request clock, simulating the request time
// middleware. Useful for exercising year rollover without waiting a year.
func WithRequestTime(req *http.Request, t time.Time) *http.Request {
	ctx := requestcontext.WithTime(req.Context(), t)
	return req.WithContext(ctx)
}

// WithRequestID adds a request id to the request context.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	ctx := requestcontext.WithRequestID(req.Context(), requestID)
	return req.WithContext(ctx)
}
