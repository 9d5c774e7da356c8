package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"correlativos/pkg/requestcontext"
)

// UserIDHeader carries the acting user's id, set by the authenticating
// reverse proxy in front of this service.
const UserIDHeader = "X-Usuario-Id"

// GetUserID retrieves the acting user's id from the context. Returns 0 when
// the request carried no identity.
func GetUserID(ctx context.Context) int64 {
	return requestcontext.UserID(ctx)
}

// Identity resolves the acting user from the X-Usuario-Id header into the
// request context. A missing header is allowed here: endpoints that need an
// identity enforce it themselves, since POST bodies may carry usuarioId
// explicitly. A malformed header is always rejected.
func Identity(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(UserIDHeader)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || userID <= 0 {
				ctx := r.Context()
				logger.WarnContext(ctx, "malformed user id header",
					"value", raw,
					"request_id", requestcontext.RequestID(ctx),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error":"bad_request","error_description":"X-Usuario-Id must be a positive integer"}`))
				return
			}

			ctx := requestcontext.WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
