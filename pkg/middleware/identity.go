package middleware

import (
	"net/http"

	"table-booking/pkg/utils"

	"go.uber.org/zap"
)

// UserIDHeader carries the caller identity. It is trusted as given.
const UserIDHeader = "X-User-ID"

// Identity reads the caller id from X-User-ID and stores it in the request context
func Identity(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(UserIDHeader)
			if raw == "" {
				utils.ResponseUnauthorized(w, "Missing "+UserIDHeader+" header")
				return
			}

			userID, err := utils.ParseID(raw)
			if err != nil {
				logger.Warn("Invalid user id header",
					zap.String("value", raw),
					zap.String("path", r.URL.Path),
				)
				utils.ResponseUnauthorized(w, "Invalid "+UserIDHeader+" header")
				return
			}

			ctx := utils.SetUserContext(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin lets through only callers listed in ADMIN_IDS
func Admin(admins utils.AdminConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if !admins.IsAdmin(userID) {
				logger.Warn("Admin check: non-admin access attempt",
					zap.Int64("user_id", userID),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
