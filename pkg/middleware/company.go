package middleware

import (
	"net/http"

	"fleet-rental/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Company middleware resolves the company scope of a request from the
// X-Company-ID header, falling back to the configured default. Every
// availability figure downstream is scoped to it.
func Company(defaultCompanyID string, logger *zap.Logger) func(http.Handler) http.Handler {
	fallback, _ := uuid.Parse(defaultCompanyID)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			companyID := fallback

			if header := r.Header.Get("X-Company-ID"); header != "" {
				parsed, err := uuid.Parse(header)
				if err != nil {
					logger.Warn("Invalid X-Company-ID header", zap.String("value", header))
					utils.ResponseBadRequest(w, "Invalid X-Company-ID header", nil)
					return
				}
				companyID = parsed
			}

			if companyID == uuid.Nil {
				utils.ResponseBadRequest(w, "Missing company scope: set X-Company-ID or configure a default", nil)
				return
			}

			ctx := utils.SetCompanyContext(r.Context(), companyID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
