package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/mehdi559/poe/internal/logger"
)

// RequestLogger propagates chi's request id into the logging context so
// notification and processing logs can be correlated with a request.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if reqID := middleware.GetReqID(r.Context()); reqID != "" {
			r = r.WithContext(logger.WithRequestID(r.Context(), reqID))
		}
		next.ServeHTTP(w, r)
	})
}
