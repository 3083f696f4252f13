package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pennywise/client/internal/apiclient"
	"github.com/pennywise/client/internal/logger"
	"github.com/pennywise/client/internal/services"
	"github.com/rs/zerolog"
)

// Correlation echoes the caller's correlation id, or assigns one, and
// attaches it to the request context and logger.
func Correlation(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(apiclient.CorrelationHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(apiclient.CorrelationHeader, id)

			ctx := context.WithValue(r.Context(), correlationIDKey, id)
			ctx = logger.WithContext(ctx, log.With().Str("correlation_id", id).Logger())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CorrelationID returns the id stored by Correlation.
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey).(string)
	return id
}

// Logger adds structured logging to HTTP requests.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		log := logger.FromContext(r.Context())
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", wrapped.statusCode).
			Dur("duration", time.Since(start)).
			Msg("HTTP request")
	})
}

// Recovery turns a panic into a 500 response.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log := logger.FromContext(r.Context())
				log.Error().
					Interface("error", err).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Msg("Panic recovered")

				services.SendErrorResponse(w, "Internal server error", http.StatusInternalServerError, nil)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
