package middleware

import (
	"context"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/ravosoft/photohub/backend/internal/platform/logger"
)

type logEntryKey struct{}

// logEntry lets inner middleware report the caller back to the request log.
type logEntry struct {
	userID uuid.UUID
}

func noteUser(ctx context.Context, userID uuid.UUID) {
	if entry, ok := ctx.Value(logEntryKey{}).(*logEntry); ok {
		entry.userID = userID
	}
}

// RequestLogger logs one line per request once the response is written.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			entry := &logEntry{}
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			r = r.WithContext(context.WithValue(r.Context(), logEntryKey{}, entry))

			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				args := []any{
					"method", r.Method,
					"path", r.URL.Path,
					"status", status,
					"bytes", ww.BytesWritten(),
					"duration", time.Since(start),
					"request_id", chimw.GetReqID(r.Context()),
				}
				if entry.userID != uuid.Nil {
					args = append(args, "user_id", entry.userID)
				}
				if status >= http.StatusInternalServerError {
					log.Warn(r.Context(), "request completed", args...)
					return
				}
				log.Info(r.Context(), "request completed", args...)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
