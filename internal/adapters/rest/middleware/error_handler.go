package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/ravosoft/photohub/backend/internal/platform/logger"
)

// maxLoggedBody bounds how much of a JSON body is kept for error logs.
const maxLoggedBody = 4 << 10

var redactedFields = map[string]bool{
	"password":        true,
	"currentPassword": true,
	"newPassword":     true,
	"refreshToken":    true,
}

type reporterKey struct{}

type requestRecord struct {
	reporter *ErrorReporter
	body     []byte
	writer   chimw.WrapResponseWriter
}

// started reports whether part of the response already went out, in which
// case a 500 body can no longer be written cleanly.
func (rec *requestRecord) started() bool {
	return rec.writer != nil && (rec.writer.Status() != 0 || rec.writer.BytesWritten() > 0)
}

// ErrorReporter is the last line of error handling. Handlers hand it every
// error that is not a client error, and it recovers panics. Either way the
// request context is logged and the client sees a bare 500.
type ErrorReporter struct {
	logger logger.Logger
}

func NewErrorReporter(logger logger.Logger) *ErrorReporter {
	return &ErrorReporter{logger: logger}
}

func (e *ErrorReporter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &requestRecord{reporter: e}
		if r.Body != nil && r.Body != http.NoBody && IsJSON(r) {
			head, err := io.ReadAll(io.LimitReader(r.Body, maxLoggedBody))
			if err == nil {
				rec.body = head
				r.Body = replayBody{Reader: io.MultiReader(bytes.NewReader(head), r.Body), Closer: r.Body}
			}
		}
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		rec.writer = ww
		w = ww
		r = r.WithContext(context.WithValue(r.Context(), reporterKey{}, rec))

		defer func() {
			if v := recover(); v != nil {
				if v == http.ErrAbortHandler {
					panic(v)
				}
				e.report(w, r, rec, fmt.Errorf("panic: %v", v), debug.Stack())
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// ReportError logs err with the request context and writes the 500 body.
// Outside ErrorReporter.Middleware it only writes the body.
func ReportError(w http.ResponseWriter, r *http.Request, err error) {
	rec, ok := r.Context().Value(reporterKey{}).(*requestRecord)
	if !ok {
		WriteInternalError(w)
		return
	}
	rec.reporter.report(w, r, rec, err, nil)
}

func (e *ErrorReporter) report(w http.ResponseWriter, r *http.Request, rec *requestRecord, err error, stack []byte) {
	args := []any{
		"method", r.Method,
		"url", r.URL.String(),
		"query", r.URL.Query(),
		"params", routeParams(r),
		"body", loggableBody(rec.body),
		"error", err,
	}
	if id := chimw.GetReqID(r.Context()); id != "" {
		args = append(args, "request_id", id)
	}
	if stack != nil {
		args = append(args, "stack", string(stack))
	}
	if rec.started() {
		args = append(args, "status_sent", rec.writer.Status(), "bytes_sent", rec.writer.BytesWritten())
		e.logger.Error(r.Context(), "request failed after response started", args...)
		return
	}
	e.logger.Error(r.Context(), "request failed", args...)
	WriteInternalError(w)
}

func routeParams(r *http.Request) map[string]string {
	params := map[string]string{}
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return params
	}
	for i, key := range rctx.URLParams.Keys {
		if key == "*" || i >= len(rctx.URLParams.Values) {
			continue
		}
		params[key] = rctx.URLParams.Values[i]
	}
	return params
}

// loggableBody returns the parsed body with secrets masked, or the raw
// prefix when it is not a complete JSON object.
func loggableBody(body []byte) any {
	if len(body) == 0 {
		return nil
	}
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return string(body)
	}
	for k := range fields {
		if redactedFields[k] {
			fields[k] = "[REDACTED]"
		}
	}
	return fields
}

type replayBody struct {
	io.Reader
	io.Closer
}
