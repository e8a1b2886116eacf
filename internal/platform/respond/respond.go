// Package respond renders every error the API produces, whether raised by a
// handler, by huma's request validation or by the router, as one JSON (or
// CBOR) body:
//
//	{"status":"BAD_REQUEST","timestamp":"2024-01-15T10:30:00.000Z","message":"...","errors":{"email":"..."}}
package respond

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/danielgtaylor/huma/v2"
	"github.com/fxamacker/cbor/v2"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	applog "github.com/janisto/huma-users/internal/platform/logging"
	"github.com/janisto/huma-users/internal/platform/timeutil"
)

const (
	msgNotFound         = "resource not found"
	msgMethodNotAllowed = "method not allowed"
	msgInternal         = "internal server error"
	msgValidation       = "Validation error"
)

// ErrorResponse is the error body shared by all endpoints.
type ErrorResponse struct {
	Status    string            `json:"status"           doc:"HTTP status name"                 example:"BAD_REQUEST"`
	Timestamp timeutil.Time     `json:"timestamp"        doc:"Time the error was produced"`
	Message   string            `json:"message"          doc:"Human readable description"       example:"Validation error"`
	Errors    map[string]string `json:"errors,omitempty" doc:"Per-field messages for validation failures"`

	code int
}

// Error implements error.
func (e *ErrorResponse) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError.
func (e *ErrorResponse) GetStatus() int {
	return e.code
}

// NewError builds an ErrorResponse for status. An empty message falls back to
// the status text.
func NewError(status int, message string, fields map[string]string) *ErrorResponse {
	if len(fields) == 0 {
		fields = nil
	}
	return &ErrorResponse{
		Status:    statusCodeName(status),
		Timestamp: timeutil.Now(),
		Message:   messageOrDefault(status, message),
		Errors:    fields,
		code:      status,
	}
}

// ValidationFailed returns a 400 error carrying per-field messages.
func ValidationFailed(fields map[string]string) *ErrorResponse {
	return NewError(http.StatusBadRequest, msgValidation, fields)
}

var installOnce sync.Once

// Install makes huma build ErrorResponse values for its own errors. Huma's
// request validation failures (422) are reported as 400 with the offending
// locations in the errors map. Call before registering operations.
func Install() {
	installOnce.Do(func() {
		huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
			return newStatusError(context.Background(), status, msg, errs)
		}
		huma.NewErrorWithContext = func(hctx huma.Context, status int, msg string, errs ...error) huma.StatusError {
			ctx := context.Background()
			if hctx != nil {
				ctx = hctx.Context()
			}
			return newStatusError(ctx, status, msg, errs)
		}
	})
}

func newStatusError(ctx context.Context, status int, msg string, errs []error) huma.StatusError {
	fields := fieldsFromErrors(errs)
	if status == http.StatusUnprocessableEntity {
		status = http.StatusBadRequest
		msg = msgValidation
	}
	e := NewError(status, msg, fields)
	// huma builds a zero-status error while registering operations.
	if status > 0 {
		logWithStatus(ctx, status, e.Message, errors.Join(errs...), fields)
	}
	return e
}

// fieldsFromErrors maps huma error details to field -> message. Locations like
// "body.email" or "query.fromDate" are reduced to the field name.
func fieldsFromErrors(errs []error) map[string]string {
	fields := make(map[string]string)
	for _, err := range errs {
		if err == nil {
			continue
		}
		var detailer huma.ErrorDetailer
		if !errors.As(err, &detailer) {
			continue
		}
		detail := detailer.ErrorDetail()
		if detail == nil {
			continue
		}
		key := fieldName(detail.Location)
		if _, seen := fields[key]; !seen {
			fields[key] = detail.Message
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func fieldName(location string) string {
	for _, prefix := range []string{"body.", "query.", "path.", "header."} {
		if after, ok := strings.CutPrefix(location, prefix); ok {
			return after
		}
	}
	if location == "" {
		return "body"
	}
	return location
}

// Write renders body with status, encoding CBOR when the client asks for it.
func Write(w http.ResponseWriter, r *http.Request, status int, body any) error {
	if acceptsCBOR(r) {
		data, err := cbor.Marshal(body)
		if err != nil {
			return err
		}
		w.Header().Set("Content-Type", "application/cbor")
		w.WriteHeader(status)
		_, err = w.Write(data)
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(body)
}

// WriteError logs and renders an ErrorResponse outside of huma.
func WriteError(w http.ResponseWriter, r *http.Request, status int, msg string, cause error) {
	e := NewError(status, msg, nil)
	logWithStatus(r.Context(), status, e.Message, cause, nil)
	if err := Write(w, r, status, e); err != nil {
		applog.LogError(r.Context(), "failed to render error response", err)
	}
}

func acceptsCBOR(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType, _, _ := strings.Cut(strings.TrimSpace(part), ";")
		if strings.EqualFold(strings.TrimSpace(mediaType), "application/cbor") {
			return true
		}
	}
	return false
}

// NotFoundHandler renders unknown routes as 404.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusNotFound, msgNotFound, nil)
	}
}

// MethodNotAllowedHandler renders 405 with an Allow header listing the methods
// the matched path supports.
func MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if allow := allowedMethods(r); len(allow) > 0 {
			w.Header().Set("Allow", strings.Join(allow, ", "))
		}
		WriteError(w, r, http.StatusMethodNotAllowed, msgMethodNotAllowed, nil)
	}
}

// responseWriter records whether the header has been sent.
type responseWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(status int) {
	rw.wroteHeader = true
	rw.ResponseWriter.WriteHeader(status)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// Recoverer converts panics into 500 responses. http.ErrAbortHandler is
// re-panicked so net/http can abort the connection, and nothing is written
// when the handler already started its response.
func Recoverer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := &responseWriter{ResponseWriter: w}
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}
				err := fmt.Errorf("panic: %v\n%s", rec, debug.Stack())
				if rw.wroteHeader {
					applog.LogError(r.Context(), "panic after response started", err)
					return
				}
				WriteError(rw, r, http.StatusInternalServerError, msgInternal, err)
			}()
			next.ServeHTTP(rw, r)
		})
	}
}

// allowedMethods inspects chi's routing context to discover allowed methods.
func allowedMethods(r *http.Request) []string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || rctx.Routes == nil {
		return nil
	}
	routePath := rctx.RoutePath
	if routePath == "" {
		routePath = r.URL.Path
		if r.URL.RawPath != "" {
			routePath = r.URL.RawPath
		}
		if routePath == "" {
			routePath = "/"
		}
	}
	var allowed []string
	for _, method := range []string{
		http.MethodGet,
		http.MethodHead,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
		http.MethodOptions,
	} {
		if rctx.Routes.Match(chi.NewRouteContext(), method, routePath) {
			allowed = append(allowed, method)
		}
	}
	return allowed
}

// statusCodeName turns 400 into "BAD_REQUEST".
func statusCodeName(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return fmt.Sprintf("HTTP_%d", status)
	}
	name := strings.ToUpper(strings.ReplaceAll(text, " ", "_"))
	name = strings.ReplaceAll(name, "-", "_")
	return strings.ReplaceAll(name, "'", "")
}

func messageOrDefault(status int, msg string) string {
	if strings.TrimSpace(msg) != "" {
		return msg
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", status)
}

func logWithStatus(ctx context.Context, status int, msg string, err error, fields map[string]string) {
	zf := []zap.Field{zap.Int("status", status)}
	if len(fields) > 0 {
		zf = append(zf, zap.Any("errors", fields))
	}
	switch {
	case status >= 500:
		applog.LogError(ctx, msg, err, zf...)
	case err != nil:
		applog.LogWarn(ctx, msg, append(zf, zap.Error(err))...)
	default:
		applog.LogWarn(ctx, msg, zf...)
	}
}
