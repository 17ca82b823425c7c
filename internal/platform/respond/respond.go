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
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	applog "github.com/janisto/profile-print/internal/platform/logging"
)

const (
	// CodeValidationFailed marks a 422 carrying per-field issues.
	CodeValidationFailed = "VALIDATION_FAILED"

	codeNotFound          = "NOT_FOUND"
	msgNotFound           = "resource not found"
	codeMethodNotAllowed  = "METHOD_NOT_ALLOWED"
	msgMethodNotAllowed   = "method not allowed"
	codeInternalServerErr = "INTERNAL_SERVER_ERROR"
	msgInternalServerErr  = "internal server error"
)

var installOnce sync.Once

// Install makes huma use the shared envelope and logging for every error response.
func Install() {
	installOnce.Do(func() {
		huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
			return statusError(context.Background(), status, statusCodeName(status), messageOrDefault(status, msg), issuesFromErrors(errs))
		}
		huma.NewErrorWithContext = func(hctx huma.Context, status int, msg string, errs ...error) huma.StatusError {
			goCtx := context.Background()
			if hctx != nil {
				goCtx = hctx.Context()
			}
			return statusError(goCtx, status, statusCodeName(status), messageOrDefault(status, msg), issuesFromErrors(errs), errs...)
		}
	})
}

// Error returns a status error with the shared envelope and logging semantics.
func Error(ctx context.Context, status int, code, msg string, issues []FieldIssue, errs ...error) huma.StatusError {
	if code == "" {
		code = statusCodeName(status)
	}
	return statusError(ctx, status, code, messageOrDefault(status, msg), issues, errs...)
}

// Validation returns a 422 listing one issue per rejected field.
func Validation(ctx context.Context, issues []FieldIssue) huma.StatusError {
	return Error(ctx, http.StatusUnprocessableEntity, CodeValidationFailed, "validation failed", issues)
}

// Write serializes an envelope directly to the ResponseWriter.
func Write[T any](w http.ResponseWriter, status int, env Envelope[T]) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(env)
}

// WriteError renders an error envelope, logging as needed.
func WriteError(w http.ResponseWriter, ctx context.Context, status int, code, msg string, issues []FieldIssue, errs ...error) error {
	se := Error(ctx, status, code, msg, issues, errs...)
	env, ok := se.(*statusEnvelopeError)
	if !ok {
		return se
	}
	return Write(w, se.GetStatus(), env.Envelope)
}

// NotFoundHandler emits an envelope 404 response.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := WriteError(w, r.Context(), http.StatusNotFound, codeNotFound, msgNotFound, nil); err != nil {
			applog.LogError(r.Context(), "failed to render not found", err)
		}
	}
}

// MethodNotAllowedHandler emits an envelope 405 response with an Allow header.
func MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if allow := allowedMethods(r); len(allow) > 0 {
			w.Header().Set("Allow", strings.Join(allow, ", "))
		}
		if err := WriteError(w, r.Context(), http.StatusMethodNotAllowed, codeMethodNotAllowed, msgMethodNotAllowed, nil); err != nil {
			applog.LogError(r.Context(), "failed to render method not allowed", err)
		}
	}
}

// Recoverer converts panics into structured 500 responses.
func Recoverer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("%v", rec)
				}
				err = fmt.Errorf("%w\n%s", err, debug.Stack())
				if writeErr := WriteError(w, r.Context(), http.StatusInternalServerError, codeInternalServerErr, msgInternalServerErr, nil, err); writeErr != nil {
					applog.LogError(r.Context(), "failed to render internal error", writeErr)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// allowedMethods inspects chi's routing tree to discover methods registered for the path.
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

type statusEnvelopeError struct {
	Envelope[struct{}]
	status int
}

func (e *statusEnvelopeError) Error() string {
	if e.Envelope.Error != nil && e.Envelope.Error.Message != "" {
		return e.Envelope.Error.Message
	}
	return http.StatusText(e.status)
}

func (e *statusEnvelopeError) GetStatus() int {
	return e.status
}

func statusError(ctx context.Context, status int, code, msg string, issues []FieldIssue, errs ...error) huma.StatusError {
	fields := []zap.Field{
		zap.Int("status", status),
		zap.String("code", code),
	}
	if len(issues) > 0 {
		fields = append(fields, zap.Any("details", issues))
	}
	logWithStatus(ctx, status, msg, errors.Join(errs...), fields...)
	env := NewErrorEnvelope[struct{}](applog.TraceIDFromContext(ctx), code, msg, issues)
	return &statusEnvelopeError{Envelope: env, status: status}
}

func issuesFromErrors(errs []error) []FieldIssue {
	var issues []FieldIssue
	for _, err := range errs {
		if err == nil {
			continue
		}
		issue := FieldIssue{Issue: err.Error()}
		var detailer huma.ErrorDetailer
		if errors.As(err, &detailer) {
			if detail := detailer.ErrorDetail(); detail != nil {
				issue.Issue = detail.Message
				issue.Field = detail.Location
			}
		}
		issues = append(issues, issue)
	}
	return issues
}

func statusCodeName(status int) string {
	name := strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
	name = strings.ReplaceAll(name, "-", "_")
	if name == "" {
		return fmt.Sprintf("HTTP_%d", status)
	}
	return name
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

func logWithStatus(ctx context.Context, status int, msg string, err error, fields ...zap.Field) {
	switch {
	case status >= 500:
		applog.LogError(ctx, msg, err, fields...)
	case status >= 400:
		if err != nil {
			fields = append(fields, zap.Error(err))
		}
		applog.LogWarn(ctx, msg, fields...)
	default:
		applog.LogInfo(ctx, msg, fields...)
	}
}
