// Package logger configures the website's slog loggers and the per-request log line.
//
// Handlers log intermediary events with RequestLogger and attach attributes to the
// final "request completed" line with AddLogAttrs.
package logger

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/lmittmann/tint"
)

type contextKey struct{}

// requestLog is stored in the request context by RequestLogging
type requestLog struct {
	logger *slog.Logger

	mu    sync.Mutex
	attrs []slog.Attr
}

func (l *requestLog) add(attrs []slog.Attr) {
	l.mu.Lock()
	l.attrs = append(l.attrs, attrs...)
	l.mu.Unlock()
}

func (l *requestLog) snapshot() []slog.Attr {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]slog.Attr(nil), l.attrs...)
}

func fromContext(ctx context.Context) *requestLog {
	l, _ := ctx.Value(contextKey{}).(*requestLog)
	return l
}

// AddLogAttrs adds attributes to the request completed log line, e.g. the error code returned by the API.
// It does nothing outside a request handled by RequestLogging.
func AddLogAttrs(ctx context.Context, attrs ...slog.Attr) {
	if l := fromContext(ctx); l != nil {
		l.add(attrs)
	}
}

// RequestLogger returns the logger for the current request (its records carry the request id and component).
// Outside a request handled by RequestLogging the default logger is returned.
func RequestLogger(ctx context.Context) *slog.Logger {
	if l := fromContext(ctx); l != nil {
		return l.logger
	}
	return slog.Default()
}

// StatusLevel is the level used to log a response with the given HTTP status
func StatusLevel(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// ParseLogLevel converts a string log level to slog.Level
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}

// InitLogger creates a logger with the specified log level.
// Uses colourized text for the dev environment, otherwise output is JSON
func InitLogger(logLevel slog.Level, environment string) *slog.Logger {
	if environment == "dev" {
		return slog.New(
			tint.NewHandler(os.Stderr, &tint.Options{
				Level:      logLevel,
				TimeFormat: time.Kitchen,
			}),
		)
	}
	return NewJSONLogger(os.Stdout, logLevel)
}

// NewJSONLogger creates a logger that writes JSON records to w
func NewJSONLogger(w io.Writer, logLevel slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: logLevel}))
}

// path prefixes mapped to the component logged with each request, first match wins
var components = []struct {
	prefix    string
	component string
}{
	{"/auth/", "auth"},
	{"/contact", "contact"},
	{"/static/", "static"},
}

func componentFor(path string) string {
	for _, c := range components {
		if strings.HasPrefix(path, c.prefix) {
			return c.component
		}
	}
	return "site"
}

// RequestLogging logs one line per request when the handler returns.
// Health checks are not logged. Must run after chi's RequestID middleware.
func RequestLogging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/health/") {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			requestID := middleware.GetReqID(r.Context())
			component := componentFor(r.URL.Path)

			rl := &requestLog{
				logger: logger.With(
					slog.String("request_id", requestID),
					slog.String("component", component),
				),
			}

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), contextKey{}, rl)))

			attrs := []slog.Attr{
				slog.String("type", "HTTP"),
				slog.Int("status", ww.Status()),
				slog.String("request_id", requestID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("component", component),
			}
			attrs = append(attrs, rl.snapshot()...)
			attrs = append(attrs,
				slog.Duration("duration", time.Since(start)),
				slog.Int("bytes", ww.BytesWritten()),
			)

			logger.LogAttrs(r.Context(), StatusLevel(ww.Status()), "request completed", attrs...)
		})
	}
}
