// Package logger provides structured logging infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// Context key types for storing values in context
type contextKey string

const (
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"
	// WidgetIDKey is the context key for the widget instance ID
	WidgetIDKey contextKey = "widget_id"
)

// Logger wraps slog.Logger for structured logging
type Logger struct {
	*slog.Logger
}

// New creates a new logger based on environment
func New(env string) *Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	if strings.EqualFold(env, "development") {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithContext returns a logger with context values extracted.
// Supports request_id and widget_id from context.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}

	newLogger := l

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		newLogger = newLogger.WithRequestID(requestID)
	}

	if widgetID, ok := ctx.Value(WidgetIDKey).(string); ok && widgetID != "" {
		newLogger = newLogger.WithWidgetID(widgetID)
	}

	return newLogger
}

// WithRequestID returns a logger with request ID
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{
		Logger: l.With(slog.String("request_id", requestID)),
	}
}

// WithWidgetID returns a logger with widget instance ID
func (l *Logger) WithWidgetID(widgetID string) *Logger {
	return &Logger{
		Logger: l.With(slog.String("widget_id", widgetID)),
	}
}

// HTTPRequest logs an HTTP request
func (l *Logger) HTTPRequest(method, path string, status int, latencyMs float64, clientIP string) {
	l.Info("http_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("latency_ms", latencyMs),
		slog.String("client_ip", clientIP),
	)
}

// WidgetEvent logs an inbound widget event and the state it produced.
func (l *Logger) WidgetEvent(widgetID, event string, valid, dirty bool) {
	l.Debug("widget_event",
		slog.String("widget_id", widgetID),
		slog.String("event", event),
		slog.Bool("valid", valid),
		slog.Bool("dirty", dirty),
	)
}

// Notification logs an outbound widget notification being published.
func (l *Logger) Notification(name, widgetID string) {
	l.Debug("widget_notification",
		slog.String("notification", name),
		slog.String("widget_id", widgetID),
	)
}

// HandlerError logs a failed event bus handler. Notifications are
// fire-and-forget, so this is the only trace a dropped one leaves.
func (l *Logger) HandlerError(eventName string, err error) {
	l.Error("event_handler_error",
		slog.String("event", eventName),
		slog.String("error", err.Error()),
	)
}

// SessionStoreError logs widget session store errors
func (l *Logger) SessionStoreError(operation string, err error) {
	l.Error("session_store_error",
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
}

// RateLimitExceeded logs rate limit events
func (l *Logger) RateLimitExceeded(clientIP, path string) {
	l.Warn("rate_limit_exceeded",
		slog.String("client_ip", clientIP),
		slog.String("path", path),
	)
}
