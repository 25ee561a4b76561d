// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"context"

	"phonewidget_backend/internal/events"
	"phonewidget_backend/platform/config"
	"phonewidget_backend/platform/logger"
)

// HealthChecker exposes minimal functionality for readiness checks.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the HTTP router configuration.
	Config config.HTTPConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Health is used for readiness checks (e.g., the Redis session store).
	// May be nil when the default in-memory store is active.
	Health HealthChecker
	// EventBus is the bus carrying outbound widget notifications.
	EventBus events.Bus
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
