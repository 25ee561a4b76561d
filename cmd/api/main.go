package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"phonewidget_backend/internal/countries"
	"phonewidget_backend/internal/events"
	apphttp "phonewidget_backend/internal/http"
	"phonewidget_backend/internal/http/router"
	"phonewidget_backend/internal/phone"
	"phonewidget_backend/internal/sessions"
	"phonewidget_backend/internal/widget"
	"phonewidget_backend/internal/widget/domain"
	"phonewidget_backend/platform/config"
	platformevents "phonewidget_backend/platform/events"
	"phonewidget_backend/platform/logger"
	"phonewidget_backend/platform/validator"

	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Core dependencies
	// ========================================================================

	registry := countries.NewRegistry()
	normalizer := phone.New(registry)
	val := validator.New()
	eventBus := events.NewInMemoryBus(log)

	store, health := initSessionStore(cfg, log)

	// Outbound widget notifications are fire-and-forget; log every one so a
	// host adapter (or an operator) can observe them.
	subscribeNotificationLogger(eventBus, log)

	widgetModule := widget.NewModule(registry, normalizer, store, eventBus, log, val, cfg)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   health,
		EventBus: eventBus,
		Modules: []apphttp.Module{
			widgetModule,
		},
	}

	engine := router.New(app)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr, "countries", registry.Len())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		panic("server error: " + err.Error())
	}
}

// initSessionStore picks the Redis store when REDIS_URL is configured and
// falls back to the in-memory store otherwise.
func initSessionStore(cfg *config.Config, log *logger.Logger) (sessions.Store, apphttp.HealthChecker) {
	if !cfg.IsRedisEnabled() {
		log.Info("using in-memory widget session store")
		return sessions.NewMemoryStore(), nil
	}

	store, err := sessions.NewRedisStoreFromURL(cfg.RedisURL, cfg.SessionTTL)
	if err != nil {
		log.Error("failed to initialize redis session store, falling back to memory", "error", err)
		return sessions.NewMemoryStore(), nil
	}

	log.Info("using redis widget session store", "ttl", cfg.SessionTTL.String())
	return store, store
}

func subscribeNotificationLogger(bus events.Bus, log *logger.Logger) {
	logHandler := platformevents.HandlerFunc(func(_ context.Context, event platformevents.Event) error {
		switch e := event.(type) {
		case domain.Changed:
			log.Info("widget change", "widget_id", e.WidgetID, "value", e.Value)
		case domain.FocusRequested:
			log.Info("widget focus requested", "widget_id", e.WidgetID)
		case domain.SearchFocusRequested:
			log.Info("country search focus requested")
		}
		return nil
	})

	bus.Subscribe(domain.EventChanged, logHandler)
	bus.Subscribe(domain.EventFocus, logHandler)
	bus.Subscribe(domain.EventSearchFocus, logHandler)
}
