// Package widget provides the phone-input widget bounded context module.
package widget

import (
	"phonewidget_backend/internal/countries"
	apphttp "phonewidget_backend/internal/http"
	"phonewidget_backend/internal/phone"
	"phonewidget_backend/internal/sessions"
	"phonewidget_backend/internal/widget/domain"
	"phonewidget_backend/internal/widget/handler"
	"phonewidget_backend/internal/widget/service"
	"phonewidget_backend/platform/config"
	"phonewidget_backend/platform/events"
	"phonewidget_backend/platform/logger"
	"phonewidget_backend/platform/validator"
)

type Module struct {
	handler *handler.Handler
	service *service.Service
}

func NewModule(reg *countries.Registry, norm *phone.Normalizer, store sessions.Store, bus events.Bus, log *logger.Logger, val *validator.Validator, cfg config.WidgetConfig) *Module {
	defaults := domain.Options{
		PreferredCountries: cfg.GetPreferredCountries(),
		TabIndex:           cfg.GetTabIndex(),
		ApplyMask:          cfg.GetApplyMask(),
		DebounceOnBlur:     cfg.GetDebounceOnBlur(),
		Placeholder:        cfg.GetDefaultPlaceholder(),
	}

	svc := service.New(reg, norm, store, bus, log, defaults)
	h := handler.New(svc, val, cfg)

	return &Module{handler: h, service: svc}
}

func (m *Module) Name() string {
	return "widget"
}

func (m *Module) Service() *service.Service {
	return m.service
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1)
}

var _ apphttp.Module = (*Module)(nil)
