// Package handler exposes the widget event contract over HTTP. It is the
// presentation-adapter boundary: raw host events arrive here and are relayed
// into the state machine; rendering stays on the client.
package handler

import (
	"net/http"
	"strings"

	"phonewidget_backend/internal/countries"
	"phonewidget_backend/internal/widget/service"
	"phonewidget_backend/internal/widget/transport"
	"phonewidget_backend/platform/config"
	"phonewidget_backend/platform/httpkit"
	"phonewidget_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler serves the widget endpoints.
type Handler struct {
	svc *service.Service
	val *validator.Validator
	cfg config.WidgetConfig
}

// New creates a widget handler.
func New(svc *service.Service, val *validator.Validator, cfg config.WidgetConfig) *Handler {
	return &Handler{svc: svc, val: val, cfg: cfg}
}

// RegisterRoutes mounts the widget routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/widgets", h.CreateWidget)
	rg.GET("/widgets/:widgetID", h.GetWidget)
	rg.POST("/widgets/:widgetID/events", h.DispatchEvent)
	rg.DELETE("/widgets/:widgetID", h.DeleteWidget)
	rg.GET("/countries", h.ListCountries)
}

// CreateWidget creates a widget instance and returns its first renderable view.
func (h *Handler) CreateWidget(c *gin.Context) {
	var req transport.CreateWidgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	view, err := h.svc.Create(c.Request.Context(), req.Options(h.cfg.GetApplyMask(), h.cfg.GetDebounceOnBlur()))
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, view)
}

// GetWidget returns the current renderable view of an instance.
func (h *Handler) GetWidget(c *gin.Context) {
	view, err := h.svc.Get(c.Request.Context(), c.Param("widgetID"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, view)
}

// DispatchEvent applies one inbound event and returns the updated view.
func (h *Handler) DispatchEvent(c *gin.Context) {
	var req transport.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	ev, err := req.ToEvent()
	if httpkit.HandleError(c, err) {
		return
	}

	view, err := h.svc.Dispatch(c.Request.Context(), c.Param("widgetID"), ev)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, view)
}

// DeleteWidget discards an instance.
func (h *Handler) DeleteWidget(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("widgetID")); httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

// ListCountries returns the country table with an optional preferred overlay
// (?preferred=US,GB) and picker filter (?q=term). With ?dial=NN it instead
// resolves the dial code to its single canonical country.
func (h *Handler) ListCountries(c *gin.Context) {
	if dial := strings.TrimPrefix(strings.TrimSpace(c.Query("dial")), "+"); dial != "" {
		if err := h.val.Var(dial, "dialcode"); err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, "invalid dial code "+dial)
			return
		}

		country, err := h.svc.CountryByDialCode(dial)
		if httpkit.HandleError(c, err) {
			return
		}

		httpkit.OK(c, transport.ListCountriesResponse{
			Countries: transport.ToCountryResponses([]countries.Country{country}),
		})
		return
	}

	var preferred []string
	if raw := c.Query("preferred"); raw != "" {
		for _, code := range strings.Split(raw, ",") {
			code = strings.TrimSpace(code)
			if code == "" {
				continue
			}
			if err := h.val.Var(code, "iso3166_1_alpha2"); err != nil {
				httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, "invalid preferred country "+code)
				return
			}
			preferred = append(preferred, code)
		}
	}

	list := h.svc.Countries(preferred, c.Query("q"))
	httpkit.OK(c, transport.ListCountriesResponse{Countries: transport.ToCountryResponses(list)})
}
