package http

import (
	"context"
	"net/http"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"stock-backtest/internal/dto"
	"stock-backtest/internal/service"
)

type HttpAPIHandler struct {
	echo      *echo.Echo
	validator *goValidator.Validate
	service   *service.Service
}

func NewHttpAPIHandler(_ context.Context, echo *echo.Echo, validator *goValidator.Validate, service *service.Service) *HttpAPIHandler {
	return &HttpAPIHandler{
		echo:      echo,
		validator: validator,
		service:   service,
	}
}

func (h *HttpAPIHandler) SetupRoutes() {
	base := h.echo.Group("/api")
	base.GET("/health", h.health)

	h.SetupData(base)
	h.SetupPortfolio(base)
	h.SetupBacktest(base)
	h.SetupRisk(base)
	h.SetupSLTP(base)
	h.SetupWhatIf(base)
}

func (h *HttpAPIHandler) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// bindAndValidate decodes the body into req and runs struct validation.
func (h *HttpAPIHandler) bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return dto.NewInputError("invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return dto.NewInputError("%s", err.Error())
	}
	return nil
}

// writeError maps error kinds to HTTP statuses: bad input 400, missing data
// 404, rejected trades 422, upstream failures 502.
func (h *HttpAPIHandler) writeError(c echo.Context, err error) error {
	status := http.StatusBadGateway
	switch dto.KindOf(err) {
	case dto.ErrKindInput:
		status = http.StatusBadRequest
	case dto.ErrKindData:
		status = http.StatusNotFound
	case dto.ErrKindState:
		status = http.StatusUnprocessableEntity
	}
	return c.JSON(status, dto.NewErrorResponse(err.Error()))
}
