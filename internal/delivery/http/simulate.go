package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stock-backtest/internal/dto"
)

func (h *HttpAPIHandler) SetupSLTP(base *echo.Group) {
	sltpGroup := base.Group("/sltp")
	sltpGroup.POST("/simulate", h.simulateTrade)
	sltpGroup.POST("/multi", h.simulateMulti)
	sltpGroup.POST("/optimize", h.optimize)
}

func (h *HttpAPIHandler) simulateTrade(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.SimulateTradeRequest)
	if err := h.bindAndValidate(c, req); err != nil {
		return h.writeError(c, err)
	}

	result, err := h.service.SimulationService.SimulateTrade(ctx, *req)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *HttpAPIHandler) simulateMulti(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.MultiTradeRequest)
	if err := h.bindAndValidate(c, req); err != nil {
		return h.writeError(c, err)
	}

	result, err := h.service.SimulationService.SimulateMulti(ctx, *req)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *HttpAPIHandler) optimize(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.OptimizeRequest)
	if err := h.bindAndValidate(c, req); err != nil {
		return h.writeError(c, err)
	}

	result, err := h.service.SimulationService.Optimize(ctx, *req)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
