package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stock-backtest/internal/dto"
)

func (h *HttpAPIHandler) SetupBacktest(base *echo.Group) {
	backtestGroup := base.Group("/backtest")
	backtestGroup.POST("/buy-hold", h.runBuyHold)
	backtestGroup.POST("/sma-crossover", h.runSMACrossover)
}

func (h *HttpAPIHandler) runBuyHold(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.BuyHoldRequest)
	if err := h.bindAndValidate(c, req); err != nil {
		return h.writeError(c, err)
	}

	result, err := h.service.BacktestService.RunBuyHold(ctx, *req)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *HttpAPIHandler) runSMACrossover(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.SMACrossoverRequest)
	if err := h.bindAndValidate(c, req); err != nil {
		return h.writeError(c, err)
	}

	result, err := h.service.BacktestService.RunSMACrossover(ctx, *req)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
