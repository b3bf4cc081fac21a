package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stock-backtest/internal/dto"
)

func (h *HttpAPIHandler) SetupPortfolio(base *echo.Group) {
	portfolioGroup := base.Group("/portfolio")
	portfolioGroup.POST("", h.createPortfolio)
	portfolioGroup.POST("/:id/buy", h.buy)
	portfolioGroup.POST("/:id/sell", h.sell)
	portfolioGroup.GET("/:id/summary", h.portfolioSummary)
	portfolioGroup.GET("/:id/transactions", h.portfolioTransactions)
}

func (h *HttpAPIHandler) createPortfolio(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.CreatePortfolioRequest)
	if err := h.bindAndValidate(c, req); err != nil {
		return h.writeError(c, err)
	}

	result, err := h.service.PortfolioService.Create(ctx, *req)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *HttpAPIHandler) buy(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.TradeOrderRequest)
	if err := h.bindAndValidate(c, req); err != nil {
		return h.writeError(c, err)
	}

	result, err := h.service.PortfolioService.Buy(ctx, c.Param("id"), *req)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *HttpAPIHandler) sell(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.TradeOrderRequest)
	if err := h.bindAndValidate(c, req); err != nil {
		return h.writeError(c, err)
	}

	result, err := h.service.PortfolioService.Sell(ctx, c.Param("id"), *req)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *HttpAPIHandler) portfolioSummary(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.service.PortfolioService.Summary(ctx, c.Param("id"))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *HttpAPIHandler) portfolioTransactions(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.service.PortfolioService.Transactions(ctx, c.Param("id"))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"transactions": result})
}
