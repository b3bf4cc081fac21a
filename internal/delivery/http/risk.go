package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stock-backtest/internal/dto"
)

func (h *HttpAPIHandler) SetupRisk(base *echo.Group) {
	riskGroup := base.Group("/risk")
	riskGroup.POST("/position-size", h.positionSize)
	riskGroup.POST("/risk-reward", h.riskReward)
}

func (h *HttpAPIHandler) positionSize(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.PositionSizeRequest)
	if err := h.bindAndValidate(c, req); err != nil {
		return h.writeError(c, err)
	}

	result, err := h.service.RiskService.PositionSize(ctx, *req)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *HttpAPIHandler) riskReward(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.RiskRewardRequest)
	if err := h.bindAndValidate(c, req); err != nil {
		return h.writeError(c, err)
	}

	result, err := h.service.RiskService.RiskReward(ctx, *req)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
