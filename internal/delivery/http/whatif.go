package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stock-backtest/internal/dto"
)

func (h *HttpAPIHandler) SetupWhatIf(base *echo.Group) {
	whatIfGroup := base.Group("/whatif")
	whatIfGroup.POST("/all-in", h.whatIfAllIn)
	whatIfGroup.POST("/compare", h.whatIfCompare)
	whatIfGroup.POST("/dca", h.whatIfDCA)
	whatIfGroup.POST("/lump-vs-dca", h.whatIfLumpSumVsDCA)
}

func (h *HttpAPIHandler) whatIfAllIn(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.AllInRequest)
	if err := h.bindAndValidate(c, req); err != nil {
		return h.writeError(c, err)
	}

	result, err := h.service.WhatIfService.AllIn(ctx, *req)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *HttpAPIHandler) whatIfCompare(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.CompareRequest)
	if err := h.bindAndValidate(c, req); err != nil {
		return h.writeError(c, err)
	}

	result, err := h.service.WhatIfService.Compare(ctx, *req)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *HttpAPIHandler) whatIfDCA(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.DCARequest)
	if err := h.bindAndValidate(c, req); err != nil {
		return h.writeError(c, err)
	}

	result, err := h.service.WhatIfService.DCA(ctx, *req)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *HttpAPIHandler) whatIfLumpSumVsDCA(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.LumpSumVsDCARequest)
	if err := h.bindAndValidate(c, req); err != nil {
		return h.writeError(c, err)
	}

	result, err := h.service.WhatIfService.LumpSumVsDCA(ctx, *req)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
