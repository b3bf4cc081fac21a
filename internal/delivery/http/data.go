package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stock-backtest/internal/dto"
)

func (h *HttpAPIHandler) SetupData(base *echo.Group) {
	dataGroup := base.Group("/data")
	dataGroup.GET("/historical", h.getHistoricalData)
	dataGroup.GET("/price", h.getCurrentPrice)
}

func (h *HttpAPIHandler) getHistoricalData(c echo.Context) error {
	ctx := c.Request().Context()

	param := dto.GetStockDataParam{
		Symbol:    c.QueryParam("symbol"),
		StartDate: c.QueryParam("start_date"),
		EndDate:   c.QueryParam("end_date"),
		Period:    c.QueryParam("period"),
	}

	data, err := h.service.DataService.GetHistoricalData(ctx, param)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, data)
}

func (h *HttpAPIHandler) getCurrentPrice(c echo.Context) error {
	ctx := c.Request().Context()

	symbol := c.QueryParam("symbol")
	price, err := h.service.DataService.GetCurrentPrice(ctx, symbol)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"symbol": symbol, "price": price})
}
