package repository

import (
	"context"

	"stock-backtest/internal/dto"
)

// MarketDataRepository serves historical bars and live quotes for a symbol.
type MarketDataRepository interface {
	GetHistoricalData(ctx context.Context, param dto.GetStockDataParam) (*dto.StockData, error)
	GetCurrentPrice(ctx context.Context, symbol string) (float64, error)
	GetCurrentPrices(ctx context.Context, symbols []string) (map[string]float64, error)
}
