package service

import (
	"context"

	"stock-backtest/internal/dto"
	"stock-backtest/internal/repository"
	"stock-backtest/pkg/logger"
)

type DataService interface {
	GetHistoricalData(ctx context.Context, param dto.GetStockDataParam) (*dto.StockData, error)
	GetCurrentPrice(ctx context.Context, symbol string) (float64, error)
}

type dataService struct {
	log        *logger.Logger
	marketData repository.MarketDataRepository
}

func NewDataService(log *logger.Logger, marketData repository.MarketDataRepository) DataService {
	return &dataService{log: log, marketData: marketData}
}

func (s *dataService) GetHistoricalData(ctx context.Context, param dto.GetStockDataParam) (*dto.StockData, error) {
	if param.Symbol == "" {
		return nil, dto.NewInputError("symbol is required")
	}
	return s.marketData.GetHistoricalData(ctx, param)
}

func (s *dataService) GetCurrentPrice(ctx context.Context, symbol string) (float64, error) {
	if symbol == "" {
		return 0, dto.NewInputError("symbol is required")
	}
	return s.marketData.GetCurrentPrice(ctx, symbol)
}
