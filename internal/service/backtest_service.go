package service

import (
	"context"

	"stock-backtest/config"
	"stock-backtest/internal/backtest"
	"stock-backtest/internal/dto"
	"stock-backtest/internal/repository"
	"stock-backtest/pkg/logger"
)

type BacktestService interface {
	RunBuyHold(ctx context.Context, req dto.BuyHoldRequest) (*dto.BacktestResult, error)
	RunSMACrossover(ctx context.Context, req dto.SMACrossoverRequest) (*dto.BacktestResult, error)
}

type backtestService struct {
	cfg        *config.Config
	log        *logger.Logger
	marketData repository.MarketDataRepository
	engine     *backtest.Engine
}

func NewBacktestService(cfg *config.Config, log *logger.Logger, marketData repository.MarketDataRepository) BacktestService {
	return &backtestService{
		cfg:        cfg,
		log:        log,
		marketData: marketData,
		engine:     backtest.NewEngine(cfg.Backtest.InitialCash, cfg.Backtest.RiskFreeRate),
	}
}

func (s *backtestService) RunBuyHold(ctx context.Context, req dto.BuyHoldRequest) (*dto.BacktestResult, error) {
	data, err := s.marketData.GetHistoricalData(ctx, dto.GetStockDataParam{
		Symbol:    req.Symbol,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		return nil, err
	}

	result, err := s.engine.RunBuyAndHold(req.Symbol, data.Bars, req.Allocation)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "buy-and-hold backtest completed",
		logger.StringField("symbol", req.Symbol),
		logger.Float64Field("total_return", result.TotalReturn))
	return result, nil
}

func (s *backtestService) RunSMACrossover(ctx context.Context, req dto.SMACrossoverRequest) (*dto.BacktestResult, error) {
	shortWindow := req.ShortWindow
	if shortWindow == 0 {
		shortWindow = s.cfg.Backtest.ShortWindow
	}
	longWindow := req.LongWindow
	if longWindow == 0 {
		longWindow = s.cfg.Backtest.LongWindow
	}

	data, err := s.marketData.GetHistoricalData(ctx, dto.GetStockDataParam{
		Symbol:    req.Symbol,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		return nil, err
	}

	result, err := s.engine.RunSMACrossover(req.Symbol, data.Bars, shortWindow, longWindow, req.Allocation)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "sma crossover backtest completed",
		logger.StringField("symbol", req.Symbol),
		logger.IntField("num_trades", result.NumTrades),
		logger.Float64Field("total_return", result.TotalReturn))
	return result, nil
}
