package service

import (
	"context"

	"stock-backtest/config"
	"stock-backtest/internal/dto"
	"stock-backtest/internal/repository"
	"stock-backtest/internal/whatif"
	"stock-backtest/pkg/logger"
)

type WhatIfService interface {
	AllIn(ctx context.Context, req dto.AllInRequest) (*dto.AllInResult, error)
	Compare(ctx context.Context, req dto.CompareRequest) (*dto.CompareResult, error)
	DCA(ctx context.Context, req dto.DCARequest) (*dto.DCAResult, error)
	LumpSumVsDCA(ctx context.Context, req dto.LumpSumVsDCARequest) (*dto.LumpSumVsDCAResult, error)
}

type whatIfService struct {
	cfg        *config.Config
	log        *logger.Logger
	marketData repository.MarketDataRepository
	engine     *whatif.Engine
}

func NewWhatIfService(cfg *config.Config, log *logger.Logger, marketData repository.MarketDataRepository) WhatIfService {
	return &whatIfService{
		cfg:        cfg,
		log:        log,
		marketData: marketData,
		engine:     whatif.NewEngine(),
	}
}

func (s *whatIfService) AllIn(ctx context.Context, req dto.AllInRequest) (*dto.AllInResult, error) {
	data, err := s.marketData.GetHistoricalData(ctx, dto.GetStockDataParam{
		Symbol:    req.Symbol,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Period:    req.Period,
	})
	if err != nil {
		return nil, err
	}
	return s.engine.AllIn(req.Symbol, data.Bars, req.InvestmentAmount)
}

func (s *whatIfService) Compare(ctx context.Context, req dto.CompareRequest) (*dto.CompareResult, error) {
	barsBySymbol := make(map[string][]dto.PriceBar, len(req.Symbols))
	for _, symbol := range req.Symbols {
		data, err := s.marketData.GetHistoricalData(ctx, dto.GetStockDataParam{
			Symbol:    symbol,
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
			Period:    req.Period,
		})
		if err != nil {
			s.log.WarnContext(ctx, "skipping symbol without usable data",
				logger.StringField("symbol", symbol),
				logger.ErrorField(err))
			continue
		}
		barsBySymbol[symbol] = data.Bars
	}
	return s.engine.Compare(req.Symbols, barsBySymbol, req.InvestmentAmount)
}

func (s *whatIfService) DCA(ctx context.Context, req dto.DCARequest) (*dto.DCAResult, error) {
	data, err := s.marketData.GetHistoricalData(ctx, dto.GetStockDataParam{
		Symbol:    req.Symbol,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		return nil, err
	}
	return s.engine.DCA(req.Symbol, data.Bars, req.MonthlyInvestment, 0)
}

func (s *whatIfService) LumpSumVsDCA(ctx context.Context, req dto.LumpSumVsDCARequest) (*dto.LumpSumVsDCAResult, error) {
	data, err := s.marketData.GetHistoricalData(ctx, dto.GetStockDataParam{
		Symbol:    req.Symbol,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		return nil, err
	}
	return s.engine.LumpSumVsDCA(req.Symbol, data.Bars, req.TotalAmount, req.DCAPeriods)
}
