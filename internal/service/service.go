package service

import (
	"stock-backtest/config"
	"stock-backtest/internal/repository"
	"stock-backtest/pkg/cache"
	"stock-backtest/pkg/logger"
)

type Service struct {
	DataService       DataService
	BacktestService   BacktestService
	SimulationService SimulationService
	RiskService       RiskService
	WhatIfService     WhatIfService
	PortfolioService  PortfolioService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	marketData repository.MarketDataRepository,
	sessionStore cache.Cache,
) *Service {
	return &Service{
		DataService:       NewDataService(log, marketData),
		BacktestService:   NewBacktestService(cfg, log, marketData),
		SimulationService: NewSimulationService(cfg, log, marketData),
		RiskService:       NewRiskService(log),
		WhatIfService:     NewWhatIfService(cfg, log, marketData),
		PortfolioService:  NewPortfolioService(cfg, log, marketData, sessionStore),
	}
}
