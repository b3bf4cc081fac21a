package service

import (
	"context"

	"stock-backtest/internal/dto"
	"stock-backtest/internal/risk"
	"stock-backtest/pkg/logger"
)

type RiskService interface {
	PositionSize(ctx context.Context, req dto.PositionSizeRequest) (*dto.PositionSizeResult, error)
	RiskReward(ctx context.Context, req dto.RiskRewardRequest) (*dto.RiskRewardResult, error)
}

type riskService struct {
	log *logger.Logger
}

func NewRiskService(log *logger.Logger) RiskService {
	return &riskService{log: log}
}

func (s *riskService) PositionSize(_ context.Context, req dto.PositionSizeRequest) (*dto.PositionSizeResult, error) {
	return risk.PositionSize(req.AccountValue, req.RiskPct, req.EntryPrice, req.StopLossPrice)
}

func (s *riskService) RiskReward(_ context.Context, req dto.RiskRewardRequest) (*dto.RiskRewardResult, error) {
	return risk.RiskReward(req.EntryPrice, req.StopLossPrice, req.TakeProfitPrice)
}
