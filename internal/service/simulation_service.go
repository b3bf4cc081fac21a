package service

import (
	"context"

	"stock-backtest/config"
	"stock-backtest/internal/dto"
	"stock-backtest/internal/repository"
	"stock-backtest/internal/simulator"
	"stock-backtest/pkg/logger"
	"stock-backtest/pkg/utils"
)

type SimulationService interface {
	SimulateTrade(ctx context.Context, req dto.SimulateTradeRequest) (*dto.TradeResult, error)
	SimulateMulti(ctx context.Context, req dto.MultiTradeRequest) (*dto.MultiTradeResult, error)
	Optimize(ctx context.Context, req dto.OptimizeRequest) (*dto.OptimizationResult, error)
}

type simulationService struct {
	cfg        *config.Config
	log        *logger.Logger
	marketData repository.MarketDataRepository
}

func NewSimulationService(cfg *config.Config, log *logger.Logger, marketData repository.MarketDataRepository) SimulationService {
	return &simulationService{cfg: cfg, log: log, marketData: marketData}
}

func (s *simulationService) SimulateTrade(ctx context.Context, req dto.SimulateTradeRequest) (*dto.TradeResult, error) {
	entryDate, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return nil, dto.NewInputError("%s", err.Error())
	}

	data, err := s.marketData.GetHistoricalData(ctx, dto.GetStockDataParam{
		Symbol:    req.Symbol,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		return nil, err
	}

	maxDays := req.MaxDays
	if maxDays == 0 {
		maxDays = s.cfg.Simulation.MaxDays
	}

	result, err := simulator.SimulateTrade(data.Bars, simulator.TradeParams{
		Symbol:        req.Symbol,
		EntryPrice:    req.EntryPrice,
		Quantity:      req.Quantity,
		StopLossPct:   req.StopLossPct,
		TakeProfitPct: req.TakeProfitPct,
		EntryDate:     entryDate,
		MaxDays:       maxDays,
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "trade simulation completed",
		logger.StringField("symbol", req.Symbol),
		logger.StringField("exit_reason", string(result.ExitReason)))
	return result, nil
}

func (s *simulationService) SimulateMulti(ctx context.Context, req dto.MultiTradeRequest) (*dto.MultiTradeResult, error) {
	data, err := s.marketData.GetHistoricalData(ctx, dto.GetStockDataParam{
		Symbol:    req.Symbol,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		return nil, err
	}

	positionSizePct := req.PositionSizePct
	if positionSizePct == 0 {
		positionSizePct = s.cfg.Simulation.PositionSizePct
	}
	cooldown := req.CooldownDays
	if cooldown == 0 {
		cooldown = s.cfg.Simulation.CooldownDays
	}

	result, err := simulator.SimulateMultiTrade(data.Bars, simulator.MultiTradeParams{
		Symbol:          req.Symbol,
		InitialCash:     s.cfg.Backtest.InitialCash,
		StopLossPct:     req.StopLossPct,
		TakeProfitPct:   req.TakeProfitPct,
		PositionSizePct: positionSizePct,
		CooldownDays:    cooldown,
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "multi-trade simulation completed",
		logger.StringField("symbol", req.Symbol),
		logger.IntField("total_trades", result.TotalTrades),
		logger.Float64Field("net_profit_pct", result.NetProfitPct))
	return result, nil
}

func (s *simulationService) Optimize(ctx context.Context, req dto.OptimizeRequest) (*dto.OptimizationResult, error) {
	data, err := s.marketData.GetHistoricalData(ctx, dto.GetStockDataParam{
		Symbol:    req.Symbol,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		return nil, err
	}

	slGrid := req.StopLossGrid
	if len(slGrid) == 0 {
		slGrid = s.cfg.Simulation.StopLossGrid
	}
	tpGrid := req.TakeProfitGrid
	if len(tpGrid) == 0 {
		tpGrid = s.cfg.Simulation.TakeProfitGrid
	}

	result, err := simulator.Optimize(ctx, data.Bars, simulator.OptimizeParams{
		Symbol:          req.Symbol,
		InitialCash:     s.cfg.Backtest.InitialCash,
		StopLossGrid:    slGrid,
		TakeProfitGrid:  tpGrid,
		PositionSizePct: s.cfg.Simulation.PositionSizePct,
		CooldownDays:    s.cfg.Simulation.CooldownDays,
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "stop/take grid search completed",
		logger.StringField("symbol", req.Symbol),
		logger.Float64Field("best_sl_pct", result.BestStopLossPct),
		logger.Float64Field("best_tp_pct", result.BestTakeProfit))
	return result, nil
}
