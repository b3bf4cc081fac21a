package cmd

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/spf13/cobra"

	"stock-backtest/internal/dto"
	"stock-backtest/internal/repository"
	"stock-backtest/internal/service"
	"stock-backtest/pkg/logger"
	"stock-backtest/pkg/utils"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the portfolio, risk, simulation and backtest flows on sample data",
	Run:   Demo,
}

func Demo(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}
	defer appDep.Close()

	marketData := repository.NewStaticRepository(demoData())
	services := service.NewService(appDep.cfg, appDep.log, marketData, appDep.sessionStore)

	runPortfolioDemo(ctx, appDep.log, services)
	runRiskDemo(ctx, appDep.log, services)
	runSimulationDemo(ctx, appDep.log, services)
	runBacktestDemo(ctx, appDep.log, services)
	runWhatIfDemo(ctx, appDep.log, services)
}

// demoData builds two years of deterministic daily bars: a slow sine swing
// on top of a steady drift, so every flow has entries and exits to find.
func demoData() map[string]*dto.StockData {
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)

	build := func(symbol string, base, drift, swing float64) *dto.StockData {
		var bars []dto.PriceBar
		for i := 0; i < 500; i++ {
			price := base + drift*float64(i) + swing*math.Sin(float64(i)/20)
			bars = append(bars, dto.PriceBar{
				Date:   start.AddDate(0, 0, i),
				Open:   price,
				High:   price * 1.02,
				Low:    price * 0.98,
				Close:  price,
				Volume: 1_000_000,
			})
		}
		return &dto.StockData{
			Symbol:      symbol,
			MarketPrice: bars[len(bars)-1].Close,
			Bars:        bars,
		}
	}

	return map[string]*dto.StockData{
		"AAPL": build("AAPL", 150, 0.08, 10),
		"MSFT": build("MSFT", 300, 0.05, 20),
		"SPY":  build("SPY", 400, 0.10, 8),
	}
}

func runPortfolioDemo(ctx context.Context, lg *logger.Logger, services *service.Service) {
	created, err := services.PortfolioService.Create(ctx, dto.CreatePortfolioRequest{InitialCash: 100000})
	if err != nil {
		lg.Error("portfolio demo failed", logger.ErrorField(err))
		return
	}

	if _, err := services.PortfolioService.Buy(ctx, created.PortfolioID, dto.TradeOrderRequest{
		Symbol: "AAPL", Quantity: 100, Price: 150, Date: "2023-01-02",
	}); err != nil {
		lg.Error("portfolio demo buy failed", logger.ErrorField(err))
		return
	}

	summary, err := services.PortfolioService.Summary(ctx, created.PortfolioID)
	if err != nil {
		lg.Error("portfolio demo summary failed", logger.ErrorField(err))
		return
	}

	lg.Info("portfolio demo",
		logger.StringField("portfolio_id", created.PortfolioID),
		logger.Float64Field("total_value", summary.TotalValue),
		logger.Float64Field("total_return_pct", summary.TotalReturn))
}

func runRiskDemo(ctx context.Context, lg *logger.Logger, services *service.Service) {
	sizing, err := services.RiskService.PositionSize(ctx, dto.PositionSizeRequest{
		AccountValue: 100000, RiskPct: 2, EntryPrice: 100, StopLossPrice: 95,
	})
	if err != nil {
		lg.Error("risk demo failed", logger.ErrorField(err))
		return
	}

	ratio, err := services.RiskService.RiskReward(ctx, dto.RiskRewardRequest{
		EntryPrice: 100, StopLossPrice: 95, TakeProfitPrice: 110,
	})
	if err != nil {
		lg.Error("risk demo failed", logger.ErrorField(err))
		return
	}

	lg.Info("risk demo",
		logger.Float64Field("position_size", sizing.PositionSize),
		logger.Float64Field("risk_reward_ratio", ratio.RiskRewardRatio))
}

func runSimulationDemo(ctx context.Context, lg *logger.Logger, services *service.Service) {
	multi, err := services.SimulationService.SimulateMulti(ctx, dto.MultiTradeRequest{
		Symbol:        "AAPL",
		StartDate:     "2023-01-02",
		EndDate:       "2024-05-01",
		StopLossPct:   5,
		TakeProfitPct: 10,
	})
	if err != nil {
		lg.Error("simulation demo failed", logger.ErrorField(err))
		return
	}

	best, err := services.SimulationService.Optimize(ctx, dto.OptimizeRequest{
		Symbol:    "AAPL",
		StartDate: "2023-01-02",
		EndDate:   "2024-05-01",
	})
	if err != nil {
		lg.Error("optimization demo failed", logger.ErrorField(err))
		return
	}

	lg.Info("simulation demo",
		logger.IntField("total_trades", multi.TotalTrades),
		logger.Float64Field("net_profit_pct", multi.NetProfitPct),
		logger.Float64Field("best_sl_pct", best.BestStopLossPct),
		logger.Float64Field("best_tp_pct", best.BestTakeProfit))
}

func runBacktestDemo(ctx context.Context, lg *logger.Logger, services *service.Service) {
	buyHold, err := services.BacktestService.RunBuyHold(ctx, dto.BuyHoldRequest{
		Symbol:    "SPY",
		StartDate: "2023-01-02",
		EndDate:   "2024-05-01",
	})
	if err != nil {
		lg.Error("backtest demo failed", logger.ErrorField(err))
		return
	}

	sma, err := services.BacktestService.RunSMACrossover(ctx, dto.SMACrossoverRequest{
		Symbol:      "SPY",
		StartDate:   "2023-01-02",
		EndDate:     "2024-05-01",
		ShortWindow: 20,
		LongWindow:  50,
	})
	if err != nil {
		lg.Error("backtest demo failed", logger.ErrorField(err))
		return
	}

	lg.Info("backtest demo",
		logger.StringField("buy_hold_return", utils.FormatPercentage(buyHold.TotalReturn)),
		logger.Float64Field("buy_hold_sharpe", buyHold.SharpeRatio),
		logger.StringField("sma_return", utils.FormatPercentage(sma.TotalReturn)),
		logger.IntField("sma_trades", sma.NumTrades))
}

func runWhatIfDemo(ctx context.Context, lg *logger.Logger, services *service.Service) {
	versus, err := services.WhatIfService.LumpSumVsDCA(ctx, dto.LumpSumVsDCARequest{
		Symbol:      "MSFT",
		TotalAmount: 12000,
		StartDate:   "2023-01-02",
		EndDate:     "2024-01-02",
	})
	if err != nil {
		lg.Error("what-if demo failed", logger.ErrorField(err))
		return
	}

	lg.Info("what-if demo",
		logger.StringField("winner", versus.Winner),
		logger.StringField("lump_sum_final", utils.FormatMoney(versus.LumpSum.FinalValue)),
		logger.StringField("dca_final", utils.FormatMoney(versus.DCA.FinalValue)))
}
