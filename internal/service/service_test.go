package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-backtest/config"
	"stock-backtest/internal/dto"
	"stock-backtest/internal/repository"
	"stock-backtest/pkg/cache"
	"stock-backtest/pkg/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		Backtest: config.Backtest{
			InitialCash:  100000,
			RiskFreeRate: 0.02,
			ShortWindow:  2,
			LongWindow:   3,
		},
		Simulation: config.Simulation{
			MaxDays:         365,
			PositionSizePct: 10,
			CooldownDays:    1,
			StopLossGrid:    []float64{2, 5},
			TakeProfitGrid:  []float64{5, 10},
		},
		Session: config.SessionConfig{
			TTL:             time.Hour,
			CleanupInterval: time.Hour,
		},
	}
}

// testData builds half a year of daily bars with a gentle uptrend so every
// strategy has something to chew on.
func testData() map[string]*dto.StockData {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	var bars []dto.PriceBar
	price := 100.0
	for i := 0; i < 180; i++ {
		if i%5 == 4 {
			price -= 2
		} else {
			price += 1
		}
		bars = append(bars, dto.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Open:   price,
			High:   price + 2,
			Low:    price - 2,
			Close:  price,
			Volume: 1000,
		})
	}
	return map[string]*dto.StockData{
		"AAPL": {Symbol: "AAPL", MarketPrice: 150, Bars: bars},
		"MSFT": {Symbol: "MSFT", MarketPrice: 90, Bars: bars[:60]},
	}
}

func newTestService() *Service {
	cfg := testConfig()
	repo := repository.NewStaticRepository(testData())
	sessions := cache.NewCache(cfg.Session.TTL, cfg.Session.CleanupInterval)
	return NewService(cfg, logger.NewNop(), repo, sessions)
}

func TestPortfolioService_TradeFlow(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	created, err := svc.PortfolioService.Create(ctx, dto.CreatePortfolioRequest{InitialCash: 50000})
	require.NoError(t, err)
	require.NotEmpty(t, created.PortfolioID)
	assert.InDelta(t, 50000.0, created.InitialCash, 1e-9)

	summary, err := svc.PortfolioService.Buy(ctx, created.PortfolioID, dto.TradeOrderRequest{
		Symbol: "AAPL", Quantity: 100, Price: 150, Date: "2024-06-03",
	})
	require.NoError(t, err)
	assert.InDelta(t, 35000.0, summary.Cash, 1e-9)
	assert.Equal(t, 1, summary.NumPositions)

	// Current price equals the buy price, so total value is unchanged.
	assert.InDelta(t, 50000.0, summary.TotalValue, 1e-9)

	summary, err = svc.PortfolioService.Sell(ctx, created.PortfolioID, dto.TradeOrderRequest{
		Symbol: "AAPL", Quantity: 100, Price: 160, Date: "2024-06-04",
	})
	require.NoError(t, err)
	assert.InDelta(t, 51000.0, summary.Cash, 1e-9)
	assert.Equal(t, 0, summary.NumPositions)

	txs, err := svc.PortfolioService.Transactions(ctx, created.PortfolioID)
	require.NoError(t, err)
	assert.Len(t, txs, 2)
}

func TestPortfolioService_Failures(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	_, err := svc.PortfolioService.Summary(ctx, "missing")
	require.Error(t, err)
	assert.Equal(t, dto.ErrKindData, dto.KindOf(err))

	created, err := svc.PortfolioService.Create(ctx, dto.CreatePortfolioRequest{InitialCash: 1000})
	require.NoError(t, err)

	_, err = svc.PortfolioService.Buy(ctx, created.PortfolioID, dto.TradeOrderRequest{
		Symbol: "AAPL", Quantity: 100, Price: 150,
	})
	require.Error(t, err)
	assert.Equal(t, dto.ErrKindState, dto.KindOf(err))

	_, err = svc.PortfolioService.Sell(ctx, created.PortfolioID, dto.TradeOrderRequest{
		Symbol: "AAPL", Quantity: 1, Price: 150,
	})
	require.Error(t, err)
	assert.Equal(t, dto.ErrKindState, dto.KindOf(err))
}

func TestBacktestService(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	result, err := svc.BacktestService.RunBuyHold(ctx, dto.BuyHoldRequest{
		Symbol:    "AAPL",
		StartDate: "2024-01-02",
		EndDate:   "2024-06-28",
	})
	require.NoError(t, err)
	assert.Equal(t, "Buy and Hold", result.Strategy)
	assert.NotEmpty(t, result.EquityCurve)

	// Window defaults come from config when the request leaves them zero.
	smaResult, err := svc.BacktestService.RunSMACrossover(ctx, dto.SMACrossoverRequest{
		Symbol:    "AAPL",
		StartDate: "2024-01-02",
		EndDate:   "2024-06-28",
	})
	require.NoError(t, err)
	assert.Equal(t, "SMA Crossover (2/3)", smaResult.Strategy)

	_, err = svc.BacktestService.RunBuyHold(ctx, dto.BuyHoldRequest{
		Symbol:    "TSLA",
		StartDate: "2024-01-02",
		EndDate:   "2024-06-28",
	})
	require.Error(t, err)
	assert.Equal(t, dto.ErrKindData, dto.KindOf(err))
}

func TestSimulationService(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	trade, err := svc.SimulationService.SimulateTrade(ctx, dto.SimulateTradeRequest{
		Symbol:        "AAPL",
		EntryPrice:    100,
		Quantity:      10,
		StopLossPct:   5,
		TakeProfitPct: 10,
		StartDate:     "2024-01-02",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, trade.ExitReason)

	multi, err := svc.SimulationService.SimulateMulti(ctx, dto.MultiTradeRequest{
		Symbol:        "AAPL",
		StartDate:     "2024-01-02",
		EndDate:       "2024-06-28",
		StopLossPct:   5,
		TakeProfitPct: 10,
	})
	require.NoError(t, err)
	assert.Greater(t, multi.TotalTrades, 0)

	opt, err := svc.SimulationService.Optimize(ctx, dto.OptimizeRequest{
		Symbol:    "AAPL",
		StartDate: "2024-01-02",
		EndDate:   "2024-06-28",
	})
	require.NoError(t, err)
	// Grids fall back to the configured 2x2 candidates.
	assert.Len(t, opt.AllResults, 4)
}

func TestWhatIfService(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	allIn, err := svc.WhatIfService.AllIn(ctx, dto.AllInRequest{
		Symbol:           "AAPL",
		InvestmentAmount: 10000,
		StartDate:        "2024-01-02",
		EndDate:          "2024-06-28",
	})
	require.NoError(t, err)
	assert.InDelta(t, 10000.0, allIn.InvestmentAmount, 1e-9)
	assert.NotEmpty(t, allIn.Timeline)

	dca, err := svc.WhatIfService.DCA(ctx, dto.DCARequest{
		Symbol:            "AAPL",
		MonthlyInvestment: 1000,
		StartDate:         "2024-01-02",
		EndDate:           "2024-06-28",
	})
	require.NoError(t, err)
	assert.Equal(t, 6, dca.NumPurchases)
	assert.InDelta(t, 6000.0, dca.TotalInvested, 1e-9)

	versus, err := svc.WhatIfService.LumpSumVsDCA(ctx, dto.LumpSumVsDCARequest{
		Symbol:      "AAPL",
		TotalAmount: 12000,
		StartDate:   "2024-01-02",
		EndDate:     "2024-06-28",
	})
	require.NoError(t, err)
	assert.Contains(t, []string{"Lump Sum", "DCA"}, versus.Winner)

	compare, err := svc.WhatIfService.Compare(ctx, dto.CompareRequest{
		Symbols:          []string{"AAPL", "MSFT", "TSLA"},
		InvestmentAmount: 10000,
		StartDate:        "2024-01-02",
		EndDate:          "2024-06-28",
	})
	require.NoError(t, err)
	assert.Len(t, compare.Scenarios, 2)
}
