package simulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-backtest/internal/dto"
)

func TestSimulateMultiTrade(t *testing.T) {
	t.Parallel()

	// Trade 1 enters at 100 and stops out at 95 on day 1.
	// Trade 2 enters at 100 (day 2) and takes profit at 110 on day 3.
	// Trade 3 enters at 105 (day 4) and runs out of bars at the close.
	bars := mkBars(simStart, [][4]float64{
		{100, 101, 99, 100},
		{99, 102, 94, 96},
		{98, 100.5, 96, 100},
		{105, 111, 104, 110},
		{104, 106, 104, 105},
	})

	result, err := SimulateMultiTrade(bars, MultiTradeParams{
		Symbol:          "AAPL",
		InitialCash:     100000,
		StopLossPct:     5,
		TakeProfitPct:   10,
		PositionSizePct: 10,
		CooldownDays:    1,
	})
	require.NoError(t, err)

	require.Equal(t, 3, result.TotalTrades)
	assert.Equal(t, 1, result.WinningTrades)
	assert.Equal(t, 2, result.LosingTrades)
	assert.InDelta(t, 100.0/3.0, result.WinRate, 1e-9)

	trade1 := result.Trades[0]
	assert.Equal(t, dto.ExitStopLoss, trade1.ExitReason)
	assert.InDelta(t, -500.0, trade1.ProfitLoss, 1e-9)

	trade2 := result.Trades[1]
	assert.Equal(t, dto.ExitTakeProfit, trade2.ExitReason)
	assert.InDelta(t, 995.0, trade2.ProfitLoss, 1e-9)

	trade3 := result.Trades[2]
	assert.Equal(t, dto.ExitEndOfPeriod, trade3.ExitReason)
	assert.InDelta(t, 0.0, trade3.ProfitLoss, 1e-9)

	assert.InDelta(t, 100495.0, result.FinalCash, 1e-6)
	assert.InDelta(t, 495.0, result.NetProfit, 1e-6)
	assert.InDelta(t, 0.495, result.NetProfitPct, 1e-9)

	assert.InDelta(t, 995.0, result.AvgWin, 1e-9)
	assert.InDelta(t, 250.0, result.AvgLoss, 1e-9)
	require.NotNil(t, result.ProfitFactor)
	assert.InDelta(t, 1.99, *result.ProfitFactor, 1e-9)
}

func TestSimulateMultiTrade_NoLossesProfitFactorNil(t *testing.T) {
	t.Parallel()

	// A single take-profit exit and then no further bars to trade.
	bars := mkBars(simStart, [][4]float64{
		{100, 101, 99, 100},
		{105, 112, 104, 111},
	})

	result, err := SimulateMultiTrade(bars, MultiTradeParams{
		Symbol:        "AAPL",
		InitialCash:   100000,
		StopLossPct:   5,
		TakeProfitPct: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.TotalTrades)
	assert.Equal(t, 1, result.WinningTrades)
	assert.Nil(t, result.ProfitFactor)
	assert.InDelta(t, 100.0, result.WinRate, 1e-9)
}

func TestSimulateMultiTrade_Errors(t *testing.T) {
	t.Parallel()

	_, err := SimulateMultiTrade(nil, MultiTradeParams{InitialCash: 1000})
	require.Error(t, err)
	assert.Equal(t, dto.ErrKindData, dto.KindOf(err))

	bars := mkBars(simStart, [][4]float64{{100, 101, 99, 100}})
	_, err = SimulateMultiTrade(bars, MultiTradeParams{InitialCash: 0})
	require.Error(t, err)
	assert.Equal(t, dto.ErrKindInput, dto.KindOf(err))
}

func TestSimulateMultiTrade_ZeroPriceStopsLoop(t *testing.T) {
	t.Parallel()

	bars := mkBars(simStart, [][4]float64{{0, 0, 0, 0}})

	_, err := SimulateMultiTrade(bars, MultiTradeParams{
		Symbol:        "AAPL",
		InitialCash:   100000,
		StopLossPct:   5,
		TakeProfitPct: 10,
	})
	require.Error(t, err)
	assert.Equal(t, dto.ErrKindData, dto.KindOf(err))
	assert.Contains(t, err.Error(), "no trades executed")
}
