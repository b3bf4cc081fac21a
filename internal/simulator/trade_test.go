package simulator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-backtest/internal/dto"
)

var simStart = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

// mkBars builds one daily bar per [open, high, low, close] row.
func mkBars(start time.Time, ohlc [][4]float64) []dto.PriceBar {
	bars := make([]dto.PriceBar, len(ohlc))
	for i, row := range ohlc {
		bars[i] = dto.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Open:   row[0],
			High:   row[1],
			Low:    row[2],
			Close:  row[3],
			Volume: 1000,
		}
	}
	return bars
}

func TestSimulateTrade_StopLoss(t *testing.T) {
	t.Parallel()

	bars := mkBars(simStart, [][4]float64{
		{100, 105, 90, 95},
	})

	result, err := SimulateTrade(bars, TradeParams{
		Symbol:        "AAPL",
		EntryPrice:    100,
		Quantity:      10,
		StopLossPct:   5,
		TakeProfitPct: 10,
		EntryDate:     simStart,
	})
	require.NoError(t, err)

	assert.InDelta(t, 95.0, result.StopLossPrice, 1e-9)
	assert.InDelta(t, 110.0, result.TakeProfitPrice, 1e-9)
	assert.Equal(t, dto.ExitStopLoss, result.ExitReason)
	assert.InDelta(t, 95.0, result.ExitPrice, 1e-9)
	assert.InDelta(t, -50.0, result.ProfitLoss, 1e-9)
	assert.InDelta(t, -5.0, result.ProfitLossPct, 1e-9)
	assert.False(t, result.Success)
}

// When a single bar satisfies both conditions the stop always wins.
func TestSimulateTrade_TieBreakPrefersStop(t *testing.T) {
	t.Parallel()

	bars := mkBars(simStart, [][4]float64{
		{100, 115, 90, 105},
	})

	result, err := SimulateTrade(bars, TradeParams{
		Symbol:        "AAPL",
		EntryPrice:    100,
		Quantity:      10,
		StopLossPct:   5,
		TakeProfitPct: 10,
		EntryDate:     simStart,
	})
	require.NoError(t, err)

	assert.Equal(t, dto.ExitStopLoss, result.ExitReason)
	assert.InDelta(t, 95.0, result.ExitPrice, 1e-9)
}

func TestSimulateTrade_TakeProfit(t *testing.T) {
	t.Parallel()

	bars := mkBars(simStart, [][4]float64{
		{100, 104, 98, 102},
		{102, 112, 101, 111},
	})

	result, err := SimulateTrade(bars, TradeParams{
		Symbol:        "AAPL",
		EntryPrice:    100,
		Quantity:      10,
		StopLossPct:   5,
		TakeProfitPct: 10,
		EntryDate:     simStart,
	})
	require.NoError(t, err)

	assert.Equal(t, dto.ExitTakeProfit, result.ExitReason)
	assert.InDelta(t, 110.0, result.ExitPrice, 1e-9)
	assert.InDelta(t, 100.0, result.ProfitLoss, 1e-9)
	assert.Equal(t, 1, result.HoldingDays)
	assert.True(t, result.Success)
}

func TestSimulateTrade_EndOfPeriod(t *testing.T) {
	t.Parallel()

	bars := mkBars(simStart, [][4]float64{
		{100, 102, 99, 101},
		{101, 103, 100, 102},
		{102, 104, 101, 103},
	})

	result, err := SimulateTrade(bars, TradeParams{
		Symbol:        "AAPL",
		EntryPrice:    100,
		Quantity:      10,
		StopLossPct:   50,
		TakeProfitPct: 50,
		EntryDate:     simStart,
		MaxDays:       10,
	})
	require.NoError(t, err)

	assert.Equal(t, dto.ExitEndOfPeriod, result.ExitReason)
	assert.InDelta(t, 103.0, result.ExitPrice, 1e-9)
	assert.Equal(t, 2, result.HoldingDays)
}

func TestSimulateTrade_MaxDaysReached(t *testing.T) {
	t.Parallel()

	bars := mkBars(simStart, [][4]float64{
		{100, 102, 99, 101},
		{101, 103, 100, 102},
		{102, 104, 101, 103},
	})

	result, err := SimulateTrade(bars, TradeParams{
		Symbol:        "AAPL",
		EntryPrice:    100,
		Quantity:      10,
		StopLossPct:   50,
		TakeProfitPct: 50,
		EntryDate:     simStart,
		MaxDays:       2,
	})
	require.NoError(t, err)

	assert.Equal(t, dto.ExitMaxDaysReached, result.ExitReason)
	assert.InDelta(t, 102.0, result.ExitPrice, 1e-9)
}

func TestSimulateTrade_SkipsBarsBeforeEntry(t *testing.T) {
	t.Parallel()

	bars := mkBars(simStart, [][4]float64{
		{50, 55, 45, 50}, // before the entry date, must be ignored
		{100, 104, 98, 102},
	})

	result, err := SimulateTrade(bars, TradeParams{
		Symbol:        "AAPL",
		EntryPrice:    100,
		Quantity:      10,
		StopLossPct:   5,
		TakeProfitPct: 10,
		EntryDate:     simStart.AddDate(0, 0, 1),
	})
	require.NoError(t, err)

	assert.Equal(t, dto.ExitEndOfPeriod, result.ExitReason)
	assert.Equal(t, 0, result.HoldingDays)
}

func TestSimulateTrade_Errors(t *testing.T) {
	t.Parallel()

	bars := mkBars(simStart, [][4]float64{{100, 102, 99, 101}})

	_, err := SimulateTrade(nil, TradeParams{EntryPrice: 100, Quantity: 1, EntryDate: simStart})
	require.Error(t, err)
	assert.Equal(t, dto.ErrKindData, dto.KindOf(err))

	_, err = SimulateTrade(bars, TradeParams{EntryPrice: 0, Quantity: 1, EntryDate: simStart})
	require.Error(t, err)
	assert.Equal(t, dto.ErrKindInput, dto.KindOf(err))

	_, err = SimulateTrade(bars, TradeParams{EntryPrice: 100, Quantity: 0, EntryDate: simStart})
	require.Error(t, err)
	assert.Equal(t, dto.ErrKindInput, dto.KindOf(err))
}
