package backtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-backtest/internal/dto"
)

var btStart = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

func mkCloseBars(start time.Time, closes []float64) []dto.PriceBar {
	bars := make([]dto.PriceBar, len(closes))
	for i, c := range closes {
		bars[i] = dto.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

func TestRunBuyAndHold(t *testing.T) {
	t.Parallel()

	engine := NewEngine(100000, 0.02)
	bars := mkCloseBars(btStart, []float64{100, 105, 110, 120})

	result, err := engine.RunBuyAndHold("AAPL", bars, 1.0)
	require.NoError(t, err)

	assert.Equal(t, "Buy and Hold", result.Strategy)
	assert.InDelta(t, 1000.0, result.Quantity, 1e-9)
	assert.InDelta(t, 120000.0, result.FinalValue, 1e-6)
	assert.InDelta(t, 20.0, result.TotalReturn, 1e-9)
	assert.Equal(t, 1, result.NumTrades)
	require.Len(t, result.EquityCurve, 4)
	assert.InDelta(t, 100000.0, result.EquityCurve[0].Value, 1e-9)
	assert.InDelta(t, 0.0, result.MaxDrawdown, 1e-9)
	assert.Greater(t, result.SharpeRatio, 0.0)
}

func TestRunBuyAndHold_PartialAllocation(t *testing.T) {
	t.Parallel()

	engine := NewEngine(100000, 0.02)
	bars := mkCloseBars(btStart, []float64{100, 200})

	result, err := engine.RunBuyAndHold("AAPL", bars, 0.5)
	require.NoError(t, err)

	// Half the cash doubles, the other half stays put.
	assert.InDelta(t, 150000.0, result.FinalValue, 1e-6)
}

func TestRunBuyAndHold_NoData(t *testing.T) {
	t.Parallel()

	engine := NewEngine(100000, 0.02)

	_, err := engine.RunBuyAndHold("AAPL", nil, 1.0)
	require.Error(t, err)
	assert.Equal(t, dto.ErrKindData, dto.KindOf(err))
}

// A flat series has zero return variance; the Sharpe ratio must be 0.
func TestRunBuyAndHold_ZeroVolatilitySharpe(t *testing.T) {
	t.Parallel()

	engine := NewEngine(100000, 0.02)
	bars := mkCloseBars(btStart, []float64{100, 100, 100, 100})

	result, err := engine.RunBuyAndHold("AAPL", bars, 1.0)
	require.NoError(t, err)

	assert.Zero(t, result.SharpeRatio)
	assert.Zero(t, result.MaxDrawdown)
}

func TestRunSMACrossover(t *testing.T) {
	t.Parallel()

	engine := NewEngine(100000, 0.02)

	// Long flat prelude, a run-up that crosses the averages, then a slide
	// that crosses back down.
	closes := []float64{10, 10, 10, 14, 18, 16, 2, 2}
	bars := mkCloseBars(btStart, closes)

	result, err := engine.RunSMACrossover("AAPL", bars, 2, 3, 1.0)
	require.NoError(t, err)

	assert.Equal(t, "SMA Crossover (2/3)", result.Strategy)
	assert.Equal(t, 2, result.NumTrades)
	require.Len(t, result.EquityCurve, len(closes))

	// Entry at close 14, exit at close 2: the position loses most of its value.
	assert.Less(t, result.FinalValue, result.InitialValue)
	assert.LessOrEqual(t, result.MaxDrawdown, 0.0)

	// While flat the equity is cash only.
	assert.Zero(t, result.EquityCurve[0].Position)
	assert.InDelta(t, 100000.0, result.EquityCurve[0].Value, 1e-9)

	// Holding between the triggers.
	assert.Greater(t, result.EquityCurve[4].Position, 0.0)
}

func TestRunSMACrossover_InsufficientData(t *testing.T) {
	t.Parallel()

	engine := NewEngine(100000, 0.02)
	bars := mkCloseBars(btStart, []float64{100, 101})

	_, err := engine.RunSMACrossover("AAPL", bars, 2, 3, 1.0)
	require.Error(t, err)
	assert.Equal(t, dto.ErrKindData, dto.KindOf(err))
	assert.Contains(t, err.Error(), "insufficient data")
}

func TestRunSMACrossover_InvalidWindows(t *testing.T) {
	t.Parallel()

	engine := NewEngine(100000, 0.02)
	bars := mkCloseBars(btStart, []float64{100, 101, 102, 103})

	_, err := engine.RunSMACrossover("AAPL", bars, 3, 3, 1.0)
	require.Error(t, err)
	assert.Equal(t, dto.ErrKindInput, dto.KindOf(err))
}

func TestSharpeRatio(t *testing.T) {
	t.Parallel()

	assert.Zero(t, SharpeRatio(nil, 0.02))
	assert.Zero(t, SharpeRatio([]float64{0.01}, 0.02))
	assert.Zero(t, SharpeRatio([]float64{0.01, 0.01, 0.01}, 0.02))

	positive := SharpeRatio([]float64{0.01, 0.02, 0.015, 0.005}, 0.02)
	assert.Greater(t, positive, 0.0)
}

func TestMaxDrawdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"non-decreasing", []float64{100, 100, 110, 120}, 0},
		{"single dip", []float64{100, 120, 90, 130}, -25},
		{"final trough", []float64{100, 80}, -20},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := MaxDrawdown(tt.values)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.LessOrEqual(t, got, 0.0)
		})
	}
}
