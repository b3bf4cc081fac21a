package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-backtest/internal/dto"
)

func TestPositionSize(t *testing.T) {
	t.Parallel()

	result, err := PositionSize(100000, 2, 100, 95)
	require.NoError(t, err)

	assert.InDelta(t, 2000.0, result.RiskAmount, 1e-9)
	assert.InDelta(t, 5.0, result.RiskPerShare, 1e-9)
	assert.InDelta(t, 400.0, result.PositionSize, 1e-9)
	assert.InDelta(t, 40000.0, result.TotalCost, 1e-9)
}

func TestPositionSize_EntryEqualsStop(t *testing.T) {
	t.Parallel()

	_, err := PositionSize(100000, 2, 100, 100)
	require.Error(t, err)
	assert.Equal(t, dto.ErrKindInput, dto.KindOf(err))
}

func TestRiskReward(t *testing.T) {
	t.Parallel()

	result, err := RiskReward(100, 95, 110)
	require.NoError(t, err)

	assert.InDelta(t, 5.0, result.Risk, 1e-9)
	assert.InDelta(t, 10.0, result.Reward, 1e-9)
	assert.InDelta(t, 2.0, result.RiskRewardRatio, 1e-9)
	assert.InDelta(t, 5.0, result.RiskPct, 1e-9)
	assert.InDelta(t, 10.0, result.RewardPct, 1e-9)
}

func TestRiskReward_ZeroRisk(t *testing.T) {
	t.Parallel()

	_, err := RiskReward(100, 100, 110)
	require.Error(t, err)
	assert.Equal(t, dto.ErrKindInput, dto.KindOf(err))
}

func TestVaR(t *testing.T) {
	t.Parallel()

	returns := []float64{-0.05, -0.02, 0.01, 0.02, 0.03}

	result := VaR(returns, 0.95)

	// 5th percentile of the sorted series with linear interpolation.
	assert.InDelta(t, -0.044, result.VaR, 1e-9)
	assert.InDelta(t, -0.05, result.CVaR, 1e-9)
}

func TestVaR_EmptySeries(t *testing.T) {
	t.Parallel()

	result := VaR(nil, 0.95)
	assert.Zero(t, result.VaR)
	assert.Zero(t, result.CVaR)
}

func TestVolatility(t *testing.T) {
	t.Parallel()

	returns := []float64{0.01, -0.02, 0.03, 0.01}

	result := Volatility(returns, false)
	assert.InDelta(t, Std(returns), result.Volatility, 1e-12)
	assert.InDelta(t, 0.03, result.MaxReturn, 1e-12)
	assert.InDelta(t, -0.02, result.MinReturn, 1e-12)

	annualized := Volatility(returns, true)
	assert.Greater(t, annualized.Volatility, result.Volatility)
}

func TestVolatility_EmptySeries(t *testing.T) {
	t.Parallel()

	result := Volatility(nil, true)
	assert.Zero(t, result.Volatility)
}

func TestKelly(t *testing.T) {
	t.Parallel()

	result, err := Kelly(0.6, 100, 50)
	require.NoError(t, err)

	// 0.6 - 0.4/2 = 0.4
	assert.InDelta(t, 40.0, result.KellyPct, 1e-9)
	assert.InDelta(t, 20.0, result.HalfKellyPct, 1e-9)
	assert.InDelta(t, 2.0, result.WinLossRatio, 1e-9)
}

func TestKelly_ZeroAvgLoss(t *testing.T) {
	t.Parallel()

	_, err := Kelly(0.6, 100, 0)
	require.Error(t, err)
	assert.Equal(t, dto.ErrKindInput, dto.KindOf(err))
}

func TestBeta(t *testing.T) {
	t.Parallel()

	market := []float64{0.01, -0.02, 0.03, -0.01, 0.02}
	// Exactly twice the market: beta 2, perfect correlation.
	stock := []float64{0.02, -0.04, 0.06, -0.02, 0.04}

	result := Beta(stock, market)

	assert.InDelta(t, 2.0, result.Beta, 1e-9)
	assert.InDelta(t, 0.0, result.Alpha, 1e-9)
	assert.InDelta(t, 1.0, result.RSquared, 1e-9)
}

func TestBeta_Degenerate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		stock  []float64
		market []float64
	}{
		{"empty stock", nil, []float64{0.01, 0.02}},
		{"empty market", []float64{0.01, 0.02}, nil},
		{"zero market variance", []float64{0.01, 0.02, 0.03}, []float64{0.01, 0.01, 0.01}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := Beta(tt.stock, tt.market)
			assert.InDelta(t, 1.0, result.Beta, 1e-9)
			assert.Zero(t, result.Alpha)
			assert.Zero(t, result.RSquared)
		})
	}
}

func TestPercentile(t *testing.T) {
	t.Parallel()

	values := []float64{1, 2, 3, 4}

	assert.InDelta(t, 1.0, Percentile(values, 0), 1e-9)
	assert.InDelta(t, 4.0, Percentile(values, 100), 1e-9)
	assert.InDelta(t, 2.5, Percentile(values, 50), 1e-9)
	assert.InDelta(t, 1.15, Percentile(values, 5), 1e-9)
}

func TestReturns(t *testing.T) {
	t.Parallel()

	returns := Returns([]float64{100, 110, 99})
	require.Len(t, returns, 2)
	assert.InDelta(t, 0.10, returns[0], 1e-9)
	assert.InDelta(t, -0.10, returns[1], 1e-9)

	assert.Nil(t, Returns([]float64{100}))
}