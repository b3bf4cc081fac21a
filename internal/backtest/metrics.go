package backtest

import (
	"math"

	"stock-backtest/internal/risk"
)

// SharpeRatio annualizes mean and deviation of daily returns against the
// risk-free rate. It is 0 when no returns exist or the deviation is 0.
func SharpeRatio(returns []float64, riskFreeRate float64) float64 {
	if len(returns) == 0 {
		return 0
	}

	std := risk.Std(returns)
	if std == 0 {
		return 0
	}

	annualReturn := risk.Mean(returns) * risk.TradingDaysPerYear
	annualStd := std * math.Sqrt(risk.TradingDaysPerYear)

	return (annualReturn - riskFreeRate) / annualStd
}

// MaxDrawdown is the deepest percentage decline from a running peak,
// a non-positive number. A non-decreasing curve has drawdown 0.
func MaxDrawdown(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	runningMax := values[0]
	maxDrawdown := 0.0
	for _, v := range values {
		if v > runningMax {
			runningMax = v
		}
		if runningMax > 0 {
			drawdown := (v - runningMax) / runningMax * 100
			if drawdown < maxDrawdown {
				maxDrawdown = drawdown
			}
		}
	}
	return maxDrawdown
}
