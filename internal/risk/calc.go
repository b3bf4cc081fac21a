package risk

import (
	"fmt"
	"math"

	"stock-backtest/internal/dto"
)

// TradingDaysPerYear is the annualization factor for daily return series.
const TradingDaysPerYear = 252

// PositionSize sizes a position so that hitting the stop loses exactly
// riskPct percent of the account.
func PositionSize(accountValue, riskPct, entryPrice, stopLossPrice float64) (*dto.PositionSizeResult, error) {
	riskAmount := accountValue * (riskPct / 100)
	riskPerShare := math.Abs(entryPrice - stopLossPrice)

	if riskPerShare == 0 {
		return nil, dto.NewInputError("entry price and stop loss cannot be the same")
	}

	positionSize := riskAmount / riskPerShare

	return &dto.PositionSizeResult{
		PositionSize:   positionSize,
		TotalCost:      positionSize * entryPrice,
		RiskAmount:     riskAmount,
		RiskPerShare:   riskPerShare,
		AccountRiskPct: riskPct,
	}, nil
}

// RiskReward computes the reward-to-risk ratio of a planned trade.
func RiskReward(entryPrice, stopLossPrice, takeProfitPrice float64) (*dto.RiskRewardResult, error) {
	riskAmount := math.Abs(entryPrice - stopLossPrice)
	reward := math.Abs(takeProfitPrice - entryPrice)

	if riskAmount == 0 {
		return nil, dto.NewInputError("risk cannot be zero")
	}

	return &dto.RiskRewardResult{
		Risk:            riskAmount,
		Reward:          reward,
		RiskRewardRatio: reward / riskAmount,
		RiskPct:         riskAmount / entryPrice * 100,
		RewardPct:       reward / entryPrice * 100,
		EntryPrice:      entryPrice,
		StopLossPrice:   stopLossPrice,
		TakeProfitPrice: takeProfitPrice,
	}, nil
}

// VaR computes Value-at-Risk at the given confidence level plus the
// conditional VaR (the mean of returns at or below the VaR).
func VaR(returns []float64, confidenceLevel float64) *dto.VaRResult {
	if len(returns) == 0 {
		return &dto.VaRResult{ConfidenceLevel: confidenceLevel}
	}

	valueAtRisk := Percentile(returns, (1-confidenceLevel)*100)

	var tailSum float64
	var tailCount int
	for _, r := range returns {
		if r <= valueAtRisk {
			tailSum += r
			tailCount++
		}
	}
	cvar := 0.0
	if tailCount > 0 {
		cvar = tailSum / float64(tailCount)
	}

	return &dto.VaRResult{
		VaR:             valueAtRisk,
		CVaR:            cvar,
		ConfidenceLevel: confidenceLevel,
		Interpretation: fmt.Sprintf("%g%% confident losses will not exceed %.2f%%",
			confidenceLevel*100, math.Abs(valueAtRisk)*100),
	}
}

// Volatility computes the standard deviation of returns, annualized by
// sqrt(252) when requested.
func Volatility(returns []float64, annualize bool) *dto.VolatilityResult {
	if len(returns) == 0 {
		return &dto.VolatilityResult{Annualized: annualize}
	}

	volatility := Std(returns)
	if annualize {
		volatility *= math.Sqrt(TradingDaysPerYear)
	}

	maxReturn, minReturn := returns[0], returns[0]
	for _, r := range returns[1:] {
		maxReturn = math.Max(maxReturn, r)
		minReturn = math.Min(minReturn, r)
	}

	return &dto.VolatilityResult{
		Volatility:    volatility,
		VolatilityPct: volatility * 100,
		Annualized:    annualize,
		MeanReturn:    Mean(returns),
		MaxReturn:     maxReturn,
		MinReturn:     minReturn,
	}
}

// Kelly computes the Kelly criterion fraction and the half-Kelly variant.
// winRate is a probability in [0, 1]; avgWin and avgLoss are magnitudes.
func Kelly(winRate, avgWin, avgLoss float64) (*dto.KellyResult, error) {
	if avgLoss == 0 {
		return nil, dto.NewInputError("average loss cannot be zero")
	}

	winLossRatio := avgWin / avgLoss
	kelly := winRate - (1-winRate)/winLossRatio

	return &dto.KellyResult{
		KellyPct:       kelly * 100,
		HalfKellyPct:   kelly * 0.5 * 100,
		WinRate:        winRate,
		WinLossRatio:   winLossRatio,
		Recommendation: "Use half-Kelly for more conservative sizing",
	}, nil
}

// Beta regresses stock returns against market returns. The series are
// aligned by index and truncated to the shorter one. Degenerate inputs
// (either series empty, zero market variance) fall back to beta 1.
func Beta(stockReturns, marketReturns []float64) *dto.BetaResult {
	neutral := &dto.BetaResult{Beta: 1.0, Alpha: 0.0, RSquared: 0.0}
	if len(stockReturns) == 0 || len(marketReturns) == 0 {
		return neutral
	}

	n := len(stockReturns)
	if len(marketReturns) < n {
		n = len(marketReturns)
	}
	stock := stockReturns[:n]
	market := marketReturns[:n]

	covariance := Cov(stock, market)
	marketVariance := Cov(market, market)
	if marketVariance == 0 {
		return neutral
	}

	beta := covariance / marketVariance
	alpha := Mean(stock) - beta*Mean(market)

	var rSquared float64
	stockVariance := Cov(stock, stock)
	if stockVariance > 0 {
		correlation := covariance / math.Sqrt(stockVariance*marketVariance)
		rSquared = correlation * correlation
	}

	interpretation := "Stock is less volatile than market"
	if beta > 1 {
		interpretation = "Stock is more volatile than market"
	}

	return &dto.BetaResult{
		Beta:           beta,
		Alpha:          alpha,
		RSquared:       rSquared,
		Interpretation: interpretation,
	}
}
