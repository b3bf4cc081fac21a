package simulator

import (
	"time"

	"stock-backtest/internal/dto"
	"stock-backtest/pkg/utils"
)

// DefaultMaxDays bounds a single simulated trade when no cap is given.
const DefaultMaxDays = 365

// TradeParams describes one position to evaluate against a bar sequence.
type TradeParams struct {
	Symbol        string
	EntryPrice    float64
	Quantity      float64
	StopLossPct   float64
	TakeProfitPct float64
	EntryDate     time.Time
	MaxDays       int
}

// SimulateTrade walks the bars in chronological order and closes the
// position on the first exit condition that fires. When a bar satisfies
// both the stop and the target, the stop wins: the intrabar path is
// unknown, so the conservative outcome is chosen.
func SimulateTrade(bars []dto.PriceBar, p TradeParams) (*dto.TradeResult, error) {
	if p.EntryPrice <= 0 {
		return nil, dto.NewInputError("entry price must be positive, got %g", p.EntryPrice)
	}
	if p.Quantity <= 0 {
		return nil, dto.NewInputError("quantity must be positive, got %g", p.Quantity)
	}

	maxDays := p.MaxDays
	if maxDays <= 0 {
		maxDays = DefaultMaxDays
	}

	window := barsFrom(bars, p.EntryDate)
	if len(window) == 0 {
		return nil, dto.NewDataError("no data available for simulation")
	}
	if len(window) > maxDays {
		window = window[:maxDays]
	}

	stopPrice := p.EntryPrice * (1 - p.StopLossPct/100)
	takePrice := p.EntryPrice * (1 + p.TakeProfitPct/100)

	var (
		exitPrice  float64
		exitDate   time.Time
		exitReason dto.ExitReason
	)

	for _, bar := range window {
		// Stop loss is checked first: deterministic tie-break when both
		// conditions are true within the same bar.
		if bar.Low <= stopPrice {
			exitPrice = stopPrice
			exitDate = bar.Date
			exitReason = dto.ExitStopLoss
			break
		}
		if bar.High >= takePrice {
			exitPrice = takePrice
			exitDate = bar.Date
			exitReason = dto.ExitTakeProfit
			break
		}
	}

	if exitReason == "" {
		last := window[len(window)-1]
		exitPrice = last.Close
		exitDate = last.Date
		if len(window) >= maxDays {
			exitReason = dto.ExitMaxDaysReached
		} else {
			exitReason = dto.ExitEndOfPeriod
		}
	}

	entryCost := p.EntryPrice * p.Quantity
	exitValue := exitPrice * p.Quantity
	profitLoss := exitValue - entryCost

	return &dto.TradeResult{
		Symbol:          p.Symbol,
		EntryDate:       utils.FormatDate(p.EntryDate),
		EntryPrice:      p.EntryPrice,
		ExitDate:        utils.FormatDate(exitDate),
		ExitPrice:       exitPrice,
		ExitReason:      exitReason,
		Quantity:        p.Quantity,
		EntryCost:       entryCost,
		ExitValue:       exitValue,
		ProfitLoss:      profitLoss,
		ProfitLossPct:   profitLoss / entryCost * 100,
		StopLossPrice:   stopPrice,
		TakeProfitPrice: takePrice,
		StopLossPct:     p.StopLossPct,
		TakeProfitPct:   p.TakeProfitPct,
		HoldingDays:     utils.DaysBetween(p.EntryDate, exitDate),
		Success:         exitReason == dto.ExitTakeProfit,
	}, nil
}

// barsFrom returns the suffix of bars dated at or after the entry date.
func barsFrom(bars []dto.PriceBar, entry time.Time) []dto.PriceBar {
	for i, bar := range bars {
		if !bar.Date.Before(entry) {
			return bars[i:]
		}
	}
	return nil
}
