package simulator

import (
	"stock-backtest/internal/dto"
	"stock-backtest/pkg/utils"
)

// MultiTradeParams drives a sequential re-entry simulation over one symbol.
type MultiTradeParams struct {
	Symbol          string
	InitialCash     float64
	StopLossPct     float64
	TakeProfitPct   float64
	PositionSizePct float64 // share of current cash per entry, default 10
	CooldownDays    int     // bars to skip after an exit, minimum 1
}

// SimulateMultiTrade repeatedly opens a position at the current bar's close,
// runs it to an exit and re-enters after the cooldown. Each realized
// position is reinvested in full: cash = cash - entry_cost + exit_value.
func SimulateMultiTrade(bars []dto.PriceBar, p MultiTradeParams) (*dto.MultiTradeResult, error) {
	if len(bars) == 0 {
		return nil, dto.NewDataError("no data available for simulation")
	}
	if p.InitialCash <= 0 {
		return nil, dto.NewInputError("initial cash must be positive, got %g", p.InitialCash)
	}

	positionSizePct := p.PositionSizePct
	if positionSizePct <= 0 {
		positionSizePct = 10
	}
	cooldown := p.CooldownDays
	if cooldown < 1 {
		// A cooldown below one bar would re-enter on the exit bar forever.
		cooldown = 1
	}

	var trades []dto.TradeResult
	currentCash := p.InitialCash

	for i := 0; i < len(bars); {
		entryBar := bars[i]
		entryPrice := entryBar.Close

		quantity := 0.0
		if entryPrice > 0 {
			quantity = currentCash * (positionSizePct / 100) / entryPrice
		}
		if quantity == 0 {
			// Cash exhausted or unusable price: stop the loop, not an error.
			break
		}

		stopPrice := entryPrice * (1 - p.StopLossPct/100)
		takePrice := entryPrice * (1 + p.TakeProfitPct/100)

		exitIdx := len(bars) - 1
		exitPrice := bars[exitIdx].Close
		exitReason := dto.ExitEndOfPeriod

		for j := i; j < len(bars); j++ {
			if bars[j].Low <= stopPrice {
				exitIdx = j
				exitPrice = stopPrice
				exitReason = dto.ExitStopLoss
				break
			}
			if bars[j].High >= takePrice {
				exitIdx = j
				exitPrice = takePrice
				exitReason = dto.ExitTakeProfit
				break
			}
		}

		entryCost := entryPrice * quantity
		exitValue := exitPrice * quantity
		profitLoss := exitValue - entryCost

		currentCash = currentCash - entryCost + exitValue

		trades = append(trades, dto.TradeResult{
			Symbol:          p.Symbol,
			EntryDate:       utils.FormatDate(entryBar.Date),
			EntryPrice:      entryPrice,
			ExitDate:        utils.FormatDate(bars[exitIdx].Date),
			ExitPrice:       exitPrice,
			ExitReason:      exitReason,
			Quantity:        quantity,
			EntryCost:       entryCost,
			ExitValue:       exitValue,
			ProfitLoss:      profitLoss,
			ProfitLossPct:   profitLoss / entryCost * 100,
			StopLossPrice:   stopPrice,
			TakeProfitPrice: takePrice,
			StopLossPct:     p.StopLossPct,
			TakeProfitPct:   p.TakeProfitPct,
			HoldingDays:     utils.DaysBetween(entryBar.Date, bars[exitIdx].Date),
			Success:         exitReason == dto.ExitTakeProfit,
		})

		i = exitIdx + cooldown
	}

	if len(trades) == 0 {
		return nil, dto.NewDataError("no trades executed")
	}

	return aggregate(bars, p, trades, currentCash), nil
}

func aggregate(bars []dto.PriceBar, p MultiTradeParams, trades []dto.TradeResult, finalCash float64) *dto.MultiTradeResult {
	totalTrades := len(trades)

	var winningTrades int
	var totalProfit, totalLoss, netProfit float64
	for _, t := range trades {
		if t.Success {
			winningTrades++
		}
		netProfit += t.ProfitLoss
		if t.ProfitLoss > 0 {
			totalProfit += t.ProfitLoss
		} else if t.ProfitLoss < 0 {
			totalLoss += -t.ProfitLoss
		}
	}
	losingTrades := totalTrades - winningTrades

	var avgWin, avgLoss float64
	if winningTrades > 0 {
		avgWin = totalProfit / float64(winningTrades)
	}
	if losingTrades > 0 {
		avgLoss = totalLoss / float64(losingTrades)
	}

	// nil profit factor means no losing trades, i.e. +inf.
	var profitFactor *float64
	if totalLoss > 0 {
		profitFactor = utils.ToPointer(totalProfit / totalLoss)
	}

	return &dto.MultiTradeResult{
		Symbol:        p.Symbol,
		StartDate:     utils.FormatDate(bars[0].Date),
		EndDate:       utils.FormatDate(bars[len(bars)-1].Date),
		InitialCash:   p.InitialCash,
		FinalCash:     finalCash,
		NetProfit:     netProfit,
		NetProfitPct:  (finalCash - p.InitialCash) / p.InitialCash * 100,
		TotalTrades:   totalTrades,
		WinningTrades: winningTrades,
		LosingTrades:  losingTrades,
		WinRate:       float64(winningTrades) / float64(totalTrades) * 100,
		AvgWin:        avgWin,
		AvgLoss:       avgLoss,
		ProfitFactor:  profitFactor,
		StopLossPct:   p.StopLossPct,
		TakeProfitPct: p.TakeProfitPct,
		Trades:        trades,
	}
}
