package backtest

import (
	"fmt"

	"stock-backtest/internal/dto"
	"stock-backtest/internal/ledger"
	"stock-backtest/internal/risk"
	"stock-backtest/internal/signal"
	"stock-backtest/pkg/utils"
)

// Engine runs named strategies over a price series. Every run owns a fresh
// ledger; nothing is shared between runs.
type Engine struct {
	initialCash  float64
	riskFreeRate float64
}

func NewEngine(initialCash, riskFreeRate float64) *Engine {
	return &Engine{
		initialCash:  initialCash,
		riskFreeRate: riskFreeRate,
	}
}

// RunBuyAndHold buys once at the first bar's close with allocation times the
// initial cash and holds to the end of the series.
func (e *Engine) RunBuyAndHold(symbol string, bars []dto.PriceBar, allocation float64) (*dto.BacktestResult, error) {
	if len(bars) == 0 {
		return nil, dto.NewDataError("no data available for specified period")
	}
	if allocation <= 0 {
		allocation = 1.0
	}

	book := ledger.New(e.initialCash)

	firstBar := bars[0]
	investAmount := e.initialCash * allocation
	quantity := investAmount / firstBar.Close

	if !book.Buy(symbol, quantity, firstBar.Close, firstBar.Date) {
		return nil, dto.NewStateError("failed to execute buy order")
	}

	equityCurve := make([]dto.EquityPoint, 0, len(bars))
	values := make([]float64, 0, len(bars))
	for _, bar := range bars {
		totalValue := book.TotalValue(map[string]float64{symbol: bar.Close})
		equityCurve = append(equityCurve, dto.EquityPoint{
			Date:  utils.FormatDate(bar.Date),
			Value: totalValue,
			Price: bar.Close,
		})
		values = append(values, totalValue)
	}

	finalValue := values[len(values)-1]

	return &dto.BacktestResult{
		Strategy:     "Buy and Hold",
		Symbol:       symbol,
		StartDate:    utils.FormatDate(bars[0].Date),
		EndDate:      utils.FormatDate(bars[len(bars)-1].Date),
		InitialValue: e.initialCash,
		FinalValue:   finalValue,
		TotalReturn:  (finalValue - e.initialCash) / e.initialCash * 100,
		BuyPrice:     firstBar.Close,
		SellPrice:    bars[len(bars)-1].Close,
		Quantity:     quantity,
		SharpeRatio:  SharpeRatio(risk.Returns(values), e.riskFreeRate),
		MaxDrawdown:  MaxDrawdown(values),
		NumTrades:    1,
		EquityCurve:  equityCurve,
	}, nil
}

// RunSMACrossover trades the short/long moving average crossover: buy the
// entry trigger with all available cash times the allocation, sell the full
// position on the exit trigger.
func (e *Engine) RunSMACrossover(symbol string, bars []dto.PriceBar, shortWindow, longWindow int, allocation float64) (*dto.BacktestResult, error) {
	gen, err := signal.NewGenerator(shortWindow, longWindow)
	if err != nil {
		return nil, err
	}
	if len(bars) < longWindow {
		return nil, dto.NewDataError("insufficient data for strategy: need %d bars, got %d", longWindow, len(bars))
	}
	if allocation <= 0 {
		allocation = 1.0
	}

	closes := make([]float64, len(bars))
	for i, bar := range bars {
		closes[i] = bar.Close
	}
	changes := gen.PositionChanges(closes)

	book := ledger.New(e.initialCash)

	var position float64
	var numTrades int
	equityCurve := make([]dto.EquityPoint, 0, len(bars))
	values := make([]float64, 0, len(bars))

	for i, bar := range bars {
		switch {
		case changes[i] == 1 && position == 0:
			investAmount := book.Cash() * allocation
			quantity := investAmount / bar.Close
			if book.Buy(symbol, quantity, bar.Close, bar.Date) {
				position = quantity
				numTrades++
			}
		case changes[i] == -1 && position > 0:
			if book.Sell(symbol, position, bar.Close, bar.Date) {
				position = 0
				numTrades++
			}
		}

		prices := map[string]float64{}
		if position > 0 {
			prices[symbol] = bar.Close
		}
		totalValue := book.TotalValue(prices)

		equityCurve = append(equityCurve, dto.EquityPoint{
			Date:     utils.FormatDate(bar.Date),
			Value:    totalValue,
			Price:    bar.Close,
			Position: position,
		})
		values = append(values, totalValue)
	}

	finalValue := values[len(values)-1]

	return &dto.BacktestResult{
		Strategy:     fmt.Sprintf("SMA Crossover (%d/%d)", shortWindow, longWindow),
		Symbol:       symbol,
		StartDate:    utils.FormatDate(bars[0].Date),
		EndDate:      utils.FormatDate(bars[len(bars)-1].Date),
		InitialValue: e.initialCash,
		FinalValue:   finalValue,
		TotalReturn:  (finalValue - e.initialCash) / e.initialCash * 100,
		SharpeRatio:  SharpeRatio(risk.Returns(values), e.riskFreeRate),
		MaxDrawdown:  MaxDrawdown(values),
		NumTrades:    numTrades,
		EquityCurve:  equityCurve,
	}, nil
}

