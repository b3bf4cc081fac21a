package whatif

import (
	"math"
	"time"

	"stock-backtest/internal/dto"
	"stock-backtest/internal/risk"
	"stock-backtest/pkg/utils"
)

const defaultDCAPeriods = 12

// Engine answers retrospective "what if I had invested" questions over a
// historical price series. All methods are pure over the bars they receive.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// AllIn simulates investing the full amount at the first bar's close and
// holding to the last bar. The timeline carries one point per bar.
func (e *Engine) AllIn(symbol string, bars []dto.PriceBar, investment float64) (*dto.AllInResult, error) {
	if len(bars) == 0 {
		return nil, dto.NewDataError("no data available for %s in the requested window", symbol)
	}
	if investment <= 0 {
		return nil, dto.NewInputError("investment amount must be positive")
	}

	entry := bars[0]
	exit := bars[len(bars)-1]
	if entry.Close <= 0 {
		return nil, dto.NewDataError("invalid entry price for %s", symbol)
	}

	shares := investment / entry.Close
	exitValue := shares * exit.Close

	values := make([]float64, len(bars))
	timeline := make([]dto.TimelinePoint, len(bars))
	for i, bar := range bars {
		value := shares * bar.Close
		values[i] = value
		timeline[i] = dto.TimelinePoint{
			Date:           utils.FormatDate(bar.Date),
			Price:          bar.Close,
			PortfolioValue: value,
			ReturnPct:      (value - investment) / investment * 100,
		}
	}

	peakValue := values[0]
	peakIdx := 0
	maxDrawdown := 0.0
	drawdownIdx := 0
	runningMax := values[0]
	for i, v := range values {
		if v > peakValue {
			peakValue = v
			peakIdx = i
		}
		if v > runningMax {
			runningMax = v
		}
		if runningMax > 0 {
			dd := (v - runningMax) / runningMax * 100
			if dd < maxDrawdown {
				maxDrawdown = dd
				drawdownIdx = i
			}
		}
	}

	dailyReturns := risk.Returns(values)
	bestIdx, worstIdx := -1, -1
	for i, r := range dailyReturns {
		if bestIdx == -1 || r > dailyReturns[bestIdx] {
			bestIdx = i
		}
		if worstIdx == -1 || r < dailyReturns[worstIdx] {
			worstIdx = i
		}
	}

	holdingDays := utils.DaysBetween(entry.Date, exit.Date)
	annualized := 0.0
	if holdingDays > 0 && exitValue > 0 {
		annualized = (math.Pow(exitValue/investment, 365.25/float64(holdingDays)) - 1) * 100
	}

	result := &dto.AllInResult{
		Symbol:              symbol,
		Scenario:            "All In",
		EntryDate:           utils.FormatDate(entry.Date),
		EntryPrice:          entry.Close,
		ExitDate:            utils.FormatDate(exit.Date),
		ExitPrice:           exit.Close,
		Shares:              shares,
		InvestmentAmount:    investment,
		ExitValue:           exitValue,
		ProfitLoss:          exitValue - investment,
		ProfitLossPct:       (exitValue - investment) / investment * 100,
		HoldingDays:         holdingDays,
		AnnualizedReturn:    annualized,
		PeakValue:           peakValue,
		PeakDate:            utils.FormatDate(bars[peakIdx].Date),
		MaxDrawdownPct:      maxDrawdown,
		MaxDrawdownDate:     utils.FormatDate(bars[drawdownIdx].Date),
		AnnualVolatilityPct: risk.Std(dailyReturns) * math.Sqrt(risk.TradingDaysPerYear) * 100,
		Timeline:            timeline,
	}

	// Daily return i spans bars[i] to bars[i+1]; the date reported is the
	// day the return was realized.
	if bestIdx >= 0 {
		result.BestDayReturnPct = dailyReturns[bestIdx] * 100
		result.BestDayDate = utils.FormatDate(bars[bestIdx+1].Date)
		result.WorstDayReturnPct = dailyReturns[worstIdx] * 100
		result.WorstDayDate = utils.FormatDate(bars[worstIdx+1].Date)
	}

	return result, nil
}

// DCA buys a fixed dollar amount at the close of the first trading day of
// each calendar month in the window. maxPurchases of 0 means unlimited.
func (e *Engine) DCA(symbol string, bars []dto.PriceBar, monthly float64, maxPurchases int) (*dto.DCAResult, error) {
	if len(bars) == 0 {
		return nil, dto.NewDataError("no data available for %s in the requested window", symbol)
	}
	if monthly <= 0 {
		return nil, dto.NewInputError("monthly investment must be positive")
	}

	dates := make([]time.Time, len(bars))
	for i, bar := range bars {
		dates[i] = bar.Date
	}

	var (
		purchases     []dto.DCAPurchase
		totalShares   float64
		totalInvested float64
	)
	for i, bar := range bars {
		if !utils.FirstTradingDayOfMonth(dates, i) {
			continue
		}
		if maxPurchases > 0 && len(purchases) >= maxPurchases {
			break
		}
		if bar.Close <= 0 {
			continue
		}
		shares := monthly / bar.Close
		totalShares += shares
		totalInvested += monthly
		purchases = append(purchases, dto.DCAPurchase{
			Date:          utils.FormatDate(bar.Date),
			Price:         bar.Close,
			Shares:        shares,
			Amount:        monthly,
			TotalShares:   totalShares,
			TotalInvested: totalInvested,
		})
	}
	if len(purchases) == 0 {
		return nil, dto.NewDataError("no purchase dates found for %s", symbol)
	}

	finalPrice := bars[len(bars)-1].Close
	finalValue := totalShares * finalPrice

	return &dto.DCAResult{
		Symbol:            symbol,
		Strategy:          "Dollar Cost Averaging",
		StartDate:         utils.FormatDate(bars[0].Date),
		EndDate:           utils.FormatDate(bars[len(bars)-1].Date),
		MonthlyInvestment: monthly,
		TotalInvested:     totalInvested,
		TotalShares:       totalShares,
		AvgPrice:          totalInvested / totalShares,
		FinalPrice:        finalPrice,
		FinalValue:        finalValue,
		ProfitLoss:        finalValue - totalInvested,
		ProfitLossPct:     (finalValue - totalInvested) / totalInvested * 100,
		NumPurchases:      len(purchases),
		Purchases:         purchases,
	}, nil
}

// LumpSumVsDCA pits a single up-front investment against spreading the
// same total over monthly buys. A tie on final value goes to DCA.
func (e *Engine) LumpSumVsDCA(symbol string, bars []dto.PriceBar, totalAmount float64, dcaPeriods int) (*dto.LumpSumVsDCAResult, error) {
	if totalAmount <= 0 {
		return nil, dto.NewInputError("total amount must be positive")
	}
	if dcaPeriods <= 0 {
		dcaPeriods = defaultDCAPeriods
	}

	lump, err := e.AllIn(symbol, bars, totalAmount)
	if err != nil {
		return nil, err
	}

	dca, err := e.DCA(symbol, bars, totalAmount/float64(dcaPeriods), dcaPeriods)
	if err != nil {
		return nil, err
	}

	// DCA may not deploy the full amount when the window has fewer months
	// than periods; the idle remainder stays as cash.
	dcaFinal := dca.FinalValue + (totalAmount - dca.TotalInvested)

	winner := "DCA"
	if lump.ExitValue > dcaFinal {
		winner = "Lump Sum"
	}
	diff := math.Abs(lump.ExitValue - dcaFinal)

	return &dto.LumpSumVsDCAResult{
		Symbol:      symbol,
		TotalAmount: totalAmount,
		StartDate:   utils.FormatDate(bars[0].Date),
		EndDate:     utils.FormatDate(bars[len(bars)-1].Date),
		LumpSum: dto.StrategyOutcome{
			FinalValue:     lump.ExitValue,
			ReturnPct:      lump.ProfitLossPct,
			MaxDrawdownPct: lump.MaxDrawdownPct,
		},
		DCA: dto.StrategyOutcome{
			FinalValue:   dcaFinal,
			ReturnPct:    (dcaFinal - totalAmount) / totalAmount * 100,
			NumPurchases: dca.NumPurchases,
		},
		Winner:        winner,
		Difference:    diff,
		DifferencePct: diff / totalAmount * 100,
	}, nil
}

// Compare runs an all-in scenario per symbol over the same window and ranks
// the outcomes. Symbols with no usable data are skipped.
func (e *Engine) Compare(symbols []string, barsBySymbol map[string][]dto.PriceBar, investment float64) (*dto.CompareResult, error) {
	if investment <= 0 {
		return nil, dto.NewInputError("investment amount must be positive")
	}

	var (
		scenarios []dto.ScenarioSummary
		results   []*dto.AllInResult
	)
	for _, symbol := range symbols {
		res, err := e.AllIn(symbol, barsBySymbol[symbol], investment)
		if err != nil {
			if dto.KindOf(err) == dto.ErrKindData {
				continue
			}
			return nil, err
		}
		results = append(results, res)
		scenarios = append(scenarios, dto.ScenarioSummary{
			Symbol:              res.Symbol,
			ProfitLoss:          res.ProfitLoss,
			ProfitLossPct:       res.ProfitLossPct,
			ExitValue:           res.ExitValue,
			MaxDrawdownPct:      res.MaxDrawdownPct,
			AnnualVolatilityPct: res.AnnualVolatilityPct,
			AnnualizedReturn:    res.AnnualizedReturn,
		})
	}
	if len(results) == 0 {
		return nil, dto.NewDataError("no valid scenarios generated")
	}

	bestIdx, worstIdx := 0, 0
	for i, res := range results {
		if res.ProfitLossPct > results[bestIdx].ProfitLossPct {
			bestIdx = i
		}
		if res.ProfitLossPct < results[worstIdx].ProfitLossPct {
			worstIdx = i
		}
	}

	best := results[bestIdx]
	worst := results[worstIdx]

	return &dto.CompareResult{
		InvestmentAmount: investment,
		StartDate:        best.EntryDate,
		EndDate:          best.ExitDate,
		Scenarios:        scenarios,
		BestPerformer: dto.Performer{
			Symbol:     best.Symbol,
			ReturnPct:  best.ProfitLossPct,
			FinalValue: best.ExitValue,
		},
		WorstPerformer: dto.Performer{
			Symbol:     worst.Symbol,
			ReturnPct:  worst.ProfitLossPct,
			FinalValue: worst.ExitValue,
		},
		Spread: best.ProfitLossPct - worst.ProfitLossPct,
	}, nil
}
