package simulator

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"stock-backtest/internal/dto"
)

// Default candidate grids for the stop-loss/take-profit search.
var (
	DefaultStopLossGrid   = []float64{2, 5, 10, 15}
	DefaultTakeProfitGrid = []float64{5, 10, 15, 20, 30}
)

// OptimizeParams spans the Cartesian product of the two grids.
type OptimizeParams struct {
	Symbol          string
	InitialCash     float64
	StopLossGrid    []float64
	TakeProfitGrid  []float64
	PositionSizePct float64
	CooldownDays    int
}

// Optimize evaluates every (stop loss, take profit) pair over the bars and
// returns the cell with the highest net profit plus the full grid. Cells are
// independent, so they run in parallel; selection is a deterministic scan in
// stop-loss-ascending outer / take-profit-ascending inner order, and ties
// keep the first-encountered maximum.
func Optimize(ctx context.Context, bars []dto.PriceBar, p OptimizeParams) (*dto.OptimizationResult, error) {
	slGrid := p.StopLossGrid
	if len(slGrid) == 0 {
		slGrid = DefaultStopLossGrid
	}
	tpGrid := p.TakeProfitGrid
	if len(tpGrid) == 0 {
		tpGrid = DefaultTakeProfitGrid
	}

	cells := make([]*dto.OptimizationCell, len(slGrid)*len(tpGrid))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for si, sl := range slGrid {
		for ti, tp := range tpGrid {
			idx, sl, tp := si*len(tpGrid)+ti, sl, tp
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}

				// Every cell simulates from a fresh cash state; a failing
				// cell leaves a hole instead of aborting the search.
				result, err := SimulateMultiTrade(bars, MultiTradeParams{
					Symbol:          p.Symbol,
					InitialCash:     p.InitialCash,
					StopLossPct:     sl,
					TakeProfitPct:   tp,
					PositionSizePct: p.PositionSizePct,
					CooldownDays:    p.CooldownDays,
				})
				if err != nil {
					return nil
				}

				cells[idx] = &dto.OptimizationCell{
					StopLossPct:   sl,
					TakeProfitPct: tp,
					NetProfitPct:  result.NetProfitPct,
					WinRate:       result.WinRate,
					TotalTrades:   result.TotalTrades,
					ProfitFactor:  result.ProfitFactor,
				}
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var (
		results []dto.OptimizationCell
		best    *dto.OptimizationCell
	)
	for _, cell := range cells {
		if cell == nil {
			continue
		}
		results = append(results, *cell)
		if best == nil || cell.NetProfitPct > best.NetProfitPct {
			best = cell
		}
	}

	if best == nil {
		return nil, dto.NewDataError("no valid results from optimization")
	}

	return &dto.OptimizationResult{
		Symbol:           p.Symbol,
		BestStopLossPct:  best.StopLossPct,
		BestTakeProfit:   best.TakeProfitPct,
		BestNetProfitPct: best.NetProfitPct,
		BestWinRate:      best.WinRate,
		AllResults:       results,
	}, nil
}
