package repository

import (
	"context"
	"time"

	"stock-backtest/internal/dto"
	"stock-backtest/pkg/utils"
)

// staticRepository serves preloaded price series without any network access.
// It backs the demo command and the service tests.
type staticRepository struct {
	data map[string]*dto.StockData
}

func NewStaticRepository(data map[string]*dto.StockData) MarketDataRepository {
	return &staticRepository{data: data}
}

func (r *staticRepository) GetHistoricalData(_ context.Context, param dto.GetStockDataParam) (*dto.StockData, error) {
	stock, ok := r.data[param.Symbol]
	if !ok {
		return nil, dto.NewDataError("no data returned for symbol %s", param.Symbol)
	}

	bars := stock.Bars
	if param.StartDate != "" {
		start, err := utils.ParseDate(param.StartDate)
		if err != nil {
			return nil, dto.NewInputError("%s", err.Error())
		}

		var end time.Time
		switch {
		case param.EndDate != "":
			end, err = utils.ParseDate(param.EndDate)
			if err != nil {
				return nil, dto.NewInputError("%s", err.Error())
			}
			end = end.AddDate(0, 0, 1)
		case param.Period != "":
			_, end, err = utils.PeriodToRange(start, param.Period)
			if err != nil {
				return nil, dto.NewInputError("%s", err.Error())
			}
		default:
			end = time.Now().UTC().AddDate(0, 0, 1)
		}

		bars = filterBars(stock.Bars, start, end)
	}
	if len(bars) == 0 {
		return nil, dto.NewDataError("no data available for %s in the requested window", param.Symbol)
	}

	return &dto.StockData{
		Symbol:      stock.Symbol,
		MarketPrice: stock.MarketPrice,
		Bars:        bars,
	}, nil
}

func (r *staticRepository) GetCurrentPrice(_ context.Context, symbol string) (float64, error) {
	stock, ok := r.data[symbol]
	if !ok {
		return 0, dto.NewDataError("no data returned for symbol %s", symbol)
	}
	if stock.MarketPrice > 0 {
		return stock.MarketPrice, nil
	}
	if len(stock.Bars) == 0 {
		return 0, dto.NewDataError("no price bars available for symbol %s", symbol)
	}
	return stock.Bars[len(stock.Bars)-1].Close, nil
}

func (r *staticRepository) GetCurrentPrices(ctx context.Context, symbols []string) (map[string]float64, error) {
	prices := make(map[string]float64, len(symbols))
	for _, symbol := range symbols {
		price, err := r.GetCurrentPrice(ctx, symbol)
		if err != nil {
			continue
		}
		prices[symbol] = price
	}
	return prices, nil
}

func filterBars(bars []dto.PriceBar, start, end time.Time) []dto.PriceBar {
	var out []dto.PriceBar
	for _, bar := range bars {
		if bar.Date.Before(start) || !bar.Date.Before(end) {
			continue
		}
		out = append(out, bar)
	}
	return out
}
