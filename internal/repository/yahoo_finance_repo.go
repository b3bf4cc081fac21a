package repository

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"stock-backtest/config"
	"stock-backtest/internal/dto"
	"stock-backtest/pkg/cache"
	"stock-backtest/pkg/httpclient"
	"stock-backtest/pkg/logger"
	"stock-backtest/pkg/utils"
)

const defaultPeriod = "1y"

type yahooFinanceRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	logger         *logger.Logger
	cache          cache.Cache
	requestLimiter *rate.Limiter
	mu             sync.Mutex
}

// NewYahooFinanceRepository creates a chart-API backed market data source.
// Responses are cached per symbol and window to stay under the rate limit.
func NewYahooFinanceRepository(cfg *config.Config, log *logger.Logger, dataCache cache.Cache) MarketDataRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.YahooFinance.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	return &yahooFinanceRepository{
		httpClient:     httpclient.New(cfg.YahooFinance.BaseURL, cfg.YahooFinance.Timeout),
		cfg:            cfg,
		logger:         log,
		cache:          dataCache,
		requestLimiter: requestLimiter,
	}
}

func (r *yahooFinanceRepository) GetHistoricalData(ctx context.Context, param dto.GetStockDataParam) (*dto.StockData, error) {
	start, end, err := r.resolveWindow(param)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("yahoo:%s:%s:%s", param.Symbol, utils.FormatDate(start), utils.FormatDate(end))
	if cached, found := cache.GetTyped[*dto.StockData](r.cache, cacheKey); found {
		return cached, nil
	}

	r.mu.Lock()
	if !r.requestLimiter.Allow() {
		r.logger.WarnContext(ctx, "yahoo finance request limit reached, waiting",
			logger.IntField("max_request_per_minute", r.cfg.YahooFinance.MaxRequestPerMinute))
	}
	if err := r.requestLimiter.Wait(ctx); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	r.mu.Unlock()

	endpoint := "/" + param.Symbol
	queryParams := map[string]string{
		"period1":        fmt.Sprintf("%d", start.Unix()),
		"period2":        fmt.Sprintf("%d", end.Unix()),
		"interval":       "1d",
		"includePrePost": "false",
		"events":         "div,split",
	}
	headers := map[string]string{
		"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/120.0.0.0 Safari/537.36",
		"Accept":          "application/json, text/plain, */*",
		"Accept-Language": "en-US,en;q=0.9",
		"Referer":         "https://finance.yahoo.com/",
	}

	var yahooResp dto.YahooFinanceResponse
	resp, err := r.httpClient.Get(ctx, endpoint, queryParams, headers, &yahooResp)
	if err != nil {
		return nil, dto.NewExternalError("failed to fetch data from yahoo finance", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.ErrorContext(ctx, "yahoo finance returned non-OK status",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("symbol", param.Symbol))
		return nil, dto.NewExternalError(fmt.Sprintf("yahoo finance returned status %d", resp.StatusCode), nil)
	}

	if yahooResp.Chart.Error != nil {
		return nil, dto.NewExternalError(fmt.Sprintf("yahoo finance error: %v", yahooResp.Chart.Error), nil)
	}
	if len(yahooResp.Chart.Result) == 0 {
		return nil, dto.NewDataError("no data returned for symbol %s", param.Symbol)
	}

	result := yahooResp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, dto.NewDataError("no quote data available for symbol %s", param.Symbol)
	}
	quote := result.Indicators.Quote[0]

	var bars []dto.PriceBar
	for i, ts := range result.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) ||
			i >= len(quote.Close) || i >= len(quote.Volume) {
			continue
		}
		// Zero values mark missing data in the chart API.
		if quote.Open[i] == 0 || quote.High[i] == 0 || quote.Low[i] == 0 || quote.Close[i] == 0 {
			continue
		}

		bars = append(bars, dto.PriceBar{
			Date:   time.Unix(ts, 0).UTC().Truncate(24 * time.Hour),
			Open:   quote.Open[i],
			High:   quote.High[i],
			Low:    quote.Low[i],
			Close:  quote.Close[i],
			Volume: quote.Volume[i],
		})
	}
	if len(bars) == 0 {
		return nil, dto.NewDataError("no valid price bars found for symbol %s", param.Symbol)
	}

	data := &dto.StockData{
		Symbol:      param.Symbol,
		MarketPrice: result.Meta.RegularMarketPrice,
		Bars:        bars,
	}
	r.cache.Set(cacheKey, data, r.cfg.YahooFinance.CacheTTL)

	return data, nil
}

func (r *yahooFinanceRepository) GetCurrentPrice(ctx context.Context, symbol string) (float64, error) {
	data, err := r.GetHistoricalData(ctx, dto.GetStockDataParam{Symbol: symbol, Period: "5d"})
	if err != nil {
		return 0, err
	}
	if data.MarketPrice > 0 {
		return data.MarketPrice, nil
	}
	return data.Bars[len(data.Bars)-1].Close, nil
}

func (r *yahooFinanceRepository) GetCurrentPrices(ctx context.Context, symbols []string) (map[string]float64, error) {
	prices := make(map[string]float64, len(symbols))
	for _, symbol := range symbols {
		price, err := r.GetCurrentPrice(ctx, symbol)
		if err != nil {
			r.logger.WarnContext(ctx, "skipping symbol with unavailable price",
				logger.StringField("symbol", symbol),
				logger.ErrorField(err))
			continue
		}
		prices[symbol] = price
	}
	return prices, nil
}

// resolveWindow turns the request's date fields into an absolute window.
// An explicit start date wins; a bare period is a lookback from now.
func (r *yahooFinanceRepository) resolveWindow(param dto.GetStockDataParam) (time.Time, time.Time, error) {
	period := param.Period
	if period == "" {
		period = defaultPeriod
	}

	if param.StartDate == "" {
		end := time.Now().UTC()
		start, err := utils.PeriodLookback(end, period)
		if err != nil {
			return time.Time{}, time.Time{}, dto.NewInputError("%s", err.Error())
		}
		return start, end, nil
	}

	start, err := utils.ParseDate(param.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, dto.NewInputError("%s", err.Error())
	}

	if param.EndDate != "" {
		end, err := utils.ParseDate(param.EndDate)
		if err != nil {
			return time.Time{}, time.Time{}, dto.NewInputError("%s", err.Error())
		}
		if !end.After(start) {
			return time.Time{}, time.Time{}, dto.NewInputError("end date must be after start date")
		}
		// Make the window inclusive of the end date's trading day.
		return start, end.AddDate(0, 0, 1), nil
	}

	_, end, err := utils.PeriodToRange(start, period)
	if err != nil {
		return time.Time{}, time.Time{}, dto.NewInputError("%s", err.Error())
	}
	return start, end, nil
}
