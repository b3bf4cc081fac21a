package dto

// EquityPoint is one portfolio snapshot per bar during a backtest run.
type EquityPoint struct {
	Date     string  `json:"date"`
	Value    float64 `json:"value"`
	Price    float64 `json:"price"`
	Position float64 `json:"position,omitempty"`
}

// BacktestResult summarizes one strategy run over a price series.
type BacktestResult struct {
	Strategy     string        `json:"strategy"`
	Symbol       string        `json:"symbol"`
	StartDate    string        `json:"start_date"`
	EndDate      string        `json:"end_date"`
	InitialValue float64       `json:"initial_value"`
	FinalValue   float64       `json:"final_value"`
	TotalReturn  float64       `json:"total_return"`
	BuyPrice     float64       `json:"buy_price,omitempty"`
	SellPrice    float64       `json:"sell_price,omitempty"`
	Quantity     float64       `json:"quantity,omitempty"`
	SharpeRatio  float64       `json:"sharpe_ratio"`
	MaxDrawdown  float64       `json:"max_drawdown"`
	NumTrades    int           `json:"num_trades"`
	EquityCurve  []EquityPoint `json:"equity_curve"`
}

type BuyHoldRequest struct {
	Symbol     string  `json:"symbol" validate:"required"`
	StartDate  string  `json:"start_date" validate:"required"`
	EndDate    string  `json:"end_date" validate:"required"`
	Allocation float64 `json:"allocation"`
}

type SMACrossoverRequest struct {
	Symbol      string  `json:"symbol" validate:"required"`
	StartDate   string  `json:"start_date" validate:"required"`
	EndDate     string  `json:"end_date" validate:"required"`
	ShortWindow int     `json:"short_window"`
	LongWindow  int     `json:"long_window"`
	Allocation  float64 `json:"allocation"`
}
