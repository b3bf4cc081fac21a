package dto

// ExitReason explains how a simulated trade was closed.
type ExitReason string

const (
	ExitStopLoss       ExitReason = "Stop Loss"
	ExitTakeProfit     ExitReason = "Take Profit"
	ExitEndOfPeriod    ExitReason = "End of Period"
	ExitMaxDaysReached ExitReason = "Max Days Reached"
)

// TradeResult describes a single closed trade.
type TradeResult struct {
	Symbol          string     `json:"symbol"`
	EntryDate       string     `json:"entry_date"`
	EntryPrice      float64    `json:"entry_price"`
	ExitDate        string     `json:"exit_date"`
	ExitPrice       float64    `json:"exit_price"`
	ExitReason      ExitReason `json:"exit_reason"`
	Quantity        float64    `json:"quantity"`
	EntryCost       float64    `json:"entry_cost"`
	ExitValue       float64    `json:"exit_value"`
	ProfitLoss      float64    `json:"profit_loss"`
	ProfitLossPct   float64    `json:"profit_loss_pct"`
	StopLossPrice   float64    `json:"stop_loss_price"`
	TakeProfitPrice float64    `json:"take_profit_price"`
	StopLossPct     float64    `json:"stop_loss_pct"`
	TakeProfitPct   float64    `json:"take_profit_pct"`
	HoldingDays     int        `json:"holding_days"`
	Success         bool       `json:"success"`
}

// MultiTradeResult aggregates a sequential re-entry simulation.
// ProfitFactor is nil when there were no losing trades; treat nil as +inf.
type MultiTradeResult struct {
	Symbol        string        `json:"symbol"`
	StartDate     string        `json:"start_date"`
	EndDate       string        `json:"end_date"`
	InitialCash   float64       `json:"initial_cash"`
	FinalCash     float64       `json:"final_cash"`
	NetProfit     float64       `json:"net_profit"`
	NetProfitPct  float64       `json:"net_profit_pct"`
	TotalTrades   int           `json:"total_trades"`
	WinningTrades int           `json:"winning_trades"`
	LosingTrades  int           `json:"losing_trades"`
	WinRate       float64       `json:"win_rate"`
	AvgWin        float64       `json:"avg_win"`
	AvgLoss       float64       `json:"avg_loss"`
	ProfitFactor  *float64      `json:"profit_factor"`
	StopLossPct   float64       `json:"stop_loss_pct"`
	TakeProfitPct float64       `json:"take_profit_pct"`
	Trades        []TradeResult `json:"trades"`
}

// OptimizationCell is the outcome of one (stop loss, take profit) grid pair.
type OptimizationCell struct {
	StopLossPct   float64  `json:"stop_loss_pct"`
	TakeProfitPct float64  `json:"take_profit_pct"`
	NetProfitPct  float64  `json:"net_profit_pct"`
	WinRate       float64  `json:"win_rate"`
	TotalTrades   int      `json:"total_trades"`
	ProfitFactor  *float64 `json:"profit_factor"`
}

// OptimizationResult holds the winning cell plus the full grid for inspection.
type OptimizationResult struct {
	Symbol           string             `json:"symbol"`
	BestStopLossPct  float64            `json:"best_sl_pct"`
	BestTakeProfit   float64            `json:"best_tp_pct"`
	BestNetProfitPct float64            `json:"best_net_profit_pct"`
	BestWinRate      float64            `json:"best_win_rate"`
	AllResults       []OptimizationCell `json:"all_results"`
}

type SimulateTradeRequest struct {
	Symbol        string  `json:"symbol" validate:"required"`
	EntryPrice    float64 `json:"entry_price" validate:"required,gt=0"`
	Quantity      float64 `json:"quantity" validate:"required,gt=0"`
	StopLossPct   float64 `json:"stop_loss_pct" validate:"required,gt=0"`
	TakeProfitPct float64 `json:"take_profit_pct" validate:"required,gt=0"`
	StartDate     string  `json:"start_date" validate:"required"`
	EndDate       string  `json:"end_date"`
	MaxDays       int     `json:"max_days"`
}

type MultiTradeRequest struct {
	Symbol          string  `json:"symbol" validate:"required"`
	StartDate       string  `json:"start_date" validate:"required"`
	EndDate         string  `json:"end_date" validate:"required"`
	StopLossPct     float64 `json:"stop_loss_pct" validate:"required,gt=0"`
	TakeProfitPct   float64 `json:"take_profit_pct" validate:"required,gt=0"`
	PositionSizePct float64 `json:"position_size_pct"`
	CooldownDays    int     `json:"cooldown_days"`
}

type OptimizeRequest struct {
	Symbol         string    `json:"symbol" validate:"required"`
	StartDate      string    `json:"start_date" validate:"required"`
	EndDate        string    `json:"end_date" validate:"required"`
	StopLossGrid   []float64 `json:"sl_range"`
	TakeProfitGrid []float64 `json:"tp_range"`
}
