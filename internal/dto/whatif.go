package dto

// TimelinePoint is one charting row of an all-in scenario.
type TimelinePoint struct {
	Date           string  `json:"date"`
	Price          float64 `json:"price"`
	PortfolioValue float64 `json:"portfolio_value"`
	ReturnPct      float64 `json:"return_pct"`
}

// AllInResult describes a single lump-sum scenario over a window.
type AllInResult struct {
	Symbol              string          `json:"symbol"`
	Scenario            string          `json:"scenario"`
	EntryDate           string          `json:"entry_date"`
	EntryPrice          float64         `json:"entry_price"`
	ExitDate            string          `json:"exit_date"`
	ExitPrice           float64         `json:"exit_price"`
	Shares              float64         `json:"shares"`
	InvestmentAmount    float64         `json:"investment_amount"`
	ExitValue           float64         `json:"exit_value"`
	ProfitLoss          float64         `json:"profit_loss"`
	ProfitLossPct       float64         `json:"profit_loss_pct"`
	HoldingDays         int             `json:"holding_days"`
	AnnualizedReturn    float64         `json:"annualized_return"`
	PeakValue           float64         `json:"peak_value"`
	PeakDate            string          `json:"peak_date"`
	MaxDrawdownPct      float64         `json:"max_drawdown_pct"`
	MaxDrawdownDate     string          `json:"max_drawdown_date"`
	AnnualVolatilityPct float64         `json:"annual_volatility_pct"`
	BestDayReturnPct    float64         `json:"best_day_return_pct"`
	BestDayDate         string          `json:"best_day_date"`
	WorstDayReturnPct   float64         `json:"worst_day_return_pct"`
	WorstDayDate        string          `json:"worst_day_date"`
	Timeline            []TimelinePoint `json:"timeline,omitempty"`
}

// DCAPurchase is one monthly buy of a dollar-cost-averaging run.
type DCAPurchase struct {
	Date          string  `json:"date"`
	Price         float64 `json:"price"`
	Shares        float64 `json:"shares"`
	Amount        float64 `json:"amount"`
	TotalShares   float64 `json:"total_shares"`
	TotalInvested float64 `json:"total_invested"`
}

type DCAResult struct {
	Symbol            string        `json:"symbol"`
	Strategy          string        `json:"strategy"`
	StartDate         string        `json:"start_date"`
	EndDate           string        `json:"end_date"`
	MonthlyInvestment float64       `json:"monthly_investment"`
	TotalInvested     float64       `json:"total_invested"`
	TotalShares       float64       `json:"total_shares"`
	AvgPrice          float64       `json:"avg_price"`
	FinalPrice        float64       `json:"final_price"`
	FinalValue        float64       `json:"final_value"`
	ProfitLoss        float64       `json:"profit_loss"`
	ProfitLossPct     float64       `json:"profit_loss_pct"`
	NumPurchases      int           `json:"num_purchases"`
	Purchases         []DCAPurchase `json:"purchases,omitempty"`
}

type StrategyOutcome struct {
	FinalValue     float64 `json:"final_value"`
	ReturnPct      float64 `json:"return_pct"`
	MaxDrawdownPct float64 `json:"max_drawdown_pct,omitempty"`
	NumPurchases   int     `json:"num_purchases,omitempty"`
}

// LumpSumVsDCAResult compares both strategies over the same window.
// An exact tie on final value resolves to DCA.
type LumpSumVsDCAResult struct {
	Symbol        string          `json:"symbol"`
	TotalAmount   float64         `json:"total_amount"`
	StartDate     string          `json:"start_date"`
	EndDate       string          `json:"end_date"`
	LumpSum       StrategyOutcome `json:"lump_sum"`
	DCA           StrategyOutcome `json:"dca"`
	Winner        string          `json:"winner"`
	Difference    float64         `json:"difference"`
	DifferencePct float64         `json:"difference_pct"`
}

// ScenarioSummary is one row of a multi-symbol comparison.
type ScenarioSummary struct {
	Symbol              string  `json:"symbol"`
	ProfitLoss          float64 `json:"profit_loss"`
	ProfitLossPct       float64 `json:"profit_loss_pct"`
	ExitValue           float64 `json:"exit_value"`
	MaxDrawdownPct      float64 `json:"max_drawdown_pct"`
	AnnualVolatilityPct float64 `json:"annual_volatility_pct"`
	AnnualizedReturn    float64 `json:"annualized_return"`
}

type Performer struct {
	Symbol     string  `json:"symbol"`
	ReturnPct  float64 `json:"return_pct"`
	FinalValue float64 `json:"final_value"`
}

type CompareResult struct {
	InvestmentAmount float64           `json:"investment_amount"`
	StartDate        string            `json:"start_date"`
	EndDate          string            `json:"end_date"`
	Scenarios        []ScenarioSummary `json:"scenarios"`
	BestPerformer    Performer         `json:"best_performer"`
	WorstPerformer   Performer         `json:"worst_performer"`
	Spread           float64           `json:"spread"`
}

type AllInRequest struct {
	Symbol           string  `json:"symbol" validate:"required"`
	InvestmentAmount float64 `json:"investment_amount" validate:"required,gt=0"`
	StartDate        string  `json:"start_date" validate:"required"`
	EndDate          string  `json:"end_date"`
	Period           string  `json:"period"`
}

type CompareRequest struct {
	Symbols          []string `json:"symbols" validate:"required,min=1"`
	InvestmentAmount float64  `json:"investment_amount" validate:"required,gt=0"`
	StartDate        string   `json:"start_date" validate:"required"`
	EndDate          string   `json:"end_date"`
	Period           string   `json:"period"`
}

type DCARequest struct {
	Symbol            string  `json:"symbol" validate:"required"`
	MonthlyInvestment float64 `json:"monthly_investment" validate:"required,gt=0"`
	StartDate         string  `json:"start_date" validate:"required"`
	EndDate           string  `json:"end_date" validate:"required"`
}

type LumpSumVsDCARequest struct {
	Symbol      string  `json:"symbol" validate:"required"`
	TotalAmount float64 `json:"total_amount" validate:"required,gt=0"`
	StartDate   string  `json:"start_date" validate:"required"`
	EndDate     string  `json:"end_date" validate:"required"`
	DCAPeriods  int     `json:"dca_periods"`
}
