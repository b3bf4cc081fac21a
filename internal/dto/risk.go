package dto

// PositionSizeResult sizes a position so a stop-out loses a fixed share of
// the account.
type PositionSizeResult struct {
	PositionSize   float64 `json:"position_size"`
	TotalCost      float64 `json:"total_cost"`
	RiskAmount     float64 `json:"risk_amount"`
	RiskPerShare   float64 `json:"risk_per_share"`
	AccountRiskPct float64 `json:"account_risk_pct"`
}

type RiskRewardResult struct {
	Risk            float64 `json:"risk"`
	Reward          float64 `json:"reward"`
	RiskRewardRatio float64 `json:"risk_reward_ratio"`
	RiskPct         float64 `json:"risk_pct"`
	RewardPct       float64 `json:"reward_pct"`
	EntryPrice      float64 `json:"entry_price"`
	StopLossPrice   float64 `json:"stop_loss_price"`
	TakeProfitPrice float64 `json:"take_profit_price"`
}

type VaRResult struct {
	VaR             float64 `json:"var"`
	CVaR            float64 `json:"cvar"`
	ConfidenceLevel float64 `json:"confidence_level"`
	Interpretation  string  `json:"interpretation,omitempty"`
}

type VolatilityResult struct {
	Volatility    float64 `json:"volatility"`
	VolatilityPct float64 `json:"volatility_pct"`
	Annualized    bool    `json:"annualized"`
	MeanReturn    float64 `json:"mean_return"`
	MaxReturn     float64 `json:"max_return"`
	MinReturn     float64 `json:"min_return"`
}

type KellyResult struct {
	KellyPct       float64 `json:"kelly_pct"`
	HalfKellyPct   float64 `json:"half_kelly_pct"`
	WinRate        float64 `json:"win_rate"`
	WinLossRatio   float64 `json:"win_loss_ratio"`
	Recommendation string  `json:"recommendation,omitempty"`
}

type BetaResult struct {
	Beta           float64 `json:"beta"`
	Alpha          float64 `json:"alpha"`
	RSquared       float64 `json:"r_squared"`
	Interpretation string  `json:"interpretation,omitempty"`
}

type PositionSizeRequest struct {
	AccountValue  float64 `json:"account_value" validate:"required,gt=0"`
	RiskPct       float64 `json:"risk_percentage" validate:"required,gt=0"`
	EntryPrice    float64 `json:"entry_price" validate:"required,gt=0"`
	StopLossPrice float64 `json:"stop_loss_price" validate:"required,gt=0"`
}

type RiskRewardRequest struct {
	EntryPrice      float64 `json:"entry_price" validate:"required,gt=0"`
	StopLossPrice   float64 `json:"stop_loss_price" validate:"required,gt=0"`
	TakeProfitPrice float64 `json:"take_profit_price" validate:"required,gt=0"`
}
