package dto

type CreatePortfolioRequest struct {
	InitialCash float64 `json:"initial_cash"`
}

type CreatePortfolioResponse struct {
	PortfolioID string  `json:"portfolio_id"`
	InitialCash float64 `json:"initial_cash"`
}

type TradeOrderRequest struct {
	Symbol   string  `json:"symbol" validate:"required"`
	Quantity float64 `json:"quantity" validate:"required,gt=0"`
	Price    float64 `json:"price" validate:"required,gt=0"`
	Date     string  `json:"date"`
}

// PositionSummary is the per-symbol slice of a portfolio summary.
type PositionSummary struct {
	Quantity     float64 `json:"quantity"`
	CurrentPrice float64 `json:"current_price"`
	Value        float64 `json:"value"`
	Weight       float64 `json:"weight"`
	AvgPrice     float64 `json:"avg_price"`
	Gain         float64 `json:"gain"`
	GainPct      float64 `json:"gain_pct"`
}

type PortfolioSummary struct {
	TotalValue      float64                    `json:"total_value"`
	Cash            float64                    `json:"cash"`
	InvestedValue   float64                    `json:"invested_value"`
	InitialCash     float64                    `json:"initial_cash"`
	TotalReturn     float64                    `json:"total_return"`
	TotalGain       float64                    `json:"total_gain"`
	Positions       map[string]PositionSummary `json:"positions"`
	NumPositions    int                        `json:"num_positions"`
	NumTransactions int                        `json:"num_transactions"`
}
