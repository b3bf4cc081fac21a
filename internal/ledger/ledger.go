package ledger

import (
	"time"

	"stock-backtest/internal/dto"
)

type TransactionType string

const (
	TransactionBuy  TransactionType = "BUY"
	TransactionSell TransactionType = "SELL"
)

// Lot is one purchase event for a symbol. A symbol may own several lots.
type Lot struct {
	Price    float64   `json:"price"`
	Quantity float64   `json:"quantity"`
	Date     time.Time `json:"date"`
}

// Transaction is an immutable entry of the append-only log.
type Transaction struct {
	Type     TransactionType `json:"type"`
	Symbol   string          `json:"symbol"`
	Quantity float64         `json:"quantity"`
	Price    float64         `json:"price"`
	Date     time.Time       `json:"date"`
	Total    float64         `json:"total"`
}

// Ledger tracks cash, holdings and purchase lots for one backtest or
// simulation run. It is not safe for concurrent use; every run owns its
// own instance.
type Ledger struct {
	initialCash  float64
	cash         float64
	holdings     map[string]float64
	lots         map[string][]Lot
	transactions []Transaction
}

func New(initialCash float64) *Ledger {
	return &Ledger{
		initialCash: initialCash,
		cash:        initialCash,
		holdings:    make(map[string]float64),
		lots:        make(map[string][]Lot),
	}
}

// Buy deducts cash, increments holdings and records a lot. It returns false
// without mutating anything when the order cost exceeds available cash.
func (l *Ledger) Buy(symbol string, quantity, price float64, date time.Time) bool {
	cost := quantity * price
	if cost > l.cash {
		return false
	}

	l.cash -= cost
	l.holdings[symbol] += quantity
	l.lots[symbol] = append(l.lots[symbol], Lot{Price: price, Quantity: quantity, Date: date})
	l.transactions = append(l.transactions, Transaction{
		Type:     TransactionBuy,
		Symbol:   symbol,
		Quantity: quantity,
		Price:    price,
		Date:     date,
		Total:    cost,
	})

	return true
}

// Sell credits cash and decrements holdings. It returns false when the
// symbol is not held or the held quantity is smaller than requested.
// Lots are consumed FIFO so the average cost always reflects the shares
// still held.
func (l *Ledger) Sell(symbol string, quantity, price float64, date time.Time) bool {
	held, ok := l.holdings[symbol]
	if !ok || held < quantity {
		return false
	}

	proceeds := quantity * price
	l.cash += proceeds
	l.holdings[symbol] = held - quantity
	if l.holdings[symbol] == 0 {
		delete(l.holdings, symbol)
	}
	l.consumeLots(symbol, quantity)

	l.transactions = append(l.transactions, Transaction{
		Type:     TransactionSell,
		Symbol:   symbol,
		Quantity: quantity,
		Price:    price,
		Date:     date,
		Total:    proceeds,
	})

	return true
}

func (l *Ledger) consumeLots(symbol string, quantity float64) {
	lots := l.lots[symbol]
	remaining := quantity
	for len(lots) > 0 && remaining > 0 {
		if lots[0].Quantity > remaining {
			lots[0].Quantity -= remaining
			remaining = 0
			break
		}
		remaining -= lots[0].Quantity
		lots = lots[1:]
	}
	if len(lots) == 0 {
		delete(l.lots, symbol)
		return
	}
	l.lots[symbol] = lots
}

func (l *Ledger) Cash() float64 {
	return l.cash
}

func (l *Ledger) InitialCash() float64 {
	return l.initialCash
}

// Symbols lists every symbol with a non-zero holding.
func (l *Ledger) Symbols() []string {
	out := make([]string, 0, len(l.holdings))
	for symbol := range l.holdings {
		out = append(out, symbol)
	}
	return out
}

// Holding returns the quantity currently held for a symbol, 0 if none.
func (l *Ledger) Holding(symbol string) float64 {
	return l.holdings[symbol]
}

// PositionValue values one position at the given price.
func (l *Ledger) PositionValue(symbol string, currentPrice float64) float64 {
	return l.holdings[symbol] * currentPrice
}

// TotalValue is cash plus every position valued at the supplied prices.
// Symbols missing from the price map value at 0, so callers must supply a
// full map for an accurate valuation.
func (l *Ledger) TotalValue(currentPrices map[string]float64) float64 {
	value := l.cash
	for symbol, quantity := range l.holdings {
		value += quantity * currentPrices[symbol]
	}
	return value
}

// Return is the total return percentage against the initial cash.
func (l *Ledger) Return(currentPrices map[string]float64) float64 {
	return (l.TotalValue(currentPrices) - l.initialCash) / l.initialCash * 100
}

// AvgPrice is the weighted average cost over the lots still held.
func (l *Ledger) AvgPrice(symbol string) float64 {
	var totalCost, totalQuantity float64
	for _, lot := range l.lots[symbol] {
		totalCost += lot.Price * lot.Quantity
		totalQuantity += lot.Quantity
	}
	if totalQuantity == 0 {
		return 0
	}
	return totalCost / totalQuantity
}

// PositionGains computes unrealized gain, gain percentage and average cost
// for one position at the given price.
func (l *Ledger) PositionGains(symbol string, currentPrice float64) (gain, gainPct, avgPrice float64) {
	quantity, ok := l.holdings[symbol]
	if !ok {
		return 0, 0, 0
	}

	avgPrice = l.AvgPrice(symbol)
	currentValue := quantity * currentPrice
	costBasis := quantity * avgPrice

	gain = currentValue - costBasis
	if costBasis > 0 {
		gainPct = gain / costBasis * 100
	}
	return gain, gainPct, avgPrice
}

// Summary builds the full portfolio summary at the supplied prices.
func (l *Ledger) Summary(currentPrices map[string]float64) dto.PortfolioSummary {
	totalValue := l.TotalValue(currentPrices)

	positions := make(map[string]dto.PositionSummary, len(l.holdings))
	for symbol, quantity := range l.holdings {
		currentPrice := currentPrices[symbol]
		positionValue := quantity * currentPrice
		gain, gainPct, avgPrice := l.PositionGains(symbol, currentPrice)

		var weight float64
		if totalValue > 0 {
			weight = positionValue / totalValue * 100
		}

		positions[symbol] = dto.PositionSummary{
			Quantity:     quantity,
			CurrentPrice: currentPrice,
			Value:        positionValue,
			Weight:       weight,
			AvgPrice:     avgPrice,
			Gain:         gain,
			GainPct:      gainPct,
		}
	}

	return dto.PortfolioSummary{
		TotalValue:      totalValue,
		Cash:            l.cash,
		InvestedValue:   totalValue - l.cash,
		InitialCash:     l.initialCash,
		TotalReturn:     l.Return(currentPrices),
		TotalGain:       totalValue - l.initialCash,
		Positions:       positions,
		NumPositions:    len(l.holdings),
		NumTransactions: len(l.transactions),
	}
}

// Transactions returns a copy of the append-only transaction log.
func (l *Ledger) Transactions() []Transaction {
	out := make([]Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}
