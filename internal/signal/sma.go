package signal

import "stock-backtest/internal/dto"

// SMA computes the simple moving average of values over a trailing window.
// Entries before index window-1 have insufficient history and are reported
// as not valid.
func SMA(values []float64, window int) (avgs []float64, valid []bool) {
	avgs = make([]float64, len(values))
	valid = make([]bool, len(values))
	if window <= 0 {
		return avgs, valid
	}

	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			avgs[i] = sum / float64(window)
			valid[i] = true
		}
	}
	return avgs, valid
}

// Generator derives a binary position signal from a close-price series
// using two moving averages.
type Generator struct {
	ShortWindow int
	LongWindow  int
}

func NewGenerator(shortWindow, longWindow int) (*Generator, error) {
	if shortWindow < 1 || longWindow < 1 {
		return nil, dto.NewInputError("sma windows must be positive, got %d/%d", shortWindow, longWindow)
	}
	if shortWindow >= longWindow {
		return nil, dto.NewInputError("short window %d must be smaller than long window %d", shortWindow, longWindow)
	}
	return &Generator{ShortWindow: shortWindow, LongWindow: longWindow}, nil
}

// Signals returns the binary position signal per bar: 1 where the short
// average is above the long average, 0 otherwise. While the long window has
// insufficient history the signal is 0.
func (g *Generator) Signals(closes []float64) []int {
	short, shortValid := SMA(closes, g.ShortWindow)
	long, longValid := SMA(closes, g.LongWindow)

	signals := make([]int, len(closes))
	for i := range closes {
		if shortValid[i] && longValid[i] && short[i] > long[i] {
			signals[i] = 1
		}
	}
	return signals
}

// PositionChanges is the first difference of the signal series: +1 marks a
// flip from 0 to 1 (entry trigger), -1 a flip from 1 to 0 (exit trigger).
// Index 0 never triggers. Triggers are only meaningful from the first bar
// where both averages are defined.
func (g *Generator) PositionChanges(closes []float64) []int {
	signals := g.Signals(closes)

	changes := make([]int, len(signals))
	for i := 1; i < len(signals); i++ {
		changes[i] = signals[i] - signals[i-1]
	}
	return changes
}

// DefinedFrom is the first index where both averages have enough history.
func (g *Generator) DefinedFrom() int {
	return g.LongWindow - 1
}
