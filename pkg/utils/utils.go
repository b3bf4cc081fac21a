package utils

import "fmt"

// ToPointer returns a pointer to the given value.
func ToPointer[T any](value T) *T {
	return &value
}

// FormatPercentage renders a signed percentage with one decimal.
func FormatPercentage(value float64) string {
	return fmt.Sprintf("%+.1f%%", value)
}

// FormatMoney renders an amount with two decimals.
func FormatMoney(value float64) string {
	return fmt.Sprintf("%.2f", value)
}
