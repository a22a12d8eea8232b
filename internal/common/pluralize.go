// Package common: pluralize.go содержит форматирование чисел для ответов бота.
package common

import (
	"fmt"
	"math"
)

// FormatPoints форматирует очки с одним знаком после запятой.
// Пример: FormatPoints(1.25) → "1.2", FormatPoints(-3) → "-3.0"
func FormatPoints(points float64) string {
	// -0.0 печатается как "-0.0", выглядит странно
	if math.Abs(points) < 0.05 {
		points = 0
	}
	return fmt.Sprintf("%.1f", points)
}

// FormatPointsDelta создаёт строку вида "+1.5" или "-0.5".
// Знак «+» добавляется автоматически.
func FormatPointsDelta(delta float64) string {
	if delta >= 0 {
		return "+" + FormatPoints(delta)
	}
	return FormatPoints(delta)
}

// FormatWeight форматирует вес-множитель: FormatWeight(1.5) → "1.5x"
func FormatWeight(weight float64) string {
	return fmt.Sprintf("%.1fx", weight)
}

// FormatNumber форматирует число с разделителями тысяч (пробелами).
// Пример: FormatNumber(2350) → "2 350"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s %03d", FormatNumber(n/1000), n%1000)
}
