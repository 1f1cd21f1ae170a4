package service

import (
	"math"
	"strconv"
)

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func minMax(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// formatKG prints the absolute value rounded to two places without
// trailing zeros ("1.5", not "1.50").
func formatKG(v float64) string {
	return strconv.FormatFloat(round(math.Abs(v), 2), 'f', -1, 64)
}

func formatOneDecimal(v float64) string {
	return strconv.FormatFloat(round(v, 1), 'f', 1, 64)
}
