package evaluation

import (
	"errors"
	"math"
)

// ErrDivisionByZero is returned when a metric's denominator is zero.
var ErrDivisionByZero = errors.New("evaluation: division by zero")

// Recall calculates tp / (tp + fn) rounded to two decimals.
func Recall(tp, fn int) (float64, error) {
	return roundedRatio(100*tp, tp+fn)
}

// Precision calculates tp / (tp + fp) rounded to two decimals.
func Precision(tp, fp int) (float64, error) {
	return roundedRatio(100*tp, tp+fp)
}

// F1 calculates the harmonic mean 2tp / (2tp + fp + fn) rounded to two
// decimals.
func F1(tp, fp, fn int) (float64, error) {
	return roundedRatio(200*tp, 2*tp+fp+fn)
}

// roundedRatio returns round(num/den)/100 with ties going to the even
// neighbour, so 0.125 reports as 0.12.
func roundedRatio(num, den int) (float64, error) {
	if den == 0 {
		return 0, ErrDivisionByZero
	}
	return math.RoundToEven(float64(num)/float64(den)) / 100, nil
}
