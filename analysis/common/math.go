package common

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Basic statistical functions shared by the analyzers, using gonum for robustness

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// PopVariance calculates the population variance of a slice
func PopVariance(data []float64) float64 {
	if len(data) < 2 {
		return 0.0
	}
	return stat.MomentAbout(2, data, stat.Mean(data, nil), nil)
}

// PopStdDev calculates the population standard deviation
func PopStdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0.0
	}
	return math.Sqrt(PopVariance(data))
}

// MinMax returns the minimum and maximum of a slice using gonum
func MinMax(data []float64) (float64, float64) {
	if len(data) == 0 {
		return 0.0, 0.0
	}
	return floats.Min(data), floats.Max(data)
}

// Range returns max - min of a slice
func Range(data []float64) float64 {
	lo, hi := MinMax(data)
	return hi - lo
}

// Clamp limits a value to the [lo, hi] interval
func Clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// LinRegression performs simple linear regression and returns slope and intercept.
// Degenerate inputs (fewer than 2 points, mismatched lengths, constant x) yield
// zero slope and intercept rather than an error.
func LinRegression(x, y []float64) (slope, intercept float64) {
	if len(x) != len(y) || len(x) < 2 {
		return 0, 0
	}

	alpha, beta := stat.LinearRegression(x, y, nil, false)
	if math.IsNaN(beta) || math.IsInf(beta, 0) {
		return 0, 0
	}

	return beta, alpha
}
