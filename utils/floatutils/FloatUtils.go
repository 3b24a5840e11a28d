// Package floatutils provides utilities for working with floats
package floatutils

import (
	"math"

	"gonum.org/v1/gonum/spatial/r1"
)

// Unit returns the closed interval [0, 1]
func Unit() r1.Interval {
	return r1.Interval{Min: 0, Max: 1}
}

// InInterval returns whether value lies in the closed interval. NaN
// is never in an interval.
func InInterval(value float64, interval r1.Interval) bool {
	return value >= interval.Min && value <= interval.Max
}

// IsFinite returns whether value is neither NaN nor infinite
func IsFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
