package core

import "math"

// Interval is a range of ray parameters [Min, Max]
type Interval struct {
	Min, Max float64
}

// NewInterval creates a new interval
func NewInterval(minVal, maxVal float64) Interval {
	return Interval{Min: minVal, Max: maxVal}
}

// EmptyInterval contains no values
func EmptyInterval() Interval {
	return Interval{Min: math.Inf(1), Max: math.Inf(-1)}
}

// UniverseInterval contains every value
func UniverseInterval() Interval {
	return Interval{Min: math.Inf(-1), Max: math.Inf(1)}
}

// Size returns the length of the interval
func (i Interval) Size() float64 {
	return i.Max - i.Min
}

// Contains reports whether x lies in [Min, Max]
func (i Interval) Contains(x float64) bool {
	return i.Min <= x && x <= i.Max
}

// Surrounds reports whether x lies strictly inside (Min, Max)
func (i Interval) Surrounds(x float64) bool {
	return i.Min < x && x < i.Max
}

// Clamp limits x to [Min, Max]
func (i Interval) Clamp(x float64) float64 {
	if x < i.Min {
		return i.Min
	}
	if x > i.Max {
		return i.Max
	}
	return x
}

// WithMax returns a copy of the interval with a new upper bound
func (i Interval) WithMax(maxVal float64) Interval {
	return Interval{Min: i.Min, Max: maxVal}
}
