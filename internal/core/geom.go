// Package core provides the value types shared by the simulation: input
// samples, character and game state, and small numeric helpers.
// It has no external dependencies so the physics stays pure and testable.
package core

import "math"

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF32 restricts a float32 value to be within [min, max].
func ClampF32(val, min, max float32) float32 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// MaxF32 returns the larger of two float32 values.
func MaxF32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// MinF32 returns the smaller of two float32 values.
func MinF32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

// Floor returns the greatest integer value less than or equal to v.
func Floor(v float32) float32 {
	return float32(math.Floor(float64(v)))
}

// Ceil returns the least integer value greater than or equal to v.
func Ceil(v float32) float32 {
	return float32(math.Ceil(float64(v)))
}

// FloorInt returns Floor(v) as an int tile coordinate.
func FloorInt(v float32) int {
	return int(math.Floor(float64(v)))
}

// CeilInt returns Ceil(v) as an int tile coordinate.
func CeilInt(v float32) int {
	return int(math.Ceil(float64(v)))
}
