package math

import (
	gomath "math"

	"golang.org/x/exp/constraints"
)

const K_PI float32 = 3.14159265358979323846
const K_FLOAT_EPSILON float32 = 1.192092896e-07

func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

func ksin(x float32) float32 {
	return float32(gomath.Sin(float64(x)))
}

func kcos(x float32) float32 {
	return float32(gomath.Cos(float64(x)))
}

func ksqrt(x float32) float32 {
	return float32(gomath.Sqrt(float64(x)))
}

func kabs(x float32) float32 {
	return float32(gomath.Abs(float64(x)))
}

func katan2(y, x float32) float32 {
	return float32(gomath.Atan2(float64(y), float64(x)))
}

func Abs(x float32) float32 {
	return kabs(x)
}

func Atan2(y, x float32) float32 {
	return katan2(y, x)
}

func RadToDeg(radians float32) float32 {
	return radians * 180.0 / K_PI
}

func DegToRad(degrees float32) float32 {
	return degrees * K_PI / 180.0
}

// RangeConvertFloat32 remaps value from [oldMin, oldMax] to [newMin, newMax].
func RangeConvertFloat32(value, oldMin, oldMax, newMin, newMax float32) float32 {
	return (((value - oldMin) * (newMax - newMin)) / (oldMax - oldMin)) + newMin
}
