package common

import "cmp"

// Logical screen size, in pixels.
const (
	BaseWidth  = 1280
	BaseHeight = 720
)

// TPS is the fixed update rate.
const TPS = 60

func Lerp[T ~float32 | ~float64](a, b, t T) T {
	return a + t*(b-a)
}

// Clamp limits v to [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return max(lo, min(v, hi))
}
