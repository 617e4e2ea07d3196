package mutils

import (
	"golang.org/x/exp/constraints"
)

func Clamp[T constraints.Integer | constraints.Float](v, minV, maxV T) T {
	return min(maxV, max(minV, v))
}

// Lerp linearly interpolates between start and end by amount t
func Lerp[T constraints.Float](start, end, t T) T {
	return start + (end-start)*t
}

func Abs[T constraints.Integer | constraints.Float](v T) T {
	if v < 0 {
		return -v
	}

	return v
}
