package animation

import "fmt"

// NormalizedMax is the progress value at the end of a run
const NormalizedMax = 65535

// Curve maps linear normalized time to eased normalized progress
// Both ends are fixed: Curve(0) == 0 and Curve(NormalizedMax) == NormalizedMax
type Curve func(t uint32) uint32

// Curve names accepted by ParseCurve
const (
	CurveLinear    = "linear"
	CurveEaseIn    = "ease-in"
	CurveEaseOut   = "ease-out"
	CurveEaseInOut = "ease-in-out"
)

// Linear returns t unchanged
func Linear(t uint32) uint32 {
	return clamp(t)
}

// EaseIn is quadratic acceleration from rest
func EaseIn(t uint32) uint32 {
	x := uint64(clamp(t))
	return uint32(x * x / NormalizedMax)
}

// EaseOut is quadratic deceleration to rest
func EaseOut(t uint32) uint32 {
	r := uint64(NormalizedMax - clamp(t))
	return uint32(NormalizedMax - r*r/NormalizedMax)
}

// EaseInOut accelerates over the first half and decelerates over the second
func EaseInOut(t uint32) uint32 {
	x := uint64(clamp(t))
	if x < NormalizedMax/2 {
		return uint32(2 * x * x / NormalizedMax)
	}
	r := NormalizedMax - x
	return uint32(NormalizedMax - 2*r*r/NormalizedMax)
}

func clamp(t uint32) uint32 {
	if t > NormalizedMax {
		return NormalizedMax
	}
	return t
}

// ParseCurve resolves a curve by name
func ParseCurve(name string) (Curve, error) {
	switch name {
	case CurveLinear:
		return Linear, nil
	case CurveEaseIn:
		return EaseIn, nil
	case CurveEaseOut, "":
		return EaseOut, nil
	case CurveEaseInOut:
		return EaseInOut, nil
	default:
		return nil, fmt.Errorf("unknown animation curve %q", name)
	}
}
