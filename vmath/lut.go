package vmath

import (
	"math"
)

func init() {
	// Sin/Cos LUT calculation, trailing entry repeats index 0 for interpolation
	for i := 0; i <= LUTSize; i++ {
		rad := 2.0 * math.Pi * float64(i) / LUTSize
		SinLUT[i] = int32(math.Round(math.Sin(rad) * TrigMaxRatio))
		CosLUT[i] = int32(math.Round(math.Cos(rad) * TrigMaxRatio))
	}
}

// SinLUT and CosLUT scaled by TrigMaxRatio
var (
	SinLUT [LUTSize + 1]int32
	CosLUT [LUTSize + 1]int32
)
