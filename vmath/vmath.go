package vmath

// Fixed-point angle convention for dial placement
// A full turn is TrigMaxAngle, Sin/Cos return values scaled by TrigMaxRatio
const (
	TrigMaxAngle = 0x10000
	TrigMaxRatio = 0xffff

	LUTSize = 1024
	LUTMask = LUTSize - 1

	// Angle bits below the LUT index, used for interpolation
	lutShift = 6
	lutSpan  = 1 << lutShift
)

// --- Trigonometry ---

// Sin returns sine of an angle where 0..TrigMaxAngle maps to 0..2pi, scaled by TrigMaxRatio
// Angles outside the range wrap, negative angles included
func Sin(angle int32) int32 {
	return lookup(&SinLUT, angle)
}

// Cos returns cosine of an angle where 0..TrigMaxAngle maps to 0..2pi, scaled by TrigMaxRatio
func Cos(angle int32) int32 {
	return lookup(&CosLUT, angle)
}

// lookup interpolates between adjacent LUT entries with truncating division
func lookup(lut *[LUTSize + 1]int32, angle int32) int32 {
	a := angle & (TrigMaxAngle - 1)
	idx := a >> lutShift
	frac := a & (lutSpan - 1)

	v0 := lut[idx]
	v1 := lut[idx+1]
	return v0 + (v1-v0)*frac/lutSpan
}

// ScaleByRatio multiplies a TrigMaxRatio-scaled value by n and scales back down
// Product is taken in 64 bits, division truncates toward zero
func ScaleByRatio(v int32, n int) int {
	return int(int64(v) * int64(n) / TrigMaxRatio)
}

// AngleFraction returns TrigMaxAngle * num / den as an angle
func AngleFraction(num, den int) int32 {
	if den == 0 {
		return 0
	}
	return int32(int64(TrigMaxAngle) * int64(num) / int64(den))
}

// --- Randomness ---

// FastRand is a xorshift64 generator, deterministic for a given seed
type FastRand struct {
	state uint64
}

func NewFastRand(seed uint64) *FastRand {
	r := &FastRand{}
	r.Seed(seed)
	return r
}

// Seed resets the generator state, zero is remapped since xorshift sticks at 0
func (r *FastRand) Seed(seed uint64) {
	if seed == 0 {
		seed = 1
	}
	r.state = seed
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Intn returns a value in [0, n), 0 for n <= 0
func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}
