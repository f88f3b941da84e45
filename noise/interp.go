package noise

import "math"

// maxAmplitude is the bound of 2D gradient noise built from unit
// gradients: the raw value lies in [-maxAmplitude, maxAmplitude].
const maxAmplitude = math.Sqrt2 / 2

// Fade is the quintic smoothstep 6t^5 - 15t^4 + 10t^3.
func Fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

// Lerp interpolates linearly from a (t=0) to b (t=1).
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Normalize maps a raw noise value to [0,1], clamping float overshoot.
func Normalize(raw float64) float64 {
	v := (raw + maxAmplitude) / math.Sqrt2
	return min(max(v, 0), 1)
}
