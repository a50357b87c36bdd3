package globetour

// Easing and interpolation primitives for camera motion.
//
// These are pure functions with no state. Callers are responsible for
// clamping progress values into [0, 1] before applying an easing curve;
// Lerp and EaseInOut do not clamp internally.

// Clamp bounds v to the closed interval [min, max].
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Lerp returns the linear interpolation a + (b-a)*t.
//
// t is intentionally not clamped so the same function serves
// extrapolation; animation callers clamp t first.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// EaseInOut maps normalized progress t in [0, 1] through a symmetric
// quadratic ease: slow start, fast middle, slow finish.
//
// EaseInOut(0) = 0, EaseInOut(0.5) = 0.5, EaseInOut(1) = 1, and the two
// halves meet with matching slope at t = 0.5. Behavior outside [0, 1]
// is unspecified.
func EaseInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u/2
}
