// Package indicators provides the technical transforms the regime
// classifier is built on. All functions are pure: no state is kept
// between calls and no future values are read.
package indicators

// Smooth calculates an exponential moving average over values with the
// given span, using the multiplier k = 2/(span+1) and the first input as
// seed. The result has the same length as the input; if span <= 1 or the
// input is empty a copy of the input is returned unchanged.
func Smooth(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	if len(values) == 0 || span <= 1 {
		return out
	}

	k := 2.0 / float64(span+1)
	s := values[0]
	out[0] = s
	for i := 1; i < len(values); i++ {
		s = (values[i]-s)*k + s
		out[i] = s
	}
	return out
}
