package indicators

// RSI calculates the relative strength index over the first `window`
// transitions of values. The boolean reports whether enough data was
// available; fewer than window+1 values yields (0, false).
//
// Gains and losses are summed over a fixed historical window at the
// start of the series, not over the whole input. An all-gain window
// returns 100.
func RSI(values []float64, window int) (float64, bool) {
	if window <= 0 || len(values) < window+1 {
		return 0, false
	}

	gains := 0.0
	losses := 0.0
	for i := 1; i <= window; i++ {
		d := values[i] - values[i-1]
		if d >= 0 {
			gains += d
		} else {
			losses -= d
		}
	}

	avgGain := gains / float64(window)
	if losses <= 0 {
		return 100.0, true
	}
	avgLoss := losses / float64(window)

	rs := avgGain / avgLoss
	return 100.0 - (100.0 / (1.0 + rs)), true
}
