package stats

import "math"

// Accuracy calculates forecast accuracy metrics between actual and predicted
// values. Pairs beyond the shorter slice are ignored; MAPE skips zero actuals.
func Accuracy(actual, predicted []float64) (rmse, mae, mape float64) {
	n := len(actual)
	if len(predicted) < n {
		n = len(predicted)
	}
	if n == 0 {
		return
	}
	for i := 0; i < n; i++ {
		d := actual[i] - predicted[i]
		rmse += d * d
		mae += math.Abs(d)
		if actual[i] != 0 {
			mape += math.Abs(d) / math.Abs(actual[i]) * 100
		}
	}
	return math.Sqrt(rmse / float64(n)), mae / float64(n), mape / float64(n)
}

// SSE calculates the sum of squared errors between actual and predicted values.
func SSE(actual, predicted []float64) float64 {
	n := len(actual)
	if len(predicted) < n {
		n = len(predicted)
	}
	sse := 0.0
	for i := 0; i < n; i++ {
		d := actual[i] - predicted[i]
		sse += d * d
	}
	return sse
}
