package stats

import (
	"math"
	"time"

	"github.com/sartorproj/goforecast/timeseries"
)

// DecompositionResult represents the decomposition of a time series.
type DecompositionResult struct {
	Original *timeseries.Series
	Trend    *timeseries.Series
	Seasonal *timeseries.Series
	Residual *timeseries.Series
	Pattern  []float64 // one normalized seasonal index per period position
	Period   int
	Type     string // "additive" or "multiplicative"
}

// Decompose performs classical seasonal decomposition of a time series,
// using a centered moving average for the trend. Type can be "additive"
// (Y = T + S + R) or "multiplicative" (Y = T * S * R). Returns nil when the
// series is shorter than two full periods.
func Decompose(series *timeseries.Series, period int, decompositionType string) *DecompositionResult {
	n := series.Len()
	if n < 2*period {
		return nil
	}

	if decompositionType != "additive" && decompositionType != "multiplicative" {
		decompositionType = "additive"
	}

	// Step 1: Calculate trend using centered moving average
	trend := calculateTrend(series, period)

	// Step 2: Detrend the series
	detrended := make([]float64, n)
	if decompositionType == "multiplicative" {
		for i := 0; i < n; i++ {
			if !math.IsNaN(trend[i]) && trend[i] != 0 {
				detrended[i] = series.Values[i] / trend[i]
			} else {
				detrended[i] = math.NaN()
			}
		}
	} else {
		for i := 0; i < n; i++ {
			if !math.IsNaN(trend[i]) {
				detrended[i] = series.Values[i] - trend[i]
			} else {
				detrended[i] = math.NaN()
			}
		}
	}

	// Step 3: Calculate seasonal pattern by averaging within each period
	pattern := make([]float64, period)
	counts := make([]int, period)

	for i := 0; i < n; i++ {
		if !math.IsNaN(detrended[i]) {
			seasonIdx := i % period
			pattern[seasonIdx] += detrended[i]
			counts[seasonIdx]++
		}
	}

	for i := 0; i < period; i++ {
		if counts[i] > 0 {
			pattern[i] /= float64(counts[i])
		} else if decompositionType == "multiplicative" {
			pattern[i] = 1
		}
	}

	// Normalize so multiplicative indices average to 1 and additive
	// offsets average to 0.
	sum := 0.0
	for _, v := range pattern {
		sum += v
	}
	mean := sum / float64(period)
	if decompositionType == "multiplicative" {
		if mean != 0 {
			for i := range pattern {
				pattern[i] /= mean
			}
		}
	} else {
		for i := range pattern {
			pattern[i] -= mean
		}
	}

	// Extend seasonal pattern to full series length
	seasonal := make([]float64, n)
	for i := 0; i < n; i++ {
		seasonal[i] = pattern[i%period]
	}

	// Step 4: Calculate residual
	residual := make([]float64, n)
	if decompositionType == "multiplicative" {
		for i := 0; i < n; i++ {
			if !math.IsNaN(trend[i]) && trend[i] != 0 && seasonal[i] != 0 {
				residual[i] = series.Values[i] / (trend[i] * seasonal[i])
			} else {
				residual[i] = math.NaN()
			}
		}
	} else {
		for i := 0; i < n; i++ {
			if !math.IsNaN(trend[i]) {
				residual[i] = series.Values[i] - trend[i] - seasonal[i]
			} else {
				residual[i] = math.NaN()
			}
		}
	}

	return &DecompositionResult{
		Original: series,
		Trend:    componentSeries(series, trend, "trend"),
		Seasonal: componentSeries(series, seasonal, "seasonal"),
		Residual: componentSeries(series, residual, "residual"),
		Pattern:  pattern,
		Period:   period,
		Type:     decompositionType,
	}
}

// calculateTrend calculates trend using a centered moving average.
// Positions within half a period of either edge are NaN.
func calculateTrend(series *timeseries.Series, period int) []float64 {
	n := series.Len()
	trend := make([]float64, n)
	for i := range trend {
		trend[i] = math.NaN()
	}

	halfPeriod := period / 2

	if period%2 == 0 {
		// Even period: 2xperiod MA with half weight on the endpoints
		for i := halfPeriod; i < n-halfPeriod; i++ {
			sum := series.Values[i-halfPeriod]*0.5 + series.Values[i+halfPeriod]*0.5
			for j := i - halfPeriod + 1; j < i+halfPeriod; j++ {
				sum += series.Values[j]
			}
			trend[i] = sum / float64(period)
		}
	} else {
		for i := halfPeriod; i < n-halfPeriod; i++ {
			sum := 0.0
			for j := i - halfPeriod; j <= i+halfPeriod; j++ {
				sum += series.Values[j]
			}
			trend[i] = sum / float64(period)
		}
	}

	return trend
}

func componentSeries(original *timeseries.Series, values []float64, name string) *timeseries.Series {
	timestamps := make([]time.Time, len(original.Timestamps))
	copy(timestamps, original.Timestamps)
	return &timeseries.Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       name,
	}
}
