// Package goforecast provides monthly sales forecasting with Holt-Winters
// triple exponential smoothing.
//
// GoForecast turns historical monthly sales data for a set of product
// categories into n-month-ahead forecasts. The pipeline is: load a raw CSV
// into a strictly monthly time series, fit a Holt-Winters model with
// multiplicative trend and seasonality, and generate a forecast series that
// continues the historical months. Repeated runs are memoized through a
// fingerprint-keyed forecast cache.
//
// # Quick Start
//
// Load a series and forecast twelve months ahead:
//
//	series, err := timeseries.LoadCSV("sales.csv", nil)
//	model := holtwinters.New(holtwinters.Multiplicative, holtwinters.Multiplicative, 12)
//	if err := model.Fit(series); err != nil { ... }
//	forecast, err := model.Forecast(12)
//
// Memoize repeated runs:
//
//	cache := forecastcache.New(forecastcache.NewMemoryStore(0), 0)
//	model, forecast, err := cache.GetOrCompute(ctx, series, 12, compute)
//
// # Packages
//
// The library is organized into the following packages:
//
//   - timeseries: Monthly time series data structures, CSV loading and export
//   - holtwinters: Triple exponential smoothing models and forecasting
//   - stats: Seasonal decomposition and forecast accuracy metrics
//   - forecastcache: Fingerprint-keyed memoization of fitted models and forecasts
//   - config: YAML configuration for category data sources and model settings
//
// The cmd/goforecast command is a small host around the library: it resolves
// a product category to its data source, runs the pipeline, and writes the
// forecast CSV export.
//
// # References
//
//   - Hyndman, R.J., & Athanasopoulos, G. (2021). Forecasting: Principles and Practice
//   - Winters, P.R. (1960). Forecasting Sales by Exponentially Weighted Moving Averages
package goforecast
