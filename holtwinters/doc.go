// Package holtwinters implements Holt-Winters triple exponential smoothing.
//
// The model decomposes a monthly series into level, trend, and seasonal
// components, each updated recursively per observation, and forecasts by
// carrying the trend forward and reapplying the seasonal indices. Trend and
// seasonal components can each be additive or multiplicative; monthly sales
// data with annual seasonality uses the multiplicative/multiplicative
// variant with period 12.
//
// Initial component estimates are derived from a seasonal decomposition of
// the data ("estimated" initialization). The smoothing coefficients α, β, γ
// are chosen by minimizing the sum of squared one-step-ahead forecast errors
// with a deterministic grid-plus-coordinate search, so repeated fits of the
// same series produce identical results.
//
// # Quick Start
//
//	model := holtwinters.New(holtwinters.Multiplicative, holtwinters.Multiplicative, 12)
//	if err := model.Fit(series); err != nil { ... }
//	forecast, err := model.Forecast(12)
package holtwinters
