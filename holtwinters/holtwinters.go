package holtwinters

import (
	"errors"
	"fmt"
	"math"

	"github.com/sartorproj/goforecast/stats"
	"github.com/sartorproj/goforecast/timeseries"
)

// ComponentType selects how a model component combines with the level.
type ComponentType string

const (
	Additive       ComponentType = "additive"
	Multiplicative ComponentType = "multiplicative"
)

var (
	// ErrInsufficientData reports a series shorter than two seasonal cycles,
	// too short for seasonal estimation to be well-posed.
	ErrInsufficientData = errors.New("holtwinters: fewer than two seasonal cycles of data")

	// ErrConvergence reports that optimization failed to converge or that
	// fitting produced non-finite state.
	ErrConvergence = errors.New("holtwinters: optimization did not converge")
)

// Model represents a Holt-Winters triple exponential smoothing model.
// Trend, Seasonal, and Period are fixed at construction; the remaining
// exported fields are populated by Fit and not mutated afterwards.
type Model struct {
	Trend    ComponentType `json:"trend"`
	Seasonal ComponentType `json:"seasonal"`
	Period   int           `json:"period"`

	// Smoothing coefficients chosen by the optimizer.
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
	Gamma float64 `json:"gamma"`

	// Smoothing state after the last observation.
	Level       float64   `json:"level"`
	TrendFactor float64   `json:"trend_factor"`
	Indices     []float64 `json:"indices"` // seasonal state, one entry per period position

	// SSE is the sum of squared one-step-ahead errors over the history.
	SSE float64 `json:"sse"`

	fitted     bool
	data       *timeseries.Series
	residuals  []float64
	fittedVals []float64
}

// New creates a Holt-Winters model with the given component types and
// seasonal period.
func New(trend, seasonal ComponentType, period int) *Model {
	return &Model{
		Trend:    trend,
		Seasonal: seasonal,
		Period:   period,
	}
}

// FitAndForecast fits a model to the series and forecasts horizon months
// ahead. On failure no model and no forecast are returned.
func FitAndForecast(series *timeseries.Series, horizon int, trend, seasonal ComponentType, period int) (*Model, *timeseries.Series, error) {
	model := New(trend, seasonal, period)
	if err := model.Fit(series); err != nil {
		return nil, nil, err
	}
	forecast, err := model.Forecast(horizon)
	if err != nil {
		return nil, nil, err
	}
	return model, forecast, nil
}

// smoothingState holds the recursion state: level, trend factor, and one
// seasonal entry per period position.
type smoothingState struct {
	level    float64
	trend    float64
	seasonal []float64
}

// Fit fits the model to the given monthly series.
func (m *Model) Fit(series *timeseries.Series) error {
	if m.Period < 2 {
		return fmt.Errorf("holtwinters: seasonal period must be at least 2, got %d", m.Period)
	}
	if series == nil || series.Len() < 2*m.Period {
		n := 0
		if series != nil {
			n = series.Len()
		}
		return fmt.Errorf("%w: need %d observations, have %d", ErrInsufficientData, 2*m.Period, n)
	}

	m.data = series.Copy()

	init, err := m.initialState()
	if err != nil {
		return err
	}

	alpha, beta, gamma, err := m.optimize(init)
	if err != nil {
		return err
	}

	final, sse, residuals, fittedVals, ok := m.run(alpha, beta, gamma, init)
	if !ok {
		return fmt.Errorf("%w: non-finite state at optimum", ErrConvergence)
	}

	m.Alpha, m.Beta, m.Gamma = alpha, beta, gamma
	m.Level = final.level
	m.TrendFactor = final.trend
	m.Indices = final.seasonal
	m.SSE = sse
	m.residuals = residuals
	m.fittedVals = fittedVals
	m.fitted = true
	return nil
}

// initialState derives initial level, trend, and seasonal estimates from the
// data via classical decomposition over the historical series.
func (m *Model) initialState() (smoothingState, error) {
	dec := stats.Decompose(m.data, m.Period, string(m.Seasonal))
	if dec == nil {
		return smoothingState{}, fmt.Errorf("%w: decomposition failed", ErrConvergence)
	}

	seasonal := make([]float64, m.Period)
	copy(seasonal, dec.Pattern)

	// Level: mean of the first deseasonalized cycle.
	level := 0.0
	for i := 0; i < m.Period; i++ {
		if m.Seasonal == Multiplicative {
			if seasonal[i] == 0 {
				return smoothingState{}, fmt.Errorf("%w: zero seasonal index in initialization", ErrConvergence)
			}
			level += m.data.Values[i] / seasonal[i]
		} else {
			level += m.data.Values[i] - seasonal[i]
		}
	}
	level /= float64(m.Period)

	// Trend: change between the first two cycle means, spread over one period.
	mean1, mean2 := 0.0, 0.0
	for i := 0; i < m.Period; i++ {
		mean1 += m.data.Values[i]
		mean2 += m.data.Values[m.Period+i]
	}
	mean1 /= float64(m.Period)
	mean2 /= float64(m.Period)

	var trend float64
	if m.Trend == Multiplicative {
		if mean1 <= 0 || mean2 <= 0 {
			return smoothingState{}, fmt.Errorf("%w: multiplicative trend requires positive data", ErrConvergence)
		}
		trend = math.Pow(mean2/mean1, 1/float64(m.Period))
	} else {
		trend = (mean2 - mean1) / float64(m.Period)
	}

	state := smoothingState{level: level, trend: trend, seasonal: seasonal}
	if !state.finite() {
		return smoothingState{}, fmt.Errorf("%w: non-finite initial state", ErrConvergence)
	}
	return state, nil
}

func (s smoothingState) finite() bool {
	if math.IsNaN(s.level) || math.IsInf(s.level, 0) || math.IsNaN(s.trend) || math.IsInf(s.trend, 0) {
		return false
	}
	for _, v := range s.seasonal {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// run executes the smoothing recursion for one coefficient combination,
// returning the final state, the one-step SSE, residuals, and fitted values.
// ok is false when the recursion produces non-finite state.
func (m *Model) run(alpha, beta, gamma float64, init smoothingState) (final smoothingState, sse float64, residuals, fittedVals []float64, ok bool) {
	n := m.data.Len()
	values := m.data.Values

	level := init.level
	trend := init.trend
	seasonal := make([]float64, m.Period)
	copy(seasonal, init.seasonal)

	residuals = make([]float64, n)
	fittedVals = make([]float64, n)

	for t := 0; t < n; t++ {
		y := values[t]
		si := seasonal[t%m.Period]

		// One-step-ahead prediction from the previous state.
		var carry float64
		if m.Trend == Multiplicative {
			carry = level * trend
		} else {
			carry = level + trend
		}
		var yhat float64
		if m.Seasonal == Multiplicative {
			yhat = carry * si
		} else {
			yhat = carry + si
		}

		e := y - yhat
		sse += e * e
		residuals[t] = e
		fittedVals[t] = yhat

		// Component updates.
		var deseason float64
		if m.Seasonal == Multiplicative {
			deseason = y / si
		} else {
			deseason = y - si
		}
		newLevel := alpha*deseason + (1-alpha)*carry

		var newTrend float64
		if m.Trend == Multiplicative {
			newTrend = beta*(newLevel/level) + (1-beta)*trend
		} else {
			newTrend = beta*(newLevel-level) + (1-beta)*trend
		}

		var newSeasonal float64
		if m.Seasonal == Multiplicative {
			newSeasonal = gamma*(y/newLevel) + (1-gamma)*si
		} else {
			newSeasonal = gamma*(y-newLevel) + (1-gamma)*si
		}

		if math.IsNaN(newLevel) || math.IsInf(newLevel, 0) ||
			math.IsNaN(newTrend) || math.IsInf(newTrend, 0) ||
			math.IsNaN(newSeasonal) || math.IsInf(newSeasonal, 0) {
			return smoothingState{}, 0, nil, nil, false
		}

		level = newLevel
		trend = newTrend
		seasonal[t%m.Period] = newSeasonal
	}

	if math.IsNaN(sse) || math.IsInf(sse, 0) {
		return smoothingState{}, 0, nil, nil, false
	}

	final = smoothingState{level: level, trend: trend, seasonal: seasonal}
	return final, sse, residuals, fittedVals, true
}

// optimize chooses (α, β, γ) minimizing the one-step SSE: a coarse grid
// pass followed by a shrinking coordinate search around the best point.
// The schedule is fixed, so the result is deterministic.
func (m *Model) optimize(init smoothingState) (alpha, beta, gamma float64, err error) {
	const (
		coeffMin = 1e-4
		coeffMax = 1 - 1e-4
	)

	evaluate := func(a, b, g float64) float64 {
		_, sse, _, _, ok := m.run(a, b, g, init)
		if !ok {
			return math.Inf(1)
		}
		return sse
	}

	bestSSE := math.Inf(1)
	var best [3]float64

	// Coarse grid.
	for a := 0.05; a < 1; a += 0.1 {
		for b := 0.05; b < 1; b += 0.1 {
			for g := 0.05; g < 1; g += 0.1 {
				if sse := evaluate(a, b, g); sse < bestSSE {
					bestSSE = sse
					best = [3]float64{a, b, g}
				}
			}
		}
	}

	if math.IsInf(bestSSE, 1) {
		return 0, 0, 0, fmt.Errorf("%w: no finite objective on the search grid", ErrConvergence)
	}

	// Coordinate descent with a shrinking step, keeping the best point.
	step := 0.05
	for step > 1e-4 {
		improved := false
		for coord := 0; coord < 3; coord++ {
			for _, dir := range [2]float64{-1, 1} {
				candidate := best
				candidate[coord] = clamp(candidate[coord]+dir*step, coeffMin, coeffMax)
				if sse := evaluate(candidate[0], candidate[1], candidate[2]); sse < bestSSE {
					bestSSE = sse
					best = candidate
					improved = true
				}
			}
		}
		if !improved {
			step /= 2
		}
	}

	return best[0], best[1], best[2], nil
}

func clamp(v, lower, upper float64) float64 {
	if v < lower {
		return lower
	}
	if v > upper {
		return upper
	}
	return v
}

// Forecast generates a forecast for the specified number of months ahead.
// The result has exactly horizon entries whose timestamps are the months
// immediately following the last historical observation.
func (m *Model) Forecast(horizon int) (*timeseries.Series, error) {
	if !m.fitted {
		return nil, errors.New("holtwinters: model must be fitted before forecasting")
	}
	if horizon < 1 {
		return nil, fmt.Errorf("holtwinters: horizon must be at least 1, got %d", horizon)
	}

	n := m.data.Len()
	values := make([]float64, horizon)

	for h := 1; h <= horizon; h++ {
		var carried float64
		if m.Trend == Multiplicative {
			carried = m.Level * math.Pow(m.TrendFactor, float64(h))
		} else {
			carried = m.Level + float64(h)*m.TrendFactor
		}

		// Seasonal index for the corresponding month of the cycle.
		si := m.Indices[(n+h-1)%m.Period]

		var v float64
		if m.Seasonal == Multiplicative {
			v = carried * si
		} else {
			v = carried + si
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: non-finite forecast at step %d", ErrConvergence, h)
		}
		values[h-1] = v
	}

	return &timeseries.Series{
		Timestamps: m.data.FutureTimestamps(horizon),
		Values:     values,
		Name:       m.data.Name,
	}, nil
}

// Residuals returns the one-step-ahead forecast errors over the history.
func (m *Model) Residuals() []float64 {
	if !m.fitted {
		return nil
	}
	result := make([]float64, len(m.residuals))
	copy(result, m.residuals)
	return result
}

// FittedValues returns the one-step-ahead predictions over the history.
func (m *Model) FittedValues() []float64 {
	if !m.fitted {
		return nil
	}
	result := make([]float64, len(m.fittedVals))
	copy(result, m.fittedVals)
	return result
}

// Summary holds the fitted model state and fit-quality metrics for
// diagnostic display and caching.
type Summary struct {
	Trend    ComponentType `json:"trend"`
	Seasonal ComponentType `json:"seasonal"`
	Period   int           `json:"period"`

	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
	Gamma float64 `json:"gamma"`

	Level       float64   `json:"level"`
	TrendFactor float64   `json:"trend_factor"`
	Indices     []float64 `json:"indices"`

	SSE  float64 `json:"sse"`
	RMSE float64 `json:"rmse"`
	MAE  float64 `json:"mae"`
	MAPE float64 `json:"mape"`
	NObs int     `json:"n_obs"`
}

// Summary returns a summary of the fitted model, or nil before fitting.
func (m *Model) Summary() *Summary {
	if !m.fitted {
		return nil
	}

	rmse, mae, mape := stats.Accuracy(m.data.Values, m.fittedVals)

	indices := make([]float64, len(m.Indices))
	copy(indices, m.Indices)

	return &Summary{
		Trend:       m.Trend,
		Seasonal:    m.Seasonal,
		Period:      m.Period,
		Alpha:       m.Alpha,
		Beta:        m.Beta,
		Gamma:       m.Gamma,
		Level:       m.Level,
		TrendFactor: m.TrendFactor,
		Indices:     indices,
		SSE:         m.SSE,
		RMSE:        rmse,
		MAE:         mae,
		MAPE:        mape,
		NObs:        m.data.Len(),
	}
}
