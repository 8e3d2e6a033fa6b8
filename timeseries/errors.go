package timeseries

import "errors"

var (
	// ErrDataFormat reports a table that cannot be interpreted as a monthly
	// series: no date-like column, unparseable dates, duplicate months, or
	// an interior calendar gap.
	ErrDataFormat = errors.New("timeseries: invalid data format")

	// ErrEmptySeries reports that no valid rows remain after coercing the
	// value column to numeric.
	ErrEmptySeries = errors.New("timeseries: no valid observations")
)
