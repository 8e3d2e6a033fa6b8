// Package timeseries provides monthly time series data structures and utilities.
//
// This package includes the Series type for representing strictly monthly
// time series data, along with CSV loading, validation, and forecast export.
//
// # Creating a Series
//
// Create a contiguous monthly series from a start month:
//
//	values := []float64{100, 102, 105, 103, 108, 110}
//	series := timeseries.NewMonthly("Adult Tees", time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), values)
//
// # Loading from CSV
//
// Load monthly sales data from a CSV file:
//
//	series, err := timeseries.LoadCSV("sales.csv", nil)
//
// The loader identifies the date column by its header, coerces the value
// column to numeric, and re-indexes the rows to a strict month-start
// frequency. Tables without a date-like column fail with ErrDataFormat;
// tables with no numeric rows fail with ErrEmptySeries.
//
// # Basic Statistics
//
// Calculate summary statistics:
//
//	mean := series.Mean()
//	std := series.Std()
//	min := series.Min()
//	max := series.Max()
package timeseries
