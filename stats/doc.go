// Package stats provides seasonal decomposition and forecast accuracy metrics.
//
// This package includes classical seasonal decomposition (used to derive
// initial level, trend, and seasonal estimates for Holt-Winters fitting)
// and the accuracy metrics reported in model summaries.
package stats
