// Package forecastcache memoizes fitted Holt-Winters models and forecasts.
//
// The cache is the explicit memoization boundary of the forecasting
// pipeline: entries are keyed by a fingerprint of the series content plus
// the forecast horizon, so a host that reruns the whole pipeline on every
// interaction recomputes only when the underlying data actually changes.
// Concurrent requests for the same key collapse to a single in-flight
// computation.
//
// Two stores are provided: an in-memory store (unbounded or LRU-capped,
// matching the small fixed category count of the sales domain) and a
// Redis-backed store for hosts that share the cache across processes.
package forecastcache
