package timeseries

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Series represents a strictly monthly time series with timestamps and values.
// Timestamps are month starts (day 1, 00:00 UTC), strictly increasing and one
// calendar month apart. A Series is treated as immutable once returned: all
// operations that derive a new series copy the underlying slices.
type Series struct {
	Timestamps []time.Time
	Values     []float64
	Name       string
}

// NewMonthly creates a contiguous monthly series starting at the month
// containing start.
func NewMonthly(name string, start time.Time, values []float64) *Series {
	timestamps := make([]time.Time, len(values))
	base := MonthStart(start)
	for i := range timestamps {
		timestamps[i] = base.AddDate(0, i, 0)
	}
	vals := make([]float64, len(values))
	copy(vals, values)
	return &Series{
		Timestamps: timestamps,
		Values:     vals,
		Name:       name,
	}
}

// NewWithTimestamps creates a monthly series with explicit timestamps.
// The timestamps must already satisfy the monthly invariant.
func NewWithTimestamps(name string, timestamps []time.Time, values []float64) (*Series, error) {
	s := &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       name,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// MonthStart returns the first instant of the calendar month containing t, in UTC.
func MonthStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Validate checks the monthly-series invariant: equal-length slices, at least
// one observation, month-start timestamps one calendar month apart with no
// duplicates or gaps, and finite values.
func (s *Series) Validate() error {
	if len(s.Timestamps) != len(s.Values) {
		return fmt.Errorf("%w: %d timestamps for %d values", ErrDataFormat, len(s.Timestamps), len(s.Values))
	}
	if len(s.Values) == 0 {
		return ErrEmptySeries
	}
	for i, ts := range s.Timestamps {
		if !ts.Equal(MonthStart(ts)) {
			return fmt.Errorf("%w: timestamp %s is not a month start", ErrDataFormat, ts.Format("2006-01-02"))
		}
		if i == 0 {
			continue
		}
		want := s.Timestamps[i-1].AddDate(0, 1, 0)
		switch {
		case ts.Equal(s.Timestamps[i-1]):
			return fmt.Errorf("%w: duplicate month %s", ErrDataFormat, ts.Format("2006-01"))
		case ts.Before(want):
			return fmt.Errorf("%w: out-of-order month %s", ErrDataFormat, ts.Format("2006-01"))
		case ts.After(want):
			return fmt.Errorf("%w: missing month %s", ErrDataFormat, want.Format("2006-01"))
		}
	}
	for i, v := range s.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite value at %s", ErrDataFormat, s.Timestamps[i].Format("2006-01"))
		}
	}
	return nil
}

// Len returns the number of observations in the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// First returns the timestamp of the earliest observation.
func (s *Series) First() time.Time {
	if len(s.Timestamps) == 0 {
		return time.Time{}
	}
	return s.Timestamps[0]
}

// Last returns the timestamp of the latest observation.
func (s *Series) Last() time.Time {
	if len(s.Timestamps) == 0 {
		return time.Time{}
	}
	return s.Timestamps[len(s.Timestamps)-1]
}

// FutureTimestamps returns the h consecutive month starts immediately
// following the last observation.
func (s *Series) FutureTimestamps(h int) []time.Time {
	if h <= 0 || len(s.Timestamps) == 0 {
		return nil
	}
	last := s.Last()
	future := make([]time.Time, h)
	for i := range future {
		future[i] = last.AddDate(0, i+1, 0)
	}
	return future
}

// Mean calculates the arithmetic mean of the series.
func (s *Series) Mean() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range s.Values {
		sum += v
	}
	return sum / float64(len(s.Values))
}

// Variance calculates the sample variance of the series.
func (s *Series) Variance() float64 {
	if len(s.Values) < 2 {
		return 0
	}
	mean := s.Mean()
	sumSq := 0.0
	for _, v := range s.Values {
		diff := v - mean
		sumSq += diff * diff
	}
	return sumSq / float64(len(s.Values)-1)
}

// Std calculates the standard deviation of the series.
func (s *Series) Std() float64 {
	return math.Sqrt(s.Variance())
}

// Min returns the minimum value in the series.
func (s *Series) Min() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	min := s.Values[0]
	for _, v := range s.Values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// Max returns the maximum value in the series.
func (s *Series) Max() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	max := s.Values[0]
	for _, v := range s.Values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)

	timestamps := make([]time.Time, len(s.Timestamps))
	copy(timestamps, s.Timestamps)

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}

// Fingerprint returns a 64-bit hash of the series content: name, timestamps,
// and the exact bit patterns of the values. Two series with identical content
// always share a fingerprint; changing any single observation changes it.
func (s *Series) Fingerprint() uint64 {
	d := xxhash.New()
	d.WriteString(s.Name)

	var buf [8]byte
	for i := range s.Values {
		binary.LittleEndian.PutUint64(buf[:], uint64(s.Timestamps[i].Unix()))
		d.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(s.Values[i]))
		d.Write(buf[:])
	}
	return d.Sum64()
}

// sortByTime orders observations by timestamp ascending, in place.
// Used by the loader before the monthly invariant is checked.
func (s *Series) sortByTime() {
	type obs struct {
		ts  time.Time
		val float64
	}
	rows := make([]obs, len(s.Values))
	for i := range rows {
		rows[i] = obs{s.Timestamps[i], s.Values[i]}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ts.Before(rows[j].ts) })
	for i, r := range rows {
		s.Timestamps[i] = r.ts
		s.Values[i] = r.val
	}
}
