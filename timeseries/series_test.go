package timeseries

import (
	"errors"
	"math"
	"testing"
	"time"
)

func jan(year int) time.Time {
	return time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
}

func TestNewMonthly(t *testing.T) {
	values := []float64{100, 102, 105, 103}
	series := NewMonthly("sales", time.Date(2022, 3, 15, 10, 30, 0, 0, time.UTC), values)

	if series.Len() != 4 {
		t.Fatalf("Expected 4 observations, got %d", series.Len())
	}

	// Start is snapped to the month start.
	want := time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC)
	if !series.First().Equal(want) {
		t.Errorf("First timestamp: expected %v, got %v", want, series.First())
	}
	if !series.Last().Equal(time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Last timestamp wrong: %v", series.Last())
	}

	if err := series.Validate(); err != nil {
		t.Errorf("Valid series failed validation: %v", err)
	}
}

func TestValidateRejectsGap(t *testing.T) {
	timestamps := []time.Time{jan(2022), jan(2022).AddDate(0, 1, 0), jan(2022).AddDate(0, 3, 0)}
	series := &Series{Timestamps: timestamps, Values: []float64{1, 2, 3}}

	err := series.Validate()
	if !errors.Is(err, ErrDataFormat) {
		t.Errorf("Expected ErrDataFormat for interior gap, got %v", err)
	}
}

func TestValidateRejectsDuplicate(t *testing.T) {
	timestamps := []time.Time{jan(2022), jan(2022)}
	series := &Series{Timestamps: timestamps, Values: []float64{1, 2}}

	err := series.Validate()
	if !errors.Is(err, ErrDataFormat) {
		t.Errorf("Expected ErrDataFormat for duplicate month, got %v", err)
	}
}

func TestValidateRejectsNonMonthStart(t *testing.T) {
	timestamps := []time.Time{time.Date(2022, 1, 15, 0, 0, 0, 0, time.UTC)}
	series := &Series{Timestamps: timestamps, Values: []float64{1}}

	err := series.Validate()
	if !errors.Is(err, ErrDataFormat) {
		t.Errorf("Expected ErrDataFormat for mid-month timestamp, got %v", err)
	}
}

func TestValidateRejectsEmpty(t *testing.T) {
	series := &Series{}
	if !errors.Is(series.Validate(), ErrEmptySeries) {
		t.Error("Expected ErrEmptySeries for empty series")
	}
}

func TestSummaryStatistics(t *testing.T) {
	series := NewMonthly("s", jan(2022), []float64{2, 4, 6, 8})

	if series.Mean() != 5 {
		t.Errorf("Mean: expected 5, got %f", series.Mean())
	}
	if series.Min() != 2 || series.Max() != 8 {
		t.Errorf("Min/Max: expected 2/8, got %f/%f", series.Min(), series.Max())
	}
	wantStd := math.Sqrt(20.0 / 3.0)
	if math.Abs(series.Std()-wantStd) > 1e-12 {
		t.Errorf("Std: expected %f, got %f", wantStd, series.Std())
	}
}

func TestFutureTimestamps(t *testing.T) {
	series := NewMonthly("s", time.Date(2022, 11, 1, 0, 0, 0, 0, time.UTC), []float64{1, 2, 3})

	future := series.FutureTimestamps(3)
	if len(future) != 3 {
		t.Fatalf("Expected 3 future timestamps, got %d", len(future))
	}

	// Contiguous with the last month, crossing the year boundary.
	want := []time.Time{
		time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	for i := range want {
		if !future[i].Equal(want[i]) {
			t.Errorf("Future timestamp %d: expected %v, got %v", i, want[i], future[i])
		}
	}
}

func TestFingerprintStable(t *testing.T) {
	a := NewMonthly("sales", jan(2022), []float64{1, 2, 3})
	b := a.Copy()

	if a.Fingerprint() != b.Fingerprint() {
		t.Error("Identical series should share a fingerprint")
	}
}

func TestFingerprintChangesWithContent(t *testing.T) {
	base := NewMonthly("sales", jan(2022), []float64{1, 2, 3})

	changedValue := base.Copy()
	changedValue.Values[1] = 2.0000001
	if base.Fingerprint() == changedValue.Fingerprint() {
		t.Error("Changing a value should change the fingerprint")
	}

	changedName := base.Copy()
	changedName.Name = "other"
	if base.Fingerprint() == changedName.Fingerprint() {
		t.Error("Changing the name should change the fingerprint")
	}

	shifted := NewMonthly("sales", jan(2023), []float64{1, 2, 3})
	if base.Fingerprint() == shifted.Fingerprint() {
		t.Error("Shifting timestamps should change the fingerprint")
	}
}

func TestCopyIsDeep(t *testing.T) {
	a := NewMonthly("s", jan(2022), []float64{1, 2, 3})
	b := a.Copy()
	b.Values[0] = 99

	if a.Values[0] != 1 {
		t.Error("Copy should not share backing arrays")
	}
}
