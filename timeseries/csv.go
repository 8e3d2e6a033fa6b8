package timeseries

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadOptions holds options for CSV loading.
type LoadOptions struct {
	Name        string // Series name (category label)
	DateColumn  string // Column name for dates (default: detected by header token)
	ValueColumn string // Column name for values (default: first non-date column)
	Delimiter   rune   // Field delimiter (default: ',')
}

// DefaultLoadOptions returns default options for CSV loading.
func DefaultLoadOptions() *LoadOptions {
	return &LoadOptions{
		Delimiter: ',',
	}
}

// dateFormats are tried in order when parsing the date column.
var dateFormats = []string{
	"2006-01-02",
	"2006-01",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
}

// LoadCSV loads a monthly time series from a CSV file.
func LoadCSV(filename string, opts *LoadOptions) (*Series, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadCSVFromReader(file, opts)
}

// LoadCSVFromReader loads a monthly time series from an io.Reader.
//
// The first row is a header. The date column is the one named by
// opts.DateColumn, or else the first header containing a date token
// ("date", "ds", "month", case-insensitive). The value column is the one
// named by opts.ValueColumn, or else the first non-date column in column
// order. Rows whose value fails numeric coercion are dropped; rows whose
// date fails to parse are a format error. The surviving rows are snapped to
// month starts and must form a strict monthly sequence with no duplicates
// or interior gaps.
func LoadCSVFromReader(r io.Reader, opts *LoadOptions) (*Series, error) {
	if opts == nil {
		opts = DefaultLoadOptions()
	}

	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty input", ErrDataFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataFormat, err)
	}

	dateIdx, valueIdx, err := resolveColumns(header, opts)
	if err != nil {
		return nil, err
	}

	var timestamps []time.Time
	var values []float64

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDataFormat, err)
		}
		if dateIdx >= len(record) || valueIdx >= len(record) {
			return nil, fmt.Errorf("%w: row has %d columns, need %d", ErrDataFormat, len(record), max(dateIdx, valueIdx)+1)
		}

		valStr := cleanField(record[valueIdx])
		if valStr == "" || valStr == "NA" || valStr == "NaN" || valStr == "null" {
			continue
		}
		val, err := strconv.ParseFloat(valStr, 64)
		if err != nil {
			continue // drop rows that fail numeric coercion
		}

		dateStr := cleanField(record[dateIdx])
		ts, err := parseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("%w: unparseable date %q", ErrDataFormat, dateStr)
		}

		timestamps = append(timestamps, MonthStart(ts))
		values = append(values, val)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("%w: value column %q", ErrEmptySeries, header[valueIdx])
	}

	series := &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       opts.Name,
	}
	series.sortByTime()

	if err := series.Validate(); err != nil {
		return nil, err
	}
	return series, nil
}

// resolveColumns picks the date and value column indices from the header.
func resolveColumns(header []string, opts *LoadOptions) (dateIdx, valueIdx int, err error) {
	dateIdx, valueIdx = -1, -1

	for i, h := range header {
		h = cleanField(h)
		switch {
		case opts.DateColumn != "" && h == opts.DateColumn:
			dateIdx = i
		case opts.DateColumn == "" && dateIdx == -1 && isDateHeader(h):
			dateIdx = i
		case opts.ValueColumn != "" && h == opts.ValueColumn:
			valueIdx = i
		}
	}

	if dateIdx == -1 {
		return 0, 0, fmt.Errorf("%w: no date column found in header %v", ErrDataFormat, header)
	}

	// Default value column: first non-date column in column order.
	if valueIdx == -1 {
		if opts.ValueColumn != "" {
			return 0, 0, fmt.Errorf("%w: value column %q not found", ErrDataFormat, opts.ValueColumn)
		}
		for i := range header {
			if i != dateIdx {
				valueIdx = i
				break
			}
		}
	}
	if valueIdx == -1 {
		return 0, 0, fmt.Errorf("%w: no value column found in header %v", ErrDataFormat, header)
	}

	return dateIdx, valueIdx, nil
}

// isDateHeader reports whether a header names a date-like column.
func isDateHeader(h string) bool {
	l := strings.ToLower(h)
	return strings.Contains(l, "date") || l == "ds" || l == "month"
}

func parseDate(s string) (time.Time, error) {
	var ts time.Time
	var err error
	for _, format := range dateFormats {
		ts, err = time.Parse(format, s)
		if err == nil {
			return ts, nil
		}
	}
	return time.Time{}, err
}

func cleanField(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "\""))
}

// WriteForecastCSV writes a forecast series in the documented export layout:
// a "month,forecast" header, months as YYYY-MM-DD, and values rounded to the
// nearest whole unit.
func WriteForecastCSV(w io.Writer, forecast *Series) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString("month,forecast\n"); err != nil {
		return err
	}
	for i, v := range forecast.Values {
		bw.WriteString(forecast.Timestamps[i].Format("2006-01-02"))
		bw.WriteString(",")
		bw.WriteString(strconv.FormatFloat(math.Round(v), 'f', -1, 64))
		bw.WriteString("\n")
	}

	return bw.Flush()
}

// SaveForecastCSV writes the forecast export to a file.
func SaveForecastCSV(forecast *Series, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteForecastCSV(file, forecast)
}
