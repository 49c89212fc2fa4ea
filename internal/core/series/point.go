// Package series holds the chart-ready value objects emitted by the
// transform engine: dated points, named series, and the builders that
// assemble series collections from accumulated per-date values
package series

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// ValueKind tags a point or series value for downstream formatting
type ValueKind string

const (
	// KindNumber is a plain numeric value
	KindNumber ValueKind = "number"
	// KindFilesize is a byte-size value rendered with binary units
	KindFilesize ValueKind = "filesize"
)

// Point is a single dated value
// Date never carries a time of day; construction truncates timestamps
type Point struct {
	Date  string
	Value float64
	Kind  ValueKind
}

// NewPoint builds a Point from a date (calendar date or full timestamp)
// and a value. No numeric validation happens here: NaN and negative
// values pass through unchanged
func NewPoint(date string, value float64, kind ValueKind) Point {
	return Point{Date: TruncateDate(date), Value: value, Kind: kind}
}

// TruncateDate reduces a timestamp to its calendar date portion
// already-truncated dates come back unchanged
func TruncateDate(date string) string {
	if i := strings.IndexAny(date, "T "); i >= 0 {
		return date[:i]
	}
	return date
}

// Readable renders the date as eg "Jun 03, 2025"
// malformed dates fail closed by echoing the raw string
func (p Point) Readable() string {
	t, err := time.Parse("2006-01-02", p.Date)
	if err != nil {
		return p.Date
	}
	return t.Format("Jan 02, 2006")
}

// pointWire is the serialized form of a Point
type pointWire struct {
	Value         [2]any `json:"value"`
	ReadableDate  string `json:"readableDate"`
	ValueKind     string `json:"valueType"`
	ReadableValue string `json:"readableValue,omitempty"`
}

// MarshalJSON renders the documented date/value pair shape
// filesize points additionally carry a humanized byte rendering
func (p Point) MarshalJSON() ([]byte, error) {
	w := pointWire{
		Value:        [2]any{p.Date, p.Value},
		ReadableDate: p.Readable(),
		ValueKind:    string(p.Kind),
	}
	if p.Kind == KindFilesize && p.Value >= 0 {
		w.ReadableValue = humanize.Bytes(uint64(p.Value))
	}
	return json.Marshal(w)
}
