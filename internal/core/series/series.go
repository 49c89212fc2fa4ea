package series

import "encoding/json"

// ChartType tags a series with the chart primitive it should render as
type ChartType string

const (
	// ChartLine renders the series as a line
	ChartLine ChartType = "line"
	// ChartBar renders the series as bars
	ChartBar ChartType = "bar"
)

// GlobalID is the reserved series id for repository-wide metrics
const GlobalID = "global"

// Series is a named, identified, typed ordered sequence of points
// Points follow input document order and are not re-sorted here;
// callers requiring sorted output sort explicitly
type Series struct {
	ID     string
	Name   string
	Points []Point
	Chart  ChartType
	Kind   ValueKind
}

// New constructs an empty Series
func New(id, name string, chart ChartType, kind ValueKind) *Series {
	return &Series{ID: id, Name: name, Chart: chart, Kind: kind}
}

// Add appends one dated value
func (s *Series) Add(date string, value float64) {
	s.Points = append(s.Points, NewPoint(date, value, s.Kind))
}

// Len returns the number of points
func (s *Series) Len() int { return len(s.Points) }

// seriesWire is the serialized form of a Series
type seriesWire struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Data      []Point `json:"data"`
	Chart     string  `json:"type"`
	ValueKind string  `json:"valueType"`
}

// MarshalJSON renders the documented id/name/data/type/valueKind shape
// an empty series serializes with an empty data array, never null
func (s *Series) MarshalJSON() ([]byte, error) {
	data := s.Points
	if data == nil {
		data = []Point{}
	}
	return json.Marshal(seriesWire{
		ID:        s.ID,
		Name:      s.Name,
		Data:      data,
		Chart:     string(s.Chart),
		ValueKind: string(s.Kind),
	})
}
