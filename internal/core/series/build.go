package series

// DatedValues is one accumulated per-date working object: a calendar
// date plus the values recorded under it, keyed by series name or
// category id. It only exists between the accumulate and materialize
// passes of a transform and never appears in output
type DatedValues struct {
	Date   string
	Values map[string]float64
}

// Set records a value under key, allocating the map on first use
func (d *DatedValues) Set(key string, value float64) {
	if d.Values == nil {
		d.Values = make(map[string]float64)
	}
	d.Values[key] = value
}

// Item is one category item identity collected during accumulation:
// the raw id and whatever label the source document carried
type Item struct {
	ID    string
	Label any
}

// FromFixedNames builds one series per name from the accumulated
// per-date objects. A date contributes a point to a series only when
// that name's key is present; a name that never appears still yields
// an empty series
func FromFixedNames(names []string, perDate []DatedValues, chart ChartType, kind ValueKind) []*Series {
	out := make([]*Series, 0, len(names))
	for _, name := range names {
		s := New(name, name, chart, kind)
		for _, d := range perDate {
			if v, ok := d.Values[name]; ok {
				s.Add(d.Date, v)
			}
		}
		out = append(out, s)
	}
	return out
}

// FromCategoryItems builds one series per item, named via the label
// map and falling back to the raw id. Dates where an id has no key
// contribute no point: series stay sparse, never zero-filled
func FromCategoryItems(items []Item, perDate []DatedValues, chart ChartType, kind ValueKind, labels map[string]string) []*Series {
	out := make([]*Series, 0, len(items))
	for _, it := range items {
		name := labels[it.ID]
		if name == "" {
			name = it.ID
		}
		s := New(it.ID, name, chart, kind)
		for _, d := range perDate {
			if v, ok := d.Values[it.ID]; ok {
				s.Add(d.Date, v)
			}
		}
		out = append(out, s)
	}
	return out
}
