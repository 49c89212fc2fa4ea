package transform

import (
	"statsdash/internal/core/series"
)

// chartSet bundles the chart types a transformer materializes with
// delta transformers render everything as lines, snapshot transformers
// render global and file-presence series as bars
type chartSet struct {
	global   series.ChartType
	presence series.ChartType
	family   series.ChartType
}

// accumulator is the working arena of one Transform call. It holds the
// per-date value objects and per-family de-duplicated item lists built
// during pass one, and is discarded after materialize. It never escapes
// the Transform call that allocated it
type accumulator struct {
	metrics    []string                       // metric names in output order
	presenceOf []string                       // metrics carrying a file-presence split
	kinds      map[string]series.ValueKind    // metric -> value kind
	famKeys    []string                       // output family keys in fold order
	global     []series.DatedValues           // one entry per accepted document
	presence   map[string][]series.DatedValues
	families   map[string]*familyAcc
}

// familyAcc accumulates one output category family
type familyAcc struct {
	items   []series.Item
	seen    map[string]bool
	perDate map[string][]series.DatedValues // metric -> per-date working objects
	index   map[string]map[string]int       // metric -> date -> slice position
}

func newAccumulator(metrics, presenceOf []string, kinds map[string]series.ValueKind, famKeys []string) *accumulator {
	a := &accumulator{
		metrics:    metrics,
		presenceOf: presenceOf,
		kinds:      kinds,
		famKeys:    famKeys,
		presence:   make(map[string][]series.DatedValues, len(presenceOf)),
		families:   make(map[string]*familyAcc, len(famKeys)),
	}
	for _, key := range famKeys {
		a.families[key] = &familyAcc{
			seen:    make(map[string]bool),
			perDate: make(map[string][]series.DatedValues),
			index:   make(map[string]map[string]int),
		}
	}
	return a
}

// kindOf returns the value kind for a metric, defaulting to number
func (a *accumulator) kindOf(metric string) series.ValueKind {
	if k, ok := a.kinds[metric]; ok {
		return k
	}
	return series.KindNumber
}

// addGlobal records one dated set of global metric values
func (a *accumulator) addGlobal(date string, values map[string]float64) {
	a.global = append(a.global, series.DatedValues{Date: date, Values: values})
}

// addPresence records the file-presence split of one metric on one date
func (a *accumulator) addPresence(metric, date string, withFiles, metadataOnly float64) {
	d := series.DatedValues{Date: date}
	d.Set("withFiles", withFiles)
	d.Set("metadataOnly", metadataOnly)
	a.presence[metric] = append(a.presence[metric], d)
}

// family returns the accumulator for an output family key
func (a *accumulator) family(key string) *familyAcc { return a.families[key] }

// register adds an item to the family's de-duplicated list
// first occurrence wins, matched by id
func (f *familyAcc) register(id string, label any) {
	if id == "" || f.seen[id] {
		return
	}
	f.seen[id] = true
	f.items = append(f.items, series.Item{ID: id, Label: label})
}

// set finds or creates the per-date working object for metric/date and
// records the item's value under its id. A later write for the same
// id on the same date overwrites the earlier one, which is how folded
// source families merge colliding ids
func (f *familyAcc) set(metric, date, id string, v float64) {
	idx, ok := f.index[metric]
	if !ok {
		idx = make(map[string]int)
		f.index[metric] = idx
	}
	pos, ok := idx[date]
	if !ok {
		pos = len(f.perDate[metric])
		f.perDate[metric] = append(f.perDate[metric], series.DatedValues{Date: date})
		idx[date] = pos
	}
	f.perDate[metric][pos].Set(id, v)
}

// skeleton returns the structurally complete but empty output: every
// top-level key present, every metric list empty
func (a *accumulator) skeleton() Output {
	out := make(Output, len(a.famKeys)+2)
	global := make(map[string][]*series.Series, len(a.metrics))
	for _, m := range a.metrics {
		global[m] = []*series.Series{}
	}
	out[KeyGlobal] = global

	presence := make(map[string][]*series.Series, len(a.presenceOf))
	for _, m := range a.presenceOf {
		presence[m] = []*series.Series{}
	}
	out[KeyFilePresence] = presence

	for _, key := range a.famKeys {
		fam := make(map[string][]*series.Series, len(a.metrics))
		for _, m := range a.metrics {
			fam[m] = []*series.Series{}
		}
		out[key] = fam
	}
	return out
}

// materialize converts the accumulated working state into the final
// output mapping. The working maps and item lists do not survive it
func (a *accumulator) materialize(labels series.Labels, charts chartSet) Output {
	out := make(Output, len(a.famKeys)+2)

	global := make(map[string][]*series.Series, len(a.metrics))
	for _, m := range a.metrics {
		g := series.New(series.GlobalID, "Global", charts.global, a.kindOf(m))
		for _, d := range a.global {
			if v, ok := d.Values[m]; ok {
				g.Add(d.Date, v)
			}
		}
		global[m] = []*series.Series{g}
	}
	out[KeyGlobal] = global

	presence := make(map[string][]*series.Series, len(a.presenceOf))
	for _, m := range a.presenceOf {
		presence[m] = series.FromFixedNames(presenceBuckets, a.presence[m], charts.presence, series.KindNumber)
	}
	out[KeyFilePresence] = presence

	for _, key := range a.famKeys {
		f := a.families[key]
		fam := make(map[string][]*series.Series, len(a.metrics))
		for _, m := range a.metrics {
			fam[m] = series.FromCategoryItems(f.items, f.perDate[m], charts.family, a.kindOf(m), labels)
		}
		out[key] = fam
	}
	return out
}
