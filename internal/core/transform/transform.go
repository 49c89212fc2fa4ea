// Package transform converts ordered sequences of aggregation documents
// into chart-ready series collections
//
// Two document shapes exist for every metric family: delta documents
// describe period-over-period change and need net arithmetic, snapshot
// documents describe cumulative totals and are read directly. Both
// produce an identical output schema. Each Transform call runs two
// passes: accumulate per-date working values and the de-duplicated
// category item list, then materialize everything into series via the
// builders in core/series. All working state is local to the call, so
// transformers are reusable and safe for concurrent independent calls
package transform

import (
	"statsdash/internal/core/series"
)

// Document is one aggregation document as decoded from JSON
type Document = map[string]any

// Kind identifies a concrete transformer
type Kind string

// Known transformer kinds
const (
	KindRecordDelta    Kind = "record_delta"
	KindRecordSnapshot Kind = "record_snapshot"
	KindUsageDelta     Kind = "usage_delta"
	KindUsageSnapshot  Kind = "usage_snapshot"
)

// Kinds lists every known transformer kind
func Kinds() []Kind {
	return []Kind{KindRecordDelta, KindRecordSnapshot, KindUsageDelta, KindUsageSnapshot}
}

// Valid reports whether k names a known transformer
func (k Kind) Valid() bool {
	switch k {
	case KindRecordDelta, KindRecordSnapshot, KindUsageDelta, KindUsageSnapshot:
		return true
	}
	return false
}

// Config carries the two read-only mappings the surrounding application
// resolves once before constructing a transformer. The core only reads
// keys from them; category families are also hard-coded per transformer,
// so an absent family here is not an error
type Config struct {
	// Families adds source-family to output-family folds on top of the
	// built-in table, eg custom subcounts registered by the application
	Families map[string]string

	// UISubcounts marks which output families a UI context exposes.
	// Read by the delivery layer, never by the transformers themselves
	UISubcounts map[string]bool
}

// Output is the transform result: output-category-name to metric-name
// to a list of series. Global metrics hold exactly one series; category
// families hold one per distinct id seen across all input documents
type Output map[string]map[string][]*series.Series

// Transformer is the transform contract. Transform is total: it always
// returns a structurally complete Output for any input, including an
// empty sequence, and absorbs per-document anomalies instead of failing
type Transformer interface {
	Transform(docs []Document) Output
}

// Top-level output keys shared by every transformer
const (
	KeyGlobal       = "global"
	KeyFilePresence = "filePresence"
)

// presenceBuckets are the fixed series names of the file-presence split
var presenceBuckets = []string{"withFiles", "metadataOnly"}

// fold declares a many-to-one mapping from a source subcount family to
// an output category family. Differently-named source families may fold
// into one output key, in which case their item ids share one id space
// and a colliding id merges into a single series
type fold struct{ src, out string }

// foldsWith appends config-declared folds to the built-in table,
// skipping sources the table already covers
func foldsWith(cfg Config, builtin []fold) []fold {
	out := append([]fold(nil), builtin...)
	known := make(map[string]bool, len(builtin))
	for _, f := range builtin {
		known[f.src] = true
	}
	for src, dst := range cfg.Families {
		if src == "" || dst == "" || known[src] {
			continue
		}
		out = append(out, fold{src: src, out: dst})
	}
	return out
}

// outputsOf returns the distinct output keys of a fold table in first
// appearance order
func outputsOf(folds []fold) []string {
	var keys []string
	seen := make(map[string]bool, len(folds))
	for _, f := range folds {
		if !seen[f.out] {
			seen[f.out] = true
			keys = append(keys, f.out)
		}
	}
	return keys
}

// dateOf extracts and truncates the date-bearing field of a document
// returns "" when the field is absent or not a string
func dateOf(doc Document, field string) string {
	s, _ := doc[field].(string)
	return series.TruncateDate(s)
}

// num coerces a decoded JSON value to float64, defaulting to zero
func num(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	}
	return 0
}

// object returns m[key] as a nested mapping, or nil
func object(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	sub, _ := m[key].(map[string]any)
	return sub
}

// leaf reads a numeric field off m, treating every missing level as zero
func leaf(m map[string]any, key string) float64 {
	if m == nil {
		return 0
	}
	return num(m[key])
}

// netOf computes (sum of added leaves) - (sum of removed leaves) on a
// delta group. Any missing nested field contributes zero
func netOf(group map[string]any, leaves ...string) float64 {
	added := object(group, "added")
	removed := object(group, "removed")
	var n float64
	for _, l := range leaves {
		n += leaf(added, l) - leaf(removed, l)
	}
	return n
}

// totalOf sums the given leaves of a snapshot group
func totalOf(group map[string]any, leaves ...string) float64 {
	var n float64
	for _, l := range leaves {
		n += leaf(group, l)
	}
	return n
}

// hasDelta reports whether m carries the added/removed delta shape
func hasDelta(m map[string]any) bool {
	if m == nil {
		return false
	}
	_, a := m["added"]
	_, r := m["removed"]
	return a || r
}

// itemNet resolves the net change for one subcount item. Ordered
// fallback chain: the primary shape nests added/removed under the group
// key, the secondary treats the item itself as the added/removed
// summary, anything else resolves to zero
func itemNet(item map[string]any, group string, leaves ...string) float64 {
	if g := object(item, group); hasDelta(g) {
		return netOf(g, leaves...)
	}
	if hasDelta(item) {
		return netOf(item, leaves...)
	}
	return 0
}

// itemFileNet is itemNet for the file summary leaves, covering the
// files.added versus added.file_count alternate shapes
func itemFileNet(item map[string]any, l string) float64 {
	if f := object(item, "files"); hasDelta(f) {
		return netOf(f, l)
	}
	if hasDelta(item) {
		return netOf(item, l)
	}
	return 0
}

// itemTotal resolves a snapshot total for one subcount item, preferring
// the group-nested shape and falling back to leaves on the item itself
func itemTotal(item map[string]any, group string, leaves ...string) float64 {
	if g := object(item, group); g != nil {
		return totalOf(g, leaves...)
	}
	return totalOf(item, leaves...)
}

// itemFileTotal reads a file summary leaf off a snapshot item,
// preferring the nested files object
func itemFileTotal(item map[string]any, l string) float64 {
	if f := object(item, "files"); f != nil {
		return leaf(f, l)
	}
	return leaf(item, l)
}

// buildLabels scans every document's subcount families once and records
// the first-seen label per distinct category id
func buildLabels(docs []Document, folds []fold) series.Labels {
	labels := series.Labels{}
	for _, doc := range docs {
		sub := object(doc, "subcounts")
		if sub == nil {
			continue
		}
		for _, f := range folds {
			items, _ := sub[f.src].([]any)
			for _, raw := range items {
				item, ok := raw.(map[string]any)
				if !ok {
					continue
				}
				id, _ := item["id"].(string)
				labels.Put(id, item["label"])
			}
		}
	}
	return labels
}
