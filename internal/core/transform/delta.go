package transform

import (
	"statsdash/internal/core/series"
)

// recordMetrics are the five metrics every record transformer emits
var recordMetrics = []string{"records", "parents", "uploaders", "fileCount", "dataVolume"}

// recordPresence lists the record metrics carrying a file-presence split
var recordPresence = []string{"records", "parents"}

// recordKinds tags dataVolume as a byte-size metric
var recordKinds = map[string]series.ValueKind{"dataVolume": series.KindFilesize}

// deltaFolds maps delta-document subcount families to output keys
// the two affiliation families deliberately fold into one output family,
// interleaving creator and contributor items into a single id space
var deltaFolds = []fold{
	{"resource_types", "resourceTypes"},
	{"access_statuses", "accessStatuses"},
	{"languages", "languages"},
	{"affiliations_creators", "affiliations"},
	{"affiliations_contributors", "affiliations"},
	{"funders", "funders"},
	{"subjects", "subjects"},
	{"publishers", "publishers"},
	{"periodicals", "periodicals"},
	{"rights", "rights"},
	{"file_types", "fileTypes"},
}

// RecordDelta transforms period-over-period record change documents
// dated by period_start, using net (added minus removed) arithmetic
type RecordDelta struct {
	cfg   Config
	folds []fold
}

// NewRecordDelta constructs a record delta transformer
func NewRecordDelta(cfg Config) *RecordDelta {
	return &RecordDelta{cfg: cfg, folds: foldsWith(cfg, deltaFolds)}
}

// Transform runs the two-pass accumulate/materialize algorithm over the
// ordered document sequence
func (t *RecordDelta) Transform(docs []Document) Output {
	acc := newAccumulator(recordMetrics, recordPresence, recordKinds, outputsOf(t.folds))
	if len(docs) == 0 {
		return acc.skeleton()
	}
	labels := buildLabels(docs, t.folds)

	for _, doc := range docs {
		date := dateOf(doc, "period_start")
		if date == "" {
			// skipped entirely, no partial effects
			continue
		}

		records := object(doc, "records")
		parents := object(doc, "parents")
		files := object(doc, "files")

		acc.addGlobal(date, map[string]float64{
			"records":    netOf(records, "metadata_only", "with_files"),
			"parents":    netOf(parents, "metadata_only", "with_files"),
			"uploaders":  leaf(doc, "uploaders"),
			"fileCount":  netOf(files, "file_count"),
			"dataVolume": netOf(files, "data_volume"),
		})

		acc.addPresence("records", date, netOf(records, "with_files"), netOf(records, "metadata_only"))
		acc.addPresence("parents", date, netOf(parents, "with_files"), netOf(parents, "metadata_only"))

		t.accumulateSubcounts(acc, doc, date)
	}

	return acc.materialize(labels, chartSet{
		global:   series.ChartLine,
		presence: series.ChartLine,
		family:   series.ChartLine,
	})
}

// accumulateSubcounts walks every fold's category items for one document
func (t *RecordDelta) accumulateSubcounts(acc *accumulator, doc Document, date string) {
	subcounts := object(doc, "subcounts")
	if subcounts == nil {
		return
	}
	for _, f := range t.folds {
		items, _ := subcounts[f.src].([]any)
		if len(items) == 0 {
			// an empty family contributes nothing for this date, not a zero
			continue
		}
		fam := acc.family(f.out)
		for _, raw := range items {
			item, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			id, _ := item["id"].(string)
			if id == "" {
				continue
			}
			fam.register(id, item["label"])
			fam.set("records", date, id, itemNet(item, "records", "metadata_only", "with_files"))
			fam.set("parents", date, id, itemNet(item, "parents", "metadata_only", "with_files"))
			fam.set("uploaders", date, id, leaf(item, "uploaders"))
			fam.set("fileCount", date, id, itemFileNet(item, "file_count"))
			fam.set("dataVolume", date, id, itemFileNet(item, "data_volume"))
		}
	}
}
