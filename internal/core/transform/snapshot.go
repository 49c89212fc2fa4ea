package transform

import (
	"statsdash/internal/core/series"
)

// snapshotFolds maps snapshot-document subcount families to output keys
// snapshot documents name the affiliation families in the singular; both
// fold into the same affiliations output family as the delta shape
var snapshotFolds = []fold{
	{"resource_types", "resourceTypes"},
	{"access_statuses", "accessStatuses"},
	{"languages", "languages"},
	{"affiliations_creator", "affiliations"},
	{"affiliations_contributor", "affiliations"},
	{"funders", "funders"},
	{"subjects", "subjects"},
	{"publishers", "publishers"},
	{"periodicals", "periodicals"},
	{"rights", "rights"},
	{"file_types", "fileTypes"},
}

// RecordSnapshot transforms cumulative-total documents dated by
// snapshot_date, reading totals directly instead of netting deltas.
// Global and file-presence series render as bars
type RecordSnapshot struct {
	cfg   Config
	folds []fold
}

// NewRecordSnapshot constructs a record snapshot transformer
func NewRecordSnapshot(cfg Config) *RecordSnapshot {
	return &RecordSnapshot{cfg: cfg, folds: foldsWith(cfg, snapshotFolds)}
}

// Transform runs the two-pass accumulate/materialize algorithm over the
// ordered document sequence
func (t *RecordSnapshot) Transform(docs []Document) Output {
	acc := newAccumulator(recordMetrics, recordPresence, recordKinds, outputsOf(t.folds))
	if len(docs) == 0 {
		return acc.skeleton()
	}
	labels := buildLabels(docs, t.folds)

	for _, doc := range docs {
		date := dateOf(doc, "snapshot_date")
		if date == "" {
			continue
		}

		totalRecords := object(doc, "total_records")
		totalParents := object(doc, "total_parents")
		totalFiles := object(doc, "total_files")

		acc.addGlobal(date, map[string]float64{
			"records":    totalOf(totalRecords, "metadata_only", "with_files"),
			"parents":    totalOf(totalParents, "metadata_only", "with_files"),
			"uploaders":  leaf(doc, "total_uploaders"),
			"fileCount":  leaf(totalFiles, "file_count"),
			"dataVolume": leaf(totalFiles, "data_volume"),
		})

		acc.addPresence("records", date, leaf(totalRecords, "with_files"), leaf(totalRecords, "metadata_only"))
		acc.addPresence("parents", date, leaf(totalParents, "with_files"), leaf(totalParents, "metadata_only"))

		t.accumulateSubcounts(acc, doc, date)
	}

	return acc.materialize(labels, chartSet{
		global:   series.ChartBar,
		presence: series.ChartBar,
		family:   series.ChartLine,
	})
}

// accumulateSubcounts walks every fold's category items for one document
func (t *RecordSnapshot) accumulateSubcounts(acc *accumulator, doc Document, date string) {
	subcounts := object(doc, "subcounts")
	if subcounts == nil {
		return
	}
	for _, f := range t.folds {
		items, _ := subcounts[f.src].([]any)
		if len(items) == 0 {
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
			fam.set("records", date, id, itemTotal(item, "records", "metadata_only", "with_files"))
			fam.set("parents", date, id, itemTotal(item, "parents", "metadata_only", "with_files"))
			fam.set("uploaders", date, id, leaf(item, "uploaders"))
			fam.set("fileCount", date, id, itemFileTotal(item, "file_count"))
			fam.set("dataVolume", date, id, itemFileTotal(item, "data_volume"))
		}
	}
}
