package transform

import (
	"statsdash/internal/core/series"
)

// usageMetrics are the metrics emitted for access/usage event documents
var usageMetrics = []string{"views", "downloads", "visitors", "dataVolume"}

// usagePresence lists the usage metrics carrying a file-presence split
var usagePresence = []string{"views", "downloads"}

// usageKinds tags the downloaded volume as a byte-size metric
var usageKinds = map[string]series.ValueKind{"dataVolume": series.KindFilesize}

// UsageDelta transforms period-over-period usage event documents. Same
// two-pass pattern as RecordDelta with the view/download source fields
type UsageDelta struct {
	cfg   Config
	folds []fold
}

// NewUsageDelta constructs a usage delta transformer
func NewUsageDelta(cfg Config) *UsageDelta {
	return &UsageDelta{cfg: cfg, folds: foldsWith(cfg, deltaFolds)}
}

// Transform runs the two-pass algorithm over usage delta documents
func (t *UsageDelta) Transform(docs []Document) Output {
	acc := newAccumulator(usageMetrics, usagePresence, usageKinds, outputsOf(t.folds))
	if len(docs) == 0 {
		return acc.skeleton()
	}
	labels := buildLabels(docs, t.folds)

	for _, doc := range docs {
		date := dateOf(doc, "period_start")
		if date == "" {
			continue
		}

		views := object(doc, "views")
		downloads := object(doc, "downloads")

		acc.addGlobal(date, map[string]float64{
			"views":      netOf(views, "total_events"),
			"downloads":  netOf(downloads, "total_events"),
			"visitors":   leaf(doc, "visitors"),
			"dataVolume": netOf(downloads, "data_volume"),
		})

		acc.addPresence("views", date, netOf(views, "with_files"), netOf(views, "metadata_only"))
		acc.addPresence("downloads", date, netOf(downloads, "with_files"), netOf(downloads, "metadata_only"))

		subcounts := object(doc, "subcounts")
		if subcounts == nil {
			continue
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
				fam.set("views", date, id, itemNet(item, "views", "total_events"))
				fam.set("downloads", date, id, itemNet(item, "downloads", "total_events"))
				fam.set("visitors", date, id, leaf(item, "visitors"))
				fam.set("dataVolume", date, id, itemNet(item, "downloads", "data_volume"))
			}
		}
	}

	return acc.materialize(labels, chartSet{
		global:   series.ChartLine,
		presence: series.ChartLine,
		family:   series.ChartLine,
	})
}

// UsageSnapshot transforms cumulative usage totals dated by
// snapshot_date, reading total_views/total_downloads directly
type UsageSnapshot struct {
	cfg   Config
	folds []fold
}

// NewUsageSnapshot constructs a usage snapshot transformer
func NewUsageSnapshot(cfg Config) *UsageSnapshot {
	return &UsageSnapshot{cfg: cfg, folds: foldsWith(cfg, snapshotFolds)}
}

// Transform runs the two-pass algorithm over usage snapshot documents
func (t *UsageSnapshot) Transform(docs []Document) Output {
	acc := newAccumulator(usageMetrics, usagePresence, usageKinds, outputsOf(t.folds))
	if len(docs) == 0 {
		return acc.skeleton()
	}
	labels := buildLabels(docs, t.folds)

	for _, doc := range docs {
		date := dateOf(doc, "snapshot_date")
		if date == "" {
			continue
		}

		totalViews := object(doc, "total_views")
		totalDownloads := object(doc, "total_downloads")

		acc.addGlobal(date, map[string]float64{
			"views":      leaf(totalViews, "total_events"),
			"downloads":  leaf(totalDownloads, "total_events"),
			"visitors":   leaf(doc, "total_visitors"),
			"dataVolume": leaf(totalDownloads, "data_volume"),
		})

		acc.addPresence("views", date, leaf(totalViews, "with_files"), leaf(totalViews, "metadata_only"))
		acc.addPresence("downloads", date, leaf(totalDownloads, "with_files"), leaf(totalDownloads, "metadata_only"))

		subcounts := object(doc, "subcounts")
		if subcounts == nil {
			continue
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
				fam.set("views", date, id, itemTotal(item, "views", "total_events"))
				fam.set("downloads", date, id, itemTotal(item, "downloads", "total_events"))
				fam.set("visitors", date, id, leaf(item, "visitors"))
				fam.set("dataVolume", date, id, itemTotal(item, "downloads", "data_volume"))
			}
		}
	}

	return acc.materialize(labels, chartSet{
		global:   series.ChartBar,
		presence: series.ChartBar,
		family:   series.ChartLine,
	})
}
