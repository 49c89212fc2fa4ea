package repo

import (
	"context"
	"encoding/json"

	"statsdash/internal/core/transform"
	perr "statsdash/internal/platform/errors"
	"statsdash/internal/platform/store"
)

// Usage reads usage aggregation documents from clickhouse
type Usage struct{ ch store.Clickhouse }

// NewUsage wires a clickhouse seam to the usage document reader
func NewUsage(ch store.Clickhouse) *Usage { return &Usage{ch: ch} }

// Documents returns the usage documents for a kind inside a date window
func (u *Usage) Documents(ctx context.Context, kind, community, start, end string) ([]transform.Document, error) {
	const sql = `
select doc
from usage_stats_documents
where kind = ?
and (? = '' or community_id = ?)
and doc_date >= ? and doc_date <= ?
order by doc_date asc
`
	rows, err := u.ch.Query(ctx, sql, kind, community, community, start, end)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeDB, "query usage documents kind %q", kind)
	}
	defer rows.Close()
	var out []transform.Document
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeDB, "scan usage document")
		}
		var doc transform.Document
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "decode usage document")
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}
