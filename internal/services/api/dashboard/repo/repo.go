// Package repo provides document access for the dashboard
package repo

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"statsdash/internal/core/transform"
	"statsdash/internal/modkit/repokit"
	perr "statsdash/internal/platform/errors"
)

// Source reads an ordered window of aggregation documents
// record kinds come from postgres, usage kinds from clickhouse
type Source interface {
	Documents(ctx context.Context, kind, community, start, end string) ([]transform.Document, error)
}

// Repo is the persistence surface for record aggregation documents
type Repo interface {
	Source
	Put(ctx context.Context, kind, community, date string, doc transform.Document) (string, error)
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) Documents(ctx context.Context, kind, community, start, end string) ([]transform.Document, error) {
	const sql = `
select doc
from stats_documents
where kind = $1
and ($2 = '' or community_id = $2::uuid)
and doc_date between $3::date and $4::date
order by doc_date asc, id asc
`
	rows, err := r.q.Query(ctx, sql, kind, community, start, end)
	if err != nil {
		return nil, perr.FromPostgresf(err, "query stats documents kind %q", kind)
	}
	defer rows.Close()
	var out []transform.Document
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, perr.FromPostgres(err, "scan stats document")
		}
		var doc transform.Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "decode stats document")
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

func (r *queries) Put(ctx context.Context, kind, community, date string, doc transform.Document) (string, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeJSON, "encode stats document")
	}
	id := uuid.NewString()
	const sql = `
insert into stats_documents (id, kind, community_id, doc_date, doc)
values ($1::uuid, $2, nullif($3, '')::uuid, $4::date, $5::jsonb)
on conflict (kind, community_id, doc_date) do update set doc = excluded.doc
`
	if _, err := r.q.Exec(ctx, sql, id, kind, community, date, raw); err != nil {
		return "", perr.FromPostgresf(err, "upsert stats document kind %q date %q", kind, date)
	}
	return id, nil
}
