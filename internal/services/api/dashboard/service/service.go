// Package service contains dashboard workflows
package service

import (
	"context"
	"strings"

	"statsdash/internal/core/transform"
	"statsdash/internal/modkit/repokit"
	perr "statsdash/internal/platform/errors"
	"statsdash/internal/platform/retry"
	"statsdash/internal/platform/store"
	"statsdash/internal/services/api/dashboard/domain"
	"statsdash/internal/services/api/dashboard/repo"
)

// Service defines the dashboard service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the dashboard service
type Svc struct {
	Records repo.Repo
	Usage   repo.Source

	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	cfg    transform.Config
	policy retry.Policy
}

// New constructs a dashboard service
// usage may be nil when no clickhouse backend is configured
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], usage repo.Source, cfg transform.Config) *Svc {
	if db == nil {
		panic("dashboard.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("dashboard.Service requires a non nil Repo binder")
	}
	return &Svc{
		Records: binder.Bind(db),
		Usage:   usage,
		binder:  binder,
		db:      repokit.WithBeginHooks(db, communityHook),
		cfg:     cfg,
		policy:  retry.DefaultPolicy("dashboard.documents"),
	}
}

// Series fetches the documents for the requested window, runs the
// matching transformer and prunes the output to the requested families
func (s *Svc) Series(ctx context.Context, in domain.SeriesInput) (transform.Output, error) {
	kind := transform.Kind(in.Kind)
	tr, err := transform.New(kind, s.cfg)
	if err != nil {
		return nil, err
	}

	src, err := s.sourceFor(kind)
	if err != nil {
		return nil, err
	}

	if in.Community != "" {
		ctx = store.WithCommunity(ctx, in.Community)
	}
	docs, err := retry.Value(ctx, s.policy, func(ctx context.Context) ([]transform.Document, error) {
		return src.Documents(ctx, in.Kind, in.Community, in.Range.Start, in.Range.End)
	})
	if err != nil {
		return nil, perr.WithOp(err, "dashboard.series")
	}

	out := tr.Transform(docs)
	return prune(out, in.Families, s.cfg.UISubcounts), nil
}

// communityHook pins the community id on the transaction for row level policies
func communityHook(ctx context.Context, q repokit.Queryer) error {
	id, ok := store.CommunityID(ctx)
	if !ok || id == "" {
		return nil
	}
	_, err := q.Exec(ctx, "select set_config('app.community_id', $1, true)", id)
	return err
}

// PutDocument stores one record aggregation document inside a
// transaction scoped to the owning community
func (s *Svc) PutDocument(ctx context.Context, in domain.PutDocumentInput) (domain.PutDocumentResponse, error) {
	var id string
	err := store.RunInCommunity(ctx, s.db, in.Community, func(ctx context.Context, q store.RowQuerier) error {
		var err error
		id, err = s.binder.Bind(q).Put(ctx, in.Kind, in.Community, in.Date, in.Doc)
		return err
	})
	if err != nil {
		return domain.PutDocumentResponse{}, perr.WithOp(err, "dashboard.put_document")
	}
	return domain.PutDocumentResponse{ID: id}, nil
}

// Kinds lists the transformer kinds the service can run
func (s *Svc) Kinds(context.Context) domain.KindsResponse {
	ks := transform.Kinds()
	out := make([]string, 0, len(ks))
	for _, k := range ks {
		out = append(out, string(k))
	}
	return domain.KindsResponse{Kinds: out}
}

// sourceFor routes record kinds to postgres and usage kinds to clickhouse
func (s *Svc) sourceFor(kind transform.Kind) (repo.Source, error) {
	if strings.HasPrefix(string(kind), "usage_") {
		if s.Usage == nil {
			return nil, perr.Unavailablef("usage document store not configured")
		}
		return s.Usage, nil
	}
	return s.Records, nil
}

// prune drops category families the caller did not ask for. Global and
// file presence always survive. An explicit families list wins over the
// configured UI subcounts; with neither, everything passes through
func prune(out transform.Output, families []string, ui map[string]bool) transform.Output {
	keep := make(map[string]bool, len(families))
	switch {
	case len(families) > 0:
		for _, f := range families {
			keep[f] = true
		}
	case len(ui) > 0:
		for f, on := range ui {
			if on {
				keep[f] = true
			}
		}
	default:
		return out
	}

	pruned := make(transform.Output, len(out))
	for key, metrics := range out {
		if key == transform.KeyGlobal || key == transform.KeyFilePresence || keep[key] {
			pruned[key] = metrics
		}
	}
	return pruned
}
