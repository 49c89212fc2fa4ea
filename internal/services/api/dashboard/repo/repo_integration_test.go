//go:build integration_pg
// +build integration_pg

package repo_test

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"statsdash/internal/platform/store"
	"statsdash/internal/services/api/dashboard/repo"
)

// startPostgres launches a disposable Postgres and returns DSN + stop func
func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mp.Port())
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	return dsn, stop
}

func TestRepo_PutAndDocuments_Integration(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	st, err := store.Open(ctx, store.Config{
		PG: store.PGConfig{Enabled: true, URL: dsn, MaxConns: 2},
	}, store.WithLogger(zerolog.New(io.Discard)))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(context.Background()) })

	if _, err := st.PG.Exec(ctx, `
		create table stats_documents (
			id           uuid primary key,
			kind         text not null,
			community_id uuid,
			doc_date     date not null,
			doc          jsonb not null,
			unique nulls not distinct (kind, community_id, doc_date)
		)
	`); err != nil {
		t.Fatalf("create table: %v", err)
	}

	r := repo.NewPG().Bind(st.PG)
	community := uuid.NewString()

	doc := map[string]any{
		"period_start": "2025-08-01T00:00:00",
		"records": map[string]any{
			"added":   map[string]any{"metadata_only": 2.0, "with_files": 1.0},
			"removed": map[string]any{"metadata_only": 0.0, "with_files": 0.0},
		},
	}

	id, err := r.Put(ctx, "record_delta", community, "2025-08-01", doc)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if id == "" {
		t.Fatalf("Put returned empty id")
	}

	// upsert on the same (kind, community, date) replaces the document
	doc["records"].(map[string]any)["added"].(map[string]any)["metadata_only"] = 5.0
	if _, err := r.Put(ctx, "record_delta", community, "2025-08-01", doc); err != nil {
		t.Fatalf("Put upsert: %v", err)
	}

	got, err := r.Documents(ctx, "record_delta", community, "2025-08-01", "2025-08-31")
	if err != nil {
		t.Fatalf("Documents: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Documents len = %d, want 1", len(got))
	}
	records := got[0]["records"].(map[string]any)
	added := records["added"].(map[string]any)
	if added["metadata_only"].(float64) != 5 {
		t.Fatalf("upsert did not replace document: %v", added)
	}

	// window excluding the date yields nothing
	none, err := r.Documents(ctx, "record_delta", community, "2025-09-01", "2025-09-30")
	if err != nil {
		t.Fatalf("Documents out of window: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected empty window, got %d", len(none))
	}

	// other communities are invisible
	other, err := r.Documents(ctx, "record_delta", uuid.NewString(), "2025-08-01", "2025-08-31")
	if err != nil {
		t.Fatalf("Documents other community: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected no documents for other community, got %d", len(other))
	}
}
