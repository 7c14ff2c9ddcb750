package repositories

import (
	"brevet-times-service/internal/domain"
	"brevet-times-service/internal/platform/db"
	"brevet-times-service/internal/ports"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := InitSchema(context.Background(), conn); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	// Running twice must be harmless.
	if err := InitSchema(context.Background(), conn); err != nil {
		t.Fatalf("init schema again: %v", err)
	}

	return conn
}

func testRepositories(t *testing.T) map[string]ports.ControlRepository {
	return map[string]ports.ControlRepository{
		"sqlite": NewSqliteControlRepository(openTestDB(t)),
		"memory": NewMemoryControlRepository(),
	}
}

func TestControlRepositoryReplaceAndList(t *testing.T) {
	ctx := context.Background()

	for name, repo := range testRepositories(t) {
		t.Run(name, func(t *testing.T) {
			first := []domain.Control{
				{Index: 2, Miles: "62.1", Km: "100", OpenTime: "2023-06-01T08:56:00Z", CloseTime: "2023-06-01T12:40:00Z", BrevetID: "a"},
				{Index: 1, Miles: "0", Km: "0", OpenTime: "2023-06-01T06:00:00Z", CloseTime: "2023-06-01T07:00:00Z", BrevetID: "a"},
			}
			if err := repo.ReplaceControls(ctx, first); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got, err := repo.ListControls(ctx)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != 2 {
				t.Fatalf("expected 2 controls, got %d", len(got))
			}
			if got[0].Index != 1 || got[1].Index != 2 {
				t.Fatalf("controls not ordered by index: %+v", got)
			}
			if got[1] != first[0] {
				t.Errorf("round trip = %+v, want %+v", got[1], first[0])
			}

			second := []domain.Control{
				{Index: 1, Miles: "124.3", Km: "200", OpenTime: "x", CloseTime: "y", BrevetID: "b"},
			}
			if err := repo.ReplaceControls(ctx, second); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got, err = repo.ListControls(ctx)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != 1 || got[0].BrevetID != "b" {
				t.Fatalf("replace did not discard previous rows: %+v", got)
			}

			if err := repo.ReplaceControls(ctx, nil); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got, err = repo.ListControls(ctx)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != 0 {
				t.Fatalf("expected empty table, got %d rows", len(got))
			}
		})
	}
}

func TestSqliteReplaceControlsRollsBack(t *testing.T) {
	ctx := context.Background()
	repo := NewSqliteControlRepository(openTestDB(t))

	if err := repo.ReplaceControls(ctx, []domain.Control{{Index: 1, Km: "0"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dup := []domain.Control{{Index: 3, Km: "50"}, {Index: 3, Km: "60"}}
	if err := repo.ReplaceControls(ctx, dup); err == nil {
		t.Fatal("expected duplicate index to fail")
	}

	got, err := repo.ListControls(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Index != 1 {
		t.Fatalf("failed replace changed stored rows: %+v", got)
	}
}

func TestSqliteControlRepositoryNilDB(t *testing.T) {
	repo := NewSqliteControlRepository(nil)
	if _, err := repo.ListControls(context.Background()); err == nil {
		t.Fatal("expected error for nil DB")
	}
}

func TestSeedFromJSON(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryControlRepository()

	path := filepath.Join(t.TempDir(), "controls.json")
	body := `[
		{"index": 1, "miles": "0", "km": "0", "open_time": "2023-06-01T06:00:00Z", "close_time": "2023-06-01T07:00:00Z"},
		{"index": 2, "miles": "124.3", "km": " 200 ", "open_time": "2023-06-01T11:53:00Z", "close_time": "2023-06-01T19:30:00Z"}
	]`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	if err := SeedFromJSON(ctx, repo, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := repo.ListControls(ctx)
	if len(got) != 2 {
		t.Fatalf("expected 2 seeded controls, got %d", len(got))
	}
	if got[1].Km != "200" {
		t.Errorf("km = %q, want trimmed 200", got[1].Km)
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte(`[{"index": 0, "km": "10"}]`), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	if err := SeedFromJSON(ctx, repo, bad); err == nil {
		t.Fatal("expected invalid index to fail")
	}
}
