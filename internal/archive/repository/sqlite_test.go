package repository

import (
	"context"
	"path/filepath"
	"testing"

	"ifc-builder/internal/archive/models"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	db, err := OpenSQLite(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := New(db)
	if err := repo.Init(context.Background(), "../../../migrations/001_init_archive.sql"); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return repo
}

func TestInitSeedsAdmin(t *testing.T) {
	repo := newTestRepository(t)

	client, err := repo.GetByCredentials(context.Background(), "admin", "admin")
	if err != nil {
		t.Fatalf("GetByCredentials: %v", err)
	}
	if client.Login != "admin" {
		t.Errorf("login = %q, want admin", client.Login)
	}

	// Повторный Init не должен падать и не должен дублировать admin.
	if err := repo.Init(context.Background(), "../../../migrations/001_init_archive.sql"); err != nil {
		t.Fatalf("second Init: %v", err)
	}
}

func TestGetByCredentialsRejectsWrongPassword(t *testing.T) {
	repo := newTestRepository(t)

	if _, err := repo.GetByCredentials(context.Background(), "admin", "wrong"); err == nil {
		t.Fatal("expected error for wrong password")
	}
}

func TestBuildLog(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	admin, err := repo.GetByCredentials(ctx, "admin", "admin")
	if err != nil {
		t.Fatalf("GetByCredentials: %v", err)
	}

	records := []*models.BuildRecord{
		{ID: "b1", ClientID: admin.ID, Project: "Tower", FileName: "Tower.ifc", Valid: true, Violations: 0, Walls: 4},
		{ID: "b2", ClientID: admin.ID, Project: "Tower", FileName: "Tower.ifc", Valid: false, Violations: 2, Walls: 1},
	}
	for _, rec := range records {
		if err := repo.InsertBuild(ctx, rec); err != nil {
			t.Fatalf("InsertBuild(%s): %v", rec.ID, err)
		}
	}

	builds, err := repo.ListBuilds(ctx, admin.ID)
	if err != nil {
		t.Fatalf("ListBuilds: %v", err)
	}
	if len(builds) != 2 {
		t.Fatalf("builds = %d, want 2", len(builds))
	}

	got, err := repo.GetBuild(ctx, admin.ID, "b2")
	if err != nil {
		t.Fatalf("GetBuild: %v", err)
	}
	if got.Valid || got.Violations != 2 || got.Walls != 1 {
		t.Errorf("record = %+v", got)
	}

	if _, err := repo.GetBuild(ctx, admin.ID, "missing"); err == nil {
		t.Error("expected error for unknown build")
	}
	if _, err := repo.GetBuild(ctx, "other-client", "b1"); err == nil {
		t.Error("expected error for foreign client")
	}
}

func TestListBuildsEmpty(t *testing.T) {
	repo := newTestRepository(t)

	builds, err := repo.ListBuilds(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("ListBuilds: %v", err)
	}
	if len(builds) != 0 {
		t.Errorf("builds = %d, want 0", len(builds))
	}
}
