package database

import (
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestOpenAndMigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "boggle.db")
	db, err := OpenAndMigrate(path)
	if err != nil {
		t.Fatalf("OpenAndMigrate: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
	var n int
	if err := db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 recorded migrations, got %d", n)
	}
	for _, table := range []string{"users", "games", "daily_results"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		if err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}
}

func TestMigrateRollsBackBrokenFile(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "broken.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	fsys := fstest.MapFS{
		"m/001_ok.sql":  {Data: []byte(`CREATE TABLE ok (id INTEGER);`)},
		"m/002_bad.sql": {Data: []byte(`CREATE TABLE nope (`)},
	}
	if err := migrateFS(db, fsys, "m"); err == nil {
		t.Fatal("expected error from broken migration")
	}
	var n int
	_ = db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n)
	if n != 1 {
		t.Fatalf("expected only the good migration recorded, got %d", n)
	}
}
