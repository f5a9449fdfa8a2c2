package gormrepo

import (
	"io/fs"
	"testing"
	"testing/fstest"
)

func TestMigrationFilesSortedAndFiltered(t *testing.T) {
	fsys := fstest.MapFS{
		"0002_second.sql": {Data: []byte("SELECT 2;")},
		"0001_first.sql":  {Data: []byte("SELECT 1;")},
		"README.md":       {Data: []byte("notes")},
		"nested/0003.sql": {Data: []byte("SELECT 3;")},
	}
	got, err := migrationFiles(fsys)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0] != "0001_first.sql" || got[1] != "0002_second.sql" {
		t.Fatalf("unexpected files: %v", got)
	}
}

func TestEmbeddedMigrationsPresent(t *testing.T) {
	sub, err := fs.Sub(embeddedMigrations, "migrations")
	if err != nil {
		t.Fatalf("sub: %v", err)
	}
	got, err := migrationFiles(sub)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) == 0 || got[0] != "0001_journal_entries.sql" {
		t.Fatalf("unexpected embedded migrations: %v", got)
	}
}
