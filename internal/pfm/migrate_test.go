package pfm

import (
	"testing"
	"testing/fstest"
)

// TestSchemaVersionMatchesMigrations keeps SchemaVersion in step with the
// embedded migration files.
func TestSchemaVersionMatchesMigrations(t *testing.T) {
	latest, err := latestMigrationVersion(migrationsFS, "migrations")
	if err != nil {
		t.Fatalf("latestMigrationVersion: %v", err)
	}
	if latest != SchemaVersion {
		t.Fatalf("SchemaVersion = %d, latest migration = %d", SchemaVersion, latest)
	}
}

func TestLatestMigrationVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"m/000001_init.up.sql":    &fstest.MapFile{Data: []byte("CREATE TABLE t1 (id INTEGER PRIMARY KEY);")},
		"m/000001_init.down.sql":  &fstest.MapFile{Data: []byte("DROP TABLE IF EXISTS t1;")},
		"m/000007_more.up.sql":    &fstest.MapFile{Data: []byte("CREATE TABLE t2 (id INTEGER PRIMARY KEY);")},
		"m/000007_more.down.sql":  &fstest.MapFile{Data: []byte("DROP TABLE IF EXISTS t2;")},
		"m/notes.txt":             &fstest.MapFile{Data: []byte("ignored")},
		"empty/000003_x.down.sql": &fstest.MapFile{Data: []byte("")},
	}

	got, err := latestMigrationVersion(fsys, "m")
	if err != nil {
		t.Fatalf("latestMigrationVersion: %v", err)
	}
	if got != 7 {
		t.Errorf("latest = %d, want 7", got)
	}

	if _, err := latestMigrationVersion(fsys, "empty"); err == nil {
		t.Error("expected error for directory without up migrations")
	}
}

func TestCreateRecordsSchemaVersion(t *testing.T) {
	s, _ := newTestStore(t, 1, 1)

	var version int
	var dirty bool
	if err := s.db.QueryRow(`SELECT version, dirty FROM schema_migrations`).Scan(&version, &dirty); err != nil {
		t.Fatalf("query schema_migrations: %v", err)
	}
	if version != SchemaVersion || dirty {
		t.Errorf("schema = (%d, dirty=%v), want (%d, false)", version, dirty, SchemaVersion)
	}
}
