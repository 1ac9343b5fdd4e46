package sqlite

import (
	"testing"
	"testing/fstest"

	"github.com/Abdel00zz/Reflexe4Arabic/assets"
)

func TestMigrateIsIdempotent(t *testing.T) {
	migrations, err := assets.Migrations()
	if err != nil {
		t.Fatal(err)
	}
	db, err := OpenMigrated(Memory, migrations)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if err := Migrate(db, migrations); err != nil {
		t.Fatalf("second run: %v", err)
	}
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM _migrations`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("recorded %d migrations, want 2", n)
	}
	for _, table := range []string{"players", "activity_results", "daily_results"} {
		if _, err := db.Exec(`SELECT COUNT(*) FROM ` + table); err != nil {
			t.Fatalf("table %s: %v", table, err)
		}
	}
}

func TestMigrateRollsBackBrokenFile(t *testing.T) {
	db, err := Open(Memory)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	fsys := fstest.MapFS{
		"001_ok.sql":     {Data: []byte(`CREATE TABLE a (x INTEGER);`)},
		"002_broken.sql": {Data: []byte(`CREATE TABLE b (;`)},
	}
	if err := Migrate(db, fsys); err == nil {
		t.Fatal("expected an error for invalid SQL")
	}
	var n int
	db.QueryRow(`SELECT COUNT(*) FROM _migrations WHERE name='002_broken.sql'`).Scan(&n)
	if n != 0 {
		t.Fatal("broken migration was recorded")
	}
}
