package db

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"testing/fstest"

	"gorm.io/gorm"
)

func openTestSQLite(t *testing.T, name string) *gorm.DB {
	t.Helper()

	database, err := OpenSQLite(filepath.Join(t.TempDir(), name), nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return database
}

func loadRecordedMigrations(t *testing.T, database *gorm.DB) []string {
	t.Helper()

	names, err := RecordedMigrations(context.Background(), database)
	if err != nil {
		t.Fatalf("load schema_migrations: %v", err)
	}
	return names
}

func TestOpenSQLiteAppliesEmbeddedMigrations(t *testing.T) {
	database := openTestSQLite(t, "stackcheck-clean.db")

	expected := []string{"001_init.sql", "002_pattern_insights.sql", "003_daily_entry_source.sql"}
	if got := loadRecordedMigrations(t, database); !reflect.DeepEqual(got, expected) {
		t.Fatalf("expected migrations %v, got %v", expected, got)
	}

	for _, table := range []string{"daily_entries", "supplements", "supplement_ranges", "pattern_insights"} {
		if !database.Migrator().HasTable(table) {
			t.Fatalf("expected table %s to exist", table)
		}
	}
	if !database.Migrator().HasColumn("daily_entries", "source") {
		t.Fatal("expected daily_entries.source column")
	}
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	database := openTestSQLite(t, "stackcheck-idempotent.db")
	before := loadRecordedMigrations(t, database)

	applied, err := ApplyMigrations(context.Background(), database)
	if err != nil {
		t.Fatalf("second apply: %v", err)
	}
	if len(applied) != 0 {
		t.Fatalf("expected no pending migrations, got %v", applied)
	}
	if after := loadRecordedMigrations(t, database); !reflect.DeepEqual(before, after) {
		t.Fatalf("expected records unchanged, before=%v after=%v", before, after)
	}
}

func TestApplyMigrationSkipsExistingColumn(t *testing.T) {
	database := openTestSQLite(t, "stackcheck-column.db")

	exists, err := columnAlreadyAdded(database, "ALTER TABLE daily_entries ADD COLUMN source TEXT")
	if err != nil {
		t.Fatalf("inspect column: %v", err)
	}
	if !exists {
		t.Fatal("expected source column to be detected")
	}

	exists, err = columnAlreadyAdded(database, "ALTER TABLE daily_entries ADD COLUMN mood_note TEXT")
	if err != nil {
		t.Fatalf("inspect column: %v", err)
	}
	if exists {
		t.Fatal("expected mood_note column to be missing")
	}
}

func TestLoadSchemaMigrationsOrdersAndRejectsDuplicates(t *testing.T) {
	files := fstest.MapFS{
		"010_later.sql":  {Data: []byte("SELECT 1;")},
		"002_second.sql": {Data: []byte("SELECT 1;")},
		"readme.md":      {Data: []byte("ignored")},
	}
	migrations, err := loadSchemaMigrations(files)
	if err != nil {
		t.Fatalf("load migrations: %v", err)
	}
	if len(migrations) != 2 || migrations[0].Name != "002_second.sql" || migrations[1].Name != "010_later.sql" {
		t.Fatalf("unexpected order %#v", migrations)
	}

	files["02_dup.sql"] = &fstest.MapFile{Data: []byte("SELECT 1;")}
	if _, err := loadSchemaMigrations(files); err == nil {
		t.Fatal("expected duplicate version error")
	}
}

func TestSplitSQLStatements(t *testing.T) {
	statements := splitSQLStatements("CREATE TABLE a (id INTEGER);\n\n;  CREATE INDEX b ON a(id)  ;")
	expected := []string{"CREATE TABLE a (id INTEGER)", "CREATE INDEX b ON a(id)"}
	if !reflect.DeepEqual(statements, expected) {
		t.Fatalf("expected %v, got %v", expected, statements)
	}
}
