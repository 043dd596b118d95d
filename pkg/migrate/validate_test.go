package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeMigrationFile(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestValidateDirAcceptsWellFormedMigrations(t *testing.T) {
	dir := t.TempDir()
	writeMigrationFile(t, dir, "20240105090000_create_stations.sql", "-- +goose Up\nCREATE TABLE t (id int);\n-- +goose Down\nDROP TABLE t;\n")

	if err := ValidateDir(dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateDirShipsWithValidMigrations(t *testing.T) {
	if err := ValidateDir("migrations"); err != nil {
		t.Fatalf("bundled migrations invalid: %v", err)
	}
}

func TestValidateDirCollectsAllFindings(t *testing.T) {
	dir := t.TempDir()
	writeMigrationFile(t, dir, "bad-name.sql", "-- +goose Up\n-- +goose Down\n")
	writeMigrationFile(t, dir, "20240105090000_missing_down.sql", "-- +goose Up\nSELECT 1;\n")

	err := ValidateDir(dir)
	if err == nil {
		t.Fatal("expected validation errors")
	}
	msg := err.Error()
	if !strings.Contains(msg, "invalid migration filename") {
		t.Fatalf("filename finding missing from %q", msg)
	}
	if !strings.Contains(msg, "missing \"-- +goose Down\"") {
		t.Fatalf("marker finding missing from %q", msg)
	}
}
