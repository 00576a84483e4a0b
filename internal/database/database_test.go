package database

import (
	"io/fs"
	"strings"
	"testing"
)

func TestMigrations(t *testing.T) {
	migrations, err := Migrations()
	if err != nil {
		t.Fatalf("Migrations() error = %v", err)
	}

	files, err := fs.Glob(migrations, "*.sql")
	if err != nil {
		t.Fatalf("Glob() error = %v", err)
	}
	if len(files) == 0 {
		t.Fatal("no migrations embedded")
	}

	for _, name := range files {
		data, err := fs.ReadFile(migrations, name)
		if err != nil {
			t.Fatalf("ReadFile(%s) error = %v", name, err)
		}
		if !strings.Contains(string(data), "-- +goose Up") {
			t.Errorf("%s has no goose Up section", name)
		}
		if !strings.Contains(string(data), "-- +goose Down") {
			t.Errorf("%s has no goose Down section", name)
		}
	}
}
