package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ztacole/BacaDong/internal/logging"
)

func TestGenerate(t *testing.T) {
	logging.Init(logging.Config{Level: "disabled"})
	dbPath := filepath.Join(t.TempDir(), "demo", "demo.db")

	first, err := generate(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if first.Books == 0 || first.Categories == 0 {
		t.Fatalf("expected seeded books and categories, got %+v", first)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("database file missing: %v", err)
	}

	second, err := generate(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("second generate failed: %v", err)
	}
	if second.Skipped || second.Books != first.Books {
		t.Errorf("expected a fresh seed on rerun, got %+v", second)
	}
}
