// Command generate_demo creates a demo catalog database with sample books.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ztacole/BacaDong/internal/config"
	"github.com/ztacole/BacaDong/internal/database"
	"github.com/ztacole/BacaDong/internal/demo"
	"github.com/ztacole/BacaDong/internal/logging"
)

const defaultDemoDatabasePath = "./demo/demo.db"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	logging.Init(logging.Config{Level: "info", Format: "console"})
	logging.Info().Str("path", *dbPath).Msg("Generating demo database")

	result, err := generate(context.Background(), *dbPath)
	if err != nil {
		logging.Fatal().Err(err).Str("path", *dbPath).Msg("Demo database generation failed")
	}

	logging.Info().
		Int("categories", result.Categories).
		Int("books", result.Books).
		Int("chapters", result.Chapters).
		Int("views", result.Views).
		Msg("Demo database generated")
}

// generate replaces the database at dbPath with a freshly seeded one.
func generate(ctx context.Context, dbPath string) (demo.SeedResult, error) {
	if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
		return demo.SeedResult{}, fmt.Errorf("remove existing demo database: %w", err)
	}

	db, err := database.NewDatabase(config.Database{
		Driver:       config.DriverSQLite,
		DSN:          dbPath,
		MaxOpenConns: 1,
		SlowQuery:    time.Second,
	})
	if err != nil {
		return demo.SeedResult{}, fmt.Errorf("create database: %w", err)
	}
	defer db.Close()

	result, err := demo.Seed(ctx, db.DB)
	if err != nil {
		return result, fmt.Errorf("seed demo database: %w", err)
	}
	return result, nil
}
