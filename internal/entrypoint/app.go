package entrypoint

import (
	"github.com/ztacole/BacaDong/internal/config"
	"github.com/ztacole/BacaDong/internal/covers"
	"github.com/ztacole/BacaDong/internal/database"
	"github.com/ztacole/BacaDong/internal/database/books"
	"github.com/ztacole/BacaDong/internal/database/categories"
	"github.com/ztacole/BacaDong/internal/database/members"
	"github.com/ztacole/BacaDong/internal/logging"
	"github.com/ztacole/BacaDong/internal/services"
)

// App holds the opened catalog: the shared pool and every store built on it.
type App struct {
	Provider   *database.Provider
	DB         *database.Database
	Books      *books.Repository
	Categories *categories.Repository
	Members    *members.Repository
	Catalog    *services.CatalogService

	// Covers is nil when no covers directory is configured.
	Covers *covers.Cache
}

// Open initializes logging, opens the catalog database and builds the stores.
// The server and the CLI commands share it.
func Open(cfg *config.Config) (*App, error) {
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	provider := database.NewProvider(cfg.Database)
	db, err := provider.Database()
	if err != nil {
		return nil, err
	}

	bookRepo := books.NewRepository(db.DB)
	categoryRepo := categories.NewRepository(db.DB)

	var coverCache *covers.Cache
	if cfg.Covers.Dir != "" {
		coverCache, err = covers.NewCache(cfg.Covers.Dir)
		if err != nil {
			logging.Warn().Err(err).Str("dir", cfg.Covers.Dir).Msg("Book covers disabled")
			coverCache = nil
		}
	}

	return &App{
		Provider:   provider,
		DB:         db,
		Books:      bookRepo,
		Categories: categoryRepo,
		Members:    members.NewRepository(db.DB),
		Catalog:    services.NewCatalogService(bookRepo, categoryRepo, cfg.Catalog.SectionSize, cfg.Catalog.DefaultSort),
		Covers:     coverCache,
	}, nil
}

// Close releases the connection pool.
func (a *App) Close() error {
	return a.Provider.Close()
}
