// Package database owns the catalog connection pool and schema.
//
// # Architecture
//
//	database/
//	├── database.go      # Dialector selection, pool sizing, migrations, member seeding
//	├── provider.go      # Lazily opened, process-wide handle
//	├── books/           # Catalog queries, view recording and ratings
//	├── categories/      # Category CRUD
//	└── members/         # Member lookup
//
// # Using Sub-packages
//
//	provider := database.NewProvider(cfg.Database)
//	defer provider.Close()
//
//	db, err := provider.Database()
//	booksRepo := books.NewRepository(db.DB)
//	categoriesRepo := categories.NewRepository(db.DB)
//
//	newest, err := booksRepo.Newest(ctx, 5)
//
// Every repository shares the single *gorm.DB held by the provider. None of
// them cache results: ratings and view counts are aggregated from
// book_history on every read.
package database
