package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/ztacole/BacaDong/internal/covers"
	"github.com/ztacole/BacaDong/internal/database"
	"github.com/ztacole/BacaDong/internal/database/books"
	"github.com/ztacole/BacaDong/internal/database/categories"
	"github.com/ztacole/BacaDong/internal/database/members"
	"github.com/ztacole/BacaDong/internal/http"
	"github.com/ztacole/BacaDong/internal/scheduler"
	"github.com/ztacole/BacaDong/internal/services"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// BookStore implementations
var _ http.BookStore = (*books.Repository)(nil)
var _ services.BookCatalog = (*books.Repository)(nil)

// CategoryStore implementations
var _ http.CategoryStore = (*categories.Repository)(nil)
var _ services.CategoryLister = (*categories.Repository)(nil)

// MemberGetter implementations
var _ http.MemberGetter = (*members.Repository)(nil)

// =============================================================================
// Presentation
// =============================================================================

// CatalogPages implementations
var _ http.CatalogPages = (*services.CatalogService)(nil)

// CoverResolver implementations
var _ http.CoverResolver = (*covers.Cache)(nil)

// =============================================================================
// Operations
// =============================================================================

// Pinger implementations
var _ http.Pinger = (*database.Database)(nil)

// StatsSource implementations
var _ scheduler.StatsSource = (*books.Repository)(nil)
