// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - BookStore: Catalog queries, view and rating recording (internal/http/stores.go)
//   - BookCatalog: The subset the page service needs (internal/services/interfaces.go)
//   - CategoryStore: Category CRUD (internal/http/stores.go)
//   - CategoryLister: Category navigation (internal/services/interfaces.go)
//   - MemberGetter: Resolves the acting member (internal/http/stores.go)
//
// ## Presentation Interfaces
//
//   - CatalogPages: Home, book detail and category pages (internal/http/stores.go)
//   - CoverResolver: Local files for book covers (internal/http/covers.go)
//
// ## Operational Interfaces
//
//   - Pinger: Database health (internal/http/health.go)
//   - StatsSource: Catalog totals for the gauges (internal/scheduler/stats.go)
//
// # Adding a New Sort Order
//
//  1. Add a SortKey constant in internal/database/books/sort.go and list it in SortKeys
//
//  2. Return its ORDER BY clause from orderClause, ending with a book id
//     tie-breaker so results stay deterministic
//
//  3. Cover it in TestRepository_ByCategory_SortKeys
//
// # Adding a New Database Domain
//
// To add a new data domain (e.g., reservations):
//
//  1. Create sub-package: internal/database/reservations/
//
//  2. Define repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Register the entity in Database.Migrate
//
//  4. Add compile-time check:
//
//     var _ http.ReservationStore = (*reservations.Repository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
